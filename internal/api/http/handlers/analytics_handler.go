package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-analytics/internal/analytics"
	"github.com/spec-kit/hospital-analytics/internal/api/dto"
	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/service"
	apperrors "github.com/spec-kit/hospital-analytics/pkg/util/errorutil"
)

// AnalyticsService computes the dashboard reports.
type AnalyticsService interface {
	DepartmentRating(ctx context.Context, deptID int) (analytics.Average, error)
	OverallRating(ctx context.Context) (analytics.Average, error)
	RatingDistribution(ctx context.Context) (map[string]int, error)
	DoctorRatingDistribution(ctx context.Context) (analytics.RatingBuckets, error)
	DoctorQuadrants(ctx context.Context, th analytics.Thresholds) (service.DoctorQuadrantReport, error)
	DepartmentQuadrants(ctx context.Context, th analytics.Thresholds) (service.DepartmentQuadrantReport, error)
	BedOccupancyTrends(ctx context.Context, period string, in service.RangeInput) (service.OccupancyReport, error)
	MedicineInventoryTrends(ctx context.Context, medID int, in service.RangeInput) (service.MedicineTrendReport, error)
	MedicinePrescriptionTrends(ctx context.Context, medID int, in service.RangeInput) (service.MedicineTrendReport, error)
	DashboardKPIs(ctx context.Context) (service.DashboardKPIs, error)
}

// SnapshotHistory lists stored KPI snapshots.
type SnapshotHistory interface {
	History(ctx context.Context, limit int) ([]domain.KPISnapshot, error)
}

// AnalyticsHandler serves the dashboard report endpoints.
type AnalyticsHandler struct {
	service   AnalyticsService
	snapshots SnapshotHistory
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService AnalyticsService, snapshots SnapshotHistory) *AnalyticsHandler {
	return &AnalyticsHandler{service: analyticsService, snapshots: snapshots}
}

// DepartmentRating GET /api/analytics/departments/:departmentId/rating.
func (h *AnalyticsHandler) DepartmentRating(c *fiber.Ctx) error {
	deptID, err := strconv.Atoi(c.Params("departmentId"))
	if err != nil {
		return apperrors.NewValidationError("invalid departmentId", map[string]any{"departmentId": c.Params("departmentId")})
	}
	avg, err := h.service.DepartmentRating(c.UserContext(), deptID)
	if err != nil {
		return err
	}
	if avg.Empty() {
		return c.JSON(fiber.Map{"departmentRating": 0, "consultationlen": 0})
	}
	return c.JSON(fiber.Map{"departmentRating": avg.Value})
}

// OverallRating GET /api/analytics/ratings/overall.
func (h *AnalyticsHandler) OverallRating(c *fiber.Ctx) error {
	avg, err := h.service.OverallRating(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"overallRating": avg.OrZero(), "totalFeedbacks": avg.Count})
}

// RatingDistribution GET /api/analytics/ratings/distribution.
func (h *AnalyticsHandler) RatingDistribution(c *fiber.Ctx) error {
	histogram, err := h.service.RatingDistribution(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ratingDistribution": histogram})
}

// DoctorRatingDistribution GET /api/analytics/doctors/rating-distribution.
func (h *AnalyticsHandler) DoctorRatingDistribution(c *fiber.Ctx) error {
	buckets, err := h.service.DoctorRatingDistribution(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": buckets.Counts, "unbucketed": buckets.Unbucketed})
}

// DoctorQuadrants POST /api/analytics/doctors/quadrants.
func (h *AnalyticsHandler) DoctorQuadrants(c *fiber.Ctx) error {
	th, err := parseThresholds(c)
	if err != nil {
		return err
	}
	report, err := h.service.DoctorQuadrants(c.UserContext(), th)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDoctorQuadrantResponse(report))
}

// DepartmentQuadrants POST /api/analytics/departments/quadrants.
func (h *AnalyticsHandler) DepartmentQuadrants(c *fiber.Ctx) error {
	th, err := parseThresholds(c)
	if err != nil {
		return err
	}
	report, err := h.service.DepartmentQuadrants(c.UserContext(), th)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDepartmentQuadrantResponse(report))
}

// BedOccupancyTrends POST /api/analytics/bed-occupancy/:period.
func (h *AnalyticsHandler) BedOccupancyTrends(c *fiber.Ctx) error {
	var req dto.DateRangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	report, err := h.service.BedOccupancyTrends(c.UserContext(), c.Params("period"), req.Range())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOccupancyResponse(report))
}

// MedicineInventoryTrends POST /api/analytics/medicines/inventory-trends.
func (h *AnalyticsHandler) MedicineInventoryTrends(c *fiber.Ctx) error {
	medID, req, err := parseMedicineTrend(c)
	if err != nil {
		return err
	}
	report, err := h.service.MedicineInventoryTrends(c.UserContext(), medID, req.Range())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewInventoryTrendResponse(report))
}

// MedicinePrescriptionTrends POST /api/analytics/medicines/prescription-trends.
func (h *AnalyticsHandler) MedicinePrescriptionTrends(c *fiber.Ctx) error {
	medID, req, err := parseMedicineTrend(c)
	if err != nil {
		return err
	}
	report, err := h.service.MedicinePrescriptionTrends(c.UserContext(), medID, req.Range())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPrescriptionTrendResponse(report))
}

// DashboardKPIs GET /api/analytics/kpis.
func (h *AnalyticsHandler) DashboardKPIs(c *fiber.Ctx) error {
	kpis, err := h.service.DashboardKPIs(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewKPIResponse(kpis))
}

// KPIHistory GET /api/analytics/kpis/history.
func (h *AnalyticsHandler) KPIHistory(c *fiber.Ctx) error {
	if h.snapshots == nil {
		return apperrors.NewUnavailable("kpi snapshot store not configured")
	}
	snapshots, err := h.snapshots.History(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	items := dto.NewSnapshotResponses(snapshots)
	return c.JSON(fiber.Map{"count": len(items), "data": items})
}

func parseThresholds(c *fiber.Ctx) (analytics.Thresholds, error) {
	var req dto.QuadrantRequest
	if err := c.BodyParser(&req); err != nil {
		return analytics.Thresholds{}, apperrors.NewValidationError("invalid payload", nil)
	}
	th, ok := req.Thresholds()
	if !ok {
		return analytics.Thresholds{}, apperrors.NewValidationError("ratingThreshold and consultationThreshold are required", nil)
	}
	return th, nil
}

func parseMedicineTrend(c *fiber.Ctx) (int, dto.MedicineTrendRequest, error) {
	var req dto.MedicineTrendRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, req, apperrors.NewValidationError("invalid payload", nil)
	}
	medID, err := req.MedicineIDValue()
	if err != nil {
		return 0, req, apperrors.NewValidationError("invalid medicineId", map[string]any{"medicineId": req.MedicineID})
	}
	return medID, req, nil
}
