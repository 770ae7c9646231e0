package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-analytics/internal/api/dto"
	"github.com/spec-kit/hospital-analytics/internal/auth"
	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/service"
	apperrors "github.com/spec-kit/hospital-analytics/pkg/util/errorutil"
)

// RecordsService writes and lists the records the dashboards read.
type RecordsService interface {
	AddMedicine(ctx context.Context, input service.MedicineInput) (*domain.Medicine, error)
	AddInventoryLog(ctx context.Context, actor string, input service.InventoryLogInput) (*domain.MedicineInventoryLog, error)
	CreateBill(ctx context.Context, actor string, input service.BillInput) (*domain.Bill, error)
	AddItemToBill(ctx context.Context, actor string, billID int, item domain.BillItem) (*domain.Bill, error)
	CreatePrescription(ctx context.Context, input service.PrescriptionInput) (*domain.Prescription, error)
	AddPrescriptionEntry(ctx context.Context, input service.PrescriptionEntryInput) (*domain.PrescriptionEntry, error)
	AddRatingAndReview(ctx context.Context, actor string, consultationID int, input service.FeedbackInput) (*service.FeedbackResult, error)
	ListFeedbacks(ctx context.Context) ([]domain.Feedback, error)
	FeedbackCommentsByRating(ctx context.Context, rating int) ([]string, error)
	ListConsultations(ctx context.Context) ([]domain.Consultation, error)
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)
	FacilityStatistics(ctx context.Context) (service.FacilityStats, error)
}

// RecordsHandler serves the record keeping endpoints.
type RecordsHandler struct {
	service RecordsService
}

// NewRecordsHandler constructs handler.
func NewRecordsHandler(recordsService RecordsService) *RecordsHandler {
	return &RecordsHandler{service: recordsService}
}

// AddMedicine POST /api/records/medicines.
func (h *RecordsHandler) AddMedicine(c *fiber.Ctx) error {
	var req dto.MedicineRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	medicine, err := h.service.AddMedicine(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Medicine added successfully", "data": medicine})
}

// AddInventoryLog POST /api/records/inventory-logs.
func (h *RecordsHandler) AddInventoryLog(c *fiber.Ctx) error {
	var req dto.InventoryLogRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	log, err := h.service.AddInventoryLog(c.UserContext(), auth.Actor(c), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Inventory log added successfully", "data": log})
}

// CreateBill POST /api/records/bills.
func (h *RecordsHandler) CreateBill(c *fiber.Ctx) error {
	var req dto.BillRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	bill, err := h.service.CreateBill(c.UserContext(), auth.Actor(c), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Bill created successfully", "bill": bill})
}

// AddItemToBill POST /api/records/bills/:billId/items.
func (h *RecordsHandler) AddItemToBill(c *fiber.Ctx) error {
	billID, err := pathInt(c, "billId")
	if err != nil {
		return err
	}
	var item domain.BillItem
	if err := c.BodyParser(&item); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	bill, err := h.service.AddItemToBill(c.UserContext(), auth.Actor(c), billID, item)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Item added to bill", "bill": bill})
}

// CreatePrescription POST /api/records/prescriptions.
func (h *RecordsHandler) CreatePrescription(c *fiber.Ctx) error {
	var req dto.PrescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	prescription, err := h.service.CreatePrescription(c.UserContext(), service.PrescriptionInput{
		ConsultationID: req.ConsultationID,
		Entries:        req.Entries,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Prescription created successfully", "prescription": prescription})
}

// AddPrescriptionEntry POST /api/records/prescription-entries.
func (h *RecordsHandler) AddPrescriptionEntry(c *fiber.Ctx) error {
	var req dto.PrescriptionEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	entry, err := h.service.AddPrescriptionEntry(c.UserContext(), req.Input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Prescription entry added successfully", "data": entry})
}

// AddRatingAndReview POST /api/records/consultations/:consultationId/feedback.
func (h *RecordsHandler) AddRatingAndReview(c *fiber.Ctx) error {
	consultationID, err := pathInt(c, "consultationId")
	if err != nil {
		return err
	}
	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	result, err := h.service.AddRatingAndReview(c.UserContext(), auth.Actor(c), consultationID, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(dto.FeedbackResponse{
		Message:              "Feedback added successfully",
		ConsultationFeedback: result.ConsultationFeedback,
		FeedbackSchemaEntry:  result.Feedback,
	})
}

// ListFeedbacks GET /api/records/feedbacks.
func (h *RecordsHandler) ListFeedbacks(c *fiber.Ctx) error {
	feedbacks, err := h.service.ListFeedbacks(c.UserContext())
	if err != nil {
		return err
	}
	if len(feedbacks) == 0 {
		return c.JSON(fiber.Map{"message": "No feedbacks found", "feedbacks": []domain.Feedback{}})
	}
	return c.JSON(fiber.Map{"totalFeedbacks": len(feedbacks), "feedbacks": feedbacks})
}

// FeedbackCommentsByRating GET /api/records/feedbacks/rating/:rating.
func (h *RecordsHandler) FeedbackCommentsByRating(c *fiber.Ctx) error {
	rating, err := strconv.Atoi(c.Params("rating"))
	if err != nil {
		return apperrors.NewValidationError("invalid rating, rating must be a number between 1 and 5", map[string]any{"rating": c.Params("rating")})
	}
	comments, err := h.service.FeedbackCommentsByRating(c.UserContext(), rating)
	if err != nil {
		return err
	}
	return c.JSON(dto.CommentsByRatingResponse{Rating: rating, TotalComments: len(comments), Comments: comments})
}

// ListConsultations GET /api/records/consultations.
func (h *RecordsHandler) ListConsultations(c *fiber.Ctx) error {
	consultations, err := h.service.ListConsultations(c.UserContext())
	if err != nil {
		return err
	}
	if len(consultations) == 0 {
		return c.JSON(fiber.Map{"message": "No consultations found", "consultations": []domain.Consultation{}})
	}
	return c.JSON(fiber.Map{"totalConsultations": len(consultations), "consultations": consultations})
}

// ListDoctors GET /api/records/doctors.
func (h *RecordsHandler) ListDoctors(c *fiber.Ctx) error {
	doctors, err := h.service.ListDoctors(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "count": len(doctors), "data": doctors})
}

// FacilityStatistics GET /api/records/facilities/stats.
func (h *RecordsHandler) FacilityStatistics(c *fiber.Ctx) error {
	stats, err := h.service.FacilityStatistics(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.FacilityResponse{TotalRooms: stats.TotalRooms, TotalBeds: stats.TotalBeds, Rooms: stats.Rooms})
}

func pathInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Params(name)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid "+name, map[string]any{name: raw})
	}
	return id, nil
}
