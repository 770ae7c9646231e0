package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-analytics/internal/api/http/handlers"
	"github.com/spec-kit/hospital-analytics/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Analytics      *handlers.AnalyticsHandler
	Records        *handlers.RecordsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	reports := api.Group("/analytics", auth.RequireRole(auth.RoleAdmin, auth.RoleAnalyst))
	reports.Get("/departments/:departmentId/rating", cfg.Analytics.DepartmentRating)
	reports.Get("/ratings/overall", cfg.Analytics.OverallRating)
	reports.Get("/ratings/distribution", cfg.Analytics.RatingDistribution)
	reports.Get("/doctors/rating-distribution", cfg.Analytics.DoctorRatingDistribution)
	reports.Post("/doctors/quadrants", cfg.Analytics.DoctorQuadrants)
	reports.Post("/departments/quadrants", cfg.Analytics.DepartmentQuadrants)
	reports.Post("/bed-occupancy/:period", cfg.Analytics.BedOccupancyTrends)
	reports.Post("/medicines/inventory-trends", cfg.Analytics.MedicineInventoryTrends)
	reports.Post("/medicines/prescription-trends", cfg.Analytics.MedicinePrescriptionTrends)
	reports.Get("/kpis", cfg.Analytics.DashboardKPIs)
	reports.Get("/kpis/history", cfg.Analytics.KPIHistory)

	records := api.Group("/records", auth.RequireRole())
	records.Post("/medicines", cfg.Records.AddMedicine)
	records.Post("/inventory-logs", cfg.Records.AddInventoryLog)
	records.Post("/bills", cfg.Records.CreateBill)
	records.Post("/bills/:billId/items", cfg.Records.AddItemToBill)
	records.Post("/prescriptions", cfg.Records.CreatePrescription)
	records.Post("/prescription-entries", cfg.Records.AddPrescriptionEntry)
	records.Post("/consultations/:consultationId/feedback", cfg.Records.AddRatingAndReview)
	records.Get("/feedbacks", cfg.Records.ListFeedbacks)
	records.Get("/feedbacks/rating/:rating", cfg.Records.FeedbackCommentsByRating)
	records.Get("/consultations", cfg.Records.ListConsultations)
	records.Get("/doctors", cfg.Records.ListDoctors)
	records.Get("/facilities/stats", cfg.Records.FacilityStatistics)
}
