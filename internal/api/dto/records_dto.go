package dto

import (
	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/service"
)

// MedicineRequest payload.
type MedicineRequest struct {
	MedName       string `json:"med_name"`
	Effectiveness string `json:"effectiveness"`
	DosageForm    string `json:"dosage_form"`
	Manufacturer  string `json:"manufacturer"`
	Available     bool   `json:"available"`
	Inventory     int    `json:"inventory"`
}

// Input converts the request.
func (r MedicineRequest) Input() service.MedicineInput {
	return service.MedicineInput{
		MedName:       r.MedName,
		Effectiveness: r.Effectiveness,
		DosageForm:    r.DosageForm,
		Manufacturer:  r.Manufacturer,
		Available:     r.Available,
		Inventory:     r.Inventory,
	}
}

// InventoryLogRequest payload.
type InventoryLogRequest struct {
	MedID     int     `json:"med_id"`
	Quantity  int     `json:"quantity"`
	TotalCost float64 `json:"total_cost"`
	OrderDate string  `json:"order_date"`
	Supplier  string  `json:"supplier"`
	Status    string  `json:"status"`
}

// Input converts the request.
func (r InventoryLogRequest) Input() service.InventoryLogInput {
	return service.InventoryLogInput{
		MedID:     r.MedID,
		Quantity:  r.Quantity,
		TotalCost: r.TotalCost,
		OrderDate: r.OrderDate,
		Supplier:  r.Supplier,
		Status:    r.Status,
	}
}

// BillRequest payload.
type BillRequest struct {
	PatientID      int               `json:"patient_id"`
	GenerationDate string            `json:"generation_date"`
	TotalAmount    float64           `json:"total_amount"`
	PaymentStatus  string            `json:"payment_status"`
	Items          []domain.BillItem `json:"items"`
}

// Input converts the request.
func (r BillRequest) Input() service.BillInput {
	return service.BillInput{
		PatientID:      r.PatientID,
		GenerationDate: r.GenerationDate,
		TotalAmount:    r.TotalAmount,
		PaymentStatus:  r.PaymentStatus,
		Items:          r.Items,
	}
}

// PrescriptionRequest payload.
type PrescriptionRequest struct {
	ConsultationID int                        `json:"consultation_id"`
	Entries        []domain.PrescriptionEntry `json:"entries"`
}

// PrescriptionEntryRequest payload. A missing dispensed_qty means nothing was dispensed.
type PrescriptionEntryRequest struct {
	PrescriptionID int    `json:"prescription_id"`
	MedicineID     int    `json:"medicine_id"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	Duration       string `json:"duration"`
	Quantity       int    `json:"quantity"`
	DispensedQty   *int   `json:"dispensed_qty"`
}

// Input converts the request.
func (r PrescriptionEntryRequest) Input() service.PrescriptionEntryInput {
	return service.PrescriptionEntryInput{
		PrescriptionID: r.PrescriptionID,
		MedicineID:     r.MedicineID,
		Dosage:         r.Dosage,
		Frequency:      r.Frequency,
		Duration:       r.Duration,
		Quantity:       r.Quantity,
		DispensedQty:   r.DispensedQty,
	}
}

// FeedbackRequest payload. The rating may arrive as a number or numeric string.
type FeedbackRequest struct {
	DeptID   int           `json:"dept_id"`
	Rating   domain.Rating `json:"rating"`
	Comments string        `json:"comments"`
}

// Input converts the request. An absent rating is passed as 0 and rejected downstream.
func (r FeedbackRequest) Input() service.FeedbackInput {
	return service.FeedbackInput{DeptID: r.DeptID, Rating: r.Rating.Value, Comments: r.Comments}
}

// FeedbackResponse mirrors both stored copies of a review.
type FeedbackResponse struct {
	Message              string                      `json:"message"`
	ConsultationFeedback domain.ConsultationFeedback `json:"consultationFeedback"`
	FeedbackSchemaEntry  domain.Feedback             `json:"feedbackSchemaEntry"`
}

// FacilityResponse is the ward capacity payload.
type FacilityResponse struct {
	TotalRooms int           `json:"totalRooms"`
	TotalBeds  int           `json:"totalBeds"`
	Rooms      []domain.Room `json:"rooms"`
}

// CommentsByRatingResponse lists consultation comments left with one score.
type CommentsByRatingResponse struct {
	Rating        int      `json:"rating"`
	TotalComments int      `json:"totalComments"`
	Comments      []string `json:"comments"`
}
