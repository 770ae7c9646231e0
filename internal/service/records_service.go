package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-analytics/internal/analytics"
	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/events"
	"github.com/spec-kit/hospital-analytics/internal/repository"
	apperrors "github.com/spec-kit/hospital-analytics/pkg/util/errorutil"
)

const (
	minRating = 1
	maxRating = 5
)

// RecordsService keeps the records the dashboards are computed from.
type RecordsService struct {
	consultations repository.ConsultationRepository
	feedbacks     repository.FeedbackRepository
	doctors       repository.DoctorRepository
	bills         repository.BillRepository
	prescriptions repository.PrescriptionRepository
	medicines     repository.MedicineRepository
	inventoryLogs repository.InventoryLogRepository
	rooms         repository.RoomRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	loc           *time.Location
	now           func() time.Time
}

// RecordsDependencies bundles repositories for the records service.
type RecordsDependencies struct {
	ConsultationRepo repository.ConsultationRepository
	FeedbackRepo     repository.FeedbackRepository
	DoctorRepo       repository.DoctorRepository
	BillRepo         repository.BillRepository
	PrescriptionRepo repository.PrescriptionRepository
	MedicineRepo     repository.MedicineRepository
	InventoryLogRepo repository.InventoryLogRepository
	RoomRepo         repository.RoomRepository
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
	Location         *time.Location
	Clock            func() time.Time
}

// MedicineInput describes a catalogue entry.
type MedicineInput struct {
	MedName       string
	Effectiveness string
	DosageForm    string
	Manufacturer  string
	Available     bool
	Inventory     int
}

// InventoryLogInput describes a stock order.
type InventoryLogInput struct {
	MedID     int
	Quantity  int
	TotalCost float64
	OrderDate string
	Supplier  string
	Status    string
}

// BillInput describes a new bill.
type BillInput struct {
	PatientID      int
	GenerationDate string
	TotalAmount    float64
	PaymentStatus  string
	Items          []domain.BillItem
}

// PrescriptionInput describes a new prescription.
type PrescriptionInput struct {
	ConsultationID int
	Entries        []domain.PrescriptionEntry
}

// PrescriptionEntryInput describes one prescribed medicine.
type PrescriptionEntryInput struct {
	PrescriptionID int
	MedicineID     int
	Dosage         string
	Frequency      string
	Duration       string
	Quantity       int
	DispensedQty   *int
}

// FeedbackInput is a patient review of a consultation.
type FeedbackInput struct {
	DeptID   int
	Rating   float64
	Comments string
}

// FeedbackResult is the review as stored on the consultation and as a standalone record.
type FeedbackResult struct {
	ConsultationFeedback domain.ConsultationFeedback
	Feedback             domain.Feedback
}

// FacilityStats summarizes ward capacity.
type FacilityStats struct {
	TotalRooms int
	TotalBeds  int
	Rooms      []domain.Room
}

// NewRecordsService constructs the service.
func NewRecordsService(deps RecordsDependencies) *RecordsService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsService{
		consultations: deps.ConsultationRepo,
		feedbacks:     deps.FeedbackRepo,
		doctors:       deps.DoctorRepo,
		bills:         deps.BillRepo,
		prescriptions: deps.PrescriptionRepo,
		medicines:     deps.MedicineRepo,
		inventoryLogs: deps.InventoryLogRepo,
		rooms:         deps.RoomRepo,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		loc:           loc,
		now:           clock,
	}
}

// AddMedicine registers a medicine in the catalogue.
func (s *RecordsService) AddMedicine(ctx context.Context, input MedicineInput) (*domain.Medicine, error) {
	name := strings.TrimSpace(input.MedName)
	if name == "" {
		return nil, apperrors.NewValidationError("med_name is required", nil)
	}
	if input.Inventory < 0 {
		return nil, apperrors.NewValidationError("inventory must not be negative", map[string]any{"inventory": input.Inventory})
	}
	medicine := &domain.Medicine{
		MedName:       name,
		Effectiveness: input.Effectiveness,
		DosageForm:    input.DosageForm,
		Manufacturer:  input.Manufacturer,
		Available:     input.Available,
		Inventory:     input.Inventory,
	}
	if err := s.medicines.Create(ctx, medicine); err != nil {
		return nil, apperrors.MapError("medicine", err)
	}
	return medicine, nil
}

// AddInventoryLog records a stock order. Status defaults to received.
func (s *RecordsService) AddInventoryLog(ctx context.Context, actor string, input InventoryLogInput) (*domain.MedicineInventoryLog, error) {
	if input.MedID <= 0 {
		return nil, apperrors.NewValidationError("med_id is required", nil)
	}
	if input.Quantity < 0 {
		return nil, apperrors.NewValidationError("quantity must not be negative", map[string]any{"quantity": input.Quantity})
	}
	orderDate, err := s.dateOrNow(input.OrderDate, "order_date")
	if err != nil {
		return nil, err
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = domain.InventoryStatusReceived
	}

	log := &domain.MedicineInventoryLog{
		MedID:     input.MedID,
		Quantity:  input.Quantity,
		TotalCost: input.TotalCost,
		OrderDate: orderDate,
		Supplier:  input.Supplier,
		Status:    status,
	}
	if err := s.inventoryLogs.Create(ctx, log); err != nil {
		return nil, apperrors.MapError("inventory log", err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventInventoryLogAdded,
		Subject: fmt.Sprintf("medicine:%d", log.MedID),
		Actor:   actor,
		Payload: events.InventoryLogAddedPayload{
			MedicineID: log.MedID,
			Quantity:   log.Quantity,
			Status:     log.Status,
			OrderDate:  log.OrderDate,
		},
	})
	return log, nil
}

// CreateBill stores a bill. The generation date defaults to now.
func (s *RecordsService) CreateBill(ctx context.Context, actor string, input BillInput) (*domain.Bill, error) {
	generated, err := s.dateOrNow(input.GenerationDate, "generation_date")
	if err != nil {
		return nil, err
	}
	for i, item := range input.Items {
		if err := validateBillItem(item); err != nil {
			return nil, apperrors.NewValidationError(err.Error(), map[string]any{"item": i})
		}
	}

	bill := &domain.Bill{
		PatientID:      input.PatientID,
		GenerationDate: generated,
		TotalAmount:    input.TotalAmount,
		PaymentStatus:  input.PaymentStatus,
		Items:          input.Items,
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, apperrors.MapError("bill", err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventBillCreated,
		Subject: fmt.Sprintf("bill:%d", bill.ID),
		Actor:   actor,
		Payload: events.BillCreatedPayload{BillID: bill.ID, TotalAmount: bill.TotalAmount},
	})
	return bill, nil
}

// AddItemToBill appends an item to an existing bill.
func (s *RecordsService) AddItemToBill(ctx context.Context, actor string, billID int, item domain.BillItem) (*domain.Bill, error) {
	if err := validateBillItem(item); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	bill, err := s.bills.AddItem(ctx, billID, item)
	if err != nil {
		return nil, apperrors.MapError("bill", err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventBillItemAdded,
		Subject: fmt.Sprintf("bill:%d", bill.ID),
		Actor:   actor,
		Payload: events.BillItemAddedPayload{BillID: bill.ID, ItemType: item.ItemType, Amount: item.Amount},
	})
	return bill, nil
}

// CreatePrescription stores a prescription with its initial entries.
func (s *RecordsService) CreatePrescription(ctx context.Context, input PrescriptionInput) (*domain.Prescription, error) {
	prescription := &domain.Prescription{
		ConsultationID: input.ConsultationID,
		Entries:        input.Entries,
	}
	if err := s.prescriptions.Create(ctx, prescription); err != nil {
		return nil, apperrors.MapError("prescription", err)
	}
	for i := range prescription.Entries {
		prescription.Entries[i].PrescriptionID = prescription.ID
	}
	return prescription, nil
}

// AddPrescriptionEntry appends a medicine to a prescription. Nothing is dispensed unless stated.
func (s *RecordsService) AddPrescriptionEntry(ctx context.Context, input PrescriptionEntryInput) (*domain.PrescriptionEntry, error) {
	if input.PrescriptionID <= 0 || input.MedicineID <= 0 {
		return nil, apperrors.NewValidationError("prescription_id and medicine_id are required", nil)
	}
	entry := domain.PrescriptionEntry{
		PrescriptionID: input.PrescriptionID,
		MedicineID:     input.MedicineID,
		Dosage:         input.Dosage,
		Frequency:      input.Frequency,
		Duration:       input.Duration,
		Quantity:       input.Quantity,
	}
	if input.DispensedQty != nil {
		entry.DispensedQty = *input.DispensedQty
	}
	if entry.DispensedQty < 0 {
		return nil, apperrors.NewValidationError("dispensed_qty must not be negative", nil)
	}
	if err := s.prescriptions.AddEntry(ctx, entry); err != nil {
		return nil, apperrors.MapError("prescription", err)
	}
	return &entry, nil
}

// AddRatingAndReview attaches feedback to a consultation and keeps a standalone copy.
func (s *RecordsService) AddRatingAndReview(ctx context.Context, actor string, consultationID int, input FeedbackInput) (*FeedbackResult, error) {
	if !validRating(input.Rating) {
		return nil, apperrors.NewValidationError("rating must be a whole number between 1 and 5", map[string]any{"rating": fmt.Sprint(input.Rating)})
	}

	now := s.now()
	embedded := domain.ConsultationFeedback{
		Rating:    domain.RatingOf(input.Rating),
		Comments:  input.Comments,
		CreatedAt: now,
	}
	if _, err := s.consultations.SetFeedback(ctx, consultationID, embedded); err != nil {
		return nil, apperrors.MapError("consultation", err)
	}

	feedback := domain.Feedback{
		DeptID:    input.DeptID,
		Rating:    embedded.Rating,
		Comments:  input.Comments,
		CreatedAt: now,
	}
	if err := s.feedbacks.Create(ctx, &feedback); err != nil {
		return nil, apperrors.MapError("feedback", err)
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventFeedbackSubmitted,
		Subject: fmt.Sprintf("consultation:%d", consultationID),
		Actor:   actor,
		Payload: events.FeedbackSubmittedPayload{
			ConsultationID: consultationID,
			DeptID:         input.DeptID,
			Rating:         input.Rating,
		},
	})
	return &FeedbackResult{ConsultationFeedback: embedded, Feedback: feedback}, nil
}

// ListFeedbacks returns every standalone feedback.
func (s *RecordsService) ListFeedbacks(ctx context.Context) ([]domain.Feedback, error) {
	feedback, err := s.feedbacks.List(ctx)
	if err != nil {
		return nil, apperrors.MapError("feedbacks", err)
	}
	return feedback, nil
}

// FeedbackCommentsByRating returns consultation comments left with the given score.
func (s *RecordsService) FeedbackCommentsByRating(ctx context.Context, rating int) ([]string, error) {
	if rating < minRating || rating > maxRating {
		return nil, apperrors.NewValidationError("invalid rating, rating must be a number between 1 and 5", map[string]any{"rating": rating})
	}
	comments, err := s.consultations.ListCommentsByRating(ctx, rating)
	if err != nil {
		return nil, apperrors.MapError("consultations", err)
	}
	return comments, nil
}

// ListConsultations returns consultations newest first.
func (s *RecordsService) ListConsultations(ctx context.Context) ([]domain.Consultation, error) {
	consultations, err := s.consultations.List(ctx)
	if err != nil {
		return nil, apperrors.MapError("consultations", err)
	}
	return consultations, nil
}

// ListDoctors returns every doctor.
func (s *RecordsService) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, apperrors.MapError("doctors", err)
	}
	return doctors, nil
}

// FacilityStatistics counts rooms and beds.
func (s *RecordsService) FacilityStatistics(ctx context.Context) (FacilityStats, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return FacilityStats{}, apperrors.MapError("rooms", err)
	}
	stats := FacilityStats{TotalRooms: len(rooms), Rooms: rooms}
	for _, room := range rooms {
		stats.TotalBeds += len(room.Beds)
	}
	return stats, nil
}

func (s *RecordsService) dateOrNow(raw, field string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return s.now(), nil
	}
	t, err := analytics.ParseDate(raw, s.loc)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date format provided", map[string]any{field: raw})
	}
	return t, nil
}

func (s *RecordsService) publishEvent(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, s.logger, s.now, event)
}

// validRating holds for whole scores in [1,5]; NaN fails every comparison.
func validRating(v float64) bool {
	return v >= minRating && v <= maxRating && v == math.Trunc(v)
}

func validateBillItem(item domain.BillItem) error {
	if strings.TrimSpace(item.ItemType) == "" {
		return errors.New("item_type is required")
	}
	if item.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	if item.Amount < 0 || math.IsNaN(item.Amount) || math.IsInf(item.Amount, 0) {
		return errors.New("amount must be a non-negative number")
	}
	return nil
}

// publishEvent is best effort: the write has already been stored, so handler
// failures are logged and never turned into a request error.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, now func() time.Time, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = now()
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handlers failed",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Error(err))
	}
}
