package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventFeedbackSubmitted    EventType = "feedback_submitted"
	EventInventoryLogAdded    EventType = "inventory_log_added"
	EventBillCreated          EventType = "bill_created"
	EventBillItemAdded        EventType = "bill_item_added"
	EventOccupancyInitialized EventType = "occupancy_initialized"
)

// AllEventTypes lists every event a service may publish.
var AllEventTypes = []EventType{
	EventFeedbackSubmitted,
	EventInventoryLogAdded,
	EventBillCreated,
	EventBillItemAdded,
	EventOccupancyInitialized,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Subject   string    `json:"subject"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// FeedbackSubmittedPayload payload.
type FeedbackSubmittedPayload struct {
	ConsultationID int     `json:"consultation_id"`
	DeptID         int     `json:"dept_id"`
	Rating         float64 `json:"rating"`
}

// InventoryLogAddedPayload payload.
type InventoryLogAddedPayload struct {
	MedicineID int       `json:"medicine_id"`
	Quantity   int       `json:"quantity"`
	Status     string    `json:"status"`
	OrderDate  time.Time `json:"order_date"`
}

// BillCreatedPayload payload.
type BillCreatedPayload struct {
	BillID      int     `json:"bill_id"`
	TotalAmount float64 `json:"total_amount"`
}

// BillItemAddedPayload payload.
type BillItemAddedPayload struct {
	BillID   int     `json:"bill_id"`
	ItemType string  `json:"item_type"`
	Amount   float64 `json:"item_amount"`
}

// OccupancyInitializedPayload payload.
type OccupancyInitializedPayload struct {
	Date           string `json:"date"`
	OccupancyCount int    `json:"occupancy_count"`
}
