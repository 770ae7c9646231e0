package domain

import "time"

// BillItemTypeMedication marks items that dispense a prescription.
const BillItemTypeMedication = "medication"

// BillItem is one line of a bill.
type BillItem struct {
	ItemType       string  `bson:"item_type" json:"item_type"`
	PrescriptionID *int    `bson:"prescription_id,omitempty" json:"prescription_id,omitempty"`
	Description    string  `bson:"item_description,omitempty" json:"item_description,omitempty"`
	Quantity       int     `bson:"quantity,omitempty" json:"quantity,omitempty"`
	Amount         float64 `bson:"item_amount" json:"item_amount"`
}

// Bill is a patient invoice. Items keep their insertion order.
type Bill struct {
	ID             int        `bson:"_id" json:"id"`
	PatientID      int        `bson:"patient_id" json:"patient_id"`
	GenerationDate time.Time  `bson:"generation_date" json:"generation_date"`
	TotalAmount    float64    `bson:"total_amount" json:"total_amount"`
	PaymentStatus  string     `bson:"payment_status,omitempty" json:"payment_status,omitempty"`
	Items          []BillItem `bson:"items" json:"items"`
}
