package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryStatusReceived marks orders that reached the pharmacy.
const InventoryStatusReceived = "received"

// Medicine is a pharmacy catalogue entry.
type Medicine struct {
	ID            int    `bson:"_id" json:"id"`
	MedName       string `bson:"med_name" json:"med_name"`
	Effectiveness string `bson:"effectiveness,omitempty" json:"effectiveness,omitempty"`
	DosageForm    string `bson:"dosage_form,omitempty" json:"dosage_form,omitempty"`
	Manufacturer  string `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Available     bool   `bson:"available" json:"available"`
	Inventory     int    `bson:"inventory" json:"inventory"`
}

// MedicineInventoryLog records a stock order.
type MedicineInventoryLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MedID     int                `bson:"med_id" json:"med_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	TotalCost float64            `bson:"total_cost" json:"total_cost"`
	OrderDate time.Time          `bson:"order_date" json:"order_date"`
	Supplier  string             `bson:"supplier,omitempty" json:"supplier,omitempty"`
	Status    string             `bson:"status" json:"status"`
}
