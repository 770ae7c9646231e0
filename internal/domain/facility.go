package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bed is a bed slot inside a room.
type Bed struct {
	BedID     int  `bson:"bed_id" json:"bed_id"`
	PatientID *int `bson:"patient_id,omitempty" json:"patient_id,omitempty"`
}

// Room is a ward room with its beds.
type Room struct {
	ID         int    `bson:"_id" json:"id"`
	RoomNumber string `bson:"room_number" json:"room_number"`
	Type       string `bson:"type,omitempty" json:"type,omitempty"`
	Beds       []Bed  `bson:"beds" json:"beds"`
}

// DailyBedOccupancy is the per-day occupancy roll-up. Date is local midnight.
type DailyBedOccupancy struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date           time.Time          `bson:"date" json:"date"`
	Assignments    int                `bson:"assignments" json:"assignments"`
	Discharges     int                `bson:"discharges" json:"discharges"`
	OccupancyCount int                `bson:"occupancyCount" json:"occupancyCount"`
}
