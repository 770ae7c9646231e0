package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConsultationFeedback is the review embedded in a consultation.
type ConsultationFeedback struct {
	Rating    Rating    `bson:"rating" json:"rating"`
	Comments  string    `bson:"comments,omitempty" json:"comments,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Consultation is a booked visit with a doctor.
type Consultation struct {
	ID             int                   `bson:"_id" json:"id"`
	PatientID      int                   `bson:"patient_id" json:"patient_id"`
	DoctorID       int                   `bson:"doctor_id" json:"doctor_id"`
	DeptID         int                   `bson:"dept_id" json:"dept_id"`
	BookedDateTime time.Time             `bson:"booked_date_time" json:"booked_date_time"`
	Status         string                `bson:"status,omitempty" json:"status,omitempty"`
	Feedback       *ConsultationFeedback `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

// Rating returns the embedded feedback rating, absent when there is no feedback.
func (c Consultation) Rating() Rating {
	if c.Feedback == nil {
		return Rating{}
	}
	return c.Feedback.Rating
}

// Feedback is the standalone copy of a consultation review.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DeptID    int                `bson:"dept_id" json:"dept_id"`
	Rating    Rating             `bson:"rating" json:"rating"`
	Comments  string             `bson:"comments,omitempty" json:"comments,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
