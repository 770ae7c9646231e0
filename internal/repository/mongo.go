package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	consultationsCollection       = "consultations"
	feedbacksCollection           = "feedbacks"
	doctorsCollection             = "doctors"
	departmentsCollection         = "departments"
	billsCollection               = "bills"
	billItemsCollection           = "billitems"
	prescriptionsCollection       = "prescriptions"
	prescriptionEntriesCollection = "prescriptionentries"
	medicinesCollection           = "medicines"
	inventoryLogsCollection       = "medicineinventorylogs"
	occupancyCollection           = "dailybedoccupancies"
	roomsCollection               = "rooms"
)

// Store is the document store the repositories read and write.
type Store interface {
	Collection(name string) *mongo.Collection
	NextSequence(ctx context.Context, name string) (int, error)
}

// DateRange bounds a date field. To is inclusive unless HalfOpen is set.
type DateRange struct {
	From     time.Time
	To       time.Time
	HalfOpen bool
}

// Between returns the inclusive range [from, to].
func Between(from, to time.Time) DateRange {
	return DateRange{From: from, To: to}
}

// Until returns the half-open range [from, to).
func Until(from, to time.Time) DateRange {
	return DateRange{From: from, To: to, HalfOpen: true}
}

func (r DateRange) filter() bson.M {
	upper := "$lte"
	if r.HalfOpen {
		upper = "$lt"
	}
	return bson.M{"$gte": r.From, upper: r.To}
}

// present matches a field that exists and is not null.
var present = bson.M{"$exists": true, "$ne": nil}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	result := []T{}
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOneOptions) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter, opts...).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
