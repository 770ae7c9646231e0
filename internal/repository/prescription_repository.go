package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

// PrescriptionRepository persists prescriptions and their entries.
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *domain.Prescription) error
	AddEntry(ctx context.Context, entry domain.PrescriptionEntry) error
	ListByIDs(ctx context.Context, ids []int) ([]domain.Prescription, error)
}

type prescriptionRepository struct {
	store         Store
	prescriptions *mongo.Collection
	entries       *mongo.Collection
}

// NewPrescriptionRepository constructs repository.
func NewPrescriptionRepository(store Store) PrescriptionRepository {
	return &prescriptionRepository{
		store:         store,
		prescriptions: store.Collection(prescriptionsCollection),
		entries:       store.Collection(prescriptionEntriesCollection),
	}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *domain.Prescription) error {
	id, err := r.store.NextSequence(ctx, prescriptionsCollection)
	if err != nil {
		return err
	}
	prescription.ID = id
	if prescription.Entries == nil {
		prescription.Entries = []domain.PrescriptionEntry{}
	}
	_, err = r.prescriptions.InsertOne(ctx, prescription)
	return err
}

// AddEntry appends entry to its prescription and stores a standalone copy.
// A missing prescription yields mongo.ErrNoDocuments.
func (r *prescriptionRepository) AddEntry(ctx context.Context, entry domain.PrescriptionEntry) error {
	res, err := r.prescriptions.UpdateOne(ctx,
		bson.M{"_id": entry.PrescriptionID},
		bson.M{"$push": bson.M{"entries": entry}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	_, err = r.entries.InsertOne(ctx, entry)
	return err
}

func (r *prescriptionRepository) ListByIDs(ctx context.Context, ids []int) ([]domain.Prescription, error) {
	if len(ids) == 0 {
		return []domain.Prescription{}, nil
	}
	return findAll[domain.Prescription](ctx, r.prescriptions, bson.M{"_id": bson.M{"$in": ids}})
}
