package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

// MedicineRepository persists the pharmacy catalogue.
type MedicineRepository interface {
	Create(ctx context.Context, medicine *domain.Medicine) error
	GetByID(ctx context.Context, id int) (*domain.Medicine, error)
}

// InventoryLogRepository persists stock orders.
type InventoryLogRepository interface {
	Create(ctx context.Context, log *domain.MedicineInventoryLog) error
	ListReceived(ctx context.Context, medID int, window DateRange) ([]domain.MedicineInventoryLog, error)
}

type medicineRepository struct {
	store Store
	coll  *mongo.Collection
}

type inventoryLogRepository struct {
	coll *mongo.Collection
}

// NewMedicineRepository constructs repository.
func NewMedicineRepository(store Store) MedicineRepository {
	return &medicineRepository{store: store, coll: store.Collection(medicinesCollection)}
}

// NewInventoryLogRepository constructs repository.
func NewInventoryLogRepository(store Store) InventoryLogRepository {
	return &inventoryLogRepository{coll: store.Collection(inventoryLogsCollection)}
}

func (r *medicineRepository) Create(ctx context.Context, medicine *domain.Medicine) error {
	id, err := r.store.NextSequence(ctx, medicinesCollection)
	if err != nil {
		return err
	}
	medicine.ID = id
	_, err = r.coll.InsertOne(ctx, medicine)
	return err
}

func (r *medicineRepository) GetByID(ctx context.Context, id int) (*domain.Medicine, error) {
	return findOne[domain.Medicine](ctx, r.coll, bson.M{"_id": id})
}

func (r *inventoryLogRepository) Create(ctx context.Context, log *domain.MedicineInventoryLog) error {
	res, err := r.coll.InsertOne(ctx, log)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		log.ID = id
	}
	return nil
}

func (r *inventoryLogRepository) ListReceived(ctx context.Context, medID int, window DateRange) ([]domain.MedicineInventoryLog, error) {
	return findAll[domain.MedicineInventoryLog](ctx, r.coll, receivedFilter(medID, window))
}

func receivedFilter(medID int, window DateRange) bson.M {
	return bson.M{
		"med_id":     medID,
		"order_date": window.filter(),
		"status":     domain.InventoryStatusReceived,
	}
}
