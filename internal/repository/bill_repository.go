package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

// BillRepository persists bills and their items.
type BillRepository interface {
	Create(ctx context.Context, bill *domain.Bill) error
	AddItem(ctx context.Context, billID int, item domain.BillItem) (*domain.Bill, error)
	ListGenerated(ctx context.Context, window DateRange) ([]domain.Bill, error)
	SumTotal(ctx context.Context, window DateRange) (float64, error)
}

type billRepository struct {
	store Store
	bills *mongo.Collection
	items *mongo.Collection
}

// NewBillRepository constructs repository.
func NewBillRepository(store Store) BillRepository {
	return &billRepository{
		store: store,
		bills: store.Collection(billsCollection),
		items: store.Collection(billItemsCollection),
	}
}

func (r *billRepository) Create(ctx context.Context, bill *domain.Bill) error {
	id, err := r.store.NextSequence(ctx, billsCollection)
	if err != nil {
		return err
	}
	bill.ID = id
	if bill.Items == nil {
		bill.Items = []domain.BillItem{}
	}
	_, err = r.bills.InsertOne(ctx, bill)
	return err
}

// AddItem appends item to the bill and keeps a standalone copy in billitems.
// A missing bill yields mongo.ErrNoDocuments and nothing is written.
func (r *billRepository) AddItem(ctx context.Context, billID int, item domain.BillItem) (*domain.Bill, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var bill domain.Bill
	err := r.bills.FindOneAndUpdate(ctx,
		bson.M{"_id": billID},
		bson.M{"$push": bson.M{"items": item}},
		opts,
	).Decode(&bill)
	if err != nil {
		return nil, err
	}
	if _, err := r.items.InsertOne(ctx, item); err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) ListGenerated(ctx context.Context, window DateRange) ([]domain.Bill, error) {
	return findAll[domain.Bill](ctx, r.bills, bson.M{"generation_date": window.filter()})
}

func (r *billRepository) SumTotal(ctx context.Context, window DateRange) (float64, error) {
	cursor, err := r.bills.Aggregate(ctx, revenuePipeline(window))
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func revenuePipeline(window DateRange) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"generation_date": window.filter()}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total_amount"}}}},
	}
}
