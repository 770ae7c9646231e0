package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

// OccupancyRepository persists the daily bed occupancy roll-up.
type OccupancyRepository interface {
	List(ctx context.Context, window DateRange) ([]domain.DailyBedOccupancy, error)
	GetByDate(ctx context.Context, date time.Time) (*domain.DailyBedOccupancy, error)
	Create(ctx context.Context, record *domain.DailyBedOccupancy) error
}

// RoomRepository reads ward rooms.
type RoomRepository interface {
	List(ctx context.Context) ([]domain.Room, error)
}

type occupancyRepository struct {
	coll *mongo.Collection
}

type roomRepository struct {
	coll *mongo.Collection
}

// NewOccupancyRepository constructs repository.
func NewOccupancyRepository(store Store) OccupancyRepository {
	return &occupancyRepository{coll: store.Collection(occupancyCollection)}
}

// NewRoomRepository constructs repository.
func NewRoomRepository(store Store) RoomRepository {
	return &roomRepository{coll: store.Collection(roomsCollection)}
}

func (r *occupancyRepository) List(ctx context.Context, window DateRange) ([]domain.DailyBedOccupancy, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	return findAll[domain.DailyBedOccupancy](ctx, r.coll, bson.M{"date": window.filter()}, opts)
}

// GetByDate matches the exact midnight instant the record was created with.
func (r *occupancyRepository) GetByDate(ctx context.Context, date time.Time) (*domain.DailyBedOccupancy, error) {
	return findOne[domain.DailyBedOccupancy](ctx, r.coll, bson.M{"date": date})
}

func (r *occupancyRepository) Create(ctx context.Context, record *domain.DailyBedOccupancy) error {
	res, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = id
	}
	return nil
}

func (r *roomRepository) List(ctx context.Context) ([]domain.Room, error) {
	return findAll[domain.Room](ctx, r.coll, bson.M{})
}
