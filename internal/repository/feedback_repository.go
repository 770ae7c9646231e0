package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

// FeedbackRepository persists standalone feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	List(ctx context.Context) ([]domain.Feedback, error)
	ListRated(ctx context.Context) ([]domain.Feedback, error)
	ListRatedCreated(ctx context.Context, window DateRange) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	coll *mongo.Collection
}

// NewFeedbackRepository constructs repository.
func NewFeedbackRepository(store Store) FeedbackRepository {
	return &feedbackRepository{coll: store.Collection(feedbacksCollection)}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	res, err := r.coll.InsertOne(ctx, feedback)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		feedback.ID = id
	}
	return nil
}

func (r *feedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	return findAll[domain.Feedback](ctx, r.coll, bson.M{})
}

func (r *feedbackRepository) ListRated(ctx context.Context) ([]domain.Feedback, error) {
	return findAll[domain.Feedback](ctx, r.coll, bson.M{"rating": present})
}

func (r *feedbackRepository) ListRatedCreated(ctx context.Context, window DateRange) ([]domain.Feedback, error) {
	return findAll[domain.Feedback](ctx, r.coll, ratedCreatedFilter(window))
}

func ratedCreatedFilter(window DateRange) bson.M {
	return bson.M{"created_at": window.filter(), "rating": present}
}
