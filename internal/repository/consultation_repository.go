package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

// ConsultationRepository reads consultations and their embedded feedback.
type ConsultationRepository interface {
	GetByID(ctx context.Context, id int) (*domain.Consultation, error)
	List(ctx context.Context) ([]domain.Consultation, error)
	ListRatedByDepartment(ctx context.Context, deptID int) ([]domain.Consultation, error)
	ListCommentsByRating(ctx context.Context, rating int) ([]string, error)
	CountBooked(ctx context.Context, window DateRange) (int64, error)
	SetFeedback(ctx context.Context, id int, feedback domain.ConsultationFeedback) (*domain.Consultation, error)
}

type consultationRepository struct {
	coll *mongo.Collection
}

// NewConsultationRepository constructs repository.
func NewConsultationRepository(store Store) ConsultationRepository {
	return &consultationRepository{coll: store.Collection(consultationsCollection)}
}

func (r *consultationRepository) GetByID(ctx context.Context, id int) (*domain.Consultation, error) {
	return findOne[domain.Consultation](ctx, r.coll, bson.M{"_id": id})
}

// List returns every consultation, newest booking first.
func (r *consultationRepository) List(ctx context.Context) ([]domain.Consultation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "booked_date_time", Value: -1}})
	return findAll[domain.Consultation](ctx, r.coll, bson.M{}, opts)
}

func (r *consultationRepository) ListRatedByDepartment(ctx context.Context, deptID int) ([]domain.Consultation, error) {
	return findAll[domain.Consultation](ctx, r.coll, ratedByDepartmentFilter(deptID))
}

func (r *consultationRepository) ListCommentsByRating(ctx context.Context, rating int) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"feedback.comments": 1, "_id": 0})
	consultations, err := findAll[domain.Consultation](ctx, r.coll, bson.M{"feedback.rating": rating}, opts)
	if err != nil {
		return nil, err
	}
	comments := make([]string, 0, len(consultations))
	for _, c := range consultations {
		if c.Feedback != nil {
			comments = append(comments, c.Feedback.Comments)
		}
	}
	return comments, nil
}

func (r *consultationRepository) CountBooked(ctx context.Context, window DateRange) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"booked_date_time": window.filter()})
}

func (r *consultationRepository) SetFeedback(ctx context.Context, id int, feedback domain.ConsultationFeedback) (*domain.Consultation, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Consultation
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"feedback": feedback}},
		opts,
	).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func ratedByDepartmentFilter(deptID int) bson.M {
	return bson.M{"dept_id": deptID, "feedback.rating": present}
}
