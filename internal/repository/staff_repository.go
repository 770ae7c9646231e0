package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

// DoctorRepository reads doctors.
type DoctorRepository interface {
	List(ctx context.Context) ([]domain.Doctor, error)
}

// DepartmentRepository reads departments.
type DepartmentRepository interface {
	List(ctx context.Context) ([]domain.Department, error)
}

type doctorRepository struct {
	coll *mongo.Collection
}

type departmentRepository struct {
	coll *mongo.Collection
}

// NewDoctorRepository constructs repository.
func NewDoctorRepository(store Store) DoctorRepository {
	return &doctorRepository{coll: store.Collection(doctorsCollection)}
}

// NewDepartmentRepository constructs repository.
func NewDepartmentRepository(store Store) DepartmentRepository {
	return &departmentRepository{coll: store.Collection(departmentsCollection)}
}

func (r *doctorRepository) List(ctx context.Context) ([]domain.Doctor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return findAll[domain.Doctor](ctx, r.coll, bson.M{}, opts)
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	return findAll[domain.Department](ctx, r.coll, bson.M{})
}
