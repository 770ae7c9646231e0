package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/persistence"
)

var _ Store = (*persistence.Mongo)(nil)

func TestDateRangeFilter(t *testing.T) {
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, bson.M{"$gte": from, "$lte": to}, Between(from, to).filter())
	assert.Equal(t, bson.M{"$gte": from, "$lt": to}, Until(from, to).filter())
}

func TestReceivedFilter(t *testing.T) {
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, bson.M{
		"med_id":     7,
		"order_date": bson.M{"$gte": from, "$lt": to},
		"status":     domain.InventoryStatusReceived,
	}, receivedFilter(7, Until(from, to)))
}

func TestRatedFilters(t *testing.T) {
	assert.Equal(t, bson.M{"dept_id": 3, "feedback.rating": present}, ratedByDepartmentFilter(3))

	window := Between(time.Unix(0, 0), time.Unix(100, 0))
	got := ratedCreatedFilter(window)
	assert.Equal(t, present, got["rating"])
	assert.Equal(t, window.filter(), got["created_at"])
}

func TestRevenuePipeline(t *testing.T) {
	window := Between(time.Unix(0, 0), time.Unix(100, 0))
	pipeline := revenuePipeline(window)

	assert.Len(t, pipeline, 2)
	assert.Equal(t, "$match", pipeline[0][0].Key)
	assert.Equal(t, "$group", pipeline[1][0].Key)
	assert.Equal(t, bson.M{"_id": nil, "total": bson.M{"$sum": "$total_amount"}}, pipeline[1][0].Value)
}
