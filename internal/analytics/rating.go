package analytics

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

const maxDoctorRating = 5.0

// RatingRange is a half-open doctor rating bucket [Min, Max).
type RatingRange struct {
	Min   float64
	Max   float64
	Label string
}

// DoctorRatingRanges are the fixed dashboard buckets. The top bucket also takes 5.0.
var DoctorRatingRanges = []RatingRange{
	{Min: 1.5, Max: 2.2, Label: "1.5-2.2"},
	{Min: 2.2, Max: 2.9, Label: "2.2-2.9"},
	{Min: 2.9, Max: 3.6, Label: "2.9-3.6"},
	{Min: 3.6, Max: 4.3, Label: "3.6-4.3"},
	{Min: 4.3, Max: 5.0, Label: "4.3-5.0"},
}

func (r RatingRange) contains(v float64) bool {
	if v >= r.Min && v < r.Max {
		return true
	}
	return r.Max == maxDoctorRating && v == maxDoctorRating
}

// RatingBuckets is the doctor rating histogram. Unbucketed counts doctors outside every range.
type RatingBuckets struct {
	Labels     []string
	Counts     map[string]int
	Unbucketed int
}

// Total returns the number of bucketed doctors.
func (b RatingBuckets) Total() int {
	return lo.Sum(lo.Values(b.Counts))
}

// DepartmentRating averages the feedback ratings of consultations booked in deptID.
func DepartmentRating(consultations []domain.Consultation, deptID int) Average {
	ratings := lo.FilterMap(consultations, func(c domain.Consultation, _ int) (float64, bool) {
		r := c.Rating()
		return r.Value, c.DeptID == deptID && r.Present
	})
	return Mean(ratings)
}

// FeedbackRatings extracts the present ratings.
func FeedbackRatings(feedback []domain.Feedback) []float64 {
	return lo.FilterMap(feedback, func(f domain.Feedback, _ int) (float64, bool) {
		return f.Rating.Value, f.Rating.Present
	})
}

// OverallRating averages every rated feedback.
func OverallRating(feedback []domain.Feedback) Average {
	return Mean(FeedbackRatings(feedback))
}

// RatingHistogram counts feedback per literal rating value. Only observed values appear.
func RatingHistogram(feedback []domain.Feedback) map[string]int {
	return lo.CountValuesBy(FeedbackRatings(feedback), func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	})
}

// DoctorRatingBuckets places each doctor in the first range containing its rating.
func DoctorRatingBuckets(doctors []domain.Doctor) RatingBuckets {
	buckets := RatingBuckets{
		Labels: make([]string, 0, len(DoctorRatingRanges)),
		Counts: make(map[string]int, len(DoctorRatingRanges)),
	}
	for _, r := range DoctorRatingRanges {
		buckets.Labels = append(buckets.Labels, r.Label)
		buckets.Counts[r.Label] = 0
	}

	for _, doctor := range doctors {
		placed := false
		for _, r := range DoctorRatingRanges {
			if r.contains(doctor.Rating) {
				buckets.Counts[r.Label]++
				placed = true
				break
			}
		}
		if !placed {
			buckets.Unbucketed++
		}
	}
	return buckets
}
