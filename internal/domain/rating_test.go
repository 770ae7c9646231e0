package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestRatingJSONForms(t *testing.T) {
	cases := map[string]Rating{
		`4`:    RatingOf(4),
		`4.5`:  RatingOf(4.5),
		`"3"`:  RatingOf(3),
		`null`: {},
		`""`:   {},
	}
	for input, want := range cases {
		var got Rating
		require.NoError(t, json.Unmarshal([]byte(input), &got), input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{`"excellent"`, `"NaN"`, `"nan"`, `"Inf"`, `"-Infinity"`} {
		var bad Rating
		assert.Error(t, json.Unmarshal([]byte(input), &bad), input)
	}
}

func TestRatingJSONOutput(t *testing.T) {
	out, err := json.Marshal(struct {
		A Rating `json:"a"`
		B Rating `json:"b"`
	}{A: RatingOf(4.25)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":4.25,"b":null}`, string(out))
}

func TestRatingBSONDecoding(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"rating":   int32(5),
		"comments": "great",
	})
	require.NoError(t, err)

	var fb ConsultationFeedback
	require.NoError(t, bson.Unmarshal(raw, &fb))
	assert.Equal(t, RatingOf(5), fb.Rating)

	raw, err = bson.Marshal(bson.M{"rating": "4"})
	require.NoError(t, err)
	require.NoError(t, bson.Unmarshal(raw, &fb))
	assert.Equal(t, RatingOf(4), fb.Rating)

	var missing Feedback
	raw, err = bson.Marshal(bson.M{"dept_id": 3})
	require.NoError(t, err)
	require.NoError(t, bson.Unmarshal(raw, &missing))
	assert.False(t, missing.Rating.Present)
}

func TestRatingBSONRoundTripKeepsAbsence(t *testing.T) {
	raw, err := bson.Marshal(Feedback{DeptID: 1})
	require.NoError(t, err)

	var decoded Feedback
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.False(t, decoded.Rating.Present)
}

func TestConsultationRating(t *testing.T) {
	assert.False(t, Consultation{}.Rating().Present)
	c := Consultation{Feedback: &ConsultationFeedback{Rating: RatingOf(3)}}
	assert.Equal(t, 3.0, c.Rating().Value)
}

func TestPrescriptionDispensedFor(t *testing.T) {
	p := Prescription{Entries: []PrescriptionEntry{
		{MedicineID: 7, DispensedQty: 2},
		{MedicineID: 8, DispensedQty: 5},
		{MedicineID: 7, DispensedQty: 3},
	}}
	assert.Equal(t, 5, p.DispensedFor(7))
	assert.Equal(t, 0, p.DispensedFor(9))
}
