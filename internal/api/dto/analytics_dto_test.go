package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hospital-analytics/internal/analytics"
	"github.com/spec-kit/hospital-analytics/internal/service"
)

func TestMedicineIDValue(t *testing.T) {
	cases := []struct {
		body string
		want int
		ok   bool
	}{
		{`{"medicineId": 12}`, 12, true},
		{`{"medicineId": 12.9}`, 12, true},
		{`{"medicineId": "7"}`, 7, true},
		{`{"medicineId": " 42abc"}`, 42, true},
		{`{"medicineId": "abc"}`, 0, false},
		{`{"medicineId": ""}`, 0, false},
		{`{"medicineId": null}`, 0, false},
		{`{}`, 0, false},
		{`{"medicineId": true}`, 0, false},
		{`{"medicineId": 1e30}`, 0, false},
		{`{"medicineId": -1e30}`, 0, false},
		{`{"medicineId": "99999999999999999999"}`, 0, false},
	}
	for _, tc := range cases {
		var req MedicineTrendRequest
		require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
		got, err := req.MedicineIDValue()
		if !tc.ok {
			assert.Error(t, err, tc.body)
			continue
		}
		require.NoError(t, err, tc.body)
		assert.Equal(t, tc.want, got, tc.body)
	}
}

func TestQuadrantRequestThresholds(t *testing.T) {
	var req QuadrantRequest
	require.NoError(t, json.Unmarshal([]byte(`{"ratingThreshold": 4, "consultationThreshold": 2.5}`), &req))
	th, ok := req.Thresholds()
	require.True(t, ok)
	assert.Equal(t, analytics.Thresholds{Rating: 4, Volume: 3}, th)

	_, ok = QuadrantRequest{}.Thresholds()
	assert.False(t, ok)
}

func TestKPIResponseFormatting(t *testing.T) {
	resp := NewKPIResponse(service.DashboardKPIs{
		Patients:      analytics.Compare(3, 2),
		Revenue:       analytics.Compare(250000, 300000),
		RevenuePeriod: "October 2026 (till date)",
		Satisfaction: analytics.Satisfaction(analytics.Average{}, analytics.Average{Value: 4.4, Count: 5},
			"October 2026 (till date)", "September 2026"),
	})

	assert.Equal(t, 3, resp.TotalPatients.Value)
	assert.Equal(t, "50.0", resp.TotalPatients.Change)
	assert.Equal(t, analytics.TrendUp, resp.TotalPatients.Trend)
	assert.Equal(t, "2.5L", resp.Revenue.Value)
	assert.Equal(t, "-16.7", resp.Revenue.Change)
	assert.Equal(t, analytics.TrendDown, resp.Revenue.Trend)
	assert.Equal(t, "4.4/5.0", resp.Satisfaction.Value)
	assert.Equal(t, "September 2026", resp.Satisfaction.Period)
	assert.Equal(t, "0.0", resp.Satisfaction.Change)
}

func TestDoctorQuadrantResponse(t *testing.T) {
	stats := []analytics.DoctorStats{
		{DoctorID: 1, DoctorName: "Dr. A", DepartmentName: "Cardiology", Rating: 4.666, Consultations: 3},
		{DoctorID: 2, DoctorName: "Dr. B", DepartmentName: "Unknown", Rating: 2, Consultations: 1},
	}
	th := analytics.Thresholds{Rating: 4, Volume: 2}
	report := service.DoctorQuadrantReport{
		Quadrants: analytics.Classify(stats,
			func(s analytics.DoctorStats) float64 { return s.Rating },
			func(s analytics.DoctorStats) int { return s.Consultations }, th),
		Points: stats,
	}

	resp := NewDoctorQuadrantResponse(report)
	require.Len(t, resp.HighConsHighRating, 1)
	assert.Equal(t, "4.67", resp.HighConsHighRating[0].Rating)
	assert.Empty(t, resp.HighConsLowRating)
	assert.NotNil(t, resp.HighConsLowRating)
	assert.Equal(t, 1, resp.Counts[analytics.LowVolumeLowRating])
	assert.Len(t, resp.GraphData, 2)

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"DOCTOR":"Dr. A"`)
	assert.Contains(t, string(body), `"highConsLowRating":[]`)
}

func TestOccupancyResponseKeysByPeriod(t *testing.T) {
	resp := NewOccupancyResponse(service.OccupancyReport{
		Period: analytics.PeriodWeekly,
		Trends: []analytics.TrendPoint{{Key: "2024-W10", TotalOccupancy: 12}},
	})
	assert.Equal(t, []map[string]any{{"week": "2024-W10", "totalOccupancy": 12}}, resp.Trends)
}

func TestOccupancyResponseDatesArePlain(t *testing.T) {
	resp := NewOccupancyResponse(service.OccupancyReport{
		Period: analytics.PeriodMonthly,
		Start:  time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, time.April, 30, 23, 59, 59, 0, time.UTC),
	})

	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"period":"monthly","startDate":"2024-03-01","endDate":"2024-04-30","trends":[]}`, string(out))
}
