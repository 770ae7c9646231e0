package dto

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/hospital-analytics/internal/analytics"
	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/service"
)

const dateLayout = "2006-01-02"

var errInvalidMedicineID = errors.New("invalid medicineId")

// QuadrantRequest carries the quadrant thresholds.
type QuadrantRequest struct {
	RatingThreshold       *float64 `json:"ratingThreshold"`
	ConsultationThreshold *float64 `json:"consultationThreshold"`
}

// Thresholds converts the request. A fractional consultation threshold rounds up
// since volumes are whole counts.
func (r QuadrantRequest) Thresholds() (analytics.Thresholds, bool) {
	if r.RatingThreshold == nil || r.ConsultationThreshold == nil {
		return analytics.Thresholds{}, false
	}
	return analytics.Thresholds{
		Rating: *r.RatingThreshold,
		Volume: int(math.Ceil(*r.ConsultationThreshold)),
	}, true
}

// DateRangeRequest is the body of the trend endpoints.
type DateRangeRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Range converts the request to service input.
func (r DateRangeRequest) Range() service.RangeInput {
	return service.RangeInput{StartDate: r.StartDate, EndDate: r.EndDate}
}

// MedicineTrendRequest identifies the medicine by number or numeric string.
type MedicineTrendRequest struct {
	MedicineID any `json:"medicineId"`
	DateRangeRequest
}

// MedicineIDValue reads the id the way the dashboard sends it: a number is
// truncated and a string contributes its leading integer.
func (r MedicineTrendRequest) MedicineIDValue() (int, error) {
	switch v := r.MedicineID.(type) {
	case float64:
		if math.IsNaN(v) || v <= math.MinInt32 || v >= math.MaxInt32 {
			return 0, errInvalidMedicineID
		}
		return int(v), nil
	case string:
		return leadingInt(v)
	default:
		return 0, errInvalidMedicineID
	}
}

func leadingInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, errInvalidMedicineID
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, errInvalidMedicineID
	}
	return n, nil
}

// DoctorQuadrantItem is a doctor row in a quadrant table.
type DoctorQuadrantItem struct {
	Doctor        string `json:"DOCTOR"`
	Department    string `json:"DEPARTMENT"`
	Rating        string `json:"RATING"`
	Consultations int    `json:"CONSULTATIONS"`
}

// DoctorGraphPoint is a doctor on the scatter plot.
type DoctorGraphPoint struct {
	DoctorID      int     `json:"doctorId"`
	DoctorName    string  `json:"doctorName"`
	Department    string  `json:"department"`
	Rating        float64 `json:"rating"`
	Consultations int     `json:"consultations"`
}

// DoctorQuadrantResponse is the doctor scatter plot payload.
type DoctorQuadrantResponse struct {
	HighConsHighRating []DoctorQuadrantItem       `json:"highConsHighRating"`
	HighConsLowRating  []DoctorQuadrantItem       `json:"highConsLowRating"`
	LowConsHighRating  []DoctorQuadrantItem       `json:"lowConsHighRating"`
	LowConsLowRating   []DoctorQuadrantItem       `json:"lowConsLowRating"`
	Counts             map[analytics.Quadrant]int `json:"counts"`
	GraphData          []DoctorGraphPoint         `json:"graphData"`
}

// NewDoctorQuadrantResponse formats the report.
func NewDoctorQuadrantResponse(report service.DoctorQuadrantReport) DoctorQuadrantResponse {
	items := func(stats []analytics.DoctorStats) []DoctorQuadrantItem {
		out := make([]DoctorQuadrantItem, 0, len(stats))
		for _, s := range stats {
			out = append(out, DoctorQuadrantItem{
				Doctor:        s.DoctorName,
				Department:    s.DepartmentName,
				Rating:        fixed(s.Rating, 2),
				Consultations: s.Consultations,
			})
		}
		return out
	}

	resp := DoctorQuadrantResponse{
		HighConsHighRating: items(report.Quadrants.HighVolumeHighRating),
		HighConsLowRating:  items(report.Quadrants.HighVolumeLowRating),
		LowConsHighRating:  items(report.Quadrants.LowVolumeHighRating),
		LowConsLowRating:   items(report.Quadrants.LowVolumeLowRating),
		Counts:             report.Quadrants.Counts(),
		GraphData:          make([]DoctorGraphPoint, 0, len(report.Points)),
	}
	for _, p := range report.Points {
		resp.GraphData = append(resp.GraphData, DoctorGraphPoint{
			DoctorID:      p.DoctorID,
			DoctorName:    p.DoctorName,
			Department:    p.DepartmentName,
			Rating:        p.Rating,
			Consultations: p.Consultations,
		})
	}
	return resp
}

// DepartmentQuadrantItem is a department row in a quadrant table.
type DepartmentQuadrantItem struct {
	Department    string `json:"DEPARTMENT"`
	AvgRating     string `json:"AVG_RATING"`
	Consultations int    `json:"CONSULTATIONS"`
	DoctorCount   int    `json:"DOCTOR_COUNT"`
}

// DepartmentQuadrant is one quadrant table with its size.
type DepartmentQuadrant struct {
	Items []DepartmentQuadrantItem `json:"items"`
	Count int                      `json:"count"`
}

// DepartmentGraphPoint is a department on the scatter plot.
type DepartmentGraphPoint struct {
	DepartmentID   int     `json:"departmentId"`
	DepartmentName string  `json:"departmentName"`
	AvgRating      float64 `json:"avgRating"`
	Consultations  int     `json:"consultations"`
	DoctorCount    int     `json:"doctorCount"`
}

// DepartmentQuadrantResponse is the department scatter plot payload.
type DepartmentQuadrantResponse struct {
	HighConsHighRating DepartmentQuadrant     `json:"highConsHighRating"`
	HighConsLowRating  DepartmentQuadrant     `json:"highConsLowRating"`
	LowConsHighRating  DepartmentQuadrant     `json:"lowConsHighRating"`
	LowConsLowRating   DepartmentQuadrant     `json:"lowConsLowRating"`
	GraphData          []DepartmentGraphPoint `json:"graphData"`
}

// NewDepartmentQuadrantResponse formats the report.
func NewDepartmentQuadrantResponse(report service.DepartmentQuadrantReport) DepartmentQuadrantResponse {
	quadrant := func(stats []analytics.DepartmentStats) DepartmentQuadrant {
		q := DepartmentQuadrant{Items: make([]DepartmentQuadrantItem, 0, len(stats)), Count: len(stats)}
		for _, s := range stats {
			q.Items = append(q.Items, DepartmentQuadrantItem{
				Department:    s.DepartmentName,
				AvgRating:     fixed(s.AvgRating, 2),
				Consultations: s.Consultations,
				DoctorCount:   s.DoctorCount,
			})
		}
		return q
	}

	resp := DepartmentQuadrantResponse{
		HighConsHighRating: quadrant(report.Quadrants.HighVolumeHighRating),
		HighConsLowRating:  quadrant(report.Quadrants.HighVolumeLowRating),
		LowConsHighRating:  quadrant(report.Quadrants.LowVolumeHighRating),
		LowConsLowRating:   quadrant(report.Quadrants.LowVolumeLowRating),
		GraphData:          make([]DepartmentGraphPoint, 0, len(report.Points)),
	}
	for _, p := range report.Points {
		resp.GraphData = append(resp.GraphData, DepartmentGraphPoint{
			DepartmentID:   p.DepartmentID,
			DepartmentName: p.DepartmentName,
			AvgRating:      p.AvgRating,
			Consultations:  p.Consultations,
			DoctorCount:    p.DoctorCount,
		})
	}
	return resp
}

// OccupancyResponse is the bed occupancy trend payload. Each trend is keyed by
// "week" or "month" depending on the period.
type OccupancyResponse struct {
	Period    analytics.Period `json:"period"`
	StartDate string           `json:"startDate"`
	EndDate   string           `json:"endDate"`
	Trends    []map[string]any `json:"trends"`
}

// NewOccupancyResponse formats the report.
func NewOccupancyResponse(report service.OccupancyReport) OccupancyResponse {
	field := report.Period.Field()
	trends := make([]map[string]any, 0, len(report.Trends))
	for _, t := range report.Trends {
		trends = append(trends, map[string]any{field: t.Key, "totalOccupancy": t.TotalOccupancy})
	}
	return OccupancyResponse{
		Period:    report.Period,
		StartDate: report.Start.Format(dateLayout),
		EndDate:   report.End.Format(dateLayout),
		Trends:    trends,
	}
}

// MedicineRef names the medicine a trend is about.
type MedicineRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InventoryTrendResponse is the received stock payload.
type InventoryTrendResponse struct {
	Medicine          MedicineRef                 `json:"medicine"`
	MonthlyData       analytics.Series            `json:"monthlyData"`
	WeeklyDataByMonth map[string]analytics.Series `json:"weeklyDataByMonth"`
	TotalOrders       float64                     `json:"totalOrders"`
}

// PrescriptionTrendResponse is the dispensed quantity payload.
type PrescriptionTrendResponse struct {
	Medicine                   MedicineRef                 `json:"medicine"`
	MonthlyData                analytics.Series            `json:"monthlyData"`
	WeeklyDataByMonth          map[string]analytics.Series `json:"weeklyDataByMonth"`
	TotalPrescriptionsQuantity float64                     `json:"totalPrescriptionsQuantity"`
}

// NewInventoryTrendResponse formats the report.
func NewInventoryTrendResponse(report service.MedicineTrendReport) InventoryTrendResponse {
	return InventoryTrendResponse{
		Medicine:          medicineRef(report.Medicine),
		MonthlyData:       report.Breakdown.Monthly,
		WeeklyDataByMonth: report.Breakdown.WeeklyByMonth,
		TotalOrders:       report.Breakdown.Total,
	}
}

// NewPrescriptionTrendResponse formats the report.
func NewPrescriptionTrendResponse(report service.MedicineTrendReport) PrescriptionTrendResponse {
	return PrescriptionTrendResponse{
		Medicine:                   medicineRef(report.Medicine),
		MonthlyData:                report.Breakdown.Monthly,
		WeeklyDataByMonth:          report.Breakdown.WeeklyByMonth,
		TotalPrescriptionsQuantity: report.Breakdown.Total,
	}
}

func medicineRef(m domain.Medicine) MedicineRef {
	return MedicineRef{ID: strconv.Itoa(m.ID), Name: m.MedName}
}

// PatientsKPI is the patient count card.
type PatientsKPI struct {
	Value  int             `json:"value"`
	Change string          `json:"change"`
	Trend  analytics.Trend `json:"trend"`
}

// PeriodKPI is a dashboard card with a formatted value and its period.
type PeriodKPI struct {
	Value  string          `json:"value"`
	Period string          `json:"period"`
	Change string          `json:"change"`
	Trend  analytics.Trend `json:"trend"`
}

// KPIResponse is the dashboard header.
type KPIResponse struct {
	TotalPatients PatientsKPI `json:"totalPatients"`
	Revenue       PeriodKPI   `json:"revenue"`
	Satisfaction  PeriodKPI   `json:"satisfaction"`
}

// NewKPIResponse formats revenue in lakhs and satisfaction out of 5.
func NewKPIResponse(k service.DashboardKPIs) KPIResponse {
	return KPIResponse{
		TotalPatients: PatientsKPI{
			Value:  int(k.Patients.Current),
			Change: fixed(k.Patients.Change, 1),
			Trend:  k.Patients.Trend,
		},
		Revenue: PeriodKPI{
			Value:  fixed(k.Revenue.Current/100000, 1) + "L",
			Period: k.RevenuePeriod,
			Change: fixed(k.Revenue.Change, 1),
			Trend:  k.Revenue.Trend,
		},
		Satisfaction: PeriodKPI{
			Value:  fixed(k.Satisfaction.Current, 1) + "/5.0",
			Period: k.Satisfaction.Period,
			Change: fixed(k.Satisfaction.Change, 1),
			Trend:  k.Satisfaction.Trend,
		},
	}
}

// SnapshotResponse is a stored KPI snapshot.
type SnapshotResponse struct {
	ID                   string    `json:"id"`
	CapturedAt           time.Time `json:"capturedAt"`
	PeriodLabel          string    `json:"periodLabel"`
	PatientsCurrent      int64     `json:"patientsCurrent"`
	PatientsPrevious     int64     `json:"patientsPrevious"`
	RevenueCurrent       float64   `json:"revenueCurrent"`
	RevenuePrevious      float64   `json:"revenuePrevious"`
	SatisfactionCurrent  float64   `json:"satisfactionCurrent"`
	SatisfactionPrevious float64   `json:"satisfactionPrevious"`
	SatisfactionPeriod   string    `json:"satisfactionPeriod"`
}

// NewSnapshotResponses converts stored snapshots.
func NewSnapshotResponses(snapshots []domain.KPISnapshot) []SnapshotResponse {
	out := make([]SnapshotResponse, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, SnapshotResponse{
			ID:                   s.ID,
			CapturedAt:           s.CapturedAt,
			PeriodLabel:          s.PeriodLabel,
			PatientsCurrent:      s.PatientsCurrent,
			PatientsPrevious:     s.PatientsPrevious,
			RevenueCurrent:       s.RevenueCurrent,
			RevenuePrevious:      s.RevenuePrevious,
			SatisfactionCurrent:  s.SatisfactionCurrent,
			SatisfactionPrevious: s.SatisfactionPrevious,
			SatisfactionPeriod:   s.SatisfactionPeriod,
		})
	}
	return out
}

func fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
