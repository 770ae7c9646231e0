package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/hospital-analytics/internal/analytics"
	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/repository"
	apperrors "github.com/spec-kit/hospital-analytics/pkg/util/errorutil"
)

const defaultMonthlyReadConcurrency = 4

// AnalyticsService computes dashboard reports from the hospital records.
type AnalyticsService struct {
	consultations repository.ConsultationRepository
	feedbacks     repository.FeedbackRepository
	doctors       repository.DoctorRepository
	departments   repository.DepartmentRepository
	bills         repository.BillRepository
	prescriptions repository.PrescriptionRepository
	medicines     repository.MedicineRepository
	inventoryLogs repository.InventoryLogRepository
	occupancy     repository.OccupancyRepository
	loc           *time.Location
	now           func() time.Time
	monthlyReads  int
}

// AnalyticsDependencies bundles repositories for the analytics service.
type AnalyticsDependencies struct {
	ConsultationRepo repository.ConsultationRepository
	FeedbackRepo     repository.FeedbackRepository
	DoctorRepo       repository.DoctorRepository
	DepartmentRepo   repository.DepartmentRepository
	BillRepo         repository.BillRepository
	PrescriptionRepo repository.PrescriptionRepository
	MedicineRepo     repository.MedicineRepository
	InventoryLogRepo repository.InventoryLogRepository
	OccupancyRepo    repository.OccupancyRepository
	// Location is the calendar used for month and week buckets. Defaults to UTC.
	Location *time.Location
	Clock    func() time.Time
	// MonthlyReadConcurrency bounds the parallel per-month inventory reads.
	MonthlyReadConcurrency int
}

// RangeInput carries the raw request dates of a trend report.
type RangeInput struct {
	StartDate string
	EndDate   string
}

// DoctorQuadrantReport is the doctor scatter plot split into quadrants.
type DoctorQuadrantReport struct {
	Quadrants analytics.Quadrants[analytics.DoctorStats]
	Points    []analytics.DoctorStats
}

// DepartmentQuadrantReport is the department scatter plot split into quadrants.
type DepartmentQuadrantReport struct {
	Quadrants analytics.Quadrants[analytics.DepartmentStats]
	Points    []analytics.DepartmentStats
}

// OccupancyReport is a bed occupancy trend over a date range.
type OccupancyReport struct {
	Period analytics.Period
	Start  time.Time
	End    time.Time
	Trends []analytics.TrendPoint
}

// MedicineTrendReport is a per-medicine monthly series with a weekly breakdown.
type MedicineTrendReport struct {
	Medicine  domain.Medicine
	Breakdown analytics.Breakdown
}

// DashboardKPIs compares the running month with the previous month.
type DashboardKPIs struct {
	CapturedAt    time.Time
	Patients      analytics.Comparison
	Revenue       analytics.Comparison
	RevenuePeriod string
	Satisfaction  analytics.SatisfactionComparison
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(deps AnalyticsDependencies) *AnalyticsService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	reads := deps.MonthlyReadConcurrency
	if reads <= 0 {
		reads = defaultMonthlyReadConcurrency
	}
	return &AnalyticsService{
		consultations: deps.ConsultationRepo,
		feedbacks:     deps.FeedbackRepo,
		doctors:       deps.DoctorRepo,
		departments:   deps.DepartmentRepo,
		bills:         deps.BillRepo,
		prescriptions: deps.PrescriptionRepo,
		medicines:     deps.MedicineRepo,
		inventoryLogs: deps.InventoryLogRepo,
		occupancy:     deps.OccupancyRepo,
		loc:           loc,
		now:           clock,
		monthlyReads:  reads,
	}
}

// DepartmentRating averages the consultation feedback of one department.
func (s *AnalyticsService) DepartmentRating(ctx context.Context, deptID int) (analytics.Average, error) {
	consultations, err := s.consultations.ListRatedByDepartment(ctx, deptID)
	if err != nil {
		return analytics.Average{}, apperrors.MapError("consultations", err)
	}
	return analytics.DepartmentRating(consultations, deptID), nil
}

// OverallRating averages every rated feedback.
func (s *AnalyticsService) OverallRating(ctx context.Context) (analytics.Average, error) {
	feedback, err := s.feedbacks.ListRated(ctx)
	if err != nil {
		return analytics.Average{}, apperrors.MapError("feedbacks", err)
	}
	return analytics.OverallRating(feedback), nil
}

// RatingDistribution counts feedback per rating value.
func (s *AnalyticsService) RatingDistribution(ctx context.Context) (map[string]int, error) {
	feedback, err := s.feedbacks.ListRated(ctx)
	if err != nil {
		return nil, apperrors.MapError("feedbacks", err)
	}
	return analytics.RatingHistogram(feedback), nil
}

// DoctorRatingDistribution buckets doctors by their own rating.
func (s *AnalyticsService) DoctorRatingDistribution(ctx context.Context) (analytics.RatingBuckets, error) {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return analytics.RatingBuckets{}, apperrors.MapError("doctors", err)
	}
	return analytics.DoctorRatingBuckets(doctors), nil
}

// DoctorQuadrants classifies doctors by rating and consultation volume.
func (s *AnalyticsService) DoctorQuadrants(ctx context.Context, th analytics.Thresholds) (DoctorQuadrantReport, error) {
	in, err := s.loadPerformanceInputs(ctx)
	if err != nil {
		return DoctorQuadrantReport{}, err
	}
	points := analytics.DoctorPerformance(in.consultations, in.doctors, in.departments)
	return DoctorQuadrantReport{
		Quadrants: analytics.Classify(points,
			func(d analytics.DoctorStats) float64 { return d.Rating },
			func(d analytics.DoctorStats) int { return d.Consultations },
			th),
		Points: points,
	}, nil
}

// DepartmentQuadrants classifies departments by average doctor rating and consultation volume.
func (s *AnalyticsService) DepartmentQuadrants(ctx context.Context, th analytics.Thresholds) (DepartmentQuadrantReport, error) {
	in, err := s.loadPerformanceInputs(ctx)
	if err != nil {
		return DepartmentQuadrantReport{}, err
	}
	points := analytics.DepartmentPerformance(in.consultations, in.doctors, in.departments)
	return DepartmentQuadrantReport{
		Quadrants: analytics.Classify(points,
			func(d analytics.DepartmentStats) float64 { return d.AvgRating },
			func(d analytics.DepartmentStats) int { return d.Consultations },
			th),
		Points: points,
	}, nil
}

// BedOccupancyTrends sums daily occupancy per ISO week or calendar month.
func (s *AnalyticsService) BedOccupancyTrends(ctx context.Context, period string, in RangeInput) (OccupancyReport, error) {
	start, end, err := s.parseRange(in)
	if err != nil {
		return OccupancyReport{}, err
	}
	p, err := analytics.ParsePeriod(period)
	if err != nil {
		return OccupancyReport{}, apperrors.NewValidationError(err.Error(), map[string]any{"period": period})
	}

	records, err := s.occupancy.List(ctx, repository.Between(start, end))
	if err != nil {
		return OccupancyReport{}, apperrors.MapError("bed occupancy", err)
	}
	for i := range records {
		records[i].Date = records[i].Date.In(s.loc)
	}

	return OccupancyReport{
		Period: p,
		Start:  start,
		End:    end,
		Trends: analytics.OccupancyTrend(records, start, end, p),
	}, nil
}

// MedicineInventoryTrends reports received stock of one medicine. Months come from
// the requested range; each month's weekly split covers that whole calendar month.
func (s *AnalyticsService) MedicineInventoryTrends(ctx context.Context, medID int, in RangeInput) (MedicineTrendReport, error) {
	start, end, err := s.parseRange(in)
	if err != nil {
		return MedicineTrendReport{}, err
	}
	medicine, err := s.medicines.GetByID(ctx, medID)
	if err != nil {
		return MedicineTrendReport{}, apperrors.MapError("medicine", err)
	}

	logs, err := s.inventoryLogs.ListReceived(ctx, medID, repository.Between(start, end))
	if err != nil {
		return MedicineTrendReport{}, apperrors.MapError("inventory logs", err)
	}
	months := analytics.MonthlyTotals(s.inventoryPoints(logs))

	weekly := make([]analytics.Series, len(months))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.monthlyReads)
	for i, month := range months {
		i, month := i, month
		g.Go(func() error {
			first, next := analytics.MonthBounds(month.Year, month.Month, s.loc)
			monthLogs, err := s.inventoryLogs.ListReceived(gctx, medID, repository.Until(first, next))
			if err != nil {
				return apperrors.MapError("inventory logs", err)
			}
			weekly[i] = analytics.WeeklyTotals(s.inventoryPoints(monthLogs))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MedicineTrendReport{}, err
	}

	breakdown := analytics.Breakdown{
		Monthly:       analytics.SeriesOf(months),
		WeeklyByMonth: make(map[string]analytics.Series, len(months)),
	}
	for i, month := range months {
		breakdown.WeeklyByMonth[month.Label] = weekly[i]
		breakdown.Total += month.Total
	}
	return MedicineTrendReport{Medicine: *medicine, Breakdown: breakdown}, nil
}

// MedicinePrescriptionTrends reports dispensed quantity of one medicine, dated by
// the bill that charged the prescription.
func (s *AnalyticsService) MedicinePrescriptionTrends(ctx context.Context, medID int, in RangeInput) (MedicineTrendReport, error) {
	start, end, err := s.parseRange(in)
	if err != nil {
		return MedicineTrendReport{}, err
	}
	medicine, err := s.medicines.GetByID(ctx, medID)
	if err != nil {
		return MedicineTrendReport{}, apperrors.MapError("medicine", err)
	}

	bills, err := s.bills.ListGenerated(ctx, repository.Between(start, end))
	if err != nil {
		return MedicineTrendReport{}, apperrors.MapError("bills", err)
	}

	ids := lo.Uniq(lo.FlatMap(bills, func(b domain.Bill, _ int) []int {
		return medicationPrescriptionIDs(b)
	}))
	prescriptions, err := s.prescriptions.ListByIDs(ctx, ids)
	if err != nil {
		return MedicineTrendReport{}, apperrors.MapError("prescriptions", err)
	}
	byID := lo.KeyBy(prescriptions, func(p domain.Prescription) int { return p.ID })

	var points []analytics.DatedQuantity
	for _, bill := range bills {
		for _, id := range medicationPrescriptionIDs(bill) {
			prescription, ok := byID[id]
			if !ok {
				continue
			}
			if qty := prescription.DispensedFor(medID); qty > 0 {
				points = append(points, analytics.DatedQuantity{
					Date:     bill.GenerationDate.In(s.loc),
					Quantity: float64(qty),
				})
			}
		}
	}

	return MedicineTrendReport{Medicine: *medicine, Breakdown: analytics.MonthWeekBreakdown(points)}, nil
}

// DashboardKPIs compares patients, revenue and satisfaction month over month.
func (s *AnalyticsService) DashboardKPIs(ctx context.Context) (DashboardKPIs, error) {
	now := s.now().In(s.loc)
	current, previous := analytics.ComparisonWindows(now)
	cur := repository.Between(current.Start, current.End)
	prev := repository.Between(previous.Start, previous.End)

	var (
		patientsCur, patientsPrev int64
		revenueCur, revenuePrev   float64
		ratedCur, ratedPrev       []domain.Feedback
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		patientsCur, err = s.consultations.CountBooked(gctx, cur)
		return apperrors.MapError("consultations", err)
	})
	g.Go(func() (err error) {
		patientsPrev, err = s.consultations.CountBooked(gctx, prev)
		return apperrors.MapError("consultations", err)
	})
	g.Go(func() (err error) {
		revenueCur, err = s.bills.SumTotal(gctx, cur)
		return apperrors.MapError("bills", err)
	})
	g.Go(func() (err error) {
		revenuePrev, err = s.bills.SumTotal(gctx, prev)
		return apperrors.MapError("bills", err)
	})
	g.Go(func() (err error) {
		ratedCur, err = s.feedbacks.ListRatedCreated(gctx, cur)
		return apperrors.MapError("feedbacks", err)
	})
	g.Go(func() (err error) {
		ratedPrev, err = s.feedbacks.ListRatedCreated(gctx, prev)
		return apperrors.MapError("feedbacks", err)
	})
	if err := g.Wait(); err != nil {
		return DashboardKPIs{}, err
	}

	runningLabel := analytics.PeriodLabel(now, true)
	return DashboardKPIs{
		CapturedAt:    now,
		Patients:      analytics.Compare(float64(patientsCur), float64(patientsPrev)),
		Revenue:       analytics.Compare(revenueCur, revenuePrev),
		RevenuePeriod: runningLabel,
		Satisfaction: analytics.Satisfaction(
			analytics.OverallRating(ratedCur),
			analytics.OverallRating(ratedPrev),
			runningLabel,
			analytics.PeriodLabel(previous.Start, false),
		),
	}, nil
}

// Location is the calendar the service buckets in.
func (s *AnalyticsService) Location() *time.Location {
	return s.loc
}

type performanceInputs struct {
	consultations []domain.Consultation
	doctors       []domain.Doctor
	departments   []domain.Department
}

func (s *AnalyticsService) loadPerformanceInputs(ctx context.Context) (performanceInputs, error) {
	var in performanceInputs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.consultations, err = s.consultations.List(gctx)
		return apperrors.MapError("consultations", err)
	})
	g.Go(func() (err error) {
		in.doctors, err = s.doctors.List(gctx)
		return apperrors.MapError("doctors", err)
	})
	g.Go(func() (err error) {
		in.departments, err = s.departments.List(gctx)
		return apperrors.MapError("departments", err)
	})
	return in, g.Wait()
}

func (s *AnalyticsService) parseRange(in RangeInput) (time.Time, time.Time, error) {
	start, err := analytics.ParseDate(in.StartDate, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("invalid date format provided", map[string]any{"startDate": in.StartDate})
	}
	end, err := analytics.ParseDate(in.EndDate, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("invalid date format provided", map[string]any{"endDate": in.EndDate})
	}
	return start, end, nil
}

func (s *AnalyticsService) inventoryPoints(logs []domain.MedicineInventoryLog) []analytics.DatedQuantity {
	return lo.Map(logs, func(l domain.MedicineInventoryLog, _ int) analytics.DatedQuantity {
		return analytics.DatedQuantity{Date: l.OrderDate.In(s.loc), Quantity: float64(l.Quantity)}
	})
}

func medicationPrescriptionIDs(bill domain.Bill) []int {
	return lo.FilterMap(bill.Items, func(item domain.BillItem, _ int) (int, bool) {
		if item.ItemType != domain.BillItemTypeMedication || item.PrescriptionID == nil {
			return 0, false
		}
		return *item.PrescriptionID, true
	})
}
