package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/hospital-analytics/internal/domain"
	"github.com/spec-kit/hospital-analytics/internal/repository"
)

func inRange(r repository.DateRange, t time.Time) bool {
	if t.Before(r.From) {
		return false
	}
	if r.HalfOpen {
		return t.Before(r.To)
	}
	return !t.After(r.To)
}

type fakeConsultations struct {
	mu    sync.Mutex
	items []domain.Consultation
	err   error
}

func (f *fakeConsultations) GetByID(_ context.Context, id int) (*domain.Consultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeConsultations) List(context.Context) ([]domain.Consultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Consultation{}, f.items...), f.err
}

func (f *fakeConsultations) ListRatedByDepartment(_ context.Context, deptID int) ([]domain.Consultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Consultation
	for _, c := range f.items {
		if c.DeptID == deptID && c.Rating().Present {
			out = append(out, c)
		}
	}
	return out, f.err
}

func (f *fakeConsultations) ListCommentsByRating(_ context.Context, rating int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for _, c := range f.items {
		if r := c.Rating(); r.Present && r.Value == float64(rating) {
			out = append(out, c.Feedback.Comments)
		}
	}
	return out, f.err
}

func (f *fakeConsultations) CountBooked(_ context.Context, window repository.DateRange) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.items {
		if inRange(window, c.BookedDateTime) {
			n++
		}
	}
	return n, f.err
}

func (f *fakeConsultations) SetFeedback(_ context.Context, id int, feedback domain.ConsultationFeedback) (*domain.Consultation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Feedback = &feedback
			c := f.items[i]
			return &c, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakeFeedbacks struct {
	mu    sync.Mutex
	items []domain.Feedback
	err   error
}

func (f *fakeFeedbacks) Create(_ context.Context, feedback *domain.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, *feedback)
	return nil
}

func (f *fakeFeedbacks) List(context.Context) ([]domain.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Feedback{}, f.items...), f.err
}

func (f *fakeFeedbacks) ListRated(context.Context) ([]domain.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Feedback
	for _, fb := range f.items {
		if fb.Rating.Present {
			out = append(out, fb)
		}
	}
	return out, f.err
}

func (f *fakeFeedbacks) ListRatedCreated(_ context.Context, window repository.DateRange) ([]domain.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Feedback
	for _, fb := range f.items {
		if fb.Rating.Present && inRange(window, fb.CreatedAt) {
			out = append(out, fb)
		}
	}
	return out, f.err
}

type fakeDoctors struct {
	items []domain.Doctor
	err   error
}

func (f *fakeDoctors) List(context.Context) ([]domain.Doctor, error) {
	return f.items, f.err
}

type fakeDepartments struct {
	items []domain.Department
	err   error
}

func (f *fakeDepartments) List(context.Context) ([]domain.Department, error) {
	return f.items, f.err
}

type fakeBills struct {
	mu     sync.Mutex
	items  []domain.Bill
	extras []domain.BillItem
	nextID int
	err    error
}

func (f *fakeBills) Create(_ context.Context, bill *domain.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	bill.ID = f.nextID
	f.items = append(f.items, *bill)
	return nil
}

func (f *fakeBills) AddItem(_ context.Context, billID int, item domain.BillItem) (*domain.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == billID {
			f.items[i].Items = append(f.items[i].Items, item)
			f.extras = append(f.extras, item)
			b := f.items[i]
			return &b, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeBills) ListGenerated(_ context.Context, window repository.DateRange) ([]domain.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Bill
	for _, b := range f.items {
		if inRange(window, b.GenerationDate) {
			out = append(out, b)
		}
	}
	return out, f.err
}

func (f *fakeBills) SumTotal(_ context.Context, window repository.DateRange) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total float64
	for _, b := range f.items {
		if inRange(window, b.GenerationDate) {
			total += b.TotalAmount
		}
	}
	return total, f.err
}

type fakePrescriptions struct {
	mu      sync.Mutex
	items   []domain.Prescription
	entries []domain.PrescriptionEntry
	nextID  int
	err     error
}

func (f *fakePrescriptions) Create(_ context.Context, p *domain.Prescription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.items = append(f.items, *p)
	return f.err
}

func (f *fakePrescriptions) AddEntry(_ context.Context, entry domain.PrescriptionEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == entry.PrescriptionID {
			f.items[i].Entries = append(f.items[i].Entries, entry)
			f.entries = append(f.entries, entry)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakePrescriptions) ListByIDs(_ context.Context, ids []int) ([]domain.Prescription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := map[int]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []domain.Prescription
	for _, p := range f.items {
		if wanted[p.ID] {
			out = append(out, p)
		}
	}
	return out, f.err
}

type fakeMedicines struct {
	mu     sync.Mutex
	items  []domain.Medicine
	nextID int
	err    error
}

func (f *fakeMedicines) Create(_ context.Context, m *domain.Medicine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	m.ID = f.nextID
	f.items = append(f.items, *m)
	return nil
}

func (f *fakeMedicines) GetByID(_ context.Context, id int) (*domain.Medicine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.items {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type fakeInventoryLogs struct {
	mu    sync.Mutex
	items []domain.MedicineInventoryLog
	calls int
	err   error
}

func (f *fakeInventoryLogs) Create(_ context.Context, log *domain.MedicineInventoryLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, *log)
	return f.err
}

func (f *fakeInventoryLogs) ListReceived(_ context.Context, medID int, window repository.DateRange) ([]domain.MedicineInventoryLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var out []domain.MedicineInventoryLog
	for _, l := range f.items {
		if l.MedID == medID && l.Status == domain.InventoryStatusReceived && inRange(window, l.OrderDate) {
			out = append(out, l)
		}
	}
	return out, f.err
}

type fakeOccupancy struct {
	mu    sync.Mutex
	items []domain.DailyBedOccupancy
	err   error
}

func (f *fakeOccupancy) List(_ context.Context, window repository.DateRange) ([]domain.DailyBedOccupancy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.DailyBedOccupancy
	for _, r := range f.items {
		if inRange(window, r.Date) {
			out = append(out, r)
		}
	}
	return out, f.err
}

func (f *fakeOccupancy) GetByDate(_ context.Context, date time.Time) (*domain.DailyBedOccupancy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.items {
		if r.Date.Equal(date) {
			return &r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeOccupancy) Create(_ context.Context, record *domain.DailyBedOccupancy) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, *record)
	return nil
}

type fakeRooms struct {
	items []domain.Room
	err   error
}

func (f *fakeRooms) List(context.Context) ([]domain.Room, error) {
	return f.items, f.err
}

type fakeSnapshots struct {
	mu        sync.Mutex
	items     []domain.KPISnapshot
	lastLimit int
	err       error
}

func (f *fakeSnapshots) Create(_ context.Context, s *domain.KPISnapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	s.CreatedAt = s.CapturedAt
	f.items = append(f.items, *s)
	return nil
}

func (f *fakeSnapshots) ListRecent(_ context.Context, limit int) ([]domain.KPISnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	return append([]domain.KPISnapshot{}, f.items...), f.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func intPtr(v int) *int {
	return &v
}
