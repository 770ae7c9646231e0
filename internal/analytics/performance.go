package analytics

import (
	"sort"

	"github.com/samber/lo"

	"github.com/spec-kit/hospital-analytics/internal/domain"
)

// UnknownDepartment names doctors whose department is missing.
const UnknownDepartment = "Unknown"

// DoctorStats is one point of the doctor scatter plot.
type DoctorStats struct {
	DoctorID       int
	DoctorName     string
	DepartmentID   int
	DepartmentName string
	Rating         float64
	Consultations  int
}

// DepartmentStats is one point of the department scatter plot.
type DepartmentStats struct {
	DepartmentID   int
	DepartmentName string
	AvgRating      float64
	Consultations  int
	DoctorCount    int
}

// DoctorPerformance counts consultations per doctor and joins doctor and department data.
// Consultations of unknown doctors are dropped.
func DoctorPerformance(consultations []domain.Consultation, doctors []domain.Doctor, departments []domain.Department) []DoctorStats {
	doctorsByID := lo.KeyBy(doctors, func(d domain.Doctor) int { return d.ID })
	names := departmentNames(departments)
	counts := lo.CountValuesBy(consultations, func(c domain.Consultation) int { return c.DoctorID })

	ids := lo.Keys(counts)
	sort.Ints(ids)

	stats := make([]DoctorStats, 0, len(ids))
	for _, id := range ids {
		doctor, ok := doctorsByID[id]
		if !ok {
			continue
		}
		name, ok := names[doctor.DepartmentID]
		if !ok {
			name = UnknownDepartment
		}
		stats = append(stats, DoctorStats{
			DoctorID:       doctor.ID,
			DoctorName:     doctor.Name,
			DepartmentID:   doctor.DepartmentID,
			DepartmentName: name,
			Rating:         doctor.Rating,
			Consultations:  counts[id],
		})
	}
	return stats
}

// DepartmentPerformance groups consultations by the consulting doctor's department.
// The department rating is the mean of each distinct doctor's own rating, so a
// doctor with many consultations still counts once.
func DepartmentPerformance(consultations []domain.Consultation, doctors []domain.Doctor, departments []domain.Department) []DepartmentStats {
	doctorsByID := lo.KeyBy(doctors, func(d domain.Doctor) int { return d.ID })
	names := departmentNames(departments)

	type group struct {
		consultations int
		doctorIDs     []int
	}
	groups := map[int]*group{}
	for _, c := range consultations {
		doctor, ok := doctorsByID[c.DoctorID]
		if !ok {
			continue
		}
		deptID := doctor.DepartmentID
		if _, known := names[deptID]; !known {
			deptID = 0
		}
		g, ok := groups[deptID]
		if !ok {
			g = &group{}
			groups[deptID] = g
		}
		g.consultations++
		g.doctorIDs = append(g.doctorIDs, doctor.ID)
	}

	deptIDs := lo.Keys(groups)
	sort.Ints(deptIDs)

	stats := make([]DepartmentStats, 0, len(deptIDs))
	for _, deptID := range deptIDs {
		g := groups[deptID]
		uniqueDoctors := lo.Uniq(g.doctorIDs)
		ratings := lo.Map(uniqueDoctors, func(id int, _ int) float64 { return doctorsByID[id].Rating })
		name, ok := names[deptID]
		if !ok {
			name = UnknownDepartment
		}
		stats = append(stats, DepartmentStats{
			DepartmentID:   deptID,
			DepartmentName: name,
			AvgRating:      Mean(ratings).OrZero(),
			Consultations:  g.consultations,
			DoctorCount:    len(uniqueDoctors),
		})
	}
	return stats
}

func departmentNames(departments []domain.Department) map[int]string {
	return lo.SliceToMap(departments, func(d domain.Department) (int, string) {
		return d.ID, d.DeptName
	})
}
