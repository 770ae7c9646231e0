package analytics

// Quadrant names one cell of the rating x volume grid.
type Quadrant string

const (
	HighVolumeHighRating Quadrant = "highConsHighRating"
	HighVolumeLowRating  Quadrant = "highConsLowRating"
	LowVolumeHighRating  Quadrant = "lowConsHighRating"
	LowVolumeLowRating   Quadrant = "lowConsLowRating"
)

// AllQuadrants lists the quadrants in dashboard order.
var AllQuadrants = []Quadrant{
	HighVolumeHighRating,
	HighVolumeLowRating,
	LowVolumeHighRating,
	LowVolumeLowRating,
}

// Thresholds are inclusive lower bounds: a value is high when value >= threshold.
type Thresholds struct {
	Rating float64
	Volume int
}

// QuadrantOf classifies one (rating, volume) pair.
func QuadrantOf(rating float64, volume int, th Thresholds) Quadrant {
	highRating := rating >= th.Rating
	highVolume := volume >= th.Volume
	switch {
	case highRating && highVolume:
		return HighVolumeHighRating
	case !highRating && highVolume:
		return HighVolumeLowRating
	case highRating && !highVolume:
		return LowVolumeHighRating
	default:
		return LowVolumeLowRating
	}
}

// Quadrants partitions items into the four cells. Each input item lands in exactly one.
type Quadrants[T any] struct {
	HighVolumeHighRating []T
	HighVolumeLowRating  []T
	LowVolumeHighRating  []T
	LowVolumeLowRating   []T
}

// Classify partitions items, keeping input order inside each cell.
func Classify[T any](items []T, ratingOf func(T) float64, volumeOf func(T) int, th Thresholds) Quadrants[T] {
	q := Quadrants[T]{
		HighVolumeHighRating: []T{},
		HighVolumeLowRating:  []T{},
		LowVolumeHighRating:  []T{},
		LowVolumeLowRating:   []T{},
	}
	for _, item := range items {
		switch QuadrantOf(ratingOf(item), volumeOf(item), th) {
		case HighVolumeHighRating:
			q.HighVolumeHighRating = append(q.HighVolumeHighRating, item)
		case HighVolumeLowRating:
			q.HighVolumeLowRating = append(q.HighVolumeLowRating, item)
		case LowVolumeHighRating:
			q.LowVolumeHighRating = append(q.LowVolumeHighRating, item)
		default:
			q.LowVolumeLowRating = append(q.LowVolumeLowRating, item)
		}
	}
	return q
}

// Bucket returns the items of one quadrant.
func (q Quadrants[T]) Bucket(name Quadrant) []T {
	switch name {
	case HighVolumeHighRating:
		return q.HighVolumeHighRating
	case HighVolumeLowRating:
		return q.HighVolumeLowRating
	case LowVolumeHighRating:
		return q.LowVolumeHighRating
	case LowVolumeLowRating:
		return q.LowVolumeLowRating
	}
	return nil
}

// Counts returns the size of every quadrant.
func (q Quadrants[T]) Counts() map[Quadrant]int {
	counts := make(map[Quadrant]int, len(AllQuadrants))
	for _, name := range AllQuadrants {
		counts[name] = len(q.Bucket(name))
	}
	return counts
}

// Len is the number of classified items.
func (q Quadrants[T]) Len() int {
	return len(q.HighVolumeHighRating) + len(q.HighVolumeLowRating) +
		len(q.LowVolumeHighRating) + len(q.LowVolumeLowRating)
}
