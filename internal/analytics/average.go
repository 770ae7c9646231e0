package analytics

// Average is the tagged result of a mean. Count == 0 means there was nothing to
// average, which callers must not confuse with an average of zero.
type Average struct {
	Value float64
	Count int
}

// Mean averages values.
func Mean(values []float64) Average {
	if len(values) == 0 {
		return Average{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Average{Value: sum / float64(len(values)), Count: len(values)}
}

// Empty reports whether no values were averaged.
func (a Average) Empty() bool {
	return a.Count == 0
}

// OrZero renders an empty average as 0.
func (a Average) OrZero() float64 {
	if a.Empty() {
		return 0
	}
	return a.Value
}
