package stats

import (
	"math"
	"sort"
)

// Mean calculates the arithmetic mean of a slice of ints
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	return float64(Sum(values)) / float64(len(values))
}

// Sum calculates the sum of all values
func Sum(values []int) int {
	var sum int
	for _, v := range values {
		sum += v
	}
	return sum
}

// MinMax returns the smallest and largest value, both 0 for an empty slice
func MinMax(values []int) (min, max int) {
	if len(values) == 0 {
		return 0, 0
	}

	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Quantile calculates the q-th quantile (0-1) with linear interpolation
func Quantile(values []int, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if q < 0 {
		q = 0
	}
	if q > 1 {
		q = 1
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	index := q * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return float64(sorted[lower])
	}

	// Linear interpolation
	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}
