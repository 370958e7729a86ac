package stats

// Percentile calculates the p-th percentile (0-100)
// Uses linear interpolation between closest ranks
func Percentile(values []int, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}

	return Quantile(values, p/100.0)
}

// RoundPercent returns count/total as a whole percent, rounded half away
// from zero. A non-positive total yields 0.
//
// Integer arithmetic keeps the result identical for identical inputs, so a
// displayed percentage never flickers between recomputations.
func RoundPercent(count, total int) int {
	if total <= 0 {
		return 0
	}

	n := int64(count) * 100
	neg := n < 0
	if neg {
		n = -n
	}

	d := int64(total)
	q := (2*n + d) / (2 * d)
	if neg {
		return int(-q)
	}
	return int(q)
}

// ScalePercent returns value as a whole percent of max, 0 when max is not
// positive. Used for bar heights relative to the largest bar.
func ScalePercent(value, max float64) int {
	if max <= 0 {
		return 0
	}

	p := value / max * 100
	if p < 0 {
		return -int(-p + 0.5)
	}
	return int(p + 0.5)
}
