package analysis

import "math"

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

// stdDev is the population standard deviation, or 1 when it would be zero.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 1
	}
	avg := mean(values)
	variance := 0.0
	for _, v := range values {
		variance += (v - avg) * (v - avg)
	}
	if deviation := math.Sqrt(variance / float64(len(values))); deviation > 0 {
		return deviation
	}
	return 1
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
