package valuation

import "math"

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation. It returns 1 when there are fewer
// than two values or no spread so it is always safe to divide by.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 1
	}
	avg := mean(values)
	variance := 0.0
	for _, v := range values {
		variance += (v - avg) * (v - avg)
	}
	deviation := math.Sqrt(variance / float64(len(values)))
	if deviation > 0 {
		return deviation
	}
	return 1
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
