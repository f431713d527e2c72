package core

// -----------------------------------------------------------------------------

// CalculateChangePercent returns the relative change from previous to current.
func CalculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return (current - previous) / previous
}

// -----------------------------------------------------------------------------

// FirstLast returns the first and last values of a column.
func FirstLast(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	return data[0], data[len(data)-1]
}
