package valuation

import (
	"sort"

	"implied-pe/models"
)

// Median returns the median of values, averaging the two middle values for
// an even count. The input slice is not modified.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyPeerSet
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, nil
	}
	return sorted[mid], nil
}

// Summarize computes count, min, max, mean and median of values
func Summarize(values []float64) (models.IndustryStats, error) {
	median, err := Median(values)
	if err != nil {
		return models.IndustryStats{}, err
	}

	stats := models.IndustryStats{
		Count:  len(values),
		Min:    values[0],
		Max:    values[0],
		Median: median,
	}
	var sum float64
	for _, v := range values {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(len(values))
	return stats, nil
}
