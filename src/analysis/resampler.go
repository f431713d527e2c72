package analysis

import (
	"sort"
	"time"

	"stock-ticker/src/models"
)

// -----------------------------------------------------------------------------

// FilterRange returns the records whose date lies in the inclusive range [start, end].
// prices must be sorted by ascending date; the result shares its backing array.
func FilterRange(prices []models.MDailyPrice, start, end time.Time) []models.MDailyPrice {
	if len(prices) == 0 || end.Before(start) {
		return nil
	}

	dates := make([]time.Time, len(prices))
	for i, p := range prices {
		dates[i] = p.Date
	}

	startIdx := SearchSorted(dates, start, "left")
	endIdx := SearchSorted(dates, end, "right")

	if startIdx >= endIdx {
		return nil
	}
	return prices[startIdx:endIdx]
}

// -----------------------------------------------------------------------------

// SearchSorted finds the insertion index of value in the sorted dates.
// "left" returns the first index with dates[i] >= value, "right" the first with dates[i] > value.
func SearchSorted(dates []time.Time, value time.Time, side string) int {
	if side == "left" {
		return sort.Search(len(dates), func(i int) bool {
			return !dates[i].Before(value)
		})
	}
	return sort.Search(len(dates), func(i int) bool {
		return dates[i].After(value)
	})
}
