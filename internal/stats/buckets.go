package stats

import (
	"fmt"
	"time"
)

// Aggregate sums a daily series into week or month buckets and computes each
// bucket's share of the grand total and the running cumulative share.
//
// An unsupported granularity yields an empty series and no error. Callers that
// need a non-degenerate table should go through BuildSCurve, which rejects it.
func Aggregate(series DailyCostSeries, g Granularity) (BucketSeries, error) {
	if !g.Valid() {
		return BucketSeries{}, nil
	}

	var buckets BucketSeries
	var current time.Time
	for i, day := range series.Days {
		start := SnapToStart(day, g)
		if len(buckets) == 0 || !start.Equal(current) {
			current = start
			buckets = append(buckets, Bucket{
				Label: Label(start, g),
				Start: start,
			})
		}
		buckets[len(buckets)-1].Cost += series.Cost[i]
	}

	total := 0.0
	for _, b := range buckets {
		total += b.Cost
	}
	if total == 0 {
		return nil, fmt.Errorf("%w across %d buckets", ErrZeroTotalCost, len(buckets))
	}

	cumulative := 0.0
	for i := range buckets {
		buckets[i].Percent = 100 * buckets[i].Cost / total
		cumulative += buckets[i].Percent
		buckets[i].CumulativePercent = cumulative
	}

	return buckets, nil
}

// Total sums the cost of every bucket.
func (bs BucketSeries) Total() float64 {
	total := 0.0
	for _, b := range bs {
		total += b.Cost
	}
	return total
}

// Labels returns the bucket labels in order.
func (bs BucketSeries) Labels() []string {
	labels := make([]string, len(bs))
	for i, b := range bs {
		labels[i] = b.Label
	}
	return labels
}
