package results

import (
	"sort"
	"time"
)

// Summary gathers the information about a complete run, and stores the
// calculated statistics (e.g. max, min, ...) over the successful attempts.
type Summary struct {
	Label          string        // Label of the run
	Path           string        // Path of the exported file, empty if not exported
	Total          int           // Number of attempts
	Success        int           // Number of results
	Errors         int           // Number of failed attempts
	MaxLatency     time.Duration // highest latency observed
	MinLatency     time.Duration // smallest latency observed
	AverageLatency time.Duration // average latency
	MedianLatency  time.Duration // median latency
	TotalFee       *float64      // Sum of the tracked fees, nil if none tracked
}

// Summarize calculates the summary of a run given its results and the number
// of failed attempts.
func Summarize(label string, results []*TransactionResult, errors int) *Summary {
	summary := &Summary{
		Label:   label,
		Total:   len(results) + errors,
		Success: len(results),
		Errors:  errors,
	}

	if len(results) == 0 {
		return summary
	}

	// First, we want to get all the information
	allLatencies := make([]time.Duration, 0, len(results))
	var totalLatency time.Duration

	for _, res := range results {
		allLatencies = append(allLatencies, res.Latency)
		totalLatency += res.Latency

		if res.Fee != nil {
			if summary.TotalFee == nil {
				summary.TotalFee = new(float64)
			}
			*summary.TotalFee += *res.Fee
		}
	}

	sort.Slice(allLatencies, func(i, j int) bool {
		return allLatencies[i] < allLatencies[j]
	})

	// If it's even
	midNumber := len(allLatencies) / 2
	if len(allLatencies)%2 == 0 {
		summary.MedianLatency = (allLatencies[midNumber-1] + allLatencies[midNumber]) / 2
	} else {
		summary.MedianLatency = allLatencies[midNumber]
	}

	summary.MinLatency = allLatencies[0]
	summary.MaxLatency = allLatencies[len(allLatencies)-1]
	summary.AverageLatency = totalLatency / time.Duration(len(allLatencies))

	return summary
}
