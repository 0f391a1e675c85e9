package score

import (
	"sort"

	"github.com/messdev/mess/pkg/metric"
)

// Composite folds metric results into one 0-100 score using the
// weight table, renormalized by the total weight actually present.
func Composite(results []metric.Result, w Weights) float64 {
	var total, totalWeight float64
	for _, res := range results {
		weight := w.ForMetric(res.Metric)
		total += res.Score * weight
		totalWeight += weight
	}
	if totalWeight <= 0 {
		return 0
	}
	return total / totalWeight
}

// findingPressure is the per-finding bump applied to the issue score,
// capped so a noisy file cannot outrank a structurally worse one.
const (
	findingPressure    = 2.0
	maxFindingPressure = 20.0
)

// IssueScore ranks a file for the worst-offender list: composite plus
// pressure from the number of findings.
func IssueScore(composite float64, findings int) float64 {
	pressure := float64(findings) * findingPressure
	if pressure > maxFindingPressure {
		pressure = maxFindingPressure
	}
	return composite + pressure
}

// Ranked is one entry in the worst-offender list.
type Ranked struct {
	Path       string
	IssueScore float64
}

// Rank returns the top k entries by issue score, descending, ties
// broken by path so output is deterministic.
func Rank(entries []Ranked, k int) []Ranked {
	sorted := make([]Ranked, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].IssueScore != sorted[j].IssueScore {
			return sorted[i].IssueScore > sorted[j].IssueScore
		}
		return sorted[i].Path < sorted[j].Path
	})
	if k >= 0 && k < len(sorted) {
		sorted = sorted[:k]
	}
	return sorted
}

// SortFindings orders findings by severity (high first), then line.
func SortFindings(findings []metric.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Severity != findings[j].Severity {
			return findings[i].Severity.Rank() > findings[j].Severity.Rank()
		}
		return findings[i].Line < findings[j].Line
	})
}

// WeightedMean averages values weighted by sizes. Zero total size
// falls back to a plain mean.
func WeightedMean(values []float64, sizes []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total, weight float64
	for i, v := range values {
		w := 1.0
		if i < len(sizes) {
			w = float64(sizes[i])
		}
		total += v * w
		weight += w
	}
	if weight <= 0 {
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	}
	return total / weight
}
