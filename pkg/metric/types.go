// Package metric implements the seven per-file quality calculators.
// Every calculator returns a score from 0 to 100 where higher means
// messier, plus the findings that explain the score.
package metric

// ID identifies a metric.
type ID string

const (
	Complexity    ID = "complexity"
	State         ID = "state"
	Comments      ID = "comments"
	Duplication   ID = "duplication"
	Structure     ID = "structure"
	ErrorHandling ID = "error_handling"
	Naming        ID = "naming"
)

// All lists the metric IDs in their canonical report order.
var All = []ID{Complexity, State, Comments, Duplication, Structure, ErrorHandling, Naming}

// Severity grades a finding.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank orders severities for sorting, highest first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// Finding is one concrete problem a calculator located.
type Finding struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result is the outcome of one calculator on one file.
type Result struct {
	Metric   ID        `json:"metric"`
	Score    float64   `json:"score"`
	Findings []Finding `json:"findings,omitempty"`
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
