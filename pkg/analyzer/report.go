package analyzer

import (
	"github.com/messdev/mess/pkg/metric"
	"github.com/messdev/mess/pkg/profile"
	"github.com/messdev/mess/pkg/score"
)

// FileReport is the scored result for one file.
type FileReport struct {
	Path         string           `json:"path"`
	Language     profile.Language `json:"language"`
	Score        float64          `json:"score"`
	IssueScore   float64          `json:"issue_score"`
	TotalLines   int              `json:"total_lines"`
	CodeLines    int              `json:"code_lines"`
	CommentLines int              `json:"comment_lines"`
	Metrics      []metric.Result  `json:"metrics"`
	Findings     []metric.Finding `json:"findings,omitempty"`

	// TruncatedFindings counts findings dropped from a ranked entry
	// to honor the max-issues limit.
	TruncatedFindings int `json:"truncated_findings,omitempty"`
}

// Unanalyzed records a file that could not be analyzed and why.
type Unanalyzed struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Report is the project-level analysis result.
type Report struct {
	// Empty is set when no file could be analyzed. An empty project
	// is a valid result, not an error.
	Empty bool `json:"empty"`

	Score float64    `json:"score"`
	Level score.Band `json:"level"`

	TotalFiles    int `json:"total_files"`
	FilesAnalyzed int `json:"files_analyzed"`
	TotalLines    int `json:"total_lines"`
	CodeLines     int `json:"code_lines"`

	Weights      score.Weights         `json:"weights"`
	MetricScores map[metric.ID]float64 `json:"metric_scores,omitempty"`

	// Files holds every scored file in path order; Worst is the
	// ranked top slice with findings truncated per max-issues.
	Files []FileReport `json:"files,omitempty"`
	Worst []FileReport `json:"worst,omitempty"`

	Unanalyzed []Unanalyzed `json:"unanalyzed,omitempty"`
}

// FileScores returns the per-file composite scores in path order.
func (r *Report) FileScores() []float64 {
	out := make([]float64, len(r.Files))
	for i, f := range r.Files {
		out[i] = f.Score
	}
	return out
}
