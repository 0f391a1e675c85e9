package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/messdev/mess/pkg/metric"
)

func TestDefaultWeightsValid(t *testing.T) {
	w := DefaultWeights()
	require.NoError(t, w.Validate())
	assert.Equal(t, 113.0, w.Sum())
}

func TestWeightsValidate(t *testing.T) {
	w := DefaultWeights()
	w.Naming = -1
	assert.Error(t, w.Validate())

	assert.Error(t, Weights{}.Validate())
}

func TestCompositeRenormalizes(t *testing.T) {
	w := DefaultWeights()
	results := []metric.Result{
		{Metric: metric.Complexity, Score: 60},
		{Metric: metric.State, Score: 30},
		{Metric: metric.Comments, Score: 90},
		{Metric: metric.Duplication, Score: 0},
		{Metric: metric.Structure, Score: 20},
		{Metric: metric.ErrorHandling, Score: 58},
		{Metric: metric.Naming, Score: 0},
	}
	got := Composite(results, w)

	// (60*30 + 30*20 + 90*15 + 0 + 20*15 + 58*10 + 0) / 113
	want := (60.0*30 + 30*20 + 90*15 + 20*15 + 58*10) / 113
	assert.InDelta(t, want, got, 0.0001)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 100.0)
}

func TestCompositeUniformScores(t *testing.T) {
	// If every metric scores the same, renormalization must return
	// exactly that value for any positive weight table.
	results := make([]metric.Result, 0, len(metric.All))
	for _, id := range metric.All {
		results = append(results, metric.Result{Metric: id, Score: 42})
	}
	assert.InDelta(t, 42.0, Composite(results, DefaultWeights()), 0.0001)
}

func TestCompositeEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Composite(nil, DefaultWeights()))
}

func TestBandBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		name  string
	}{
		{0, "clean"},
		{4.99, "clean"},
		{5, "mild"},
		{24.9, "moderate"},
		{40, "terrible"},
		{64.9, "disaster"},
		{70, "severe"},
		{94.9, "extreme"},
		{99.9, "worst"},
		{100, "ultimate"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, BandFor(tt.score).Name, "score %.2f", tt.score)
	}
}

func TestBandLabels(t *testing.T) {
	assert.Equal(t, "Fresh as spring breeze", BandFor(0).Label)
	assert.Equal(t, "Ultimate King of Mess", BandFor(100).Label)
	assert.Len(t, Bands(), 11)
}

func TestComment(t *testing.T) {
	assert.Contains(t, Comment(3), "spring breeze")
	assert.Contains(t, Comment(100), "run while you still can")
}

func TestRankTopK(t *testing.T) {
	entries := []Ranked{
		{Path: "a.go", IssueScore: 10},
		{Path: "b.go", IssueScore: 95},
		{Path: "c.go", IssueScore: 40},
	}
	top := Rank(entries, 2)
	require.Len(t, top, 2)
	assert.Equal(t, 95.0, top[0].IssueScore)
	assert.Equal(t, 40.0, top[1].IssueScore)
}

func TestRankDeterministicTiebreak(t *testing.T) {
	entries := []Ranked{
		{Path: "z.go", IssueScore: 50},
		{Path: "a.go", IssueScore: 50},
	}
	top := Rank(entries, 2)
	assert.Equal(t, "a.go", top[0].Path)
}

func TestIssueScorePressureCapped(t *testing.T) {
	assert.Equal(t, 60.0, IssueScore(50, 5))
	assert.Equal(t, 70.0, IssueScore(50, 500))
}

func TestSortFindings(t *testing.T) {
	findings := []metric.Finding{
		{Line: 9, Severity: metric.SeverityLow},
		{Line: 3, Severity: metric.SeverityHigh},
		{Line: 1, Severity: metric.SeverityMedium},
		{Line: 7, Severity: metric.SeverityHigh},
	}
	SortFindings(findings)
	assert.Equal(t, 3, findings[0].Line)
	assert.Equal(t, 7, findings[1].Line)
	assert.Equal(t, 1, findings[2].Line)
	assert.Equal(t, 9, findings[3].Line)
}

func TestWeightedMean(t *testing.T) {
	assert.Equal(t, 0.0, WeightedMean(nil, nil))
	// 10 lines at 90 and 90 lines at 10 -> 18
	assert.InDelta(t, 18.0, WeightedMean([]float64{90, 10}, []int{10, 90}), 0.0001)
}
