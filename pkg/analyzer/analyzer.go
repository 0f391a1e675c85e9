// Package analyzer orchestrates the full analysis pipeline: walk
// results in, scored report out. Files are scanned in parallel into a
// shared duplication index, then scored deterministically in path
// order once the index is complete.
package analyzer

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/messdev/mess/internal/fileproc"
	"github.com/messdev/mess/pkg/dupindex"
	"github.com/messdev/mess/pkg/metric"
	"github.com/messdev/mess/pkg/profile"
	"github.com/messdev/mess/pkg/scanner"
	"github.com/messdev/mess/pkg/score"
)

// Analyzer runs the scan-and-score pipeline over a set of files.
type Analyzer struct {
	workers   int
	topFiles  int
	maxIssues int
	weights   score.Weights
	onFile    fileproc.ProgressFunc
	log       zerolog.Logger
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithWorkers caps the worker pool; n <= 0 keeps the 2x NumCPU default.
func WithWorkers(n int) Option {
	return func(a *Analyzer) { a.workers = n }
}

// WithTopFiles sets how many worst offenders the report ranks.
func WithTopFiles(n int) Option {
	return func(a *Analyzer) { a.topFiles = n }
}

// WithMaxIssues sets how many findings each ranked file keeps.
func WithMaxIssues(n int) Option {
	return func(a *Analyzer) { a.maxIssues = n }
}

// WithWeights replaces the default metric weight table.
func WithWeights(w score.Weights) Option {
	return func(a *Analyzer) { a.weights = w }
}

// WithProgress registers a callback invoked after each file scans.
func WithProgress(fn fileproc.ProgressFunc) Option {
	return func(a *Analyzer) { a.onFile = fn }
}

// WithLogger attaches a logger for verbose diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Analyzer) { a.log = log }
}

// New creates an analyzer with default configuration.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		topFiles:  5,
		maxIssues: 5,
		weights:   score.DefaultWeights(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// scanned is the phase-one product for one file, held until the
// duplication index is complete.
type scanned struct {
	stream *scanner.TokenStream
	prof   *profile.Profile
	frags  []dupindex.Fragment
}

// Analyze scans and scores the given files. Per-file failures become
// Unanalyzed records; the only error returned is context cancellation
// or an invalid weight table.
func (a *Analyzer) Analyze(ctx context.Context, files []string) (*Report, error) {
	if err := a.weights.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		TotalFiles: len(files),
		Weights:    a.weights,
	}
	if len(files) == 0 {
		report.Empty = true
		report.Level = score.BandFor(0)
		return report, nil
	}

	index := dupindex.New()

	// Phase one: parallel scan. Each worker reads, scans, and feeds
	// the shared index; results are merged in path order afterwards.
	results, errs := fileproc.ForEachFileWithContextN(ctx, files, a.workers, func(path string) (scanned, error) {
		s, err := a.scanFile(path)
		if err != nil {
			return scanned{}, err
		}
		index.InsertAll(s.frags)
		return s, nil
	}, a.onFile)

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if errs != nil {
		for _, pe := range errs.Errors {
			a.log.Debug().Str("path", pe.Path).Err(pe.Err).Msg("file skipped")
			report.Unanalyzed = append(report.Unanalyzed, Unanalyzed{Path: pe.Path, Reason: pe.Err.Error()})
		}
		sort.Slice(report.Unanalyzed, func(i, j int) bool {
			return report.Unanalyzed[i].Path < report.Unanalyzed[j].Path
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].stream.Path < results[j].stream.Path
	})

	// Phase two: score against the completed index.
	for _, s := range results {
		report.Files = append(report.Files, a.scoreFile(s, index))
	}

	a.aggregate(report)
	a.log.Info().
		Int("files", report.FilesAnalyzed).
		Float64("score", report.Score).
		Str("level", report.Level.Name).
		Msg("analysis complete")
	return report, nil
}

// scanFile reads and lexically scans one file.
func (a *Analyzer) scanFile(path string) (scanned, error) {
	prof := profile.Detect(path)
	if prof == nil {
		return scanned{}, fmt.Errorf("unsupported file type")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return scanned{}, fmt.Errorf("reading file: %w", err)
	}
	if IsBinary(content) {
		return scanned{}, fmt.Errorf("binary content")
	}

	stream := scanner.Scan(path, content, prof)
	return scanned{
		stream: stream,
		prof:   prof,
		frags:  dupindex.ExtractFragments(stream),
	}, nil
}

// scoreFile runs the seven calculators and folds them into a file
// report.
func (a *Analyzer) scoreFile(s scanned, index *dupindex.Index) FileReport {
	ts := s.stream
	results := []metric.Result{
		metric.CalcComplexity(ts),
		metric.CalcState(ts),
		metric.CalcComments(ts),
		metric.CalcDuplication(ts, s.frags, index),
		metric.CalcStructure(ts, s.prof),
		metric.CalcErrorHandling(ts, s.prof),
		metric.CalcNaming(ts, s.prof),
	}

	var findings []metric.Finding
	for _, res := range results {
		findings = append(findings, res.Findings...)
	}
	score.SortFindings(findings)

	composite := score.Composite(results, a.weights)
	fr := FileReport{
		Path:         ts.Path,
		Language:     ts.Language,
		Score:        composite,
		IssueScore:   score.IssueScore(composite, len(findings)),
		TotalLines:   ts.TotalLines,
		CodeLines:    ts.CodeLines,
		CommentLines: ts.CommentLines,
		Metrics:      results,
		Findings:     findings,
	}

	a.log.Debug().
		Str("path", ts.Path).
		Float64("score", composite).
		Int("findings", len(findings)).
		Msg("file scored")
	return fr
}

// aggregate computes the project composite and rankings. Per-file
// composites are weighted by code lines so a thousand-line disaster
// outweighs a ten-line one.
func (a *Analyzer) aggregate(report *Report) {
	report.FilesAnalyzed = len(report.Files)
	if report.FilesAnalyzed == 0 {
		report.Empty = true
		report.Level = score.BandFor(0)
		return
	}

	composites := make([]float64, len(report.Files))
	sizes := make([]int, len(report.Files))
	perMetric := map[metric.ID][]float64{}
	ranked := make([]score.Ranked, 0, len(report.Files))

	for i, fr := range report.Files {
		composites[i] = fr.Score
		sizes[i] = fr.CodeLines
		report.TotalLines += fr.TotalLines
		report.CodeLines += fr.CodeLines
		for _, res := range fr.Metrics {
			perMetric[res.Metric] = append(perMetric[res.Metric], res.Score)
		}
		ranked = append(ranked, score.Ranked{Path: fr.Path, IssueScore: fr.IssueScore})
	}

	report.Score = score.WeightedMean(composites, sizes)
	report.Level = score.BandFor(report.Score)

	report.MetricScores = make(map[metric.ID]float64, len(perMetric))
	for id, values := range perMetric {
		report.MetricScores[id] = score.WeightedMean(values, sizes)
	}

	byPath := make(map[string]*FileReport, len(report.Files))
	for i := range report.Files {
		byPath[report.Files[i].Path] = &report.Files[i]
	}
	for _, r := range score.Rank(ranked, a.topFiles) {
		worst := *byPath[r.Path]
		if a.maxIssues > 0 && len(worst.Findings) > a.maxIssues {
			worst.TruncatedFindings = len(worst.Findings) - a.maxIssues
			worst.Findings = worst.Findings[:a.maxIssues]
		}
		report.Worst = append(report.Worst, worst)
	}
}
