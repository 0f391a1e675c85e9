// Package report renders an analysis into the console, markdown, and
// JSON shapes the CLI prints.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/messdev/mess/internal/output"
	"github.com/messdev/mess/pkg/analyzer"
	"github.com/messdev/mess/pkg/metric"
	"github.com/messdev/mess/pkg/score"
	"github.com/messdev/mess/pkg/stats"
)

// Options controls how much of the report renders.
type Options struct {
	// Summary skips the metric and file detail sections.
	Summary bool

	// Verbose appends distribution statistics and the full file list.
	Verbose bool
}

// Report wraps an analysis result as a Renderable.
type Report struct {
	analysis *analyzer.Report
	opts     Options
}

// New builds a renderable report.
func New(analysis *analyzer.Report, opts Options) *Report {
	return &Report{analysis: analysis, opts: opts}
}

// RenderData exposes the raw analysis for JSON output.
func (r *Report) RenderData() any {
	return r.analysis
}

// metricNames maps metric IDs to their report display names.
var metricNames = map[metric.ID]string{
	metric.Complexity:    "Cyclomatic Complexity",
	metric.State:         "State Management",
	metric.Comments:      "Comment Ratio",
	metric.Duplication:   "Code Duplication",
	metric.Structure:     "Code Structure",
	metric.ErrorHandling: "Error Handling",
	metric.Naming:        "Naming Convention",
}

// metricCommentary holds the good/medium/bad one-liners per metric.
var metricCommentary = map[metric.ID][3]string{
	metric.Complexity: {
		"Clear structure, no unnecessary complexity, great!",
		"Winding logic, like a maze for your brain",
		"Functions like labyrinths, maintenance like a dungeon raid",
	},
	metric.State: {
		"Clear state management, reasonable variable scope, predictable state",
		"Average state management, some global state or unclear state changes",
		"Chaotic state management, excessive use of global variables, difficult to track state changes",
	},
	metric.Comments: {
		"Good comments, they'll help you survive",
		"Sparse comments, readers need imagination",
		"No comments, understanding depends on luck",
	},
	metric.Duplication: {
		"Proper abstraction, satisfying for the OCD programmer",
		"Some repetition, abstraction wouldn't hurt",
		"Copy-paste evidence everywhere, Ctrl+C/V medal earned",
	},
	metric.Structure: {
		"Beautiful structure, easy to follow",
		"Structure is okay, but somewhat confusing",
		"Nested like Russian dolls, dizzying to read",
	},
	metric.ErrorHandling: {
		"Errors are handled with care, code shows compassion",
		"Error handling exists, but barely helps",
		"Errors ignored? Just like life's problems",
	},
	metric.Naming: {
		"Clear naming, the light of programmer civilization",
		"Naming is okay, some guesswork needed",
		"Variable names look like keyboard smashes: x, y, z, tmp, xxx",
	},
}

// commentary picks the good/medium/bad line for a metric score.
func commentary(id metric.ID, metricScore float64) string {
	lines, ok := metricCommentary[id]
	if !ok {
		return ""
	}
	switch {
	case metricScore < 20:
		return lines[0]
	case metricScore < 60:
		return lines[1]
	default:
		return lines[2]
	}
}

// advice picks the closing suggestion for the overall score.
func advice(overall float64) string {
	switch {
	case overall < 30:
		return "Keep going, you're the clean freak of the coding world, a true code hygiene champion"
	case overall < 60:
		return "Suggestion: This code is like a rebellious teenager, needs some tough love to become useful"
	default:
		return "Suggestion: Delete the repo and run, or seal it for the next generation to suffer"
	}
}

// statusMark approximates the score with a terminal-safe marker.
func statusMark(s float64) string {
	switch {
	case s < 20:
		return "++"
	case s < 35:
		return "+"
	case s < 50:
		return "o"
	case s < 70:
		return "!"
	case s < 90:
		return "!!"
	default:
		return "x"
	}
}

const divider = "────────────────────────────────────────────────────────────────────────────────"

// RenderText writes the console report.
func (r *Report) RenderText(w io.Writer, colored bool) error {
	a := r.analysis

	fmt.Fprintln(w, divider)
	title := "Code Quality Analysis Report"
	if colored {
		title = color.New(color.FgYellow, color.Bold).Sprint(title)
	}
	fmt.Fprintf(w, "\n  %s\n", title)
	fmt.Fprintln(w, divider)
	fmt.Fprintln(w)

	if a.Empty {
		msg := "No files found for analysis! Your repo is either empty or blessed."
		if colored {
			msg = color.GreenString(msg)
		}
		fmt.Fprintf(w, "  %s\n", msg)
		return nil
	}

	r.renderScoreSummary(w, colored)

	if !r.opts.Summary {
		if err := r.renderMetrics(w, colored); err != nil {
			return err
		}
		r.renderWorstFiles(w, colored)
	}

	r.renderConclusion(w, colored)

	if r.opts.Verbose {
		r.renderVerbose(w, colored)
	}

	fmt.Fprintln(w, divider)
	return nil
}

func (r *Report) renderScoreSummary(w io.Writer, colored bool) {
	a := r.analysis

	scoreLine := fmt.Sprintf("Quality Score: %.2f / 100", a.Score)
	verdict := score.Comment(a.Score)
	if colored {
		scoreLine = color.New(color.FgCyan, color.Bold).Sprint(scoreLine)
		verdict = output.ScoreColor(a.Score, verdict)
	}
	fmt.Fprintf(w, "  %s - %s\n", scoreLine, verdict)

	levelLine := fmt.Sprintf("Quality Level: %s - %s", a.Level.Label, a.Level.Description)
	if colored {
		levelLine = color.CyanString(levelLine)
	}
	fmt.Fprintf(w, "  %s\n\n", levelLine)
}

func (r *Report) renderMetrics(w io.Writer, colored bool) error {
	a := r.analysis

	header := "Metrics Details"
	if colored {
		header = color.New(color.FgMagenta, color.Bold).Sprint(header)
	}
	fmt.Fprintf(w, "\n* %s\n\n", header)

	rows := make([][]string, 0, len(a.MetricScores))
	for _, id := range sortedMetricIDs(a.MetricScores) {
		s := a.MetricScores[id]
		name := fmt.Sprintf("%s %s", statusMark(s), metricNames[id])
		points := fmt.Sprintf("%.2f pts", s)
		note := commentary(id, s)
		if colored {
			name = output.ScoreColor(s, name)
			points = output.ScoreColor(s, points)
			note = color.CyanString(note)
		}
		rows = append(rows, []string{name, points, note})
	}

	table := output.NewTable("", []string{"Metric", "Score", "Verdict"}, rows, nil, nil)
	return table.RenderText(w, colored)
}

// sortedMetricIDs orders metrics best-first, the way the report reads.
func sortedMetricIDs(scores map[metric.ID]float64) []metric.ID {
	ids := make([]metric.ID, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] < scores[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

func (r *Report) renderWorstFiles(w io.Writer, colored bool) {
	a := r.analysis

	header := "Problem Files Ranking"
	if colored {
		header = color.New(color.FgMagenta, color.Bold).Sprint(header)
	}
	fmt.Fprintf(w, "\n* %s\n\n", header)

	if len(a.Worst) == 0 {
		msg := "Congratulations! No problematic files found!"
		if colored {
			msg = color.New(color.FgGreen, color.Bold).Sprint(msg)
		}
		fmt.Fprintf(w, "  %s\n", msg)
		return
	}

	for i, fr := range a.Worst {
		scoreText := fmt.Sprintf("Issue Score: %.2f", fr.IssueScore)
		path := shortenPath(fr.Path)
		if colored {
			scoreText = output.ScoreColor(fr.IssueScore, scoreText)
			path = color.MagentaString(path)
		}
		fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, path, scoreText)

		for _, f := range fr.Findings {
			line := fmt.Sprintf("%s:%d %s", f.Severity, f.Line, f.Message)
			if colored {
				line = output.SeverityColor(string(f.Severity), line)
			}
			fmt.Fprintf(w, "     %s\n", line)
		}
		if fr.TruncatedFindings > 0 {
			more := fmt.Sprintf("...and %d more issues", fr.TruncatedFindings)
			if colored {
				more = color.YellowString(more)
			}
			fmt.Fprintf(w, "     %s\n", more)
		}

		if i < len(a.Worst)-1 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)
}

func (r *Report) renderConclusion(w io.Writer, colored bool) {
	a := r.analysis

	header := "Conclusion"
	if colored {
		header = color.New(color.FgMagenta, color.Bold).Sprint(header)
	}
	fmt.Fprintf(w, "\n* %s\n\n", header)

	level := fmt.Sprintf("%s - %s", a.Level.Label, a.Level.Description)
	if colored {
		level = color.CyanString(level)
	}
	fmt.Fprintf(w, "  %s\n\n", level)

	tip := advice(a.Score)
	if colored {
		switch {
		case a.Score < 30:
			tip = color.New(color.FgGreen, color.Bold).Sprint(tip)
		case a.Score < 60:
			tip = color.YellowString(tip)
		default:
			tip = color.RedString(tip)
		}
	}
	fmt.Fprintf(w, "  %s\n\n", tip)
}

func (r *Report) renderVerbose(w io.Writer, colored bool) {
	a := r.analysis

	header := "Basic stats (brace yourself):"
	if colored {
		header = color.New(color.FgBlue, color.Bold).Sprint(header)
	}
	fmt.Fprintf(w, "\n* %s\n", header)

	totalIssues := 0
	for _, fr := range a.Files {
		totalIssues += len(fr.Findings)
	}
	fmt.Fprintf(w, "    %-15s %d\n", "Total files:", a.FilesAnalyzed)
	fmt.Fprintf(w, "    %-15s %d\n", "Total lines:", a.TotalLines)
	fmt.Fprintf(w, "    %-15s %d\n", "Total issues:", totalIssues)

	scores := a.FileScores()
	fmt.Fprintf(w, "    %-15s mean %.2f, stddev %.2f, p90 %.2f\n",
		"Score spread:", stats.Mean(scores), stats.StdDev(scores), stats.Percentile(scores, 90))

	fmt.Fprintf(w, "\n  All code files analyzed (no mercy):\n")
	for _, fr := range a.Files {
		line := fmt.Sprintf("%-50s %6.2f", shortenPath(fr.Path), fr.Score)
		if colored {
			line = output.ScoreColor(fr.Score, line)
		}
		fmt.Fprintf(w, "    %s\n", line)
	}
	fmt.Fprintln(w)
}

// RenderMarkdown writes the report as markdown.
func (r *Report) RenderMarkdown(w io.Writer) error {
	a := r.analysis

	fmt.Fprintln(w, "# Code Quality Analysis Report")
	fmt.Fprintln(w)

	if a.Empty {
		fmt.Fprintln(w, "No files found for analysis! Your repo is either empty or blessed.")
		return nil
	}

	fmt.Fprintln(w, "## Overall Assessment")
	fmt.Fprintln(w)
	overview := output.NewTable("", []string{"Quality Score", "Quality Level", "Analyzed Files", "Total Lines"},
		[][]string{{
			fmt.Sprintf("%.2f / 100", a.Score),
			a.Level.Label,
			fmt.Sprintf("%d", a.FilesAnalyzed),
			fmt.Sprintf("%d", a.TotalLines),
		}}, nil, nil)
	if err := overview.RenderMarkdown(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n\n", score.Comment(a.Score))

	if !r.opts.Summary {
		rows := make([][]string, 0, len(a.MetricScores))
		for _, id := range sortedMetricIDs(a.MetricScores) {
			s := a.MetricScores[id]
			rows = append(rows, []string{
				metricNames[id],
				fmt.Sprintf("%.2f", s),
				fmt.Sprintf("%.0f", a.Weights.ForMetric(id)),
				commentary(id, s),
			})
		}
		table := output.NewTable("Quality Metrics", []string{"Metric", "Score", "Weight", "Status"}, rows, nil, nil)
		if err := table.RenderMarkdown(w); err != nil {
			return err
		}

		fmt.Fprintln(w, "## Problem Files")
		fmt.Fprintln(w)
		if len(a.Worst) == 0 {
			fmt.Fprintln(w, "Congratulations! No problematic files found!")
			fmt.Fprintln(w)
		}
		for i, fr := range a.Worst {
			fmt.Fprintf(w, "%d. `%s` — Issue Score: %.2f\n", i+1, fr.Path, fr.IssueScore)
			for _, f := range fr.Findings {
				fmt.Fprintf(w, "   - %s:%d %s\n", f.Severity, f.Line, f.Message)
			}
			if fr.TruncatedFindings > 0 {
				fmt.Fprintf(w, "   - ...and %d more issues\n", fr.TruncatedFindings)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "## Conclusion")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s - %s\n\n", a.Level.Label, a.Level.Description)
	fmt.Fprintf(w, "%s\n", advice(a.Score))
	return nil
}

// shortenPath keeps the last three path segments of deep paths.
func shortenPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) <= 4 {
		return path
	}
	return "./" + strings.Join(parts[len(parts)-3:], "/")
}
