package metric

import (
	"fmt"

	"github.com/messdev/mess/pkg/scanner"
)

// Doc comments weigh more than plain comments; a documented API says
// more about maintainability than an inline remark. Doc lines are
// already counted as comment lines, so this is the extra credit.
const docBonus = 0.5

// A function this long with no comment anywhere near it earns a
// finding of its own.
const uncommentedFnLines = 30

// CalcComments scores comment coverage. Zero code lines yields a
// defined zero result, never a division error.
func CalcComments(ts *scanner.TokenStream) Result {
	res := Result{Metric: Comments}
	if ts.CodeLines == 0 {
		return res
	}

	weighted := float64(ts.CommentLines) + float64(ts.DocLines)*docBonus
	ratio := weighted / float64(ts.CodeLines)
	res.Score = clamp(90 - ratio*100*5)

	switch {
	case ratio < 0.05:
		res.Findings = append(res.Findings, Finding{
			File:     ts.Path,
			Line:     1,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("less than 5%% of code lines are commented (%.1f%%)", ratio*100),
		})
	case ratio < 0.10:
		res.Findings = append(res.Findings, Finding{
			File:     ts.Path,
			Line:     1,
			Severity: SeverityLow,
			Message:  fmt.Sprintf("less than 10%% of code lines are commented (%.1f%%)", ratio*100),
		})
	}

	for _, fn := range ts.Functions {
		if fn.Lines() > uncommentedFnLines && !fn.HasComment {
			res.Findings = append(res.Findings, Finding{
				File:     ts.Path,
				Line:     fn.StartLine,
				Severity: SeverityLow,
				Message:  fmt.Sprintf("function '%s' (%d lines) has no comment", fn.Name, fn.Lines()),
			})
		}
	}

	return res
}
