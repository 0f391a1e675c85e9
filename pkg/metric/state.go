package metric

import (
	"fmt"

	"github.com/messdev/mess/pkg/scanner"
)

// Function-size thresholds bundled under the state weight.
const (
	fnLinesLow    = 40
	fnLinesMedium = 70
	fnLinesHigh   = 120
	fnParamsWarn  = 6
	fnParamsHigh  = 8
)

// CalcState scores shared mutable state: global and static mutable
// declarations per 100 code lines, plus pressure from oversized
// functions and parameter overload.
func CalcState(ts *scanner.TokenStream) Result {
	res := Result{Metric: State}
	if ts.CodeLines == 0 {
		return res
	}

	for _, d := range ts.Declarations {
		res.Findings = append(res.Findings, Finding{
			File:     ts.Path,
			Line:     d.Line,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("mutable global state '%s' (%s)", d.Name, d.Keyword),
		})
	}

	density := float64(len(ts.Declarations)) / float64(ts.CodeLines) * 100
	score := density * 15
	if score > 60 {
		score = 60
	}

	pressure := 0.0
	for _, fn := range ts.Functions {
		lines := fn.Lines()
		switch {
		case lines > fnLinesHigh:
			pressure += 10
			res.Findings = append(res.Findings, Finding{
				File:     ts.Path,
				Line:     fn.StartLine,
				Severity: SeverityHigh,
				Message:  fmt.Sprintf("function '%s' spans %d lines", fn.Name, lines),
			})
		case lines > fnLinesMedium:
			pressure += 5
			res.Findings = append(res.Findings, Finding{
				File:     ts.Path,
				Line:     fn.StartLine,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("function '%s' spans %d lines", fn.Name, lines),
			})
		case lines > fnLinesLow:
			pressure += 2
			res.Findings = append(res.Findings, Finding{
				File:     ts.Path,
				Line:     fn.StartLine,
				Severity: SeverityLow,
				Message:  fmt.Sprintf("function '%s' spans %d lines", fn.Name, lines),
			})
		}

		switch {
		case fn.Params > fnParamsHigh:
			pressure += 5
			res.Findings = append(res.Findings, Finding{
				File:     ts.Path,
				Line:     fn.StartLine,
				Severity: SeverityHigh,
				Message:  fmt.Sprintf("function '%s' takes %d parameters", fn.Name, fn.Params),
			})
		case fn.Params > fnParamsWarn:
			pressure += 2
			res.Findings = append(res.Findings, Finding{
				File:     ts.Path,
				Line:     fn.StartLine,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("function '%s' takes %d parameters", fn.Name, fn.Params),
			})
		}
	}
	if pressure > 40 {
		pressure = 40
	}

	res.Score = clamp(score + pressure)
	return res
}
