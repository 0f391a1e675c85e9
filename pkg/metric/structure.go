package metric

import (
	"fmt"

	"github.com/messdev/mess/pkg/profile"
	"github.com/messdev/mess/pkg/scanner"
)

// nestingThreshold is the deepest nesting a file gets away with before
// the structure score takes off. Indentation languages and CSS tolerate
// less; HTML pages nest legitimately deep.
func nestingThreshold(p *profile.Profile) int {
	switch {
	case p.Language == profile.LangHTML:
		return 8
	case p.Language == profile.LangCSS:
		return 3
	case p.BlockStyle == profile.BlockIndent:
		return 3
	default:
		return 4
	}
}

// CalcStructure scores structural depth: peak nesting past the
// per-family threshold dominates, with anything below it scaled into
// the bottom of the range.
func CalcStructure(ts *scanner.TokenStream, p *profile.Profile) Result {
	res := Result{Metric: Structure}
	if ts.CodeLines == 0 {
		return res
	}

	th := nestingThreshold(p)
	if ts.MaxNesting > th {
		over := ts.MaxNesting - th
		res.Score = clamp(40 + float64(over)*15)

		sev := SeverityMedium
		if over >= 3 {
			sev = SeverityHigh
		}
		res.Findings = append(res.Findings, Finding{
			File:     ts.Path,
			Line:     1,
			Severity: sev,
			Message:  fmt.Sprintf("nesting reaches depth %d (threshold %d)", ts.MaxNesting, th),
		})
		return res
	}

	res.Score = clamp(float64(ts.MaxNesting) / float64(th) * 35)
	return res
}
