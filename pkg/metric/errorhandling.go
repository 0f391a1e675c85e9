package metric

import (
	"fmt"

	"github.com/messdev/mess/pkg/profile"
	"github.com/messdev/mess/pkg/scanner"
)

// CalcErrorHandling scores unguarded risk. Functions that touch I/O,
// parsing, or the network without any handling idiom nearby drive the
// missing ratio; the language's idiom quality sets the floor.
func CalcErrorHandling(ts *scanner.TokenStream, p *profile.Profile) Result {
	res := Result{Metric: ErrorHandling}

	risky := 0
	missing := 0
	for _, fn := range ts.Functions {
		if fn.RiskHits == 0 {
			continue
		}
		risky++
		if fn.HandlingHits > 0 {
			continue
		}
		missing++

		sev := SeverityMedium
		if fn.RiskHits > 2 {
			sev = SeverityHigh
		}
		res.Findings = append(res.Findings, Finding{
			File:     ts.Path,
			Line:     fn.StartLine,
			Severity: sev,
			Message:  fmt.Sprintf("function '%s' performs %d risky operations with no error handling", fn.Name, fn.RiskHits),
		})
	}

	if risky == 0 {
		return res
	}

	missingRatio := float64(missing) / float64(risky)
	res.Score = clamp(missingRatio*40 + (1-p.HandlingQuality)*60)
	return res
}
