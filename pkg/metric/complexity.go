package metric

import (
	"fmt"

	"github.com/messdev/mess/pkg/scanner"
)

// Complexity thresholds for findings.
const (
	complexityWarn = 10
	complexityHigh = 15
)

// CalcComplexity scores the average cyclomatic complexity of the
// file's functions. A file with no functions scores 0.
func CalcComplexity(ts *scanner.TokenStream) Result {
	res := Result{Metric: Complexity}
	if len(ts.Functions) == 0 {
		return res
	}

	total := 0
	for _, fn := range ts.Functions {
		total += fn.Complexity
		switch {
		case fn.Complexity > complexityHigh:
			res.Findings = append(res.Findings, Finding{
				File:     ts.Path,
				Line:     fn.StartLine,
				Severity: SeverityHigh,
				Message:  fmt.Sprintf("function '%s' has cyclomatic complexity %d", fn.Name, fn.Complexity),
			})
		case fn.Complexity > complexityWarn:
			res.Findings = append(res.Findings, Finding{
				File:     ts.Path,
				Line:     fn.StartLine,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("function '%s' has cyclomatic complexity %d", fn.Name, fn.Complexity),
			})
		}
	}

	avg := float64(total) / float64(len(ts.Functions))
	res.Score = clamp(40 + avg*10)
	return res
}
