package metric

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/messdev/mess/pkg/dupindex"
	"github.com/messdev/mess/pkg/scanner"
)

// copySuffix matches the naming patterns copy-paste leaves behind:
// handler_v2, handlerCopy, handler_backup, handler2.
var copySuffix = regexp.MustCompile(`(?i)(_v\d+|_copy|copy\d*|_backup|_old|_new|\d+)$`)

// Minimum family size before a naming pattern counts as a copy-paste
// signal.
const copyFamilyMin = 3

// CalcDuplication scores duplicate code. Fragment fingerprints are
// looked up in the shared index, which by this point holds every
// fragment of the run, so clones are found symmetrically no matter
// which file was processed first. A naming-pattern signal catches
// copy-paste families the fingerprints miss.
func CalcDuplication(ts *scanner.TokenStream, frags []dupindex.Fragment, ix *dupindex.Index) Result {
	res := Result{Metric: Duplication}
	if ts.CodeLines == 0 {
		return res
	}

	dupLines := 0
	for _, f := range frags {
		partners := ix.Partners(f)
		if len(partners) == 0 {
			continue
		}
		lines := f.EndLine - f.StartLine + 1
		dupLines += lines

		p := partners[0]
		sev := SeverityMedium
		if p.File != f.File {
			sev = SeverityHigh
		}
		msg := fmt.Sprintf("lines %d-%d duplicate %s:%d", f.StartLine, f.EndLine, p.File, p.StartLine)
		if len(partners) > 1 {
			msg = fmt.Sprintf("%s (+%d more)", msg, len(partners)-1)
		}
		res.Findings = append(res.Findings, Finding{
			File:     ts.Path,
			Line:     f.StartLine,
			Severity: sev,
			Message:  msg,
		})
	}

	score := 0.0
	if dupLines > 0 {
		coverage := float64(dupLines) / float64(ts.CodeLines)
		score = 40 + coverage*120
	}

	families := copyFamilies(ts.Functions)
	bases := make([]string, 0, len(families))
	for base := range families {
		bases = append(bases, base)
	}
	sort.Strings(bases)
	for _, base := range bases {
		members := families[base]
		res.Findings = append(res.Findings, Finding{
			File:     ts.Path,
			Line:     members[0].StartLine,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("%d functions share the base name '%s' (copy-paste naming)", len(members), base),
		})
		score += 10
	}

	res.Score = clamp(score)
	return res
}

// copyFamilies groups functions whose names differ only by a
// copy-paste suffix and returns the families of copyFamilyMin or more.
func copyFamilies(fns []scanner.Function) map[string][]scanner.Function {
	groups := map[string][]scanner.Function{}
	for _, fn := range fns {
		base := copySuffix.ReplaceAllString(fn.Name, "")
		base = strings.TrimRight(base, "_")
		if base == "" {
			continue
		}
		groups[base] = append(groups[base], fn)
	}
	for base, members := range groups {
		if len(members) < copyFamilyMin {
			delete(groups, base)
		}
	}
	return groups
}
