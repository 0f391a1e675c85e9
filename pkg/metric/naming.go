package metric

import (
	"fmt"
	"strings"

	"github.com/messdev/mess/pkg/profile"
	"github.com/messdev/mess/pkg/scanner"
)

// loopCounters are short names with an established meaning.
var loopCounters = map[string]bool{
	"i": true, "j": true, "k": true, "n": true, "x": true, "y": true,
	"ok": true, "id": true, "it": true, "wg": true, "mu": true, "fs": true,
	"db": true, "tx": true, "ts": true, "fn": true,
}

// junkNames carry no meaning at all.
var junkNames = map[string]bool{
	"tmp": true, "temp": true, "foo": true, "bar": true, "baz": true,
	"qux": true, "xxx": true, "yyy": true, "zzz": true, "asdf": true,
	"stuff": true, "thing": true, "things": true, "misc": true,
	"obj": true, "val": true, "var1": true, "var2": true,
	"data1": true, "data2": true, "test1": true, "test2": true,
}

// CalcNaming scores identifier quality: cryptic names, junk names, and
// violations of the language's naming convention.
func CalcNaming(ts *scanner.TokenStream, p *profile.Profile) Result {
	res := Result{Metric: Naming}
	if len(ts.Identifiers) == 0 {
		return res
	}

	bad := 0
	for _, ident := range ts.Identifiers {
		name := ident.Name
		lower := strings.ToLower(name)

		switch {
		case junkNames[lower]:
			bad++
			res.Findings = append(res.Findings, Finding{
				File:     ts.Path,
				Line:     ident.Line,
				Severity: SeverityHigh,
				Message:  fmt.Sprintf("'%s' is a meaningless name", name),
			})
		case len(name) <= 2 && !loopCounters[lower]:
			bad++
			res.Findings = append(res.Findings, Finding{
				File:     ts.Path,
				Line:     ident.Line,
				Severity: SeverityMedium,
				Message:  fmt.Sprintf("'%s' is too short to mean anything", name),
			})
		case violatesConvention(name, ident.Kind, p.Naming):
			bad++
			res.Findings = append(res.Findings, Finding{
				File:     ts.Path,
				Line:     ident.Line,
				Severity: SeverityLow,
				Message:  fmt.Sprintf("'%s' does not follow %s naming", name, conventionName(p.Naming)),
			})
		}
	}

	if bad == 0 {
		return res
	}

	badRatio := float64(bad) / float64(len(ts.Identifiers))
	res.Score = clamp(40 + badRatio*1000)
	return res
}

// violatesConvention checks a name against the profile's expected
// style. Constants in SCREAMING_CASE and class names in PascalCase are
// accepted everywhere they are conventional.
func violatesConvention(name string, kind scanner.IdentKind, style profile.NamingStyle) bool {
	if isScreaming(name) {
		return false
	}
	if kind == scanner.IdentClass {
		return false
	}

	switch style {
	case profile.NamingSnake:
		return hasCamelHump(name)
	case profile.NamingCamel:
		return strings.Contains(strings.Trim(name, "_"), "_")
	case profile.NamingKebab:
		return strings.Contains(name, "_") || hasCamelHump(name)
	default:
		return false
	}
}

func conventionName(style profile.NamingStyle) string {
	switch style {
	case profile.NamingSnake:
		return "snake_case"
	case profile.NamingKebab:
		return "kebab-case"
	default:
		return "camelCase"
	}
}

// isScreaming reports an all-caps constant name like MAX_RETRIES.
func isScreaming(name string) bool {
	hasLetter := false
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= 'a' && c <= 'z':
			return false
		}
	}
	return hasLetter
}

// hasCamelHump reports a lower-to-upper transition, the signature of
// camelCase in a snake_case world.
func hasCamelHump(name string) bool {
	for i := 1; i < len(name); i++ {
		prev, cur := name[i-1], name[i]
		if prev >= 'a' && prev <= 'z' && cur >= 'A' && cur <= 'Z' {
			return true
		}
	}
	return false
}
