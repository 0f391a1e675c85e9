package scanner

import (
	"regexp"
	"strings"

	"github.com/messdev/mess/pkg/profile"
)

// Signature patterns per brace-delimited language. These are
// heuristics: ambiguous constructs may under- or over-count, which is
// acceptable for a lexical engine.
var (
	goFunc   = regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s*)?([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	rustFunc = regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?(?:unsafe\s+)?fn\s+([A-Za-z_][A-Za-z0-9_]*)`)

	jsNamedFunc  = regexp.MustCompile(`(?:^|[\s=(,:])function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(`)
	jsAssignFunc = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?(?:function\b|\(|[A-Za-z_$][\w$]*\s*=>)`)
	jsMethod     = regexp.MustCompile(`^\s*(?:async\s+)?([A-Za-z_$][\w$]*)\s*\([^;]*\)\s*\{\s*$`)

	javaFunc = regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final|abstract|synchronized|virtual|override|async|sealed|internal)\s+)+[\w<>\[\],\s.?]*?\b([A-Za-z_]\w*)\s*\(`)
	cFunc    = regexp.MustCompile(`^\s*(?:[A-Za-z_][\w:<>*&\s]*[\s*&])([A-Za-z_]\w*)\s*\([^;]*$|^\s*(?:[A-Za-z_][\w:<>*&\s]*[\s*&])([A-Za-z_]\w*)\s*\([^;]*\)\s*\{`)
	phpFunc  = regexp.MustCompile(`function\s+&?([A-Za-z_]\w*)\s*\(`)

	classDecl = regexp.MustCompile(`\b(?:class|struct|interface|trait|enum)\s+([A-Za-z_]\w*)`)
)

// Variable declaration patterns feeding the naming calculator.
var varDeclPatterns = map[profile.Language][]*regexp.Regexp{
	profile.LangGo: {
		regexp.MustCompile(`\b([A-Za-z_]\w*)\s*:=`),
		regexp.MustCompile(`^\s*var\s+([A-Za-z_]\w*)`),
	},
	profile.LangRust: {
		regexp.MustCompile(`\blet\s+(?:mut\s+)?([A-Za-z_]\w*)`),
	},
	profile.LangJavaScript: {
		regexp.MustCompile(`\b(?:var|let|const)\s+([A-Za-z_$][\w$]*)`),
	},
	profile.LangTypeScript: {
		regexp.MustCompile(`\b(?:var|let|const)\s+([A-Za-z_$][\w$]*)`),
	},
	profile.LangJava: {
		regexp.MustCompile(`\b(?:int|long|float|double|char|boolean|var|String)\s+([A-Za-z_]\w*)\s*[=;]`),
	},
	profile.LangCSharp: {
		regexp.MustCompile(`\b(?:int|long|float|double|char|bool|var|string)\s+([A-Za-z_]\w*)\s*[=;]`),
	},
	profile.LangC: {
		regexp.MustCompile(`\b(?:int|long|float|double|char|unsigned|short)\s+\*?([A-Za-z_]\w*)\s*[=;]`),
	},
	profile.LangCPP: {
		regexp.MustCompile(`\b(?:int|long|float|double|char|bool|auto)\s+\*?&?([A-Za-z_]\w*)\s*[=;{]`),
	},
	profile.LangPHP: {
		regexp.MustCompile(`\$([A-Za-z_]\w*)\s*=[^=]`),
	},
}

// reservedNames are never function names even when a signature
// pattern happens to match them.
var reservedNames = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "switch": true,
	"catch": true, "return": true, "do": true, "new": true, "delete": true,
	"case": true, "default": true, "sizeof": true, "typeof": true,
	"foreach": true, "match": true, "select": true, "defer": true, "go": true,
}

func signaturePatterns(lang profile.Language) []*regexp.Regexp {
	switch lang {
	case profile.LangGo:
		return []*regexp.Regexp{goFunc}
	case profile.LangRust:
		return []*regexp.Regexp{rustFunc}
	case profile.LangJavaScript, profile.LangTypeScript:
		return []*regexp.Regexp{jsNamedFunc, jsAssignFunc, jsMethod}
	case profile.LangJava, profile.LangCSharp:
		return []*regexp.Regexp{javaFunc}
	case profile.LangC, profile.LangCPP:
		return []*regexp.Regexp{cFunc}
	case profile.LangPHP:
		return []*regexp.Regexp{phpFunc}
	default:
		return nil
	}
}

type openFunc struct {
	fn         Function
	entryDepth int
	opened     bool // body brace seen
}

// scanBrace extracts functions, nesting, declarations, and identifiers
// from a brace-delimited file.
func scanBrace(ts *TokenStream, lines []line, p *profile.Profile) {
	patterns := signaturePatterns(p.Language)
	varPatterns := varDeclPatterns[p.Language]

	depth := 0
	var stack []*openFunc
	commentAbove := false

	for idx := range lines {
		ln := &lines[idx]
		code := ln.code
		trimmed := strings.TrimSpace(code)

		if !ln.hasCode {
			commentAbove = commentAbove || ln.hasComment
			continue
		}

		// Top-level mutable state declarations.
		if depth == 0 && len(stack) == 0 {
			if kw := globalDeclPrefix(trimmed, p); kw != "" {
				ts.Declarations = append(ts.Declarations, Declaration{
					Name:    declName(trimmed, kw),
					Line:    ln.num,
					Keyword: strings.TrimSpace(kw),
				})
			}
		}
		if kw := staticDeclMarker(trimmed, p); kw != "" {
			ts.Declarations = append(ts.Declarations, Declaration{
				Name:    declName(trimmed, kw),
				Line:    ln.num,
				Keyword: strings.TrimSpace(kw),
			})
		}

		// Function signature detection before brace accounting so the
		// entry depth excludes the body brace.
		if name, ok := matchSignature(trimmed, patterns); ok {
			of := &openFunc{
				fn: Function{
					Name:       name,
					StartLine:  ln.num,
					Complexity: 1,
					Params:     countParams(code),
					HasComment: commentAbove || ln.hasComment,
				},
				entryDepth: depth,
			}
			ts.Identifiers = append(ts.Identifiers, Identifier{Name: name, Line: ln.num, Kind: IdentFunction})
			if strings.Contains(code, "=>") && !strings.Contains(code, "{") {
				// Single-expression arrow function.
				of.fn.EndLine = ln.num
				of.fn.Complexity += decisionPoints(code, p, true)
				ts.Functions = append(ts.Functions, of.fn)
			} else {
				stack = append(stack, of)
			}
		}

		if m := classDecl.FindStringSubmatch(code); m != nil {
			ts.Identifiers = append(ts.Identifiers, Identifier{Name: m[1], Line: ln.num, Kind: IdentClass})
		}
		for _, re := range varPatterns {
			for _, m := range re.FindAllStringSubmatch(code, -1) {
				name := m[1]
				if name == "" && len(m) > 2 {
					name = m[2]
				}
				if name != "" && !reservedNames[name] {
					ts.Identifiers = append(ts.Identifiers, Identifier{Name: name, Line: ln.num, Kind: IdentVariable})
				}
			}
		}

		// Attribute the line to the innermost open function.
		if top := innermost(stack); top != nil {
			top.fn.Complexity += decisionPoints(code, p, true)
			top.fn.RiskHits += countPatterns(code, p.RiskPatterns)
			top.fn.HandlingHits += countPatterns(code, p.HandlingMarkers)
			if ln.hasComment {
				top.fn.HasComment = true
			}
		}

		// Brace accounting, closing functions whose depth unwinds.
		for j := 0; j < len(code); j++ {
			switch code[j] {
			case '{':
				depth++
				if depth > ts.MaxNesting {
					ts.MaxNesting = depth
				}
				if top := innermost(stack); top != nil && !top.opened {
					top.opened = true
				}
			case '}':
				if depth > 0 {
					depth--
				}
				if top := innermost(stack); top != nil && top.opened && depth == top.entryDepth {
					top.fn.EndLine = ln.num
					ts.Functions = append(ts.Functions, top.fn)
					stack = stack[:len(stack)-1]
				}
			}
		}

		commentAbove = ln.hasComment
	}

	// Unterminated functions (truncated or malformed input) still
	// produce a span ending at EOF.
	for k := len(stack) - 1; k >= 0; k-- {
		fn := stack[k].fn
		fn.EndLine = ts.TotalLines
		ts.Functions = append(ts.Functions, fn)
	}
}

func firstWord(s string) string {
	end := 0
	for end < len(s) && isIdentByte(s[end]) {
		end++
	}
	return s[:end]
}

func innermost(stack []*openFunc) *openFunc {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

func matchSignature(trimmed string, patterns []*regexp.Regexp) (string, bool) {
	if reservedNames[firstWord(trimmed)] {
		return "", false
	}
	for _, re := range patterns {
		m := re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		name := m[1]
		if name == "" && len(m) > 2 {
			name = m[2]
		}
		if name == "" || reservedNames[name] {
			continue
		}
		return name, true
	}
	return "", false
}

// decisionPoints counts control keywords plus short-circuit boolean
// operators and (for ternary languages) conditional expressions.
func decisionPoints(code string, p *profile.Profile, ternary bool) int {
	n := 0
	for _, kw := range p.ControlKeywords {
		n += countWord(code, kw)
	}
	n += strings.Count(code, "&&")
	n += strings.Count(code, "||")
	if ternary && hasTernary(p.Language) {
		n += countTernary(code)
	}
	return n
}

func hasTernary(lang profile.Language) bool {
	switch lang {
	case profile.LangRust, profile.LangGo, profile.LangPython:
		return false
	}
	return true
}

// countTernary counts '?' occurrences that look like conditional
// expressions (not optional-chaining '?.' or null-coalescing '??').
func countTernary(code string) int {
	n := 0
	for i := 0; i < len(code); i++ {
		if code[i] != '?' {
			continue
		}
		if i+1 < len(code) && (code[i+1] == '.' || code[i+1] == '?') {
			i++
			continue
		}
		n++
	}
	return n
}

func countPatterns(code string, patterns []string) int {
	n := 0
	for _, pat := range patterns {
		n += strings.Count(code, pat)
	}
	return n
}

func countParams(code string) int {
	open := strings.IndexByte(code, '(')
	if open < 0 {
		return 0
	}
	closeIdx := strings.IndexByte(code[open:], ')')
	if closeIdx < 0 {
		// Multi-line parameter list; count what is visible.
		closeIdx = len(code) - open
	}
	inner := strings.TrimSpace(code[open+1 : open+closeIdx])
	if inner == "" {
		return 0
	}
	return strings.Count(inner, ",") + 1
}

func globalDeclPrefix(trimmed string, p *profile.Profile) string {
	for _, prefix := range p.GlobalDeclPrefixes {
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}
		// Signature-looking lines are not declarations.
		if strings.Contains(trimmed, "(") {
			continue
		}
		if strings.HasPrefix(trimmed, "const") {
			continue
		}
		return prefix
	}
	return ""
}

func staticDeclMarker(trimmed string, p *profile.Profile) string {
	for _, marker := range p.StaticDeclMarkers {
		if !strings.Contains(trimmed, marker) {
			continue
		}
		if strings.Contains(trimmed, "(") ||
			strings.Contains(trimmed, "final ") ||
			strings.Contains(trimmed, "readonly ") ||
			strings.Contains(trimmed, "const ") {
			continue
		}
		return marker
	}
	return ""
}

// declName extracts the declared identifier following a keyword.
func declName(trimmed, keyword string) string {
	rest := trimmed
	if idx := strings.Index(trimmed, keyword); idx >= 0 {
		rest = trimmed[idx+len(keyword):]
	}
	rest = strings.TrimLeft(rest, " \t*&$")
	end := 0
	for end < len(rest) && isIdentByte(rest[end]) {
		end++
	}
	if end == 0 {
		return ""
	}
	return rest[:end]
}
