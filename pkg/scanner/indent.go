package scanner

import (
	"regexp"

	"github.com/messdev/mess/pkg/profile"
)

var (
	pyDef    = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
	pyClass  = regexp.MustCompile(`^\s*class\s+([A-Za-z_]\w*)`)
	pyAssign = regexp.MustCompile(`^([A-Za-z_]\w*)\s*=[^=]`)
	pyVar    = regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*=[^=]`)
	pyGlobal = regexp.MustCompile(`^\s*global\s+([A-Za-z_]\w*)`)
)

// indentUnit is the assumed width of one indentation level when
// estimating nesting depth; tabs count as one unit.
const indentUnit = 4

type openDef struct {
	fn     Function
	indent int
}

// scanIndent extracts functions, nesting, declarations, and
// identifiers from an indentation-delimited file.
func scanIndent(ts *TokenStream, lines []line, p *profile.Profile) {
	var stack []*openDef
	commentAbove := false
	lastCodeLine := 0

	for idx := range lines {
		ln := &lines[idx]
		if !ln.hasCode {
			commentAbove = commentAbove || ln.hasComment
			continue
		}

		code := ln.code
		indent := indentWidth(code)
		depth := indent/indentUnit + 1
		if depth > ts.MaxNesting {
			ts.MaxNesting = depth
		}

		// Close any function whose body has ended (dedent back to or
		// past the def's own indentation).
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if indent > top.indent {
				break
			}
			top.fn.EndLine = lastCodeLine
			ts.Functions = append(ts.Functions, top.fn)
			stack = stack[:len(stack)-1]
		}

		// Module-level mutable state: global statements anywhere and
		// lowercase assignments at indent zero.
		if m := pyGlobal.FindStringSubmatch(code); m != nil {
			ts.Declarations = append(ts.Declarations, Declaration{Name: m[1], Line: ln.num, Keyword: "global"})
		} else if indent == 0 {
			if m := pyAssign.FindStringSubmatch(code); m != nil && isLowerIdent(m[1]) {
				ts.Declarations = append(ts.Declarations, Declaration{Name: m[1], Line: ln.num, Keyword: "module"})
			}
		}

		if m := pyDef.FindStringSubmatch(code); m != nil {
			name := m[2]
			stack = append(stack, &openDef{
				fn: Function{
					Name:       name,
					StartLine:  ln.num,
					Complexity: 1,
					Params:     countParams(code),
					HasComment: commentAbove || ln.hasComment,
				},
				indent: indent,
			})
			ts.Identifiers = append(ts.Identifiers, Identifier{Name: name, Line: ln.num, Kind: IdentFunction})
		} else if m := pyClass.FindStringSubmatch(code); m != nil {
			ts.Identifiers = append(ts.Identifiers, Identifier{Name: m[1], Line: ln.num, Kind: IdentClass})
		} else if m := pyVar.FindStringSubmatch(code); m != nil && !reservedNames[m[1]] {
			ts.Identifiers = append(ts.Identifiers, Identifier{Name: m[1], Line: ln.num, Kind: IdentVariable})
		}

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.fn.StartLine != ln.num {
				top.fn.Complexity += decisionPoints(code, p, false)
				top.fn.Complexity += countWord(code, "and") + countWord(code, "or")
			}
			top.fn.RiskHits += countPatterns(code, p.RiskPatterns)
			top.fn.HandlingHits += countPatterns(code, p.HandlingMarkers)
			// commentAbove covers a leading docstring as well.
			if ln.hasComment || commentAbove {
				top.fn.HasComment = true
			}
		}

		commentAbove = ln.hasComment
		lastCodeLine = ln.num
	}

	for k := len(stack) - 1; k >= 0; k-- {
		fn := stack[k].fn
		fn.EndLine = lastCodeLine
		if fn.EndLine < fn.StartLine {
			fn.EndLine = fn.StartLine
		}
		ts.Functions = append(ts.Functions, fn)
	}
}

func indentWidth(code string) int {
	w := 0
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case ' ':
			w++
		case '\t':
			w += indentUnit
		default:
			return w
		}
	}
	return w
}

func isLowerIdent(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}
