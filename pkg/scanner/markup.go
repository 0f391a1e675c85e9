package scanner

import (
	"regexp"
	"strings"

	"github.com/messdev/mess/pkg/profile"
)

// Markup scanning treats CSS rules, <script>/<style> blocks, and
// <form> blocks as the "functions" of a markup file so the same
// metric pipeline applies.

var (
	cssClassSel = regexp.MustCompile(`\.([A-Za-z_-][\w-]*)`)
	cssIDSel    = regexp.MustCompile(`#([A-Za-z_-][\w-]*)`)
	htmlIDAttr  = regexp.MustCompile(`\bid\s*=\s*"([^"]*)"`)
	htmlTag     = regexp.MustCompile(`<(/?)([A-Za-z][\w-]*)([^>]*)>`)
)

// voidTags never nest.
var voidTags = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "meta": true,
	"link": true, "area": true, "base": true, "col": true, "embed": true,
	"source": true, "track": true, "wbr": true,
}

// scanCSS treats each rule as a function whose complexity combines
// selector complexity and property complexity.
func scanCSS(ts *TokenStream, lines []line) {
	depth := 0
	var selector strings.Builder
	var current *Function
	propComplexity := 0

	for idx := range lines {
		ln := &lines[idx]
		if !ln.hasCode {
			continue
		}
		code := ln.code

		for _, m := range cssClassSel.FindAllStringSubmatch(code, -1) {
			ts.Identifiers = append(ts.Identifiers, Identifier{Name: m[1], Line: ln.num, Kind: IdentCSSClass})
		}
		for _, m := range cssIDSel.FindAllStringSubmatch(code, -1) {
			ts.Identifiers = append(ts.Identifiers, Identifier{Name: m[1], Line: ln.num, Kind: IdentHTMLID})
		}

		for j := 0; j < len(code); j++ {
			switch code[j] {
			case '{':
				depth++
				if depth > ts.MaxNesting {
					ts.MaxNesting = depth
				}
				if depth == 1 {
					sel := strings.TrimSpace(selector.String() + code[:j])
					current = &Function{
						Name:       truncateSelector(sel),
						StartLine:  ln.num,
						Complexity: 1 + selectorComplexity(sel),
					}
					propComplexity = 0
				} else if current != nil {
					propComplexity++ // nested rule
				}
			case '}':
				if depth > 0 {
					depth--
				}
				if depth == 0 && current != nil {
					current.EndLine = ln.num
					current.Complexity += propComplexity
					if ln.hasComment || current.HasComment {
						current.HasComment = true
					}
					ts.Functions = append(ts.Functions, *current)
					current = nil
					selector.Reset()
				}
			}
		}

		if depth == 0 && current == nil {
			// Accumulate multi-line selectors between rules.
			if !strings.ContainsAny(code, "{}") {
				selector.WriteString(code)
				selector.WriteByte(' ')
			} else {
				selector.Reset()
			}
		}

		if current != nil {
			propComplexity += propertyComplexity(code)
			if ln.hasComment {
				current.HasComment = true
			}
		}
	}

	if current != nil {
		current.EndLine = ts.TotalLines
		current.Complexity += propComplexity
		ts.Functions = append(ts.Functions, *current)
	}
}

// selectorComplexity scores combinators, pseudo-classes, and id usage
// in a selector. IDs weigh double.
func selectorComplexity(sel string) int {
	n := 0
	n += strings.Count(sel, " ")
	n += strings.Count(sel, ">")
	n += strings.Count(sel, "+")
	n += strings.Count(sel, "~")
	n += strings.Count(sel, ".")
	n += strings.Count(sel, "#") * 2
	n += strings.Count(sel, "[")
	n += strings.Count(sel, ":")
	n += strings.Count(sel, ",")
	return n
}

// propertyComplexity scores heavyweight properties and at-rules.
func propertyComplexity(code string) int {
	n := strings.Count(code, ":")
	for _, heavy := range []string{"transform", "animation", "transition", "background", "border", "box-shadow", "text-shadow", "filter"} {
		if strings.Contains(code, heavy) {
			n += 2
		}
	}
	n += strings.Count(code, "calc(") * 2
	n += strings.Count(code, "@media") * 3
	return n
}

func truncateSelector(sel string) string {
	sel = strings.Join(strings.Fields(sel), " ")
	if len(sel) > 60 {
		return sel[:57] + "..."
	}
	if sel == "" {
		return "(anonymous rule)"
	}
	return sel
}

// scanHTML tracks tag nesting depth and lifts embedded script, style,
// and form blocks into function spans.
func scanHTML(ts *TokenStream, lines []line, p *profile.Profile) {
	depth := 0
	var block *Function // open script/style/form block
	var blockTag string
	formFields := 0
	complexElements := 0

	for idx := range lines {
		ln := &lines[idx]
		if !ln.hasCode {
			continue
		}
		code := ln.code

		for _, m := range htmlIDAttr.FindAllStringSubmatch(code, -1) {
			if m[1] != "" {
				ts.Identifiers = append(ts.Identifiers, Identifier{Name: m[1], Line: ln.num, Kind: IdentHTMLID})
			}
		}

		for _, m := range htmlTag.FindAllStringSubmatch(code, -1) {
			closing := m[1] == "/"
			tag := strings.ToLower(m[2])
			selfClosing := strings.HasSuffix(strings.TrimSpace(m[3]), "/") || voidTags[tag]

			switch {
			case !closing && !selfClosing:
				depth++
				if depth > ts.MaxNesting {
					ts.MaxNesting = depth
				}
			case closing && depth > 0:
				depth--
			}

			switch tag {
			case "div", "span", "table", "ul", "ol":
				if !closing {
					complexElements++
				}
			case "input", "select", "textarea", "button":
				if block != nil && blockTag == "form" && !closing {
					formFields++
				}
			}

			if block == nil && !closing && (tag == "script" || tag == "style" || tag == "form") && !selfClosing {
				block = &Function{Name: tag, StartLine: ln.num, Complexity: 1}
				blockTag = tag
				formFields = 0
				continue
			}
			if block != nil && closing && tag == blockTag {
				block.EndLine = ln.num
				if blockTag == "form" {
					block.Complexity += formFields
				}
				ts.Functions = append(ts.Functions, *block)
				block = nil
			}
		}

		if block != nil {
			switch blockTag {
			case "script":
				block.Complexity += decisionPoints(code, p, true)
				block.RiskHits += countPatterns(code, p.RiskPatterns)
				block.HandlingHits += countPatterns(code, p.HandlingMarkers)
				// Globally-scoped script state.
				trimmed := strings.TrimSpace(code)
				if kw := globalDeclPrefix(trimmed, p); kw != "" {
					ts.Declarations = append(ts.Declarations, Declaration{
						Name:    declName(trimmed, kw),
						Line:    ln.num,
						Keyword: strings.TrimSpace(kw),
					})
				}
			case "style":
				block.Complexity += propertyComplexity(code)
			}
			if ln.hasComment {
				block.HasComment = true
			}
		}
	}

	if block != nil {
		block.EndLine = ts.TotalLines
		ts.Functions = append(ts.Functions, *block)
	}

	// A page drowning in generic containers gets a structural block of
	// its own so the structure calculator can see it.
	if complexElements > 50 {
		ts.Functions = append(ts.Functions, Function{
			Name:       "html_structure",
			StartLine:  1,
			EndLine:    ts.TotalLines,
			Complexity: complexElements / 10,
		})
	}
}
