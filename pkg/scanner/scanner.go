// Package scanner turns raw file bytes into a normalized TokenStream
// using lightweight per-language lexical scanning. It never errors on
// malformed input; unrecognized constructs are simply not counted.
package scanner

import (
	"strings"

	"github.com/messdev/mess/pkg/profile"
)

// Scan classifies content against a language profile and extracts
// functions, declarations, identifiers, and nesting information.
// Any byte sequence scans to some TokenStream.
func Scan(path string, content []byte, p *profile.Profile) *TokenStream {
	ts := &TokenStream{Path: path, Language: p.Language}
	text := string(content)
	if text == "" {
		return ts
	}

	lines := classify(text, p)
	ts.TotalLines = len(lines)

	for _, ln := range lines {
		switch {
		case ln.hasCode:
			ts.CodeLines++
			ts.Code = append(ts.Code, CodeLine{Num: ln.num, Text: ln.code})
			if ln.hasComment {
				ts.CommentLines++
			}
		case ln.hasComment:
			ts.CommentLines++
			if ln.isDoc {
				ts.DocLines++
			}
		default:
			ts.BlankLines++
		}
	}

	switch p.BlockStyle {
	case profile.BlockIndent:
		scanIndent(ts, lines, p)
	case profile.BlockMarkup:
		if p.Language == profile.LangCSS {
			scanCSS(ts, lines)
		} else {
			scanHTML(ts, lines, p)
		}
	default:
		scanBrace(ts, lines, p)
	}

	return ts
}

// line is one classified physical line. code holds the source text
// with string and character literal contents stripped so later stages
// never mistake literal contents for syntax.
type line struct {
	num        int
	code       string
	hasCode    bool
	hasComment bool
	isDoc      bool
}

// classify runs the lexical state machine over the whole file. States:
// code, line comment, block comment, string literal, char literal.
// Block comments and raw/triple-quoted strings carry across lines.
func classify(text string, p *profile.Profile) []line {
	raw := strings.Split(text, "\n")
	out := make([]line, 0, len(raw))

	var (
		inBlock      bool
		blockClose   string
		blockIsDoc   bool
		inRawString  bool   // backtick strings (Go, JS templates)
		inTriple     bool   // python triple-quoted string treated as code
		inDocstring  bool   // python triple-quoted string in comment position
		tripleDelim  string // closing delimiter for triple/docstring state
	)

	for num, src := range raw {
		var (
			b          strings.Builder
			hasComment bool
			isDoc      bool
		)
		i := 0

	scanLine:
		for i < len(src) {
			switch {
			case inBlock:
				if idx := strings.Index(src[i:], blockClose); idx >= 0 {
					hasComment = true
					isDoc = isDoc || blockIsDoc
					i += idx + len(blockClose)
					inBlock = false
					continue
				}
				hasComment = true
				isDoc = isDoc || blockIsDoc
				break scanLine

			case inDocstring:
				if idx := strings.Index(src[i:], tripleDelim); idx >= 0 {
					hasComment = true
					isDoc = true
					i += idx + len(tripleDelim)
					inDocstring = false
					continue
				}
				hasComment = true
				isDoc = true
				break scanLine

			case inTriple:
				if idx := strings.Index(src[i:], tripleDelim); idx >= 0 {
					b.WriteString(tripleDelim)
					i += idx + len(tripleDelim)
					inTriple = false
					continue
				}
				// Literal continues past this line; the line still
				// counts as code.
				b.WriteByte('"')
				break scanLine

			case inRawString:
				if idx := strings.IndexByte(src[i:], '`'); idx >= 0 {
					b.WriteByte('`')
					i += idx + 1
					inRawString = false
					continue
				}
				b.WriteByte('`')
				break scanLine
			}

			// Python triple quotes, checked before single quotes.
			if p.Language == profile.LangPython {
				if d := tripleAt(src, i); d != "" {
					if strings.TrimSpace(b.String()) == "" {
						tripleDelim = d
						if idx := strings.Index(src[i+3:], d); idx >= 0 {
							// Single-line docstring.
							hasComment = true
							isDoc = true
							i += 3 + idx + 3
							continue
						}
						inDocstring = true
						hasComment = true
						isDoc = true
						break scanLine
					}
					tripleDelim = d
					b.WriteString(d)
					if idx := strings.Index(src[i+3:], d); idx >= 0 {
						b.WriteString(d)
						i += 3 + idx + 3
						continue
					}
					inTriple = true
					break scanLine
				}
			}

			// Doc comment markers take priority over their plain
			// prefixes (/// before //, /** before /*).
			if m := markerAt(src, i, p.DocComments); m != "" {
				if bc := blockOpenerFor(m, p); bc != nil {
					inBlock = true
					blockClose = bc.Close
					blockIsDoc = true
					hasComment = true
					isDoc = true
					i += len(m)
					continue
				}
				hasComment = true
				isDoc = true
				break scanLine
			}

			if bc := blockCommentAt(src, i, p); bc != nil {
				inBlock = true
				blockClose = bc.Close
				blockIsDoc = false
				hasComment = true
				i += len(bc.Open)
				continue
			}

			if m := markerAt(src, i, p.LineComments); m != "" {
				hasComment = true
				break scanLine
			}

			c := src[i]

			if c == '`' && p.HasRawBacktick {
				b.WriteByte('`')
				i++
				if idx := strings.IndexByte(src[i:], '`'); idx >= 0 {
					b.WriteByte('`')
					i += idx + 1
					continue
				}
				inRawString = true
				break scanLine
			}

			if isQuote(c, p.StringQuotes) && !(c == '\'' && p.HasCharLiteral) {
				end := skipString(src, i)
				b.WriteByte(c)
				b.WriteByte(c)
				if end < 0 {
					// Unterminated literal; treat rest of line as
					// its contents.
					break scanLine
				}
				i = end
				continue
			}

			if c == '\'' && p.HasCharLiteral {
				if end, ok := charLiteralEnd(src, i); ok {
					b.WriteString("''")
					i = end
					continue
				}
				// Not a char literal (e.g. a Rust lifetime).
				b.WriteByte(c)
				i++
				continue
			}

			b.WriteByte(c)
			i++
		}

		code := b.String()
		out = append(out, line{
			num:        num + 1,
			code:       code,
			hasCode:    strings.TrimSpace(code) != "",
			hasComment: hasComment,
			isDoc:      isDoc,
		})
	}

	return out
}

func isQuote(c byte, quotes []byte) bool {
	for _, q := range quotes {
		if c == q {
			return true
		}
	}
	return false
}

// skipString returns the index just past the closing quote, or -1 when
// the literal is unterminated on this line. Backslash escapes are
// honored.
func skipString(src string, start int) int {
	q := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case q:
			return i + 1
		}
	}
	return -1
}

// charLiteralEnd detects a short character literal such as 'a' or
// '\n'. Anything longer is assumed to be other syntax.
func charLiteralEnd(src string, start int) (int, bool) {
	i := start + 1
	if i >= len(src) {
		return 0, false
	}
	if src[i] == '\\' {
		i++
	}
	i++ // the character itself
	if i < len(src) && src[i] == '\'' {
		return i + 1, true
	}
	return 0, false
}

func markerAt(src string, i int, markers []string) string {
	for _, m := range markers {
		if m != "" && strings.HasPrefix(src[i:], m) {
			return m
		}
	}
	return ""
}

func blockCommentAt(src string, i int, p *profile.Profile) *profile.BlockComment {
	for k := range p.BlockComments {
		bc := &p.BlockComments[k]
		if strings.HasPrefix(src[i:], bc.Open) {
			return bc
		}
	}
	return nil
}

// blockOpenerFor returns the block comment whose opener prefixes a doc
// marker (e.g. "/*" for "/**"), or nil for line doc markers.
func blockOpenerFor(docMarker string, p *profile.Profile) *profile.BlockComment {
	for k := range p.BlockComments {
		bc := &p.BlockComments[k]
		if strings.HasPrefix(docMarker, bc.Open) {
			return bc
		}
	}
	return nil
}

func tripleAt(src string, i int) string {
	if strings.HasPrefix(src[i:], `"""`) {
		return `"""`
	}
	if strings.HasPrefix(src[i:], "'''") {
		return "'''"
	}
	return ""
}

// countWord counts word-bounded occurrences of kw in s.
func countWord(s, kw string) int {
	count := 0
	for i := 0; i+len(kw) <= len(s); {
		idx := strings.Index(s[i:], kw)
		if idx < 0 {
			break
		}
		pos := i + idx
		before := pos == 0 || !isIdentByte(s[pos-1])
		afterIdx := pos + len(kw)
		after := afterIdx >= len(s) || !isIdentByte(s[afterIdx])
		if before && after {
			count++
		}
		i = pos + len(kw)
	}
	return count
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
