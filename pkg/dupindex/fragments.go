package dupindex

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"

	"github.com/messdev/mess/pkg/scanner"
)

// Fragment thresholds. Spans below both are too small to be meaningful
// clones and would flood the index with noise.
const (
	MinFragmentLines  = 8
	MinFragmentTokens = 30
)

// Fragment is a normalized, fingerprinted function body ready for
// insertion into an Index.
type Fragment struct {
	File        string
	StartLine   int
	EndLine     int
	Tokens      int
	Fingerprint uint64
	Digest      [32]byte
}

// keywords survive normalization so that control structure still
// distinguishes fragments after identifiers are anonymized.
var keywords = map[string]bool{
	"if": true, "else": true, "elif": true, "for": true, "while": true,
	"do": true, "switch": true, "case": true, "default": true, "match": true,
	"loop": true, "break": true, "continue": true, "return": true,
	"func": true, "fn": true, "function": true, "def": true, "lambda": true,
	"var": true, "let": true, "const": true, "static": true, "mut": true,
	"class": true, "struct": true, "enum": true, "interface": true, "trait": true,
	"impl": true, "type": true, "new": true, "delete": true, "this": true,
	"self": true, "super": true, "try": true, "catch": true, "except": true,
	"finally": true, "throw": true, "throws": true, "raise": true, "panic": true,
	"defer": true, "go": true, "select": true, "chan": true, "range": true,
	"map": true, "async": true, "await": true, "yield": true, "in": true,
	"of": true, "is": true, "not": true, "and": true, "or": true,
	"true": true, "false": true, "nil": true, "null": true, "none": true,
	"void": true, "int": true, "float": true, "double": true, "bool": true,
	"string": true, "char": true, "byte": true, "public": true, "private": true,
	"protected": true, "import": true, "package": true, "use": true, "from": true,
}

// ExtractFragments normalizes every function body in a token stream
// and returns the fragments large enough to index. Literal contents
// are already stripped by the scanner, so normalization only has to
// anonymize identifiers and numbers.
func ExtractFragments(ts *scanner.TokenStream) []Fragment {
	if ts == nil || len(ts.Functions) == 0 {
		return nil
	}

	byLine := make(map[int]string, len(ts.Code))
	for _, cl := range ts.Code {
		byLine[cl.Num] = cl.Text
	}

	var frags []Fragment
	for _, fn := range ts.Functions {
		if fn.EndLine-fn.StartLine+1 < MinFragmentLines {
			continue
		}
		tokens := normalizeSpan(byLine, fn.StartLine, fn.EndLine)
		if len(tokens) < MinFragmentTokens {
			continue
		}
		joined := strings.Join(tokens, " ")
		frags = append(frags, Fragment{
			File:        ts.Path,
			StartLine:   fn.StartLine,
			EndLine:     fn.EndLine,
			Tokens:      len(tokens),
			Fingerprint: xxhash.Sum64String(joined),
			Digest:      blake3.Sum256([]byte(joined)),
		})
	}
	return frags
}

// normalizeSpan tokenizes the code lines of a span. Identifiers map to
// positional placeholders in order of first appearance, numbers
// collapse to a single token, and keywords and operators pass through.
func normalizeSpan(byLine map[int]string, start, end int) []string {
	var tokens []string
	seen := map[string]string{}

	for num := start; num <= end; num++ {
		text, ok := byLine[num]
		if !ok {
			continue
		}
		i := 0
		for i < len(text) {
			c := text[i]
			switch {
			case c == ' ' || c == '\t':
				i++
			case isIdentStart(c):
				j := i + 1
				for j < len(text) && isIdentPart(text[j]) {
					j++
				}
				word := text[i:j]
				if keywords[strings.ToLower(word)] {
					tokens = append(tokens, strings.ToLower(word))
				} else {
					ph, ok := seen[word]
					if !ok {
						ph = placeholder(len(seen))
						seen[word] = ph
					}
					tokens = append(tokens, ph)
				}
				i = j
			case c >= '0' && c <= '9':
				j := i + 1
				for j < len(text) && (isIdentPart(text[j]) || text[j] == '.') {
					j++
				}
				tokens = append(tokens, "0")
				i = j
			default:
				tokens = append(tokens, string(c))
				i++
			}
		}
	}
	return tokens
}

// placeholder builds stable positional names: $a, $b, ..., $z, $27...
func placeholder(n int) string {
	if n < 26 {
		return "$" + string(rune('a'+n))
	}
	return "$" + itoa(n+1)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
