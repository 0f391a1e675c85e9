package scanner

import "github.com/messdev/mess/pkg/profile"

// Function is one detected function, method, rule, or block span.
type Function struct {
	Name       string `json:"name"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	Complexity int    `json:"complexity"`
	Params     int    `json:"params"`

	// RiskHits counts risk-bearing operations in the body;
	// HandlingHits counts error-handling idiom occurrences.
	RiskHits     int `json:"risk_hits,omitempty"`
	HandlingHits int `json:"handling_hits,omitempty"`

	// HasComment reports an adjacent or embedded comment.
	HasComment bool `json:"has_comment,omitempty"`
}

// Lines returns the function span length in lines.
func (f Function) Lines() int {
	if f.EndLine < f.StartLine {
		return 0
	}
	return f.EndLine - f.StartLine + 1
}

// Declaration is a mutable global or static declaration site.
type Declaration struct {
	Name    string `json:"name"`
	Line    int    `json:"line"`
	Keyword string `json:"keyword"`
}

// IdentKind categorizes an identifier occurrence.
type IdentKind string

const (
	IdentFunction IdentKind = "function"
	IdentVariable IdentKind = "variable"
	IdentClass    IdentKind = "class"
	IdentCSSClass IdentKind = "css_class"
	IdentHTMLID   IdentKind = "html_id"
)

// Identifier is a named occurrence checked by the naming calculator.
type Identifier struct {
	Name string    `json:"name"`
	Line int       `json:"line"`
	Kind IdentKind `json:"kind"`
}

// CodeLine is one classified source line with string and character
// literal contents stripped. Comment-only and blank lines are absent.
type CodeLine struct {
	Num  int
	Text string
}

// TokenStream is the normalized lexical record of one file. It is
// owned by the worker that produced it and discarded once metrics
// are computed.
type TokenStream struct {
	Path     string
	Language profile.Language

	TotalLines   int
	CodeLines    int
	CommentLines int
	DocLines     int
	BlankLines   int

	Functions    []Function
	Declarations []Declaration
	Identifiers  []Identifier
	MaxNesting   int

	// Code holds the stripped code lines used for duplication
	// fingerprinting.
	Code []CodeLine
}
