// Package profile defines the static lexical description of every
// supported language and the extension-based detection table.
package profile

import (
	"path/filepath"
	"strings"
)

// Language identifies a supported source language or markup dialect.
type Language string

const (
	LangRust       Language = "rust"
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangJava       Language = "java"
	LangCPP        Language = "cpp"
	LangC          Language = "c"
	LangCSharp     Language = "csharp"
	LangPHP        Language = "php"
	LangHTML       Language = "html"
	LangCSS        Language = "css"
	LangUnknown    Language = "unknown"
)

// String returns the string representation.
func (l Language) String() string {
	return string(l)
}

// BlockStyle describes how a language delimits blocks.
type BlockStyle int

const (
	BlockBrace BlockStyle = iota
	BlockIndent
	BlockMarkup
)

// NamingStyle is the expected case convention for identifiers.
type NamingStyle int

const (
	NamingCamel NamingStyle = iota // camelCase or PascalCase accepted
	NamingSnake                    // snake_case
	NamingKebab                    // kebab-case (CSS classes)
)

// BlockComment is a block comment delimiter pair.
type BlockComment struct {
	Open  string
	Close string
}

// Profile holds the lexical facts for one language. Profiles are
// immutable and shared read-only across all workers.
type Profile struct {
	Language   Language
	Extensions []string
	BlockStyle BlockStyle

	LineComments  []string
	BlockComments []BlockComment
	DocComments   []string // line prefixes that count as documentation

	// ControlKeywords are decision-point keywords counted toward
	// cyclomatic complexity.
	ControlKeywords []string

	// GlobalDeclPrefixes match mutable declarations at top level
	// (nesting depth zero). StaticDeclMarkers match static mutable
	// state at any depth.
	GlobalDeclPrefixes []string
	StaticDeclMarkers  []string

	// RiskPatterns are substrings marking operations likely to fail
	// (I/O, parsing, external calls). HandlingMarkers are the
	// language's error-handling idioms.
	RiskPatterns    []string
	HandlingMarkers []string

	// HandlingQuality is the baseline quality of the language's
	// error-handling idiom when handling is present (0..1).
	HandlingQuality float64

	Naming NamingStyle

	// StringQuotes lists quote characters opening string literals.
	// HasCharLiteral enables single-quote character literal scanning.
	StringQuotes   []byte
	HasCharLiteral bool
	HasRawBacktick bool // backtick raw strings (Go, JS templates)
}

// cControl is the decision-point keyword set shared by the C family.
// "else if" is covered by "if"; counting both would double-count.
var cControl = []string{"if", "for", "while", "switch", "case", "catch", "do"}

var registry = []*Profile{
	{
		Language:           LangRust,
		Extensions:         []string{".rs"},
		BlockStyle:         BlockBrace,
		LineComments:       []string{"//"},
		BlockComments:      []BlockComment{{"/*", "*/"}},
		DocComments:        []string{"///", "//!"},
		ControlKeywords:    []string{"if", "for", "while", "loop", "match"},
		GlobalDeclPrefixes: []string{"static mut "},
		StaticDeclMarkers:  []string{"static mut "},
		RiskPatterns:       []string{"unwrap(", "expect(", "read", "write", "open(", "parse"},
		HandlingMarkers:    []string{"?", "Result<", "match ", "if let Err", ".map_err"},
		HandlingQuality:    0.8,
		Naming:             NamingSnake,
		StringQuotes:       []byte{'"'},
		HasCharLiteral:     true,
	},
	{
		Language:           LangGo,
		Extensions:         []string{".go"},
		BlockStyle:         BlockBrace,
		LineComments:       []string{"//"},
		BlockComments:      []BlockComment{{"/*", "*/"}},
		DocComments:        nil, // doc comments share the // marker, counted as plain comments
		ControlKeywords:    []string{"if", "for", "switch", "case", "select"},
		GlobalDeclPrefixes: []string{"var "},
		RiskPatterns:       []string{"os.Open", "os.Read", "ioutil.", "io.Read", "http.", "json.Unmarshal", "strconv."},
		HandlingMarkers:    []string{"if err != nil", "errors.", "fmt.Errorf"},
		HandlingQuality:    0.7,
		Naming:             NamingCamel,
		StringQuotes:       []byte{'"'},
		HasCharLiteral:     true,
		HasRawBacktick:     true,
	},
	{
		Language:           LangJavaScript,
		Extensions:         []string{".js", ".mjs", ".cjs"},
		BlockStyle:         BlockBrace,
		LineComments:       []string{"//"},
		BlockComments:      []BlockComment{{"/*", "*/"}},
		DocComments:        []string{"/**"},
		ControlKeywords:    cControl,
		GlobalDeclPrefixes: []string{"var ", "let ", "window.", "global."},
		RiskPatterns:       []string{"fetch(", "await ", "JSON.parse", "require(", "readFile", "axios."},
		HandlingMarkers:    []string{"try", "catch", ".catch(", "throw "},
		HandlingQuality:    0.6,
		Naming:             NamingCamel,
		StringQuotes:       []byte{'"', '\''},
		HasRawBacktick:     true,
	},
	{
		Language:           LangTypeScript,
		Extensions:         []string{".ts", ".tsx", ".jsx"},
		BlockStyle:         BlockBrace,
		LineComments:       []string{"//"},
		BlockComments:      []BlockComment{{"/*", "*/"}},
		DocComments:        []string{"/**"},
		ControlKeywords:    cControl,
		GlobalDeclPrefixes: []string{"var ", "let ", "window.", "globalThis."},
		RiskPatterns:       []string{"fetch(", "await ", "JSON.parse", "readFile", "axios."},
		HandlingMarkers:    []string{"try", "catch", ".catch(", "throw "},
		HandlingQuality:    0.6,
		Naming:             NamingCamel,
		StringQuotes:       []byte{'"', '\''},
		HasRawBacktick:     true,
	},
	{
		Language:           LangPython,
		Extensions:         []string{".py", ".pyw"},
		BlockStyle:         BlockIndent,
		LineComments:       []string{"#"},
		BlockComments:      nil, // docstrings handled by the scanner
		DocComments:        []string{`"""`, "'''"},
		ControlKeywords:    []string{"if", "elif", "for", "while", "except", "finally", "with"},
		GlobalDeclPrefixes: []string{"global "},
		StaticDeclMarkers:  []string{"global "},
		RiskPatterns:       []string{"open(", "read", "write", "request", "json.load", "int(", "float("},
		HandlingMarkers:    []string{"try", "except", "raise "},
		HandlingQuality:    0.65,
		Naming:             NamingSnake,
		StringQuotes:       []byte{'"', '\''},
	},
	{
		Language:           LangJava,
		Extensions:         []string{".java"},
		BlockStyle:         BlockBrace,
		LineComments:       []string{"//"},
		BlockComments:      []BlockComment{{"/*", "*/"}},
		DocComments:        []string{"/**"},
		ControlKeywords:    cControl,
		GlobalDeclPrefixes: nil,
		StaticDeclMarkers:  []string{"static "},
		RiskPatterns:       []string{"InputStream", "Reader", "Files.", "parse", "openConnection", ".read(", ".write("},
		HandlingMarkers:    []string{"try", "catch", "throws ", "throw "},
		HandlingQuality:    0.75,
		Naming:             NamingCamel,
		StringQuotes:       []byte{'"'},
		HasCharLiteral:     true,
	},
	{
		Language:           LangCPP,
		Extensions:         []string{".cpp", ".cc", ".cxx", ".hpp", ".h++"},
		BlockStyle:         BlockBrace,
		LineComments:       []string{"//"},
		BlockComments:      []BlockComment{{"/*", "*/"}},
		DocComments:        []string{"///", "/**"},
		ControlKeywords:    cControl,
		GlobalDeclPrefixes: []string{"int ", "long ", "float ", "double ", "char ", "bool ", "auto ", "std::"},
		StaticDeclMarkers:  []string{"static "},
		RiskPatterns:       []string{"new ", "malloc(", "fopen(", "read(", "write(", "stoi(", "stod("},
		HandlingMarkers:    []string{"try", "catch", "throw ", "errno"},
		HandlingQuality:    0.5,
		Naming:             NamingSnake,
		StringQuotes:       []byte{'"'},
		HasCharLiteral:     true,
	},
	{
		Language:           LangC,
		Extensions:         []string{".c", ".h"},
		BlockStyle:         BlockBrace,
		LineComments:       []string{"//"},
		BlockComments:      []BlockComment{{"/*", "*/"}},
		DocComments:        []string{"/**"},
		ControlKeywords:    []string{"if", "for", "while", "switch", "case", "do"},
		GlobalDeclPrefixes: []string{"int ", "long ", "float ", "double ", "char ", "unsigned ", "short "},
		StaticDeclMarkers:  []string{"static "},
		RiskPatterns:       []string{"malloc(", "calloc(", "fopen(", "fread(", "fwrite(", "atoi(", "strtol("},
		HandlingMarkers:    []string{"errno", "perror(", "NULL"},
		HandlingQuality:    0.5,
		Naming:             NamingSnake,
		StringQuotes:       []byte{'"'},
		HasCharLiteral:     true,
	},
	{
		Language:           LangCSharp,
		Extensions:         []string{".cs", ".razor"},
		BlockStyle:         BlockBrace,
		LineComments:       []string{"//"},
		BlockComments:      []BlockComment{{"/*", "*/"}},
		DocComments:        []string{"///"},
		ControlKeywords:    cControl,
		StaticDeclMarkers:  []string{"static "},
		RiskPatterns:       []string{"Stream", "File.", "Parse(", "HttpClient", ".Read(", ".Write("},
		HandlingMarkers:    []string{"try", "catch", "throw ", "finally"},
		HandlingQuality:    0.75,
		Naming:             NamingCamel,
		StringQuotes:       []byte{'"'},
		HasCharLiteral:     true,
	},
	{
		Language:           LangPHP,
		Extensions:         []string{".php", ".php3", ".php4", ".php5", ".php7", ".php8", ".phtml"},
		BlockStyle:         BlockBrace,
		LineComments:       []string{"//", "#"},
		BlockComments:      []BlockComment{{"/*", "*/"}},
		DocComments:        []string{"/**"},
		ControlKeywords:    []string{"if", "elseif", "for", "foreach", "while", "switch", "case", "catch"},
		GlobalDeclPrefixes: []string{"global ", "$GLOBALS"},
		StaticDeclMarkers:  []string{"static $"},
		RiskPatterns:       []string{"fopen(", "file_get_contents(", "curl_", "json_decode(", "mysqli_"},
		HandlingMarkers:    []string{"try", "catch", "throw ", "@"},
		HandlingQuality:    0.55,
		Naming:             NamingCamel,
		StringQuotes:       []byte{'"', '\''},
	},
	{
		Language:      LangHTML,
		Extensions:    []string{".html", ".htm", ".xhtml"},
		BlockStyle:    BlockMarkup,
		LineComments:  nil,
		BlockComments: []BlockComment{{"<!--", "-->"}},
		// Embedded script complexity only.
		ControlKeywords:    []string{"if", "for", "while", "switch"},
		GlobalDeclPrefixes: []string{"var ", "window."},
		RiskPatterns:       []string{"fetch(", "XMLHttpRequest"},
		HandlingMarkers:    []string{"try", "catch"},
		HandlingQuality:    0.5,
		Naming:             NamingKebab,
		// Attribute values carry ids and classes; keep them in the
		// stripped text.
		StringQuotes: nil,
	},
	{
		Language:        LangCSS,
		Extensions:      []string{".css", ".scss", ".sass", ".less"},
		BlockStyle:      BlockMarkup,
		LineComments:    []string{"//"}, // scss/less only, harmless for plain css
		BlockComments:   []BlockComment{{"/*", "*/"}},
		ControlKeywords: nil,
		HandlingQuality: 0.5,
		Naming:          NamingKebab,
		StringQuotes:    []byte{'"', '\''},
	},
}

var byExt = func() map[string]*Profile {
	m := make(map[string]*Profile)
	for _, p := range registry {
		for _, ext := range p.Extensions {
			m[ext] = p
		}
	}
	return m
}()

// Detect returns the profile for a file path, or nil when the
// extension is not supported.
func Detect(path string) *Profile {
	return byExt[strings.ToLower(filepath.Ext(path))]
}

// ByLanguage returns the profile for a language, or nil.
func ByLanguage(lang Language) *Profile {
	for _, p := range registry {
		if p.Language == lang {
			return p
		}
	}
	return nil
}

// All returns every registered profile.
func All() []*Profile {
	out := make([]*Profile, len(registry))
	copy(out, registry)
	return out
}

// IsMarkup reports whether the profile describes a markup dialect
// rather than a programming language.
func (p *Profile) IsMarkup() bool {
	return p.BlockStyle == BlockMarkup
}
