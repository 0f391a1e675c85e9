package metric

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/messdev/mess/pkg/dupindex"
	"github.com/messdev/mess/pkg/profile"
	"github.com/messdev/mess/pkg/scanner"
)

func TestComplexityNoFunctions(t *testing.T) {
	res := CalcComplexity(&scanner.TokenStream{Path: "a.go", CodeLines: 10})
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Findings)
}

func TestComplexityAverage(t *testing.T) {
	ts := &scanner.TokenStream{
		Path: "a.go",
		Functions: []scanner.Function{
			{Name: "simple", Complexity: 1},
			{Name: "branchy", Complexity: 3},
		},
	}
	res := CalcComplexity(ts)
	// avg 2 -> 40 + 20
	assert.Equal(t, 60.0, res.Score)
	assert.Empty(t, res.Findings)
}

func TestComplexityFindings(t *testing.T) {
	ts := &scanner.TokenStream{
		Path: "a.go",
		Functions: []scanner.Function{
			{Name: "warn", StartLine: 3, Complexity: 12},
			{Name: "bad", StartLine: 40, Complexity: 22},
		},
	}
	res := CalcComplexity(ts)
	assert.Equal(t, 100.0, res.Score)
	require.Len(t, res.Findings, 2)
	assert.Equal(t, SeverityMedium, res.Findings[0].Severity)
	assert.Equal(t, SeverityHigh, res.Findings[1].Severity)
	assert.Contains(t, res.Findings[1].Message, "'bad'")
}

func TestStateGlobalDensity(t *testing.T) {
	ts := &scanner.TokenStream{
		Path:      "a.go",
		CodeLines: 100,
		Declarations: []scanner.Declaration{
			{Name: "cache", Line: 3, Keyword: "var"},
			{Name: "registry", Line: 4, Keyword: "var"},
		},
	}
	res := CalcState(ts)
	// density 2 per 100 lines -> 30
	assert.Equal(t, 30.0, res.Score)
	assert.Len(t, res.Findings, 2)
}

func TestStateLongFunctions(t *testing.T) {
	ts := &scanner.TokenStream{
		Path:      "a.go",
		CodeLines: 300,
		Functions: []scanner.Function{
			{Name: "monster", StartLine: 1, EndLine: 150},
			{Name: "greedy", StartLine: 151, EndLine: 160, Params: 9},
		},
	}
	res := CalcState(ts)
	// 10 for the 150-line function + 5 for 9 params
	assert.Equal(t, 15.0, res.Score)

	sevs := map[Severity]int{}
	for _, f := range res.Findings {
		sevs[f.Severity]++
	}
	assert.Equal(t, 2, sevs[SeverityHigh])
}

func TestCommentsZeroCodeLines(t *testing.T) {
	res := CalcComments(&scanner.TokenStream{Path: "a.go", CommentLines: 12})
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Findings)
}

func TestCommentsRatio(t *testing.T) {
	ts := &scanner.TokenStream{Path: "a.go", CodeLines: 100, CommentLines: 10}
	res := CalcComments(ts)
	// ratio 0.1 -> 90 - 50
	assert.Equal(t, 40.0, res.Score)
	assert.Empty(t, res.Findings)
}

func TestCommentsSparse(t *testing.T) {
	ts := &scanner.TokenStream{Path: "a.go", CodeLines: 100}
	res := CalcComments(ts)
	assert.Equal(t, 90.0, res.Score)
	require.NotEmpty(t, res.Findings)
	assert.Equal(t, SeverityMedium, res.Findings[0].Severity)
}

func TestCommentsUncommentedLongFunction(t *testing.T) {
	ts := &scanner.TokenStream{
		Path:         "a.go",
		CodeLines:    100,
		CommentLines: 20,
		Functions: []scanner.Function{
			{Name: "silent", StartLine: 5, EndLine: 45},
		},
	}
	res := CalcComments(ts)
	require.Len(t, res.Findings, 1)
	assert.Contains(t, res.Findings[0].Message, "'silent'")
}

// dupFixture builds a Go file whose single function clears the
// duplication fragment thresholds.
func dupFixture(fn, a, b string) string {
	return fmt.Sprintf(`package main

func %[1]s(%[2]s int, %[3]s int) int {
	if %[2]s > %[3]s {
		%[2]s = %[2]s + %[3]s
		%[3]s = %[3]s - %[2]s
	}
	for i := 0; i < 10; i++ {
		%[2]s = %[2]s + i
	}
	return %[2]s + %[3]s
}
`, fn, a, b)
}

func TestDuplicationCrossFile(t *testing.T) {
	p := profile.ByLanguage(profile.LangGo)
	a := scanner.Scan("a.go", []byte(dupFixture("alpha", "x", "y")), p)
	b := scanner.Scan("b.go", []byte(dupFixture("beta", "count", "limit")), p)

	ix := dupindex.New()
	fragsA := dupindex.ExtractFragments(a)
	fragsB := dupindex.ExtractFragments(b)
	ix.InsertAll(fragsA)
	ix.InsertAll(fragsB)

	resA := CalcDuplication(a, fragsA, ix)
	resB := CalcDuplication(b, fragsB, ix)

	// Both sides of the clone pair are flagged, regardless of order.
	assert.Greater(t, resA.Score, 0.0)
	assert.Greater(t, resB.Score, 0.0)
	require.NotEmpty(t, resA.Findings)
	require.NotEmpty(t, resB.Findings)
	assert.Equal(t, SeverityHigh, resA.Findings[0].Severity)
	assert.Contains(t, resA.Findings[0].Message, "b.go")
}

func TestDuplicationUniqueFunctionClean(t *testing.T) {
	p := profile.ByLanguage(profile.LangGo)
	a := scanner.Scan("a.go", []byte(dupFixture("alpha", "x", "y")), p)

	ix := dupindex.New()
	frags := dupindex.ExtractFragments(a)
	ix.InsertAll(frags)

	res := CalcDuplication(a, frags, ix)
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Findings)
}

func TestDuplicationFingerprintCollisionIgnored(t *testing.T) {
	p := profile.ByLanguage(profile.LangGo)
	a := scanner.Scan("a.go", []byte(dupFixture("alpha", "x", "y")), p)

	ix := dupindex.New()
	frags := dupindex.ExtractFragments(a)
	require.Len(t, frags, 1)
	ix.InsertAll(frags)

	// Different content that happens to land on the same fingerprint
	// must not be reported as a clone.
	collision := frags[0]
	collision.File = "b.go"
	collision.Digest = [32]byte{0xde, 0xad}
	ix.InsertAll([]dupindex.Fragment{collision})

	res := CalcDuplication(a, frags, ix)
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Findings)
}

func TestDuplicationCopyFamily(t *testing.T) {
	ts := &scanner.TokenStream{
		Path:      "a.go",
		CodeLines: 50,
		Functions: []scanner.Function{
			{Name: "process", StartLine: 1, EndLine: 4},
			{Name: "process_v2", StartLine: 6, EndLine: 9},
			{Name: "process_backup", StartLine: 11, EndLine: 14},
		},
	}
	res := CalcDuplication(ts, nil, dupindex.New())
	assert.Equal(t, 10.0, res.Score)
	require.Len(t, res.Findings, 1)
	assert.Contains(t, res.Findings[0].Message, "'process'")
}

func TestStructureBeyondThreshold(t *testing.T) {
	p := profile.ByLanguage(profile.LangGo)
	ts := &scanner.TokenStream{Path: "a.go", CodeLines: 10, MaxNesting: 6}
	res := CalcStructure(ts, p)
	// 40 + (6-4)*15
	assert.Equal(t, 70.0, res.Score)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, SeverityMedium, res.Findings[0].Severity)
}

func TestStructureWithinThreshold(t *testing.T) {
	p := profile.ByLanguage(profile.LangGo)
	ts := &scanner.TokenStream{Path: "a.go", CodeLines: 10, MaxNesting: 2}
	res := CalcStructure(ts, p)
	assert.InDelta(t, 17.5, res.Score, 0.001)
	assert.Empty(t, res.Findings)
}

func TestStructureIndentThreshold(t *testing.T) {
	p := profile.ByLanguage(profile.LangPython)
	ts := &scanner.TokenStream{Path: "a.py", CodeLines: 10, MaxNesting: 7}
	res := CalcStructure(ts, p)
	// threshold 3, over by 4 -> high severity
	assert.Equal(t, 100.0, res.Score)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, SeverityHigh, res.Findings[0].Severity)
}

func TestErrorHandlingNoRiskyFunctions(t *testing.T) {
	p := profile.ByLanguage(profile.LangGo)
	ts := &scanner.TokenStream{
		Path:      "a.go",
		Functions: []scanner.Function{{Name: "pure", Complexity: 1}},
	}
	res := CalcErrorHandling(ts, p)
	assert.Equal(t, 0.0, res.Score)
}

func TestErrorHandlingMissing(t *testing.T) {
	p := profile.ByLanguage(profile.LangGo)
	ts := &scanner.TokenStream{
		Path: "a.go",
		Functions: []scanner.Function{
			{Name: "reckless", StartLine: 3, RiskHits: 3},
		},
	}
	res := CalcErrorHandling(ts, p)
	// missingRatio 1 -> 40 + (1-0.7)*60 = 58
	assert.InDelta(t, 58.0, res.Score, 0.001)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, SeverityHigh, res.Findings[0].Severity)
}

func TestErrorHandlingGuarded(t *testing.T) {
	p := profile.ByLanguage(profile.LangGo)
	ts := &scanner.TokenStream{
		Path: "a.go",
		Functions: []scanner.Function{
			{Name: "careful", RiskHits: 2, HandlingHits: 2},
		},
	}
	res := CalcErrorHandling(ts, p)
	// missingRatio 0, only the language floor remains
	assert.InDelta(t, 18.0, res.Score, 0.001)
	assert.Empty(t, res.Findings)
}

func TestNamingClean(t *testing.T) {
	p := profile.ByLanguage(profile.LangGo)
	ts := &scanner.TokenStream{
		Path: "a.go",
		Identifiers: []scanner.Identifier{
			{Name: "parseConfig", Kind: scanner.IdentFunction},
			{Name: "i", Kind: scanner.IdentVariable},
			{Name: "MAX_RETRIES", Kind: scanner.IdentVariable},
			{Name: "HttpServer", Kind: scanner.IdentClass},
		},
	}
	res := CalcNaming(ts, p)
	assert.Equal(t, 0.0, res.Score)
	assert.Empty(t, res.Findings)
}

func TestNamingViolations(t *testing.T) {
	p := profile.ByLanguage(profile.LangGo)
	ts := &scanner.TokenStream{
		Path: "a.go",
		Identifiers: []scanner.Identifier{
			{Name: "tmp", Line: 3, Kind: scanner.IdentVariable},
			{Name: "q", Line: 4, Kind: scanner.IdentVariable},
			{Name: "parse_config", Line: 5, Kind: scanner.IdentFunction},
			{Name: "goodName", Line: 6, Kind: scanner.IdentVariable},
		},
	}
	res := CalcNaming(ts, p)
	// 3 of 4 bad -> 40 + 750, clamped
	assert.Equal(t, 100.0, res.Score)
	require.Len(t, res.Findings, 3)
	assert.Equal(t, SeverityHigh, res.Findings[0].Severity)
}

func TestNamingSnakeConvention(t *testing.T) {
	p := profile.ByLanguage(profile.LangPython)
	ts := &scanner.TokenStream{
		Path: "a.py",
		Identifiers: []scanner.Identifier{
			{Name: "parseConfig", Line: 2, Kind: scanner.IdentFunction},
			{Name: "parse_config", Line: 3, Kind: scanner.IdentFunction},
		},
	}
	res := CalcNaming(ts, p)
	require.Len(t, res.Findings, 1)
	assert.Contains(t, res.Findings[0].Message, "snake_case")
}

func TestAllScoresWithinBounds(t *testing.T) {
	p := profile.ByLanguage(profile.LangGo)
	ts := &scanner.TokenStream{
		Path:      "a.go",
		CodeLines: 5,
		Functions: []scanner.Function{
			{Name: "x1", StartLine: 1, EndLine: 200, Complexity: 90, Params: 14, RiskHits: 9},
		},
		Declarations: []scanner.Declaration{
			{Name: "g1", Line: 1, Keyword: "var"}, {Name: "g2", Line: 2, Keyword: "var"},
			{Name: "g3", Line: 3, Keyword: "var"}, {Name: "g4", Line: 4, Keyword: "var"},
		},
		Identifiers: []scanner.Identifier{{Name: "tmp", Line: 1, Kind: scanner.IdentVariable}},
		MaxNesting:  30,
	}

	results := []Result{
		CalcComplexity(ts),
		CalcState(ts),
		CalcComments(ts),
		CalcDuplication(ts, nil, dupindex.New()),
		CalcStructure(ts, p),
		CalcErrorHandling(ts, p),
		CalcNaming(ts, p),
	}
	for _, res := range results {
		assert.GreaterOrEqual(t, res.Score, 0.0, res.Metric)
		assert.LessOrEqual(t, res.Score, 100.0, res.Metric)
	}
}
