package dupindex

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/messdev/mess/pkg/profile"
	"github.com/messdev/mess/pkg/scanner"
)

// cloneBody builds a Go source file with one function large enough to
// clear the fragment thresholds. Identifier names vary per call so the
// bodies are Type-2 clones of each other.
func cloneBody(fn, a, b string) string {
	return fmt.Sprintf(`package main

func %s(%s int, %s int) int {
	if %s > %s {
		%s = %s + %s
		%s = %s - %s
	}
	for i := 0; i < 10; i++ {
		%s = %s + i
	}
	return %s + %s
}
`, fn, a, b, a, b, a, a, b, b, b, a, a, a, a, b)
}

func scanFixture(t *testing.T, path, src string) *scanner.TokenStream {
	t.Helper()
	ts := scanner.Scan(path, []byte(src), profile.ByLanguage(profile.LangGo))
	require.NotNil(t, ts)
	return ts
}

func TestExtractFragments(t *testing.T) {
	ts := scanFixture(t, "a.go", cloneBody("alpha", "x", "y"))
	frags := ExtractFragments(ts)
	require.Len(t, frags, 1)

	f := frags[0]
	assert.Equal(t, "a.go", f.File)
	assert.GreaterOrEqual(t, f.EndLine-f.StartLine+1, MinFragmentLines)
	assert.GreaterOrEqual(t, f.Tokens, MinFragmentTokens)
	assert.NotZero(t, f.Fingerprint)
}

func TestRenamedClonesShareFingerprint(t *testing.T) {
	a := ExtractFragments(scanFixture(t, "a.go", cloneBody("alpha", "x", "y")))
	b := ExtractFragments(scanFixture(t, "b.go", cloneBody("beta", "count", "limit")))
	require.Len(t, a, 1)
	require.Len(t, b, 1)

	assert.Equal(t, a[0].Fingerprint, b[0].Fingerprint,
		"identifier renames must not change the fingerprint")
	assert.Equal(t, a[0].Digest, b[0].Digest)
}

func TestDifferentStructureDiffers(t *testing.T) {
	a := ExtractFragments(scanFixture(t, "a.go", cloneBody("alpha", "x", "y")))

	src := `package main

func other(x int, y int) int {
	for x > 0 {
		x = x - 1
		y = y + 2
	}
	if y > 100 {
		y = y / 2
	}
	return x * y
}
`
	b := ExtractFragments(scanFixture(t, "b.go", src))
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.NotEqual(t, a[0].Fingerprint, b[0].Fingerprint)
}

func TestSmallFunctionsIgnored(t *testing.T) {
	src := `package main

func tiny(x int) int {
	return x + 1
}
`
	frags := ExtractFragments(scanFixture(t, "a.go", src))
	assert.Empty(t, frags)
}

func TestIndexDuplicatedAndPartners(t *testing.T) {
	ix := New()
	digest := [32]byte{1}
	fragA := Fragment{File: "a.go", StartLine: 3, EndLine: 14, Fingerprint: 42, Digest: digest}
	fragB := Fragment{File: "b.go", StartLine: 7, EndLine: 18, Fingerprint: 42, Digest: digest}

	ix.InsertAll([]Fragment{fragA})

	// Sole occurrence is not a duplicate.
	assert.False(t, ix.Duplicated(fragA))

	ix.InsertAll([]Fragment{fragB})
	assert.True(t, ix.Duplicated(fragA))
	assert.True(t, ix.Duplicated(fragB))

	partners := ix.Partners(fragA)
	require.Len(t, partners, 1)
	assert.Equal(t, "b.go", partners[0].File)

	assert.False(t, ix.Duplicated(Fragment{File: "a.go", StartLine: 3, Fingerprint: 99, Digest: digest}))
	assert.Nil(t, ix.Occurrences(99))
}

func TestFingerprintCollisionIsNotAClone(t *testing.T) {
	ix := New()
	fragA := Fragment{File: "a.go", StartLine: 3, EndLine: 14, Fingerprint: 42, Digest: [32]byte{1}}
	fragB := Fragment{File: "b.go", StartLine: 7, EndLine: 18, Fingerprint: 42, Digest: [32]byte{2}}
	ix.InsertAll([]Fragment{fragA, fragB})

	// Same 64-bit fingerprint, different content: the digest check
	// keeps either side from pairing with the other.
	assert.False(t, ix.Duplicated(fragA))
	assert.False(t, ix.Duplicated(fragB))
	assert.Empty(t, ix.Partners(fragA))
	assert.Empty(t, ix.Partners(fragB))

	// A genuine clone of fragA still pairs up.
	fragC := Fragment{File: "c.go", StartLine: 1, EndLine: 12, Fingerprint: 42, Digest: [32]byte{1}}
	ix.InsertAll([]Fragment{fragC})
	partners := ix.Partners(fragA)
	require.Len(t, partners, 1)
	assert.Equal(t, "c.go", partners[0].File)
}

func TestIndexConcurrentInsert(t *testing.T) {
	ix := New()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				frag := Fragment{
					File:        fmt.Sprintf("file%d.go", w),
					StartLine:   i + 1,
					EndLine:     i + 10,
					Fingerprint: uint64(i % 10),
				}
				ix.InsertAll([]Fragment{frag})
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 10, ix.Size())
	for fp := uint64(0); fp < 10; fp++ {
		assert.Len(t, ix.Occurrences(fp), 80)
	}
}
