// Package dupindex provides the shared fingerprint index used for
// cross-file duplicate detection. Fragments are normalized function
// bodies; the index maps fingerprints to every occurrence seen during
// a run. It is the only mutable state shared between workers.
package dupindex

import "sync"

// Occurrence is one location of a fingerprinted fragment. The content
// digest rules out 64-bit fingerprint collisions when occurrences are
// compared.
type Occurrence struct {
	File      string   `json:"file"`
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	Lines     int      `json:"lines"`
	Digest    [32]byte `json:"-"`
}

// Index is an append-only concurrent fingerprint table. Insertion
// order across files is irrelevant; only membership matters.
type Index struct {
	mu          sync.RWMutex
	occurrences map[uint64][]Occurrence
}

// New creates an empty index.
func New() *Index {
	return &Index{occurrences: make(map[uint64][]Occurrence)}
}

// InsertAll records every fragment of one file in a single critical
// section.
func (ix *Index) InsertAll(frags []Fragment) {
	if len(frags) == 0 {
		return
	}
	ix.mu.Lock()
	for _, f := range frags {
		ix.occurrences[f.Fingerprint] = append(ix.occurrences[f.Fingerprint], Occurrence{
			File:      f.File,
			StartLine: f.StartLine,
			EndLine:   f.EndLine,
			Lines:     f.EndLine - f.StartLine + 1,
			Digest:    f.Digest,
		})
	}
	ix.mu.Unlock()
}

// Occurrences returns a copy of all recorded locations for a
// fingerprint.
func (ix *Index) Occurrences(fp uint64) []Occurrence {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	occs := ix.occurrences[fp]
	if len(occs) == 0 {
		return nil
	}
	out := make([]Occurrence, len(occs))
	copy(out, occs)
	return out
}

// Duplicated reports whether a fragment's content occurs anywhere
// beyond its own span (another file, or elsewhere in the same file).
// Occurrences under the same fingerprint whose digest differs are hash
// collisions, not clones.
func (ix *Index) Duplicated(f Fragment) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	for _, occ := range ix.occurrences[f.Fingerprint] {
		if occ.Digest == f.Digest && (occ.File != f.File || occ.StartLine != f.StartLine) {
			return true
		}
	}
	return false
}

// Partners returns the digest-verified occurrences of a fragment's
// content excluding its own span.
func (ix *Index) Partners(f Fragment) []Occurrence {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []Occurrence
	for _, occ := range ix.occurrences[f.Fingerprint] {
		if occ.Digest == f.Digest && (occ.File != f.File || occ.StartLine != f.StartLine) {
			out = append(out, occ)
		}
	}
	return out
}

// Size returns the number of distinct fingerprints.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.occurrences)
}
