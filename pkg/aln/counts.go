// 6 Apr 2020
// Simple, common calculations over the columns of an alignment.

package aln

import (
	"math"

	"github.com/andrew-torda/matrix"

	"bitbucket.org/nigevogen/bseq/pkg/marker"
	. "bitbucket.org/nigevogen/bseq/pkg/seq/common"
)

const (
	badMap = math.MaxUint8 // marks a symbol as not seen
)

// SymMap says which row of a count matrix belongs to which symbol.
type SymMap struct {
	mapping [256]uint8 // mapping['C'] tells me the row used for C
	Revmap  []byte     // Revmap[2] tells me the character in row 2
}

// Row gives the matrix row for symbol c, or false if c never occurs.
func (sm *SymMap) Row(c byte) (int, bool) {
	if sm.mapping[c] == badMap {
		return 0, false
	}
	return int(sm.mapping[c]), true
}

// mapsyms looks at the symbols(characters, bases, residues) used in the
// alignment and makes a little array for mapping.
func (a *Alignment) mapsyms() *SymMap {
	var used [256]bool
	for _, r := range a.rows {
		for _, c := range r {
			used[c] = true
		}
	}
	sm := new(SymMap)
	for i := range sm.mapping { // Initialise with bad value, to
		sm.mapping[i] = badMap //  trap errors later
	}
	var n uint8
	for i := range used {
		if used[i] {
			sm.mapping[i] = n
			sm.Revmap = append(sm.Revmap, byte(i))
			n++
		}
	}
	return sm
}

// Counts tallies how many of each symbol appear at each byte position
// of the alignment. counts.Mat looks like [number_of_symbols][row_length].
// We store it as a float32, since it will usually be normalised later.
func (a *Alignment) Counts() (*matrix.FMatrix2d, *SymMap) {
	sm := a.mapsyms()
	counts := matrix.NewFMatrix2d(len(sm.Revmap), a.width())
	for _, r := range a.rows {
		for i, c := range r {
			counts.Mat[sm.mapping[c]][i]++
		}
	}
	return counts, sm
}

// GapMarker marks every column holding at least one gap as gapped.
// For codon alignments, a codon column is gapped if any of its three
// positions is, and all three positions get the same mark.
func (a *Alignment) GapMarker(vopts ...marker.VariantOption) (*marker.Gap, error) {
	w := a.width()
	gapped := make([]byte, w)
	for i := range gapped {
		gapped[i] = 'a'
	}
	counts, sm := a.Counts()
	if row, ok := sm.Row(GapChar); ok {
		u := a.unit()
		for i := 0; i < w; i++ {
			if counts.Mat[row][i] > 0 {
				for j := i - i%u; j < i-i%u+u && j < w; j++ {
					gapped[j] = GapChar
				}
			}
		}
	}
	return marker.GapFromSeq(gapped, GapChar, vopts...)
}
