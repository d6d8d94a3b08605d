// 18 Oct 2026

// Package aln holds a multiple sequence alignment and the markers that
// annotate its columns. Filtering columns gives a new alignment, with
// every marker trimmed to match.
package aln

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"bitbucket.org/nigevogen/bseq/pkg/marker"
	"bitbucket.org/nigevogen/bseq/pkg/seq"
)

var (
	ErrDupName   = errors.New("sequence name already in alignment")
	ErrDupMarker = errors.New("marker with the same name already exists")
	ErrNoMarker  = errors.New("no such marker")
	ErrLength    = errors.New("length does not match alignment")
	ErrType      = errors.New("sequence type does not match alignment")
)

// record is what we keep of a sequence, apart from the sequence itself.
type record struct {
	name string
	desc string
}

// Alignment is a set of sequences of equal length. The rows are stored
// as byte slices, so a codon alignment of ten codons has rows of
// thirty bytes.
type Alignment struct {
	Name    string
	Desc    string
	atype   seq.Type
	records []record
	lookup  map[string]int
	rows    [][]byte
	markers map[string]*marker.Marker
}

// New makes an empty alignment. If atype is seq.Unchecked, the first
// sequence added decides the type.
func New(name string, atype seq.Type, desc string) *Alignment {
	return &Alignment{
		Name:    name,
		Desc:    desc,
		atype:   atype,
		lookup:  make(map[string]int),
		markers: make(map[string]*marker.Marker),
	}
}

// FromSeqs makes an alignment from sequences, usually just read from a
// fasta file.
func FromSeqs(name string, seqs []seq.Seq) (*Alignment, error) {
	a := New(name, seq.Unchecked, "")
	for _, s := range seqs {
		if err := a.AddSeq(s); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Type is nucleotide, protein or codon.
func (a *Alignment) Type() seq.Type { return a.atype }

// width is the number of bytes in a row.
func (a *Alignment) width() int {
	if len(a.rows) == 0 {
		return 0
	}
	return len(a.rows[0])
}

// unit is the number of bytes in one column.
func (a *Alignment) unit() int {
	if a.atype == seq.Codon {
		return 3
	}
	return 1
}

// Len is the number of columns. For a codon alignment, columns are codons.
func (a *Alignment) Len() int { return a.width() / a.unit() }

// NSeq is the number of sequences.
func (a *Alignment) NSeq() int { return len(a.rows) }

// AddSeq appends one aligned sequence. Names must be unique, types
// must agree and every sequence must be as long as the first. If markers
// were attached before any sequence, the first must be as long as them.
func (a *Alignment) AddSeq(s seq.Seq) error {
	if _, ok := a.lookup[s.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDupName, s.Name())
	}
	atype := a.atype
	if atype == seq.Unchecked {
		atype = s.Type()
	}
	if s.Type() != atype {
		return fmt.Errorf("%w: %q is %v, alignment is %v", ErrType, s.Name(), s.Type(), atype)
	}
	if len(a.rows) > 0 && len(s.Bytes()) != a.width() {
		return fmt.Errorf("%w: %q has %d characters, alignment %d",
			ErrLength, s.Name(), len(s.Bytes()), a.width())
	}
	if len(a.rows) == 0 {
		for _, name := range a.MarkerNames() {
			if m := a.markers[name]; m.Len() != len(s.Bytes()) {
				return fmt.Errorf("%w: %q has %d characters, marker %q %d",
					ErrLength, s.Name(), len(s.Bytes()), name, m.Len())
			}
		}
	}
	a.atype = atype
	a.lookup[s.Name()] = len(a.records)
	a.records = append(a.records, record{name: s.Name(), desc: s.Desc()})
	a.rows = append(a.rows, append([]byte(nil), s.Bytes()...))
	return nil
}

// Add is AddSeq for a plain string.
func (a *Alignment) Add(name, s string, stype seq.Type, desc string) error {
	return a.AddSeq(seq.New(name, []byte(s), stype, desc))
}

// AddMarkers attaches markers, which must be as long as a row. It
// returns how many were added before any error.
func (a *Alignment) AddMarkers(ms ...*marker.Marker) (int, error) {
	for i, m := range ms {
		if _, ok := a.markers[m.Name()]; ok {
			return i, fmt.Errorf("%w: %q", ErrDupMarker, m.Name())
		}
		if len(a.rows) > 0 && m.Len() != a.width() {
			return i, fmt.Errorf("%w: marker %q has length %d, alignment %d",
				ErrLength, m.Name(), m.Len(), a.width())
		}
		a.markers[m.Name()] = m
	}
	return len(ms), nil
}

// Marker returns a marker by name.
func (a *Alignment) Marker(name string) (*marker.Marker, bool) {
	m, ok := a.markers[name]
	return m, ok
}

// MarkerNames gives the names of attached markers, sorted.
func (a *Alignment) MarkerNames() []string {
	names := make([]string, 0, len(a.markers))
	for n := range a.markers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Row returns the sequence with the given name.
func (a *Alignment) Row(name string) (seq.Seq, bool) {
	i, ok := a.lookup[name]
	if !ok {
		return seq.Seq{}, false
	}
	return a.seqAt(i), true
}

func (a *Alignment) seqAt(i int) seq.Seq {
	r := a.records[i]
	return seq.New(r.name, a.rows[i], a.atype, r.desc)
}

// Seqs returns copies of all the sequences, in order.
func (a *Alignment) Seqs() []seq.Seq {
	seqs := make([]seq.Seq, len(a.rows))
	for i := range a.rows {
		seqs[i] = a.seqAt(i)
	}
	return seqs
}

// Column returns column i, one entry per sequence. For codon alignments
// each entry is a codon.
func (a *Alignment) Column(i int) ([]string, error) {
	if i < 0 || i >= a.Len() {
		return nil, fmt.Errorf("column %d out of range for length %d", i, a.Len())
	}
	u := a.unit()
	col := make([]string, len(a.rows))
	for j, r := range a.rows {
		col[j] = string(r[i*u : (i+1)*u])
	}
	return col, nil
}

// clone copies everything but the rows and markers.
func (a *Alignment) clone() *Alignment {
	b := New(a.Name, a.atype, a.Desc)
	return b
}

// FilterSites removes the columns where any of the named markers has
// excludeChar. It returns a new alignment. Every marker attached to
// the alignment, named or not, is trimmed the same way.
// Coordinates are marker positions, which are bytes of a row.
func (a *Alignment) FilterSites(excludeChar byte, markerNames ...string) (*Alignment, error) {
	return a.RemoveSites([]byte{excludeChar}, markerNames...)
}

// RemoveSites is FilterSites for several characters. A column goes if
// any named marker has any of chars there.
func (a *Alignment) RemoveSites(chars []byte, markerNames ...string) (*Alignment, error) {
	keep, err := a.sites(false, chars, markerNames)
	if err != nil {
		return nil, err
	}
	return a.selectCols(keep)
}

// KeepSites keeps only the columns where every named marker has one of
// chars.
func (a *Alignment) KeepSites(chars []byte, markerNames ...string) (*Alignment, error) {
	keep, err := a.sites(true, chars, markerNames)
	if err != nil {
		return nil, err
	}
	return a.selectCols(keep)
}

// sites gives the byte positions surviving every named marker. Without
// inverse, a column survives a marker if the marker has none of chars
// there. With inverse, it survives if the marker has one of chars.
func (a *Alignment) sites(inverse bool, chars []byte, markerNames []string) ([]int, error) {
	n := make([]int, a.width())
	for _, name := range markerNames {
		m, err := a.usable(name)
		if err != nil {
			return nil, err
		}
		hit := make([]bool, len(n))
		for _, c := range chars {
			for _, p := range m.Coords(c, false) {
				hit[p] = true
			}
		}
		for i, h := range hit {
			if h == inverse {
				n[i]++
			}
		}
	}
	coords := []int{}
	for i, k := range n {
		if k == len(markerNames) {
			coords = append(coords, i)
		}
	}
	return coords, nil
}

// usable finds a marker and checks it still fits the rows.
func (a *Alignment) usable(name string) (*marker.Marker, error) {
	m, ok := a.markers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMarker, name)
	}
	if m.Len() != a.width() {
		return nil, fmt.Errorf("%w: marker %q has length %d, alignment %d",
			ErrLength, name, m.Len(), a.width())
	}
	return m, nil
}

// MaskSites replaces the symbols in columns where any named marker has
// one of chars with maskChar. Markers are unchanged.
func (a *Alignment) MaskSites(maskChar byte, chars []byte, markerNames ...string) (*Alignment, error) {
	b := a.FilterSeqs(a.names()...)
	for _, name := range markerNames {
		m, err := a.usable(name)
		if err != nil {
			return nil, err
		}
		for i, r := range b.rows {
			masked, err := m.Mask(string(r), maskChar, chars...)
			if err != nil {
				return nil, err
			}
			b.rows[i] = []byte(masked)
		}
	}
	return b, nil
}

func (a *Alignment) names() []string {
	names := make([]string, len(a.records))
	for i, r := range a.records {
		names[i] = r.name
	}
	return names
}

// UseAllFilters is FilterSites with every attached marker.
func (a *Alignment) UseAllFilters(excludeChar byte) (*Alignment, error) {
	return a.FilterSites(excludeChar, a.MarkerNames()...)
}

// selectCols builds the new alignment from the byte positions in coords.
func (a *Alignment) selectCols(coords []int) (*Alignment, error) {
	b := a.clone()
	b.records = append(b.records, a.records...)
	for n, i := range a.lookup {
		b.lookup[n] = i
	}
	for _, r := range a.rows {
		nr := make([]byte, len(coords))
		for j, p := range coords {
			nr[j] = r[p]
		}
		b.rows = append(b.rows, nr)
	}
	for n, m := range a.markers {
		nm, err := m.Select(coords)
		if err != nil {
			return nil, err
		}
		b.markers[n] = nm
	}
	return b, nil
}

// FilterSeqs returns a new alignment with only the named sequences, in
// the order asked for. Unknown names are skipped. Columns and markers
// are unchanged.
func (a *Alignment) FilterSeqs(names ...string) *Alignment {
	b := a.clone()
	for _, n := range names {
		i, ok := a.lookup[n]
		if !ok {
			continue
		}
		if _, dup := b.lookup[n]; dup {
			continue
		}
		b.lookup[n] = len(b.records)
		b.records = append(b.records, a.records[i])
		b.rows = append(b.rows, append([]byte(nil), a.rows[i]...))
	}
	for n, m := range a.markers {
		b.markers[n] = m
	}
	return b
}

// FastaFormat writes every sequence in fasta format.
func (a *Alignment) FastaFormat(lineWidth int) string {
	var sb strings.Builder
	for i := range a.rows {
		sb.WriteString(a.seqAt(i).FastaFormat(lineWidth))
	}
	return sb.String()
}
