// 20 Dec 2017
// 18 Oct 2026 reworked for nucleotide, protein and codon sequences

// Package seq provides a sequence type for nucleotides, proteins and
// codons, which usually begin their lives in fasta format. It can
// read and write them.
//
// Codon sequences are stored as nucleotides, but lengths and indices
// count codons, so a sequence of 30 bases has length 10.
package seq

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/biogo/biogo/alphabet"

	. "bitbucket.org/nigevogen/bseq/pkg/seq/common"
)

// Type says what kind of sequence we have.
type Type byte

const (
	Unchecked  Type = iota // Has not been looked at yet
	Nucleotide             //
	Protein                //
	Codon                  // Nucleotides, read three at a time
)

func (t Type) String() string {
	switch t {
	case Nucleotide:
		return "nucleotide"
	case Protein:
		return "protein"
	case Codon:
		return "codon"
	}
	return "unchecked"
}

// ParseType goes from "nucleotide", "protein", "codon" to a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "nucleotide", "nucl", "dna", "rna":
		return Nucleotide, nil
	case "protein", "prot":
		return Protein, nil
	case "codon":
		return Codon, nil
	case "", "unchecked":
		return Unchecked, nil
	}
	return Unchecked, fmt.Errorf("%w %q, want nucleotide, protein or codon", ErrType, s)
}

// We only read ascii characters, so anything bigger than this is not
// valid.
const (
	MaxSym uint8 = 127
)

const codonLen = 3

var (
	ErrBadSym   = errors.New("bad symbol")
	ErrType     = errors.New("unknown sequence type")
	ErrNoSeqs   = errors.New("no sequences found")
	ErrEmptySeq = errors.New("zero length sequence")
)

// Seq is a named sequence. The name is the first word of a fasta
// comment line and the description is the rest of it.
type Seq struct {
	name  string
	desc  string
	stype Type
	seq   []byte
}

// New makes a sequence. The byte slice is copied.
func New(name string, s []byte, stype Type, desc string) Seq {
	return Seq{name: name, desc: desc, stype: stype, seq: append([]byte(nil), s...)}
}

// NewNucl makes a nucleotide sequence from a string.
func NewNucl(name, s, desc string) Seq { return New(name, []byte(s), Nucleotide, desc) }

// NewProt makes a protein sequence from a string.
func NewProt(name, s, desc string) Seq { return New(name, []byte(s), Protein, desc) }

// NewCodon makes a codon sequence from a string of nucleotides.
func NewCodon(name, s, desc string) Seq { return New(name, []byte(s), Codon, desc) }

func (s Seq) Name() string { return s.name }
func (s Seq) Desc() string { return s.desc }
func (s Seq) Type() Type   { return s.stype }

// SetDesc replaces the description.
func (s *Seq) SetDesc(desc string) { s.desc = desc }

// Bytes returns the sequence as the original byte slice, always as
// single characters, even for codons.
func (s Seq) Bytes() []byte { return s.seq }

// unit is the number of bytes in one position.
func (s Seq) unit() int {
	if s.stype == Codon {
		return codonLen
	}
	return 1
}

// Len counts positions, so codons for a codon sequence.
func (s Seq) Len() int { return len(s.seq) / s.unit() }

// Empty returns true if there is no sequence.
func (s Seq) Empty() bool { return len(s.seq) == 0 }

// String gives the sequence, with codons separated by a space.
func (s Seq) String() string {
	if s.stype != Codon {
		return string(s.seq)
	}
	return strings.Join(s.codons(), " ")
}

// codons splits the sequence into triplets. A short tail is dropped.
func (s Seq) codons() []string {
	c := make([]string, 0, s.Len())
	for i := 0; i+codonLen <= len(s.seq); i += codonLen {
		c = append(c, string(s.seq[i:i+codonLen]))
	}
	return c
}

// norm turns a negative index into one counted from the end and
// clamps it to [0, n].
func norm(i, n int) int {
	if i < 0 {
		i += n
	}
	switch {
	case i < 0:
		return 0
	case i > n:
		return n
	}
	return i
}

// At returns the position i, one character or one codon.
// Negative i counts back from the end, so -1 is the last position.
func (s Seq) At(i int) (string, error) {
	n := s.Len()
	if i < -n || i >= n {
		return "", fmt.Errorf("index %d out of range for length %d", i, n)
	}
	i = norm(i, n) * s.unit()
	return string(s.seq[i : i+s.unit()]), nil
}

// Slice returns positions [i, j) like a go slice, but negative values
// count from the end and out of range values are clamped.
func (s Seq) Slice(i, j int) string {
	n := s.Len()
	i, j = norm(i, n), norm(j, n)
	if i >= j {
		return ""
	}
	u := s.unit()
	return string(s.seq[i*u : j*u])
}

// Contains says if sub appears anywhere in the sequence.
func (s Seq) Contains(sub string) bool { return bytes.Contains(s.seq, []byte(sub)) }

// Count says how often sub occurs. For codon sequences, only codons in
// frame are counted.
func (s Seq) Count(sub string) int {
	if s.stype != Codon {
		return bytes.Count(s.seq, []byte(sub))
	}
	n := 0
	for _, c := range s.codons() {
		if c == sub {
			n++
		}
	}
	return n
}

// CountAll tallies every character, or every codon.
func (s Seq) CountAll() map[string]int {
	m := make(map[string]int)
	if s.stype == Codon {
		for _, c := range s.codons() {
			m[c]++
		}
		return m
	}
	for _, c := range s.seq {
		m[string(c)]++
	}
	return m
}

// UngappedLen is the number of characters which are not gaps.
func (s Seq) UngappedLen() int {
	return len(s.seq) - bytes.Count(s.seq, []byte{GapChar})
}

// Lower will change a sequence to lower case
// It is much smaller than the library version, since it only knows
// about characters that can occur in biological sequences.
// It also acts in place.
func (s *Seq) Lower() {
	for i, c := range s.seq {
		if 'A' <= c && c <= 'Z' {
			s.seq[i] = c + ('a' - 'A')
		}
	}
}

// trimStr trims a string to n bytes if it is longer
func trimStr(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Upper changes a sequence to upper case, in place.
// It only works with bytes, not runes.
// It can return an error if it encounters a symbol it does
// not like (value higher than 127).
func (s *Seq) Upper() error {
	const diff = 'a' - 'A'
	for i, c := range s.seq {
		if c >= MaxSym {
			return fmt.Errorf("%w \"%c\" at position %d in \"%s\"", ErrBadSym, c, i, trimStr(s.name, 40))
		}
		if 'a' <= c && c <= 'z' {
			s.seq[i] -= diff
		}
	}
	return nil
}

// alphabets are checked in order, a letter is fine if any of them
// likes it.
func (t Type) alphabets() []alphabet.Alphabet {
	switch t {
	case Nucleotide, Codon:
		return []alphabet.Alphabet{alphabet.DNAredundant, alphabet.RNAredundant}
	case Protein:
		return []alphabet.Alphabet{alphabet.Protein}
	}
	return nil
}

// Validate checks every symbol against the alphabet for the sequence
// type. Gaps are allowed. A codon sequence must be a whole number of
// codons. An unchecked sequence only has to be ascii.
func (s Seq) Validate() error {
	alphas := s.stype.alphabets()
	for i, c := range s.seq {
		if c >= MaxSym || !validIn(alphas, c) {
			return fmt.Errorf("%w \"%c\" at position %d in %s sequence \"%s\"",
				ErrBadSym, c, i, s.stype, trimStr(s.name, 40))
		}
	}
	if s.stype == Codon && len(s.seq)%codonLen != 0 {
		return fmt.Errorf("codon sequence \"%s\" has %d nucleotides, not a multiple of 3",
			trimStr(s.name, 40), len(s.seq))
	}
	return nil
}

func validIn(alphas []alphabet.Alphabet, c byte) bool {
	if alphas == nil {
		return true
	}
	for _, a := range alphas {
		if a.IsValid(alphabet.Letter(c)) {
			return true
		}
	}
	return false
}

// cmmt rebuilds the comment line, without the leading ">".
func (s Seq) cmmt() string {
	if s.desc == "" {
		return s.name
	}
	return s.name + " " + s.desc
}

// FastaFormat writes the sequence in fasta format. If lineWidth is
// more than zero, sequence lines are broken every lineWidth characters.
// Codon sequences are written as plain nucleotides.
func (s Seq) FastaFormat(lineWidth int) string {
	var sb strings.Builder
	sb.Grow(len(s.seq) + len(s.cmmt()) + 4)
	writeEntry(&sb, s.cmmt(), s.seq, lineWidth)
	return sb.String()
}

// writeEntry is the inner loop for fasta writing.
func writeEntry(sb *strings.Builder, cmmt string, b []byte, lineWidth int) {
	sb.WriteByte(cmmtChar)
	sb.WriteString(cmmt)
	sb.WriteByte(NL)
	if lineWidth > 0 {
		for ; len(b) > lineWidth; b = b[lineWidth:] {
			sb.Write(b[:lineWidth])
			sb.WriteByte(NL)
		}
	}
	sb.Write(b)
	sb.WriteByte(NL)
}
