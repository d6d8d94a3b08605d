// 18 Oct 2026

// Package marker annotates the columns of an alignment with a track of
// single characters. A marker sequence like
//     OOOXOOOOOOXXXOO
// is stored as runs, so the above is kept as [0,3)O [3,4)X [4,10)O ...
// From the runs we can get back the coordinates of a character, remove
// columns from an aligned sequence (filter) or overwrite them (mask).
//
// A Marker does not change once it is built. Anything that trims a
// marker gives back a new one.
package marker

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultMaskChar is used by Mask callers who have no better idea.
const DefaultMaskChar byte = '_'

var (
	ErrAlphabet      = errors.New("character not in marker alphabet")
	ErrEmptyAlphabet = errors.New("marker alphabet is empty")
	ErrLength        = errors.New("sequence and marker lengths differ")
)

// Interval is a half open range of positions, [Start, End).
type Interval struct {
	Start, End int
}

// Len is the number of positions covered.
func (iv Interval) Len() int { return iv.End - iv.Start }

// Run is one interval and the marker character over it.
type Run struct {
	Interval
	Char byte
}

// Marker is a run length encoded annotation track.
type Marker struct {
	name        string
	description string
	charDesc    map[byte]string
	ivals       []Interval
	chars       []byte
}

// Option sets optional fields when a Marker is made.
type Option func(*Marker)

// WithDescription attaches free text to a marker.
func WithDescription(desc string) Option {
	return func(m *Marker) { m.description = desc }
}

// New checks markerSeq against the keys of charDesc and compresses it.
// charDesc is copied, so the caller may reuse the map.
func New(name string, charDesc map[byte]string, markerSeq string, opts ...Option) (*Marker, error) {
	if len(charDesc) == 0 {
		return nil, fmt.Errorf("marker %q: %w", name, ErrEmptyAlphabet)
	}
	if err := CheckSequence(markerSeq, charDesc); err != nil {
		return nil, fmt.Errorf("marker %q: %w", name, err)
	}
	m := &Marker{name: name, charDesc: make(map[byte]string, len(charDesc))}
	for c, d := range charDesc {
		m.charDesc[c] = d
	}
	m.ivals, m.chars = encode(markerSeq)
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

// CheckSequence returns an error naming the first character of s which is
// not a key of allowed. The allowed characters are listed in the message.
func CheckSequence(s string, allowed map[byte]string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if _, ok := allowed[c]; !ok {
			return fmt.Errorf("%w: %q at position %d, allowed (%s)",
				ErrAlphabet, c, i, alphaList(allowed))
		}
	}
	return nil
}

// alphaList gives the keys of an alphabet, sorted, as "A, B, C".
func alphaList(alpha map[byte]string) string {
	keys := make([]string, 0, len(alpha))
	for c := range alpha {
		keys = append(keys, string(c))
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

// encode compresses s into runs. Adjacent runs never share a character.
func encode(s string) ([]Interval, []byte) {
	var ivals []Interval
	var chars []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if n := len(chars); n > 0 && chars[n-1] == c {
			ivals[n-1].End = i + 1
			continue
		}
		ivals = append(ivals, Interval{Start: i, End: i + 1})
		chars = append(chars, c)
	}
	return ivals, chars
}

// Name identifies the marker, for example within an alignment.
func (m *Marker) Name() string { return m.name }

// Description is free text about the marker.
func (m *Marker) Description() string { return m.description }

// Len is the length of the marker sequence.
func (m *Marker) Len() int {
	if len(m.ivals) == 0 {
		return 0
	}
	return m.ivals[len(m.ivals)-1].End
}

// Alphabet returns the allowed marker characters in sorted order.
func (m *Marker) Alphabet() []byte {
	alpha := make([]byte, 0, len(m.charDesc))
	for c := range m.charDesc {
		alpha = append(alpha, c)
	}
	sort.Slice(alpha, func(i, j int) bool { return alpha[i] < alpha[j] })
	return alpha
}

// Describe tells us what a marker character means.
func (m *Marker) Describe(c byte) (string, bool) {
	d, ok := m.charDesc[c]
	return d, ok
}

// Runs returns a copy of the encoded form.
func (m *Marker) Runs() []Run {
	runs := make([]Run, len(m.ivals))
	for i, iv := range m.ivals {
		runs[i] = Run{Interval: iv, Char: m.chars[i]}
	}
	return runs
}

// Sequence expands the runs back to the original marker string.
func (m *Marker) Sequence() string {
	var sb strings.Builder
	sb.Grow(m.Len())
	for i, iv := range m.ivals {
		for j := 0; j < iv.Len(); j++ {
			sb.WriteByte(m.chars[i])
		}
	}
	return sb.String()
}

// EncodedSequence writes each run as its start followed by its
// character, then the end of the last run. OOOXOO becomes 0O3X4O6.
// An empty marker is "0".
func (m *Marker) EncodedSequence() string {
	var sb strings.Builder
	for i, iv := range m.ivals {
		sb.WriteString(strconv.Itoa(iv.Start))
		sb.WriteByte(m.chars[i])
	}
	sb.WriteString(strconv.Itoa(m.Len()))
	return sb.String()
}

// String gives name:encoded.
func (m *Marker) String() string { return m.name + ":" + m.EncodedSequence() }

// matches says if a run qualifies, given the inverse flag.
func matches(runChar, c byte, inverse bool) bool {
	return (runChar == c) != inverse
}

// Coords returns, in ascending order, every position whose marker
// character is c. With inverse, it is every position where it is not c.
// A character the marker has never heard of just matches nothing.
func (m *Marker) Coords(c byte, inverse bool) []int {
	coords := []int{}
	for i, iv := range m.ivals {
		if !matches(m.chars[i], c, inverse) {
			continue
		}
		for j := iv.Start; j < iv.End; j++ {
			coords = append(coords, j)
		}
	}
	return coords
}

// Intervals is Coords, but returns the qualifying runs rather than
// single positions. Neighbouring runs are not merged, so with inverse
// two different non-matching characters side by side stay separate.
func (m *Marker) Intervals(c byte, inverse bool) []Interval {
	ivals := []Interval{}
	for i, iv := range m.ivals {
		if matches(m.chars[i], c, inverse) {
			ivals = append(ivals, iv)
		}
	}
	return ivals
}

// FilterCoords returns the sorted positions Filter would keep. For each
// character, we take the positions Coords gives with inverse flipped,
// and the result is the union of these. With one character and no
// inverse, that is everything not marked with it. With several
// characters and no inverse, a position is only dropped if it matches
// every one of them, which for distinct characters means nothing is
// dropped. With inverse, we keep positions marked with any of chars.
func (m *Marker) FilterCoords(inverse bool, chars ...byte) []int {
	keep := make([]bool, m.Len())
	for _, c := range chars {
		for _, p := range m.Coords(c, !inverse) {
			keep[p] = true
		}
	}
	coords := []int{}
	for i, k := range keep {
		if k {
			coords = append(coords, i)
		}
	}
	return coords
}

// hits marks every position whose marker is one of chars.
func (m *Marker) hits(chars []byte) []bool {
	hit := make([]bool, m.Len())
	for _, c := range chars {
		for i, iv := range m.ivals {
			if m.chars[i] != c {
				continue
			}
			for j := iv.Start; j < iv.End; j++ {
				hit[j] = true
			}
		}
	}
	return hit
}

// checkLen wants seq to be exactly as long as the marker.
func (m *Marker) checkLen(seq string) error {
	if len(seq) != m.Len() {
		return fmt.Errorf("%w: sequence %d, marker %q %d",
			ErrLength, len(seq), m.name, m.Len())
	}
	return nil
}

// Filter removes positions from seq. See FilterCoords for which ones.
// The result is never longer than seq.
func (m *Marker) Filter(seq string, inverse bool, chars ...byte) (string, error) {
	if err := m.checkLen(seq); err != nil {
		return "", err
	}
	coords := m.FilterCoords(inverse, chars...)
	b := make([]byte, len(coords))
	for i, p := range coords {
		b[i] = seq[p]
	}
	return string(b), nil
}

// Mask overwrites with maskChar every position of seq whose marker is
// one of chars. The length does not change.
func (m *Marker) Mask(seq string, maskChar byte, chars ...byte) (string, error) {
	if err := m.checkLen(seq); err != nil {
		return "", err
	}
	b := []byte(seq)
	for i, h := range m.hits(chars) {
		if h {
			b[i] = maskChar
		}
	}
	return string(b), nil
}

// Select makes a new marker from the positions in coords, in the order
// given. This is how a marker follows its alignment when columns are
// removed. The receiver is not touched.
func (m *Marker) Select(coords []int) (*Marker, error) {
	full := m.Sequence()
	b := make([]byte, len(coords))
	for i, p := range coords {
		if p < 0 || p >= len(full) {
			return nil, fmt.Errorf("marker %q: position %d out of range [0,%d)",
				m.name, p, len(full))
		}
		b[i] = full[p]
	}
	return New(m.name, m.charDesc, string(b), WithDescription(m.description))
}
