// Package white strips white space out of sequence data.
package white

var asciiSpace = [256]bool{
	'\t': true, '\n': true, '\v': true, '\f': true, '\r': true, ' ': true,
}

// IsWhite is true for ascii white space.
func IsWhite(c byte) bool { return asciiSpace[c] }

// Remove acts on a byte slice, in place, and removes all the white
// space. The returned slice shares the backing array of s and has the
// same capacity.
func Remove(s []byte) []byte {
	n := 0
	for _, c := range s {
		if !asciiSpace[c] {
			s[n] = c
			n++
		}
	}
	return s[:n]
}

// AllWhite is true if s has nothing but white space in it, or nothing.
func AllWhite(s []byte) bool {
	for _, c := range s {
		if !asciiSpace[c] {
			return false
		}
	}
	return true
}
