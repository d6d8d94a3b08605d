package white_test

import (
	"testing"

	. "bitbucket.org/nigevogen/bseq/pkg/white"
)

// TestRemove
func TestRemove(t *testing.T) {
	ss := []string{
		"abcdefghijk",
		" a b c d e f g h i j k",
		"a b c de fgh ijk",
		"   abcdefghijk    ",
		"a   b      cdefghijk\n ",
		"a  b  c  d   e    f     ghijk",
		"a bcdefghij   k",
		"abcdefghij\r\nk",
	}
	for _, s := range ss {
		b := Remove([]byte(s))
		if string(b) != "abcdefghijk" {
			t.Fatalf("white remove broke on \"%s\" got \"%s\"", s, b)
		}
	}
	if b := Remove([]byte(" \n\t")); len(b) != 0 {
		t.Fatalf("all white left \"%s\"", b)
	}
}

func TestAllWhite(t *testing.T) {
	if !AllWhite(nil) || !AllWhite([]byte(" \n")) {
		t.Fatal("empty or blank should be all white")
	}
	if AllWhite([]byte(" a ")) {
		t.Fatal("\" a \" is not all white")
	}
}
