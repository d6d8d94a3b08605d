// 31 July 2020

package randseq_test

import (
	"strings"
	"testing"

	"bitbucket.org/nigevogen/bseq/pkg/randseq"
	"bitbucket.org/nigevogen/bseq/pkg/seq"
)

func TestSimple(t *testing.T) {
	var sb strings.Builder
	args := randseq.RandSeqArgs{
		Wrtr: &sb,
		Cmmt: "testing seq",
		Nseq: 500,
		Len:  160,
	}
	if err := randseq.RandSeqMain(&args); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(sb.String(), ">"); n != args.Nseq {
		t.Fatal("count >, got ", n, "expected", args.Nseq)
	}
}

// TestReadBack checks that the white space we sprinkle in is thrown
// away by the reader and every sequence has the right length.
func TestReadBack(t *testing.T) {
	var sb strings.Builder
	args := randseq.RandSeqArgs{
		Iseed: 42, Wrtr: &sb, Cmmt: "s", Nseq: 50, Len: 333,
		Letters: randseq.Prot,
	}
	if err := randseq.RandSeqMain(&args); err != nil {
		t.Fatal(err)
	}
	seqs, err := seq.ReadFasta(strings.NewReader(sb.String()), seq.Protein)
	if err != nil {
		t.Fatal(err)
	}
	if len(seqs) != args.Nseq {
		t.Fatalf("got %d seqs wanted %d", len(seqs), args.Nseq)
	}
	for _, s := range seqs {
		if s.Len() != args.Len {
			t.Fatalf("seq %s length %d wanted %d", s.Name(), s.Len(), args.Len)
		}
		if err := s.Validate(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestNoWriter(t *testing.T) {
	if err := randseq.RandSeqMain(&randseq.RandSeqArgs{Nseq: 1, Len: 1}); err == nil {
		t.Fatal("expected error with no writer")
	}
}
