// 29 April 2020

// Package squash removes the columns of an alignment where some
// reference sequence has a gap.
package squash

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bitbucket.org/nigevogen/bseq/pkg/marker"
	"bitbucket.org/nigevogen/bseq/pkg/seq"
	. "bitbucket.org/nigevogen/bseq/pkg/seq/common"
)

var ErrNoRef = errors.New("reference sequence not found")

// FindNdx looks for the reference. If ref is a number like "1", it is
// the 1-based index of the sequence. Otherwise it is a string to be found
// in the comment line, and the first match wins.
func FindNdx(seqs []seq.Seq, ref string) (int, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil {
		if n < 1 || n > len(seqs) {
			return -1, fmt.Errorf("%w: number %d, but %d sequences", ErrNoRef, n, len(seqs))
		}
		return n - 1, nil
	}
	for i, s := range seqs {
		cmmt := s.Name()
		if s.Desc() != "" {
			cmmt += " " + s.Desc()
		}
		if strings.Contains(cmmt, ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrNoRef, ref)
}

// Squash returns new sequences with the gapped columns of seqs[ndxref]
// taken out, and the gap marker that was used.
func Squash(seqs []seq.Seq, ndxref int) ([]seq.Seq, *marker.Gap, error) {
	if err := seq.CheckLengths(seqs); err != nil {
		return nil, nil, err
	}
	ref := seqs[ndxref]
	gm, err := marker.GapFromSeq(ref.Bytes(), GapChar, marker.WithName("gaps_in_"+ref.Name()))
	if err != nil {
		return nil, nil, err
	}
	out := make([]seq.Seq, len(seqs))
	for i, s := range seqs {
		b, err := gm.RemoveGaps(string(s.Bytes()))
		if err != nil {
			return nil, nil, fmt.Errorf("sequence %d %q: %w", i+1, s.Name(), err)
		}
		out[i] = seq.New(s.Name(), []byte(b), s.Type(), s.Desc())
	}
	return out, gm, nil
}

// MyMain is the top level main, after parsing the command line.
func MyMain(ref, infile, outfile string, lineWidth int) int {
	seqs, err := seq.Readfile(infile, seq.Unchecked)
	if err != nil {
		fmt.Fprintln(os.Stderr, err, "(the inputfile)")
		return ExitFailure
	}
	ndxref, err := FindNdx(seqs, ref)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitFailure
	}
	squashed, _, err := Squash(seqs, ndxref)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitFailure
	}
	if err := seq.WriteToF(outfile, squashed, lineWidth); err != nil {
		if outfile == "" {
			outfile = "os.Stdout"
		}
		fmt.Fprintln(os.Stderr, "Fail writing to ", outfile, err)
		return ExitFailure
	}
	return ExitSuccess
}
