// 15 May 2025
// We are given a multiple sequence alignment.
// For each sequence, write the name, the species name and the length
// of the sequence without gaps, as tab separated lines for a
// spreadsheet.

package seqlen

import (
	"fmt"
	"io"
	"os"
	"strings"

	"bitbucket.org/nigevogen/bseq/pkg/seq"
)

// Species is whatever is in the last pair of square brackets in the
// description, like "[homo sapiens]", or an empty string.
func Species(desc string) string {
	end := strings.LastIndexByte(desc, ']')
	if end == -1 {
		return ""
	}
	start := strings.LastIndexByte(desc[:end], '[')
	if start == -1 {
		return ""
	}
	return strings.TrimSpace(desc[start+1 : end])
}

// Write writes the header and one line per sequence.
func Write(w io.Writer, seqs []seq.Seq) error {
	if _, err := fmt.Fprintln(w, "name\tspecies\tlength\tungapped"); err != nil {
		return err
	}
	for _, s := range seqs {
		_, err := fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", s.Name(), Species(s.Desc()), s.Len(), s.UngappedLen())
		if err != nil {
			return err
		}
	}
	return nil
}

// Mymain reads infile (stdin if empty) and writes to outfile (stdout if
// empty).
func Mymain(infile, outfile string, stype seq.Type) (err error) {
	seqs, err := seq.Readfile(infile, stype)
	if err != nil {
		return err
	}
	if outfile == "" {
		return Write(os.Stdout, seqs)
	}
	fp, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(fp, seqs)
}
