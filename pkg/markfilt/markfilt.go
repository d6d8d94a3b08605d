// Package markfilt applies column markers to an alignment file. The
// markers come from a config file; the alignment is fasta.
package markfilt

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"bitbucket.org/nigevogen/bseq/pkg/aln"
	"bitbucket.org/nigevogen/bseq/pkg/config"
	"bitbucket.org/nigevogen/bseq/pkg/marker"
	"bitbucket.org/nigevogen/bseq/pkg/seq"
	. "bitbucket.org/nigevogen/bseq/pkg/seq/common"
)

// Op is what we do with the markers.
type Op byte

const (
	Filter Op = iota // remove marked columns
	Keep             // keep only marked columns
	Mask             // overwrite marked columns
	Coords           // list the runs of each marker
	Encode           // write each marker in run length form
)

var opNames = [...]string{"filter", "keep", "mask", "coords", "encode"}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

var ErrOp = errors.New("unknown operation")

// ParseOp is the inverse of String.
func ParseOp(s string) (Op, error) {
	for i, n := range opNames {
		if strings.EqualFold(s, n) {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q, want one of %s", ErrOp, s, strings.Join(opNames[:], ", "))
}

// GapMarkerName is the name given to the marker made from the gaps in
// the alignment.
const GapMarkerName = "gaps"

// Args is everything the command line collected.
type Args struct {
	InFile  string       // fasta alignment, stdin if empty
	OutFile string       // stdout if empty
	Conf    *config.Conf // nil means config.DefaultConf
	Op      Op
	Markers []string // names of markers to use, all if empty
	Chars   string   // marker characters to act on, the exclude char if empty
	Gaps    bool     // add a marker made from the gaps in the alignment
	Verbose bool
}

func (args *Args) conf() *config.Conf {
	if args.Conf == nil {
		c := config.DefaultConf
		return &c
	}
	return args.Conf
}

func (args *Args) chars() []byte {
	if args.Chars == "" {
		return []byte{args.conf().Exclude()}
	}
	return []byte(args.Chars)
}

// Build reads the alignment and attaches the markers.
func Build(args *Args) (*aln.Alignment, error) {
	conf := args.conf()
	stype, err := conf.Type()
	if err != nil {
		return nil, err
	}
	seqs, err := seq.Readfile(args.InFile, stype)
	if err != nil {
		return nil, err
	}
	a, err := aln.FromSeqs(args.InFile, seqs)
	if err != nil {
		return nil, err
	}
	ms, err := conf.BuildMarkers()
	if err != nil {
		return nil, err
	}
	if args.Gaps {
		g, err := a.GapMarker(marker.WithName(GapMarkerName))
		if err != nil {
			return nil, err
		}
		ms = append(ms, g.Marker)
	}
	if _, err := a.AddMarkers(ms...); err != nil {
		return nil, err
	}
	if args.Verbose {
		log.Printf("%d sequences of length %d, markers %v", a.NSeq(), a.Len(), a.MarkerNames())
	}
	return a, nil
}

// Run does the work, writing to w.
func Run(args *Args, a *aln.Alignment, w io.Writer) error {
	names := args.Markers
	if len(names) == 0 {
		names = a.MarkerNames()
	}
	conf := args.conf()
	var b *aln.Alignment
	var err error
	switch args.Op {
	case Filter:
		b, err = a.RemoveSites(args.chars(), names...)
	case Keep:
		b, err = a.KeepSites(args.chars(), names...)
	case Mask:
		b, err = a.MaskSites(conf.Mask(), args.chars(), names...)
	case Coords, Encode:
		return writeMarkers(w, a, args.Op, names)
	default:
		return fmt.Errorf("%w %v", ErrOp, args.Op)
	}
	if err != nil {
		return err
	}
	if args.Verbose {
		log.Printf("%s left %d of %d columns", args.Op, b.Len(), a.Len())
	}
	return seq.WriteFasta(w, b.Seqs(), conf.LineWidth)
}

// writeMarkers writes one line per marker for encode. For coords, it
// writes one line per marker character, with half open, zero based runs
// like "3-4 10-13".
func writeMarkers(w io.Writer, a *aln.Alignment, op Op, names []string) error {
	for _, name := range names {
		m, ok := a.Marker(name)
		if !ok {
			return fmt.Errorf("%w: %q", aln.ErrNoMarker, name)
		}
		if op == Encode {
			if _, err := fmt.Fprintln(w, m); err != nil {
				return err
			}
			continue
		}
		for _, c := range m.Alphabet() {
			ivals := m.Intervals(c, false)
			runs := make([]string, len(ivals))
			for i, iv := range ivals {
				runs[i] = fmt.Sprintf("%d-%d", iv.Start, iv.End)
			}
			if _, err := fmt.Fprintf(w, "%s\t%c\t%s\n", m.Name(), c, strings.Join(runs, " ")); err != nil {
				return err
			}
		}
	}
	return nil
}

// toFile runs into a file, or stdout if fname is empty. An error closing
// the file is not lost.
func toFile(args *Args, a *aln.Alignment, fname string) (err error) {
	if fname == "" {
		return Run(args, a, os.Stdout)
	}
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	return Run(args, a, fp)
}

// MyMain is the top level main, after parsing the command line.
func MyMain(args *Args) int {
	a, err := Build(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitFailure
	}
	if err := toFile(args, a, args.OutFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitFailure
	}
	return ExitSuccess
}
