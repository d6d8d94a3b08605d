// Reader and writer for fasta format files.

package seq

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"

	"bitbucket.org/nigevogen/bseq/pkg/white"
)

// An item is terminated by a newline if we are in a comment or a comment
// character ">" if we are in a sequence.
const (
	NL       = '\n'
	cmmtChar = '>'
)

const defaultReadSize = 64 * 1024

var rdsize int = defaultReadSize

// setFastaRdSize is only used in testing, to make buffer ends land in
// awkward places.
func setFastaRdSize(i int) {
	if i <= 2 {
		panic("setFastaRdSize given buffer length of 2 or less")
	}
	rdsize = i
}

type lexer struct {
	rdr   io.Reader
	input []byte // what is left of the last read
	eof   bool
	term  byte
	cmmt  []byte // partial comment
	seq   []byte // partial sequence
	stype Type
	seqs  []Seq
	err   error
}

// next returns input up to the next l.term or whatever is left in the
// buffer. complete is true if the terminator was found. At the end of
// input, err is io.EOF.
func (l *lexer) next() (data []byte, complete bool, err error) {
	if len(l.input) == 0 {
		if l.eof {
			return nil, true, io.EOF
		}
		buf := make([]byte, rdsize)
		n, err := l.rdr.Read(buf)
		switch {
		case err == io.EOF:
			l.eof = true
		case err != nil:
			return nil, false, err
		}
		l.input = buf[:n]
		if n == 0 {
			if l.eof {
				return nil, true, io.EOF
			}
			return nil, false, nil
		}
	}
	if ndx := bytes.IndexByte(l.input, l.term); ndx == -1 {
		data, l.input = l.input, nil // no terminator found, so just send
		return data, false, nil //      back whatever we have in the buffer.
	} else {
		data, l.input = l.input[:ndx], l.input[ndx+1:]
		return data, true, nil
	}
}

type stateFn func(*lexer) stateFn

// gstart skips anything blank before the first ">".
func gstart(l *lexer) stateFn {
	data, complete, err := l.next()
	if err == io.EOF {
		return nil
	} else if err != nil {
		l.err = err
		return nil
	}
	if !white.AllWhite(data) {
		l.err = fmt.Errorf("fasta input does not start with '%c', found \"%s\"",
			cmmtChar, trimStr(string(data), 20))
		return nil
	}
	if complete {
		l.term = NL
		return gcmmt
	}
	return gstart
}

// We are reading a comment
func gcmmt(l *lexer) stateFn {
	data, complete, err := l.next()
	if err == io.EOF {
		l.err = fmt.Errorf("%w after \"%s\"", ErrEmptySeq, l.cmmt)
		return nil
	} else if err != nil {
		l.err = err
		return nil
	}
	l.cmmt = append(l.cmmt, data...)
	if complete {
		l.term = cmmtChar
		return gseq
	}
	return gcmmt
}

// We are reading a sequence
func gseq(l *lexer) stateFn {
	data, complete, err := l.next()
	if err != nil && err != io.EOF {
		l.err = err
		return nil
	}
	l.seq = append(l.seq, white.Remove(data)...)
	if !complete {
		return gseq
	}
	if len(l.seq) == 0 {
		l.err = fmt.Errorf("%w after \"%s\"", ErrEmptySeq, l.cmmt)
		return nil
	}
	name, desc := splitCmmt(string(l.cmmt))
	l.seqs = append(l.seqs, Seq{name: name, desc: desc, stype: l.stype, seq: l.seq})
	l.cmmt, l.seq = nil, nil
	if err == io.EOF {
		return nil
	}
	l.term = NL
	return gcmmt
}

// splitCmmt breaks a comment line into the name, up to the first
// white space, and the description, which is everything after.
func splitCmmt(cmmt string) (name, desc string) {
	cmmt = strings.TrimSpace(cmmt)
	ndx := strings.IndexAny(cmmt, " \t")
	if ndx == -1 {
		return cmmt, ""
	}
	return cmmt[:ndx], strings.TrimSpace(cmmt[ndx+1:])
}

// ReadFasta reads fasta formatted sequences. Every sequence is given
// the type stype. White space within sequences is dropped.
func ReadFasta(rdr io.Reader, stype Type) ([]Seq, error) {
	l := lexer{rdr: rdr, term: cmmtChar, stype: stype}
	for state := gstart; state != nil; {
		state = state(&l)
	}
	if l.err != nil {
		return l.seqs, l.err
	}
	if len(l.seqs) == 0 {
		return nil, ErrNoSeqs
	}
	return l.seqs, nil
}

// Readfile takes a filename and reads sequences from it. The file is
// mapped into memory rather than read. An empty name means stdin.
func Readfile(fname string, stype Type) ([]Seq, error) {
	if fname == "" {
		return ReadFasta(os.Stdin, stype)
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fi, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() == 0 { // mmap does not like empty files
		return nil, fmt.Errorf("%w in %s", ErrNoSeqs, fname)
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	defer mm.Unmap()
	seqs, err := ReadFasta(bytes.NewReader(mm), stype)
	if err != nil {
		return seqs, fmt.Errorf("%s: %w", fname, err)
	}
	return seqs, nil
}

// WriteFasta writes the sequences to w, breaking sequence lines every
// lineWidth characters. lineWidth of zero means no breaks. Empty
// sequences are skipped.
func WriteFasta(w io.Writer, seqs []Seq, lineWidth int) error {
	var sb strings.Builder
	for _, s := range seqs {
		if s.Empty() {
			continue
		}
		sb.Reset()
		writeEntry(&sb, s.cmmt(), s.seq, lineWidth)
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("writing sequence %s: %w", s.name, err)
		}
	}
	return nil
}

// WriteToF writes sequences to a file, or stdout if the name is empty.
func WriteToF(fname string, seqs []Seq, lineWidth int) (err error) {
	if fname == "" {
		return WriteFasta(os.Stdout, seqs, lineWidth)
	}
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("creating output sequence file: %w", err)
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteFasta(fp, seqs, lineWidth)
}

var errNilSeqs = errors.New("no sequences given")

// CheckLengths wants every sequence to have the same number of bytes,
// as in an alignment.
func CheckLengths(seqs []Seq) error {
	if len(seqs) == 0 {
		return errNilSeqs
	}
	iwant := len(seqs[0].seq)
	for i := 1; i < len(seqs); i++ {
		if ilen := len(seqs[i].seq); ilen != iwant {
			return fmt.Errorf("sequence lengths are not the same. First sequence length %d, but"+
				" sequence %d (%s) length %d", iwant, i+1, trimStr(seqs[i].name, 40), ilen)
		}
	}
	return nil
}
