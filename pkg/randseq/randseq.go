// 31 July 2020

// Package randseq writes random aligned sequences in fasta format.
// It is for testing and benchmarking readers and filters.
package randseq

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
)

const (
	nPadWhite = 9 // For padding for adding whitespace to sequences
)

// Alphabets to draw from.
const (
	Nucl = "acgt"
	Prot = "acdefghiklmnpqrstvwy"
)

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed   int64     // random number seed
	Wrtr    io.Writer // where we write to
	Cmmt    string    // Comment for the sequences
	Nseq    int       // number of sequences
	Len     int       // Length of sequences, all the same
	Letters string    // symbols to use, Nucl if empty
	NoGap   bool      // Do not add gaps
	NoWhite bool      // Do not sprinkle white space into sequences
}

// getseq returns a byte slice with a random sequence in it, with room
// on the end for white space to be added.
func getseq(seqlen int, letters []byte, rnd *rand.Rand) []byte {
	space := seqlen + (seqlen / nPadWhite) // about 10% rubbish white space
	ret := make([]byte, seqlen, space)
	for i := range ret {
		ret[i] = letters[rnd.Intn(len(letters))]
	}
	return ret
}

// addInner is used by addspace to add a space or newline
func addInner(s []byte, n int, c byte, rnd *rand.Rand) []byte {
	for i := 0; i < n; i++ {
		s = append(s, 0)
		pos := rnd.Intn(len(s))
		copy(s[pos+1:], s[pos:])
		s[pos] = c
	}
	return s
}

// addspace is given a byte array and adds white characters at random
// positions. We work out how much space is to be used. We flip a coin.
// Heads we don't add a newline. Tails we make about 1/9 of the
// spaces newlines.
func addspace(s []byte, rnd *rand.Rand) []byte {
	toAdd := cap(s) - len(s)
	nNL := 0 // Number of new lines to add
	if rnd.Intn(2) == 0 {
		nNL = toAdd / 9
	}
	s = addInner(s, toAdd-nNL, ' ', rnd)
	return addInner(s, nNL, '\n', rnd)
}

// writeseq takes byte strings which are our sequences. It adds a comment
// and writes them. The output has comment lines "> something 1,
// > something 2..."
func writeseq(sChan <-chan []byte, args *RandSeqArgs, wg *sync.WaitGroup, err *error) {
	defer wg.Done()
	width := len(fmt.Sprintf("%d", args.Nseq))
	spacernd := rand.New(rand.NewSource(args.Iseed + 1))
	var i int
	for s := range sChan {
		i++
		if *err != nil {
			continue // drain the channel
		}
		if !args.NoWhite {
			s = addspace(s, spacernd)
		}
		if _, e := fmt.Fprintf(args.Wrtr, "> %s %[2]*d\n%s\n", args.Cmmt, width, i, s); e != nil {
			*err = e
		}
	}
}

// RandSeqMain writes random sequences to an io.Writer.
func RandSeqMain(args *RandSeqArgs) error {
	if args.Wrtr == nil {
		return fmt.Errorf("randseq: no writer")
	}
	letters := []byte(args.Letters)
	if len(letters) == 0 {
		letters = []byte(Nucl)
	}
	if !args.NoGap { // about one in ten symbols a gap
		n := len(letters)
		for i := 0; i < 2*n; i++ {
			letters = append(letters, letters[i%n])
		}
		for i := 0; i < len(letters)/9; i++ {
			letters = append(letters, '-')
		}
	}
	var wg sync.WaitGroup
	var err error
	rnd := rand.New(rand.NewSource(args.Iseed))
	sChan := make(chan []byte)
	wg.Add(1)
	go writeseq(sChan, args, &wg, &err)
	for i := 0; i < args.Nseq; i++ {
		sChan <- getseq(args.Len, letters, rnd)
	}
	close(sChan)
	wg.Wait()
	return err
}
