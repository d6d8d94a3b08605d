// brokenio is a wrapper around an io.Reader which breaks on purpose.
// Typical use: You have a reader from a file or a string. You write
//     rdr = brokenio.NewReader(rdr)
// set when it should fail and hand it to the code under test. Everything
// works as before, until the failure.
package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is what we return when we decide to fail.
var ErrBroken = errors.New("brokenio: deliberate read failure")

// A Reader passes reads through to the wrapped reader, but can fail
// after a given number of bytes, or at random with a given probability
// per call, or pretend the input is empty.
type Reader struct {
	rdrOrig   io.Reader
	failAfter int // fail once this many bytes have gone through, -1 never
	probFail  float32
	zeroFile  bool
	rnd       *rand.Rand
	nCalled   int
	nByte     int
}

// NewReader returns a new Reader, a wrapper around the old one. With no
// settings it never fails.
func NewReader(rIn io.Reader) *Reader {
	return &Reader{rdrOrig: rIn, failAfter: -1, rnd: rand.New(rand.NewSource(1))}
}

// SetFailAfter makes reads fail once n bytes have been delivered.
func (r *Reader) SetFailAfter(n int) { r.failAfter = n }

// SetProbFail sets the probability that any call fails.
// It must be between zero and 1. We do not check.
func (r *Reader) SetProbFail(prob float32, seed int64) {
	r.probFail = prob
	r.rnd = rand.New(rand.NewSource(seed))
}

// SetZeroFile makes the first read return io.EOF with no data, which is
// what one sees on a zero length file.
func (r *Reader) SetZeroFile(z bool) { r.zeroFile = z }

// Read wraps the original reader and sums up the amount of data that
// has gone through.
func (r *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	r.nCalled++
	if r.nCalled == 1 && r.zeroFile {
		return 0, io.EOF
	}
	if r.probFail > 0 && r.rnd.Float32() < r.probFail {
		return 0, fmt.Errorf("%w on call %d", ErrBroken, r.nCalled)
	}
	if r.failAfter >= 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, fmt.Errorf("%w after %d bytes", ErrBroken, r.nByte)
		}
		if len(p) > left {
			p = p[:left]
		}
	}
	n, err = r.rdrOrig.Read(p)
	r.nByte += n
	return n, err
}

// String reports how much went through.
func (r *Reader) String() string {
	return fmt.Sprintf("%d calls and %d bytes", r.nCalled, r.nByte)
}
