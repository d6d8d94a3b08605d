package markfilt_test

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"bitbucket.org/nigevogen/bseq/pkg/aln"
	"bitbucket.org/nigevogen/bseq/pkg/config"
	. "bitbucket.org/nigevogen/bseq/pkg/markfilt"
	"bitbucket.org/nigevogen/bseq/pkg/seq/common"
)

const alnText = `>s1
ATTCAATATACCCAT
>s2 second
ATT-AATATA---AT
`

const confText = `
line_width = 0
mask_char  = "_"

[[marker]]
name     = "cons"
kind     = "consalign"
sequence = "CCCNCCCCCCNNNCC"
`

func setup(t *testing.T) (string, *config.Conf) {
	fname, err := common.WrtTemp(alnText)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(fname) })
	conf, err := config.LoadConf(strings.NewReader(confText))
	if err != nil {
		t.Fatal(err)
	}
	return fname, conf
}

func TestParseOp(t *testing.T) {
	for _, op := range []Op{Filter, Keep, Mask, Coords, Encode} {
		got, err := ParseOp(strings.ToUpper(op.String()))
		if err != nil || got != op {
			t.Fatalf("got %v %v wanted %v", got, err, op)
		}
	}
	if _, err := ParseOp("squeeze"); !errors.Is(err, ErrOp) {
		t.Fatalf("got %v wanted %v", err, ErrOp)
	}
}

func TestRun(t *testing.T) {
	fname, conf := setup(t)
	for _, tc := range []struct {
		op    Op
		chars string
		gaps  bool
		want  string
	}{
		{Filter, "N", false, ">s1\nATTAATATAAT\n>s2 second\nATTAATATAAT\n"},
		{Keep, "N", false, ">s1\nCCCC\n>s2 second\n----\n"},
		{Mask, "N", false, ">s1\nATT_AATATA___AT\n>s2 second\nATT_AATATA___AT\n"},
		{Filter, "", true, ">s1\nATTAATATAAT\n>s2 second\nATTAATATAAT\n"},
		{Encode, "", true, "cons:0C3N4C10N13C15\ngaps:0O3X4O10X13O15\n"},
		{Coords, "", false, "cons\tC\t0-3 4-10 13-15\ncons\tN\t3-4 10-13\n"},
	} {
		args := &Args{InFile: fname, Conf: conf, Op: tc.op, Chars: tc.chars, Gaps: tc.gaps}
		a, err := Build(args)
		if err != nil {
			t.Fatal(err)
		}
		if tc.gaps && tc.op != Encode {
			args.Markers = []string{GapMarkerName}
		}
		var buf bytes.Buffer
		if err := Run(args, a, &buf); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != tc.want {
			t.Fatalf("%v got %q wanted %q", tc.op, got, tc.want)
		}
	}
}

func TestNoMarker(t *testing.T) {
	fname, conf := setup(t)
	args := &Args{InFile: fname, Conf: conf, Op: Coords, Markers: []string{"nothere"}}
	a, err := Build(args)
	if err != nil {
		t.Fatal(err)
	}
	if err := Run(args, a, &bytes.Buffer{}); !errors.Is(err, aln.ErrNoMarker) {
		t.Fatalf("got %v wanted %v", err, aln.ErrNoMarker)
	}
}

func TestWrongLength(t *testing.T) {
	fname, _ := setup(t)
	conf, err := config.LoadConf(strings.NewReader("[[marker]]\nname = \"g\"\nkind = \"gap\"\nsequence = \"OOX\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Build(&Args{InFile: fname, Conf: conf}); !errors.Is(err, aln.ErrLength) {
		t.Fatalf("got %v wanted %v", err, aln.ErrLength)
	}
}

func TestMyMain(t *testing.T) {
	fname, conf := setup(t)
	out, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		t.Fatal(err)
	}
	out.Close()
	defer os.Remove(out.Name())
	log.SetOutput(&bytes.Buffer{})
	defer log.SetOutput(os.Stderr)
	args := &Args{InFile: fname, OutFile: out.Name(), Conf: conf, Op: Filter, Chars: "N", Verbose: true}
	if r := MyMain(args); r != common.ExitSuccess {
		t.Fatalf("got exit %d", r)
	}
	b, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "ATTAATATAAT") {
		t.Fatalf("output %q", b)
	}
}

// TestBadOutput checks that failing to write the output is not reported
// as success.
func TestBadOutput(t *testing.T) {
	fname, conf := setup(t)
	old := os.Stderr // We provoke an error, so temporarily redirect stderr.
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal("fail opening", os.DevNull)
	}
	os.Stderr = devnull
	defer func() { devnull.Close(); os.Stderr = old }()

	outs := []string{os.TempDir() + "/no_such_dir_del_me/out.fa"}
	if _, err := os.Stat("/dev/full"); err == nil {
		outs = append(outs, "/dev/full")
	}
	for _, out := range outs {
		args := &Args{InFile: fname, OutFile: out, Conf: conf, Op: Filter, Chars: "N"}
		if r := MyMain(args); r != common.ExitFailure {
			t.Fatalf("writing to %s got exit %d wanted %d", out, r, common.ExitFailure)
		}
	}
}
