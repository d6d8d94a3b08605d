package main

import (
	"errors"
	"os"
	"testing"

	"bitbucket.org/nigevogen/bseq/pkg/seq/common"
)

func TestExitWith(t *testing.T) {
	if err := exitWith(common.ExitSuccess); err != nil {
		t.Fatalf("got %v wanted nil", err)
	}
	var e exitError
	if err := exitWith(common.ExitFailure); !errors.As(err, &e) || int(e) != common.ExitFailure {
		t.Fatalf("got %v wanted exit status %d", err, common.ExitFailure)
	}
}

func TestEncodeGaps(t *testing.T) {
	fname, err := common.WrtTemp(">a\nAC-T\n>b\nA--T\n")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	out, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		t.Fatal(err)
	}
	out.Close()
	defer os.Remove(out.Name())

	rootCmd.SetArgs([]string{"encode", "--gaps", "-o", out.Name(), fname})
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(out.Name())
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), "gaps:0O1X3O4\n"; got != want {
		t.Fatalf("got %q wanted %q", got, want)
	}
}
