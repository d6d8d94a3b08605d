package config_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "bitbucket.org/nigevogen/bseq/pkg/config"
	"bitbucket.org/nigevogen/bseq/pkg/marker"
	"bitbucket.org/nigevogen/bseq/pkg/seq"
	"bitbucket.org/nigevogen/bseq/pkg/seq/common"
)

const confText = `
line_width = 10
seq_type   = "protein"
mask_char  = "."

[[marker]]
name     = "quality"
sequence = "HHHLLHH"
description = "from the sequencer"
[marker.chars]
H = "high"
L = "low"

[[marker]]
name     = "gaps"
kind     = "gap"
sequence = "OOOXOOO"

[[marker]]
name     = "cons"
kind     = "ConsAlign"
sequence = "CCCCNNN"
`

func TestDefault(t *testing.T) {
	c, err := LoadConf(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&DefaultConf, c); diff != "" {
		t.Fatalf("empty file (-want +got):\n%s", diff)
	}
	if c.Mask() != marker.DefaultMaskChar || c.Exclude() != marker.GappedChar {
		t.Fatalf("mask %c exclude %c", c.Mask(), c.Exclude())
	}
}

func TestLoad(t *testing.T) {
	c, err := LoadConf(strings.NewReader(confText))
	if err != nil {
		t.Fatal(err)
	}
	if c.LineWidth != 10 || c.Mask() != '.' || c.Exclude() != 'X' {
		t.Fatalf("got width %d mask %c exclude %c", c.LineWidth, c.Mask(), c.Exclude())
	}
	if st, _ := c.Type(); st != seq.Protein {
		t.Fatalf("got type %v wanted %v", st, seq.Protein)
	}
	ms, err := c.BuildMarkers()
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, m := range ms {
		got = append(got, m.String())
	}
	want := []string{"cons:0C4N7", "gaps:0O3X4O7", "quality:0H3L5H7"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("markers (-want +got):\n%s", diff)
	}
	if ms[2].Description() != "from the sequencer" {
		t.Fatalf("description got %q", ms[2].Description())
	}
	if d, _ := ms[2].Describe('L'); d != "low" {
		t.Fatalf("L described as %q", d)
	}
}

func TestBad(t *testing.T) {
	for _, tc := range []struct {
		name, text string
	}{
		{"unknown key", "colour = \"red\""},
		{"long mask", "mask_char = \"ab\""},
		{"negative width", "line_width = -1"},
		{"seq type", "seq_type = \"dna soup\""},
		{"no name", "[[marker]]\nsequence = \"OO\""},
		{"duplicate", "[[marker]]\nname = \"a\"\n[[marker]]\nname = \"a\""},
		{"syntax", "line_width = "},
	} {
		if _, err := LoadConf(strings.NewReader(tc.text)); err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}
}

func TestBadMarkers(t *testing.T) {
	for _, mc := range []MarkerConf{
		{Name: "kind", Kind: "wobbly", Sequence: "OO"},
		{Name: "nochars", Sequence: "OO"},
		{Name: "longchar", Sequence: "OO", Chars: map[string]string{"OK": "ok"}},
		{Name: "badgap", Kind: "gap", Sequence: "OOZ"},
	} {
		if _, err := mc.Build(); err == nil {
			t.Fatalf("marker %s: expected an error", mc.Name)
		}
	}
	mc := MarkerConf{Name: "badgap", Kind: "gap", Sequence: "OOZ"}
	if _, err := mc.Build(); !errors.Is(err, marker.ErrAlphabet) {
		t.Fatalf("got %v wanted %v", err, marker.ErrAlphabet)
	}
}

func TestReadConf(t *testing.T) {
	fname, err := common.WrtTemp(confText)
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(fname)
	c, err := ReadConf(fname)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Markers) != 3 {
		t.Fatalf("got %d markers wanted 3", len(c.Markers))
	}
	if _, err := ReadConf(fname + "_not_there"); err == nil {
		t.Fatal("expected error on missing file")
	}
}
