// Package config reads the settings file for bseq programs. It says how
// to write sequences and lists the markers to apply to an alignment.
//
// A file looks like
//
//	line_width   = 60
//	seq_type     = "nucleotide"
//	mask_char    = "_"
//	exclude_char = "X"
//
//	[[marker]]
//	name     = "gaps"
//	kind     = "gap"
//	sequence = "OOOXOOOOOOXXXOO"
//
//	[[marker]]
//	name     = "quality"
//	sequence = "HHHLLHHHHHHHHHH"
//	[marker.chars]
//	H = "high quality"
//	L = "low quality"
//
// A marker of kind "gap" or "consalign" gets the usual alphabet unless
// chars are given.
package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"bitbucket.org/nigevogen/bseq/pkg/marker"
	"bitbucket.org/nigevogen/bseq/pkg/seq"
)

// MarkerConf is one [[marker]] table.
type MarkerConf struct {
	Name        string            `toml:"name"`
	Kind        string            `toml:"kind"`
	Description string            `toml:"description"`
	Sequence    string            `toml:"sequence"`
	Chars       map[string]string `toml:"chars"`
}

// Conf is the whole file.
type Conf struct {
	LineWidth   int          `toml:"line_width"`
	SeqType     string       `toml:"seq_type"`
	MaskChar    string       `toml:"mask_char"`
	ExcludeChar string       `toml:"exclude_char"`
	Markers     []MarkerConf `toml:"marker"`
}

// DefaultConf is used for anything the file does not set.
var DefaultConf = Conf{
	LineWidth:   60,
	SeqType:     "nucleotide",
	MaskChar:    string(marker.DefaultMaskChar),
	ExcludeChar: string(marker.GappedChar),
}

// LoadConf decodes a settings file on top of DefaultConf. Keys we do
// not know about are an error, since they are usually typing mistakes.
func LoadConf(r io.Reader) (*Conf, error) {
	conf := DefaultConf
	conf.Markers = nil
	md, err := toml.NewDecoder(r).Decode(&conf)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := conf.check(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// ReadConf is LoadConf on a named file.
func ReadConf(fname string) (*Conf, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	conf, err := LoadConf(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return conf, nil
}

// oneChar wants a string of exactly one byte.
func oneChar(what, s string) (byte, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("config: %s must be one character, got %q", what, s)
	}
	return s[0], nil
}

func (c *Conf) check() error {
	if c.LineWidth < 0 {
		return fmt.Errorf("config: line_width %d is negative", c.LineWidth)
	}
	if _, err := c.Type(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := oneChar("mask_char", c.MaskChar); err != nil {
		return err
	}
	if _, err := oneChar("exclude_char", c.ExcludeChar); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, mc := range c.Markers {
		if mc.Name == "" {
			return fmt.Errorf("config: marker without a name")
		}
		if seen[mc.Name] {
			return fmt.Errorf("config: marker %q given twice", mc.Name)
		}
		seen[mc.Name] = true
	}
	return nil
}

// Type is the sequence type named in the file.
func (c *Conf) Type() (seq.Type, error) { return seq.ParseType(c.SeqType) }

// Mask is the mask character.
func (c *Conf) Mask() byte { return c.MaskChar[0] }

// Exclude is the character marking columns to remove.
func (c *Conf) Exclude() byte { return c.ExcludeChar[0] }

// charDesc turns the toml table into a marker alphabet.
func (mc *MarkerConf) charDesc() (map[byte]string, error) {
	cd := make(map[byte]string, len(mc.Chars))
	for k, v := range mc.Chars {
		c, err := oneChar("marker "+mc.Name+" char", k)
		if err != nil {
			return nil, err
		}
		cd[c] = v
	}
	return cd, nil
}

// Build makes the marker.
func (mc *MarkerConf) Build() (*marker.Marker, error) {
	cd, err := mc.charDesc()
	if err != nil {
		return nil, err
	}
	var vopts []marker.VariantOption
	if len(cd) > 0 {
		vopts = append(vopts, marker.WithCharDescription(cd))
	}
	vopts = append(vopts, marker.WithName(mc.Name),
		marker.WithOptions(marker.WithDescription(mc.Description)))

	switch strings.ToLower(mc.Kind) {
	case "gap":
		g, err := marker.NewGap(mc.Sequence, vopts...)
		if err != nil {
			return nil, err
		}
		return g.Marker, nil
	case "consalign":
		ca, err := marker.NewConsAlign(mc.Sequence, vopts...)
		if err != nil {
			return nil, err
		}
		return ca.Marker, nil
	case "":
		return marker.New(mc.Name, cd, mc.Sequence, marker.WithDescription(mc.Description))
	}
	return nil, fmt.Errorf("config: marker %q has unknown kind %q", mc.Name, mc.Kind)
}

// BuildMarkers makes every marker in the file, sorted by name.
func (c *Conf) BuildMarkers() ([]*marker.Marker, error) {
	ms := make([]*marker.Marker, 0, len(c.Markers))
	for i := range c.Markers {
		m, err := c.Markers[i].Build()
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	sort.Slice(ms, func(i, j int) bool { return ms[i].Name() < ms[j].Name() })
	return ms, nil
}
