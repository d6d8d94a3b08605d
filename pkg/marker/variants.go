package marker

// Markers with a fixed alphabet. They hold nothing but a *Marker, so
// every Marker method is still there.

const (
	ConsistentChar   byte = 'C'
	InconsistentChar byte = 'N'
	UngappedChar     byte = 'O'
	GappedChar       byte = 'X'
)

// ConsAlignAlphabet is what the ConsAlign program writes.
func ConsAlignAlphabet() map[byte]string {
	return map[byte]string{
		ConsistentChar:   "consistent site",
		InconsistentChar: "inconsistent site",
	}
}

// GapAlphabet says whether an alignment column has a gap.
func GapAlphabet() map[byte]string {
	return map[byte]string{
		UngappedChar: "ungapped site",
		GappedChar:   "site has at least one gap present",
	}
}

// VariantOption changes the defaults of NewConsAlign and NewGap.
type VariantOption func(*variantConf)

type variantConf struct {
	name     string
	charDesc map[byte]string
	opts     []Option
}

// WithName replaces the default marker name.
func WithName(name string) VariantOption {
	return func(vc *variantConf) { vc.name = name }
}

// WithCharDescription replaces the default alphabet.
func WithCharDescription(charDesc map[byte]string) VariantOption {
	return func(vc *variantConf) { vc.charDesc = charDesc }
}

// WithOptions passes Options through to New.
func WithOptions(opts ...Option) VariantOption {
	return func(vc *variantConf) { vc.opts = append(vc.opts, opts...) }
}

func newVariant(vc variantConf, markerSeq string, vopts []VariantOption) (*Marker, error) {
	for _, o := range vopts {
		o(&vc)
	}
	return New(vc.name, vc.charDesc, markerSeq, vc.opts...)
}

// ConsAlign is a marker of consistently and inconsistently aligned sites.
type ConsAlign struct {
	*Marker
}

// NewConsAlign builds a ConsAlign marker from a string of C and N.
func NewConsAlign(markerSeq string, vopts ...VariantOption) (*ConsAlign, error) {
	vc := variantConf{name: "ConsAlign_marker_sequence", charDesc: ConsAlignAlphabet()}
	m, err := newVariant(vc, markerSeq, vopts)
	if err != nil {
		return nil, err
	}
	return &ConsAlign{m}, nil
}

// ConsistentSites keeps only the sites marked consistent.
func (ca *ConsAlign) ConsistentSites(alnSeq string) (string, error) {
	return ca.ConsistentSitesChar(alnSeq, ConsistentChar)
}

// ConsistentSitesChar is ConsistentSites with a different marker character.
func (ca *ConsAlign) ConsistentSitesChar(alnSeq string, c byte) (string, error) {
	return ca.Filter(alnSeq, true, c)
}

// InconsistentSites keeps only the sites marked inconsistent.
func (ca *ConsAlign) InconsistentSites(alnSeq string) (string, error) {
	return ca.InconsistentSitesChar(alnSeq, InconsistentChar)
}

// InconsistentSitesChar is InconsistentSites with a different marker character.
func (ca *ConsAlign) InconsistentSitesChar(alnSeq string, c byte) (string, error) {
	return ca.Filter(alnSeq, true, c)
}

// MaskConsistentSites overwrites consistent sites with maskChar.
func (ca *ConsAlign) MaskConsistentSites(alnSeq string, maskChar byte) (string, error) {
	return ca.Mask(alnSeq, maskChar, ConsistentChar)
}

// MaskInconsistentSites overwrites inconsistent sites with maskChar.
func (ca *ConsAlign) MaskInconsistentSites(alnSeq string, maskChar byte) (string, error) {
	return ca.Mask(alnSeq, maskChar, InconsistentChar)
}

// MaskSitesChar overwrites the sites marked c with maskChar.
func (ca *ConsAlign) MaskSitesChar(alnSeq string, c, maskChar byte) (string, error) {
	return ca.Mask(alnSeq, maskChar, c)
}

// ConsistentSiteCoords gives positions of consistent sites, from zero.
func (ca *ConsAlign) ConsistentSiteCoords() []int { return ca.Coords(ConsistentChar, false) }

// InconsistentSiteCoords gives positions of inconsistent sites, from zero.
func (ca *ConsAlign) InconsistentSiteCoords() []int { return ca.Coords(InconsistentChar, false) }

// SiteCoordsChar gives positions of sites marked c, for markers with
// their own alphabet.
func (ca *ConsAlign) SiteCoordsChar(c byte) []int { return ca.Coords(c, false) }

// Gap is a marker of gapped (X) and ungapped (O) sites.
type Gap struct {
	*Marker
}

// NewGap builds a Gap marker from a string of O and X.
func NewGap(markerSeq string, vopts ...VariantOption) (*Gap, error) {
	vc := variantConf{name: "Gap_marker_sequence", charDesc: GapAlphabet()}
	m, err := newVariant(vc, markerSeq, vopts)
	if err != nil {
		return nil, err
	}
	return &Gap{m}, nil
}

// GapFromSeq marks every position of alnSeq holding gapChar as gapped.
func GapFromSeq(alnSeq []byte, gapChar byte, vopts ...VariantOption) (*Gap, error) {
	b := make([]byte, len(alnSeq))
	for i, c := range alnSeq {
		if c == gapChar {
			b[i] = GappedChar
		} else {
			b[i] = UngappedChar
		}
	}
	return NewGap(string(b), vopts...)
}

// RemoveGaps drops the sites marked gapped.
func (g *Gap) RemoveGaps(alnSeq string) (string, error) {
	return g.RemoveGapsChar(alnSeq, GappedChar)
}

// RemoveGapsChar drops the sites marked c.
func (g *Gap) RemoveGapsChar(alnSeq string, c byte) (string, error) {
	return g.Filter(alnSeq, false, c)
}
