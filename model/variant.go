package model

import "fmt"

// Variant identifies one regional realization of a frame. Ordinals are dense
// and 1-based within a frame, so the same ordinal denotes different variants
// under different frames; (Frame, Variant) is the real key.
//
// Variants issued by the catalog carry their home frame and canonical name.
// VariantOrdinal builds an unscoped code that is interpreted relative to
// whichever frame it is looked up under.
type Variant struct {
	frame   Frame
	ordinal int
	name    string
}

// NewVariant returns the variant code for ordinal within frame.
func NewVariant(frame Frame, ordinal int, name string) Variant {
	return Variant{frame: frame, ordinal: ordinal, name: name}
}

// VariantOrdinal returns an unscoped variant code for ordinal n.
func VariantOrdinal(n int) Variant {
	return Variant{ordinal: n}
}

// Ordinal returns the frame-scoped integer identifier.
func (v Variant) Ordinal() int { return v.ordinal }

// Frame returns the home frame, or FrameUndefined for unscoped codes.
func (v Variant) Frame() Frame { return v.frame }

// Name returns the canonical name, or "" for unscoped codes.
func (v Variant) Name() string { return v.name }

// Scoped reports whether the code is bound to a frame.
func (v Variant) Scoped() bool { return v.frame != FrameUndefined }

func (v Variant) String() string {
	if v.name != "" {
		return v.name
	}
	return fmt.Sprintf("HSR#%d", v.ordinal)
}
