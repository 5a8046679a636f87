package model

import (
	"fmt"
	"math"
)

// Helmert holds the seven similarity-transform parameters. Translations are
// in metres, rotations in radians, and DeltaScale is a dimensionless ratio.
// NaN in every field means the frame has no real-world transform.
type Helmert struct {
	DeltaX     float64
	DeltaY     float64
	DeltaZ     float64
	Omega1     float64
	Omega2     float64
	Omega3     float64
	DeltaScale float64
}

// Params returns the parameters in canonical order.
func (h Helmert) Params() [7]float64 {
	return [7]float64{h.DeltaX, h.DeltaY, h.DeltaZ, h.Omega1, h.Omega2, h.Omega3, h.DeltaScale}
}

// Defined reports whether no parameter is NaN.
func (h Helmert) Defined() bool {
	for _, p := range h.Params() {
		if math.IsNaN(p) {
			return false
		}
	}
	return true
}

// nanCount returns how many parameters are NaN.
func (h Helmert) nanCount() int {
	n := 0
	for _, p := range h.Params() {
		if math.IsNaN(p) {
			n++
		}
	}
	return n
}

// UndefinedHelmert has every parameter set to NaN.
var UndefinedHelmert = Helmert{
	DeltaX: math.NaN(), DeltaY: math.NaN(), DeltaZ: math.NaN(),
	Omega1: math.NaN(), Omega2: math.NaN(), Omega3: math.NaN(),
	DeltaScale: math.NaN(),
}

// Key is the composite identity of a transform record.
type Key struct {
	Frame   Frame
	Ordinal int
}

func (k Key) String() string { return fmt.Sprintf("%s/%d", k.Frame, k.Ordinal) }

// Transform is one regional variant's datum-shift record. Records are
// immutable once loaded.
type Transform struct {
	Label       string
	Description string
	Frame       Frame
	Variant     Variant
	Helmert
	Region Region
}

// Key returns the (frame, ordinal) identity of the record.
func (t Transform) Key() Key {
	return Key{Frame: t.Frame, Ordinal: t.Variant.Ordinal()}
}

// Equal reports whether t and o denote the same record.
func (t Transform) Equal(o Transform) bool { return t.Key() == o.Key() }

// Validate checks the construction invariants: a real frame, a positive
// ordinal bound to the same frame, a label, and either all seven parameters
// defined or all seven NaN.
func (t Transform) Validate() error {
	if !t.Frame.Valid() {
		return fmt.Errorf("%w: %q has unknown frame %d", ErrInvalidTransform, t.Label, uint16(t.Frame))
	}
	if t.Label == "" {
		return fmt.Errorf("%w: empty label for %s", ErrInvalidTransform, t.Key())
	}
	if t.Variant.Ordinal() < 1 {
		return fmt.Errorf("%w: %q has variant ordinal %d", ErrInvalidTransform, t.Label, t.Variant.Ordinal())
	}
	if t.Variant.Scoped() && t.Variant.Frame() != t.Frame {
		return fmt.Errorf("%w: %q variant belongs to %s, record to %s", ErrInvalidTransform, t.Label, t.Variant.Frame(), t.Frame)
	}
	if n := t.Helmert.nanCount(); n != 0 && n != 7 {
		return fmt.Errorf("%w: %q has %d of 7 parameters undefined", ErrInvalidTransform, t.Label, n)
	}
	return nil
}
