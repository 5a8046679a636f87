package catalog

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/hsr-catalog/model"
)

// ErrInvalidPair is returned when a (frame, variant) pair cannot back a
// spatial reference frame of the requested class.
var ErrInvalidPair = errors.New("invalid frame/variant pair")

// SRFClass groups spatial reference frame kinds by the frames they accept.
// Celestiocentric frames accept anything but the abstract spaces. Celestiodetic
// frames and the projections over them need a sphere or oblate ellipsoid.
// Spherical projections need a sphere.
type SRFClass string

const (
	SRFCelestiocentric SRFClass = "celestiocentric"
	SRFCelestiodetic   SRFClass = "celestiodetic"
	SRFSpherical       SRFClass = "spherical"
	SRFLocalSpace2D    SRFClass = "local_space_2d"
	SRFLocalSpace3D    SRFClass = "local_space_3d"
)

// ParseSRFClass maps a class label to an SRFClass.
func ParseSRFClass(s string) (SRFClass, error) {
	switch c := SRFClass(s); c {
	case SRFCelestiocentric, SRFCelestiodetic, SRFSpherical, SRFLocalSpace2D, SRFLocalSpace3D:
		return c, nil
	default:
		return "", fmt.Errorf("%w: SRF class %q", model.ErrUnknownCodeName, s)
	}
}

// ValidPair reports whether variant is a registered realization of frame.
// It does not count as a lookup for observers.
func (c *Catalog) ValidPair(frame model.Frame, variant model.Variant) error {
	if _, err := c.reg.Lookup(frame, variant); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPair, err)
	}
	return nil
}

// CheckSRF reports whether (frame, variant) can back a spatial reference
// frame of the given class.
func (c *Catalog) CheckSRF(class SRFClass, frame model.Frame, variant model.Variant) error {
	info, err := c.FrameInfo(frame)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPair, err)
	}

	var ok bool
	switch class {
	case SRFCelestiocentric:
		ok = info.Template != model.TemplateBiAxisOrigin2D && frame != model.FrameAbstract3D
	case SRFCelestiodetic:
		ok = info.Template.Geodetic() && frame != model.FrameAbstract3D
	case SRFSpherical:
		ok = info.Template == model.TemplateSphere
	case SRFLocalSpace2D:
		ok = frame == model.FrameAbstract2D
	case SRFLocalSpace3D:
		ok = frame == model.FrameAbstract3D
	default:
		return fmt.Errorf("%w: SRF class %q", model.ErrUnknownCodeName, class)
	}
	if !ok {
		return fmt.Errorf("%w: %s (%s) cannot back a %s frame", ErrInvalidPair, frame, info.Template, class)
	}
	return c.ValidPair(frame, variant)
}
