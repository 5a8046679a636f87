package model

import "fmt"

// Frame identifies a reference frame (object reference model) in the catalog.
// Ordinals are catalog-global, stable, and contiguous from 1.
type Frame uint16

// FrameUndefined is the zero value and is never issued by the catalog.
const FrameUndefined Frame = 0

// Frequently used frames. Their ordinals are fixed by frameNames.
const (
	FrameAbstract2D        Frame = 1
	FrameAbstract3D        Frame = 2
	FrameCOAMPS1998        Frame = 43
	FrameEurope1950        Frame = 72
	FrameMars2000          Frame = 154
	FrameNorthAmerican1983 Frame = 177
	FrameWGS1972           Frame = 273
	FrameWGS1984           Frame = 274
)

// FrameCount is the number of frames issued by the catalog.
const FrameCount = len(frameNames) - 1

var framesByName = func() map[string]Frame {
	m := make(map[string]Frame, len(frameNames))
	for i, name := range frameNames {
		if i == 0 {
			continue
		}
		m[name] = Frame(i)
	}
	return m
}()

// Ordinal returns the stable integer identifier of the frame.
func (f Frame) Ordinal() int { return int(f) }

// Valid reports whether f is a frame issued by the catalog.
func (f Frame) Valid() bool { return f > FrameUndefined && int(f) <= FrameCount }

// String returns the canonical frame name, e.g. "ORM_WGS_1984".
func (f Frame) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Frame(%d)", uint16(f))
	}
	return frameNames[f]
}

// ParseFrame resolves a frame by its canonical name. The match is exact and
// case-sensitive.
func ParseFrame(name string) (Frame, error) {
	f, ok := framesByName[name]
	if !ok {
		return FrameUndefined, fmt.Errorf("%w: frame %q", ErrUnknownCodeName, name)
	}
	return f, nil
}

// FrameForOrdinal returns the frame with ordinal n, which must lie in [1, FrameCount].
func FrameForOrdinal(n int) (Frame, error) {
	if n < 1 || n > FrameCount {
		return FrameUndefined, fmt.Errorf("%w: frame ordinal %d not in [1, %d]", ErrOutOfRange, n, FrameCount)
	}
	return Frame(n), nil
}

// Frames returns every issued frame in ordinal order.
func Frames() []Frame {
	out := make([]Frame, 0, FrameCount)
	for i := 1; i <= FrameCount; i++ {
		out = append(out, Frame(i))
	}
	return out
}
