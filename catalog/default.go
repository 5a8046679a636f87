package catalog

import (
	"context"
	"sync"

	"github.com/signalsfoundry/hsr-catalog/model"
)

var loadDefault = newDefaultLoader()

// newDefaultLoader returns a function that runs Load at most once; concurrent
// first callers block until it finishes and then all see the same result.
func newDefaultLoader(opts ...Option) func() (*Catalog, error) {
	return sync.OnceValues(func() (*Catalog, error) {
		return Load(context.Background(), opts...)
	})
}

// Default returns the catalog built from the embedded dataset.
func Default() (*Catalog, error) {
	return loadDefault()
}

// GetTransform looks up (frame, variant) in the default catalog.
func GetTransform(frame model.Frame, variant model.Variant) (model.Transform, error) {
	c, err := Default()
	if err != nil {
		return model.Transform{}, err
	}
	return c.GetTransform(frame, variant)
}

// ResolveVariant resolves a variant name in the default catalog.
func ResolveVariant(name string) (model.Variant, error) {
	c, err := Default()
	if err != nil {
		return model.Variant{}, err
	}
	return c.ResolveVariant(name)
}

// ResolveFrame resolves a frame name. Frames form a closed enumeration and
// need no catalog load.
func ResolveFrame(name string) (model.Frame, error) {
	return model.ParseFrame(name)
}

// FrameForOrdinal returns the frame with the given catalog-global ordinal.
func FrameForOrdinal(n int) (model.Frame, error) {
	return model.FrameForOrdinal(n)
}
