// Package catalog loads the datum-shift catalog and answers lookups against it.
//
// Most callers use the package-level GetTransform, which loads the embedded
// dataset exactly once on first use. Servers that need their own logger,
// metrics or data source call Load directly.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/signalsfoundry/hsr-catalog/internal/logging"
	"github.com/signalsfoundry/hsr-catalog/model"
	"github.com/signalsfoundry/hsr-catalog/registry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/signalsfoundry/hsr-catalog/catalog"

// ErrIncomplete is returned when records reference frames the source did not describe.
var ErrIncomplete = errors.New("catalog incomplete")

// Lookup outcomes reported to an Observer.
const (
	OutcomeOK             = "ok"
	OutcomeInvalidVariant = "invalid_variant"
	OutcomeUnknownFrame   = "unknown_frame"
	OutcomeError          = "error"
)

// Observer receives load and lookup events, typically to feed metrics.
type Observer interface {
	ObserveLoad(frames, variants int, elapsed time.Duration)
	ObserveLookup(outcome string)
}

type options struct {
	source   Source
	log      logging.Logger
	observer Observer
}

// Option configures Load.
type Option func(*options)

// WithSource overrides the embedded dataset.
func WithSource(src Source) Option {
	return func(o *options) { o.source = src }
}

// WithLogger sets the logger used during load.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver reports load and lookup events to obs.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// Catalog is a fully loaded, read-only catalog. It is safe for concurrent use.
type Catalog struct {
	reg      *registry.Registry
	frames   [model.FrameCount + 1]*model.FrameInfo
	observer Observer
}

// Load reads every frame and record from the configured source and returns
// the frozen catalog. A Catalog is never returned partially populated.
func Load(ctx context.Context, opts ...Option) (*Catalog, error) {
	o := options{source: Embedded(), log: logging.Noop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logging.Noop()
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "catalog.load")
	defer span.End()

	start := time.Now()
	c, err := load(ctx, o)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		o.log.Error(ctx, "catalog load failed", logging.Err(err))
		return nil, err
	}
	elapsed := time.Since(start)

	frames := len(c.reg.Frames())
	span.SetAttributes(
		attribute.Int("catalog.frames", frames),
		attribute.Int("catalog.variants", c.reg.Len()),
	)
	if o.observer != nil {
		o.observer.ObserveLoad(frames, c.reg.Len(), elapsed)
	}
	o.log.Info(ctx, "catalog loaded",
		logging.Int("frames", frames),
		logging.Int("variants", c.reg.Len()),
		logging.String("duration", elapsed.String()),
	)
	return c, nil
}

func load(ctx context.Context, o options) (*Catalog, error) {
	infos, err := o.source.Frames(ctx)
	if err != nil {
		return nil, fmt.Errorf("load frames: %w", err)
	}
	records, err := o.source.Transforms(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transforms: %w", err)
	}

	c := &Catalog{observer: o.observer}
	for i := range infos {
		info := infos[i]
		if !info.Frame.Valid() {
			return nil, fmt.Errorf("%w: frame info for invalid frame %d", ErrMalformedRow, uint16(info.Frame))
		}
		c.frames[info.Frame] = &info
	}

	b := registry.NewBuilder()
	for _, t := range records {
		if t.Frame.Valid() && c.frames[t.Frame] == nil {
			return nil, fmt.Errorf("%w: %q references %s which has no frame info", ErrIncomplete, t.Label, t.Frame)
		}
		if err := b.Register(t); err != nil {
			o.log.Warn(ctx, "rejected catalog record",
				logging.String("label", t.Label),
				logging.String("frame", t.Frame.String()),
				logging.Err(err),
			)
			return nil, fmt.Errorf("register %q: %w", t.Label, err)
		}
	}
	reg, err := b.Build()
	if err != nil {
		return nil, err
	}
	c.reg = reg
	return c, nil
}

// GetTransform returns the record for (frame, variant).
func (c *Catalog) GetTransform(frame model.Frame, variant model.Variant) (model.Transform, error) {
	t, err := c.reg.Lookup(frame, variant)
	c.observe(err)
	return t, err
}

func (c *Catalog) observe(err error) {
	if c.observer == nil {
		return
	}
	switch {
	case err == nil:
		c.observer.ObserveLookup(OutcomeOK)
	case errors.Is(err, registry.ErrInvalidVariantForFrame):
		c.observer.ObserveLookup(OutcomeInvalidVariant)
	case errors.Is(err, registry.ErrUnknownFrame):
		c.observer.ObserveLookup(OutcomeUnknownFrame)
	default:
		c.observer.ObserveLookup(OutcomeError)
	}
}

// ResolveVariant returns the variant code with the given canonical name.
func (c *Catalog) ResolveVariant(name string) (model.Variant, error) {
	return c.reg.Resolve(name)
}

// ParseVariant accepts either a canonical variant name or a decimal ordinal.
// Ordinals produce unscoped codes.
func (c *Catalog) ParseVariant(s string) (model.Variant, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return model.VariantOrdinal(n), nil
	}
	return c.reg.Resolve(s)
}

// FrameInfo returns the descriptive record of frame.
func (c *Catalog) FrameInfo(frame model.Frame) (model.FrameInfo, error) {
	if !frame.Valid() || c.frames[frame] == nil {
		return model.FrameInfo{}, fmt.Errorf("%w: no frame info for %s", model.ErrOutOfRange, frame)
	}
	return *c.frames[frame], nil
}

// Variants returns frame's records in authored order.
func (c *Catalog) Variants(frame model.Frame) ([]model.Transform, error) {
	return c.reg.Variants(frame)
}

// Frames returns the frames that have at least one record.
func (c *Catalog) Frames() []model.Frame { return c.reg.Frames() }

// Len returns the number of records.
func (c *Catalog) Len() int { return c.reg.Len() }

// Each visits every record in frame order, then authored order.
func (c *Catalog) Each(fn func(model.Transform) bool) { c.reg.Each(fn) }

// FrameInfos returns the metadata of every described frame in ordinal order.
func (c *Catalog) FrameInfos() []model.FrameInfo {
	out := make([]model.FrameInfo, 0, model.FrameCount)
	for _, info := range c.frames {
		if info != nil {
			out = append(out, *info)
		}
	}
	return out
}

// Covering returns frame's variants whose bounding region contains the point.
// Regions are advisory; this never affects GetTransform.
func (c *Catalog) Covering(frame model.Frame, lat, long float64) ([]model.Transform, error) {
	all, err := c.reg.Variants(frame)
	if err != nil {
		return nil, err
	}
	var out []model.Transform
	for _, t := range all {
		if t.Region.Contains(lat, long) {
			out = append(out, t)
		}
	}
	return out, nil
}

// SameReference reports whether a and b share a reference frame, i.e.
// whether converting between them needs no datum shift.
func (c *Catalog) SameReference(a, b model.Frame) (bool, error) {
	ia, err := c.FrameInfo(a)
	if err != nil {
		return false, err
	}
	ib, err := c.FrameInfo(b)
	if err != nil {
		return false, err
	}
	return ia.ReferenceFrame == ib.ReferenceFrame, nil
}
