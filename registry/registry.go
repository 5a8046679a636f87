// Package registry owns the (frame, variant) -> transform index. Records are
// collected by a Builder during the load phase and frozen into an immutable
// Registry that any number of goroutines may read without locking.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/signalsfoundry/hsr-catalog/model"
)

var (
	ErrUnknownFrame           = errors.New("frame has no registered variants")
	ErrInvalidVariantForFrame = errors.New("invalid variant for frame")
	ErrDuplicateVariant       = errors.New("variant already registered")
	ErrSparseFrame            = errors.New("variant ordinals are not dense")
	ErrFrozen                 = errors.New("registry already built")
)

// Builder accumulates records in authoring order. It is not safe for
// concurrent use; the load phase is single-threaded.
type Builder struct {
	buckets map[model.Frame][]model.Transform
	labels  map[string]model.Key
	built   bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		buckets: make(map[model.Frame][]model.Transform),
		labels:  make(map[string]model.Key),
	}
}

// Register appends t to the bucket of its frame. Records must be valid and
// their labels unique across the catalog.
func (b *Builder) Register(t model.Transform) error {
	if b.built {
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, t.Label)
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if prev, exists := b.labels[t.Label]; exists {
		return fmt.Errorf("%w: label %q already used by %s", ErrDuplicateVariant, t.Label, prev)
	}
	for _, existing := range b.buckets[t.Frame] {
		if existing.Variant.Ordinal() == t.Variant.Ordinal() {
			return fmt.Errorf("%w: %s ordinal %d is %q, cannot add %q",
				ErrDuplicateVariant, t.Frame, t.Variant.Ordinal(), existing.Label, t.Label)
		}
	}

	// The label is the variant's canonical name.
	t.Variant = model.NewVariant(t.Frame, t.Variant.Ordinal(), t.Label)
	b.buckets[t.Frame] = append(b.buckets[t.Frame], t)
	b.labels[t.Label] = t.Key()
	return nil
}

// Build verifies that every bucket holds ordinals 1..n in authored order and
// freezes the records into a Registry. The Builder cannot be used afterwards.
func (b *Builder) Build() (*Registry, error) {
	if b.built {
		return nil, ErrFrozen
	}
	for frame, bucket := range b.buckets {
		for i, t := range bucket {
			if t.Variant.Ordinal() != i+1 {
				return nil, fmt.Errorf("%w: %s position %d holds ordinal %d (%q)",
					ErrSparseFrame, frame, i+1, t.Variant.Ordinal(), t.Label)
			}
		}
	}
	b.built = true

	r := &Registry{
		buckets:  b.buckets,
		variants: make(map[string]model.Variant, len(b.labels)),
		frames:   make([]model.Frame, 0, len(b.buckets)),
	}
	for frame, bucket := range b.buckets {
		r.frames = append(r.frames, frame)
		for _, t := range bucket {
			r.variants[t.Label] = t.Variant
		}
		r.size += len(bucket)
	}
	sort.Slice(r.frames, func(i, j int) bool { return r.frames[i] < r.frames[j] })

	b.buckets = nil
	b.labels = nil
	return r, nil
}

// Registry is the frozen index. None of its state changes after Build.
type Registry struct {
	buckets  map[model.Frame][]model.Transform
	variants map[string]model.Variant
	frames   []model.Frame
	size     int
}

// Lookup returns the record for (frame, v).
//
// A scoped variant must belong to frame. The ordinal is used as a 1-based
// index into the frame's bucket; out-of-range ordinals and records whose
// identity does not match the request fail with ErrInvalidVariantForFrame.
func (r *Registry) Lookup(frame model.Frame, v model.Variant) (model.Transform, error) {
	bucket, ok := r.buckets[frame]
	if !ok {
		return model.Transform{}, fmt.Errorf("%w: %s", ErrUnknownFrame, frame)
	}
	if v.Scoped() && v.Frame() != frame {
		return model.Transform{}, fmt.Errorf("%w: frame %s, variant %s belongs to %s",
			ErrInvalidVariantForFrame, frame, v, v.Frame())
	}

	idx := v.Ordinal() - 1
	if idx < 0 || idx >= len(bucket) {
		return model.Transform{}, fmt.Errorf("%w: frame %s, variant %s (ordinal %d, frame has %d)",
			ErrInvalidVariantForFrame, frame, v, v.Ordinal(), len(bucket))
	}

	t := bucket[idx]
	if t.Variant.Ordinal() != v.Ordinal() || (v.Name() != "" && v.Name() != t.Variant.Name()) {
		return model.Transform{}, fmt.Errorf("%w: frame %s, variant %s found %q at ordinal %d",
			ErrInvalidVariantForFrame, frame, v, t.Label, v.Ordinal())
	}
	return t, nil
}

// Resolve returns the variant code registered under name.
func (r *Registry) Resolve(name string) (model.Variant, error) {
	v, ok := r.variants[name]
	if !ok {
		return model.Variant{}, fmt.Errorf("%w: variant %q", model.ErrUnknownCodeName, name)
	}
	return v, nil
}

// Variants returns a copy of the frame's records in authored order.
func (r *Registry) Variants(frame model.Frame) ([]model.Transform, error) {
	bucket, ok := r.buckets[frame]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFrame, frame)
	}
	return append([]model.Transform(nil), bucket...), nil
}

// Frames returns the frames that have at least one record, in ordinal order.
func (r *Registry) Frames() []model.Frame {
	return append([]model.Frame(nil), r.frames...)
}

// Len returns the total number of records.
func (r *Registry) Len() int { return r.size }

// Each calls fn for every record, frames in ordinal order and variants in
// authored order, until fn returns false.
func (r *Registry) Each(fn func(model.Transform) bool) {
	for _, frame := range r.frames {
		for _, t := range r.buckets[frame] {
			if !fn(t) {
				return
			}
		}
	}
}
