package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signalsfoundry/hsr-catalog/catalog"
	"github.com/signalsfoundry/hsr-catalog/model"
	"github.com/signalsfoundry/hsr-catalog/registry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenAppliesMigrations(t *testing.T) {
	s := openTestStore(t)
	version, dirty, err := s.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion: %v", err)
	}
	if version != 1 || dirty {
		t.Fatalf("version = %d dirty = %v, want 1 clean", version, dirty)
	}
	if err := s.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp should be a no-op: %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	want, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := catalog.Load(ctx, catalog.WithSource(s))
	if err != nil {
		t.Fatalf("Load from store: %v", err)
	}
	if got.Len() != want.Len() {
		t.Fatalf("reloaded %d records, want %d", got.Len(), want.Len())
	}
	if diff := cmp.Diff(want.FrameInfos(), got.FrameInfos()); diff != "" {
		t.Fatalf("frame infos differ (-want +got):\n%s", diff)
	}

	opts := cmp.Options{cmpopts.EquateNaNs(), cmp.AllowUnexported(model.Variant{})}
	want.Each(func(w model.Transform) bool {
		g, err := got.GetTransform(w.Frame, w.Variant)
		if err != nil {
			t.Errorf("GetTransform(%s): %v", w.Key(), err)
			return false
		}
		if diff := cmp.Diff(w, g, opts); diff != "" {
			t.Errorf("%s differs (-want +got):\n%s", w.Key(), diff)
			return false
		}
		return true
	})
}

func TestSaveReplacesPreviousContents(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	for range 2 {
		if err := s.Save(ctx, cat); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	rows, err := s.Transforms(ctx)
	if err != nil {
		t.Fatalf("Transforms: %v", err)
	}
	if len(rows) != cat.Len() {
		t.Fatalf("%d rows after two saves, want %d", len(rows), cat.Len())
	}
}

func TestEmptyStoreLoadsEmptyCatalog(t *testing.T) {
	s := openTestStore(t)
	c, err := catalog.Load(context.Background(), catalog.WithSource(s))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", c.Len())
	}
	if _, err := c.GetTransform(model.FrameWGS1984, model.VariantOrdinal(1)); !errors.Is(err, registry.ErrUnknownFrame) {
		t.Fatalf("GetTransform on empty catalog = %v, want ErrUnknownFrame", err)
	}
}

func TestFramesRejectsRenamedRow(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	if err := s.Save(ctx, cat); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE frames SET name = 'ORM_RENAMED' WHERE ordinal = ?`, int(model.FrameEurope1950)); err != nil {
		t.Fatalf("rename frame row: %v", err)
	}

	if _, err := s.Frames(ctx); !errors.Is(err, catalog.ErrMalformedRow) {
		t.Fatalf("Frames error = %v, want ErrMalformedRow", err)
	}
	if _, err := catalog.Load(ctx, catalog.WithSource(s)); !errors.Is(err, catalog.ErrMalformedRow) {
		t.Fatalf("Load error = %v, want ErrMalformedRow", err)
	}
}
