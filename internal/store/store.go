// Package store persists a catalog to SQLite and reads it back as a
// catalog.Source. Undefined (NaN) values are stored as NULL.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"math"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/signalsfoundry/hsr-catalog/catalog"
	"github.com/signalsfoundry/hsr-catalog/internal/logging"
	"github.com/signalsfoundry/hsr-catalog/model"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is a SQLite-backed catalog table.
type Store struct {
	db  *sql.DB
	log logging.Logger
}

var _ catalog.Source = (*Store)(nil)

// Open opens (creating if needed) the database at path and migrates it to
// the latest schema.
func Open(ctx context.Context, path string, log logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Noop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// A single connection keeps PRAGMAs and transactions on one handle.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// MigrateUp runs all pending migrations. It is a no-op when the schema is current.
func (s *Store) MigrateUp() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	// m is not closed: closing it would close the shared *sql.DB.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// MigrateVersion returns the applied schema version, or 0 when none is applied.
func (s *Store) MigrateVersion() (uint, bool, error) {
	m, err := s.newMigrate()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (s *Store) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{log: s.log}
	return m, nil
}

// migrateLogger adapts logging.Logger to migrate.Logger.
type migrateLogger struct {
	log logging.Logger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	l.log.Debug(context.Background(), fmt.Sprintf(format, v...), logging.String("component", "migrate"))
}

func (l migrateLogger) Verbose() bool { return false }

// Save replaces the stored catalog with the contents of cat in one transaction.
func (s *Store) Save(ctx context.Context, cat *catalog.Catalog) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM transforms"); err != nil {
		return fmt.Errorf("clear transforms: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM frames"); err != nil {
		return fmt.Errorf("clear frames: %w", err)
	}

	frameStmt, err := tx.PrepareContext(ctx, `INSERT INTO frames
		(ordinal, name, published_name, template, reference_datum, reference_frame)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare frames insert: %w", err)
	}
	defer frameStmt.Close()
	for _, info := range cat.FrameInfos() {
		if _, err = frameStmt.ExecContext(ctx,
			info.Frame.Ordinal(), info.Frame.String(), info.PublishedName,
			string(info.Template), info.ReferenceDatum, info.ReferenceFrame.Ordinal(),
		); err != nil {
			return fmt.Errorf("insert frame %s: %w", info.Frame, err)
		}
	}

	transformStmt, err := tx.PrepareContext(ctx, `INSERT INTO transforms
		(label, description, frame, variant,
		 delta_x, delta_y, delta_z, omega_1, omega_2, omega_3, delta_scale,
		 ll_lat, ll_long, ur_lat, ur_long)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare transforms insert: %w", err)
	}
	defer transformStmt.Close()

	count := 0
	cat.Each(func(t model.Transform) bool {
		p := t.Params()
		r := t.Region
		_, err = transformStmt.ExecContext(ctx,
			t.Label, t.Description, t.Frame.Ordinal(), t.Variant.Ordinal(),
			nullable(p[0]), nullable(p[1]), nullable(p[2]),
			nullable(p[3]), nullable(p[4]), nullable(p[5]), nullable(p[6]),
			nullable(r.LowerLeftLat), nullable(r.LowerLeftLong),
			nullable(r.UpperRightLat), nullable(r.UpperRightLong),
		)
		if err != nil {
			err = fmt.Errorf("insert %s: %w", t.Label, err)
			return false
		}
		count++
		return true
	})
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.log.Info(ctx, "catalog saved", logging.Int("transforms", count))
	return nil
}

// Frames implements catalog.Source.
func (s *Store) Frames(ctx context.Context) ([]model.FrameInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ordinal, name, published_name, template, reference_datum, reference_frame
		FROM frames ORDER BY ordinal`)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	var out []model.FrameInfo
	for rows.Next() {
		var (
			ordinal, ref int
			info         model.FrameInfo
			name, tmpl   string
		)
		if err := rows.Scan(&ordinal, &name, &info.PublishedName, &tmpl, &info.ReferenceDatum, &ref); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		if info.Frame, err = model.FrameForOrdinal(ordinal); err != nil {
			return nil, fmt.Errorf("%w: frame row: %v", catalog.ErrMalformedRow, err)
		}
		if name != info.Frame.String() {
			return nil, fmt.Errorf("%w: frame %d is named %q, want %q", catalog.ErrMalformedRow, ordinal, name, info.Frame.String())
		}
		if info.ReferenceFrame, err = model.FrameForOrdinal(ref); err != nil {
			return nil, fmt.Errorf("%w: reference frame of %s: %v", catalog.ErrMalformedRow, info.Frame, err)
		}
		var ok bool
		if info.Template, ok = model.ParseTemplate(tmpl); !ok {
			return nil, fmt.Errorf("%w: %s has unknown template %q", catalog.ErrMalformedRow, info.Frame, tmpl)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Transforms implements catalog.Source. Rows come back in frame order, then
// variant order, which is the authoring order within each frame.
func (s *Store) Transforms(ctx context.Context) ([]model.Transform, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label, description, frame, variant,
		delta_x, delta_y, delta_z, omega_1, omega_2, omega_3, delta_scale,
		ll_lat, ll_long, ur_lat, ur_long
		FROM transforms ORDER BY frame, variant`)
	if err != nil {
		return nil, fmt.Errorf("query transforms: %w", err)
	}
	defer rows.Close()

	var out []model.Transform
	for rows.Next() {
		var (
			t              model.Transform
			frame, ordinal int
			vals           [11]sql.NullFloat64
		)
		dest := []any{&t.Label, &t.Description, &frame, &ordinal}
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan transform: %w", err)
		}
		if t.Frame, err = model.FrameForOrdinal(frame); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", catalog.ErrMalformedRow, t.Label, err)
		}
		t.Variant = model.NewVariant(t.Frame, ordinal, t.Label)
		t.Helmert = model.Helmert{
			DeltaX:     value(vals[0]),
			DeltaY:     value(vals[1]),
			DeltaZ:     value(vals[2]),
			Omega1:     value(vals[3]),
			Omega2:     value(vals[4]),
			Omega3:     value(vals[5]),
			DeltaScale: value(vals[6]),
		}
		t.Region = model.Region{
			LowerLeftLat:   value(vals[7]),
			LowerLeftLong:  value(vals[8]),
			UpperRightLat:  value(vals[9]),
			UpperRightLong: value(vals[10]),
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !math.IsNaN(v)}
}

func value(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
