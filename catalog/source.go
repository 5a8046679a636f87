package catalog

import (
	"context"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/signalsfoundry/hsr-catalog/model"
)

// ErrMalformedRow is returned when a data row cannot be decoded.
var ErrMalformedRow = errors.New("malformed catalog row")

//go:embed data/frames.csv data/transforms.csv
var embedded embed.FS

const (
	framesFile     = "frames.csv"
	transformsFile = "transforms.csv"
)

// Source yields the catalog's frame metadata and transform records. Records
// must be returned in authoring order.
type Source interface {
	Frames(ctx context.Context) ([]model.FrameInfo, error)
	Transforms(ctx context.Context) ([]model.Transform, error)
}

// CSVSource reads frames.csv and transforms.csv from a file system.
type CSVSource struct {
	FS fs.FS
}

// Embedded returns the dataset compiled into the binary.
func Embedded() CSVSource {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return CSVSource{FS: sub}
}

// DirSource reads the two tables from dir on disk.
func DirSource(dir string) CSVSource {
	return CSVSource{FS: os.DirFS(dir)}
}

var frameColumns = []string{"ordinal", "name", "published_name", "template", "reference_datum", "reference_frame"}

var transformColumns = []string{
	"label", "description", "frame", "variant",
	"delta_x", "delta_y", "delta_z", "omega_1", "omega_2", "omega_3", "delta_scale",
	"ll_lat", "ll_long", "ur_lat", "ur_long",
}

// Frames decodes frames.csv.
func (s CSVSource) Frames(ctx context.Context) ([]model.FrameInfo, error) {
	var out []model.FrameInfo
	err := s.readTable(ctx, framesFile, frameColumns, func(line int, row map[string]string) error {
		info, err := decodeFrame(row)
		if err != nil {
			return fmt.Errorf("%w: %s line %d: %v", ErrMalformedRow, framesFile, line, err)
		}
		out = append(out, info)
		return nil
	})
	return out, err
}

// Transforms decodes transforms.csv.
func (s CSVSource) Transforms(ctx context.Context) ([]model.Transform, error) {
	var out []model.Transform
	err := s.readTable(ctx, transformsFile, transformColumns, func(line int, row map[string]string) error {
		t, err := decodeTransform(row)
		if err != nil {
			return fmt.Errorf("%w: %s line %d: %v", ErrMalformedRow, transformsFile, line, err)
		}
		out = append(out, t)
		return nil
	})
	return out, err
}

func (s CSVSource) readTable(ctx context.Context, name string, columns []string, fn func(line int, row map[string]string) error) error {
	if s.FS == nil {
		return fmt.Errorf("catalog: nil file system for %s", name)
	}
	f, err := s.FS.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("%w: %s header: %v", ErrMalformedRow, name, err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%w: %s missing column %q", ErrMalformedRow, name, col)
		}
	}

	row := make(map[string]string, len(columns))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedRow, name, err)
		}
		line, _ := r.FieldPos(0)
		if len(rec) != len(header) {
			return fmt.Errorf("%w: %s line %d: %d fields, header has %d", ErrMalformedRow, name, line, len(rec), len(header))
		}
		for _, col := range columns {
			row[col] = rec[index[col]]
		}
		if err := fn(line, row); err != nil {
			return err
		}
	}
}

func decodeFrame(row map[string]string) (model.FrameInfo, error) {
	frame, err := model.ParseFrame(row["name"])
	if err != nil {
		return model.FrameInfo{}, err
	}
	ordinal, err := strconv.Atoi(row["ordinal"])
	if err != nil {
		return model.FrameInfo{}, fmt.Errorf("ordinal: %w", err)
	}
	if ordinal != frame.Ordinal() {
		return model.FrameInfo{}, fmt.Errorf("%s has ordinal %d, table says %d", frame, frame.Ordinal(), ordinal)
	}
	tmpl, ok := model.ParseTemplate(row["template"])
	if !ok {
		return model.FrameInfo{}, fmt.Errorf("unknown template %q", row["template"])
	}
	ref, err := model.ParseFrame(row["reference_frame"])
	if err != nil {
		return model.FrameInfo{}, fmt.Errorf("reference frame: %w", err)
	}
	return model.FrameInfo{
		Frame:          frame,
		PublishedName:  row["published_name"],
		Template:       tmpl,
		ReferenceDatum: row["reference_datum"],
		ReferenceFrame: ref,
	}, nil
}

func decodeTransform(row map[string]string) (model.Transform, error) {
	frame, err := model.ParseFrame(row["frame"])
	if err != nil {
		return model.Transform{}, err
	}
	ordinal, err := strconv.Atoi(row["variant"])
	if err != nil {
		return model.Transform{}, fmt.Errorf("variant: %w", err)
	}

	var vals [11]float64
	for i, col := range transformColumns[4:] {
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			return model.Transform{}, fmt.Errorf("%s: %w", col, err)
		}
		vals[i] = v
	}

	label := row["label"]
	return model.Transform{
		Label:       label,
		Description: row["description"],
		Frame:       frame,
		Variant:     model.NewVariant(frame, ordinal, label),
		Helmert: model.Helmert{
			DeltaX:     vals[0],
			DeltaY:     vals[1],
			DeltaZ:     vals[2],
			Omega1:     vals[3],
			Omega2:     vals[4],
			Omega3:     vals[5],
			DeltaScale: vals[6],
		},
		Region: model.Region{
			LowerLeftLat:   vals[7],
			LowerLeftLong:  vals[8],
			UpperRightLat:  vals[9],
			UpperRightLong: vals[10],
		},
	}, nil
}
