// Command hsrctl queries the datum-shift catalog from the command line and
// exports it to SQLite. Results are printed as JSON on stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/signalsfoundry/hsr-catalog/catalog"
	"github.com/signalsfoundry/hsr-catalog/internal/logging"
	"github.com/signalsfoundry/hsr-catalog/internal/rpc"
	"github.com/signalsfoundry/hsr-catalog/internal/store"
	"github.com/signalsfoundry/hsr-catalog/model"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const usage = `usage: hsrctl <command> [flags]

commands:
  lookup  -frame FRAME -variant NAME|ORDINAL        print one transform
  list    -frame FRAME                               print every variant of a frame
  cover   -frame FRAME -lat DEG -long DEG            print variants whose region contains a point
  check   -frame FRAME -variant NAME|ORDINAL -srf C  check a pair against an SRF class
  frames                                             print every frame with its variant count
  export  -out PATH                                  write the catalog to a SQLite database

FRAME is a frame name or ordinal. SRF classes: celestiocentric, celestiodetic,
spherical, local_space_2d, local_space_3d.

every command also accepts -data-dir DIR or -db PATH to read a catalog other
than the embedded one.
`

func main() {
	_ = godotenv.Load(".env")
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type command struct {
	flags   *flag.FlagSet
	dataDir *string
	dbPath  *string
	exec    func(ctx context.Context, cat *catalog.Catalog, out io.Writer) error
}

func newCommand(name string, stderr io.Writer) *command {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return &command{
		flags:   fs,
		dataDir: fs.String("data-dir", "", "directory holding frames.csv and transforms.csv"),
		dbPath:  fs.String("db", "", "SQLite catalog to read"),
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	log := logging.New(logging.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
		Output: stderr,
	})

	cmd, err := buildCommand(args[0], stderr, log)
	if err != nil {
		fmt.Fprintf(stderr, "hsrctl: %v\n\n%s", err, usage)
		return 2
	}
	if err := cmd.flags.Parse(args[1:]); err != nil {
		return 2
	}

	src, closeSrc, err := source(ctx, *cmd.dataDir, *cmd.dbPath, log)
	if err != nil {
		fmt.Fprintf(stderr, "hsrctl: %v\n", err)
		return 1
	}
	defer closeSrc()

	cat, err := catalog.Load(ctx, catalog.WithSource(src), catalog.WithLogger(log))
	if err != nil {
		fmt.Fprintf(stderr, "hsrctl: load catalog: %v\n", err)
		return 1
	}
	if err := cmd.exec(ctx, cat, stdout); err != nil {
		fmt.Fprintf(stderr, "hsrctl: %v\n", err)
		return 1
	}
	return 0
}

func buildCommand(name string, stderr io.Writer, log logging.Logger) (*command, error) {
	cmd := newCommand(name, stderr)
	switch name {
	case "lookup":
		frame := cmd.flags.String("frame", "", "frame name or ordinal, e.g. ORM_EUROPE_1950 or 72")
		variant := cmd.flags.String("variant", "", "variant name or 1-based ordinal")
		cmd.exec = func(_ context.Context, cat *catalog.Catalog, out io.Writer) error {
			f, err := parseFrame(*frame)
			if err != nil {
				return err
			}
			v, err := cat.ParseVariant(*variant)
			if err != nil {
				return err
			}
			t, err := cat.GetTransform(f, v)
			if err != nil {
				return err
			}
			return writeJSON(out, rpc.TransformToStruct(t))
		}

	case "list":
		frame := cmd.flags.String("frame", "", "frame name or ordinal")
		cmd.exec = func(_ context.Context, cat *catalog.Catalog, out io.Writer) error {
			f, err := parseFrame(*frame)
			if err != nil {
				return err
			}
			records, err := cat.Variants(f)
			if err != nil {
				return err
			}
			return writeJSON(out, transformList(records))
		}

	case "cover":
		frame := cmd.flags.String("frame", "", "frame name or ordinal")
		lat := cmd.flags.Float64("lat", 0, "latitude in degrees")
		long := cmd.flags.Float64("long", 0, "longitude in degrees")
		cmd.exec = func(_ context.Context, cat *catalog.Catalog, out io.Writer) error {
			f, err := parseFrame(*frame)
			if err != nil {
				return err
			}
			records, err := cat.Covering(f, *lat, *long)
			if err != nil {
				return err
			}
			return writeJSON(out, transformList(records))
		}

	case "check":
		frame := cmd.flags.String("frame", "", "frame name or ordinal")
		variant := cmd.flags.String("variant", "", "variant name or 1-based ordinal")
		srf := cmd.flags.String("srf", string(catalog.SRFCelestiodetic), "SRF class")
		cmd.exec = func(_ context.Context, cat *catalog.Catalog, out io.Writer) error {
			class, err := catalog.ParseSRFClass(*srf)
			if err != nil {
				return err
			}
			f, err := parseFrame(*frame)
			if err != nil {
				return err
			}
			v, err := cat.ParseVariant(*variant)
			if err != nil {
				return err
			}
			if err := cat.CheckSRF(class, f, v); err != nil {
				return err
			}
			return writeJSON(out, &structpb.Struct{Fields: map[string]*structpb.Value{
				"frame":   structpb.NewStringValue(f.String()),
				"variant": structpb.NewStringValue(*variant),
				"srf":     structpb.NewStringValue(string(class)),
				"valid":   structpb.NewBoolValue(true),
			}})
		}

	case "frames":
		cmd.exec = func(_ context.Context, cat *catalog.Catalog, out io.Writer) error {
			infos := cat.FrameInfos()
			values := make([]*structpb.Value, 0, len(infos))
			for _, info := range infos {
				count := 0
				if records, err := cat.Variants(info.Frame); err == nil {
					count = len(records)
				}
				values = append(values, structpb.NewStructValue(rpc.FrameInfoToStruct(info, count)))
			}
			return writeJSON(out, structpb.NewListValue(&structpb.ListValue{Values: values}))
		}

	case "export":
		outPath := cmd.flags.String("out", "", "SQLite database to write")
		cmd.exec = func(ctx context.Context, cat *catalog.Catalog, out io.Writer) error {
			if *outPath == "" {
				return errors.New("export: -out is required")
			}
			s, err := store.Open(ctx, *outPath, log)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.Save(ctx, cat); err != nil {
				return err
			}
			return writeJSON(out, &structpb.Struct{Fields: map[string]*structpb.Value{
				"path":       structpb.NewStringValue(*outPath),
				"transforms": structpb.NewNumberValue(float64(cat.Len())),
			}})
		}

	default:
		return nil, fmt.Errorf("unknown command %q", name)
	}
	return cmd, nil
}

func source(ctx context.Context, dataDir, dbPath string, log logging.Logger) (catalog.Source, func(), error) {
	switch {
	case dataDir != "" && dbPath != "":
		return nil, nil, errors.New("-data-dir and -db are mutually exclusive")
	case dbPath != "":
		s, err := store.Open(ctx, dbPath, log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case dataDir != "":
		return catalog.DirSource(dataDir), func() {}, nil
	default:
		return catalog.Embedded(), func() {}, nil
	}
}

// parseFrame accepts a frame name or its ordinal.
func parseFrame(s string) (model.Frame, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return catalog.FrameForOrdinal(n)
	}
	return catalog.ResolveFrame(s)
}

func transformList(records []model.Transform) *structpb.Value {
	values := make([]*structpb.Value, 0, len(records))
	for _, t := range records {
		values = append(values, structpb.NewStructValue(rpc.TransformToStruct(t)))
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

func writeJSON(out io.Writer, msg proto.Message) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}
