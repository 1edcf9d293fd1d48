// boxtool is a CLI utility for inspecting solids files and applying
// exported transforms without opening the editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/Faultbox/boxedit/internal/config"
	"github.com/Faultbox/boxedit/internal/editor"
	"github.com/Faultbox/boxedit/internal/scene"
	"github.com/Faultbox/boxedit/pkg/formats"
	"github.com/Faultbox/boxedit/pkg/geom"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "center":
		cmdCenter(args)
	case "mesh":
		cmdMesh(args)
	case "export":
		cmdExport(args)
	case "bake":
		cmdBake(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`boxtool - solids file utility

Usage:
  boxtool <command> [options]

Commands:
  info <data.json>                   Show solids, colors and skipped records
  center <data.json>                 Print the camera anchor
  mesh [-i N] <data.json>            Print corners and triangles of solid N
  export [-o out] <data.json>        Write an identity transform export
  bake [-o out] <data.json> <mod>    Apply exported transforms to the solids
  config [-o out]                    Write the effective config as YAML
                                     (default: the user config directory)

Every command accepts -config <file> to override calibration and tolerance.

Examples:
  boxtool info data.json
  boxtool mesh -i 3 data.json
  boxtool bake -o baked.json data.json modified_data.json
  boxtool config -o config.yaml`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// tools holds the geometry collaborators built from the config file.
type tools struct {
	builder    *geom.Builder
	normalizer *geom.Normalizer
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	path := fs.String("config", "", "Path to config file")
	return fs, path
}

func loadTools(configPath string) tools {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		fail(err)
	}
	n, err := geom.NewNormalizer(cfg.Calibration)
	if err != nil {
		fail(err)
	}
	return tools{builder: geom.NewBuilder(cfg.Editor.OrthoTolerance), normalizer: n}
}

func loadScene(fs *flag.FlagSet, configPath string, usage string) *scene.Scene {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: boxtool "+usage)
		os.Exit(1)
	}
	t := loadTools(configPath)
	s, err := scene.Load(fs.Arg(0), t.builder, t.normalizer)
	if err != nil {
		fail(err)
	}
	return s
}

func cmdInfo(args []string) {
	fs, configPath := newFlagSet("info")
	fs.Parse(args)
	s := loadScene(fs, *configPath, "info <data.json>")

	fmt.Printf("File:    %s\n", fs.Arg(0))
	fmt.Printf("Solids:  %d\n", s.Len())
	fmt.Printf("Built:   %d\n", s.Built())
	if !s.Bounds.IsEmpty() {
		fmt.Printf("Bounds:  (%.4f, %.4f, %.4f) - (%.4f, %.4f, %.4f)\n",
			s.Bounds.Min.X, s.Bounds.Min.Y, s.Bounds.Min.Z,
			s.Bounds.Max.X, s.Bounds.Max.Y, s.Bounds.Max.Z)
	}
	if s.HasAnchor {
		fmt.Printf("Anchor:  (%.4f, %.4f, %.4f)\n", s.Anchor.X, s.Anchor.Y, s.Anchor.Z)
	}
	fmt.Println()

	for i := range s.Solids {
		sol := &s.Solids[i]
		r := sol.Record
		if sol.Skipped() {
			fmt.Printf("  %3d  skipped\n", i)
			continue
		}
		hand := "right"
		if !geom.RightHanded(r.Normals) {
			hand = "left"
		}
		fmt.Printf("  %3d  %s  hue %5.1f  %-5s  center (%.4f, %.4f, %.4f)  extents (%.4f, %.4f, %.4f)\n",
			i, sol.Geometry.Color.Hex(), sol.Geometry.Color.Hue(), hand,
			r.Center.X, r.Center.Y, r.Center.Z,
			r.Extents[0], r.Extents[1], r.Extents[2])
	}

	if s.BuildErr != nil {
		fmt.Println()
		fmt.Println("Errors:")
		for _, err := range multierr.Errors(s.BuildErr) {
			fmt.Printf("  %v\n", err)
		}
	}
}

func cmdCenter(args []string) {
	fs, configPath := newFlagSet("center")
	fs.Parse(args)
	s := loadScene(fs, *configPath, "center <data.json>")

	if !s.HasAnchor {
		fail(errors.New("no solid could be built"))
	}
	fmt.Printf("%g %g %g\n", s.Anchor.X, s.Anchor.Y, s.Anchor.Z)
}

func cmdMesh(args []string) {
	fs, configPath := newFlagSet("mesh")
	index := fs.Int("i", 0, "Solid index")
	fs.Parse(args)
	s := loadScene(fs, *configPath, "mesh [-i N] <data.json>")

	if *index < 0 || *index >= s.Len() {
		fail(fmt.Errorf("index %d out of range [0,%d)", *index, s.Len()))
	}
	sol := &s.Solids[*index]
	if sol.Skipped() {
		fail(fmt.Errorf("solid %d was skipped", *index))
	}

	fmt.Printf("Solid %d, color %s\n", *index, sol.Geometry.Color.Hex())
	fmt.Println("Corners:")
	for i, c := range sol.Geometry.Corners {
		fmt.Printf("  %d  %+.6f %+.6f %+.6f\n", i, c.X, c.Y, c.Z)
	}
	fmt.Println("Triangles:")
	idx := sol.Geometry.Indices()
	for i := 0; i+2 < len(idx); i += 3 {
		fmt.Printf("  %d %d %d\n", idx[i], idx[i+1], idx[i+2])
	}
}

func cmdExport(args []string) {
	fs, configPath := newFlagSet("export")
	out := fs.String("o", "modified_data.json", "Output file")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: boxtool export [-o out] <data.json>")
		os.Exit(1)
	}
	// The config is still validated so a broken file is reported here too.
	loadTools(*configPath)

	records, err := formats.ParseSolidsFile(fs.Arg(0))
	if err != nil {
		fail(err)
	}
	doc := editor.NewSession(len(records)).Export()
	if err := formats.WriteExport(*out, doc); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %d identity transforms to %s\n", doc.Len(), *out)
}

func cmdBake(args []string) {
	fs, configPath := newFlagSet("bake")
	out := fs.String("o", "baked_data.json", "Output file")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: boxtool bake [-o out] <data.json> <modified_data.json>")
		os.Exit(1)
	}
	t := loadTools(*configPath)

	records, err := formats.ParseSolidsFile(fs.Arg(0))
	if err != nil {
		fail(err)
	}
	doc, err := formats.ParseExportFile(fs.Arg(1))
	if err != nil {
		fail(err)
	}

	session := editor.NewSession(len(records))
	if err := session.Restore(doc); err != nil {
		fail(err)
	}
	baked, err := editor.Bake(records, session.States(), t.builder)
	if err != nil {
		fail(err)
	}

	data, err := formats.EncodeSolids(baked)
	if err != nil {
		fail(err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fail(err)
	}
	fmt.Printf("Baked %d solids into %s\n", len(baked), *out)
}

func cmdConfig(args []string) {
	fs, configPath := newFlagSet("config")
	out := fs.String("o", "", "Output file (default: user config directory)")
	fs.Parse(args)

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fail(err)
	}

	if *out == "" {
		if err := cfg.Save(); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote config to %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
		return
	}
	if err := cfg.SaveTo(*out); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote config to %s\n", *out)
}
