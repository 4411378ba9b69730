// wallmesh builds box wall meshes from settings files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/wallmesh/internal/assets"
	"github.com/Faultbox/wallmesh/internal/config"
	"github.com/Faultbox/wallmesh/internal/logger"
	"github.com/Faultbox/wallmesh/internal/settings"
	"github.com/Faultbox/wallmesh/internal/watch"
	"github.com/Faultbox/wallmesh/pkg/formats"
)

var errUsage = errors.New("usage")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, args[0], args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, out io.Writer, command string, args []string) error {
	switch command {
	case "init":
		return cmdInit(out, args)
	case "build", "b":
		return cmdBuild(cfg, out, args)
	case "info":
		return cmdInfo(out, args)
	case "obj":
		return cmdOBJ(out, args)
	case "watch", "w":
		return cmdWatch(ctx, cfg, out, args)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `wallmesh - box wall mesh builder

Usage:
  wallmesh [flags] <command> [options]

Commands:
  init [-name label] [-force] <wall.yaml>  Write default build settings
  build <wall.yaml>                        Build the mesh asset once
  info <mesh.wmsh>                         Show mesh asset information
  obj <mesh.wmsh> [out.obj]                Convert a mesh asset to OBJ
  watch <wall.yaml>                        Rebuild on every settings save

Flags:
  -config path    Config file
  -debug          Debug logging
  -log-file path  Also log to a rotating file
  -format fmt     Output format: wmsh, obj or both
  -out-dir dir    Directory for newly created assets

Examples:
  wallmesh init -name "North Wall" north.yaml
  wallmesh -format both build north.yaml
  wallmesh info North_Wall.wmsh`)
}

func usage(w io.Writer, line string) error {
	fmt.Fprintf(w, "Usage: wallmesh %s\n", line)
	return errUsage
}

func cmdInit(out io.Writer, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	name := fs.String("name", settings.DefaultFileName, "Asset label")
	force := fs.Bool("force", false, "Overwrite an existing settings file")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		return usage(os.Stderr, "init [-name label] [-force] <wall.yaml>")
	}
	path := fs.Arg(0)

	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}

	s := settings.Default()
	s.Output.FileName = *name
	if err := s.SaveTo(path); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}

func cmdBuild(cfg *config.Config, out io.Writer, args []string) error {
	if len(args) < 1 {
		return usage(os.Stderr, "build <wall.yaml>")
	}

	b := assets.NewBuilder(assets.NewStore(), cfg.Output)
	res, err := b.Build(args[0])
	if err != nil {
		return err
	}
	printResult(out, res)
	return nil
}

func printResult(out io.Writer, res *assets.BuildResult) {
	action := "Overwrote"
	if res.Created {
		action = "Created"
	}
	fmt.Fprintf(out, "%s %s (%d vertices, %d triangles)\n",
		action, res.Path, res.Mesh.VertexCount(), res.Mesh.TriangleCount())
	for _, p := range res.Extra {
		fmt.Fprintf(out, "  also %s\n", p)
	}
}

func cmdInfo(out io.Writer, args []string) error {
	if len(args) < 1 {
		return usage(os.Stderr, "info <mesh.wmsh>")
	}

	asset, err := formats.ParseWMSHFile(args[0])
	if err != nil {
		return err
	}
	m := asset.Mesh
	b := m.Bounds

	fmt.Fprintf(out, "File:      %s\n", args[0])
	fmt.Fprintf(out, "Name:      %s\n", asset.Name)
	fmt.Fprintf(out, "Version:   %s\n", asset.Version)
	fmt.Fprintf(out, "Vertices:  %d\n", m.VertexCount())
	fmt.Fprintf(out, "Indices:   %d\n", len(m.Indices))
	fmt.Fprintf(out, "Triangles: %d\n", m.TriangleCount())
	fmt.Fprintf(out, "Bounds:    (%g, %g, %g) - (%g, %g, %g)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	return nil
}

func cmdOBJ(out io.Writer, args []string) error {
	if len(args) < 1 {
		return usage(os.Stderr, "obj <mesh.wmsh> [out.obj]")
	}

	asset, err := formats.ParseWMSHFile(args[0])
	if err != nil {
		return err
	}

	dst := strings.TrimSuffix(args[0], filepath.Ext(args[0])) + assets.ExtOBJ
	if len(args) > 1 {
		dst = args[1]
	}
	if !strings.EqualFold(filepath.Ext(dst), assets.ExtOBJ) {
		return fmt.Errorf("output %s must have %s extension", dst, assets.ExtOBJ)
	}

	h, _, err := assets.NewStore().Put(dst, asset.Name, asset.Mesh)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", h.Path)
	return nil
}

func cmdWatch(ctx context.Context, cfg *config.Config, out io.Writer, args []string) error {
	if len(args) < 1 {
		return usage(os.Stderr, "watch <wall.yaml>")
	}
	path := args[0]

	b := assets.NewBuilder(assets.NewStore(), cfg.Output)
	rebuild := func() {
		res, err := b.Build(path)
		if err != nil {
			// Keep watching; the next save may fix it.
			logger.Error("build failed", zap.String("settings", path), zap.Error(err))
			fmt.Fprintf(out, "Build failed: %v\n", err)
			return
		}
		printResult(out, res)
	}

	rebuild()
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", path)
	return watch.Run(ctx, path, cfg.Watch.Debounce, rebuild)
}
