package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/wallmesh/internal/config"
	"github.com/Faultbox/wallmesh/internal/settings"
)

func TestInitBuildInfoOBJ(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "north.yaml")
	cfg := config.Default()
	ctx := context.Background()

	var out bytes.Buffer
	if err := run(ctx, cfg, &out, "init", []string{"-name", "North Wall", settingsPath}); err != nil {
		t.Fatalf("init: %v", err)
	}

	s, err := settings.Load(settingsPath)
	if err != nil {
		t.Fatalf("loading settings: %v", err)
	}
	if s.Output.FileName != "North Wall" {
		t.Errorf("file_name = %q, want %q", s.Output.FileName, "North Wall")
	}

	if err := run(ctx, cfg, &out, "init", []string{settingsPath}); err == nil {
		t.Error("init over an existing file should fail without -force")
	}

	out.Reset()
	if err := run(ctx, cfg, &out, "build", []string{settingsPath}); err != nil {
		t.Fatalf("build: %v", err)
	}
	meshPath := filepath.Join(dir, "North_Wall.wmsh")
	if !strings.HasPrefix(out.String(), "Created "+meshPath) {
		t.Errorf("build output = %q", out.String())
	}

	out.Reset()
	if err := run(ctx, cfg, &out, "build", []string{settingsPath}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Overwrote "+meshPath) {
		t.Errorf("rebuild output = %q", out.String())
	}

	out.Reset()
	if err := run(ctx, cfg, &out, "info", []string{meshPath}); err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"Name:      North_Wall", "Vertices:  24", "Triangles: 12", "Bounds:    (-0.5, -0.5, -0.5) - (0.5, 0.5, 0.5)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("info output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := run(ctx, cfg, &out, "obj", []string{meshPath}); err != nil {
		t.Fatalf("obj: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "North_Wall.obj"))
	if err != nil {
		t.Fatalf("reading obj: %v", err)
	}
	if got := strings.Count(string(data), "\nf "); got != 12 {
		t.Errorf("obj faces = %d, want 12", got)
	}
}

func TestBuildInvalidSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("size: [1, 1, -3]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := run(context.Background(), config.Default(), &out, "build", []string{path})
	if err == nil || !strings.Contains(err.Error(), "size.z") {
		t.Errorf("build error = %v, want invalid size.z", err)
	}
}

func TestObjRejectsWrongExtension(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), config.Default(), &out, "obj", []string{"missing.wmsh", "out.txt"})
	if err == nil {
		t.Error("expected error")
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wall.yaml")
	if err := settings.Default().SaveTo(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := run(ctx, config.Default(), &out, "watch", []string{path}); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Created ") {
		t.Errorf("watch should build once before watching, got %q", out.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), config.Default(), &out, "frobnicate", nil); err == nil {
		t.Error("expected error for unknown command")
	}
}
