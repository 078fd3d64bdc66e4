package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/flatland/internal/config"
	"github.com/Faultbox/flatland/internal/landscape"
	"github.com/Faultbox/flatland/internal/logger"
	"github.com/Faultbox/flatland/pkg/heightmap"
)

func loadConfig(name string, args []string) (*config.Config, *flag.FlagSet, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}
	return cfg, fs, nil
}

func cmdGenerate(args []string) error {
	cfg, _, err := loadConfig("generate", args)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	logger.Debug("config loaded",
		zap.Any("terrain", cfg.Terrain),
		zap.Any("noise", cfg.Noise),
		zap.Any("output", cfg.Output))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := landscape.NewBuilder(cfg, nil, logger.Named("landscape"))
	ls, err := b.Build(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Warn("synthesis interrupted, nothing exported")
		return err
	}
	if err != nil {
		logger.Error("synthesis aborted", zap.Error(err))
		return err
	}

	out := cfg.Output
	if err := ls.Export(out.Dir, out.Raw, out.Manifest, out.Preview, out.Preview16, logger.Named("preview")); err != nil {
		return err
	}

	logger.Info("heightmap exported", zap.String("dir", out.Dir))
	return nil
}

// loadManifest reads a manifest and the raw heightmap it points at.
func loadManifest(path string) (*landscape.Manifest, *heightmap.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var m landscape.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Raw == "" {
		return nil, nil, fmt.Errorf("manifest %s names no raw file", path)
	}

	rawPath := m.Raw
	if !filepath.IsAbs(rawPath) {
		rawPath = filepath.Join(filepath.Dir(path), rawPath)
	}
	g, err := landscape.ReadRaw(rawPath, m.Width, m.Height)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", rawPath, err)
	}
	return &m, g, nil
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: flatland info <manifest.yaml>")
		os.Exit(1)
	}

	m, g, err := loadManifest(args[0])
	if err != nil {
		return err
	}

	st := g.Stats()
	l := m.Layout
	fmt.Printf("Label:      %s\n", m.Label)
	fmt.Printf("Raw:        %s (%s)\n", m.Raw, m.Format)
	fmt.Printf("Size:       %d x %d samples\n", g.Width, g.Height)
	fmt.Printf("Heights:    min %d  max %d  mean %.1f\n", st.Min, st.Max, st.Mean)
	fmt.Printf("Components: %d x %d of %d quads (%d x %d subsections)\n",
		l.ComponentsX, l.ComponentsY, l.ComponentSizeQuads, l.NumSubsections, l.SubsectionSizeQuads)
	fmt.Printf("Position:   %.1f, %.1f, %.1f  scale %.2f\n",
		m.Transform.Position[0], m.Transform.Position[1], m.Transform.Position[2], m.Transform.Scale)
	fmt.Printf("Bounds:     %v - %v\n", m.Bounds.Min, m.Bounds.Max)
	return nil
}

func cmdProbe(args []string) error {
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "Usage: flatland probe <manifest.yaml> <x> <y>")
		os.Exit(1)
	}

	x, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("y: %w", err)
	}

	m, g, err := loadManifest(args[0])
	if err != nil {
		return err
	}

	h := g.HeightAt(x, y)
	world := (h - heightmap.BaseElevation) * landscape.HeightScale * m.Transform.Scale
	fmt.Printf("(%g, %g): height %.2f  world z %.2f\n", x, y, h, m.Transform.Position[2]+world)
	return nil
}

func cmdConfig(args []string) error {
	cfg, fs, err := loadConfig("config", args)
	if err != nil {
		return err
	}

	if fs.NArg() > 0 {
		return cfg.SaveTo(fs.Arg(0))
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	return nil
}
