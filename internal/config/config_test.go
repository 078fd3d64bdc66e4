package config

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/Faultbox/flatland/pkg/noise"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Terrain defaults
	if cfg.Terrain.Width != 128 {
		t.Errorf("expected width 128, got %d", cfg.Terrain.Width)
	}
	if cfg.Terrain.Height != 128 {
		t.Errorf("expected height 128, got %d", cfg.Terrain.Height)
	}
	if cfg.Terrain.Scale != 100.0 {
		t.Errorf("expected scale 100, got %f", cfg.Terrain.Scale)
	}
	if cfg.Terrain.ComponentSizeQuads != 63 || cfg.Terrain.SubsectionSizeQuads != 63 {
		t.Errorf("expected 63 quads per component and subsection, got %d/%d",
			cfg.Terrain.ComponentSizeQuads, cfg.Terrain.SubsectionSizeQuads)
	}
	if cfg.Terrain.BaseElevation != 32768 {
		t.Errorf("expected base elevation 32768, got %f", cfg.Terrain.BaseElevation)
	}

	// Noise defaults
	if cfg.Noise.Kind != noise.Perlin {
		t.Errorf("expected perlin noise, got %s", cfg.Noise.Kind)
	}
	if cfg.Noise.Seed != 1337 {
		t.Errorf("expected seed 1337, got %d", cfg.Noise.Seed)
	}
	if cfg.Noise.Scale != 1.0 || cfg.Noise.Intensity != 1000.0 {
		t.Errorf("expected scale 1 and intensity 1000, got %f/%f", cfg.Noise.Scale, cfg.Noise.Intensity)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "flatland.yaml")

	yamlContent := `
terrain:
  width: 505
  height: 253
  scale: 50
  component_size_quads: 126
  num_subsections: 2
  subsection_size_quads: 63
  position: [100, -200, 0]
  label: "Plains"

noise:
  kind: simplex_fractal
  seed: 7
  frequency: 0.02
  octaves: 5
  fractal: rigid_multi
  interp: quintic
  scale: 2.0
  intensity: 3000
  workers: 4

output:
  dir: "out"
  preview: "preview.tiff"
  preview16: true

logging:
  level: "debug"
  log_file: "flatland.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.Width != 505 || cfg.Terrain.Height != 253 {
		t.Errorf("expected 505x253, got %dx%d", cfg.Terrain.Width, cfg.Terrain.Height)
	}
	if cfg.Terrain.NumSubsections != 2 {
		t.Errorf("expected 2 subsections, got %d", cfg.Terrain.NumSubsections)
	}
	if cfg.Terrain.Position != [3]float64{100, -200, 0} {
		t.Errorf("unexpected position %v", cfg.Terrain.Position)
	}
	if cfg.Terrain.Label != "Plains" {
		t.Errorf("expected label Plains, got %s", cfg.Terrain.Label)
	}
	// Untouched keys keep their defaults.
	if cfg.Terrain.BaseElevation != 32768 {
		t.Errorf("expected default base elevation, got %f", cfg.Terrain.BaseElevation)
	}

	if cfg.Noise.Kind != noise.SimplexFractal {
		t.Errorf("expected simplex_fractal, got %s", cfg.Noise.Kind)
	}
	if cfg.Noise.Fractal != noise.RigidMulti {
		t.Errorf("expected rigid_multi, got %s", cfg.Noise.Fractal)
	}
	if cfg.Noise.Interp != noise.Quintic {
		t.Errorf("expected quintic, got %s", cfg.Noise.Interp)
	}
	if cfg.Noise.Octaves != 5 || cfg.Noise.Seed != 7 {
		t.Errorf("expected octaves 5 seed 7, got %d/%d", cfg.Noise.Octaves, cfg.Noise.Seed)
	}
	if cfg.Noise.Lacunarity != 2.0 {
		t.Errorf("expected default lacunarity, got %f", cfg.Noise.Lacunarity)
	}
	if got := cfg.Noise.Sampling(); got.Scale != 2.0 || got.Intensity != 3000 {
		t.Errorf("unexpected sampling params %+v", got)
	}
	if cfg.Noise.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Noise.Workers)
	}

	if cfg.Output.Preview != "preview.tiff" || !cfg.Output.Preview16 {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if cfg.Output.Raw != "heightmap.r16" {
		t.Errorf("expected default raw name, got %s", cfg.Output.Raw)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax": `
terrain:
  width: not a number
  invalid syntax here
`,
		"unknown kind": `
noise:
  kind: cubic
`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/flatland.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile("flatland.yaml", []byte("terrain:\n  width: 64\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find flatland.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "width and height flags",
			args: []string{"-width", "257", "-height", "129"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Width != 257 || cfg.Terrain.Height != 129 {
					t.Errorf("expected 257x129, got %dx%d", cfg.Terrain.Width, cfg.Terrain.Height)
				}
			},
		},
		{
			name: "zero seed is applied",
			args: []string{"-seed", "0"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Noise.Seed != 0 {
					t.Errorf("expected seed 0, got %d", cfg.Noise.Seed)
				}
			},
		},
		{
			name: "unset seed keeps default",
			args: []string{},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Noise.Seed != 1337 {
					t.Errorf("expected seed 1337, got %d", cfg.Noise.Seed)
				}
				if cfg.Noise.Workers != 0 {
					t.Errorf("expected default workers, got %d", cfg.Noise.Workers)
				}
			},
		},
		{
			name: "noise kind and output",
			args: []string{"-noise", "cellular", "-out", "/tmp/terrain", "-workers", "1"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Noise.Kind != noise.Cellular {
					t.Errorf("expected cellular, got %s", cfg.Noise.Kind)
				}
				if cfg.Output.Dir != "/tmp/terrain" {
					t.Errorf("expected out dir /tmp/terrain, got %s", cfg.Output.Dir)
				}
				if cfg.Noise.Workers != 1 {
					t.Errorf("expected 1 worker, got %d", cfg.Noise.Workers)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			flags := RegisterFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}

			cfg := Default()
			if err := flags.apply(cfg); err != nil {
				t.Fatalf("apply: %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsInvalid(t *testing.T) {
	tests := map[string][]string{
		"unknown noise kind": {"-noise", "cubic"},
		"seed above int32":   {"-seed", "2147483648"},
		"seed below int32":   {"-seed", "-2147483649"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			flags := RegisterFlags(fs)
			if err := fs.Parse(args); err != nil {
				t.Fatalf("parse: %v", err)
			}

			cfg := Default()
			if err := flags.apply(cfg); err == nil {
				t.Errorf("expected error for %v", args)
			}
			if cfg.Noise.Seed != 1337 {
				t.Errorf("seed changed to %d on invalid input", cfg.Noise.Seed)
			}
		})
	}
}

func TestApplyFlagsSeedLimits(t *testing.T) {
	for _, seed := range []string{"2147483647", "-2147483648"} {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		flags := RegisterFlags(fs)
		if err := fs.Parse([]string{"-seed", seed}); err != nil {
			t.Fatalf("parse: %v", err)
		}

		cfg := Default()
		if err := flags.apply(cfg); err != nil {
			t.Fatalf("apply -seed %s: %v", seed, err)
		}
		if got := strconv.Itoa(int(cfg.Noise.Seed)); got != seed {
			t.Errorf("expected seed %s, got %s", seed, got)
		}
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "flatland.yaml")

	yamlContent := `
terrain:
  width: 1009
  height: 505
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-width", "2017"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag, height from file.
	if cfg.Terrain.Width != 2017 {
		t.Errorf("expected width 2017 from flag, got %d", cfg.Terrain.Width)
	}
	if cfg.Terrain.Height != 505 {
		t.Errorf("expected height 505 from file, got %d", cfg.Terrain.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "flatland.yaml")

	cfg := Default()
	cfg.Noise.Kind = noise.Cellular
	cfg.Noise.CellularReturn = noise.Distance2Add
	cfg.Terrain.Width = 33

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	back := Default()
	if err := loadFromFile(back, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *back != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", back, cfg)
	}
}
