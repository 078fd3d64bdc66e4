// flatland generates noise-perturbed flat terrain heightmaps for import into
// a terrain system.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "generate", "gen":
		err = cmdGenerate(args)
	case "info":
		err = cmdInfo(args)
	case "probe":
		err = cmdProbe(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`flatland - flat terrain heightmap generator

Usage:
  flatland <command> [options]

Commands:
  generate [flags]                 Synthesize a heightmap and write raw, manifest and preview
  info <manifest.yaml>             Show heightmap statistics and layout
  probe <manifest.yaml> <x> <y>    Interpolated height at grid coordinates
  config [flags] [path]            Write the effective config as YAML

Flags (generate, config):
  -config <file>   Config file (default ./flatland.yaml or user config dir)
  -width, -height  Grid size in samples
  -seed <n>        Noise seed
  -noise <kind>    value, perlin, simplex (optionally *_fractal), cellular, white
  -out <dir>       Output directory
  -workers <n>     Synthesis workers (0 = all CPUs, 1 = sequential)
  -debug           Debug logging

Examples:
  flatland generate -width 505 -height 505 -noise simplex_fractal -out ./terrain
  flatland info ./terrain/heightmap.yaml
  flatland probe ./terrain/heightmap.yaml 10.5 20.25`)
}
