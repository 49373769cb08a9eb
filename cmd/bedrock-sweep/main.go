// Command bedrock-sweep generates synthetic bedrock maps over a range of
// bedrock fractions, scores a chosen error model against each one, and
// writes the accuracy table, a run summary and plots.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/banshee-data/synthetic-bedrock/internal/bedrock"
	"github.com/banshee-data/synthetic-bedrock/internal/config"
	"github.com/banshee-data/synthetic-bedrock/internal/monitoring"
	"github.com/banshee-data/synthetic-bedrock/internal/render"
	"github.com/banshee-data/synthetic-bedrock/internal/security"
	"github.com/banshee-data/synthetic-bedrock/internal/sweep"
	"github.com/banshee-data/synthetic-bedrock/internal/version"
)

// Output file names inside the run directory.
const (
	accuracyCSVName = "accuracy_metrics.csv"
	summaryName     = "summary.json"
	pngName         = "accuracy.png"
	htmlName        = "accuracy.html"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("bedrock-sweep: %v", err)
	}
}

// options holds the command-line flags. Only flags the user sets override
// the config file.
type options struct {
	configPath string
	showVer    bool
	quiet      bool

	length    int
	scale     int
	scenario  string
	constFrac float64
	offset    int
	rate      float64
	fractions string
	display   float64
	truthSeed int64
	modelSeed int64
	workers   int
	output    string
	runID     string
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	o := &options{}
	fs := flag.NewFlagSet("bedrock-sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.configPath, "config", "", "Sweep config JSON (defaults to "+config.DefaultConfigPath+" when present, else built-in values)")
	fs.BoolVar(&o.showVer, "version", false, "Print version and exit")
	fs.BoolVar(&o.quiet, "quiet", false, "Suppress progress logging")

	fs.IntVar(&o.length, "length", 100, "Grid side length in cells")
	fs.IntVar(&o.scale, "scale", 2, "Tor side length in cells")
	fs.StringVar(&o.scenario, "scenario", "com", "Error model: con, ind, ran, sys, com (or 1-5)")
	fs.Float64Var(&o.constFrac, "con", 0, "Bedrock fraction of the constant model (con)")
	fs.IntVar(&o.offset, "offset", 3, "Column offset in cells (sys, com)")
	fs.Float64Var(&o.rate, "rate", 0.05, "Random flip probability (ran, com)")
	fs.StringVar(&o.fractions, "fractions", "", "Target fractions: comma list or start:end:step (overrides config range)")
	fs.Float64Var(&o.display, "display", 0.5, "Bedrock fraction of the plotted classified map")
	fs.Int64Var(&o.truthSeed, "truth-seed", 1, "Seed for truth grids")
	fs.Int64Var(&o.modelSeed, "model-seed", 2, "Seed for model grids")
	fs.IntVar(&o.workers, "workers", 1, "Parallel sweep iterations")
	fs.StringVar(&o.output, "output", "", "Output directory (a run subdirectory is created inside)")
	fs.StringVar(&o.runID, "run-id", "", "Run ID (defaults to a random UUID)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return o, fs, nil
}

// loadConfig reads the config file, if any, and applies explicitly set flags
// on top of it.
func loadConfig(o *options, fs *flag.FlagSet) (*config.SweepConfig, error) {
	cfg := config.EmptySweepConfig()
	path := o.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultConfigPath); err == nil {
			path = config.DefaultConfigPath
		}
	}
	if path != "" {
		loaded, err := config.LoadSweepConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "length":
			cfg.Length = &o.length
		case "scale":
			cfg.Scale = &o.scale
		case "scenario":
			cfg.Scenario = &o.scenario
		case "con":
			cfg.ConstantFraction = &o.constFrac
		case "offset":
			cfg.Offset = &o.offset
		case "rate":
			cfg.ErrorRate = &o.rate
		case "display":
			cfg.DisplayFraction = &o.display
		case "truth-seed":
			cfg.TruthSeed = &o.truthSeed
		case "model-seed":
			cfg.ModelSeed = &o.modelSeed
		case "workers":
			cfg.Workers = &o.workers
		case "output":
			cfg.OutputDir = &o.output
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildSweepConfig turns the validated file/flag config into the driver's
// run configuration.
func buildSweepConfig(cfg *config.SweepConfig, fractions, runID string) (sweep.Config, error) {
	scenario, err := cfg.GetScenario()
	if err != nil {
		return sweep.Config{}, err
	}

	fracs := sweep.Linspace(cfg.GetFractionStart(), cfg.GetFractionEnd(), cfg.GetFractionCount())
	if fractions != "" {
		fracs, err = sweep.ParseFractions(fractions)
		if err != nil {
			return sweep.Config{}, err
		}
	}

	return sweep.Config{
		Length:    cfg.GetLength(),
		Scale:     cfg.GetScale(),
		Fractions: fracs,
		TruthSeed: cfg.GetTruthSeed(),
		Model: bedrock.ErrorModel{
			Scenario:         scenario,
			ConstantFraction: cfg.GetConstantFraction(),
			Offset:           cfg.GetOffset(),
			ErrorRate:        cfg.GetErrorRate(),
			Seed:             cfg.GetModelSeed(),
			Scale:            cfg.GetScale(),
		},
		DisplayFraction: cfg.GetDisplayFraction(),
		Workers:         cfg.GetWorkers(),
		RunID:           runID,
	}, nil
}

// writeOutputs writes every artefact of res into dir, creating it first.
func writeOutputs(dir string, cfg sweep.Config, res *sweep.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	writers := []struct {
		name  string
		write func(io.Writer) error
	}{
		{accuracyCSVName, func(w io.Writer) error { return sweep.WriteAccuracyCSV(w, res) }},
		{summaryName, func(w io.Writer) error { return sweep.WriteSummary(w, sweep.NewSummary(cfg, res)) }},
		{pngName, func(w io.Writer) error { return render.WritePNG(w, res) }},
		{htmlName, func(w io.Writer) error { return render.WriteHTML(w, res) }},
	}
	for _, wr := range writers {
		if err := writeFile(filepath.Join(dir, wr.name), wr.write); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, fs, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	if o.showVer {
		fmt.Fprintf(stdout, "bedrock-sweep %s\n", version.String())
		return nil
	}
	if o.quiet {
		defer monitoring.Quiet()()
	}

	cfg, err := loadConfig(o, fs)
	if err != nil {
		return err
	}
	sc, err := buildSweepConfig(cfg, o.fractions, o.runID)
	if err != nil {
		return err
	}

	res, err := sweep.Run(ctx, sc)
	if err != nil {
		return err
	}

	dir, err := security.RunDir(cfg.GetOutputDir(), res.RunID)
	if err != nil {
		return err
	}
	if err := writeOutputs(dir, sc, res); err != nil {
		return err
	}

	monitoring.Logf("Sweep complete: %d fractions, RMSD=%.6f", len(res.Rows), res.RMSD)
	monitoring.Logf("Results: %s", dir)
	fmt.Fprintln(stdout, dir)
	return nil
}
