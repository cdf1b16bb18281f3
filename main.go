package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/relabel/classmatch/internal/config"
	"github.com/relabel/classmatch/pkg/assemble"
	"github.com/relabel/classmatch/pkg/classify"
	"github.com/relabel/classmatch/pkg/match"
	"github.com/relabel/classmatch/pkg/model"
	"github.com/relabel/classmatch/pkg/report"
	"github.com/relabel/classmatch/pkg/utils"
	"github.com/relabel/classmatch/pkg/version"
)

func main() {
	var (
		namedPath   = flag.String("named", "", "Path to the named (source) image JSON document")
		unnamedPath = flag.String("unnamed", "", "Path to the unnamed (target) image JSON document")
		configPath  = flag.String("config", "", "Path to a TOML configuration file overriding the defaults")
		levels      = flag.String("levels", "", "Comma-separated subset of levels to run (INITIAL,SECONDARY,EXTRA,FINAL); default is all")
		parallelism = flag.Int("parallelism", 0, "Number of goroutines used to rank candidates concurrently; overrides configuration")
		verbose     = flag.Bool("v", false, "Verbose logging")
		outputPath  = flag.String("o", "", "Write the report to this file instead of stdout")
		showVersion = flag.Bool("version", false, "Show version information and exit")
	)
	flag.Parse()

	if *showVersion {
		if *verbose {
			fmt.Println(version.GetFullVersionString())
		} else {
			fmt.Println(version.GetVersionWithCommit())
		}
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: func() slog.Level {
			if *verbose {
				return slog.LevelDebug
			}
			return slog.LevelInfo
		}(),
	}))

	if *namedPath == "" || *unnamedPath == "" {
		log.Fatal("both --named and --unnamed image paths are required")
	}
	if !utils.FileExists(*namedPath) {
		log.Fatalf("named image file does not exist: %s", *namedPath)
	}
	if !utils.FileExists(*unnamedPath) {
		log.Fatalf("unnamed image file does not exist: %s", *unnamedPath)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if *levels != "" {
		cfg.Levels = utils.ParseCommaDelimited(*levels)
	}
	if *parallelism > 0 {
		cfg.Parallelism = *parallelism
	}

	named, err := loadImage(*namedPath)
	if err != nil {
		log.Fatalf("failed to load named image: %v", err)
	}
	unnamed, err := loadImage(*unnamedPath)
	if err != nil {
		log.Fatalf("failed to load unnamed image: %v", err)
	}

	framework := classify.NewFramework(cfg.FeatureWeights)
	driver := match.NewDriver(named, unnamed, framework, cfg, logger)

	store, err := driver.Run(context.Background())
	if err != nil {
		log.Fatalf("matching run failed: %v", err)
	}

	rpt := report.Build(named, unnamed, store, driver.RunID)
	if err := report.WriteTo(rpt, *outputPath); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig()
	}
	return config.LoadFromFile(path)
}

func loadImage(path string) (*model.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var doc assemble.ImageDoc
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return assemble.Build(doc)
}
