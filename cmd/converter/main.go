// Package main provides the legacy document converter: every .wps file in the input
// directory becomes one Markdown poem in the poetry collection.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/orwarhol/slater-sites/internal/config"
	"github.com/orwarhol/slater-sites/internal/converter"
	"github.com/orwarhol/slater-sites/internal/extractor"
	"github.com/orwarhol/slater-sites/internal/heuristics"
	"github.com/orwarhol/slater-sites/internal/logger"
	"github.com/orwarhol/slater-sites/internal/synthesis"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	inputDir := flag.String("input", "", "Directory holding the legacy documents (overrides config)")
	outputDir := flag.String("output", "", "Directory receiving the Markdown poems (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	configPath := config.ResolvePath(*configFile)
	if configPath != "" {
		fmt.Printf("⚙️  Loading configuration from: %s\n", configPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if *inputDir != "" {
		cfg.Convert.InputDir = *inputDir
	}

	if *outputDir != "" {
		cfg.Convert.OutputDir = *outputDir
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	log := logger.NewLogger(cfg.Logging.Level).WithRunID()

	tables := heuristics.Default()
	if cfg.Convert.TablesPath != "" {
		tables, err = heuristics.LoadFile(cfg.Convert.TablesPath)
		if err != nil {
			log.Error("failed to load heuristics tables", "path", cfg.Convert.TablesPath, "error", err)
			os.Exit(1)
		}
	}

	var ext extractor.Extractor = extractor.NewWorksExtractor()

	if len(cfg.Convert.Extractor.Command) > 0 {
		ext, err = extractor.NewCommandExtractor(cfg.Convert.Extractor.Command, cfg.Convert.ExtractorTimeout())
		if err != nil {
			log.Error("invalid extractor command", "error", err)
			os.Exit(1)
		}

		fmt.Printf("🔧 Extractor: %v\n", cfg.Convert.Extractor.Command)
	}

	fmt.Printf("📂 Input:  %s\n", cfg.Convert.InputDir)
	fmt.Printf("📁 Output: %s\n\n", cfg.Convert.OutputDir)

	conv := converter.New(ext, tables, converter.Options{
		InputDir:  cfg.Convert.InputDir,
		OutputDir: cfg.Convert.OutputDir,
		Extension: cfg.Convert.Extension,
		Synthesis: synthesis.Options{
			ExcerptMax: cfg.Convert.ExcerptMax,
			ExcerptMin: cfg.Convert.ExcerptMin,
			Extension:  cfg.Convert.OutputExtension,
		},
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := conv.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("conversion failed", "error", err)
		stop()
		os.Exit(1)
	}

	summary.Print(os.Stdout)

	if err != nil {
		fmt.Println("\n⚠️  Interrupted before every file was converted.")
		stop()
		os.Exit(1)
	}

	if summary.HasFailures() {
		stop()
		os.Exit(summary.ExitCode())
	}

	fmt.Println("\n✨ Conversion complete!")
}

func printUsage() {
	fmt.Println("Usage: ./bin/converter [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/converter")
	fmt.Println("  ./bin/converter -input apps/dad-site/converter/input -output /tmp/poetry")
	fmt.Println("  EXTRACTOR_COMMAND=\"python3 extract-wps-text.py\" ./bin/converter")
}
