// Package main provides the poem formatting normalizer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/orwarhol/slater-sites/internal/config"
	"github.com/orwarhol/slater-sites/internal/logger"
	"github.com/orwarhol/slater-sites/internal/normalizer"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	targetPath := flag.String("path", "", "Poetry directory to normalize (overrides config)")
	dryRun := flag.Bool("dry-run", false, "Report files that would change without writing them")
	keepStanzas := flag.Bool("keep-stanza-breaks", false, "Keep one blank line between stanzas")

	flag.Parse()

	configPath := config.ResolvePath(*configFile)
	if configPath != "" {
		fmt.Printf("⚙️  Loading configuration from: %s\n", configPath)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	dir := cfg.Normalize.PoetryDir
	if *targetPath != "" {
		dir = *targetPath
	}

	log := logger.NewLogger(cfg.Logging.Level).WithRunID()

	fmt.Println("Starting poem formatting normalization...")
	fmt.Printf("📂 Scanning path: %s\n", dir)

	if *dryRun {
		fmt.Println("👀 Dry-run mode (no changes will be written)")
	}

	fmt.Println()

	p := normalizer.NewProcessor(normalizer.Options{
		Extensions:       cfg.Normalize.Extensions,
		KeepStanzaBreaks: cfg.Normalize.KeepStanzaBreaks || *keepStanzas,
		DryRun:           *dryRun,
	}, log)

	summary, err := p.Run(dir)
	if err != nil {
		log.Error("normalization failed", "error", err)
		os.Exit(1)
	}

	summary.Print(os.Stdout)

	if summary.Succeeded > 0 && *dryRun {
		fmt.Println("\n💡 Run without -dry-run to apply changes.")
	}

	os.Exit(summary.ExitCode())
}
