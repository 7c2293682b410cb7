// Package main provides the XML export importer for both sites.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/orwarhol/slater-sites/internal/config"
	"github.com/orwarhol/slater-sites/internal/importer"
	"github.com/orwarhol/slater-sites/internal/logger"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	site := flag.String("site", importer.SiteAll, "Site to import: dad (poetry, novels), ian (projects) or all")
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

	log := logger.NewLogger(cfg.Logging.Level).WithRunID().With("site", *site)

	summary, err := importer.New(cfg.Import, log).Run(*site)
	if err != nil {
		log.Error("import failed", "error", err)
		fmt.Fprintf(os.Stderr, "❌ Error during import: %v\n", err)
		os.Exit(1)
	}

	summary.Print(os.Stdout)

	if summary.HasFailures() {
		os.Exit(summary.ExitCode())
	}

	fmt.Println("\n✨ Import complete!")
}

func printUsage() {
	fmt.Println("Usage: ./bin/importer [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/importer -site dad")
	fmt.Println("  IMPORT_PROJECTS_EXPORT=export.xml ./bin/importer -site ian")
}
