// Package main checks the content collections against their front matter schemas.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/orwarhol/slater-sites/internal/config"
	"github.com/orwarhol/slater-sites/internal/logger"
	"github.com/orwarhol/slater-sites/internal/report"
	"github.com/orwarhol/slater-sites/internal/validator"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	collection := flag.String("collection", "all", "Collection to check: poetry, novels, projects or all")
	targetPath := flag.String("path", "", "Directory to check instead of the configured one (single collection only)")

	flag.Parse()

	configPath := config.ResolvePath(*configFile)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level).WithRunID()

	dirs := map[string]string{
		validator.PoetrySchema.Name:   cfg.Collections.PoetryDir,
		validator.NovelsSchema.Name:   cfg.Collections.NovelsDir,
		validator.ProjectsSchema.Name: cfg.Collections.ProjectsDir,
	}

	var schemas []*validator.Schema

	if *collection == "all" {
		if *targetPath != "" {
			fmt.Fprintln(os.Stderr, "❌ -path requires a single -collection")
			os.Exit(1)
		}

		schemas = validator.Schemas
	} else {
		schema, schemaErr := validator.SchemaFor(*collection)
		if schemaErr != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", schemaErr)
			os.Exit(1)
		}

		if *targetPath != "" {
			dirs[schema.Name] = *targetPath
		}

		schemas = []*validator.Schema{schema}
	}

	v := validator.NewMarkdownValidator()
	summary := &report.Summary{}

	for _, schema := range schemas {
		dir := dirs[schema.Name]

		if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
			fmt.Printf("⚠️  %s: %s does not exist, skipping\n", schema.Name, dir)
			continue
		}

		fmt.Printf("🔍 Checking %s: %s\n", schema.Name, dir)

		results, walkErr := v.ValidateDir(dir, schema, cfg.Normalize.Extensions)
		if walkErr != nil {
			log.Error("validation failed", "collection", schema.Name, "error", walkErr)
			os.Exit(1)
		}

		for _, res := range results {
			if res.IsValid {
				summary.Success()
				continue
			}

			res.PrintErrors(os.Stdout)
			log.Warn("invalid front matter", "collection", schema.Name, "file", res.Path, "errors", len(res.Errors))
			summary.Fail(res.Path, res.Err())
		}
	}

	summary.Print(os.Stdout)
	os.Exit(summary.ExitCode())
}
