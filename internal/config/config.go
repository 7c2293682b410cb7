// Package config provides configuration management for the content migration tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/orwarhol/slater-sites/internal/models"
)

// DefaultPath is where the tools look for a configuration file when none is given.
const DefaultPath = "configs/content.yaml"

// Configuration validation errors.
var (
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrMissingInputDir       = errors.New("convert.input_dir is required")
	ErrMissingOutputDir      = errors.New("convert.output_dir is required")
	ErrInvalidExtension      = errors.New("extensions must start with a dot")
	ErrInvalidExcerptBounds  = errors.New("convert.excerpt_min must be positive and below convert.excerpt_max")
	ErrInvalidTimeout        = errors.New("convert.extractor.timeout_sec must be non-negative")
	ErrInvalidImportExcerpt  = errors.New("import.excerpt_max must be at least 1")
	ErrInvalidSynopsisMax    = errors.New("import.synopsis_max must be at least 1")
	ErrMissingImportDir      = errors.New("import output directories are required")
	ErrInvalidProjectType    = errors.New("project type is not an accepted collection type")
	ErrMissingNormalizeDir   = errors.New("normalize.poetry_dir is required")
	ErrNoNormalizeExtensions = errors.New("normalize.extensions must not be empty")
)

// Config represents the complete tool configuration.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Convert     ConvertConfig     `yaml:"convert"`
	Import      ImportConfig      `yaml:"import"`
	Normalize   NormalizeConfig   `yaml:"normalize"`
	Collections CollectionsConfig `yaml:"collections"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// ConvertConfig drives the legacy document converter.
type ConvertConfig struct {
	InputDir        string          `yaml:"input_dir"        env:"CONVERT_INPUT_DIR"        env-default:"apps/dad-site/converter/input"`
	OutputDir       string          `yaml:"output_dir"       env:"CONVERT_OUTPUT_DIR"       env-default:"apps/dad-site/converter/output"`
	Extension       string          `yaml:"extension"        env:"CONVERT_EXTENSION"        env-default:".wps"`
	OutputExtension string          `yaml:"output_extension" env:"CONVERT_OUTPUT_EXTENSION" env-default:".md"`
	ExcerptMax      int             `yaml:"excerpt_max"      env:"CONVERT_EXCERPT_MAX"      env-default:"180"`
	ExcerptMin      int             `yaml:"excerpt_min"      env:"CONVERT_EXCERPT_MIN"      env-default:"140"`
	TablesPath      string          `yaml:"tables_path"      env:"CONVERT_TABLES_PATH"`
	Extractor       ExtractorConfig `yaml:"extractor"`
}

// ExtractorConfig selects the text extractor. An empty command selects the native
// decoder.
type ExtractorConfig struct {
	Command    []string `yaml:"command"     env:"EXTRACTOR_COMMAND"     env-separator:" "`
	TimeoutSec int      `yaml:"timeout_sec" env:"EXTRACTOR_TIMEOUT_SEC" env-default:"0"`
}

// ImportConfig drives the XML export imports.
type ImportConfig struct {
	PoetryExport           string            `yaml:"poetry_export"            env:"IMPORT_POETRY_EXPORT"   env-default:"Charles-Slater-Squarespace-Wordpress-Export-01-31-2026.xml"`
	PoetryDir              string            `yaml:"poetry_dir"               env:"IMPORT_POETRY_DIR"      env-default:"apps/dad-site/src/content/poetry"`
	NovelsDir              string            `yaml:"novels_dir"               env:"IMPORT_NOVELS_DIR"      env-default:"apps/dad-site/src/content/novels"`
	ProjectsExport         string            `yaml:"projects_export"          env:"IMPORT_PROJECTS_EXPORT" env-default:"Ian-Slater-Squarespace-Wordpress-Export-01-31-2026.xml"`
	ProjectsDir            string            `yaml:"projects_dir"             env:"IMPORT_PROJECTS_DIR"    env-default:"apps/ian-site/src/content/projects"`
	ExcerptMax             int               `yaml:"excerpt_max"              env:"IMPORT_EXCERPT_MAX"     env-default:"160"`
	SynopsisMax            int               `yaml:"synopsis_max"             env:"IMPORT_SYNOPSIS_MAX"    env-default:"300"`
	BlockedSectionKeywords []string          `yaml:"blocked_section_keywords"`
	AllowedProjects        []string          `yaml:"allowed_projects"`
	ProjectTypes           map[string]string `yaml:"project_types"`
	DefaultProjectType     string            `yaml:"default_project_type" env:"IMPORT_DEFAULT_PROJECT_TYPE" env-default:"feature screenplay"`
}

// NormalizeConfig drives the poem formatting pass.
type NormalizeConfig struct {
	PoetryDir        string   `yaml:"poetry_dir"         env:"NORMALIZE_POETRY_DIR" env-default:"apps/dad-site/src/content/poetry"`
	Extensions       []string `yaml:"extensions"`
	KeepStanzaBreaks bool     `yaml:"keep_stanza_breaks" env:"NORMALIZE_KEEP_STANZA_BREAKS"`
}

// CollectionsConfig points the schema validator at the content collections.
type CollectionsConfig struct {
	PoetryDir   string `yaml:"poetry_dir"   env:"COLLECTIONS_POETRY_DIR"   env-default:"apps/dad-site/src/content/poetry"`
	NovelsDir   string `yaml:"novels_dir"   env:"COLLECTIONS_NOVELS_DIR"   env-default:"apps/dad-site/src/content/novels"`
	ProjectsDir string `yaml:"projects_dir" env:"COLLECTIONS_PROJECTS_DIR" env-default:"apps/ian-site/src/content/projects"`
}

// LoadConfig loads configuration from a YAML file with environment overrides. An empty
// path loads environment variables and conventional defaults only.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.defaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// ResolvePath returns flagValue when set, else DefaultPath when that file exists, else "".
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath
	}

	return ""
}

// defaults fills the list and map settings that struct tags cannot express.
func (c *Config) defaults() {
	if len(c.Import.BlockedSectionKeywords) == 0 {
		c.Import.BlockedSectionKeywords = []string{"movie"}
	}

	if len(c.Import.AllowedProjects) == 0 {
		c.Import.AllowedProjects = []string{
			"Hattie",
			"Perspectives",
			"Alyssa Craft",
			"Dark Love",
			"End of Eden – A Short Film by Ian Slater & Micah Caldwell",
		}
	}

	if c.Import.ProjectTypes == nil {
		c.Import.ProjectTypes = map[string]string{
			"End of Eden – A Short Film by Ian Slater & Micah Caldwell": "short film",
		}
	}

	if len(c.Normalize.Extensions) == 0 {
		c.Normalize.Extensions = []string{".md", ".mdx"}
	}
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return ErrInvalidLogLevel
	}

	if err := c.Convert.validate(); err != nil {
		return err
	}

	if err := c.Import.validate(); err != nil {
		return err
	}

	if c.Normalize.PoetryDir == "" {
		return ErrMissingNormalizeDir
	}

	if len(c.Normalize.Extensions) == 0 {
		return ErrNoNormalizeExtensions
	}

	for _, ext := range c.Normalize.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: normalize.extensions %q", ErrInvalidExtension, ext)
		}
	}

	return nil
}

func (cc *ConvertConfig) validate() error {
	if cc.InputDir == "" {
		return ErrMissingInputDir
	}

	if cc.OutputDir == "" {
		return ErrMissingOutputDir
	}

	for _, ext := range []string{cc.Extension, cc.OutputExtension} {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
		}
	}

	if cc.ExcerptMin < 1 || cc.ExcerptMin >= cc.ExcerptMax {
		return ErrInvalidExcerptBounds
	}

	if cc.Extractor.TimeoutSec < 0 {
		return ErrInvalidTimeout
	}

	return nil
}

func (ic *ImportConfig) validate() error {
	if ic.ExcerptMax < 1 {
		return ErrInvalidImportExcerpt
	}

	if ic.SynopsisMax < 1 {
		return ErrInvalidSynopsisMax
	}

	if ic.PoetryDir == "" || ic.NovelsDir == "" || ic.ProjectsDir == "" {
		return ErrMissingImportDir
	}

	if !models.IsProjectType(ic.DefaultProjectType) {
		return fmt.Errorf("%w: %q", ErrInvalidProjectType, ic.DefaultProjectType)
	}

	for title, t := range ic.ProjectTypes {
		if !models.IsProjectType(t) {
			return fmt.Errorf("%w: %q for %q", ErrInvalidProjectType, t, title)
		}
	}

	return nil
}

// ExtractorTimeout returns the extractor deadline; zero means none.
func (cc *ConvertConfig) ExtractorTimeout() time.Duration {
	return time.Duration(cc.Extractor.TimeoutSec) * time.Second
}

// IsBlockedSection reports whether a novels page heading names a section to skip.
func (ic *ImportConfig) IsBlockedSection(heading string) bool {
	heading = strings.ToLower(heading)

	return slices.ContainsFunc(ic.BlockedSectionKeywords, func(k string) bool {
		return strings.Contains(heading, strings.ToLower(k))
	})
}

// IsAllowedProject reports whether a page title is imported as a project.
func (ic *ImportConfig) IsAllowedProject(title string) bool {
	return slices.Contains(ic.AllowedProjects, title)
}

// ProjectType returns the collection type for a project title.
func (ic *ImportConfig) ProjectType(title string) string {
	if t, ok := ic.ProjectTypes[title]; ok {
		return t
	}

	return ic.DefaultProjectType
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Output: %s, Extension: %s, Projects: %d}",
		c.Convert.InputDir,
		c.Convert.OutputDir,
		c.Convert.Extension,
		len(c.Import.AllowedProjects),
	)
}
