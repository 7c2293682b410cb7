// Package heuristics holds the fixed lookup tables that drive legacy document
// reconstruction. The tables are data (tables.yaml) so they can be audited and edited
// without touching the segmentation or reconstruction code.
package heuristics

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

// Table errors.
var (
	ErrNoSignatureNames = errors.New("signature_names must not be empty")
	ErrNoSuffixes       = errors.New("contraction_suffixes must not be empty")
	ErrInvalidMaxTags   = errors.New("max_tags must be at least 1")
	ErrNoDefaultTag     = errors.New("default_tag is required")
	ErrInvalidFragment  = errors.New("fragment_max_runes must be at least 1")
	ErrEmptyRepair      = errors.New("apostrophe repair needs both word and fix")
	ErrEmptyTagRule     = errors.New("tag rule needs a keyword and at least one tag")
)

// Repair replaces a whole word with its corrected spelling.
type Repair struct {
	Word string `yaml:"word"`
	Fix  string `yaml:"fix"`
}

// TagRule maps a content keyword to the tags it implies.
type TagRule struct {
	Keyword string   `yaml:"keyword"`
	Tags    []string `yaml:"tags"`
}

// Tables is the read-only set of lookup tables. Build it with Load or Default.
type Tables struct {
	JunkPrefixes        string    `yaml:"junk_prefixes"`
	TrailerPatterns     []string  `yaml:"trailer_patterns"`
	SignatureNames      []string  `yaml:"signature_names"`
	FragmentMaxRunes    int       `yaml:"fragment_max_runes"`
	TerminalPunctuation string    `yaml:"terminal_punctuation"`
	ContractionSuffixes []string  `yaml:"contraction_suffixes"`
	ApostropheRepairs   []Repair  `yaml:"apostrophe_repairs"`
	TagRules            []TagRule `yaml:"tag_rules"`
	DefaultTag          string    `yaml:"default_tag"`
	MaxTags             int       `yaml:"max_tags"`

	trailer    *regexp.Regexp
	signatures map[string]bool
	suffix     *regexp.Regexp
	repairs    []compiledRepair
}

type compiledRepair struct {
	pattern *regexp.Regexp
	fix     string
}

// Default returns the embedded tables. They are parsed once per process.
var Default = sync.OnceValue(func() *Tables {
	t, err := Load(strings.NewReader(string(defaultTables)))
	if err != nil {
		panic(fmt.Sprintf("heuristics: embedded tables: %v", err))
	}

	return t
})

// LoadFile reads tables from a YAML file.
func LoadFile(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tables file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load parses and compiles tables from YAML.
func Load(r io.Reader) (*Tables, error) {
	var t Tables

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to parse tables: %w", err)
	}

	if err := t.compile(); err != nil {
		return nil, err
	}

	return &t, nil
}

func (t *Tables) compile() error {
	if len(t.SignatureNames) == 0 {
		return ErrNoSignatureNames
	}

	if len(t.ContractionSuffixes) == 0 {
		return ErrNoSuffixes
	}

	if t.MaxTags < 1 {
		return ErrInvalidMaxTags
	}

	if t.DefaultTag == "" {
		return ErrNoDefaultTag
	}

	if t.FragmentMaxRunes < 1 {
		return ErrInvalidFragment
	}

	if len(t.TrailerPatterns) > 0 {
		re, err := regexp.Compile(strings.Join(t.TrailerPatterns, "|"))
		if err != nil {
			return fmt.Errorf("trailer_patterns: %w", err)
		}

		t.trailer = re
	}

	t.signatures = make(map[string]bool, len(t.SignatureNames))
	for _, name := range t.SignatureNames {
		t.signatures[strings.ToLower(name)] = true
	}

	quoted := make([]string, len(t.ContractionSuffixes))
	for i, s := range t.ContractionSuffixes {
		quoted[i] = regexp.QuoteMeta(s)
	}

	t.suffix = regexp.MustCompile(`^(?:` + strings.Join(quoted, "|") + `)\b`)

	t.repairs = make([]compiledRepair, 0, len(t.ApostropheRepairs))
	for _, r := range t.ApostropheRepairs {
		if r.Word == "" || r.Fix == "" {
			return fmt.Errorf("%w: %+v", ErrEmptyRepair, r)
		}

		t.repairs = append(t.repairs, compiledRepair{
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(r.Word) + `\b`),
			fix:     r.Fix,
		})
	}

	for _, rule := range t.TagRules {
		if rule.Keyword == "" || len(rule.Tags) == 0 {
			return fmt.Errorf("%w: %+v", ErrEmptyTagRule, rule)
		}
	}

	return nil
}

// IsJunkStart reports whether s begins with one of the junk prefix characters.
func (t *Tables) IsJunkStart(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return false
	}

	return strings.ContainsRune(t.JunkPrefixes, r)
}

// IsTrailer reports whether a trimmed line looks like extractor trailer output.
func (t *Tables) IsTrailer(s string) bool {
	return t.trailer != nil && t.trailer.MatchString(s)
}

// IsSignature reports whether a trimmed line is exactly a signature name.
func (t *Tables) IsSignature(s string) bool {
	return t.signatures[strings.ToLower(s)]
}

// EndsWithTerminal reports whether s ends with terminal punctuation.
func (t *Tables) EndsWithTerminal(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)
	if size == 0 {
		return false
	}

	return strings.ContainsRune(t.TerminalPunctuation, r)
}

// IsFragment reports whether a trimmed, non-blank line is short enough to be a
// word-wrap leftover.
func (t *Tables) IsFragment(s string) bool {
	if s == "" {
		return false
	}

	return utf8.RuneCountInString(s) <= t.FragmentMaxRunes && !t.EndsWithTerminal(s)
}

// StartsWithSuffix reports whether s begins with a contraction suffix word.
func (t *Tables) StartsWithSuffix(s string) bool {
	return t.suffix.MatchString(s)
}

// RepairApostrophes applies every apostrophe repair to line in table order.
func (t *Tables) RepairApostrophes(line string) string {
	for _, r := range t.repairs {
		line = r.pattern.ReplaceAllLiteralString(line, r.fix)
	}

	return line
}
