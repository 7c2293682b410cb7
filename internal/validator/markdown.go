// Package validator checks content files against the front matter schemas the site
// collections declare.
package validator

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/orwarhol/slater-sites/internal/models"
	"github.com/orwarhol/slater-sites/pkg/metadata"
)

// Validation errors.
var (
	ErrUnknownCollection  = errors.New("unknown collection")
	ErrInvalidFrontMatter = errors.New("invalid front matter")
)

// Kind is the value type a front matter field accepts.
type Kind int

// Field kinds.
const (
	KindString Kind = iota
	// KindDate accepts a YAML timestamp, a date string or a number, like a coercing date.
	KindDate
	KindNumber
	KindStringList
	// KindLinks is a list of {label, url} objects.
	KindLinks
	KindEnum
)

// Field describes one front matter key.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Nullable accepts an explicit null.
	Nullable bool
	Enum     []string
}

// Schema is the front matter contract of one collection.
type Schema struct {
	Name   string
	Fields []Field
}

// Collection schemas.
var (
	PoetrySchema = Schema{
		Name: "poetry",
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "date", Kind: KindDate, Required: true},
			{Name: "tags", Kind: KindStringList},
			{Name: "excerpt", Kind: KindString, Required: true},
			{Name: "decorativeImage", Kind: KindString},
		},
	}

	NovelsSchema = Schema{
		Name: "novels",
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "publicationDate", Kind: KindDate},
			{Name: "printLength", Kind: KindNumber},
			{Name: "synopsis", Kind: KindString, Required: true},
			{Name: "purchaseLinks", Kind: KindLinks},
		},
	}

	ProjectsSchema = Schema{
		Name: "projects",
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "date", Kind: KindDate, Required: true},
			{Name: "type", Kind: KindEnum, Required: true, Enum: models.ProjectTypes},
			{Name: "genre", Kind: KindStringList},
			{Name: "pages", Kind: KindNumber, Nullable: true},
		},
	}
)

// Schemas lists every collection schema.
var Schemas = []*Schema{&PoetrySchema, &NovelsSchema, &ProjectsSchema}

// SchemaFor returns the schema of a collection by name.
func SchemaFor(name string) (*Schema, error) {
	for _, s := range Schemas {
		if s.Name == name {
			return s, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) String() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("[%s] %s", e.Field, e.Message)
}

// ValidationResult contains the validation outcome of one file.
type ValidationResult struct {
	Path    string
	Errors  []ValidationError
	IsValid bool
}

// Err folds the result into one error, nil when valid.
func (r *ValidationResult) Err() error {
	if r.IsValid {
		return nil
	}

	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidFrontMatter, strings.Join(msgs, "; "))
}

func (r *ValidationResult) add(field, value, format string, args ...any) {
	r.IsValid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// String returns string representation of validation result.
func (r *ValidationResult) String() string {
	status := "✅ VALID"
	if !r.IsValid {
		status = "❌ INVALID"
	}

	return fmt.Sprintf("%s | %s | Errors: %d", status, r.Path, len(r.Errors))
}

// PrintErrors prints validation errors in readable format.
func (r *ValidationResult) PrintErrors(w io.Writer) {
	if len(r.Errors) == 0 {
		return
	}

	fmt.Fprintf(w, "❌ %s\n", r.Path)

	for _, err := range r.Errors {
		fmt.Fprintf(w, "  %s\n", err)

		if err.Value != "" {
			fmt.Fprintf(w, "    Found: %q\n", err.Value)
		}
	}
}

// MarkdownValidator validates the front matter of Markdown content files.
type MarkdownValidator struct {
	format *frontmatter.Format
}

// NewMarkdownValidator creates a new validator.
func NewMarkdownValidator() *MarkdownValidator {
	return &MarkdownValidator{
		format: frontmatter.NewFormat(metadata.Delimiter, metadata.Delimiter, yaml.Unmarshal),
	}
}

// ValidateMarkdown validates content against schema.
func (v *MarkdownValidator) ValidateMarkdown(content string, schema *Schema) *ValidationResult {
	result := &ValidationResult{IsValid: true}

	var fields map[string]any

	if _, err := frontmatter.MustParse(strings.NewReader(content), &fields, v.format); err != nil {
		result.add("", "", "front matter: %v", err)
		return result
	}

	for _, f := range schema.Fields {
		value, present := fields[f.Name]

		switch {
		case !present && f.Required:
			result.add(f.Name, "", "required")
		case !present:
		case value == nil && f.Nullable:
		case value == nil:
			result.add(f.Name, "", "must not be null")
		default:
			checkValue(result, f, value)
		}
	}

	return result
}

func checkValue(r *ValidationResult, f Field, value any) {
	switch f.Kind {
	case KindString:
		if _, ok := value.(string); !ok {
			r.add(f.Name, fmt.Sprint(value), "expected string, got %T", value)
		}
	case KindDate:
		if !isDate(value) {
			r.add(f.Name, fmt.Sprint(value), "expected a date")
		}
	case KindNumber:
		if !isNumber(value) {
			r.add(f.Name, fmt.Sprint(value), "expected number, got %T", value)
		}
	case KindStringList:
		list, ok := value.([]any)
		if !ok {
			r.add(f.Name, fmt.Sprint(value), "expected list of strings")
			return
		}

		for i, item := range list {
			if _, ok := item.(string); !ok {
				r.add(fmt.Sprintf("%s[%d]", f.Name, i), fmt.Sprint(item), "expected string, got %T", item)
			}
		}
	case KindLinks:
		checkLinks(r, f.Name, value)
	case KindEnum:
		s, ok := value.(string)
		if !ok || !slices.Contains(f.Enum, s) {
			r.add(f.Name, fmt.Sprint(value), "expected one of: %s", strings.Join(f.Enum, ", "))
		}
	}
}

func checkLinks(r *ValidationResult, name string, value any) {
	list, ok := value.([]any)
	if !ok {
		r.add(name, fmt.Sprint(value), "expected list of links")
		return
	}

	for i, item := range list {
		link, ok := item.(map[string]any)
		if !ok {
			r.add(fmt.Sprintf("%s[%d]", name, i), fmt.Sprint(item), "expected {label, url}")
			continue
		}

		for _, key := range []string{"label", "url"} {
			if _, ok := link[key].(string); !ok {
				r.add(fmt.Sprintf("%s[%d].%s", name, i, key), "", "required string")
			}
		}
	}
}

func isDate(value any) bool {
	switch v := value.(type) {
	case time.Time:
		return true
	case int, int64, uint64, float64:
		return true
	case string:
		v = strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, v); err == nil {
				return true
			}
		}
	}

	return false
}

func isNumber(value any) bool {
	switch value.(type) {
	case int, int64, uint64, float64:
		return true
	}

	return false
}

// ValidateFile validates the content file at path.
func (v *MarkdownValidator) ValidateFile(path string, schema *Schema) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	result := v.ValidateMarkdown(string(data), schema)
	result.Path = path

	return result, nil
}

// ValidateDir validates every file under dir whose extension is in exts, in walk order.
func (v *MarkdownValidator) ValidateDir(dir string, schema *Schema, exts []string) ([]*ValidationResult, error) {
	var results []*ValidationResult

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !slices.Contains(exts, strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		res, err := v.ValidateFile(path, schema)
		if err != nil {
			return err
		}

		results = append(results, res)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", dir, err)
	}

	return results, nil
}
