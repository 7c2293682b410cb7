// Package content renders records as Markdown files with front matter and writes them
// into a content collection directory.
package content

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/orwarhol/slater-sites/internal/models"
	"github.com/orwarhol/slater-sites/pkg/metadata"
)

// ErrEmptyFilename is returned when a record has no file name to write to.
var ErrEmptyFilename = errors.New("record has no filename")

// Poem renders a poem record.
func Poem(rec *models.ContentRecord) string {
	tags := rec.Tags
	if tags == nil {
		tags = []string{}
	}

	b := metadata.NewBuilder().
		String("title", rec.Title).
		Raw("date", rec.FormattedDate()).
		JSON("tags", tags, "").
		String("excerpt", rec.Excerpt)

	if rec.DecorativeImage != "" {
		b.String("decorativeImage", rec.DecorativeImage)
	}

	return metadata.Join(b.Build(), rec.Body)
}

// Novel renders one novel section.
func Novel(n *models.Novel) string {
	links := n.PurchaseLinks
	if links == nil {
		links = []models.PurchaseLink{}
	}

	front := metadata.NewBuilder().
		String("title", n.Title).
		String("synopsis", n.Synopsis).
		JSON("purchaseLinks", links, "  ").
		Build()

	return metadata.Join(front, n.Body)
}

// Project renders a portfolio project page.
func Project(p *models.Project) string {
	genre := p.Genre
	if genre == nil {
		genre = []string{}
	}

	front := metadata.NewBuilder().
		String("title", p.Title).
		Raw("date", p.FormattedDate()).
		String("type", p.Type).
		JSON("genre", genre, "").
		Raw("pages", "null").
		Build()

	return metadata.Join(front, p.Body)
}

// Write stores data as dir/filename in a single whole-file write, creating dir when
// needed. It returns the written path.
func Write(dir, filename, data string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", ErrEmptyFilename
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(filename))

	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
