package importer

import (
	"fmt"
	"path"
	"strings"

	"github.com/orwarhol/slater-sites/internal/content"
	"github.com/orwarhol/slater-sites/internal/models"
	"github.com/orwarhol/slater-sites/internal/report"
	"github.com/orwarhol/slater-sites/internal/synthesis"
	"github.com/orwarhol/slater-sites/pkg/utils"
)

const poetryMarker = "poetry"

// IsPoetry reports whether an item is a poem: a post linked under /poetry/ or filed
// under a poetry category or tag.
func IsPoetry(item *Item) bool {
	if item.PostType != PostTypePost {
		return false
	}

	if strings.Contains(item.Link, "/"+poetryMarker+"/") {
		return true
	}

	for _, label := range append(append([]string{}, item.Categories...), item.Tags...) {
		if strings.Contains(strings.ToLower(label), poetryMarker) {
			return true
		}
	}

	return false
}

// UnionTags merges categories and tags in first-seen order. Duplicates are removed
// case-sensitively.
func UnionTags(categories, tags []string) []string {
	out := make([]string, 0, len(categories)+len(tags))
	seen := make(map[string]bool, cap(out))

	for _, t := range append(append([]string{}, categories...), tags...) {
		if seen[t] {
			continue
		}

		seen[t] = true
		out = append(out, t)
	}

	return out
}

// PoemRecord builds the poem record of an item.
func (im *Importer) PoemRecord(item *Item) (*models.ContentRecord, error) {
	doc := item.Document()
	log := im.log.With("item", item.Title, "source", doc.Path, "format", doc.Format)

	body, err := im.html.Markdown(doc.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to convert content: %w", err)
	}

	excerpt := item.Excerpt
	if excerpt == "" {
		excerpt = strings.TrimSpace(utils.TruncateRunes(im.html.PlainText(doc.Text), im.cfg.ExcerptMax))
	}

	return &models.ContentRecord{
		Date:            im.date(item, log),
		Title:           item.Title,
		Excerpt:         excerpt,
		Filename:        synthesis.Filename(item.Title, path.Base(item.Link), synthesis.DefaultExtension),
		Body:            body,
		Tags:            UnionTags(item.Categories, item.Tags),
		DecorativeImage: FirstImage(doc.Text),
	}, nil
}

// ImportPoetry writes one poem per poetry item into the poetry collection.
func (im *Importer) ImportPoetry(items []Item) *report.Summary {
	summary := &report.Summary{}

	var poems []*Item

	for i := range items {
		if IsPoetry(&items[i]) {
			poems = append(poems, &items[i])
		}
	}

	fmt.Fprintf(im.out, "\nFound %d poetry posts to import\n", len(poems))

	written := collisions{}

	for _, item := range poems {
		log := im.log.With("item", item.Title)

		rec, err := im.PoemRecord(item)
		if err != nil {
			fmt.Fprintf(im.out, "  ✗ %s: %v\n", item.Title, err)
			log.Error("poem import failed", "error", err)
			summary.Fail(itemName(item), err)

			continue
		}

		written.check(log, rec.Filename, rec.Title)

		if _, err := content.Write(im.cfg.PoetryDir, rec.Filename, content.Poem(rec)); err != nil {
			fmt.Fprintf(im.out, "  ✗ %s: %v\n", item.Title, err)
			log.Error("write failed", "error", err)
			summary.Fail(itemName(item), err)

			continue
		}

		fmt.Fprintf(im.out, "  ✓ Created: %s\n", rec.Filename)
		log.Debug("wrote poem", "filename", rec.Filename, "tags", len(rec.Tags))
		summary.Success()
	}

	return summary
}
