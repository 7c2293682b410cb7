package importer

import (
	"fmt"
	"strings"

	"github.com/orwarhol/slater-sites/internal/content"
	"github.com/orwarhol/slater-sites/internal/models"
	"github.com/orwarhol/slater-sites/internal/report"
	"github.com/orwarhol/slater-sites/internal/synthesis"
	"github.com/orwarhol/slater-sites/pkg/utils"
)

const novelsMarker = "novels"

// FindNovelsPage returns the first page whose title or link mentions novels.
func FindNovelsPage(items []Item) (*Item, error) {
	for i := range items {
		item := &items[i]
		if item.PostType != PostTypePage {
			continue
		}

		if strings.Contains(strings.ToLower(item.Title), novelsMarker) || strings.Contains(item.Link, novelsMarker) {
			return item, nil
		}
	}

	return nil, ErrNovelsPageNotFound
}

// NovelRecord builds the record of one novels page section.
func (im *Importer) NovelRecord(sec Section) (*models.Novel, error) {
	body, err := im.html.Markdown(sec.HTML)
	if err != nil {
		return nil, fmt.Errorf("failed to convert section: %w", err)
	}

	return &models.Novel{
		Title:         sec.Heading,
		Synopsis:      strings.TrimSpace(utils.TruncateRunes(im.html.PlainText(sec.HTML), im.cfg.SynopsisMax)),
		Filename:      synthesis.Filename(sec.Heading, "", synthesis.DefaultExtension),
		Body:          body,
		PurchaseLinks: PurchaseLinks(sec.HTML),
	}, nil
}

// ImportNovels splits the novels page at its second-level headings and writes one novel
// per section. Sections without heading text or with a blocked heading are skipped.
func (im *Importer) ImportNovels(items []Item) (*report.Summary, error) {
	page, err := FindNovelsPage(items)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(im.out, "\nFound novels page: %s\n", page.Title)

	summary := &report.Summary{}
	written := collisions{}

	for _, sec := range SplitSections(page.Content) {
		if sec.Heading == "" {
			continue
		}

		log := im.log.With("section", sec.Heading)

		if im.cfg.IsBlockedSection(sec.Heading) {
			fmt.Fprintf(im.out, "  - Skipping: %s\n", sec.Heading)
			log.Info("section skipped")

			continue
		}

		novel, err := im.NovelRecord(sec)
		if err == nil {
			written.check(log, novel.Filename, novel.Title)
			_, err = content.Write(im.cfg.NovelsDir, novel.Filename, content.Novel(novel))
		}

		if err != nil {
			fmt.Fprintf(im.out, "  ✗ %s: %v\n", sec.Heading, err)
			log.Error("novel import failed", "error", err)
			summary.Fail(fmt.Sprintf("%s#%s", page.Title, sec.Heading), err)

			continue
		}

		fmt.Fprintf(im.out, "  ✓ Created: %s\n", novel.Filename)
		log.Debug("wrote novel", "filename", novel.Filename, "purchase_links", len(novel.PurchaseLinks))
		summary.Success()
	}

	return summary, nil
}
