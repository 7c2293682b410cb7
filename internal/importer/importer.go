// Package importer migrates WordPress/Squarespace XML exports into the content
// collections: poems and novels for the poetry site, projects for the portfolio site.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/orwarhol/slater-sites/internal/config"
	"github.com/orwarhol/slater-sites/internal/logger"
	"github.com/orwarhol/slater-sites/internal/report"
	"github.com/orwarhol/slater-sites/internal/synthesis"
)

// Sites accepted by Run.
const (
	SiteDad = "dad"
	SiteIan = "ian"
	SiteAll = "all"
)

// ErrUnknownSite is returned by Run for a site name it does not know.
var ErrUnknownSite = errors.New("unknown site")

// Importer writes content records for the items of an export. It holds no per-item state.
type Importer struct {
	cfg  config.ImportConfig
	html *HTMLConverter
	log  *logger.Logger
	out  io.Writer
	now  func() time.Time
}

// New creates an importer.
func New(cfg config.ImportConfig, log *logger.Logger) *Importer {
	return &Importer{
		cfg:  cfg,
		html: NewHTMLConverter(),
		log:  log,
		out:  os.Stdout,
		now:  time.Now,
	}
}

// WithOutput redirects progress lines.
func (im *Importer) WithOutput(w io.Writer) *Importer {
	im.out = w
	return im
}

// WithClock replaces the clock used when an item has no usable publication date.
func (im *Importer) WithClock(now func() time.Time) *Importer {
	im.now = now
	return im
}

// Run imports the exports configured for site. Problems with an export file itself are
// returned as errors; per-record failures are collected in the summary.
func (im *Importer) Run(site string) (*report.Summary, error) {
	summary := &report.Summary{}

	switch site {
	case SiteDad, SiteIan, SiteAll:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSite, site)
	}

	if site == SiteDad || site == SiteAll {
		s, err := im.ImportDad(im.cfg.PoetryExport)
		if err != nil {
			return summary, err
		}

		summary.Merge(s)
	}

	if site == SiteIan || site == SiteAll {
		s, err := im.ImportIan(im.cfg.ProjectsExport)
		if err != nil {
			return summary, err
		}

		summary.Merge(s)
	}

	return summary, nil
}

// ImportDad imports poems and novels from the poetry site export. A missing novels page
// is reported but is not an error.
func (im *Importer) ImportDad(path string) (*report.Summary, error) {
	items, err := im.read(path)
	if err != nil {
		return nil, err
	}

	summary := im.ImportPoetry(items)

	novels, err := im.ImportNovels(items)
	if errors.Is(err, ErrNovelsPageNotFound) {
		fmt.Fprintln(im.out, "\nNo novels page found")
		im.log.Warn("novels import skipped", "export", filepath.Base(path), "error", err)

		return summary, nil
	}

	summary.Merge(novels)

	return summary, nil
}

// ImportIan imports project pages from the portfolio site export.
func (im *Importer) ImportIan(path string) (*report.Summary, error) {
	items, err := im.read(path)
	if err != nil {
		return nil, err
	}

	return im.ImportProjects(items), nil
}

func (im *Importer) read(path string) ([]Item, error) {
	fmt.Fprintf(im.out, "Reading export: %s\n", path)

	items, err := ReadExport(path)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(im.out, "Parsed %d items\n", len(items))
	im.log.Info("export decoded", "export", filepath.Base(path), "items", len(items))

	return items, nil
}

// date resolves an item publication date, falling back to the processing day.
func (im *Importer) date(item *Item, log *logger.Logger) time.Time {
	date, ok := synthesis.ParsePubDate(item.PubDate, im.now())
	if !ok && item.PubDate != "" {
		log.Warn("could not parse publication date, using today", "pub_date", item.PubDate)
	}

	return date
}

// itemName identifies a record in failure reports.
func itemName(item *Item) string {
	return fmt.Sprintf("%s#%s", filepath.Base(item.Source), item.Title)
}

// collisions tracks the file names written during one import.
type collisions map[string]string

func (c collisions) check(log *logger.Logger, filename, title string) {
	if prev, ok := c[filename]; ok {
		log.Warn("output file name collision, overwriting", "filename", filename, "previous", prev)
	}

	c[filename] = title
}
