package importer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/orwarhol/slater-sites/internal/models"
)

// Import errors.
var (
	ErrNoItems            = errors.New("export contains no items")
	ErrNovelsPageNotFound = errors.New("no novels page found in export")
)

// Post types used by the export.
const (
	PostTypePost = "post"
	PostTypePage = "page"
)

// Item is one <item> of a WordPress/Squarespace export.
type Item struct {
	Title    string
	Link     string
	Content  string
	Excerpt  string
	PubDate  string
	PostType string
	// Categories and Tags come from <category domain="category"> and
	// <category domain="post_tag"> in document order.
	Categories []string
	Tags       []string
	// Source is the export file the item was read from.
	Source string
}

// Document wraps the item's HTML content as a source document.
func (it *Item) Document() *models.SourceDocument {
	return &models.SourceDocument{Path: it.Source, Format: models.FormatXMLExportItem, Text: it.Content}
}

type rawItem struct {
	Fields []rawField `xml:",any"`
}

type rawField struct {
	XMLName xml.Name
	Domain  string `xml:"domain,attr"`
	Value   string `xml:",chardata"`
}

// ReadExport decodes every item of the export file at path.
func ReadExport(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	items, err := DecodeExport(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i := range items {
		items[i].Source = path
	}

	return items, nil
}

// DecodeExport decodes the items of an export. Items without a <title> element are
// skipped. The decoder tolerates undeclared namespace prefixes and HTML entities. HTML
// auto-closing stays off because <link> is a field here, not a void element.
func DecodeExport(r io.Reader) ([]Item, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	var items []Item

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to parse export: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}

		var raw rawItem
		if err := dec.DecodeElement(&raw, &start); err != nil {
			return nil, fmt.Errorf("failed to parse item %d: %w", len(items)+1, err)
		}

		if item, ok := raw.item(); ok {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return nil, ErrNoItems
	}

	return items, nil
}

func (raw *rawItem) item() (Item, bool) {
	item := Item{PostType: PostTypePost}
	hasTitle := false

	for _, f := range raw.Fields {
		value := strings.TrimSpace(f.Value)

		switch f.XMLName.Local {
		case "title":
			if !hasTitle {
				item.Title = html.UnescapeString(value)
				hasTitle = true
			}
		case "link":
			item.Link = value
		case "encoded":
			// content:encoded and excerpt:encoded share a local name.
			if strings.Contains(f.XMLName.Space, "excerpt") {
				item.Excerpt = html.UnescapeString(value)
			} else {
				item.Content = f.Value
			}
		case "pubDate":
			item.PubDate = value
		case "post_type":
			if value != "" {
				item.PostType = value
			}
		case "category":
			switch f.Domain {
			case "category":
				item.Categories = append(item.Categories, value)
			case "post_tag":
				item.Tags = append(item.Tags, value)
			}
		}
	}

	return item, hasTitle
}
