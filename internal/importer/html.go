package importer

import (
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/orwarhol/slater-sites/internal/formatter"
	"github.com/orwarhol/slater-sites/internal/models"
	"github.com/orwarhol/slater-sites/pkg/utils"
)

// purchaseHints mark an external link as a store link.
var purchaseHints = []string{"amazon", "book", "publisher"}

// HTMLConverter turns export HTML into Markdown and plain text.
type HTMLConverter struct {
	md    *converter.Converter
	strip *bluemonday.Policy
}

// NewHTMLConverter creates a converter with CommonMark and table support.
func NewHTMLConverter() *HTMLConverter {
	strip := bluemonday.StrictPolicy()
	strip.AddSpaceWhenStrippingTag(true)

	return &HTMLConverter{
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		strip: strip,
	}
}

// Markdown converts an HTML fragment to Markdown and aligns any tables in it.
func (c *HTMLConverter) Markdown(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}

	md, err := c.md.ConvertString(fragment)
	if err != nil {
		return "", err
	}

	return formatter.FormatMarkdown(strings.TrimSpace(md))
}

// PlainText strips every tag, decodes entities and collapses whitespace.
func (c *HTMLConverter) PlainText(fragment string) string {
	return utils.NormalizeWhitespace(html.UnescapeString(c.strip.Sanitize(fragment)))
}

// FirstImage returns the src of the first <img> carrying one, or "".
func FirstImage(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))

	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.Img {
				continue
			}

			if src := attr(tok, "src"); src != "" {
				return src
			}
		}
	}
}

// Section is the part of a page that follows one <h2> heading.
type Section struct {
	Heading string
	// HTML is the raw markup after the closing </h2> up to the next <h2>.
	HTML string
}

// SplitSections partitions a page at every <h2>. Markup before the first heading is
// dropped.
func SplitSections(fragment string) []Section {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var (
		sections  []Section
		current   *Section
		heading   strings.Builder
		body      strings.Builder
		inHeading bool
	)

	finish := func() {
		if current != nil {
			current.HTML = body.String()
			sections = append(sections, *current)
		}

		body.Reset()
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			finish()
			return sections
		}

		raw := string(z.Raw())
		name, _ := z.TagName()
		isH2 := atom.Lookup(name) == atom.H2

		switch {
		case tt == html.StartTagToken && isH2:
			finish()

			current = &Section{}
			inHeading = true

			heading.Reset()
		case tt == html.EndTagToken && isH2 && inHeading:
			inHeading = false
			current.Heading = utils.NormalizeWhitespace(html.UnescapeString(heading.String()))
		case inHeading:
			if tt == html.TextToken {
				heading.WriteString(raw)
			}
		case current != nil:
			body.WriteString(raw)
		}
	}
}

// PurchaseLinks returns the store links of a fragment: absolute http(s) anchors whose
// URL mentions a purchase hint. The label is the anchor text, else the URL host.
func PurchaseLinks(fragment string) []models.PurchaseLink {
	z := html.NewTokenizer(strings.NewReader(fragment))

	var (
		links []models.PurchaseLink
		href  string
		text  strings.Builder
		inA   bool
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			return links
		case html.StartTagToken:
			tok := z.Token()
			if tok.DataAtom == atom.A {
				inA = true
				href = attr(tok, "href")

				text.Reset()
			}
		case html.TextToken:
			if inA {
				text.Write(z.Text())
			}
		case html.EndTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.A || !inA {
				continue
			}

			inA = false

			if link, ok := purchaseLink(href, utils.NormalizeWhitespace(text.String())); ok {
				links = append(links, link)
			}
		}
	}
}

func purchaseLink(href, label string) (models.PurchaseLink, bool) {
	if !strings.HasPrefix(href, "http") {
		return models.PurchaseLink{}, false
	}

	hinted := false

	for _, hint := range purchaseHints {
		if strings.Contains(href, hint) {
			hinted = true
			break
		}
	}

	if !hinted {
		return models.PurchaseLink{}, false
	}

	if label == "" {
		if u, err := url.Parse(href); err == nil {
			label = u.Hostname()
		}
	}

	return models.PurchaseLink{Label: label, URL: href}, true
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}
