package models

import (
	"slices"
	"time"
)

// DateLayout is the front matter date format.
const DateLayout = "2006-01-02"

// ContentRecord is a finished poem ready to be written into a content collection.
type ContentRecord struct {
	Date    time.Time
	Title   string
	Excerpt string
	// Filename is the slug plus extension.
	Filename string
	// Body is verse formatted: two trailing spaces on every non-final line of a stanza.
	Body string
	// Tags holds at most five tags for converted documents, in discovery order.
	Tags []string
	// DecorativeImage is only set by the XML import.
	DecorativeImage string
}

// FormattedDate returns the record date as YYYY-MM-DD.
func (r *ContentRecord) FormattedDate() string {
	return r.Date.Format(DateLayout)
}

// PurchaseLink is a store link attached to a novel.
type PurchaseLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Novel is one section of the novels page.
type Novel struct {
	Title         string
	Synopsis      string
	Filename      string
	Body          string
	PurchaseLinks []PurchaseLink
}

// Project is a portfolio page imported from the XML export.
type Project struct {
	Date     time.Time
	Title    string
	Type     string
	Filename string
	Body     string
	Genre    []string
}

// FormattedDate returns the project date as YYYY-MM-DD.
func (p *Project) FormattedDate() string {
	return p.Date.Format(DateLayout)
}

// ProjectTypes enumerates the values the projects collection accepts for type.
var ProjectTypes = []string{
	"feature screenplay",
	"short screenplay",
	"TV script",
	"novel",
	"feature film",
	"short film",
}

// IsProjectType reports whether t is one of ProjectTypes.
func IsProjectType(t string) bool {
	return slices.Contains(ProjectTypes, t)
}
