// Package models defines data structures for the conversion and import pipelines.
package models

// SourceFormat tags where a source document came from.
type SourceFormat string

// Source formats.
const (
	FormatLegacyWorks   SourceFormat = "legacy-wp-doc"
	FormatXMLExportItem SourceFormat = "xml-export-item"
)

// SourceDocument is the raw text of one source item. It is not modified after acquisition.
type SourceDocument struct {
	// Path is the file the text came from (the export file for XML items).
	Path   string
	Format SourceFormat
	Text   string
}

// ContentSkeleton is the result of structural segmentation.
type ContentSkeleton struct {
	Title         string
	DateCandidate string
	// BodyLines are trimmed; a blank entry marks a stanza break and never repeats.
	BodyLines      []string
	SignatureFound bool
	// ContentLines are the trimmed lines between the extractor preamble and trailer.
	ContentLines []string
}

// HasDate reports whether a date-shaped substring was found.
func (s *ContentSkeleton) HasDate() bool {
	return s.DateCandidate != ""
}
