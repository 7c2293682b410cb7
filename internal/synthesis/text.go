package synthesis

import (
	"regexp"
	"strings"

	"github.com/orwarhol/slater-sites/internal/heuristics"
	"github.com/orwarhol/slater-sites/pkg/utils"
)

var (
	slugStrip  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// Untitled is the last-resort slug when neither title nor fallback yields one.
const Untitled = "untitled"

// InferTags matches the keyword table against the lowercased content and title. Tags
// are collected in table order, deduplicated case-insensitively and capped at
// tables.MaxTags. With no keyword match the result is the single default tag.
func InferTags(content, title string, tables *heuristics.Tables) []string {
	content = strings.ToLower(content)
	title = strings.ToLower(title)

	tags := make([]string, 0, tables.MaxTags)
	seen := make(map[string]bool)

	for _, rule := range tables.TagRules {
		if len(tags) == tables.MaxTags {
			break
		}

		if !strings.Contains(content, rule.Keyword) && !strings.Contains(title, rule.Keyword) {
			continue
		}

		for _, tag := range rule.Tags {
			key := strings.ToLower(tag)
			if seen[key] || len(tags) == tables.MaxTags {
				continue
			}

			seen[key] = true
			tags = append(tags, tag)
		}
	}

	if len(tags) == 0 {
		tags = append(tags, tables.DefaultTag)
	}

	return tags
}

// Excerpt joins body lines into one whitespace-collapsed string of at most maxRunes
// runes. A longer text is cut after the last ". " whose period falls in
// [minRunes, maxRunes), else at the last space in (minRunes, maxRunes], else hard at
// minRunes.
func Excerpt(lines []string, maxRunes, minRunes int) string {
	text := utils.NormalizeWhitespace(strings.Join(lines, " "))

	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}

	if maxRunes < 1 {
		return ""
	}

	minRunes = clamp(minRunes, 0, maxRunes)

	for i := maxRunes - 1; i >= minRunes; i-- {
		if runes[i] == '.' && runes[i+1] == ' ' {
			return strings.TrimSpace(string(runes[:i+1]))
		}
	}

	end := maxRunes
	for end > minRunes && runes[end] != ' ' {
		end--
	}

	return strings.TrimSpace(string(runes[:end]))
}

// Slugify lowercases title and reduces it to [a-z0-9-] with single, inner hyphens.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// Filename returns a non-empty slug file name for title, falling back to the slug of
// fallback and then to Untitled.
func Filename(title, fallback, ext string) string {
	slug := Slugify(title)
	if slug == "" {
		slug = Slugify(fallback)
	}

	if slug == "" {
		slug = Untitled
	}

	return slug + ext
}

// FormatVerse joins body lines, appending two spaces (a Markdown hard break) to every
// line that is followed by another line of the same stanza.
func FormatVerse(lines []string) string {
	var sb strings.Builder

	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(line)

		if line != "" && i < len(lines)-1 && lines[i+1] != "" {
			sb.WriteString("  ")
		}
	}

	return sb.String()
}
