// Package formatter provides markdown formatting utilities.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/orwarhol/slater-sites/pkg/metadata"
)

const minColumnWidth = 3

type alignment int

const (
	alignNone alignment = iota
	alignLeft
	alignCenter
	alignRight
)

// FormatMarkdown aligns the pipe tables of a Markdown document by display width.
// A leading front matter block and fenced code blocks are left untouched.
func FormatMarkdown(content string) (string, error) {
	front, body := metadata.Extract(content)

	lines := strings.Split(body, "\n")

	var (
		formattedLines []string
		tableBuffer    []string
		inFence        bool
	)

	flush := func() {
		if len(tableBuffer) > 0 {
			formattedLines = append(formattedLines, processTable(tableBuffer)...)
			tableBuffer = nil
		}
	}

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)

		if strings.HasPrefix(trimmedLine, "```") || strings.HasPrefix(trimmedLine, "~~~") {
			flush()

			inFence = !inFence
			formattedLines = append(formattedLines, line)

			continue
		}

		if !inFence && strings.HasPrefix(trimmedLine, "|") && strings.HasSuffix(trimmedLine, "|") && len(trimmedLine) > 1 {
			tableBuffer = append(tableBuffer, line)
			continue
		}

		flush()

		formattedLines = append(formattedLines, line)
	}

	flush()

	formatted := strings.Join(formattedLines, "\n")
	if front == "" {
		return formatted, nil
	}

	return front + "\n" + formatted, nil
}

func splitRow(row string) []string {
	parts := strings.Split(strings.TrimSpace(row), "|")

	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}

	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}

	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}

	return cells
}

// separatorAlignments reports the column alignments when cells form a delimiter row.
func separatorAlignments(cells []string) ([]alignment, bool) {
	aligns := make([]alignment, len(cells))

	for i, cell := range cells {
		if strings.Trim(strings.ReplaceAll(cell, " ", ""), "-:") != "" || !strings.Contains(cell, "-") {
			return nil, false
		}

		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")

		switch {
		case left && right:
			aligns[i] = alignCenter
		case left:
			aligns[i] = alignLeft
		case right:
			aligns[i] = alignRight
		}
	}

	return aligns, true
}

func processTable(rows []string) []string {
	// A table needs at least a header and a delimiter row.
	if len(rows) < 2 {
		return rows
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, splitRow(row))
	}

	aligns, ok := separatorAlignments(table[1])
	if !ok {
		return rows
	}

	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	colWidths := make([]int, colCount)
	for i := range colWidths {
		colWidths[i] = minColumnWidth
	}

	for rIdx, row := range table {
		if rIdx == 1 {
			continue
		}

		for i, cell := range row {
			colWidths[i] = max(colWidths[i], runewidth.StringWidth(cell))
		}
	}

	result := make([]string, 0, len(table))

	for rIdx, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			if rIdx == 1 {
				a := alignNone
				if j < len(aligns) {
					a = aligns[j]
				}

				sb.WriteString(delimiter(colWidths[j], a))
			} else {
				cell := ""
				if j < len(row) {
					cell = row[j]
				}

				sb.WriteString(cell)
				sb.WriteString(strings.Repeat(" ", colWidths[j]-runewidth.StringWidth(cell)))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}

func delimiter(width int, a alignment) string {
	switch a {
	case alignLeft:
		return ":" + strings.Repeat("-", width-1)
	case alignRight:
		return strings.Repeat("-", width-1) + ":"
	case alignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	default:
		return strings.Repeat("-", width)
	}
}
