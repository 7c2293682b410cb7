package importer

import (
	"fmt"

	"github.com/orwarhol/slater-sites/internal/content"
	"github.com/orwarhol/slater-sites/internal/models"
	"github.com/orwarhol/slater-sites/internal/report"
	"github.com/orwarhol/slater-sites/internal/synthesis"
)

// ProjectRecord builds the project record of an allowed page.
func (im *Importer) ProjectRecord(item *Item) (*models.Project, error) {
	doc := item.Document()

	body, err := im.html.Markdown(doc.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to convert content: %w", err)
	}

	return &models.Project{
		Date:     im.date(item, im.log.With("item", item.Title, "source", doc.Path, "format", doc.Format)),
		Title:    item.Title,
		Type:     im.cfg.ProjectType(item.Title),
		Filename: synthesis.Filename(item.Title, "", synthesis.DefaultExtension),
		Body:     body,
	}, nil
}

// ImportProjects writes one project per allowed page into the projects collection.
func (im *Importer) ImportProjects(items []Item) *report.Summary {
	var pages []*Item

	for i := range items {
		if items[i].PostType == PostTypePage && im.cfg.IsAllowedProject(items[i].Title) {
			pages = append(pages, &items[i])
		}
	}

	fmt.Fprintf(im.out, "\nFiltered to %d project pages to import:\n", len(pages))

	for _, item := range pages {
		fmt.Fprintf(im.out, "  - %s\n", item.Title)
	}

	summary := &report.Summary{}

	for _, item := range pages {
		log := im.log.With("item", item.Title)

		project, err := im.ProjectRecord(item)
		if err == nil {
			_, err = content.Write(im.cfg.ProjectsDir, project.Filename, content.Project(project))
		}

		if err != nil {
			fmt.Fprintf(im.out, "✗ %s: %v\n", item.Title, err)
			log.Error("project import failed", "error", err)
			summary.Fail(itemName(item), err)

			continue
		}

		fmt.Fprintf(im.out, "✓ Created: %s\n", project.Filename)
		log.Debug("wrote project", "filename", project.Filename, "type", project.Type)
		summary.Success()
	}

	return summary
}
