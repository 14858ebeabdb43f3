package content

import (
	"fmt"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/tealinux/teasite/pkg/models"
)

// DefaultCategory is assigned to documents without a category.
const DefaultCategory = "General"

// meta is the YAML front matter of a documentation page.
type meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Category    string `yaml:"category"`
	Order       *int   `yaml:"order"`
}

// Parse builds a Document from a markdown file's path and content.
func Parse(relPath, content string) (models.Document, error) {
	var m meta
	body, err := frontmatter.Parse(strings.NewReader(content), &m)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to parse front matter of %s: %w", relPath, err)
	}

	doc := models.Document{
		ID:          PathToSlug(relPath),
		Title:       strings.TrimSpace(m.Title),
		Body:        strings.TrimLeft(string(body), "\r\n"),
		Category:    strings.TrimSpace(m.Category),
		Description: strings.TrimSpace(m.Description),
		Order:       ExtractOrder(relPath),
		Path:        relPath,
	}
	if m.Order != nil {
		doc.Order = *m.Order
	}
	if doc.Category == "" {
		doc.Category = DefaultCategory
	}
	if doc.Title == "" {
		doc.Title = MarkdownTitle(doc.Body)
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSpace(orderPrefix.ReplaceAllString(strings.TrimSuffix(path.Base(relPath), path.Ext(relPath)), ""))
	}
	if doc.ID == "" {
		return models.Document{}, fmt.Errorf("empty document id for %s", relPath)
	}

	return doc, nil
}

// MarkdownTitle returns the first H1 heading of markdown content.
func MarkdownTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

// Format renders a document back to markdown with YAML front matter that
// Parse reads back unchanged.
func Format(doc models.Document) (string, error) {
	order := doc.Order
	front, err := yaml.Marshal(meta{
		Title:       doc.Title,
		Description: doc.Description,
		Category:    doc.Category,
		Order:       &order,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal front matter of %s: %w", doc.ID, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n")
	b.WriteString(doc.Body)
	if !strings.HasSuffix(doc.Body, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}
