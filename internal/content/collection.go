package content

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tealinux/teasite/pkg/models"
)

// ErrNotFound is returned for an unknown document ID.
var ErrNotFound = errors.New("document not found")

// Collection is an immutable, id-ordered set of documents.
type Collection struct {
	docs []models.Document
	byID map[string]int
}

// NewCollection sorts docs by ID. Duplicate IDs are an error.
func NewCollection(docs []models.Document) (*Collection, error) {
	sorted := make([]models.Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[string]int, len(sorted))
	for i, doc := range sorted {
		if _, dup := byID[doc.ID]; dup {
			return nil, fmt.Errorf("duplicate document id %q (%s)", doc.ID, doc.Path)
		}
		byID[doc.ID] = i
	}

	return &Collection{docs: sorted, byID: byID}, nil
}

// Documents returns a copy of the documents in ID order.
func (c *Collection) Documents() []models.Document {
	out := make([]models.Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Len returns the number of documents.
func (c *Collection) Len() int {
	return len(c.docs)
}

// Get returns the document with the given ID.
func (c *Collection) Get(id string) (models.Document, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.docs[i], nil
}

// Navigation groups documents by category. Sections are ordered by their
// lowest item order, items by order then title.
func (c *Collection) Navigation() []models.NavSection {
	sections := map[string]*models.NavSection{}
	minOrder := map[string]int{}
	var names []string

	for _, doc := range c.docs {
		s, ok := sections[doc.Category]
		if !ok {
			s = &models.NavSection{Title: doc.Category, Slug: Slugify(doc.Category)}
			sections[doc.Category] = s
			minOrder[doc.Category] = doc.Order
			names = append(names, doc.Category)
		}
		s.Items = append(s.Items, models.NavItem{Title: doc.Title, Slug: doc.ID, Order: doc.Order})
		minOrder[doc.Category] = min(minOrder[doc.Category], doc.Order)
	}

	sort.SliceStable(names, func(i, j int) bool {
		if minOrder[names[i]] != minOrder[names[j]] {
			return minOrder[names[i]] < minOrder[names[j]]
		}
		return names[i] < names[j]
	})

	nav := make([]models.NavSection, 0, len(names))
	for _, name := range names {
		s := sections[name]
		sort.SliceStable(s.Items, func(i, j int) bool {
			if s.Items[i].Order != s.Items[j].Order {
				return s.Items[i].Order < s.Items[j].Order
			}
			return s.Items[i].Title < s.Items[j].Title
		})
		nav = append(nav, *s)
	}
	return nav
}
