package content

import (
	"context"
	"fmt"

	"github.com/tealinux/teasite/pkg/models"
)

// ObjectReader lists and reads markdown objects from object storage.
type ObjectReader interface {
	ListMarkdownFiles(ctx context.Context, prefix string) ([]string, error)
	GetMarkdown(ctx context.Context, prefix, name string) (string, error)
}

// S3Loader loads pages published to object storage under a prefix.
type S3Loader struct {
	objects ObjectReader
	prefix  string
}

// NewS3Loader creates a loader reading markdown objects under prefix.
func NewS3Loader(objects ObjectReader, prefix string) *S3Loader {
	return &S3Loader{objects: objects, prefix: prefix}
}

// Load reads and parses every markdown object under the prefix.
func (l *S3Loader) Load(ctx context.Context) ([]models.Document, error) {
	names, err := l.objects.ListMarkdownFiles(ctx, l.prefix)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(names))
	for _, name := range names {
		data, err := l.objects.GetMarkdown(ctx, l.prefix, name)
		if err != nil {
			return nil, err
		}
		doc, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DocumentLister returns every document of a search mirror.
type DocumentLister interface {
	All(ctx context.Context) ([]models.Document, error)
}

// IndexLoader loads documents back from a search mirror.
type IndexLoader struct {
	index DocumentLister
}

// NewIndexLoader creates a loader over a search mirror.
func NewIndexLoader(index DocumentLister) *IndexLoader {
	return &IndexLoader{index: index}
}

// Load returns the mirrored documents.
func (l *IndexLoader) Load(ctx context.Context) ([]models.Document, error) {
	docs, err := l.index.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read search mirror: %w", err)
	}
	return docs, nil
}
