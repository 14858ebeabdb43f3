// Package elasticsearch mirrors the documentation collection into an
// Elasticsearch index so other services can query the published pages.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/tealinux/teasite/pkg/models"
)

// ErrNotFound is returned by GetDocument for unknown IDs.
var ErrNotFound = errors.New("document not found in index")

// scanPageSize bounds each page of an All scan.
const scanPageSize = 500

// Config holds Elasticsearch client configuration.
type Config struct {
	Addresses []string
	Index     string
	Username  string
	Password  string
}

// Client wraps the Elasticsearch client with docs mirror operations.
type Client struct {
	es    *elasticsearch.Client
	index string
}

// New creates a new Elasticsearch client.
func New(config Config) (*Client, error) {
	if config.Index == "" {
		return nil, fmt.Errorf("index is required")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: config.Addresses,
		Username:  config.Username,
		Password:  config.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ES client: %w", err)
	}

	return &Client{
		es:    es,
		index: config.Index,
	}, nil
}

// Index returns the index name.
func (c *Client) Index() string {
	return c.index
}

// Ping checks if Elasticsearch is available.
func (c *Client) Ping(ctx context.Context) bool {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return !res.IsError()
}

// indexMapping mirrors models.Document. The id is a keyword so scans can
// sort on it.
var indexMapping = `{
	"mappings": {
		"properties": {
			"id": { "type": "keyword" },
			"title": { "type": "text", "fields": { "raw": { "type": "keyword" } } },
			"body": { "type": "text" },
			"category": { "type": "keyword" },
			"description": { "type": "text" },
			"order": { "type": "integer" },
			"path": { "type": "keyword" }
		}
	}
}`

// CreateIndex creates the index with proper mapping. Existing indices are
// left alone.
func (c *Client) CreateIndex(ctx context.Context) error {
	res, err := c.es.Indices.Exists([]string{c.index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = c.es.Indices.Create(
		c.index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping))),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating index: %s", res.String())
	}

	return nil
}

// DeleteIndex removes the index.
func (c *Client) DeleteIndex(ctx context.Context) error {
	res, err := c.es.Indices.Delete([]string{c.index}, c.es.Indices.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return nil
}

// IndexDocument indexes a single document under its ID.
func (c *Client) IndexDocument(ctx context.Context, doc models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	res, err := c.es.Index(
		c.index,
		bytes.NewReader(data),
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(doc.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document (status %d): %s", res.StatusCode, res.String())
	}

	return nil
}

// Refresh makes indexed documents visible to searches.
func (c *Client) Refresh(ctx context.Context) error {
	res, err := c.es.Indices.Refresh(
		c.es.Indices.Refresh.WithContext(ctx),
		c.es.Indices.Refresh.WithIndex(c.index),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	return nil
}

// Prune deletes every document whose ID is not in keep and reports how
// many were removed.
func (c *Client) Prune(ctx context.Context, keep []string) (int, error) {
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must_not": map[string]any{"ids": map[string]any{"values": keep}},
			},
		},
	}
	data, err := json.Marshal(query)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal prune query: %w", err)
	}

	res, err := c.es.DeleteByQuery(
		[]string{c.index},
		bytes.NewReader(data),
		c.es.DeleteByQuery.WithContext(ctx),
		c.es.DeleteByQuery.WithRefresh(true),
		c.es.DeleteByQuery.WithConflicts("proceed"),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("prune error: %s", res.String())
	}

	var dr struct {
		Deleted int `json:"deleted"`
	}
	if err := json.NewDecoder(res.Body).Decode(&dr); err != nil {
		return 0, fmt.Errorf("failed to decode prune response: %w", err)
	}
	return dr.Deleted, nil
}

// getResponse represents ES get response structure.
type getResponse struct {
	Found  bool            `json:"found"`
	Source models.Document `json:"_source"`
}

// GetDocument retrieves a document by ID.
func (c *Client) GetDocument(ctx context.Context, id string) (models.Document, error) {
	res, err := c.es.Get(c.index, id, c.es.Get.WithContext(ctx))
	if err != nil {
		return models.Document{}, fmt.Errorf("get failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return models.Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if res.IsError() {
		return models.Document{}, fmt.Errorf("get error: %s", res.String())
	}

	var gr getResponse
	if err := json.NewDecoder(res.Body).Decode(&gr); err != nil {
		return models.Document{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if !gr.Found {
		return models.Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return gr.Source, nil
}

// searchResponse represents ES search response structure.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.Document `json:"_source"`
			Sort   []any           `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

// All returns every mirrored document ordered by ID, paging with
// search_after.
func (c *Client) All(ctx context.Context) ([]models.Document, error) {
	var (
		docs  []models.Document
		after []any
	)

	for {
		page, last, err := c.scanPage(ctx, after)
		if err != nil {
			return nil, err
		}
		docs = append(docs, page...)
		if len(page) < scanPageSize {
			return docs, nil
		}
		after = last
	}
}

func (c *Client) scanPage(ctx context.Context, after []any) ([]models.Document, []any, error) {
	query := map[string]any{
		"query": map[string]any{"match_all": map[string]any{}},
		"sort":  []any{map[string]any{"id": "asc"}},
		"size":  scanPageSize,
	}
	if after != nil {
		query["search_after"] = after
	}

	data, err := json.Marshal(query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(data)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("scan failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, nil, fmt.Errorf("scan error: %s", res.String())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, nil, fmt.Errorf("failed to decode response: %w", err)
	}

	docs := make([]models.Document, len(sr.Hits.Hits))
	var last []any
	for i, hit := range sr.Hits.Hits {
		docs[i] = hit.Source
		last = hit.Sort
	}
	return docs, last, nil
}
