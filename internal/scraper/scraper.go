// Package scraper crawls a published docs site and turns its pages back into
// markdown content files.
package scraper

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/tealinux/teasite/internal/markdown"
)

// Config holds scraper configuration.
type Config struct {
	Delay            time.Duration
	MaxDepth         int
	FollowLinks      bool
	UserAgent        string
	Timeout          time.Duration
	TryMarkdownFirst bool // Try to fetch markdown version of pages
}

// Page is a fetched page before conversion.
type Page struct {
	URL         string
	Content     string
	ContentType string
	FetchedAt   time.Time
}

// Scraper fetches documentation pages.
type Scraper struct {
	config     Config
	httpClient *http.Client
}

// New creates a new Scraper with the given configuration.
func New(config Config) *Scraper {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "teasite-importer/1.0"
	}
	return &Scraper{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

// assetExts are link targets that are never documentation pages.
var assetExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true, ".webp": true,
	".ico": true, ".css": true, ".js": true, ".json": true, ".xml": true, ".pdf": true,
	".zip": true, ".iso": true, ".tar": true, ".gz": true, ".woff": true, ".woff2": true,
}

// scope limits a crawl to one host and the directory of the start page.
type scope struct {
	host string
	root string
}

func newScope(start *url.URL) scope {
	root := start.Path
	if root == "" {
		root = "/"
	}
	if !strings.HasSuffix(root, "/") {
		root = path.Dir(root)
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return scope{host: start.Host, root: root}
}

// follow returns the link to visit, without fragment, or false when the
// link leaves the scope or points at a static asset.
func (sc scope) follow(link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil || u.Host != sc.host {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if !strings.HasPrefix(u.Path+"/", sc.root) {
		return "", false
	}
	if assetExts[strings.ToLower(path.Ext(u.Path))] {
		return "", false
	}
	u.Fragment = ""
	return u.String(), true
}

// Scrape fetches startURL and, when FollowLinks is set, the pages it links
// to on the same host below the start page's directory.
// Pages are returned in visit order. Cancelling ctx stops the crawl and
// returns what was fetched so far along with ctx.Err().
func (s *Scraper) Scrape(ctx context.Context, startURL string) ([]Page, error) {
	start, err := url.Parse(startURL)
	if err != nil {
		slog.Error("failed to parse URL", "url", startURL, "error", err)
		return nil, err
	}
	sc := newScope(start)

	slog.Debug("starting crawl", "url", startURL, "scope", sc.root, "max_depth", s.config.MaxDepth)

	var (
		mu        sync.Mutex
		pages     []Page
		cancelled bool
	)

	c := colly.NewCollector(
		colly.MaxDepth(s.config.MaxDepth),
		colly.UserAgent(s.config.UserAgent),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       s.config.Delay,
		Parallelism: 2,
	})
	c.SetRequestTimeout(s.config.Timeout)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() == nil {
			return
		}
		r.Abort()
		mu.Lock()
		cancelled = true
		mu.Unlock()
	})

	c.OnResponse(func(r *colly.Response) {
		if r.StatusCode >= 400 {
			slog.Debug("skipping page with error status", "url", r.Request.URL.String(), "status", r.StatusCode)
			return
		}

		page := Page{
			URL:         r.Request.URL.String(),
			Content:     string(r.Body),
			ContentType: r.Headers.Get("Content-Type"),
			FetchedAt:   time.Now(),
		}
		if s.config.TryMarkdownFirst && !markdown.Detect(page.URL, page.ContentType, page.Content) {
			if md, ok := s.markdownSource(ctx, page.URL); ok {
				slog.Debug("using markdown source", "url", page.URL, "source", md.URL)
				page.Content = md.Content
				page.ContentType = md.ContentType
			}
		}

		slog.Debug("fetched page", "url", page.URL, "content_type", page.ContentType, "size", len(page.Content))
		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()
	})

	if s.config.FollowLinks {
		c.OnHTML("a[href]", func(e *colly.HTMLElement) {
			if link, ok := sc.follow(e.Request.AbsoluteURL(e.Attr("href"))); ok {
				e.Request.Visit(link)
			}
		})
	}

	if err := c.Visit(startURL); err != nil {
		slog.Debug("visit error (continuing)", "url", startURL, "error", err)
		return pages, nil
	}
	c.Wait()

	if cancelled {
		slog.Info("crawl cancelled", "pages", len(pages))
		return pages, ctx.Err()
	}

	slog.Debug("crawl complete", "url", startURL, "pages", len(pages))
	return pages, nil
}

// markdownSource looks for the markdown a rendered page was built from.
func (s *Scraper) markdownSource(ctx context.Context, pageURL string) (Page, bool) {
	for _, candidate := range markdown.MarkdownURLVariants(pageURL) {
		if ctx.Err() != nil {
			return Page{}, false
		}
		if page, ok := s.fetchMarkdown(ctx, candidate); ok {
			return page, true
		}
	}
	return Page{}, false
}

// fetchMarkdown fetches rawURL and keeps it only if it really is markdown.
func (s *Scraper) fetchMarkdown(ctx context.Context, rawURL string) (Page, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, false
	}
	req.Header.Set("User-Agent", s.config.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Page{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, false
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, false
	}

	page := Page{
		URL:         rawURL,
		Content:     string(body),
		ContentType: resp.Header.Get("Content-Type"),
		FetchedAt:   time.Now(),
	}
	if !markdown.Detect(page.URL, page.ContentType, page.Content) {
		return Page{}, false
	}
	return page, true
}
