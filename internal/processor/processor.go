// Package processor turns rendered docs pages back into markdown sources.
package processor

import (
	"bytes"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// chrome lists elements that belong to the site layout rather than the page.
var chrome = map[atom.Atom]bool{
	atom.Nav:      true,
	atom.Header:   true,
	atom.Footer:   true,
	atom.Aside:    true,
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Form:     true,
}

// Page is an HTML page reduced to its documentation content.
type Page struct {
	Title       string
	Description string
	Markdown    string
}

// Processor converts HTML content to Markdown.
type Processor struct{}

// New creates a new HTML to Markdown processor.
func New() *Processor {
	return &Processor{}
}

// Convert transforms HTML content into Markdown.
func (p *Processor) Convert(htmlContent string) (string, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return "", nil
	}

	md, err := htmltomarkdown.ConvertString(htmlContent)
	if err != nil {
		return "", fmt.Errorf("failed to convert html: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// Process parses a full page, keeps the <main> or <article> region without
// site chrome and converts it to markdown.
func (p *Processor) Process(htmlContent string) (Page, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return Page{}, fmt.Errorf("failed to parse html: %w", err)
	}

	page := Page{
		Title:       textOf(find(doc, atom.Title)),
		Description: metaDescription(doc),
	}

	root := find(doc, atom.Main)
	if root == nil {
		root = find(doc, atom.Article)
	}
	if root == nil {
		root = find(doc, atom.Body)
	}
	if root == nil {
		return page, nil
	}

	stripChrome(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return Page{}, fmt.Errorf("failed to render content: %w", err)
	}

	page.Markdown, err = p.Convert(buf.String())
	if err != nil {
		return Page{}, err
	}
	return page, nil
}

// ExtractTitle extracts the <title> content from HTML.
func (p *Processor) ExtractTitle(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}
	return textOf(find(doc, atom.Title))
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func metaDescription(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Meta {
		var name, content string
		for _, attr := range n.Attr {
			switch strings.ToLower(attr.Key) {
			case "name":
				name = strings.ToLower(attr.Val)
			case "content":
				content = attr.Val
			}
		}
		if name == "description" {
			return strings.TrimSpace(content)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if d := metaDescription(c); d != "" {
			return d
		}
	}
	return ""
}

// stripChrome removes layout elements below n.
func stripChrome(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && chrome[c.DataAtom] {
			n.RemoveChild(c)
		} else {
			stripChrome(c)
		}
		c = next
	}
}
