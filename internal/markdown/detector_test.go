package markdown

import (
	"slices"
	"testing"
)

func TestIsMarkdownContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"text/markdown", true},
		{"text/x-markdown", true},
		{"Text/Markdown; charset=utf-8", true},
		{"text/html", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsMarkdownContentType(tt.contentType); got != tt.want {
			t.Errorf("IsMarkdownContentType(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}

func TestIsMarkdownPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"1.Welcome/1.What is TeaLinux.md", true},
		{"Dual Boot.MDX", true},
		{"notes.markdown", true},
		{"legacy.html", false},
		{"md", false},
		{"README", false},
	}

	for _, tt := range tests {
		if got := IsMarkdownPath(tt.path); got != tt.want {
			t.Errorf("IsMarkdownPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsMarkdownURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"ends with .md", "https://docs.tealinux.org/README.md", true},
		{"query string", "https://docs.tealinux.org/boot.md?ref=main", true},
		{"github raw", "https://raw.githubusercontent.com/tealinux/docs/main/boot.md", true},
		{"html page", "https://docs.tealinux.org/page.html", false},
		{"no extension", "https://docs.tealinux.org/docs/intro", false},
		{"md directory", "https://docs.tealinux.org/md/page", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMarkdownURL(tt.url); got != tt.want {
				t.Errorf("IsMarkdownURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestIsMarkdownContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"heading", "# Installation\n\nSteps.", true},
		{"heading later", "Intro line\n\n## Details", true},
		{"front matter", "---\ntitle: Boot\n---\nPress F12.", true},
		{"ordered list", "1. Download\n2. Flash", true},
		{"unordered list", "- one\n- two", true},
		{"link", "See [the guide](/docs/guide).", true},
		{"code fence", "```bash\nsudo pacman -Syu\n```", true},
		{"plain text", "Just a sentence.", false},
		{"html document", "<!DOCTYPE html><html><body># no</body></html>", false},
		{"html body", "<body><h1>Title</h1></body>", false},
		{"empty", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsMarkdownContent(tt.content); got != tt.want {
				t.Errorf("IsMarkdownContent(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestMarkdownURLVariants(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want []string
	}{
		{
			name: "github blob",
			url:  "https://github.com/tealinux/docs/blob/main/boot.md",
			want: []string{"https://raw.githubusercontent.com/tealinux/docs/main/boot.md"},
		},
		{
			name: "docs page",
			url:  "https://docs.tealinux.org/installation/",
			want: []string{"https://docs.tealinux.org/installation.md", "https://docs.tealinux.org/installation/index.md"},
		},
		{
			name: "already markdown",
			url:  "https://docs.tealinux.org/README.md",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MarkdownURLVariants(tt.url); !slices.Equal(got, tt.want) {
				t.Errorf("MarkdownURLVariants(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		content     string
		want        bool
	}{
		{"content-type", "https://docs.tealinux.org/page", "text/markdown", "random", true},
		{"url", "https://docs.tealinux.org/README.md", "text/plain", "random", true},
		{"content", "https://docs.tealinux.org/page", "text/plain", "# Title\n\nBody.", true},
		{"html page", "https://docs.tealinux.org/page.html", "text/html", "<html><body>Content</body></html>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.url, tt.contentType, tt.content); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}
