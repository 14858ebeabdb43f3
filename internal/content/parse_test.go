package content

import (
	"strings"
	"testing"

	"github.com/tealinux/teasite/pkg/models"
)

func TestParse_FrontMatter(t *testing.T) {
	src := "---\ntitle: Requirements\ndescription: What you need\ncategory: Installation\norder: 1\n---\n\n# Hardware\n\n4 GB RAM.\n"

	doc, err := Parse("2.Installation/1.Requirements.md", src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if doc.ID != "installation/requirements" {
		t.Errorf("ID = %q", doc.ID)
	}
	if doc.Title != "Requirements" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.Category != "Installation" {
		t.Errorf("Category = %q", doc.Category)
	}
	if doc.Description != "What you need" {
		t.Errorf("Description = %q", doc.Description)
	}
	if doc.Order != 1 {
		t.Errorf("Order = %d", doc.Order)
	}
	if !strings.HasPrefix(doc.Body, "# Hardware") {
		t.Errorf("Body = %q", doc.Body)
	}
	if strings.Contains(doc.Body, "title:") {
		t.Errorf("front matter leaked into body: %q", doc.Body)
	}
}

func TestParse_Defaults(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		src       string
		wantTitle string
		wantOrder int
	}{
		{"title from heading", "85.Manual Partition.md", "Intro\n\n# Manual Partition\n\ntext", "Manual Partition", 85},
		{"title from file name", "86.Create User.md", "no heading here", "Create User", 86},
		{"empty body", "summary.md", "", "summary", DefaultOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.path, tt.src)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if doc.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", doc.Title, tt.wantTitle)
			}
			if doc.Order != tt.wantOrder {
				t.Errorf("Order = %d, want %d", doc.Order, tt.wantOrder)
			}
			if doc.Category != DefaultCategory {
				t.Errorf("Category = %q, want %q", doc.Category, DefaultCategory)
			}
		})
	}
}

func TestParse_MalformedFrontMatter(t *testing.T) {
	src := "---\ntitle: [unterminated\n---\nbody"
	if _, err := Parse("bad.md", src); err == nil {
		t.Error("Parse() should fail on malformed front matter")
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	in, err := Parse("3.Boot.md", "---\ntitle: \"Boot: \\\"quoted\\\"\"\ncategory: Installation\norder: 3\n---\n\nPress F12.\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	text, err := Format(in)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out, err := Parse("3.Boot.md", text)
	if err != nil {
		t.Fatalf("Parse(Format()) error = %v", err)
	}

	if out != in {
		t.Errorf("round trip changed document:\n got %+v\nwant %+v", out, in)
	}
}

func TestFormat_RoundTripsAwkwardValues(t *testing.T) {
	values := map[string]string{
		"plain":         "Boot TeaLinuxOS",
		"double quotes": `say "hi"`,
		"tab":           "tab\there",
		"backslash":     `C:\teasite\boot`,
		"emoji":         "Release 🚀",
		"control byte":  "ctrl\x01byte",
		"invalid utf-8": "bad\xffbyte",
		"yaml syntax":   "key: value # not a comment",
		"leading dash":  "- not a list",
		"old bool":      "yes",
		"number":        "0777",
		"multiline":     "line one\nline two",
	}

	for name, v := range values {
		t.Run(name, func(t *testing.T) {
			in := models.Document{
				ID:          "installation/boot",
				Title:       v,
				Description: v,
				Category:    v,
				Order:       -2,
				Body:        "Press F12.\n",
				Path:        "installation/boot.md",
			}

			text, err := Format(in)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			out, err := Parse(in.Path, text)
			if err != nil {
				t.Fatalf("Parse(Format()) error = %v\n%s", err, text)
			}
			if out != in {
				t.Errorf("round trip changed document:\n got %+v\nwant %+v\n%s", out, in, text)
			}
		})
	}
}

func TestFormat_OmitsEmptyDescription(t *testing.T) {
	text, err := Format(models.Document{ID: "a", Title: "A", Category: DefaultCategory, Body: "x"})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(text, "description") {
		t.Errorf("Format() wrote an empty description:\n%s", text)
	}
	if !strings.HasSuffix(text, "---\n\nx\n") {
		t.Errorf("Format() body section = %q", text)
	}
}
