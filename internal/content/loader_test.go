package content

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/tealinux/teasite/pkg/models"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"1.Welcome/1.What is TeaLinux.md": {Data: []byte("---\ntitle: What is TeaLinux\ncategory: Welcome\n---\nTeaLinux is a distribution.")},
		"2.Installation/1.Requirements.md": {Data: []byte("---\ntitle: Requirements\ncategory: Installation\n---\nYou need 4 GB RAM.")},
		"2.Installation/legacy.html":       {Data: []byte("<html><head><title>Legacy BIOS</title></head><body><h1>Legacy</h1><p>Use <code>MBR</code>.</p></body></html>")},
		".drafts/secret.md":                {Data: []byte("# Draft")},
		"assets/logo.png":                  {Data: []byte{0x89, 0x50}},
	}
}

func TestFSLoader_Load(t *testing.T) {
	docs, err := NewFSLoader(testFS()).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	byID := map[string]models.Document{}
	for _, d := range docs {
		byID[d.ID] = d
	}

	if len(docs) != 3 {
		t.Fatalf("loaded %d documents, want 3: %v", len(docs), byID)
	}
	if _, ok := byID["welcome/what-is-tealinux"]; !ok {
		t.Error("missing welcome/what-is-tealinux")
	}

	legacy, ok := byID["installation/legacy"]
	if !ok {
		t.Fatal("missing converted HTML page")
	}
	if legacy.Title != "Legacy BIOS" {
		t.Errorf("HTML title = %q", legacy.Title)
	}
	if legacy.Body == "" || legacy.Body[0] == '<' {
		t.Errorf("HTML body was not converted: %q", legacy.Body)
	}
}

func TestFSLoader_MalformedPage(t *testing.T) {
	fsys := testFS()
	fsys["broken.md"] = &fstest.MapFile{Data: []byte("---\ntitle: [oops\n---\n")}

	if _, err := NewFSLoader(fsys).Load(context.Background()); err == nil {
		t.Error("Load() should fail on a malformed page")
	}
}

func TestNewDirLoader_Missing(t *testing.T) {
	if _, err := NewDirLoader(t.TempDir() + "/nope"); err == nil {
		t.Error("NewDirLoader() should fail for a missing dir")
	}
}

type fakeObjects struct {
	files map[string]string
}

func (f fakeObjects) ListMarkdownFiles(context.Context, string) ([]string, error) {
	var names []string
	for name := range f.files {
		names = append(names, name)
	}
	return names, nil
}

func (f fakeObjects) GetMarkdown(_ context.Context, _, name string) (string, error) {
	data, ok := f.files[name]
	if !ok {
		return "", errors.New("no such object")
	}
	return data, nil
}

func TestS3Loader_Load(t *testing.T) {
	objects := fakeObjects{files: map[string]string{
		"installation/boot.md": "---\ntitle: Boot\n---\nPress F12.",
		"about.md":             "# About\n\nTeaLinux.",
	}}

	docs, err := NewS3Loader(objects, "site/latest").Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	coll, err := NewCollection(docs)
	if err != nil {
		t.Fatalf("NewCollection() error = %v", err)
	}
	doc, err := coll.Get("installation/boot")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if doc.Title != "Boot" {
		t.Errorf("Title = %q", doc.Title)
	}
}

type fakeIndex struct {
	docs []models.Document
	err  error
}

func (f fakeIndex) All(context.Context) ([]models.Document, error) { return f.docs, f.err }

func TestIndexLoader_Load(t *testing.T) {
	want := []models.Document{{ID: "a", Title: "A"}}
	docs, err := NewIndexLoader(fakeIndex{docs: want}).Load(context.Background())
	if err != nil || len(docs) != 1 {
		t.Fatalf("Load() = %v, %v", docs, err)
	}

	if _, err := NewIndexLoader(fakeIndex{err: errors.New("down")}).Load(context.Background()); err == nil {
		t.Error("Load() should surface mirror errors")
	}
}
