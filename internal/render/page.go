package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/tealinux/teasite/pkg/models"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Doc.Title}} | {{.Site}}</title>
{{- with .Doc.Description}}
<meta name="description" content="{{.}}">
{{- end}}
</head>
<body>
<nav class="docs-nav">
{{- range .Nav}}
<section>
<h2>{{.Title}}</h2>
<ul>
{{- range .Items}}
<li><a href="{{$.Prefix}}{{.Slug}}"{{if eq .Slug $.Doc.ID}} aria-current="page"{{end}}>{{.Title}}</a></li>
{{- end}}
</ul>
</section>
{{- end}}
</nav>
<main>
<p class="docs-category">{{.Doc.Category}}</p>
<article>
{{.Body}}
</article>
</main>
</body>
</html>
`))

// PageData is what a documentation page is rendered from.
type PageData struct {
	Site   string
	Prefix string // URL prefix of document links, e.g. "/docs/"
	Doc    models.Document
	Nav    []models.NavSection
}

type pageView struct {
	PageData
	Body template.HTML
}

// Page renders a full HTML page for a document with the sidebar navigation.
func Page(data PageData) (string, error) {
	body, err := HTML(data.Doc.Body)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageView{PageData: data, Body: template.HTML(body)}); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}
