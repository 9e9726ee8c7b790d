// Package web holds the single-page dashboard served at the root path.
package web

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed index.html
var indexHTML string

var page = template.Must(template.New("index").Parse(indexHTML))

// PageData is the server-side data baked into the page.
type PageData struct {
	Title          string
	Prompt         string
	MaxUploadBytes int64
}

// Render writes the dashboard page to w.
func Render(w io.Writer, data PageData) error {
	return page.Execute(w, data)
}
