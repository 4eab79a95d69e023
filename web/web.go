// Package web holds the board's HTML templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templates embed.FS

// Templates parses the embedded templates. Names are the file base names,
// e.g. "index.html".
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templates, "templates/*.html"))
}
