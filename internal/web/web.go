// Package web bundles the browser-facing assets into the binary so the
// server ships as a single artifact.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

// Templates parses the embedded HTML templates.
func Templates() (*template.Template, error) {
	tmpl, err := template.ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return tmpl, nil
}

// Static returns the embedded assets rooted at the static directory, ready
// to mount under /static.
func Static() (fs.FS, error) {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("locating static assets: %w", err)
	}
	return sub, nil
}
