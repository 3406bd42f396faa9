// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package mapdoc

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
)

//go:embed templates/map.html
var templates embed.FS

var mapTemplate = template.Must(template.ParseFS(templates, "templates/map.html"))

// Render writes doc as a standalone HTML page.
func Render(w io.Writer, doc *Document) error {
	if err := mapTemplate.ExecuteTemplate(w, "map.html", doc); err != nil {
		return fmt.Errorf("rendering map: %w", err)
	}

	return nil
}

// Save renders doc to path, creating the parent directory when needed.
func Save(path string, doc *Document) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return Render(f, doc)
}

// Open shows the saved document in the default viewer.
func Open(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	if err := browser.OpenFile(abs); err != nil {
		return fmt.Errorf("opening %s: %w", abs, err)
	}

	return nil
}
