package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"time"
)

// View represents a collection of parsed HTML templates.
type View struct {
	templates map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	"stars": func(v *float64) string {
		if v == nil {
			return "no ratings yet"
		}
		return fmt.Sprintf("%.2f", *v)
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
}

// New creates a new View by parsing all templates from the given filesystem.
func New(templateFS fs.FS) (*View, error) {
	v := &View{
		templates: make(map[string]*template.Template),
	}

	layouts, err := fs.Glob(templateFS, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}
	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	// Each page is parsed together with every layout so pages can fill the
	// blocks the base layout defines.
	for _, page := range pages {
		files := append(append([]string{}, layouts...), page)
		name := filepath.Base(page)
		ts, err := template.New(name).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		v.templates[name] = ts
	}

	return v, nil
}

// Has reports whether a page template with the given name was parsed.
func (v *View) Has(name string) bool {
	_, ok := v.templates[name]
	return ok
}

// Render executes a specific template by name.
func (v *View) Render(w io.Writer, name string, data map[string]interface{}) error {
	ts, ok := v.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	if data == nil {
		data = make(map[string]interface{})
	}

	// Execute into a buffer first so a failing template never leaves a
	// half-written response.
	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
