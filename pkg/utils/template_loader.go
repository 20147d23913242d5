package utils

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
)

// LoadTemplates parses every template in fsys matching pattern. The file named
// root is parsed first so it becomes the returned template's name.
func LoadTemplates(fsys fs.FS, pattern, root string, funcs template.FuncMap) (*template.Template, error) {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found for %s", pattern)
	}

	sort.Strings(files)

	ordered := make([]string, 0, len(files))
	for _, file := range files {
		if path.Base(file) == root {
			ordered = append(ordered, file)
		}
	}
	for _, file := range files {
		if path.Base(file) != root {
			ordered = append(ordered, file)
		}
	}

	tmpl := template.New(path.Base(ordered[0]))
	if funcs != nil {
		tmpl = tmpl.Funcs(funcs)
	}

	if _, err := tmpl.ParseFS(fsys, ordered...); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}
