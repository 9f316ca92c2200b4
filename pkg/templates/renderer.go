package templates

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sync"

	"github.com/a-h/templ"
)

// Renderer loads html/template files from a filesystem and renders them by
// name. Parsed templates are cached; the cache holds parsed structure, not
// rendered output, so concurrent renders with different data are safe.
type Renderer struct {
	fs      fs.FS
	dir     string
	cache   map[string]*template.Template
	urlPath func(name string, params ...string) (string, error)
	mu      sync.RWMutex
}

// Config configures the renderer.
type Config struct {
	// Dir is the subdirectory holding templates. Default: ".".
	Dir string
}

// New creates a renderer reading templates from the given filesystem.
//
// Example:
//
//	//go:embed views
//	var viewsFS embed.FS
//
//	tmpl := templates.New(viewsFS, templates.Config{Dir: "views"})
func New(filesystem fs.FS, cfg Config) *Renderer {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	return &Renderer{
		fs:    filesystem,
		dir:   cfg.Dir,
		cache: make(map[string]*template.Template),
	}
}

// SetURLResolver installs the urlPath template function, which resolves a
// named route with param name/value pairs. The application calls this
// during construction; templates parsed before it is set see a resolver
// that always errors.
func (r *Renderer) SetURLResolver(fn func(name string, params ...string) (string, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urlPath = fn
	// Cached templates captured the old func map.
	r.cache = make(map[string]*template.Template)
}

// Render executes the named template with data, writing the output to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, err := r.get(name)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	return nil
}

// Component wraps a named template as a renderable component, letting
// file-based templates be returned anywhere a templ view is expected.
func (r *Renderer) Component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.Render(w, name, data)
	})
}

// get returns a cached template or parses and caches it.
func (r *Renderer) get(name string) (*template.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.cache[name]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if tmpl, ok := r.cache[name]; ok {
		return tmpl, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.dir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	tmpl, err := template.New(name).Funcs(r.funcMap()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	r.cache[name] = tmpl
	return tmpl, nil
}

// funcMap builds the template function map. Callers must hold r.mu.
func (r *Renderer) funcMap() template.FuncMap {
	urlPath := r.urlPath
	if urlPath == nil {
		urlPath = func(string, ...string) (string, error) {
			return "", fmt.Errorf("%w: url resolver not configured", ErrRenderFailed)
		}
	}
	return template.FuncMap{
		"urlPath": urlPath,
	}
}
