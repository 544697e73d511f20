// Package catalog keeps named sheetfmt templates.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/observability"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/scan"
)

// Sentinel errors for catalog operations.
var (
	// ErrNotFound indicates no template is registered under a name.
	ErrNotFound = errors.New("template not found")

	// ErrEmptyName indicates a registration without a name.
	ErrEmptyName = errors.New("template name is empty")
)

// Template is a registered template.
type Template struct {
	Name string
	Text string
	// Placeholders is the number of top-level placeholders in Text.
	Placeholders int
}

// Catalog is a thread-safe set of named templates rendered with one
// Expander. Templates are checked for balanced braces on registration.
type Catalog struct {
	mu        sync.RWMutex
	templates map[string]Template
	expander  *sheetfmt.Expander
}

// New creates an empty catalog. A nil expander uses sheetfmt defaults.
func New(exp *sheetfmt.Expander) *Catalog {
	if exp == nil {
		exp = sheetfmt.NewExpander()
	}
	return &Catalog{
		templates: make(map[string]Template),
		expander:  exp,
	}
}

func compile(name, text string) (Template, error) {
	if name == "" {
		return Template{}, ErrEmptyName
	}
	segs, err := scan.Segments(text)
	if err != nil {
		return Template{}, fmt.Errorf("template %q: %w", name, err)
	}
	t := Template{Name: name, Text: text}
	for _, seg := range segs {
		if seg.Placeholder {
			t.Placeholders++
		}
	}
	return t, nil
}

// Register adds or replaces a template.
func (c *Catalog) Register(name, text string) error {
	t, err := compile(name, text)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates[name] = t
	return nil
}

// RegisterMany adds all templates, or none if any is malformed.
func (c *Catalog) RegisterMany(templates map[string]string) error {
	compiled := make([]Template, 0, len(templates))
	for name, text := range templates {
		t, err := compile(name, text)
		if err != nil {
			return err
		}
		compiled = append(compiled, t)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range compiled {
		c.templates[t.Name] = t
	}
	return nil
}

// Get returns the template registered under name.
func (c *Catalog) Get(name string) (Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.templates[name]
	return t, ok
}

// Has returns true if a template is registered under name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Delete removes a template.
func (c *Catalog) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.templates, name)
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	c.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered templates.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.templates)
}

// Render expands the named template. Logs, metrics and spans are labelled
// with the template name.
func (c *Catalog) Render(ctx context.Context, name string, args sheetfmt.Args) (string, error) {
	t, ok := c.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	ctx = observability.WithTemplateName(ctx, name)
	return c.expander.ExpandContext(ctx, t.Text, args)
}

// RenderRows expands the named template once per argument list and fails
// on the first row that fails.
func (c *Catalog) RenderRows(ctx context.Context, name string, rows []sheetfmt.Args) ([]string, error) {
	t, ok := c.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	ctx = observability.WithTemplateName(ctx, name)
	return c.expander.ExpandRowsContext(ctx, t.Text, rows)
}
