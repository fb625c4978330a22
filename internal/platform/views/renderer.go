// Package views renders the dashboard's Liquid templates.
package views

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/osteele/liquid"
)

//go:embed templates/*.liquid
var templateFS embed.FS

const templateExt = ".liquid"

// Renderer holds the parsed templates, keyed by name without extension.
type Renderer struct {
	engine    *liquid.Engine
	templates map[string]*liquid.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	return NewRendererFS(templateFS, "templates")
}

// NewRendererFS parses the *.liquid files under dir in fsys.
func NewRendererFS(fsys fs.FS, dir string) (*Renderer, error) {
	engine := liquid.NewEngine()
	registerFilters(engine)

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	r := &Renderer{engine: engine, templates: map[string]*liquid.Template{}}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateExt) {
			continue
		}
		source, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		tpl, sourceErr := engine.ParseTemplate(source)
		if sourceErr != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), sourceErr)
		}
		r.templates[strings.TrimSuffix(entry.Name(), templateExt)] = tpl
	}
	return r, nil
}

// Render executes template name. data is passed through JSON so templates
// address values by their JSON keys.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("view %q not found", name)
	}
	bindings, err := toBindings(data)
	if err != nil {
		return nil, err
	}
	out, sourceErr := tpl.Render(bindings)
	if sourceErr != nil {
		return nil, fmt.Errorf("render %s: %w", name, sourceErr)
	}
	return out, nil
}

func toBindings(data any) (liquid.Bindings, error) {
	if data == nil {
		return liquid.Bindings{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var bindings liquid.Bindings
	if err := json.Unmarshal(raw, &bindings); err != nil {
		return nil, fmt.Errorf("view data must encode to an object: %w", err)
	}
	return bindings, nil
}

func registerFilters(engine *liquid.Engine) {
	// {{ order.totalPrice | money }} -> 1234.50
	engine.RegisterFilter("money", func(value interface{}) string {
		switch v := value.(type) {
		case float64:
			return strconv.FormatFloat(v, 'f', 2, 64)
		case int:
			return strconv.FormatFloat(float64(v), 'f', 2, 64)
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return strconv.FormatFloat(f, 'f', 2, 64)
			}
			return v
		case nil:
			return ""
		default:
			return fmt.Sprint(v)
		}
	})
}
