// Package render turns synthesized models into human-readable documents.
// The markdown renderer ships a default template and accepts replacements
// through the same loader modalities templates usually come from (a string,
// or an fs.FS).
package render

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-modelgen/pkg/fieldgen"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/vocabulary"
)

//go:embed templates/model.md
var defaultTemplates embed.FS

const defaultTemplateName = "templates/model.md"

// Option configures the markdown renderer before construction.
type Option func(*config)

type config struct {
	templates    fs.FS
	templateName string
	source       string
	globals      map[string]any
}

// WithTemplateFS loads the named template from files instead of the built-in
// one.
func WithTemplateFS(files fs.FS, name string) Option {
	return func(cfg *config) {
		cfg.templates = files
		cfg.templateName = strings.TrimSpace(name)
	}
}

// WithTemplateString uses an inline template body.
func WithTemplateString(source string) Option {
	return func(cfg *config) {
		cfg.source = source
	}
}

// WithGlobals seeds context values available to every render.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Markdown renders one model per document. Safe for concurrent use once
// constructed.
type Markdown struct {
	template *pongo2.Template
	globals  map[string]any
}

// NewMarkdown constructs a markdown renderer. Without options it uses the
// built-in template.
func NewMarkdown(options ...Option) (*Markdown, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	loaders = append(loaders, pongo2.NewFSLoader(defaultTemplates))
	set := pongo2.NewSet("modelgen", loaders...)

	var (
		tmpl *pongo2.Template
		err  error
	)
	switch {
	case cfg.source != "":
		tmpl, err = set.FromString(cfg.source)
	case cfg.templateName != "":
		tmpl, err = set.FromFile(cfg.templateName)
	default:
		tmpl, err = set.FromFile(defaultTemplateName)
	}
	if err != nil {
		return nil, fmt.Errorf("render: load template: %w", err)
	}

	return &Markdown{template: tmpl, globals: cfg.globals}, nil
}

// ContentType reports the MIME type of rendered output.
func (r *Markdown) ContentType() string {
	return "text/markdown"
}

// Render produces the markdown document for one model.
func (r *Markdown) Render(ctx context.Context, m *model.Model) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("render: model is nil")
	}

	schemaJSON, err := m.SchemaJSON()
	if err != nil {
		return nil, fmt.Errorf("render: serialize schema: %w", err)
	}
	var pretty bytes.Buffer
	if err := indentJSON(&pretty, schemaJSON); err != nil {
		return nil, fmt.Errorf("render: format schema: %w", err)
	}

	viewContext := pongo2.Context{
		"name":   m.Name(),
		"fields": fieldRows(m.Fields()),
		"enums":  enumRows(m.Enums()),
		"schema": pretty.String(),
	}
	for key, value := range r.globals {
		if _, taken := viewContext[key]; !taken {
			viewContext[key] = value
		}
	}

	var buf bytes.Buffer
	if err := r.template.ExecuteWriter(viewContext, &buf); err != nil {
		return nil, fmt.Errorf("render: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func indentJSON(out *bytes.Buffer, raw []byte) error {
	return json.Indent(out, raw, "", "  ")
}

func fieldRows(fields []fieldgen.FieldSpec) []pongo2.Context {
	rows := make([]pongo2.Context, 0, len(fields))
	for _, field := range fields {
		description, _ := field.Constraints[vocabulary.KeyDescription].(string)
		rows = append(rows, pongo2.Context{
			"name":        field.Name,
			"exposed":     field.Exposed(),
			"type":        typeLabel(field),
			"required":    requiredLabel(field),
			"constraints": constraintLabel(field),
			"description": description,
		})
	}
	return rows
}

func enumRows(enums []*fieldgen.EnumType) []pongo2.Context {
	rows := make([]pongo2.Context, 0, len(enums))
	for _, enum := range enums {
		values := make([]string, 0, len(enum.Values))
		for _, raw := range enum.RawValues() {
			values = append(values, fmt.Sprintf("`%v`", raw))
		}
		rows = append(rows, pongo2.Context{
			"name":        enum.Name,
			"description": enum.Description,
			"values":      strings.Join(values, ", "),
		})
	}
	return rows
}

func typeLabel(field fieldgen.FieldSpec) string {
	if field.Type.Enum != nil {
		return field.Type.Enum.Name
	}
	label := field.Type.JSONType
	if field.Type.Format != "" {
		label += " (" + field.Type.Format + ")"
	}
	if field.Type.Item != nil {
		label = "array of " + field.Type.Item.JSONType
	}
	if field.Optional {
		label += ", nullable"
	}
	return label
}

func requiredLabel(field fieldgen.FieldSpec) string {
	if field.Required {
		return "yes"
	}
	return "no"
}

func constraintLabel(field fieldgen.FieldSpec) string {
	parts := make([]string, 0, len(field.Constraints))
	for key, value := range field.Constraints {
		keyword := vocabulary.SchemaKeyword(key)
		if keyword == "" || key == vocabulary.KeyTitle || key == vocabulary.KeyDescription {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", keyword, value))
	}
	sort.Strings(parts)
	if field.HasDefault && field.Default != nil {
		parts = append(parts, fmt.Sprintf("default=%v", field.Default))
	}
	return strings.Join(parts, ", ")
}
