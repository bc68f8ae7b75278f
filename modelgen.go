// Package modelgen derives validated data-transfer models from declarative,
// column-oriented record-model definitions. Column types, nullability,
// defaults, and per-field metadata become a runtime model with keyword
// construction, per-field validation, and JSON-Schema introspection.
package modelgen

import (
	"context"
	"fmt"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/recordmodel"
	"github.com/goliatone/go-modelgen/pkg/render"
)

// Model is a synthesized validated-model type.
type Model = model.Model

// Instance is one validated record of a Model.
type Instance = model.Instance

// Config is model-level configuration passed through at synthesis time.
type Config = model.Config

// Option configures model synthesis.
type Option = model.Option

// WithConfig attaches model-level configuration.
func WithConfig(config Config) Option {
	return model.WithConfig(config)
}

// Synthesize derives a validated model from a table definition. It is the
// simplest entry point for callers that declare tables in code.
func Synthesize(table *recordmodel.Table, options ...Option) (*Model, error) {
	return model.Synthesize(table, options...)
}

// SynthesizeFile loads a YAML definition and synthesizes every table it
// declares, keyed by table name. The first failing table aborts the whole
// call.
func SynthesizeFile(path string, options ...Option) (map[string]*Model, error) {
	definition, err := recordmodel.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return synthesizeDefinition(definition, options...)
}

// SynthesizeBytes behaves like SynthesizeFile for an in-memory definition.
func SynthesizeBytes(raw []byte, options ...Option) (map[string]*Model, error) {
	definition, err := recordmodel.LoadBytes(raw)
	if err != nil {
		return nil, err
	}
	return synthesizeDefinition(definition, options...)
}

// RenderMarkdown renders the model's markdown reference page with the
// default template.
func RenderMarkdown(ctx context.Context, m *Model) ([]byte, error) {
	renderer, err := render.NewMarkdown()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, m)
}

func synthesizeDefinition(definition *recordmodel.Definition, options ...Option) (map[string]*Model, error) {
	models := make(map[string]*Model, len(definition.Tables))
	for _, table := range definition.Tables {
		m, err := model.Synthesize(table, options...)
		if err != nil {
			return nil, fmt.Errorf("modelgen: table %q: %w", table.Name(), err)
		}
		models[table.Name()] = m
	}
	return models, nil
}
