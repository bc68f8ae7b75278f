package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-modelgen/pkg/fieldgen"
	"github.com/goliatone/go-modelgen/pkg/model"
)

// Constructor walks a model's fields in declaration order, asks for each
// value through the driver, and hands the answers to the model for
// validation.
type Constructor struct {
	driver Driver
}

// NewConstructor builds a Constructor over the given driver. A nil driver
// selects the terminal-backed one.
func NewConstructor(driver Driver) *Constructor {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Constructor{driver: driver}
}

// Construct prompts for every field and returns the validated instance.
// Blank answers leave the field to its default (or absent when it has none);
// fields with a default factory always show as generated and are left absent
// unless answered.
func (c *Constructor) Construct(ctx context.Context, m *model.Model) (*model.Instance, error) {
	if m == nil {
		return nil, fmt.Errorf("prompt: model is nil")
	}
	values := make(map[string]any, len(m.Fields()))
	for _, field := range m.Fields() {
		value, ok, err := c.ask(ctx, field)
		if err != nil {
			return nil, err
		}
		if ok {
			values[field.Exposed()] = value
		}
	}
	return m.New(values)
}

func (c *Constructor) ask(ctx context.Context, field fieldgen.FieldSpec) (any, bool, error) {
	if field.Type.Enum != nil {
		return c.askEnum(ctx, field)
	}
	switch field.Type.JSONType {
	case "boolean":
		return c.askBool(ctx, field)
	case "integer":
		return c.askScalar(ctx, field, parseInt)
	case "number":
		return c.askScalar(ctx, field, parseFloat)
	case "array":
		return c.askArray(ctx, field)
	default:
		if field.Type.Format == "date-time" {
			return c.askScalar(ctx, field, parseTimestamp)
		}
		return c.askScalar(ctx, field, func(s string) (any, error) { return s, nil })
	}
}

func (c *Constructor) askEnum(ctx context.Context, field fieldgen.FieldSpec) (any, bool, error) {
	raws := field.Type.Enum.RawValues()
	options := make([]string, 0, len(raws))
	defaultIndex := -1
	for i, raw := range raws {
		options = append(options, fmt.Sprint(raw))
		if field.HasDefault && raw == field.Default {
			defaultIndex = i
		}
	}
	index, err := c.driver.Select(ctx, SelectConfig{
		Message:      fieldMessage(field),
		Options:      options,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return nil, false, err
	}
	if index < 0 || index >= len(raws) {
		return nil, false, fmt.Errorf("prompt: selection %d out of range for %s", index, field.Exposed())
	}
	return raws[index], true, nil
}

func (c *Constructor) askBool(ctx context.Context, field fieldgen.FieldSpec) (any, bool, error) {
	def, _ := field.Default.(bool)
	value, err := c.driver.Confirm(ctx, ConfirmConfig{
		Message: fieldMessage(field),
		Default: def,
	})
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (c *Constructor) askScalar(ctx context.Context, field fieldgen.FieldSpec, parse func(string) (any, error)) (any, bool, error) {
	cfg := InputConfig{
		Message: fieldMessage(field),
		Help:    fieldHelp(field),
	}
	if field.HasDefault && field.Default != nil {
		cfg.Default = fmt.Sprint(field.Default)
	}
	cfg.Validator = func(answer string) error {
		if answer == "" {
			if field.Required {
				return fmt.Errorf("%s is required", field.Exposed())
			}
			return nil
		}
		_, err := parse(answer)
		return err
	}

	answer, err := c.driver.Input(ctx, cfg)
	if err != nil {
		return nil, false, err
	}
	if answer == "" {
		// Leave the field to its default resolution.
		return nil, false, nil
	}
	value, err := parse(answer)
	if err != nil {
		return nil, false, fmt.Errorf("prompt: %s: %w", field.Exposed(), err)
	}
	return value, true, nil
}

func (c *Constructor) askArray(ctx context.Context, field fieldgen.FieldSpec) (any, bool, error) {
	answer, err := c.driver.Input(ctx, InputConfig{
		Message: fieldMessage(field),
		Help:    "comma-separated values",
	})
	if err != nil {
		return nil, false, err
	}
	if answer == "" {
		return nil, false, nil
	}

	var parse func(string) (any, error)
	switch itemType(field) {
	case "integer":
		parse = parseInt
	case "number":
		parse = parseFloat
	case "boolean":
		parse = parseBool
	default:
		parse = func(s string) (any, error) { return s, nil }
	}

	parts := strings.Split(answer, ",")
	items := make([]any, 0, len(parts))
	for _, part := range parts {
		value, err := parse(strings.TrimSpace(part))
		if err != nil {
			return nil, false, fmt.Errorf("prompt: %s: %w", field.Exposed(), err)
		}
		items = append(items, value)
	}
	return items, true, nil
}

func itemType(field fieldgen.FieldSpec) string {
	if field.Type.Item == nil {
		return "string"
	}
	return field.Type.Item.JSONType
}

func fieldMessage(field fieldgen.FieldSpec) string {
	if field.Required {
		return field.Exposed() + " (required)"
	}
	return field.Exposed()
}

func fieldHelp(field fieldgen.FieldSpec) string {
	if field.DefaultFunc != nil {
		return "leave blank for a generated value"
	}
	return ""
}

func parseInt(s string) (any, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}

func parseFloat(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: %q", s)
	}
	return f, nil
}

func parseBool(s string) (any, error) {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("not a boolean: %q", s)
	}
	return b, nil
}

func parseTimestamp(s string) (any, error) {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("not an RFC 3339 timestamp: %q", s)
	}
	return ts, nil
}
