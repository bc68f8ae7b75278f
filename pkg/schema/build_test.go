package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/pkg/fieldgen"
	"github.com/goliatone/go-modelgen/pkg/recordmodel"
	"github.com/goliatone/go-modelgen/pkg/schema"
)

func mustField(t *testing.T, col *recordmodel.Column, registry *fieldgen.EnumRegistry) fieldgen.FieldSpec {
	t.Helper()
	spec, err := fieldgen.Synthesize(col, registry)
	if err != nil {
		t.Fatalf("synthesize %s: %v", col.Name, err)
	}
	return spec
}

func TestBuildBasicDocument(t *testing.T) {
	registry := fieldgen.NewEnumRegistry()
	fields := []fieldgen.FieldSpec{
		mustField(t, recordmodel.Integer("id").Primary(), registry),
		mustField(t, recordmodel.Integer("age").WithInfo(map[string]any{"ge": 0}), registry),
	}

	doc := schema.Build("Test", fields, registry.Types())

	want := map[string]any{
		"title": "Test",
		"type":  "object",
		"properties": map[string]any{
			"id":  map[string]any{"title": "Id", "type": "integer"},
			"age": map[string]any{"title": "Age", "minimum": 0, "type": "integer"},
		},
		"required": []string{"id"},
	}
	if diff := cmp.Diff(want, doc.Map()); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPreservesPropertyOrder(t *testing.T) {
	registry := fieldgen.NewEnumRegistry()
	fields := []fieldgen.FieldSpec{
		mustField(t, recordmodel.Integer("id").Primary(), registry),
		mustField(t, recordmodel.String("zeta"), registry),
		mustField(t, recordmodel.String("alpha"), registry),
		mustField(t, recordmodel.String("mid"), registry),
	}
	doc := schema.Build("Test", fields, registry.Types())

	wantOrder := []string{"id", "zeta", "alpha", "mid"}
	if diff := cmp.Diff(wantOrder, doc.PropertyNames()); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	text := string(raw)
	last := -1
	for _, name := range wantOrder {
		idx := strings.Index(text, `"`+name+`"`)
		if idx < 0 || idx < last {
			t.Fatalf("properties out of order in %s", text)
		}
		last = idx
	}
}

func TestBuildEnumDefinitions(t *testing.T) {
	def := recordmodel.NewEnum("Bool").Value("FALSE", "F").Value("TRUE", "T")
	registry := fieldgen.NewEnumRegistry()
	fields := []fieldgen.FieldSpec{
		mustField(t, recordmodel.Enum("boolean", def).WithDefault("T"), registry),
		mustField(t, recordmodel.Enum("other", def), registry),
	}
	doc := schema.Build("Test", fields, registry.Types())

	if len(doc.Definitions) != 1 {
		t.Fatalf("expected one definitions entry, got %d", len(doc.Definitions))
	}
	definition, _ := doc.Definition("Bool")
	want := map[string]any{
		"title": "Bool",
		"enum":  []any{"F", "T"},
		"type":  "string",
	}
	if diff := cmp.Diff(want, definition); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}

	// A field with a default keeps the $ref inside allOf; a bare enum field
	// references the definition directly.
	boolean, _ := doc.Property("boolean")
	wantBoolean := map[string]any{
		"allOf":   []any{map[string]any{"$ref": "#/definitions/Bool"}},
		"default": "T",
	}
	if diff := cmp.Diff(wantBoolean, boolean); diff != "" {
		t.Fatalf("boolean property mismatch (-want +got):\n%s", diff)
	}

	other, _ := doc.Property("other")
	wantOther := map[string]any{"$ref": "#/definitions/Bool"}
	if diff := cmp.Diff(wantOther, other); diff != "" {
		t.Fatalf("other property mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFullVocabulary(t *testing.T) {
	registry := fieldgen.NewEnumRegistry()
	fields := []fieldgen.FieldSpec{
		mustField(t, recordmodel.Integer("ge_le").WithInfo(map[string]any{"ge": 0, "le": 10}), registry),
		mustField(t, recordmodel.Integer("gt_lt").WithInfo(map[string]any{"gt": 0, "lt": 10}), registry),
		mustField(t, recordmodel.Array("items", recordmodel.KindString).WithInfo(map[string]any{"min_items": 0, "max_items": 2}), registry),
		mustField(t, recordmodel.Integer("multiple").WithInfo(map[string]any{"multiple_of": 2}), registry),
		mustField(t, recordmodel.Text("string").NotNull().WithDefault("").WithInfo(map[string]any{
			"alias":       "text",
			"description": "Some string",
			"example":     "Example",
			"max_length":  64,
			"min_length":  0,
			"regex":       `\w+`,
			"title":       "SomeString",
		}), registry),
	}
	doc := schema.Build("Test", fields, registry.Types())

	wantProps := map[string]any{
		"ge_le":    map[string]any{"title": "Ge Le", "minimum": 0, "maximum": 10, "type": "integer"},
		"gt_lt":    map[string]any{"title": "Gt Lt", "exclusiveMinimum": 0, "exclusiveMaximum": 10, "type": "integer"},
		"items":    map[string]any{"title": "Items", "minItems": 0, "maxItems": 2, "type": "array", "items": map[string]any{"type": "string"}},
		"multiple": map[string]any{"title": "Multiple", "multipleOf": 2, "type": "integer"},
		"text": map[string]any{
			"title":       "SomeString",
			"description": "Some string",
			"default":     "",
			"maxLength":   64,
			"minLength":   0,
			"pattern":     `\w+`,
			"example":     "Example",
			"type":        "string",
		},
	}
	for name, want := range wantProps {
		got, ok := doc.Property(name)
		if !ok {
			t.Fatalf("missing property %q", name)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("property %q mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestBuildSanitizesMarkup(t *testing.T) {
	registry := fieldgen.NewEnumRegistry()
	fields := []fieldgen.FieldSpec{
		mustField(t, recordmodel.Integer("age").WithInfo(map[string]any{
			"description": `Age <script>alert("x")</script>in years`,
		}), registry),
	}
	doc := schema.Build("Test", fields, registry.Types())
	prop, _ := doc.Property("age")
	desc, _ := prop["description"].(string)
	if strings.Contains(desc, "<script>") {
		t.Fatalf("description should be sanitized, got %q", desc)
	}
	if !strings.Contains(desc, "Age") || !strings.Contains(desc, "in years") {
		t.Fatalf("sanitization should keep text content, got %q", desc)
	}
}

func TestDateTimeFormat(t *testing.T) {
	registry := fieldgen.NewEnumRegistry()
	fields := []fieldgen.FieldSpec{
		mustField(t, recordmodel.DateTime("datetime"), registry),
	}
	doc := schema.Build("Test", fields, registry.Types())
	prop, _ := doc.Property("datetime")
	want := map[string]any{"title": "Datetime", "type": "string", "format": "date-time"}
	if diff := cmp.Diff(want, prop); diff != "" {
		t.Fatalf("datetime property mismatch (-want +got):\n%s", diff)
	}
}
