package modelgen_test

import (
	"testing"

	modelgen "github.com/goliatone/go-modelgen"
)

const definitionYAML = `
enums:
  - name: Status
    values:
      - name: Active
        value: active
      - name: Inactive
        value: inactive
tables:
  - name: Person
    columns:
      - name: id
        type: integer
        primary_key: true
      - name: name
        type: string
        length: 32
        nullable: false
      - name: status
        type: enum
        enum: Status
        nullable: false
`

func TestSynthesizeBytes(t *testing.T) {
	models, err := modelgen.SynthesizeBytes([]byte(definitionYAML))
	if err != nil {
		t.Fatalf("SynthesizeBytes: %v", err)
	}
	person, ok := models["Person"]
	if !ok {
		t.Fatalf("models = %v, want Person", models)
	}

	inst, err := person.New(map[string]any{"id": 1, "name": "Ada", "status": "active"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := inst.MustGet("name"); got != "Ada" {
		t.Fatalf("name = %v", got)
	}

	if _, err := person.New(map[string]any{"id": 1, "name": "Ada", "status": "gone"}); err == nil {
		t.Fatal("expected enum violation")
	}
}

func TestSynthesizeBytesRejectsBadDefinition(t *testing.T) {
	if _, err := modelgen.SynthesizeBytes([]byte("tables: []")); err == nil {
		t.Fatal("expected empty definition error")
	}
}
