package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/recordmodel"
)

func TestSetUncheckedByDefault(t *testing.T) {
	table := recordmodel.MustTable("Person",
		recordmodel.Integer("id").Primary().WithInfo(map[string]any{"allow_mutation": false}),
		recordmodel.Integer("age").NotNull().WithInfo(map[string]any{"ge": 0}),
	)
	m, err := model.Synthesize(table)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	inst, err := m.New(map[string]any{"id": 1, "age": 30})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Construction-only validation: assignments land unchecked, including
	// writes to fields marked immutable.
	if err := inst.Set("age", -5); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := inst.Set("id", 2); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := inst.MustGet("id"); got != 2 {
		t.Fatalf("id = %v, want 2", got)
	}
}

func TestSetWithValidateAssignment(t *testing.T) {
	table := recordmodel.MustTable("Person",
		recordmodel.Integer("id").Primary().WithInfo(map[string]any{"allow_mutation": false}),
		recordmodel.Integer("age").NotNull().WithInfo(map[string]any{"ge": 0}),
		recordmodel.String("nickname"),
	)
	m, err := model.Synthesize(table, model.WithConfig(model.Config{ValidateAssignment: true}))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	inst, err := m.New(map[string]any{"id": 1, "age": 30})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := inst.Set("id", 2); err == nil {
		t.Fatal("expected immutable field to reject assignment")
	} else if !strings.Contains(err.Error(), "immutable") {
		t.Fatalf("error = %v, want mention of immutability", err)
	}
	if got := inst.MustGet("id"); got != 1 {
		t.Fatalf("id = %v, want 1 after rejected write", got)
	}

	if err := inst.Set("age", -5); err == nil {
		t.Fatal("expected constraint violation on assignment")
	} else {
		var verr *model.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError, got %T: %v", err, err)
		}
		if verr.Field != "age" {
			t.Fatalf("Field = %q, want %q", verr.Field, "age")
		}
	}

	if err := inst.Set("age", 31); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := inst.MustGet("age"); got != 31 {
		t.Fatalf("age = %v, want 31", got)
	}

	// Nullable fields accept nil, non-nullable fields do not.
	if err := inst.Set("nickname", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := inst.Set("age", nil); err == nil {
		t.Fatal("expected nil rejected for non-nullable field")
	}

	if err := inst.Set("missing", 1); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestInstanceMap(t *testing.T) {
	table := recordmodel.MustTable("Person",
		recordmodel.Integer("id").Primary(),
		recordmodel.String("name").NotNull(),
	)
	m, err := model.Synthesize(table)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	inst, err := m.New(map[string]any{"id": 1, "name": "Ada"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	values := inst.Map()
	values["name"] = "mutated"
	if got := inst.MustGet("name"); got != "Ada" {
		t.Fatalf("Map aliases instance storage: name = %v", got)
	}
}
