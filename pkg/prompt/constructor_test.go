package prompt_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/prompt"
	"github.com/goliatone/go-modelgen/pkg/recordmodel"
)

type scriptedDriver struct {
	inputs   []string
	confirms []bool
	selects  []int
	err      error
}

func (d *scriptedDriver) Input(_ context.Context, _ prompt.InputConfig) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	if len(d.inputs) == 0 {
		return "", nil
	}
	answer := d.inputs[0]
	d.inputs = d.inputs[1:]
	return answer, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, _ prompt.ConfirmConfig) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	if len(d.confirms) == 0 {
		return false, nil
	}
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func (d *scriptedDriver) Select(_ context.Context, _ prompt.SelectConfig) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if len(d.selects) == 0 {
		return 0, nil
	}
	answer := d.selects[0]
	d.selects = d.selects[1:]
	return answer, nil
}

func accountModel(t *testing.T) *model.Model {
	t.Helper()
	status := recordmodel.NewEnum("Status").
		Value("Active", "active").
		Value("Inactive", "inactive")
	table := recordmodel.MustTable("Account",
		recordmodel.Integer("id").Primary(),
		recordmodel.String("name").NotNull(),
		recordmodel.Bool("active").NotNull().WithDefault(true),
		recordmodel.Enum("status", status).NotNull(),
		recordmodel.Array("tags", recordmodel.KindString),
	)
	m, err := model.Synthesize(table)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	return m
}

func TestConstructFromAnswers(t *testing.T) {
	m := accountModel(t)
	driver := &scriptedDriver{
		inputs:   []string{"7", "Ada", "math, pioneer"},
		confirms: []bool{true},
		selects:  []int{1},
	}
	inst, err := prompt.NewConstructor(driver).Construct(context.Background(), m)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}

	if got := inst.MustGet("id"); got != 7 {
		t.Fatalf("id = %v, want 7", got)
	}
	if got := inst.MustGet("name"); got != "Ada" {
		t.Fatalf("name = %v", got)
	}
	if got := inst.MustGet("active"); got != true {
		t.Fatalf("active = %v", got)
	}
	if got := inst.MustGet("status"); got != "inactive" {
		t.Fatalf("status = %v", got)
	}
	want := []any{"math", "pioneer"}
	if diff := cmp.Diff(want, inst.MustGet("tags")); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestConstructBlankLeavesDefaults(t *testing.T) {
	table := recordmodel.MustTable("Counter",
		recordmodel.Integer("seq").NotNull().WithDefault(10),
		recordmodel.String("note"),
	)
	m, err := model.Synthesize(table)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	driver := &scriptedDriver{inputs: []string{"", ""}}
	inst, err := prompt.NewConstructor(driver).Construct(context.Background(), m)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if got := inst.MustGet("seq"); got != 10 {
		t.Fatalf("seq = %v, want default 10", got)
	}
	value, ok := inst.Get("note")
	if !ok || value != nil {
		t.Fatalf("note = %v present=%v, want nil", value, ok)
	}
}

func TestConstructPropagatesCancel(t *testing.T) {
	m := accountModel(t)
	driver := &scriptedDriver{err: prompt.ErrCanceled}
	if _, err := prompt.NewConstructor(driver).Construct(context.Background(), m); err != prompt.ErrCanceled {
		t.Fatalf("err = %v, want ErrCanceled", err)
	}
}

func TestConstructValidates(t *testing.T) {
	table := recordmodel.MustTable("Person",
		recordmodel.Integer("age").NotNull().WithInfo(map[string]any{"ge": 0}),
	)
	m, err := model.Synthesize(table)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	driver := &scriptedDriver{inputs: []string{"-1"}}
	if _, err := prompt.NewConstructor(driver).Construct(context.Background(), m); err == nil {
		t.Fatal("expected validation error")
	}
}
