package recordmodel_test

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-modelgen/pkg/recordmodel"
)

const personYAML = `
enums:
  - name: Status
    description: Account status.
    values:
      - {name: ACTIVE, value: A}
      - {name: INACTIVE, value: I}
tables:
  - name: Person
    columns:
      - name: id
        type: integer
        primary_key: true
      - name: age
        type: integer
        default: 0
        nullable: false
        comment: Age in years
        info:
          ge: 0
      - name: name
        type: string
        length: 128
        nullable: false
      - name: status
        type: enum
        enum: Status
      - name: tags
        type: array
        items: string
      - name: created_at
        type: datetime
        default_func: now
`

func TestLoadBytes(t *testing.T) {
	def, err := recordmodel.LoadBytes([]byte(personYAML))
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}

	table, ok := def.Table("Person")
	if !ok {
		t.Fatalf("expected Person table")
	}
	cols := table.Columns()
	if len(cols) != 6 {
		t.Fatalf("expected 6 columns, got %d", len(cols))
	}

	id := cols[0]
	if !id.PrimaryKey || id.Type.Kind != recordmodel.KindInteger {
		t.Fatalf("unexpected id column: %+v", id)
	}

	age := cols[1]
	if age.Nullable() {
		t.Fatalf("age should be NOT NULL")
	}
	if age.Default != 0 {
		t.Fatalf("unexpected age default: %v", age.Default)
	}
	if age.Comment != "Age in years" {
		t.Fatalf("unexpected age comment: %q", age.Comment)
	}
	if age.Info["ge"] != 0 {
		t.Fatalf("unexpected age info: %v", age.Info)
	}

	name := cols[2]
	if name.Type.Length != 128 {
		t.Fatalf("unexpected name length: %d", name.Type.Length)
	}

	status := cols[3]
	if status.Type.Enum == nil || status.Type.Enum.Name != "Status" {
		t.Fatalf("status should reference the Status enum")
	}
	if len(status.Type.Enum.Values) != 2 || status.Type.Enum.Values[0].Value != "A" {
		t.Fatalf("unexpected enum members: %+v", status.Type.Enum.Values)
	}

	tags := cols[4]
	if tags.Type.Kind != recordmodel.KindArray || tags.Type.Item.Kind != recordmodel.KindString {
		t.Fatalf("unexpected tags type: %+v", tags.Type)
	}

	created := cols[5]
	if created.DefaultFunc == nil {
		t.Fatalf("created_at should carry a default factory")
	}
	if _, ok := created.DefaultFunc().(time.Time); !ok {
		t.Fatalf("now factory should produce a time.Time")
	}
}

func TestLoadBytesUnknownEnum(t *testing.T) {
	raw := []byte(`
tables:
  - name: Test
    columns:
      - name: status
        type: enum
        enum: Missing
`)
	_, err := recordmodel.LoadBytes(raw)
	if err == nil || !strings.Contains(err.Error(), `unknown enum "Missing"`) {
		t.Fatalf("expected unknown enum error, got %v", err)
	}
}

func TestLoadBytesUnknownFactory(t *testing.T) {
	raw := []byte(`
tables:
  - name: Test
    columns:
      - name: token
        type: string
        default_func: nope
`)
	_, err := recordmodel.LoadBytes(raw)
	if err == nil || !strings.Contains(err.Error(), `unknown default factory "nope"`) {
		t.Fatalf("expected unknown factory error, got %v", err)
	}
}

func TestLoadBytesCustomFactory(t *testing.T) {
	raw := []byte(`
tables:
  - name: Test
    columns:
      - name: token
        type: string
        default_func: fixed
`)
	def, err := recordmodel.LoadBytes(raw, recordmodel.WithFactory("fixed", func() any { return "token-1" }))
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	table := def.Tables[0]
	col, _ := table.Column("token")
	if got := col.DefaultFunc(); got != "token-1" {
		t.Fatalf("unexpected factory value: %v", got)
	}
}
