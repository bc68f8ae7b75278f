package fieldgen

import (
	"fmt"

	"github.com/goliatone/go-modelgen/pkg/recordmodel"
	"github.com/goliatone/go-modelgen/pkg/vocabulary"
)

// UnsupportedTypeError reports a column whose storage type has no field
// mapping rule. Synthesis aborts; no partial model is produced.
type UnsupportedTypeError struct {
	Column string
	Kind   recordmodel.Kind
}

func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("fieldgen: column %q has no mapping rule for type %q", e.Column, e.Kind)
}

// ConstraintConflictError reports a disagreement between a constraint
// declared on the column type and the same constraint declared in the
// column's metadata bag. Both values are named so the schema author can see
// exactly what disagrees.
type ConstraintConflictError struct {
	Column      string
	Key         vocabulary.Key
	InfoValue   any
	ColumnValue any
	Detail      string
}

func (e ConstraintConflictError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("fieldgen: column %q: %s", e.Column, e.Detail)
	}
	return fmt.Sprintf(
		"fieldgen: column %q: %s (%v) differs from the value declared on the column type (%v); remove %s from info or set them to equal values",
		e.Column, e.Key, e.InfoValue, e.ColumnValue, e.Key,
	)
}
