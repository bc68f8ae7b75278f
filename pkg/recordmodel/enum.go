package recordmodel

// EnumValue is one named member of an enumeration, in declaration order.
type EnumValue struct {
	Name  string
	Value any
}

// EnumDef declares a reusable enumeration. Columns referencing the same
// *EnumDef share one schema definition in the synthesized model.
type EnumDef struct {
	Name        string
	Description string
	Values      []EnumValue
}

// NewEnum starts an enumeration definition.
func NewEnum(name string) *EnumDef {
	return &EnumDef{Name: name}
}

// Value appends a member. Member order is declaration order and is preserved
// in the emitted schema.
func (e *EnumDef) Value(name string, value any) *EnumDef {
	e.Values = append(e.Values, EnumValue{Name: name, Value: value})
	return e
}

// Describe attaches a description surfaced in the schema definition entry.
func (e *EnumDef) Describe(description string) *EnumDef {
	e.Description = description
	return e
}

// RawValues returns the member values in declaration order.
func (e *EnumDef) RawValues() []any {
	out := make([]any, 0, len(e.Values))
	for _, v := range e.Values {
		out = append(out, v.Value)
	}
	return out
}
