// Package vocabulary defines the closed set of per-field constraint keys the
// synthesizer understands, which keys are legal for each primitive field
// kind, and how each key maps onto a JSON-Schema keyword.
package vocabulary

// Key is a recognized metadata-bag constraint key.
type Key string

const (
	KeyGE         Key = "ge"
	KeyGT         Key = "gt"
	KeyLE         Key = "le"
	KeyLT         Key = "lt"
	KeyMultipleOf Key = "multiple_of"

	KeyMinLength Key = "min_length"
	KeyMaxLength Key = "max_length"
	KeyRegex     Key = "regex"

	KeyMinItems Key = "min_items"
	KeyMaxItems Key = "max_items"

	KeyAlias         Key = "alias"
	KeyTitle         Key = "title"
	KeyDescription   Key = "description"
	KeyConst         Key = "const"
	KeyExample       Key = "example"
	KeyAllowMutation Key = "allow_mutation"
)

// FieldKind classifies a field's primitive shape for constraint legality.
type FieldKind string

const (
	// FieldNumeric covers integer and floating-point fields.
	FieldNumeric FieldKind = "numeric"
	// FieldString covers string-valued fields.
	FieldString FieldKind = "string"
	// FieldSequence covers array fields.
	FieldSequence FieldKind = "sequence"
	// FieldOther covers kinds that accept only the annotation keys
	// (boolean, timestamp, enumeration).
	FieldOther FieldKind = "other"
)

// schemaKeywords maps vocabulary keys to their JSON-Schema spelling. Keys
// absent here (alias) shape the field structurally instead of emitting a
// keyword.
var schemaKeywords = map[Key]string{
	KeyGE:            "minimum",
	KeyGT:            "exclusiveMinimum",
	KeyLE:            "maximum",
	KeyLT:            "exclusiveMaximum",
	KeyMultipleOf:    "multipleOf",
	KeyMinLength:     "minLength",
	KeyMaxLength:     "maxLength",
	KeyRegex:         "pattern",
	KeyMinItems:      "minItems",
	KeyMaxItems:      "maxItems",
	KeyTitle:         "title",
	KeyDescription:   "description",
	KeyConst:         "const",
	KeyExample:       "example",
	KeyAllowMutation: "allow_mutation",
}

var kindKeys = map[FieldKind][]Key{
	FieldNumeric:  {KeyGE, KeyGT, KeyLE, KeyLT, KeyMultipleOf},
	FieldString:   {KeyMinLength, KeyMaxLength, KeyRegex},
	FieldSequence: {KeyMinItems, KeyMaxItems},
}

// annotationKeys are legal for every field kind.
var annotationKeys = []Key{KeyAlias, KeyTitle, KeyDescription, KeyConst, KeyExample, KeyAllowMutation}

// Known reports whether raw names a vocabulary key.
func Known(raw string) bool {
	switch Key(raw) {
	case KeyGE, KeyGT, KeyLE, KeyLT, KeyMultipleOf,
		KeyMinLength, KeyMaxLength, KeyRegex,
		KeyMinItems, KeyMaxItems,
		KeyAlias, KeyTitle, KeyDescription, KeyConst, KeyExample, KeyAllowMutation:
		return true
	}
	return false
}

// LegalFor reports whether key may constrain a field of the given kind.
func LegalFor(key Key, kind FieldKind) bool {
	for _, k := range annotationKeys {
		if k == key {
			return true
		}
	}
	for _, k := range kindKeys[kind] {
		if k == key {
			return true
		}
	}
	return false
}

// SchemaKeyword returns the JSON-Schema keyword for key, or "" when the key
// has no schema spelling.
func SchemaKeyword(key Key) string {
	return schemaKeywords[key]
}

// Split partitions a metadata bag into vocabulary constraints legal for the
// field kind and the remaining entries. Recognized-but-illegal keys and
// unrecognized keys both land in extras: they are passed through verbatim to
// the synthesized field's metadata channel, never rejected.
func Split(info map[string]any, kind FieldKind) (constraints map[Key]any, extras map[string]any) {
	if len(info) == 0 {
		return nil, nil
	}
	for raw, value := range info {
		key := Key(raw)
		if Known(raw) && LegalFor(key, kind) {
			if constraints == nil {
				constraints = make(map[Key]any)
			}
			constraints[key] = value
			continue
		}
		if extras == nil {
			extras = make(map[string]any)
		}
		extras[raw] = value
	}
	return constraints, extras
}
