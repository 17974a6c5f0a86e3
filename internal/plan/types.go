package plan

import (
	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
	"builder-generator/internal/diagnostic"
)

// Shape is the classification of a record field.
type Shape int

const (
	// ShapePlain fields are required: Build fails while they are unset.
	ShapePlain Shape = iota
	// ShapeOptional fields have a pointer type and may stay nil.
	ShapeOptional
	// ShapeRepeated fields are slices filled one element at a time.
	ShapeRepeated
)

// String returns a human-readable representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapePlain:
		return "plain"
	case ShapeOptional:
		return "optional"
	case ShapeRepeated:
		return "repeated"
	default:
		return common.UnknownStr
	}
}

// MarshalText lets reports print shapes by name.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classification is the outcome of ClassifyField.
type Classification struct {
	Shape Shape
	// Type is the field type for plain fields, the pointee for optional
	// fields and the element type for repeated fields.
	Type *analyze.TypeInfo
	// Append names the append-one-element setter. Repeated only.
	Append string
}

// Slot is one field of the generated builder struct.
type Slot struct {
	Field *analyze.FieldInfo
	// Name is the builder struct field holding the value.
	Name string
	// Type is the slot type: *T for plain and optional fields, []T for
	// repeated fields.
	Type  *analyze.TypeInfo
	Class Classification

	// Setter is the method assigning the whole field.
	Setter string
	// Param is the parameter name of Setter.
	Param string
	// AppendParam is the parameter name of the append setter.
	AppendParam string
}

// Required reports whether Build fails while the slot is unset.
func (s *Slot) Required() bool {
	return s.Class.Shape == ShapePlain
}

// BuilderPlan is everything code generation needs to emit one builder.
type BuilderPlan struct {
	Record      *analyze.RecordInfo
	RecordName  string
	BuilderName string
	FactoryName string
	Slots       []Slot
	Diagnostics diagnostic.Diagnostics
}

// PkgPath returns the import path of the package the builder is emitted into.
func (p *BuilderPlan) PkgPath() string {
	return p.Record.ID.PkgPath
}
