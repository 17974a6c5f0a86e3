package plan

import (
	"errors"
	"fmt"
	"go/token"

	"builder-generator/internal/analyze"
	"builder-generator/internal/diagnostic"
)

// PlanSlots classifies fields and lays out one builder slot per field, in
// field order. Every failing field is reported.
func PlanSlots(record string, fields []analyze.FieldInfo, diags *diagnostic.Diagnostics) ([]Slot, error) {
	slots := make([]Slot, 0, len(fields))

	var errs []error
	for i := range fields {
		field := &fields[i]

		class, err := ClassifyField(record, field, diags)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		reserved := ReferencedNames(field.Type)

		slot := Slot{
			Field:  field,
			Name:   SlotName(field.Name),
			Class:  class,
			Setter: SetterName(field.Name),
			Param:  ParamName(field.Name, reserved...),
		}

		switch class.Shape {
		case ShapePlain:
			slot.Type = analyze.NewPointer(field.Type)
		case ShapeOptional:
			slot.Type = field.Type
		case ShapeRepeated:
			slot.Type = field.Type
			slot.AppendParam = ParamName(class.Append, reserved...)
		}

		slots = append(slots, slot)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return slots, nil
}

// NewBuilderPlan plans the builder of record.
func NewBuilderPlan(record *analyze.RecordInfo) (*BuilderPlan, error) {
	name := record.Name()

	if record.IsGeneric() {
		return nil, diagnostic.Errorf(diagnostic.ErrUnsupportedShape, name, "",
			"generic records are not supported (type parameters %v)", record.TypeParams).At(record.Pos)
	}

	p := &BuilderPlan{
		Record:      record,
		RecordName:  name,
		BuilderName: BuilderName(name),
	}
	p.FactoryName = FactoryName(p.BuilderName, token.IsExported(name))

	slots, err := PlanSlots(name, record.Fields, &p.Diagnostics)
	if err != nil {
		return nil, err
	}

	p.Slots = slots
	if len(slots) == 0 {
		p.Diagnostics.AddInfo(diagnostic.CodeEmptyRecord, "record has no fields, Build always succeeds", name, "")
	}

	if err := checkNames(p); err != nil {
		return nil, err
	}

	return p, nil
}

// checkNames rejects two generated members of the builder sharing a name.
// Fields and methods live in one namespace.
func checkNames(p *BuilderPlan) error {
	owners := map[string]string{BuildMethod: "method `" + BuildMethod + "`"}

	var errs []error
	claim := func(field *analyze.FieldInfo, name, owner string) {
		if prev, ok := owners[name]; ok {
			errs = append(errs, diagnostic.Errorf(diagnostic.ErrNameCollision, p.RecordName, field.Name,
				"%s collides with %s on %s", owner, prev, p.BuilderName).At(field.Pos))

			return
		}

		owners[name] = owner
	}

	for i := range p.Slots {
		s := &p.Slots[i]

		claim(s.Field, s.Name, fmt.Sprintf("field `%s`", s.Name))
		claim(s.Field, s.Setter, fmt.Sprintf("setter `%s`", s.Setter))

		if s.Class.Shape == ShapeRepeated {
			claim(s.Field, s.Class.Append, fmt.Sprintf("append setter `%s`", s.Class.Append))
		}
	}

	return errors.Join(errs...)
}
