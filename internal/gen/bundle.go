package gen

import (
	"fmt"
	"go/token"

	"github.com/dave/jennifer/jen"

	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
	"builder-generator/internal/plan"
)

// Decl is one top-level declaration of a generated file.
type Decl struct {
	// Name is the declared identifier.
	Name string
	// Doc is the doc comment text, emitted when comments are enabled.
	Doc  string
	Code jen.Code
}

// Bundle holds the declarations synthesized for one builder.
type Bundle struct {
	PkgPath  string
	PkgName  string
	Dir      string
	Filename string
	// Imports maps the import path of every package a field type refers to
	// onto its package name.
	Imports map[string]string

	Struct  Decl
	Factory Decl
	Setters []Decl
	Build   Decl
}

// Decls returns the declarations in emission order.
func (b *Bundle) Decls() []Decl {
	decls := make([]Decl, 0, len(b.Setters)+3)
	decls = append(decls, b.Struct, b.Factory)
	decls = append(decls, b.Setters...)

	return append(decls, b.Build)
}

// Synthesize produces the builder struct, factory, setters and Build method
// of a plan.
func Synthesize(p *plan.BuilderPlan, cfg GeneratorConfig) (*Bundle, error) {
	s := &synthesizer{plan: p, cfg: cfg}

	structDecl, err := s.structDecl()
	if err != nil {
		return nil, err
	}

	setters, err := s.setters()
	if err != nil {
		return nil, err
	}

	build, err := s.buildDecl()
	if err != nil {
		return nil, err
	}

	return &Bundle{
		PkgPath:  p.PkgPath(),
		PkgName:  p.Record.PkgName,
		Dir:      p.Record.Dir,
		Filename: common.SnakeCase(p.RecordName) + cfg.FileSuffix,
		Imports:  s.imports(),
		Struct:   structDecl,
		Factory:  s.factoryDecl(),
		Setters:  setters,
		Build:    build,
	}, nil
}

type synthesizer struct {
	plan *plan.BuilderPlan
	cfg  GeneratorConfig
}

// imports collects the packages of the named types in every slot, so the
// rendered file uses the names setter parameters were planned around.
func (s *synthesizer) imports() map[string]string {
	imports := make(map[string]string)

	var walk func(t *analyze.TypeInfo)
	walk = func(t *analyze.TypeInfo) {
		if t == nil {
			return
		}

		if t.IsNamed() && t.ID.PkgPath != "" && t.ID.PkgPath != s.plan.PkgPath() {
			if name := t.PkgName(); token.IsIdentifier(name) {
				imports[t.ID.PkgPath] = name
			}
		}

		walk(t.KeyType)
		walk(t.ElemType)

		for _, arg := range t.TypeArgs {
			walk(arg)
		}
	}

	for i := range s.plan.Slots {
		walk(s.plan.Slots[i].Type)
	}

	return imports
}

func recv() *jen.Statement {
	return jen.Id(plan.ReceiverName)
}

func (s *synthesizer) builderPtr() *jen.Statement {
	return jen.Op("*").Id(s.plan.BuilderName)
}

func (s *synthesizer) structDecl() (Decl, error) {
	fields := make([]jen.Code, 0, len(s.plan.Slots))
	for i := range s.plan.Slots {
		slot := &s.plan.Slots[i]

		t, err := typeCode(slot.Type)
		if err != nil {
			return Decl{}, fmt.Errorf("field %s: %w", slot.Field.Name, err)
		}

		fields = append(fields, jen.Id(slot.Name).Add(t))
	}

	return Decl{
		Name: s.plan.BuilderName,
		Doc:  fmt.Sprintf("%s builds %s values one field at a time.", s.plan.BuilderName, s.plan.RecordName),
		Code: jen.Type().Id(s.plan.BuilderName).Struct(fields...),
	}, nil
}

func (s *synthesizer) factoryDecl() Decl {
	return Decl{
		Name: s.plan.FactoryName,
		Doc:  fmt.Sprintf("%s returns a %s with no field set.", s.plan.FactoryName, s.plan.BuilderName),
		Code: jen.Func().Id(s.plan.FactoryName).Params().Add(s.builderPtr()).Block(
			jen.Return(jen.Op("&").Id(s.plan.BuilderName).Values()),
		),
	}
}

// method renders `func (b *Builder) name(param T) *Builder { body; return b }`.
func (s *synthesizer) method(name, param string, paramType jen.Code, body jen.Code) *jen.Statement {
	return jen.Func().Params(recv().Add(s.builderPtr())).Id(name).
		Params(jen.Id(param).Add(paramType)).
		Add(s.builderPtr()).
		Block(body, jen.Return(recv()))
}

func (s *synthesizer) setters() ([]Decl, error) {
	var decls []Decl

	for i := range s.plan.Slots {
		slot := &s.plan.Slots[i]
		field := slot.Field.Name
		target := recv().Dot(slot.Name)

		switch slot.Class.Shape {
		case plan.ShapePlain, plan.ShapeOptional:
			t, err := typeCode(slot.Class.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field, err)
			}

			doc := fmt.Sprintf("%s sets %s.", slot.Setter, field)
			if slot.Class.Shape == plan.ShapeOptional {
				doc = fmt.Sprintf("%s sets %s. Left unset, %s is nil.", slot.Setter, field, field)
			}

			decls = append(decls, Decl{
				Name: slot.Setter,
				Doc:  doc,
				Code: s.method(slot.Setter, slot.Param, t, target.Op("=").Op("&").Id(slot.Param)),
			})

		case plan.ShapeRepeated:
			sliceType, err := typeCode(slot.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field, err)
			}

			elemType, err := typeCode(slot.Class.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field, err)
			}

			decls = append(decls,
				Decl{
					Name: slot.Setter,
					Doc:  fmt.Sprintf("%s replaces every %s element added so far with a copy of %s.", slot.Setter, field, slot.Param),
					Code: s.method(slot.Setter, slot.Param, sliceType,
						target.Op("=").Append(sliceType.Clone().Parens(jen.Nil()), jen.Id(slot.Param).Op("..."))),
				},
				Decl{
					Name: slot.Class.Append,
					Doc:  fmt.Sprintf("%s appends one element to %s.", slot.Class.Append, field),
					Code: s.method(slot.Class.Append, slot.AppendParam, elemType,
						recv().Dot(slot.Name).Op("=").Append(recv().Dot(slot.Name), jen.Id(slot.AppendParam))),
				},
			)
		}
	}

	return decls, nil
}

// notSet renders the error Build returns for an unset field. Without an
// errors package the generated file depends on the standard library only.
func (s *synthesizer) notSet(field string) *jen.Statement {
	record := s.plan.RecordName
	if s.cfg.ErrorsPackage == "" {
		return jen.Qual("errors", "New").Call(jen.Lit(fmt.Sprintf("%s: %s is not set", record, field)))
	}

	return jen.Qual(s.cfg.ErrorsPackage, "NotSet").Call(jen.Lit(record), jen.Lit(field))
}

// buildDecl renders Build: required slots are checked in field order and the
// first unset one is reported.
func (s *synthesizer) buildDecl() (Decl, error) {
	record := s.plan.RecordName
	zero := func() *jen.Statement { return jen.Id(record).Values() }

	var body []jen.Code

	values := make([]jen.Code, 0, len(s.plan.Slots))
	for i := range s.plan.Slots {
		slot := &s.plan.Slots[i]
		slotRef := func() *jen.Statement { return recv().Dot(slot.Name) }

		var value *jen.Statement

		switch slot.Class.Shape {
		case plan.ShapePlain:
			body = append(body, jen.If(slotRef().Op("==").Nil()).Block(
				jen.Return(zero(), s.notSet(slot.Field.Name)),
			))
			value = jen.Op("*").Add(slotRef())

		case plan.ShapeOptional:
			value = slotRef()

		case plan.ShapeRepeated:
			empty, err := typeCode(slot.Type)
			if err != nil {
				return Decl{}, fmt.Errorf("field %s: %w", slot.Field.Name, err)
			}

			value = jen.Append(empty.Values(), slotRef().Op("..."))
		}

		values = append(values, jen.Id(slot.Field.Name).Op(":").Add(value))
	}

	literal := jen.Id(record).Custom(jen.Options{
		Open:      "{",
		Close:     "}",
		Separator: ",",
		Multi:     true,
	}, values...)

	body = append(body, jen.Return(literal, jen.Nil()))

	return Decl{
		Name: plan.BuildMethod,
		Doc: fmt.Sprintf("%s returns the %s, or an error naming the first required field that is not set.",
			plan.BuildMethod, record),
		Code: jen.Func().Params(recv().Add(s.builderPtr())).Id(plan.BuildMethod).Params().
			Params(jen.Id(record), jen.Error()).
			Block(body...),
	}, nil
}
