package plan

import (
	"go/token"
	"go/types"
	"slices"

	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
)

const (
	// BuildMethod is the name of the generated finalize method.
	BuildMethod = "Build"
	// ReceiverName is the receiver of every generated builder method.
	ReceiverName = "b"
)

const (
	builderSuffix = "Builder"
	slotSuffix    = "Value"
	paramSuffix   = "Value"
	fallbackParam = "v"
)

// BuilderName returns the builder type name for a record.
func BuilderName(record string) string {
	return record + builderSuffix
}

// FactoryName returns the constructor name of a builder. Unexported records
// get an unexported factory.
func FactoryName(builder string, exported bool) string {
	if exported {
		return "New" + builder
	}

	return "new" + common.UpperInitial(builder)
}

// SetterName returns the whole-field setter name, which is the field name.
func SetterName(field string) string {
	return field
}

// SlotName returns the builder struct field for a record field. The name
// must differ from SetterName(field), as a type cannot have a field and a
// method of the same name.
func SlotName(field string) string {
	name := common.LowerInitial(field)
	if name == field || token.IsKeyword(name) {
		return name + slotSuffix
	}

	return name
}

// ParamName returns a setter parameter name derived from ident. A name that
// is a keyword, a predeclared identifier, the receiver or one of reserved
// gets the Value suffix.
func ParamName(ident string, reserved ...string) string {
	name := common.LowerInitial(ident)
	if name == "" || (!token.IsKeyword(name) && !token.IsIdentifier(name)) {
		return fallbackParam
	}

	for _, candidate := range []string{name, name + paramSuffix} {
		if paramUsable(candidate, reserved) {
			return candidate
		}
	}

	return fallbackParam
}

// ReferencedNames returns the package and type names a rendering of t
// mentions. A setter parameter must not hide any of them.
func ReferencedNames(t *analyze.TypeInfo) []string {
	var names []string

	var walk func(t *analyze.TypeInfo)
	walk = func(t *analyze.TypeInfo) {
		if t == nil {
			return
		}

		if t.IsNamed() {
			names = append(names, t.ID.Name)
			if t.ID.PkgPath != "" {
				names = append(names, t.PkgName())
			}
		}

		walk(t.KeyType)
		walk(t.ElemType)

		for _, arg := range t.TypeArgs {
			walk(arg)
		}
	}

	walk(t)

	return names
}

func paramUsable(name string, reserved []string) bool {
	return !token.IsKeyword(name) &&
		name != ReceiverName &&
		types.Universe.Lookup(name) == nil &&
		!slices.Contains(reserved, name)
}
