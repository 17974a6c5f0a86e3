package gen

import (
	"go/types"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"builder-generator/internal/analyze"
	"builder-generator/internal/plan"
)

const demoPkg = "example.com/demo"

func basic(kind types.BasicKind) *analyze.TypeInfo {
	t := types.Typ[kind]

	return &analyze.TypeInfo{ID: analyze.TypeID{Name: t.Name()}, Kind: analyze.TypeKindBasic, GoType: t}
}

func named(pkgPath, name string, kind analyze.TypeKind, args ...*analyze.TypeInfo) *analyze.TypeInfo {
	return &analyze.TypeInfo{ID: analyze.TypeID{PkgPath: pkgPath, Name: name}, Kind: kind, TypeArgs: args}
}

func field(name string, t *analyze.TypeInfo, tag string) analyze.FieldInfo {
	return analyze.FieldInfo{Name: name, Type: t, Tag: reflect.StructTag(tag)}
}

func demoRecord(name string, fields ...analyze.FieldInfo) *analyze.RecordInfo {
	return &analyze.RecordInfo{
		ID:      analyze.TypeID{PkgPath: demoPkg, Name: name},
		PkgName: "demo",
		Dir:     "/src/demo",
		Fields:  fields,
	}
}

func commandRecord() *analyze.RecordInfo {
	str := basic(types.String)

	return demoRecord("Command",
		field("Executable", str, ""),
		field("Args", analyze.NewSlice(str), `builder:"each=Arg"`),
		field("Env", analyze.NewSlice(str), ""),
		field("CurrentDir", analyze.NewPointer(str), ""),
	)
}

func mustPlan(t *testing.T, rec *analyze.RecordInfo) *plan.BuilderPlan {
	t.Helper()

	p, err := plan.NewBuilderPlan(rec)
	require.NoError(t, err)

	return p
}
