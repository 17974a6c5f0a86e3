package analyze

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"builder-generator/internal/diagnostic"
)

const commandPkg = "builder-generator/examples/command"

const shapesSrc = `package shapes

type Level int

type Reader interface{ Read() }

type Box[T any] struct {
	Value T
}

type Shapes struct {
	Name     string ` + "`builder:\"each=Names\"`" + `
	Limit    *int
	Tags     []string ` + "`builder:\"each=Tag\"`" + `
	Grid     [3]int
	Index    map[string][]int
	Any      any
	Err      error
	Level    Level
	Reader   Reader
	Boxed    Box[int]
	Events   chan int
	Callback func()
	Inline   struct{ X int }
	_        int
	hidden   bool
}

type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

type Other struct{ Name string }
`

func addShapes(t *testing.T, a *Analyzer) *TypeGraph {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "shapes.go", shapesSrc, parser.SkipObjectResolution)
	require.NoError(t, err)

	conf := types.Config{}
	pkg, err := conf.Check("example.com/shapes", fset, []*ast.File{file}, nil)
	require.NoError(t, err)

	graph, err := a.AddPackage(pkg, fset, "/src/shapes")
	require.NoError(t, err)

	return graph
}

func fieldByName(t *testing.T, rec *RecordInfo, name string) *FieldInfo {
	t.Helper()

	for i := range rec.Fields {
		if rec.Fields[i].Name == name {
			return &rec.Fields[i]
		}
	}

	require.FailNow(t, "field not found", "%s has no field %s", rec.ID, name)

	return nil
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages(context.Background(), commandPkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	require.Contains(t, graph.Packages, commandPkg)
	pkg := graph.Packages[commandPkg]
	assert.Equal(t, "command", pkg.Name)
	assert.NotEmpty(t, pkg.Dir)

	id := TypeID{PkgPath: commandPkg, Name: "Command"}
	rec := graph.GetRecord(id)
	require.NotNil(t, rec)
	assert.Equal(t, "Command", rec.Name())
	assert.Equal(t, "command", rec.PkgName)
	assert.Equal(t, pkg.Dir, rec.Dir)
	assert.False(t, rec.IsGeneric())
	assert.Positive(t, rec.Pos.Line)

	names := make([]string, 0, len(rec.Fields))
	for _, f := range rec.Fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"Executable", "Args", "Env", "CurrentDir"}, names)

	// The generated builder is a record of its own.
	assert.NotNil(t, graph.GetRecord(TypeID{PkgPath: commandPkg, Name: "CommandBuilder"}))
}

func TestAnalyzer_CommandFields(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages(context.Background(), commandPkg)
	require.NoError(t, err)

	rec := graph.GetRecord(TypeID{PkgPath: commandPkg, Name: "Command"})
	require.NotNil(t, rec)

	exe := fieldByName(t, rec, "Executable")
	assert.Equal(t, TypeKindBasic, exe.Type.Kind)
	assert.Equal(t, "string", exe.Type.ID.Name)
	assert.True(t, exe.Exported)

	args := fieldByName(t, rec, "Args")
	assert.True(t, args.Type.IsSequence())
	assert.Equal(t, TypeKindBasic, args.Type.ElemType.Kind)

	value, ok := args.Annotation("builder")
	assert.True(t, ok)
	assert.Equal(t, "each=Arg", value)

	env := fieldByName(t, rec, "Env")
	_, ok = env.Annotation("builder")
	assert.False(t, ok)

	dir := fieldByName(t, rec, "CurrentDir")
	assert.True(t, dir.Type.IsOptional())
	assert.False(t, dir.Type.IsSequence())
	assert.Equal(t, 3, dir.Index)
}

func TestAnalyzer_LoadPackagesErrors(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages(context.Background(), "builder-generator/does/not/exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package errors")
}

func TestAnalyzer_LoadPackagesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAnalyzer().LoadPackages(ctx, commandPkg)
	assert.Error(t, err)
}

func TestAnalyzer_AddPackage(t *testing.T) {
	graph := addShapes(t, NewAnalyzer())

	rec := graph.GetRecord(TypeID{PkgPath: "example.com/shapes", Name: "Shapes"})
	require.NotNil(t, rec)
	assert.Equal(t, "shapes", rec.PkgName)
	assert.Equal(t, "/src/shapes", rec.Dir)
	assert.Equal(t, "shapes.go", rec.Pos.Filename)

	tests := []struct {
		field string
		kind  TypeKind
	}{
		{"Name", TypeKindBasic},
		{"Limit", TypeKindPointer},
		{"Tags", TypeKindSlice},
		{"Grid", TypeKindArray},
		{"Index", TypeKindMap},
		{"Any", TypeKindInterface},
		{"Err", TypeKindInterface},
		{"Level", TypeKindAlias},
		{"Reader", TypeKindInterface},
		{"Boxed", TypeKindStruct},
		{"Events", TypeKindUnknown},
		{"Callback", TypeKindUnknown},
		{"Inline", TypeKindUnknown},
		{"hidden", TypeKindBasic},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := fieldByName(t, rec, tt.field)
			assert.Equal(t, tt.kind, f.Type.Kind, "kind of %s", tt.field)
		})
	}

	assert.Len(t, rec.Fields, len(tests), "blank field is dropped")
	assert.False(t, fieldByName(t, rec, "hidden").Exported)

	grid := fieldByName(t, rec, "Grid")
	assert.Equal(t, int64(3), grid.Type.Len)

	index := fieldByName(t, rec, "Index")
	assert.Equal(t, "string", index.Type.KeyType.ID.Name)
	assert.True(t, index.Type.ElemType.IsSequence())

	boxed := fieldByName(t, rec, "Boxed")
	require.Len(t, boxed.Type.TypeArgs, 1)
	assert.Equal(t, "int", boxed.Type.TypeArgs[0].ID.Name)
}

func TestAnalyzer_GenericRecord(t *testing.T) {
	graph := addShapes(t, NewAnalyzer())

	rec := graph.GetRecord(TypeID{PkgPath: "example.com/shapes", Name: "Pair"})
	require.NotNil(t, rec)
	assert.True(t, rec.IsGeneric())
	assert.Equal(t, []string{"K", "V"}, rec.TypeParams)
	assert.Equal(t, TypeKindUnknown, fieldByName(t, rec, "Key").Type.Kind)
}

func TestAnalyzer_AddPackageNil(t *testing.T) {
	_, err := NewAnalyzer().AddPackage(nil, nil, "")
	assert.EqualError(t, err, "nil package")
}

func TestTypeGraph_Lookup(t *testing.T) {
	graph := addShapes(t, NewAnalyzer())

	rec, err := graph.Lookup("Shapes")
	require.NoError(t, err)
	assert.Equal(t, "example.com/shapes", rec.ID.PkgPath)

	rec, err = graph.Lookup("example.com/shapes.Other")
	require.NoError(t, err)
	assert.Equal(t, "Other", rec.Name())

	_, err = graph.Lookup("Shaeps")
	require.ErrorIs(t, err, ErrTypeNotFound)
	assert.EqualError(t, err, "type not found: Shaeps (did you mean Shapes?)")

	_, err = graph.Lookup("example.com/other.Shapes")
	assert.ErrorIs(t, err, ErrTypeNotFound)

	_, err = graph.Lookup("Level")
	require.ErrorIs(t, err, diagnostic.ErrUnsupportedShape)
	assert.Contains(t, err.Error(), "example.com/shapes.Level is not a struct with named fields (alias type)")
}

func TestTypeGraph_LookupAmbiguous(t *testing.T) {
	a := NewAnalyzer()
	addShapes(t, a)

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "other.go", "package other\n\ntype Other struct{}\n", 0)
	require.NoError(t, err)

	pkg, err := (&types.Config{}).Check("example.com/other", fset, []*ast.File{file}, nil)
	require.NoError(t, err)

	graph, err := a.AddPackage(pkg, fset, "/src/other")
	require.NoError(t, err)

	_, err = graph.Lookup("Other")
	assert.EqualError(t, err,
		"type Other is ambiguous, qualify it with its import path: example.com/other.Other, example.com/shapes.Other")

	rec, err := graph.Lookup("example.com/other.Other")
	require.NoError(t, err)
	assert.Empty(t, rec.Fields)
}

func TestTypeStringer(t *testing.T) {
	graph := addShapes(t, NewAnalyzer())
	rec := graph.GetRecord(TypeID{PkgPath: "example.com/shapes", Name: "Shapes"})
	require.NotNil(t, rec)

	local := NewTypeStringer("example.com/shapes")
	foreign := NewTypeStringer("example.com/elsewhere")

	tests := []struct {
		field   string
		local   string
		foreign string
	}{
		{"Limit", "*int", "*int"},
		{"Tags", "[]string", "[]string"},
		{"Grid", "[3]int", "[3]int"},
		{"Index", "map[string][]int", "map[string][]int"},
		{"Level", "Level", "shapes.Level"},
		{"Boxed", "Box[int]", "shapes.Box[int]"},
		{"Err", "error", "error"},
		{"Events", "chan int", "chan int"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			typ := fieldByName(t, rec, tt.field).Type
			assert.Equal(t, tt.local, local.TypeString(typ))
			assert.Equal(t, tt.foreign, foreign.TypeString(typ))
		})
	}

	assert.Equal(t, "<nil>", local.TypeString(nil))
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: commandPkg, Name: "Command"}
	assert.Equal(t, "builder-generator/examples/command.Command", id.String())

	idNoPkg := TypeID{Name: "int"}
	assert.Equal(t, "int", idNoPkg.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "basic", TypeKindBasic.String())
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "pointer", TypeKindPointer.String())
	assert.Equal(t, "slice", TypeKindSlice.String())
	assert.Equal(t, "array", TypeKindArray.String())
	assert.Equal(t, "map", TypeKindMap.String())
	assert.Equal(t, "alias", TypeKindAlias.String())
	assert.Equal(t, "external", TypeKindExternal.String())
	assert.Equal(t, "interface", TypeKindInterface.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}

func TestWrappers(t *testing.T) {
	str := &TypeInfo{ID: TypeID{Name: "string"}, Kind: TypeKindBasic, GoType: types.Typ[types.String]}

	ptr := NewPointer(str)
	assert.True(t, ptr.IsOptional())
	assert.Equal(t, "*string", ptr.GoType.String())

	slice := NewSlice(str)
	assert.True(t, slice.IsSequence())
	assert.Equal(t, "[]string", slice.GoType.String())

	bare := NewSlice(&TypeInfo{Kind: TypeKindBasic})
	assert.Nil(t, bare.GoType)

	var nilType *TypeInfo
	assert.False(t, nilType.IsOptional())
	assert.False(t, nilType.IsSequence())
}
