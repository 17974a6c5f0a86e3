package plan

import (
	"go/types"
	"reflect"

	"builder-generator/internal/analyze"
)

func basic(kind types.BasicKind) *analyze.TypeInfo {
	t := types.Typ[kind]

	return &analyze.TypeInfo{ID: analyze.TypeID{Name: t.Name()}, Kind: analyze.TypeKindBasic, GoType: t}
}

func chanOf(elem *analyze.TypeInfo) *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindUnknown, GoType: types.NewChan(types.SendRecv, elem.GoType)}
}

func mapOf(key, elem *analyze.TypeInfo) *analyze.TypeInfo {
	return &analyze.TypeInfo{
		Kind:     analyze.TypeKindMap,
		KeyType:  key,
		ElemType: elem,
		GoType:   types.NewMap(key.GoType, elem.GoType),
	}
}

func fieldOf(name string, t *analyze.TypeInfo, tag string) analyze.FieldInfo {
	return analyze.FieldInfo{
		Name:     name,
		Exported: name[0] >= 'A' && name[0] <= 'Z',
		Type:     t,
		Tag:      reflect.StructTag(tag),
	}
}

func record(name string, fields ...analyze.FieldInfo) *analyze.RecordInfo {
	for i := range fields {
		fields[i].Index = i
	}

	return &analyze.RecordInfo{
		ID:      analyze.TypeID{PkgPath: "example.com/demo", Name: name},
		PkgName: "demo",
		Fields:  fields,
	}
}

func commandRecord() *analyze.RecordInfo {
	str := basic(types.String)

	return record("Command",
		fieldOf("Executable", str, ""),
		fieldOf("Args", analyze.NewSlice(str), `builder:"each=Arg"`),
		fieldOf("Env", analyze.NewSlice(str), ""),
		fieldOf("CurrentDir", analyze.NewPointer(str), ""),
	)
}
