package analyze

import (
	"go/token"
	"go/types"
	"reflect"

	"builder-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "builder-generator/examples/command"
	Name    string // e.g., "Command"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // named struct type
	TypeKindPointer            // pointer to another type (optional wrapper)
	TypeKindSlice              // slice of another type (sequence wrapper)
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindAlias              // named non-struct type declared in a loaded package
	TypeKindExternal           // named non-struct type from elsewhere (e.g., time.Duration)
	TypeKindInterface          // interface type (named, or the empty interface)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	case TypeKindInterface:
		return "interface"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type.
type TypeInfo struct {
	ID       TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind     TypeKind    // Kind of type
	ElemType *TypeInfo   // For pointers, slices, arrays and maps, the element type
	KeyType  *TypeInfo   // For maps, the key type
	Len      int64       // For arrays, the length
	TypeArgs []*TypeInfo // For instantiated generic types, the type arguments
	GoType   types.Type  // The original go/types.Type
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// PkgName returns the name of the package declaring a named type, as
// generated code refers to it.
func (t *TypeInfo) PkgName() string {
	var obj *types.TypeName
	switch tt := t.GoType.(type) {
	case *types.Named:
		obj = tt.Obj()
	case *types.Alias:
		obj = tt.Obj()
	}

	if obj != nil && obj.Pkg() != nil {
		return obj.Pkg().Name()
	}

	return common.PkgAlias(t.ID.PkgPath)
}

// IsOptional reports whether t is the optional wrapper (*T).
func (t *TypeInfo) IsOptional() bool {
	return t != nil && t.Kind == TypeKindPointer && t.ElemType != nil
}

// IsSequence reports whether t is the sequence wrapper ([]T).
func (t *TypeInfo) IsSequence() bool {
	return t != nil && t.Kind == TypeKindSlice && t.ElemType != nil
}

// NewPointer returns the descriptor of *elem.
func NewPointer(elem *TypeInfo) *TypeInfo {
	info := &TypeInfo{Kind: TypeKindPointer, ElemType: elem}
	if elem.GoType != nil {
		info.GoType = types.NewPointer(elem.GoType)
	}

	return info
}

// NewSlice returns the descriptor of []elem.
func NewSlice(elem *TypeInfo) *TypeInfo {
	info := &TypeInfo{Kind: TypeKindSlice, ElemType: elem}
	if elem.GoType != nil {
		info.GoType = types.NewSlice(elem.GoType)
	}

	return info
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag; holds the field's annotations
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
	Pos      token.Position    // Declaration position
}

// Annotation returns the raw value of the named tag key.
func (f *FieldInfo) Annotation(name string) (string, bool) {
	return f.Tag.Lookup(name)
}

// RecordInfo describes a named struct type.
type RecordInfo struct {
	ID         TypeID         // Package path and type name
	PkgName    string         // Package name (for the generated package clause)
	Dir        string         // Package directory (where generated files go)
	Pos        token.Position // Declaration position
	TypeParams []string       // Type parameter names, non-empty for generic records
	Fields     []FieldInfo    // Fields in declaration order, blank fields excluded
}

// Name returns the record's type name.
func (r *RecordInfo) Name() string {
	return r.ID.Name
}

// IsGeneric reports whether the record declares type parameters.
func (r *RecordInfo) IsGeneric() bool {
	return len(r.TypeParams) > 0
}

// TypeGraph holds all analyzed named types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Records maps TypeID to RecordInfo for named struct types.
	Records map[TypeID]*RecordInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Records:  make(map[TypeID]*RecordInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// GetRecord returns the RecordInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetRecord(id TypeID) *RecordInfo {
	return g.Records[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory containing the package sources
	Types []TypeID // Named types defined in this package
}
