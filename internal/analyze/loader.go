package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"builder-generator/internal/diagnostic"
	"builder-generator/internal/match"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// ErrTypeNotFound is returned by Lookup when no loaded package declares the type.
var ErrTypeNotFound = errors.New("type not found")

// Analyzer loads Go packages and extracts record descriptions.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo

	dir             string
	buildTags       []string
	overlay         map[string][]byte
	generatedSuffix string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory packages are resolved from.
func WithDir(dir string) Option {
	return func(a *Analyzer) { a.dir = dir }
}

// WithBuildTags sets extra build tags used when loading packages.
func WithBuildTags(tags ...string) Option {
	return func(a *Analyzer) { a.buildTags = append(a.buildTags, tags...) }
}

// WithOverlay replaces file contents seen by the loader, keyed by absolute path.
func WithOverlay(overlay map[string][]byte) Option {
	return func(a *Analyzer) { a.overlay = overlay }
}

// WithGeneratedSuffix ignores type errors reported inside files whose name
// ends in suffix. Those files are about to be regenerated.
func WithGeneratedSuffix(suffix string) Option {
	return func(a *Analyzer) { a.generatedSuffix = suffix }
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and extracts their records.
// Patterns are standard Go package patterns (e.g., ".", "./examples/...").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.dir,
		Overlay: a.overlay,
	}
	if len(a.buildTags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(a.buildTags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if a.inGeneratedFile(e) {
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	// Register every package first so named types from any loaded package
	// are classified as local rather than external.
	for _, pkg := range pkgs {
		a.registerPackage(pkg.Types, packageDir(pkg))
	}

	for _, pkg := range pkgs {
		if err := a.processPackage(pkg.Types, pkg.Fset); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// AddPackage adds an already type-checked package to the graph. dir is the
// directory generated files for its records are written to.
func (a *Analyzer) AddPackage(pkg *types.Package, fset *token.FileSet, dir string) (*TypeGraph, error) {
	if pkg == nil {
		return nil, errors.New("nil package")
	}

	a.registerPackage(pkg, dir)

	if err := a.processPackage(pkg, fset); err != nil {
		return nil, fmt.Errorf("failed to process package %s: %w", pkg.Path(), err)
	}

	return a.graph, nil
}

func (a *Analyzer) inGeneratedFile(e packages.Error) bool {
	if a.generatedSuffix == "" || e.Kind != packages.TypeError {
		return false
	}

	file, _, _ := strings.Cut(e.Pos, ":")

	return strings.HasSuffix(file, a.generatedSuffix)
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) == 0 {
		return ""
	}

	return filepath.Dir(pkg.GoFiles[0])
}

func (a *Analyzer) registerPackage(pkg *types.Package, dir string) {
	if _, ok := a.graph.Packages[pkg.Path()]; ok {
		return
	}

	a.graph.Packages[pkg.Path()] = &PackageInfo{
		Path: pkg.Path(),
		Name: pkg.Name(),
		Dir:  dir,
	}
}

// processPackage extracts named types and records from a package.
func (a *Analyzer) processPackage(pkg *types.Package, fset *token.FileSet) error {
	pkgInfo := a.graph.Packages[pkg.Path()]

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		// Only process type names (not variables, constants, functions)
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		typeID := TypeID{
			PkgPath: pkg.Path(),
			Name:    name,
		}

		a.graph.Types[typeID] = a.analyzeType(named)
		pkgInfo.Types = append(pkgInfo.Types, typeID)

		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}

		record := &RecordInfo{
			ID:      typeID,
			PkgName: pkg.Name(),
			Dir:     pkgInfo.Dir,
			Pos:     position(fset, typeName.Pos()),
			Fields:  a.analyzeStructFields(st, fset),
		}

		if tparams := named.TypeParams(); tparams != nil {
			for i := range tparams.Len() {
				record.TypeParams = append(record.TypeParams, tparams.At(i).Obj().Name())
			}
		}

		a.graph.Records[typeID] = record
	}

	return nil
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Alias:
		obj := tt.Obj()
		info.ID = TypeID{Name: obj.Name()}
		if obj.Pkg() != nil {
			info.ID.PkgPath = obj.Pkg().Path()
		}

		info.Kind = TypeKindAlias
		if _, ok := types.Unalias(tt).Underlying().(*types.Interface); ok && obj.Pkg() == nil {
			// any
			info.Kind = TypeKindInterface
		}

	case *types.Basic:
		info.ID = TypeID{Name: tt.Name()}
		info.Kind = TypeKindBasic
		if tt.Kind() == types.UnsafePointer {
			info.ID = TypeID{PkgPath: "unsafe", Name: "Pointer"}
			info.Kind = TypeKindExternal
		}

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.Len = tt.Len()
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Interface:
		// Only the empty interface can be spelled without a name.
		if tt.Empty() {
			info.Kind = TypeKindInterface
		}

	default:
		// Channels, functions, anonymous structs and type parameters are
		// left unknown (unsupported).
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()
	info.ID = TypeID{Name: obj.Name()}

	if obj.Pkg() == nil {
		// Universe types: error, comparable.
		info.Kind = TypeKindInterface
		return
	}

	info.ID.PkgPath = obj.Pkg().Path()

	if args := named.TypeArgs(); args != nil {
		for i := range args.Len() {
			info.TypeArgs = append(info.TypeArgs, a.analyzeType(args.At(i)))
		}
	}

	switch named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct

	case *types.Interface:
		info.Kind = TypeKindInterface

	default:
		if a.isExternalPackage(info.ID.PkgPath) {
			info.Kind = TypeKindExternal
		} else {
			info.Kind = TypeKindAlias
		}
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type.
func (a *Analyzer) analyzeStructFields(st *types.Struct, fset *token.FileSet) []FieldInfo {
	var fields []FieldInfo

	for i := range st.NumFields() {
		field := st.Field(i)

		// A blank field cannot be named in a composite literal.
		if field.Name() == "_" {
			continue
		}

		fields = append(fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
			Pos:      position(fset, field.Pos()),
		})
	}

	return fields
}

func position(fset *token.FileSet, pos token.Pos) token.Position {
	if fset == nil || !pos.IsValid() {
		return token.Position{}
	}

	return fset.Position(pos)
}

// Lookup resolves a record by name. The name is either a bare type name,
// searched in every loaded package, or an import path qualified name such
// as "builder-generator/examples/command.Command".
func (g *TypeGraph) Lookup(name string) (*RecordInfo, error) {
	pkgPath, typeName := splitQualified(name)

	var found []*RecordInfo
	for id, rec := range g.Records {
		if id.Name == typeName && (pkgPath == "" || id.PkgPath == pkgPath) {
			found = append(found, rec)
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil

	case 0:
		if info := g.findType(pkgPath, typeName); info != nil {
			return nil, diagnostic.Errorf(diagnostic.ErrUnsupportedShape, typeName, "",
				"%s is not a struct with named fields (%s type)", info.ID, info.Kind)
		}

		return nil, g.notFound(name, typeName)

	default:
		ids := make([]string, 0, len(found))
		for _, rec := range found {
			ids = append(ids, rec.ID.String())
		}

		sort.Strings(ids)

		return nil, fmt.Errorf("type %s is ambiguous, qualify it with its import path: %s",
			name, strings.Join(ids, ", "))
	}
}

func (g *TypeGraph) findType(pkgPath, typeName string) *TypeInfo {
	for id, info := range g.Types {
		if id.Name == typeName && (pkgPath == "" || id.PkgPath == pkgPath) {
			return info
		}
	}

	return nil
}

func (g *TypeGraph) notFound(name, typeName string) error {
	seen := make(map[string]bool, len(g.Records))
	candidates := make([]string, 0, len(g.Records))
	for id := range g.Records {
		if !seen[id.Name] {
			seen[id.Name] = true
			candidates = append(candidates, id.Name)
		}
	}

	if suggestions := match.Suggest(typeName, candidates, 2); len(suggestions) > 0 {
		return fmt.Errorf("%w: %s (did you mean %s?)", ErrTypeNotFound, name, strings.Join(suggestions, " or "))
	}

	return fmt.Errorf("%w: %s", ErrTypeNotFound, name)
}

func splitQualified(name string) (pkgPath, typeName string) {
	i := strings.LastIndex(name, ".")
	if i < 0 || i < strings.LastIndex(name, "/") {
		return "", name
	}

	return name[:i], name[i+1:]
}
