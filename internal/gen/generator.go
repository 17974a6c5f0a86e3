package gen

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"builder-generator/internal/common"
	"builder-generator/internal/plan"
)

// Header is the first line of every generated file.
const Header = "Code generated by builder-generator. DO NOT EDIT."

// RuntimeErrorsPackage is the errors package shipped with this module. Set it
// as ErrorsPackage to make Build return *buildererrors.FieldNotSetError.
const RuntimeErrorsPackage = "builder-generator/pkg/buildererrors"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// FileSuffix is appended to the snake_case record name to form the
	// output file name.
	FileSuffix string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
	// ErrorsPackage is the import path providing NotSet(record, field).
	// Empty makes Build report unset fields with errors.New.
	ErrorsPackage string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		FileSuffix:       "_builder.go",
		GenerateComments: true,
	}
}

// Generator generates Go code from builder plans.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Record is the record the builder was generated for.
	Record string
	// Dir is the directory of the record's package.
	Dir string
	// Filename is the name of the file (e.g., "command_builder.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the location the file is written to.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders one file per plan. Every failing plan is reported.
func (g *Generator) Generate(plans []*plan.BuilderPlan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(plans))
	owners := make(map[string]string, len(plans))

	var errs []error
	for _, p := range plans {
		bundle, err := Synthesize(p, g.config)
		if err != nil {
			errs = append(errs, fmt.Errorf("generating %s: %w", p.Record.ID, err))
			continue
		}

		content, err := Render(bundle, g.config)
		if err != nil {
			errs = append(errs, fmt.Errorf("generating %s: %w", p.Record.ID, err))
			continue
		}

		file := GeneratedFile{
			Record:   p.RecordName,
			Dir:      bundle.Dir,
			Filename: bundle.Filename,
			Content:  content,
		}

		if prev, ok := owners[file.Path()]; ok {
			errs = append(errs, fmt.Errorf("generating %s: %s is also the output of %s", p.Record.ID, file.Path(), prev))
			continue
		}

		owners[file.Path()] = p.Record.ID.String()
		files = append(files, file)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return files, nil
}

// Render lays out a bundle as a formatted Go file.
func Render(bundle *Bundle, cfg GeneratorConfig) ([]byte, error) {
	f := jen.NewFilePathName(bundle.PkgPath, bundle.PkgName)
	f.HeaderComment(Header)
	for pkgPath, name := range bundle.Imports {
		f.ImportName(pkgPath, name)
	}

	if cfg.ErrorsPackage != "" {
		f.ImportName(cfg.ErrorsPackage, common.PkgAlias(cfg.ErrorsPackage))
	}

	for _, d := range bundle.Decls() {
		f.Line()

		if cfg.GenerateComments && d.Doc != "" {
			f.Comment(d.Doc)
		}

		f.Add(d.Code)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", bundle.Filename, err)
	}

	return buf.Bytes(), nil
}
