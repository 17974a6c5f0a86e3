package run

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/gen"
	"builder-generator/internal/plan"
)

// Report describes how builders would be generated, without generating them.
type Report struct {
	Records []RecordReport `yaml:"records"`
}

type RecordReport struct {
	Record   string        `yaml:"record"`
	Builder  string        `yaml:"builder,omitempty"`
	Factory  string        `yaml:"factory,omitempty"`
	File     string        `yaml:"file,omitempty"`
	Fields   []FieldReport `yaml:"fields,omitempty"`
	Warnings []string      `yaml:"warnings,omitempty"`
	Error    string        `yaml:"error,omitempty"`
}

type FieldReport struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type"`
	Shape    plan.Shape `yaml:"shape"`
	Required bool       `yaml:"required"`
	Setter   string     `yaml:"setter"`
	Append   string     `yaml:"append,omitempty"`
}

// NewReport describes plans and, for records that could not be planned,
// their errors.
func NewReport(plans []*plan.BuilderPlan, failed map[analyze.TypeID]error, cfg gen.GeneratorConfig) *Report {
	r := &Report{}

	for _, p := range plans {
		ts := analyze.NewTypeStringer(p.PkgPath())

		rec := RecordReport{
			Record:  p.Record.ID.String(),
			Builder: p.BuilderName,
			Factory: p.FactoryName,
			File:    filepath.Join(p.Record.Dir, common.SnakeCase(p.RecordName)+cfg.FileSuffix),
		}

		for i := range p.Slots {
			s := &p.Slots[i]
			rec.Fields = append(rec.Fields, FieldReport{
				Name:     s.Field.Name,
				Type:     ts.TypeString(s.Field.Type),
				Shape:    s.Class.Shape,
				Required: s.Required(),
				Setter:   s.Setter,
				Append:   s.Class.Append,
			})
		}

		for _, w := range p.Diagnostics.Warnings {
			rec.Warnings = append(rec.Warnings, w.String())
		}

		r.Records = append(r.Records, rec)
	}

	for id, err := range failed {
		diags := failureDiagnostics(id, err)
		r.Records = append(r.Records, RecordReport{Record: id.String(), Error: diags.Error().Error()})
	}

	slices.SortFunc(r.Records, func(a, b RecordReport) int {
		return strings.Compare(a.Record, b.Record)
	})

	return r
}

// failureDiagnostics turns a planning error into one error diagnostic per
// joined error.
func failureDiagnostics(id analyze.TypeID, err error) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for _, e := range flattenErrors(err) {
		var derr *diagnostic.Error
		if errors.As(e, &derr) {
			diags.Errors = append(diags.Errors, derr.Diagnostic())
			continue
		}

		diags.AddError("", e.Error(), id.Name, "")
	}

	return diags
}

// YAML renders the report.
func (r *Report) YAML() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	return buf.Bytes(), nil
}
