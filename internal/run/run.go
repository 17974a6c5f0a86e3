// Package run wires configuration, package loading, planning and code
// generation into the operations behind the command-line tool.
package run

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sort"
	"strings"

	"builder-generator/internal/analyze"
	"builder-generator/internal/config"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/gen"
	"builder-generator/internal/logger"
	"builder-generator/internal/plan"
)

// ErrNoTypes is returned when generation is requested without type names.
var ErrNoTypes = errors.New("no type names given")

// Options configures a run.
type Options struct {
	Config *config.Config
	// Dir is the directory patterns are resolved from. Empty means the
	// working directory.
	Dir string
	// Overlay replaces file contents seen by the package loader.
	Overlay map[string][]byte
}

// Result is the outcome of Run. Nothing has been written yet.
type Result struct {
	Plans    []*plan.BuilderPlan
	Files    []gen.GeneratedFile
	Warnings []diagnostic.Diagnostic
}

// Run loads the configured packages and renders a builder for every
// configured type. Any failing record fails the whole run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if len(cfg.Types) == 0 {
		return nil, ErrNoTypes
	}

	graph, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	plans, err := Plan(graph, cfg.Types)
	if err != nil {
		return nil, err
	}

	diags := logDiagnostics(logger.FromContext(ctx), plans)

	files, err := gen.NewGenerator(cfg.GeneratorConfig()).Generate(plans)
	if err != nil {
		return nil, reorderErrors(err)
	}

	return &Result{Plans: plans, Files: files, Warnings: diags.Warnings}, nil
}

// Load loads the configured packages into a type graph.
func Load(ctx context.Context, opts Options) (*analyze.TypeGraph, error) {
	cfg := opts.Config
	log := logger.FromContext(ctx)

	a := analyze.NewAnalyzer(
		analyze.WithDir(opts.Dir),
		analyze.WithBuildTags(cfg.BuildTags...),
		analyze.WithOverlay(opts.Overlay),
		analyze.WithGeneratedSuffix(cfg.Output.Suffix),
	)

	log.Debug("loading packages", "patterns", cfg.Patterns, "tags", cfg.BuildTags)

	graph, err := a.LoadPackages(ctx, cfg.Patterns...)
	if err != nil {
		return nil, err
	}

	log.Debug("loaded packages", "packages", len(graph.Packages), "records", len(graph.Records))

	return graph, nil
}

// Plan resolves every type name and plans its builder. A record named
// twice is planned once.
func Plan(graph *analyze.TypeGraph, names []string) ([]*plan.BuilderPlan, error) {
	var (
		plans []*plan.BuilderPlan
		errs  error
		seen  = make(map[analyze.TypeID]bool, len(names))
	)

	for _, name := range names {
		rec, err := graph.Lookup(name)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if seen[rec.ID] {
			continue
		}

		seen[rec.ID] = true

		p, err := plan.NewBuilderPlan(rec)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		plans = append(plans, p)
	}

	if errs != nil {
		return nil, reorderErrors(errs)
	}

	return plans, nil
}

// PlanAll plans every record of the graph, sorted by type ID. Records
// declared in files ending in generatedSuffix are builders themselves and
// are skipped. Records that cannot be planned are returned in failed.
func PlanAll(graph *analyze.TypeGraph, generatedSuffix string) (plans []*plan.BuilderPlan, failed map[analyze.TypeID]error) {
	ids := make([]analyze.TypeID, 0, len(graph.Records))
	for id, rec := range graph.Records {
		if generatedSuffix != "" && strings.HasSuffix(rec.Pos.Filename, generatedSuffix) {
			continue
		}

		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(a, b analyze.TypeID) int {
		return cmp.Or(cmp.Compare(a.PkgPath, b.PkgPath), cmp.Compare(a.Name, b.Name))
	})

	failed = make(map[analyze.TypeID]error)
	for _, id := range ids {
		p, err := plan.NewBuilderPlan(graph.Records[id])
		if err != nil {
			failed[id] = err
			continue
		}

		plans = append(plans, p)
	}

	return plans, failed
}

// logDiagnostics logs the warnings and infos of every plan and returns them
// merged.
func logDiagnostics(log logger.Logger, plans []*plan.BuilderPlan) diagnostic.Diagnostics {
	var all diagnostic.Diagnostics

	for _, p := range plans {
		for _, w := range p.Diagnostics.Warnings {
			log.Warn(w.Message, "record", w.Record, "field", w.Field, "code", w.Code)
		}

		for _, i := range p.Diagnostics.Infos {
			log.Debug(i.Message, "record", i.Record, "code", i.Code)
		}

		all.Merge(p.Diagnostics)
	}

	return all
}

// reorderErrors flattens joined errors and sorts them by message so the
// output does not depend on map iteration order.
func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}

	return errors.Join(flattenErrors(errs)...)
}

// flattenErrors unwraps joined errors into a list sorted by message.
func flattenErrors(errs error) []error {
	list := []error{errs}
	for i := 0; i < len(list); i++ {
		if u, ok := list[i].(interface{ Unwrap() []error }); ok {
			list = append(list, u.Unwrap()...)
			list[i] = nil
		}
	}

	list = slices.DeleteFunc(list, func(err error) bool {
		return err == nil
	})

	sort.Slice(list, func(i, j int) bool {
		return list[i].Error() < list[j].Error()
	})

	return list
}
