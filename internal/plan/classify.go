package plan

import (
	"errors"
	"fmt"

	"builder-generator/internal/analyze"
	"builder-generator/internal/annotation"
	"builder-generator/internal/diagnostic"
)

// ClassifyField decides how the builder stores and validates a field of
// record. An `each` annotation on a field that is not a slice is ignored
// with a warning added to diags.
func ClassifyField(record string, field *analyze.FieldInfo, diags *diagnostic.Diagnostics) (Classification, error) {
	each, hasEach, err := annotation.Extract(field, annotation.Name, annotation.KeyEach)
	if err != nil {
		var derr *diagnostic.Error
		if errors.As(err, &derr) {
			derr.Record = record
		}

		return Classification{}, err
	}

	t := field.Type
	if t == nil {
		return Classification{}, unsupported(record, field, "field type is missing")
	}

	if bad := unsupportedPart(t); bad != nil {
		return Classification{}, unsupported(record, field, "%s has no builder representation", describe(bad))
	}

	switch {
	case t.IsOptional():
		if hasEach {
			return Classification{}, unsupported(record, field,
				"`%s=%s` cannot be used on optional field of type %s", annotation.KeyEach, each, typeString(t))
		}

		return Classification{Shape: ShapeOptional, Type: t.ElemType}, nil

	case hasEach && t.IsSequence():
		return Classification{Shape: ShapeRepeated, Type: t.ElemType, Append: each}, nil

	case hasEach:
		diags.AddWarning(diagnostic.CodeAnnotationIgnored,
			fmt.Sprintf("`%s=%s` ignored: %s is not a slice", annotation.KeyEach, each, typeString(t)),
			record, field.Name)
	}

	return Classification{Shape: ShapePlain, Type: t}, nil
}

// unsupportedPart returns the first part of t the loader could not describe.
func unsupportedPart(t *analyze.TypeInfo) *analyze.TypeInfo {
	if t.Kind == analyze.TypeKindUnknown {
		return t
	}

	for _, part := range append([]*analyze.TypeInfo{t.ElemType, t.KeyType}, t.TypeArgs...) {
		if part == nil {
			continue
		}

		if bad := unsupportedPart(part); bad != nil {
			return bad
		}
	}

	return nil
}

func describe(t *analyze.TypeInfo) string {
	if t.GoType == nil {
		return "field type"
	}

	return "type " + t.GoType.String()
}

func typeString(t *analyze.TypeInfo) string {
	return analyze.NewTypeStringer("").TypeString(t)
}

func unsupported(record string, field *analyze.FieldInfo, format string, args ...any) error {
	return diagnostic.Errorf(diagnostic.ErrUnsupportedShape, record, field.Name, format, args...).At(field.Pos)
}
