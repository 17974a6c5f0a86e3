package gen

import (
	"errors"
	"fmt"

	"github.com/dave/jennifer/jen"

	"builder-generator/internal/analyze"
)

// typeCode renders a type descriptor. Named types are qualified by import
// path; jennifer drops the qualifier for the file's own package.
func typeCode(t *analyze.TypeInfo) (*jen.Statement, error) {
	if t == nil {
		return nil, errors.New("missing type")
	}

	if t.IsNamed() {
		s := jen.Id(t.ID.Name)
		if t.ID.PkgPath != "" {
			s = jen.Qual(t.ID.PkgPath, t.ID.Name)
		}

		if len(t.TypeArgs) > 0 {
			args, err := typeCodes(t.TypeArgs)
			if err != nil {
				return nil, err
			}

			s = s.Types(args...)
		}

		return s, nil
	}

	switch t.Kind {
	case analyze.TypeKindPointer:
		elem, err := typeCode(t.ElemType)
		if err != nil {
			return nil, err
		}

		return jen.Op("*").Add(elem), nil

	case analyze.TypeKindSlice:
		elem, err := typeCode(t.ElemType)
		if err != nil {
			return nil, err
		}

		return jen.Index().Add(elem), nil

	case analyze.TypeKindArray:
		elem, err := typeCode(t.ElemType)
		if err != nil {
			return nil, err
		}

		return jen.Index(jen.Lit(int(t.Len))).Add(elem), nil

	case analyze.TypeKindMap:
		key, err := typeCode(t.KeyType)
		if err != nil {
			return nil, err
		}

		elem, err := typeCode(t.ElemType)
		if err != nil {
			return nil, err
		}

		return jen.Map(key).Add(elem), nil

	case analyze.TypeKindInterface:
		return jen.Interface(), nil

	default:
		return nil, fmt.Errorf("cannot render %s type %s", t.Kind, describeType(t))
	}
}

func typeCodes(ts []*analyze.TypeInfo) ([]jen.Code, error) {
	out := make([]jen.Code, 0, len(ts))
	for _, t := range ts {
		c, err := typeCode(t)
		if err != nil {
			return nil, err
		}

		out = append(out, c)
	}

	return out, nil
}

func describeType(t *analyze.TypeInfo) string {
	if t.GoType != nil {
		return t.GoType.String()
	}

	return analyze.NewTypeStringer("").TypeString(t)
}
