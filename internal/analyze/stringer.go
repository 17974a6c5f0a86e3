package analyze

import (
	"fmt"
	"strings"

	"builder-generator/internal/common"
)

// TypeStringer renders type descriptors as Go source, qualifying named
// types from other packages by their package alias.
type TypeStringer struct {
	contextPkgPath string
}

// NewTypeStringer creates a TypeStringer. Types declared in contextPkgPath
// are rendered without a package qualifier.
func NewTypeStringer(contextPkgPath string) *TypeStringer {
	return &TypeStringer{contextPkgPath: contextPkgPath}
}

// TypeString returns a Go representation of a TypeInfo.
// Examples: "string", "*string", "[]time.Duration", "map[string][]int".
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	if t.IsNamed() {
		return s.namedString(t)
	}

	switch t.Kind {
	case TypeKindPointer:
		return "*" + s.TypeString(t.ElemType)

	case TypeKindSlice:
		return "[]" + s.TypeString(t.ElemType)

	case TypeKindArray:
		return fmt.Sprintf("[%d]%s", t.Len, s.TypeString(t.ElemType))

	case TypeKindMap:
		return "map[" + s.TypeString(t.KeyType) + "]" + s.TypeString(t.ElemType)

	case TypeKindInterface:
		return "interface{}"

	default:
		if t.GoType != nil {
			return t.GoType.String()
		}

		return "<" + common.UnknownStr + ">"
	}
}

func (s *TypeStringer) namedString(t *TypeInfo) string {
	var sb strings.Builder

	if t.ID.PkgPath != "" && t.ID.PkgPath != s.contextPkgPath {
		sb.WriteString(common.PkgAlias(t.ID.PkgPath))
		sb.WriteString(".")
	}

	sb.WriteString(t.ID.Name)

	if len(t.TypeArgs) > 0 {
		args := make([]string, len(t.TypeArgs))
		for i, arg := range t.TypeArgs {
			args[i] = s.TypeString(arg)
		}

		sb.WriteString("[" + strings.Join(args, ", ") + "]")
	}

	return sb.String()
}
