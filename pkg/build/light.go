package build

import (
	"github.com/basalt-render/raymarch/pkg/sexpr"
	"github.com/basalt-render/raymarch/pkg/store"
)

// buildLightForm handles `(light <name> (diffuse <color>))` and
// `(light <name> (point <color> [x y z]))`. Light names aren't referenced
// elsewhere in the grammar, but are required for consistency with every
// other declarative form.
func (b *Builder) buildLightForm(v sexpr.Value) error {
	if len(v.List) != 3 {
		return ArityError{Form: "light", Want: "2", Got: len(v.List) - 1}
	}
	if _, ok := name(v.List[1]); !ok {
		return ArityError{Form: "light", Want: "a name then an expression", Got: len(v.List) - 1}
	}
	expr := v.List[2]
	head, ok := expr.Head()
	if !ok {
		return ArityError{Form: "light expression", Want: "a tagged list", Got: len(expr.List)}
	}
	args := expr.List[1:]

	switch head {
	case "diffuse":
		if len(args) != 1 {
			return ArityError{Form: "diffuse light", Want: "1", Got: len(args)}
		}
		c, err := colorOf(args[0])
		if err != nil {
			return err
		}
		b.store.AddLight(store.Light{Kind: store.LightDiffuse, Color: c})
		return nil

	case "point":
		if len(args) != 2 {
			return ArityError{Form: "point light", Want: "2", Got: len(args)}
		}
		c, err := colorOf(args[0])
		if err != nil {
			return err
		}
		pos, err := vectorOf(args[1])
		if err != nil {
			return err
		}
		b.store.AddLight(store.Light{Kind: store.LightPoint, Color: c, Position: pos})
		return nil

	default:
		return TypeMismatch{Expected: "a light kind (diffuse|point)", Got: head}
	}
}
