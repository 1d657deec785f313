// Package build lowers a parsed scene-language AST (pkg/sexpr) into scene
// store ids (spec §4.C). Top-level forms are processed in file order and
// register names eagerly, so forward references are naturally rejected: a
// name is only resolvable once its declaring form has already run.
package build

import (
	"math"

	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/sexpr"
	"github.com/basalt-render/raymarch/pkg/store"
)

// Builder holds the name tables accumulated while lowering a scene.
type Builder struct {
	store      *store.Store
	nodes      map[string]store.NodeID
	patterns   map[string]store.PatternID
	materials  map[string]store.MaterialID
	transforms map[string]store.TransformID
	cameras    map[string]store.CameraID
}

// New creates an empty Builder backed by a fresh store.
func New() *Builder {
	return &Builder{
		store:      store.New(),
		nodes:      make(map[string]store.NodeID),
		patterns:   make(map[string]store.PatternID),
		materials:  make(map[string]store.MaterialID),
		transforms: make(map[string]store.TransformID),
		cameras:    make(map[string]store.CameraID),
	}
}

// Build lowers every top-level form into the store, in order, and returns
// the finished store.
func Build(forms []sexpr.Value) (*store.Store, error) {
	b := New()
	for _, f := range forms {
		if err := b.buildForm(f); err != nil {
			return nil, err
		}
	}
	return b.store, nil
}

func (b *Builder) buildForm(v sexpr.Value) error {
	head, ok := v.Head()
	if !ok {
		return ArityError{Form: "<top-level>", Want: "a tagged list", Got: len(v.List)}
	}
	switch head {
	case "node":
		return b.buildNodeForm(v)
	case "pattern":
		return b.buildPatternForm(v)
	case "material":
		return b.buildMaterialForm(v)
	case "light":
		return b.buildLightForm(v)
	case "camera":
		return b.buildCameraForm(v)
	case "transform":
		return b.buildTransformForm(v)
	case "render":
		return b.buildRenderForm(v)
	default:
		return TypeMismatch{Expected: "node|pattern|material|light|camera|transform|render", Got: head}
	}
}

// name extracts a declared or referenced identifier: either a bare
// identifier or a quoted string, both spelled `<name>` in the grammar.
func name(v sexpr.Value) (string, bool) {
	switch v.Kind {
	case sexpr.ValueIdent:
		return v.Ident, true
	case sexpr.ValueString:
		return v.Str, true
	default:
		return "", false
	}
}

// symbolOptions splits a form's trailing items into :keyword/value pairs,
// the shape used by phong, camera, smooth_union's :k, etc.
func symbolOptions(items []sexpr.Value, form string) (map[string]sexpr.Value, error) {
	if len(items)%2 != 0 {
		return nil, ArityError{Form: form, Want: "an even number of :option value pairs", Got: len(items)}
	}
	opts := make(map[string]sexpr.Value, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		key := items[i]
		if key.Kind != sexpr.ValueSymbol {
			return nil, ArityError{Form: form, Want: "a :symbol key", Got: len(items)}
		}
		opts[key.Symbol] = items[i+1]
	}
	return opts, nil
}

func numberOf(v sexpr.Value) (float64, error) {
	if v.Kind != sexpr.ValueNumber {
		return 0, mathx.BadLiteral{Kind: "number", Value: v.String()}
	}
	return v.Number, nil
}

func colorOf(v sexpr.Value) (mathx.Color, error) {
	if v.Kind != sexpr.ValueColor {
		return mathx.Color{}, mathx.BadLiteral{Kind: "color", Value: v.String()}
	}
	return v.Color, nil
}

func vectorOf(v sexpr.Value) (mathx.Vec3, error) {
	if v.Kind != sexpr.ValueVector {
		return mathx.Vec3{}, mathx.BadLiteral{Kind: "vector", Value: v.String()}
	}
	return v.Vector, nil
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
