package build

import (
	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/sexpr"
	"github.com/basalt-render/raymarch/pkg/store"
)

// buildTransformForm handles `(transform <name> (translate [x y z])
// (rotate [ax ay az] angle) (scale s))`: zero or more sub-operations applied
// in listed order, composed into a single Transform.
func (b *Builder) buildTransformForm(v sexpr.Value) error {
	if len(v.List) < 2 {
		return ArityError{Form: "transform", Want: "a name and zero or more ops", Got: len(v.List) - 1}
	}
	nm, ok := name(v.List[1])
	if !ok {
		return ArityError{Form: "transform", Want: "a name and zero or more ops", Got: len(v.List) - 1}
	}

	result := mathx.IdentityTransform()
	for _, op := range v.List[2:] {
		t, err := buildTransformOp(op)
		if err != nil {
			return err
		}
		result = result.Compose(t)
	}

	id := b.store.InternTransform(result)
	b.transforms[nm] = id
	return nil
}

func (b *Builder) resolveTransform(v sexpr.Value) (store.TransformID, error) {
	nm, ok := name(v)
	if !ok {
		return 0, TypeMismatch{Expected: "transform name", Got: v.String()}
	}
	id, ok := b.transforms[nm]
	if !ok {
		return 0, UndefinedName{Kind: "transform", Name: nm}
	}
	return id, nil
}

func buildTransformOp(v sexpr.Value) (mathx.Transform, error) {
	head, ok := v.Head()
	if !ok {
		return mathx.Transform{}, ArityError{Form: "transform op", Want: "a tagged list", Got: len(v.List)}
	}
	args := v.List[1:]

	switch head {
	case "translate":
		if len(args) != 1 {
			return mathx.Transform{}, ArityError{Form: "translate", Want: "1", Got: len(args)}
		}
		vec, err := vectorOf(args[0])
		if err != nil {
			return mathx.Transform{}, err
		}
		return mathx.Translate(vec), nil

	case "rotate":
		if len(args) != 2 {
			return mathx.Transform{}, ArityError{Form: "rotate", Want: "2", Got: len(args)}
		}
		axis, err := vectorOf(args[0])
		if err != nil {
			return mathx.Transform{}, err
		}
		angleDeg, err := numberOf(args[1])
		if err != nil {
			return mathx.Transform{}, err
		}
		return mathx.RotateAxisAngle(axis, degreesToRadians(angleDeg))

	case "scale":
		if len(args) != 1 {
			return mathx.Transform{}, ArityError{Form: "scale", Want: "1", Got: len(args)}
		}
		s, err := numberOf(args[0])
		if err != nil {
			return mathx.Transform{}, err
		}
		if s == 0 {
			return mathx.Transform{}, mathx.NonInvertibleTransform{}
		}
		return mathx.Scale(s), nil

	default:
		return mathx.Transform{}, TypeMismatch{Expected: "a transform op (translate|rotate|scale)", Got: head}
	}
}
