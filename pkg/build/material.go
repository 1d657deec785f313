package build

import (
	"github.com/basalt-render/raymarch/pkg/sexpr"
	"github.com/basalt-render/raymarch/pkg/store"
)

// phongOptionKeys is the fixed recognized-keyword set for phong materials
// (spec §4.C): anything else fails with UnknownOption.
var phongOptionKeys = []string{"pattern", "ambient", "diffuse", "specular", "shininess", "reflective"}

func (b *Builder) buildMaterialForm(v sexpr.Value) error {
	if len(v.List) != 3 {
		return ArityError{Form: "material", Want: "2", Got: len(v.List) - 1}
	}
	nm, ok := name(v.List[1])
	if !ok {
		return ArityError{Form: "material", Want: "a name then an expression", Got: len(v.List) - 1}
	}
	id, err := b.buildMaterialExpr(v.List[2])
	if err != nil {
		return err
	}
	b.materials[nm] = id
	return nil
}

func (b *Builder) resolveMaterial(v sexpr.Value) (store.MaterialID, error) {
	nm, ok := name(v)
	if !ok {
		return 0, TypeMismatch{Expected: "material name", Got: v.String()}
	}
	id, ok := b.materials[nm]
	if !ok {
		return 0, UndefinedName{Kind: "material", Name: nm}
	}
	return id, nil
}

func (b *Builder) buildMaterialExpr(v sexpr.Value) (store.MaterialID, error) {
	head, ok := v.Head()
	if !ok {
		return 0, ArityError{Form: "material expression", Want: "a tagged list", Got: len(v.List)}
	}
	args := v.List[1:]

	switch head {
	case "phong":
		opts, err := symbolOptions(args, "phong")
		if err != nil {
			return 0, err
		}
		if err := rejectUnknown(opts, "phong", phongOptionKeys...); err != nil {
			return 0, err
		}
		patV, err := requireValue(opts, "phong", "pattern")
		if err != nil {
			return 0, err
		}
		pat, err := b.resolvePattern(patV)
		if err != nil {
			return 0, err
		}
		ambient, err := optionalNumber(opts, "ambient", 0.1)
		if err != nil {
			return 0, err
		}
		diffuse, err := optionalNumber(opts, "diffuse", 0.9)
		if err != nil {
			return 0, err
		}
		specular, err := optionalNumber(opts, "specular", 0.9)
		if err != nil {
			return 0, err
		}
		shininess, err := optionalNumber(opts, "shininess", 200)
		if err != nil {
			return 0, err
		}
		reflective, err := optionalNumber(opts, "reflective", 0)
		if err != nil {
			return 0, err
		}
		return b.store.InternMaterial(store.Material{
			Kind: store.MaterialPhong, Pattern: pat,
			Ambient: ambient, Diffuse: diffuse, Specular: specular,
			Shininess: shininess, Reflective: reflective,
		}), nil

	case "emissive":
		if len(args) != 1 {
			return 0, ArityError{Form: "emissive", Want: "1", Got: len(args)}
		}
		pat, err := b.resolvePattern(args[0])
		if err != nil {
			return 0, err
		}
		return b.store.InternMaterial(store.Material{Kind: store.MaterialEmissive, Pattern: pat}), nil

	default:
		return 0, TypeMismatch{Expected: "a material kind (phong|emissive)", Got: head}
	}
}
