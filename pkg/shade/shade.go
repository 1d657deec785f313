// Package shade implements the Whitted integrator: Phong ambient/diffuse/
// specular shading, point-light shadow rays, and recursive mirror
// reflection (spec §4.G).
package shade

import (
	"math"

	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/march"
	"github.com/basalt-render/raymarch/pkg/pattern"
	"github.com/basalt-render/raymarch/pkg/sdf"
	"github.com/basalt-render/raymarch/pkg/store"
)

// DefaultRecursionBudget is the default reflection depth (spec §4.G).
const DefaultRecursionBudget = 5

// defaultMaterial is the matte mid-gray Phong fallback used when a hit
// resolves with no material (spec §4.G step 2): no ancestor ever painted it.
var defaultPattern = store.Pattern{Kind: store.PatternSolid, Color: mathx.NewColor(0.5, 0.5, 0.5)}
var defaultMaterial = store.Material{Kind: store.MaterialPhong, Ambient: 0.1, Diffuse: 0.9, Specular: 0.9, Shininess: 200}

// Shade traces ray against root and returns its color, recursing into
// reflections up to depth bounces deep.
func Shade(s *store.Store, root store.NodeID, ray mathx.Ray, depth int) mathx.Color {
	hit, ok := march.March(s, root, ray)
	if !ok {
		return mathx.Black
	}

	mat := resolveMaterial(s, hit.Material)
	_, _, objPoint := sdf.ObjectPoint(s, root, hit.Point, store.NoMaterial)
	surf := defaultPattern.Color
	if hit.Material != store.NoMaterial {
		surf = pattern.ColorAt(s, mat.Pattern, objPoint)
	}

	if mat.Kind == store.MaterialEmissive {
		return surf.Clamp01()
	}

	view := ray.Direction.Neg().MustNormalize()
	color := mathx.Black
	for _, light := range s.Lights() {
		color = color.Add(shadeLight(s, root, hit, mat, surf, view, light))
	}

	if mat.Reflective > 0 && depth > 0 {
		reflected := ray.Direction.Reflect(hit.Normal)
		bias := hit.Normal.Scale(2 * march.HitEpsilon)
		reflectRay := mathx.NewRay(hit.Point.Add(bias), reflected)
		reflColor := Shade(s, root, reflectRay, depth-1)
		color = color.Add(reflColor.Scale(mat.Reflective))
	}

	return color.Clamp01()
}

func resolveMaterial(s *store.Store, id store.MaterialID) store.Material {
	if id == store.NoMaterial {
		return defaultMaterial
	}
	return *s.GetMaterial(id)
}

func shadeLight(s *store.Store, root store.NodeID, hit march.Hit, mat store.Material, surf mathx.Color, view mathx.Vec3, light store.Light) mathx.Color {
	switch light.Kind {
	case store.LightDiffuse:
		return surf.Mul(light.Color).Scale(mat.Ambient)

	case store.LightPoint:
		ambient := surf.Mul(light.Color).Scale(mat.Ambient)
		if march.InShadow(s, root, hit.Point, hit.Normal, light.Position) {
			return ambient
		}
		toLight := light.Position.Sub(hit.Point).MustNormalize()
		diffuseTerm := math.Max(0, hit.Normal.Dot(toLight))
		diffuse := surf.Mul(light.Color).Scale(mat.Diffuse * diffuseTerm)

		reflectDir := toLight.Neg().Reflect(hit.Normal)
		specAngle := math.Max(0, reflectDir.Dot(view))
		specular := light.Color.Scale(mat.Specular * math.Pow(specAngle, mat.Shininess))

		return ambient.Add(diffuse).Add(specular)
	}
	panic("shade: unknown light kind")
}
