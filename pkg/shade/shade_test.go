package shade

import (
	"math"
	"testing"

	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/store"
)

func whiteMatte(s *store.Store) store.MaterialID {
	pat := s.InternPattern(store.Pattern{Kind: store.PatternSolid, Color: mathx.White})
	return s.InternMaterial(store.Material{Kind: store.MaterialPhong, Pattern: pat, Ambient: 0.1, Diffuse: 0.9, Specular: 0.9, Shininess: 200})
}

// spec §8 scenario 1: unit sphere at origin, camera at (0,0,-5) facing it,
// a diffuse (ambient) light at the origin, matte white material with an
// ambient coefficient of 1 (a diffuse light contributes ambient*surface*light).
// The center ray must come back near white; a ray that misses entirely must
// be black.
func TestShade_SphereCenterNearWhite_CornerBlack(t *testing.T) {
	s := store.New()
	white := s.InternPattern(store.Pattern{Kind: store.PatternSolid, Color: mathx.White})
	mat := s.InternMaterial(store.Material{Kind: store.MaterialPhong, Pattern: white, Ambient: 1.0, Diffuse: 0.9, Specular: 0.9, Shininess: 200})
	sphere := s.InternNode(store.Node{Kind: store.NodeSphere, Radius: 1})
	painted := s.InternNode(store.Node{Kind: store.NodePaint, Material: mat, Child: sphere})
	s.AddLight(store.Light{Kind: store.LightDiffuse, Color: mathx.White})

	centerRay := mathx.NewRay(mathx.NewVec3(0, 0, -5), mathx.NewVec3(0, 0, 1))
	c := Shade(s, painted, centerRay, DefaultRecursionBudget)
	if c.Luminance() < 0.5 {
		t.Errorf("center pixel luminance = %f, want bright (ambient-lit white matte)", c.Luminance())
	}

	missRay := mathx.NewRay(mathx.NewVec3(100, 100, -5), mathx.NewVec3(0, 0, 1))
	miss := Shade(s, painted, missRay, DefaultRecursionBudget)
	if !miss.Equal(mathx.Black) {
		t.Errorf("corner pixel = %+v, want black", miss)
	}
}

// spec §8 scenario: a plane painted matte red, lit by a point light, should
// shade to a red-dominant (not gray) color directly under the light.
func TestShade_PlaneRedMatteUnderPointLight(t *testing.T) {
	s := store.New()
	red := s.InternPattern(store.Pattern{Kind: store.PatternSolid, Color: mathx.NewColor(1, 0, 0)})
	mat := s.InternMaterial(store.Material{Kind: store.MaterialPhong, Pattern: red, Ambient: 0.1, Diffuse: 0.9, Specular: 0.0, Shininess: 200})
	plane := s.InternNode(store.Node{Kind: store.NodePlane, Normal: mathx.NewVec3(0, 1, 0)})
	painted := s.InternNode(store.Node{Kind: store.NodePaint, Material: mat, Child: plane})
	s.AddLight(store.Light{Kind: store.LightPoint, Color: mathx.White, Position: mathx.NewVec3(0, 5, 0)})

	ray := mathx.NewRay(mathx.NewVec3(0, 5, -0.001), mathx.NewVec3(0, -1, 0.0002).MustNormalize())
	c := Shade(s, painted, ray, DefaultRecursionBudget)
	if !(c.R > c.G && c.R > c.B) {
		t.Errorf("plane color = %+v, want red-dominant", c)
	}
}

// A point light fully occluded by a sphere between the surface and the
// light should contribute only its ambient term, never diffuse/specular.
func TestShade_PointLightShadowed_AmbientOnly(t *testing.T) {
	s := store.New()
	mat := whiteMatte(s)
	floor := s.InternNode(store.Node{Kind: store.NodePlane, Normal: mathx.NewVec3(0, 1, 0)})
	floorXform := s.InternTransform(mathx.Translate(mathx.NewVec3(0, -1, 0)))
	positionedFloor := s.InternNode(store.Node{Kind: store.NodeTransform, Transform: floorXform, Child: floor})
	paintedFloor := s.InternNode(store.Node{Kind: store.NodePaint, Material: mat, Child: positionedFloor})

	// Midway between the floor hit at (0,-1,-8.5) and the light at (0,5,0).
	blockerXform := s.InternTransform(mathx.Translate(mathx.NewVec3(0, 2, -4.25)))
	blocker := s.InternNode(store.Node{Kind: store.NodeSphere, Radius: 1})
	positionedBlocker := s.InternNode(store.Node{Kind: store.NodeTransform, Transform: blockerXform, Child: blocker})

	scene := s.InternNode(store.Node{Kind: store.NodeUnion, Children: []store.NodeID{paintedFloor, positionedBlocker}})
	s.AddLight(store.Light{Kind: store.LightPoint, Color: mathx.White, Position: mathx.NewVec3(0, 5, 0)})

	ray := mathx.NewRay(mathx.NewVec3(0, 5, -10), mathx.NewVec3(0, -0.8, 0.2).MustNormalize())
	shadowed := Shade(s, scene, ray, DefaultRecursionBudget)

	unoccludedScene := paintedFloor
	unoccluded := Shade(s, unoccludedScene, ray, DefaultRecursionBudget)

	if shadowed.Luminance() >= unoccluded.Luminance() {
		t.Errorf("shadowed point (%f) should be dimmer than unoccluded (%f)", shadowed.Luminance(), unoccluded.Luminance())
	}
}

// spec §8 scenario 6: a checkered plane, straight-overhead rays. Points
// where floor(x)+floor(z) is even must render pattern_A, odd pattern_B.
func TestShade_CheckerPattern_StraightOverhead(t *testing.T) {
	s := store.New()
	patA := s.InternPattern(store.Pattern{Kind: store.PatternSolid, Color: mathx.NewColor(1, 0, 0)})
	patB := s.InternPattern(store.Pattern{Kind: store.PatternSolid, Color: mathx.NewColor(0, 0, 1)})
	checkers := s.InternPattern(store.Pattern{Kind: store.PatternChecker, P0: patA, P1: patB})
	mat := s.InternMaterial(store.Material{Kind: store.MaterialPhong, Pattern: checkers, Ambient: 1.0})
	plane := s.InternNode(store.Node{Kind: store.NodePlane, Normal: mathx.NewVec3(0, 1, 0)})
	painted := s.InternNode(store.Node{Kind: store.NodePaint, Material: mat, Child: plane})
	s.AddLight(store.Light{Kind: store.LightDiffuse, Color: mathx.White})

	down := mathx.NewVec3(0, -1, 0)
	evenRay := mathx.NewRay(mathx.NewVec3(0.25, 5, 0.25), down)
	oddRay := mathx.NewRay(mathx.NewVec3(1.25, 5, 0.25), down)

	even := Shade(s, painted, evenRay, DefaultRecursionBudget)
	odd := Shade(s, painted, oddRay, DefaultRecursionBudget)

	if !(even.R > even.B) {
		t.Errorf("floor(x)+floor(z) even at (0.25,0.25): color = %+v, want pattern_A (red-dominant)", even)
	}
	if !(odd.B > odd.R) {
		t.Errorf("floor(x)+floor(z) odd at (1.25,0.25): color = %+v, want pattern_B (blue-dominant)", odd)
	}
}

// An emissive material renders its pattern color directly and unlit: it
// must not dim to black for lack of a light in the scene, since emissive
// surfaces bypass the light loop entirely.
func TestShade_EmissiveMaterial_UnlitPatternColor(t *testing.T) {
	s := store.New()
	yellow := s.InternPattern(store.Pattern{Kind: store.PatternSolid, Color: mathx.NewColor(1, 1, 0)})
	mat := s.InternMaterial(store.Material{Kind: store.MaterialEmissive, Pattern: yellow})
	sphere := s.InternNode(store.Node{Kind: store.NodeSphere, Radius: 1})
	painted := s.InternNode(store.Node{Kind: store.NodePaint, Material: mat, Child: sphere})
	// deliberately no lights in the scene

	ray := mathx.NewRay(mathx.NewVec3(0, 0, -5), mathx.NewVec3(0, 0, 1))
	c := Shade(s, painted, ray, DefaultRecursionBudget)

	if !c.Equal(mathx.NewColor(1, 1, 0)) {
		t.Errorf("emissive sphere color = %+v, want unlit pattern color (1,1,0)", c)
	}
}

// A fully reflective mirror sphere in an otherwise dark scene should still
// terminate recursion and return a finite, non-NaN color.
func TestShade_MirrorReflectionTerminates(t *testing.T) {
	s := store.New()
	pat := s.InternPattern(store.Pattern{Kind: store.PatternSolid, Color: mathx.Black})
	mirror := s.InternMaterial(store.Material{Kind: store.MaterialPhong, Pattern: pat, Reflective: 1.0})
	sphere := s.InternNode(store.Node{Kind: store.NodeSphere, Radius: 1})
	painted := s.InternNode(store.Node{Kind: store.NodePaint, Material: mirror, Child: sphere})

	ray := mathx.NewRay(mathx.NewVec3(0, 0, -5), mathx.NewVec3(0, 0, 1))
	c := Shade(s, painted, ray, DefaultRecursionBudget)

	if math.IsNaN(c.R) || math.IsNaN(c.G) || math.IsNaN(c.B) {
		t.Fatalf("mirror reflection produced NaN: %+v", c)
	}
	if c.R < 0 || c.R > 1 || c.G < 0 || c.G > 1 || c.B < 0 || c.B > 1 {
		t.Errorf("color out of [0,1] range: %+v", c)
	}
}
