// Package pattern evaluates scene-store patterns at an object-space point
// (spec §4.F).
package pattern

import (
	"math"

	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/store"
)

// floorMod2 returns floor(x) mod 2 as 0 or 1, correct for negative x.
func floorMod2(x float64) int {
	f := int64(math.Floor(x))
	m := f % 2
	if m < 0 {
		m += 2
	}
	return int(m)
}

// ColorAt evaluates the pattern id at object-space point p, per the variant
// table in spec §3/§4.F.
func ColorAt(s *store.Store, id store.PatternID, p mathx.Point3) mathx.Color {
	pat := s.GetPattern(id)
	switch pat.Kind {
	case store.PatternSolid:
		return pat.Color

	case store.PatternGradient:
		t := math.Max(0, math.Min(1, p.X))
		c0 := ColorAt(s, pat.P0, p)
		c1 := ColorAt(s, pat.P1, p)
		return c0.Scale(1 - t).Add(c1.Scale(t))

	case store.PatternStripes:
		if floorMod2(p.X) == 0 {
			return ColorAt(s, pat.P0, p)
		}
		return ColorAt(s, pat.P1, p)

	case store.PatternChecker:
		sum := floorMod2(p.X) + floorMod2(p.Y) + floorMod2(p.Z)
		if sum%2 == 0 {
			return ColorAt(s, pat.P0, p)
		}
		return ColorAt(s, pat.P1, p)

	case store.PatternShells:
		if floorMod2(p.Length()) == 0 {
			return ColorAt(s, pat.P0, p)
		}
		return ColorAt(s, pat.P1, p)

	case store.PatternBlend:
		t := math.Max(0, math.Min(1, pat.BlendT))
		c0 := ColorAt(s, pat.P0, p)
		c1 := ColorAt(s, pat.P1, p)
		return c1.Scale(t).Add(c0.Scale(1 - t))

	case store.PatternTransform:
		xform := s.GetTransform(pat.Transform)
		local := xform.Inverse.TransformPoint(p)
		return ColorAt(s, pat.Child, local)

	default:
		panic("pattern: unknown pattern kind")
	}
}
