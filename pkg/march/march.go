// Package march implements the fixed-step sphere-tracing ray marcher:
// intersection finding, normal estimation by gradient sampling, and the
// shadow probe (spec §4.E).
package march

import (
	"math"

	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/sdf"
	"github.com/basalt-render/raymarch/pkg/store"
)

// Tunable marching constants (spec §4.E). These are design parameters, not
// correctness knobs (spec §9): changing them trades accuracy for speed but
// never changes which surface is hit, only how precisely.
const (
	MaxSteps      = 256
	MaxDistance   = 1e3
	HitEpsilon    = 1e-4
	NormalEpsilon = 1e-5
)

// Hit describes a located ray/surface intersection.
type Hit struct {
	T        float64
	Point    mathx.Point3
	Normal   mathx.Vec3
	Material store.MaterialID
}

// March sphere-traces ray against root, returning the first surface hit or
// false on a miss (ray escaped past MaxDistance or exhausted MaxSteps).
func March(s *store.Store, root store.NodeID, ray mathx.Ray) (Hit, bool) {
	t := 0.0
	for step := 0; step < MaxSteps; step++ {
		p := ray.At(t)
		d, mat := sdf.Distance(s, root, p, store.NoMaterial)
		if math.Abs(d) < HitEpsilon {
			fallback := ray.Direction.Neg().MustNormalize()
			n := EstimateNormal(s, root, p, fallback)
			return Hit{T: t, Point: p, Normal: n, Material: mat}, true
		}
		t += d
		if t > MaxDistance {
			return Hit{}, false
		}
	}
	return Hit{}, false
}

// EstimateNormal recovers the surface normal at world point p by central
// differences of the distance field along x, y, z. If the resulting
// gradient is degenerate (zero), it returns fallback instead of failing —
// the marcher never errors out on a single bad sample (spec §7).
func EstimateNormal(s *store.Store, root store.NodeID, p mathx.Point3, fallback mathx.Vec3) mathx.Vec3 {
	e := NormalEpsilon
	dx := centralDiff(s, root, p, mathx.NewVec3(e, 0, 0))
	dy := centralDiff(s, root, p, mathx.NewVec3(0, e, 0))
	dz := centralDiff(s, root, p, mathx.NewVec3(0, 0, e))

	grad := mathx.NewVec3(dx, dy, dz)
	n, err := grad.Normalize()
	if err != nil {
		return fallback
	}
	return n
}

func centralDiff(s *store.Store, root store.NodeID, p mathx.Point3, offset mathx.Vec3) float64 {
	dPlus, _ := sdf.Distance(s, root, p.Add(offset), store.NoMaterial)
	dMinus, _ := sdf.Distance(s, root, p.Sub(offset), store.NoMaterial)
	return (dPlus - dMinus) / (2 * NormalEpsilon)
}

// InShadow marches from point (biased along normal to escape the surface)
// toward lightPos, returning true iff an occluder is hit strictly before
// the light (spec §4.E).
func InShadow(s *store.Store, root store.NodeID, point mathx.Point3, normal mathx.Vec3, lightPos mathx.Point3) bool {
	const bias = 2 * HitEpsilon
	origin := point.Add(normal.Scale(bias))
	toLight := lightPos.Sub(origin)
	lightDist := toLight.Length()
	if lightDist == 0 {
		return false
	}
	dir := toLight.Scale(1 / lightDist)
	ray := mathx.NewRay(origin, dir)

	t := 0.0
	for step := 0; step < MaxSteps; step++ {
		p := ray.At(t)
		d, _ := sdf.Distance(s, root, p, store.NoMaterial)
		if math.Abs(d) < HitEpsilon {
			return t < lightDist
		}
		t += d
		if t > lightDist || t > MaxDistance {
			return false
		}
	}
	return false
}
