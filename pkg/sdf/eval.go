// Package sdf implements the distance evaluator: the recursive routine
// that, given a point in world space and a scene-store node, returns the
// signed distance to the nearest surface together with the material that
// would paint that surface (spec §4.D).
package sdf

import (
	"math"

	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/store"
)

// Distance evaluates node id at world point p. currentMaterial is the
// material threaded down from the nearest enclosing `paint` ancestor
// (store.NoMaterial if none); per the design note in spec §9, it is
// passed by value rather than mutating shared state, so evaluation is
// safe to call concurrently from any number of reader goroutines.
func Distance(s *store.Store, id store.NodeID, p mathx.Point3, currentMaterial store.MaterialID) (float64, store.MaterialID) {
	n := s.GetNode(id)

	switch n.Kind {
	case store.NodeSphere:
		return p.Length() - n.Radius, currentMaterial

	case store.NodePlane:
		normal := n.Normal.MustNormalize()
		return p.Dot(normal), currentMaterial

	case store.NodeBox:
		q := p.Abs().Sub(n.HalfExtents)
		outside := q.MaxScalar(0).Length()
		inside := math.Min(q.MaxComponent(), 0)
		return outside + inside, currentMaterial

	case store.NodeTorus:
		qx := p.LengthXZ() - n.Hole
		qLen := math.Sqrt(qx*qx + p.Y*p.Y)
		return qLen - n.Ring, currentMaterial

	case store.NodeInvert:
		d, mat := Distance(s, n.Child, p, currentMaterial)
		return -d, mat

	case store.NodeTransform:
		xform := s.GetTransform(n.Transform)
		local := xform.Inverse.TransformPoint(p)
		d, mat := Distance(s, n.Child, local, currentMaterial)
		return d / xform.LipschitzEstimate(), mat

	case store.NodePaint:
		d, _ := Distance(s, n.Child, p, n.Material)
		return d, n.Material

	case store.NodeGroup:
		return evalMinArgmin(s, n.Children, p, store.NoMaterial)

	case store.NodeUnion:
		d, mat := evalMinArgmin(s, n.Children, p, currentMaterial)
		if currentMaterial != store.NoMaterial {
			return d, currentMaterial
		}
		return d, mat

	case store.NodeSmoothUnion:
		return evalSmoothUnion(s, n.Children, n.SmoothK, p, currentMaterial)

	case store.NodeIntersect:
		return evalMaxArgmax(s, n.Children, p, currentMaterial)

	case store.NodeSubtract:
		da, matA := Distance(s, n.A, p, currentMaterial)
		db, matB := Distance(s, n.B, p, currentMaterial)
		negB := -db
		if negB > da {
			return negB, matB
		}
		return da, matA
	}

	panic("sdf: unknown node kind")
}

// evalMinArgmin evaluates every child with the given inherited material and
// returns the minimum distance together with the material of whichever
// child attained it (spec §4.D "group"/intersect argmin/argmax rows).
func evalMinArgmin(s *store.Store, children []store.NodeID, p mathx.Point3, inherited store.MaterialID) (float64, store.MaterialID) {
	best := math.Inf(1)
	var bestMat store.MaterialID
	for _, child := range children {
		d, mat := Distance(s, child, p, inherited)
		if d < best {
			best = d
			bestMat = mat
		}
	}
	return best, bestMat
}

func evalMaxArgmax(s *store.Store, children []store.NodeID, p mathx.Point3, inherited store.MaterialID) (float64, store.MaterialID) {
	best := math.Inf(-1)
	var bestMat store.MaterialID
	for _, child := range children {
		d, mat := Distance(s, child, p, inherited)
		if d > best {
			best = d
			bestMat = mat
		}
	}
	return best, bestMat
}

// smoothMin is the polynomial smooth-min fold from spec §4.D.
func smoothMin(a, b, k float64) float64 {
	h := math.Max(0, math.Min(1, 0.5+0.5*(b-a)/k))
	return mix(b, a, h) - k*h*(1-h)
}

func mix(a, b, h float64) float64 {
	return a*(1-h) + b*h
}

// evalSmoothUnion folds smoothMin across the children for distance, while
// material selection follows the underlying hard min (spec §4.D).
func evalSmoothUnion(s *store.Store, children []store.NodeID, k float64, p mathx.Point3, inherited store.MaterialID) (float64, store.MaterialID) {
	if len(children) == 0 {
		return math.Inf(1), inherited
	}
	_, hardMat := evalMinArgmin(s, children, p, inherited)

	smoothD, _ := Distance(s, children[0], p, inherited)
	for _, child := range children[1:] {
		d, _ := Distance(s, child, p, inherited)
		smoothD = smoothMin(smoothD, d, k)
	}

	if inherited != store.NoMaterial {
		return smoothD, inherited
	}
	return smoothD, hardMat
}
