package sdf

import (
	"math"

	"github.com/basalt-render/raymarch/pkg/mathx"
	"github.com/basalt-render/raymarch/pkg/store"
)

// ObjectPoint re-derives the object-space point that would have produced the
// current hit: the accumulated inverse of transforms from root down to
// whichever node's distance and material actually won the evaluation (spec
// §4.F). It mirrors Distance's own decisions (same argmin/argmax branches,
// same material-propagation rules) as a secondary traversal, an accepted
// alternative to tracking the point inline during marching.
func ObjectPoint(s *store.Store, id store.NodeID, p mathx.Point3, currentMaterial store.MaterialID) (float64, store.MaterialID, mathx.Point3) {
	n := s.GetNode(id)

	switch n.Kind {
	case store.NodeSphere:
		return p.Length() - n.Radius, currentMaterial, p

	case store.NodePlane:
		normal := n.Normal.MustNormalize()
		return p.Dot(normal), currentMaterial, p

	case store.NodeBox:
		q := p.Abs().Sub(n.HalfExtents)
		outside := q.MaxScalar(0).Length()
		inside := math.Min(q.MaxComponent(), 0)
		return outside + inside, currentMaterial, p

	case store.NodeTorus:
		qx := p.LengthXZ() - n.Hole
		qLen := math.Sqrt(qx*qx + p.Y*p.Y)
		return qLen - n.Ring, currentMaterial, p

	case store.NodeInvert:
		d, mat, objP := ObjectPoint(s, n.Child, p, currentMaterial)
		return -d, mat, objP

	case store.NodeTransform:
		xform := s.GetTransform(n.Transform)
		local := xform.Inverse.TransformPoint(p)
		d, mat, objP := ObjectPoint(s, n.Child, local, currentMaterial)
		return d / xform.LipschitzEstimate(), mat, objP

	case store.NodePaint:
		d, _, objP := ObjectPoint(s, n.Child, p, n.Material)
		return d, n.Material, objP

	case store.NodeGroup:
		return pointArgmin(s, n.Children, p, store.NoMaterial)

	case store.NodeUnion:
		d, mat, objP := pointArgmin(s, n.Children, p, currentMaterial)
		if currentMaterial != store.NoMaterial {
			return d, currentMaterial, objP
		}
		return d, mat, objP

	case store.NodeSmoothUnion:
		d, mat, objP := pointArgmin(s, n.Children, p, currentMaterial)
		if currentMaterial != store.NoMaterial {
			return d, currentMaterial, objP
		}
		return d, mat, objP

	case store.NodeIntersect:
		return pointArgmax(s, n.Children, p, currentMaterial)

	case store.NodeSubtract:
		da, matA, objA := ObjectPoint(s, n.A, p, currentMaterial)
		db, matB, objB := ObjectPoint(s, n.B, p, currentMaterial)
		negB := -db
		if negB > da {
			return negB, matB, objB
		}
		return da, matA, objA
	}

	panic("sdf: unknown node kind")
}

func pointArgmin(s *store.Store, children []store.NodeID, p mathx.Point3, inherited store.MaterialID) (float64, store.MaterialID, mathx.Point3) {
	best := math.Inf(1)
	var bestMat store.MaterialID
	var bestP mathx.Point3
	for _, child := range children {
		d, mat, objP := ObjectPoint(s, child, p, inherited)
		if d < best {
			best, bestMat, bestP = d, mat, objP
		}
	}
	return best, bestMat, bestP
}

func pointArgmax(s *store.Store, children []store.NodeID, p mathx.Point3, inherited store.MaterialID) (float64, store.MaterialID, mathx.Point3) {
	best := math.Inf(-1)
	var bestMat store.MaterialID
	var bestP mathx.Point3
	for _, child := range children {
		d, mat, objP := ObjectPoint(s, child, p, inherited)
		if d > best {
			best, bestMat, bestP = d, mat, objP
		}
	}
	return best, bestMat, bestP
}
