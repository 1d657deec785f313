// Package store is the scene store: an arena of interned, immutable
// entries (nodes, patterns, materials, transforms, lights, cameras, render
// targets) addressed by small integer ids. Structurally equal values share
// an id (spec §3/§4.B); nothing is mutated once the scene is built, so the
// store is safe to share read-only across render worker goroutines.
package store

import "github.com/basalt-render/raymarch/pkg/mathx"

// NodeID identifies an SDF graph node.
type NodeID int

// PatternID identifies a pattern.
type PatternID int

// MaterialID identifies a material.
type MaterialID int

// TransformID identifies a composed affine transform.
type TransformID int

// LightID identifies a light.
type LightID int

// CameraID identifies a camera.
type CameraID int

// TargetID identifies a render target declaration.
type TargetID int

// NoMaterial marks the absence of a material override (e.g. a "group"
// child with no ancestor paint yet).
const NoMaterial MaterialID = -1

// NodeKind tags the variant a Node holds.
type NodeKind int

const (
	NodeSphere NodeKind = iota
	NodePlane
	NodeBox
	NodeTorus
	NodeTransform
	NodePaint
	NodeInvert
	NodeGroup
	NodeUnion
	NodeSmoothUnion
	NodeIntersect
	NodeSubtract
)

// Node is one entry in the SDF graph DAG (spec §3). Only the fields
// relevant to Kind are meaningful; interning keys on those fields alone and
// does not check that the others are zero.
type Node struct {
	Kind NodeKind

	// leaves
	Normal      mathx.Vec3 // plane
	Radius      float64    // sphere
	HalfExtents mathx.Vec3 // box: (w,h,d)/2
	Hole, Ring  float64    // torus

	// unary
	Transform TransformID // transform node
	Material  MaterialID  // paint node
	Child     NodeID      // transform/paint/invert

	// n-ary
	Children []NodeID // group/union/smooth_union/intersect
	SmoothK  float64  // smooth_union

	// subtract
	A, B NodeID
}

// PatternKind tags the variant a Pattern holds.
type PatternKind int

const (
	PatternSolid PatternKind = iota
	PatternGradient
	PatternStripes
	PatternChecker
	PatternShells
	PatternBlend
	PatternTransform
)

// Pattern is one entry in the pattern table (spec §3).
type Pattern struct {
	Kind      PatternKind
	Color     mathx.Color // solid
	P0, P1    PatternID   // gradient/stripes/checkers/shells/blend
	BlendT    float64     // blend
	Transform TransformID // transform
	Child     PatternID   // transform
}

// MaterialKind tags the variant a Material holds.
type MaterialKind int

const (
	MaterialPhong MaterialKind = iota
	MaterialEmissive
)

// Material is one entry in the material table (spec §3). Phong defaults
// (ambient 0.1, diffuse 0.9, specular 0.9, shininess 200, reflective 0)
// are applied by the builder, not here — the store only holds resolved
// values.
type Material struct {
	Kind                                               MaterialKind
	Pattern                                            PatternID
	Ambient, Diffuse, Specular, Shininess, Reflective float64
}

// LightKind tags the variant a Light holds.
type LightKind int

const (
	LightDiffuse LightKind = iota
	LightPoint
)

// Light is one entry in the light table (spec §3).
type Light struct {
	Kind     LightKind
	Color    mathx.Color
	Position mathx.Vec3 // point lights only
}

// Camera is a pinhole camera declaration (spec §3/§4.H).
type Camera struct {
	Width, Height int
	WorldToCamera mathx.Transform
	FovDegrees    float64
}

// Sampler is a uniform sub-pixel sampling grid (spec §3).
type Sampler struct {
	NX, NY int
}

// TargetKind tags the variant a RenderTarget holds.
type TargetKind int

const (
	TargetFile TargetKind = iota
	TargetASCII
)

// RenderTarget is a render-target declaration (spec §3): a pairing of an
// output sink, a root node, and a camera.
type RenderTarget struct {
	Kind    TargetKind
	Path    string // file
	Label   string // ascii
	Root    NodeID
	Camera  CameraID
	Sampler Sampler
}
