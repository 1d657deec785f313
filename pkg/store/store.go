package store

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/basalt-render/raymarch/pkg/mathx"
)

// Store is the scene's arena. It is built once by the scene builder and is
// then read-only for the lifetime of a render (spec §3 "Lifecycles").
type Store struct {
	nodes      []Node
	nodeIndex  map[string]NodeID
	patterns   []Pattern
	patIndex   map[string]PatternID
	materials  []Material
	matIndex   map[string]MaterialID
	transforms []mathx.Transform
	xformIndex map[string]TransformID
	lights     []Light
	cameras    []Camera
	targets    []RenderTarget
}

// New creates an empty scene store.
func New() *Store {
	return &Store{
		nodeIndex:  make(map[string]NodeID),
		patIndex:   make(map[string]PatternID),
		matIndex:   make(map[string]MaterialID),
		xformIndex: make(map[string]TransformID),
	}
}

// f64key renders a float64 as an exact, bitwise-faithful string key.
func f64key(f float64) string {
	return strconv.FormatUint(math.Float64bits(f), 16)
}

func vecKey(v mathx.Vec3) string {
	return f64key(v.X) + "," + f64key(v.Y) + "," + f64key(v.Z)
}

func idsKey(ids []NodeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}

// nodeKey builds a canonical structural key for a Node so that interning
// uses exact field equality (spec §4.B), including bitwise float equality.
func nodeKey(n Node) string {
	switch n.Kind {
	case NodeSphere:
		return fmt.Sprintf("sphere:%s", f64key(n.Radius))
	case NodePlane:
		return fmt.Sprintf("plane:%s", vecKey(n.Normal))
	case NodeBox:
		return fmt.Sprintf("box:%s", vecKey(n.HalfExtents))
	case NodeTorus:
		return fmt.Sprintf("torus:%s:%s", f64key(n.Hole), f64key(n.Ring))
	case NodeTransform:
		return fmt.Sprintf("transform:%d:%d", n.Transform, n.Child)
	case NodePaint:
		return fmt.Sprintf("paint:%d:%d", n.Material, n.Child)
	case NodeInvert:
		return fmt.Sprintf("invert:%d", n.Child)
	case NodeGroup:
		return fmt.Sprintf("group:%s", idsKey(n.Children))
	case NodeUnion:
		return fmt.Sprintf("union:%s", idsKey(n.Children))
	case NodeSmoothUnion:
		return fmt.Sprintf("smooth_union:%s:%s", f64key(n.SmoothK), idsKey(n.Children))
	case NodeIntersect:
		return fmt.Sprintf("intersect:%s", idsKey(n.Children))
	case NodeSubtract:
		return fmt.Sprintf("subtract:%d:%d", n.A, n.B)
	default:
		panic("store: unknown node kind")
	}
}

// InternNode inserts n if structurally new, else returns the existing id.
// The DAG is acyclic by construction: a node can only reference ids that
// were already interned (post-order insertion), so it can never reference
// itself or a not-yet-built descendant.
func (s *Store) InternNode(n Node) NodeID {
	key := nodeKey(n)
	if id, ok := s.nodeIndex[key]; ok {
		return id
	}
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, n)
	s.nodeIndex[key] = id
	return id
}

// GetNode returns the node for id.
func (s *Store) GetNode(id NodeID) *Node {
	return &s.nodes[id]
}

func patternKey(p Pattern) string {
	switch p.Kind {
	case PatternSolid:
		return fmt.Sprintf("solid:%s", vecKey(mathx.NewVec3(p.Color.R, p.Color.G, p.Color.B)))
	case PatternGradient:
		return fmt.Sprintf("gradient:%d:%d", p.P0, p.P1)
	case PatternStripes:
		return fmt.Sprintf("stripes:%d:%d", p.P0, p.P1)
	case PatternChecker:
		return fmt.Sprintf("checkers:%d:%d", p.P0, p.P1)
	case PatternShells:
		return fmt.Sprintf("shells:%d:%d", p.P0, p.P1)
	case PatternBlend:
		return fmt.Sprintf("blend:%d:%d:%s", p.P0, p.P1, f64key(p.BlendT))
	case PatternTransform:
		return fmt.Sprintf("ptransform:%d:%d", p.Transform, p.Child)
	default:
		panic("store: unknown pattern kind")
	}
}

// InternPattern inserts p if structurally new, else returns the existing id.
func (s *Store) InternPattern(p Pattern) PatternID {
	key := patternKey(p)
	if id, ok := s.patIndex[key]; ok {
		return id
	}
	id := PatternID(len(s.patterns))
	s.patterns = append(s.patterns, p)
	s.patIndex[key] = id
	return id
}

// GetPattern returns the pattern for id.
func (s *Store) GetPattern(id PatternID) *Pattern {
	return &s.patterns[id]
}

func materialKey(m Material) string {
	switch m.Kind {
	case MaterialPhong:
		return fmt.Sprintf("phong:%d:%s:%s:%s:%s:%s", m.Pattern,
			f64key(m.Ambient), f64key(m.Diffuse), f64key(m.Specular),
			f64key(m.Shininess), f64key(m.Reflective))
	case MaterialEmissive:
		return fmt.Sprintf("emissive:%d", m.Pattern)
	default:
		panic("store: unknown material kind")
	}
}

// InternMaterial inserts m if structurally new, else returns the existing id.
func (s *Store) InternMaterial(m Material) MaterialID {
	key := materialKey(m)
	if id, ok := s.matIndex[key]; ok {
		return id
	}
	id := MaterialID(len(s.materials))
	s.materials = append(s.materials, m)
	s.matIndex[key] = id
	return id
}

// GetMaterial returns the material for id.
func (s *Store) GetMaterial(id MaterialID) *Material {
	return &s.materials[id]
}

func transformKey(t mathx.Transform) string {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			b.WriteString(f64key(t.Forward[i][j]))
			b.WriteByte(',')
		}
	}
	return b.String()
}

// InternTransform inserts t if structurally new, else returns the existing
// id. Only the forward matrix participates in the key: the inverse is a pure
// function of it, and the uniform-scale flag is the one carried by whichever
// transform with that matrix was interned first.
func (s *Store) InternTransform(t mathx.Transform) TransformID {
	key := transformKey(t)
	if id, ok := s.xformIndex[key]; ok {
		return id
	}
	id := TransformID(len(s.transforms))
	s.transforms = append(s.transforms, t)
	s.xformIndex[key] = id
	return id
}

// GetTransform returns the transform for id.
func (s *Store) GetTransform(id TransformID) *mathx.Transform {
	return &s.transforms[id]
}

// AddLight appends a light and returns its id. Lights are not interned
// (spec §3 doesn't require light dedup, and a scene could legitimately
// declare two structurally identical point lights to double intensity).
func (s *Store) AddLight(l Light) LightID {
	id := LightID(len(s.lights))
	s.lights = append(s.lights, l)
	return id
}

// GetLight returns the light for id.
func (s *Store) GetLight(id LightID) *Light {
	return &s.lights[id]
}

// Lights returns all lights in declaration order.
func (s *Store) Lights() []Light {
	return s.lights
}

// AddCamera appends a camera and returns its id.
func (s *Store) AddCamera(c Camera) CameraID {
	id := CameraID(len(s.cameras))
	s.cameras = append(s.cameras, c)
	return id
}

// GetCamera returns the camera for id.
func (s *Store) GetCamera(id CameraID) *Camera {
	return &s.cameras[id]
}

// AddTarget appends a render target and returns its id.
func (s *Store) AddTarget(t RenderTarget) TargetID {
	id := TargetID(len(s.targets))
	s.targets = append(s.targets, t)
	return id
}

// GetTarget returns the render target for id.
func (s *Store) GetTarget(id TargetID) *RenderTarget {
	return &s.targets[id]
}

// Targets returns all render targets in declaration order.
func (s *Store) Targets() []RenderTarget {
	return s.targets
}
