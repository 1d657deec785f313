// Package mathx holds the vector, point, transform, color and ray primitives
// the rest of raymarch is built on. Everything here is exact float64
// arithmetic; no approximation is introduced at this layer.
package mathx

import "math"

// Vec3 represents a 3D direction vector.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Point3 represents a position in space. It shares Vec3's representation;
// the distinction is in intent (points don't have a "direction").
type Point3 = Vec3

// Add returns the sum of two vectors.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns the vector scaled by a scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise product of two vectors.
func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Neg returns the negation of the vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the Euclidean length of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// LengthXZ returns the length of the vector's projection onto the XZ plane,
// used by the torus SDF.
func (v Vec3) LengthXZ() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}

// DegenerateVector is returned by Normalize when the input has zero length.
type DegenerateVector struct{}

func (DegenerateVector) Error() string { return "mathx: cannot normalize a zero-length vector" }

// Normalize returns a unit vector in the same direction as v.
func (v Vec3) Normalize() (Vec3, error) {
	l := v.Length()
	if l == 0 {
		return Vec3{}, DegenerateVector{}
	}
	return v.Scale(1 / l), nil
}

// MustNormalize normalizes v, returning the zero vector for degenerate input.
// Used at call sites (e.g. normal fallback) where a hard failure would be
// disproportionate to the problem, per the marcher's in-band-fallback
// policy (spec §7).
func (v Vec3) MustNormalize() Vec3 {
	n, err := v.Normalize()
	if err != nil {
		return Vec3{}
	}
	return n
}

// Abs returns the component-wise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// MaxComponent returns the value of the largest component.
func (v Vec3) MaxComponent() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// MaxScalar returns the component-wise maximum against a scalar.
func (v Vec3) MaxScalar(s float64) Vec3 {
	return Vec3{math.Max(v.X, s), math.Max(v.Y, s), math.Max(v.Z, s)}
}

// Clamp clamps each component to [lo, hi].
func (v Vec3) Clamp(lo, hi float64) Vec3 {
	clamp1 := func(x float64) float64 { return math.Max(lo, math.Min(hi, x)) }
	return Vec3{clamp1(v.X), clamp1(v.Y), clamp1(v.Z)}
}

// Reflect reflects v around the normal n (n must be a unit vector).
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// Equal reports exact (bitwise-equivalent) equality, used by the scene
// store's structural interning (spec §4.B).
func (v Vec3) Equal(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}
