package mathx

import "math"

// Mat4 is a 4x4 affine matrix in row-major order.
type Mat4 [4][4]float64

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// Mul multiplies two matrices, m*other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// TransformPoint applies the matrix to a point (w=1, translation applies).
func (m Mat4) TransformPoint(p Point3) Point3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	return Point3{X: x, Y: y, Z: z}
}

// TransformVector applies the matrix to a direction (w=0, no translation).
func (m Mat4) TransformVector(v Vec3) Vec3 {
	x := m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z
	y := m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z
	z := m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z
	return Vec3{X: x, Y: y, Z: z}
}

// Equal reports exact (bitwise) equality between two matrices.
func (m Mat4) Equal(other Mat4) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if m[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// NonInvertibleTransform is returned when a transform's matrix is singular.
type NonInvertibleTransform struct{}

func (NonInvertibleTransform) Error() string {
	return "mathx: transform matrix is not invertible"
}

// inverse4 computes the inverse of a 4x4 matrix via cofactor expansion,
// returning NonInvertibleTransform if the determinant is (numerically) zero.
func inverse4(m Mat4) (Mat4, error) {
	// Build the array-of-16 form cofactor expansion used by most small
	// affine-matrix libraries (e.g. the classic MESA / glu implementation).
	a := [16]float64{
		m[0][0], m[0][1], m[0][2], m[0][3],
		m[1][0], m[1][1], m[1][2], m[1][3],
		m[2][0], m[2][1], m[2][2], m[2][3],
		m[3][0], m[3][1], m[3][2], m[3][3],
	}
	var inv [16]float64

	inv[0] = a[5]*a[10]*a[15] - a[5]*a[11]*a[14] - a[9]*a[6]*a[15] + a[9]*a[7]*a[14] + a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	inv[4] = -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] + a[8]*a[6]*a[15] - a[8]*a[7]*a[14] - a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	inv[8] = a[4]*a[9]*a[15] - a[4]*a[11]*a[13] - a[8]*a[5]*a[15] + a[8]*a[7]*a[13] + a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	inv[12] = -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] + a[8]*a[5]*a[14] - a[8]*a[6]*a[13] - a[12]*a[5]*a[10] + a[12]*a[6]*a[9]
	inv[1] = -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] + a[9]*a[2]*a[15] - a[9]*a[3]*a[14] - a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	inv[5] = a[0]*a[10]*a[15] - a[0]*a[11]*a[14] - a[8]*a[2]*a[15] + a[8]*a[3]*a[14] + a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	inv[9] = -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] + a[8]*a[1]*a[15] - a[8]*a[3]*a[13] - a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	inv[13] = a[0]*a[9]*a[14] - a[0]*a[10]*a[13] - a[8]*a[1]*a[14] + a[8]*a[2]*a[13] + a[12]*a[1]*a[10] - a[12]*a[2]*a[9]
	inv[2] = a[1]*a[6]*a[15] - a[1]*a[7]*a[14] - a[5]*a[2]*a[15] + a[5]*a[3]*a[14] + a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	inv[6] = -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] + a[4]*a[2]*a[15] - a[4]*a[3]*a[14] - a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	inv[10] = a[0]*a[5]*a[15] - a[0]*a[7]*a[13] - a[4]*a[1]*a[15] + a[4]*a[3]*a[13] + a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	inv[14] = -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] + a[4]*a[1]*a[14] - a[4]*a[2]*a[13] - a[12]*a[1]*a[6] + a[12]*a[2]*a[5]
	inv[3] = -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] + a[5]*a[2]*a[11] - a[5]*a[3]*a[10] - a[9]*a[2]*a[7] + a[9]*a[3]*a[6]
	inv[7] = a[0]*a[6]*a[11] - a[0]*a[7]*a[10] - a[4]*a[2]*a[11] + a[4]*a[3]*a[10] + a[8]*a[2]*a[7] - a[8]*a[3]*a[6]
	inv[11] = -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] + a[4]*a[1]*a[11] - a[4]*a[3]*a[9] - a[8]*a[1]*a[7] + a[8]*a[3]*a[5]
	inv[15] = a[0]*a[5]*a[10] - a[0]*a[6]*a[9] - a[4]*a[1]*a[10] + a[4]*a[2]*a[9] + a[8]*a[1]*a[6] - a[8]*a[2]*a[5]

	det := a[0]*inv[0] + a[1]*inv[4] + a[2]*inv[8] + a[3]*inv[12]
	if math.Abs(det) < 1e-12 {
		return Mat4{}, NonInvertibleTransform{}
	}
	invDet := 1 / det

	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = inv[i*4+j] * invDet
		}
	}
	return out, nil
}

// Transform is a composed affine transform kept as a (forward, inverse)
// pair, per spec §3: the inverse is used to transport points from world
// into node-local space.
type Transform struct {
	Forward     Mat4
	Inverse     Mat4
	UniformScale float64 // 1 if no scale was applied; NaN if non-uniform
}

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform {
	return Transform{Forward: Identity4(), Inverse: Identity4(), UniformScale: 1}
}

// NewTransform builds a Transform from a forward matrix, computing (and
// caching) its inverse. Returns NonInvertibleTransform if the matrix is
// singular.
func NewTransform(forward Mat4, uniformScale float64) (Transform, error) {
	inv, err := inverse4(forward)
	if err != nil {
		return Transform{}, err
	}
	return Transform{Forward: forward, Inverse: inv, UniformScale: uniformScale}, nil
}

// Compose returns t followed by other (other applied in other's local frame
// nested inside t's), i.e. the matrix product t.Forward * other.Forward.
// Uniform scale factors multiply; if either input is non-uniform (NaN) the
// result is flagged non-uniform too.
func (t Transform) Compose(other Transform) Transform {
	scale := t.UniformScale * other.UniformScale
	if math.IsNaN(t.UniformScale) || math.IsNaN(other.UniformScale) {
		scale = math.NaN()
	}
	return Transform{
		Forward:      t.Forward.Mul(other.Forward),
		Inverse:      other.Inverse.Mul(t.Inverse),
		UniformScale: scale,
	}
}

// IsUniform reports whether the transform's scale is a single Euclidean
// scale factor (rather than an anisotropic, distance-breaking one).
func (t Transform) IsUniform() bool {
	return !math.IsNaN(t.UniformScale)
}

// Translate builds a translation transform.
func Translate(v Vec3) Transform {
	m := Identity4()
	m[0][3], m[1][3], m[2][3] = v.X, v.Y, v.Z
	t, _ := NewTransform(m, 1) // translations are always invertible
	return t
}

// Scale builds a transform that scales uniformly by s.
func Scale(s float64) Transform {
	m := Identity4()
	m[0][0], m[1][1], m[2][2] = s, s, s
	t, err := NewTransform(m, s)
	if err != nil {
		// s == 0: the matrix is singular and the zero Transform is returned;
		// the scene builder rejects a zero scale with NonInvertibleTransform.
		return t
	}
	return t
}

// ScaleXYZ builds a non-uniform scale transform. Per spec §9, distances
// computed under it are not true Euclidean distances; UniformScale is NaN
// to mark the approximation.
func ScaleXYZ(v Vec3) (Transform, error) {
	m := Identity4()
	m[0][0], m[1][1], m[2][2] = v.X, v.Y, v.Z
	return NewTransform(m, math.NaN())
}

// LipschitzEstimate approximates the Lipschitz constant of the inverse
// transform's linear part, for the non-uniform-scale distance correction
// spec §9 documents as acceptable ("compute an approximate Lipschitz
// constant and divide the distance by it"). It takes the largest row length
// of the inverse's linear part, which is exact when the inverse is an
// axis-aligned scale followed by a rotation (plus translation); for other
// linear parts (e.g. shear) the row length can be smaller than the true
// constant, so the corrected distance can overestimate.
func (t Transform) LipschitzEstimate() float64 {
	rowLen := func(i int) float64 {
		return math.Sqrt(t.Inverse[i][0]*t.Inverse[i][0] + t.Inverse[i][1]*t.Inverse[i][1] + t.Inverse[i][2]*t.Inverse[i][2])
	}
	l := math.Max(rowLen(0), math.Max(rowLen(1), rowLen(2)))
	if l == 0 {
		return 1
	}
	return l
}

// RotateAxisAngle builds a rotation transform from an axis (need not be
// pre-normalized) and an angle in radians, via Rodrigues' formula.
func RotateAxisAngle(axis Vec3, angle float64) (Transform, error) {
	a, err := axis.Normalize()
	if err != nil {
		return Transform{}, err
	}
	s, c := math.Sin(angle), math.Cos(angle)
	t := 1 - c
	x, y, z := a.X, a.Y, a.Z

	m := Identity4()
	m[0][0] = t*x*x + c
	m[0][1] = t*x*y - s*z
	m[0][2] = t*x*z + s*y
	m[1][0] = t*x*y + s*z
	m[1][1] = t*y*y + c
	m[1][2] = t*y*z - s*x
	m[2][0] = t*x*z - s*y
	m[2][1] = t*y*z + s*x
	m[2][2] = t*z*z + c

	return NewTransform(m, 1)
}
