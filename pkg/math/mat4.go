package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix stored row-major: indices 0-3 are row 0,
// 4-7 row 1, 8-11 row 2 and 12-15 row 3.
// Layout: [m0  m1  m2  m3 ]
//
//	[m4  m5  m6  m7 ]
//	[m8  m9  m10 m11]
//	[m12 m13 m14 m15]
//
// Translation lives in the last column (m3, m7, m11). GLSL expects
// column-major data, so uploads must set the transpose flag.
//
// The mutating methods take a pointer receiver and are meant for a
// matrix owned by the goroutine that holds the GPU context.
type Mat4 [16]float32

// Axis selects a rotation axis.
type Axis uint8

// Rotation axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "Axis(?)"
	}
}

// Radians converts degrees to radians.
func Radians(degrees float32) float32 {
	return degrees * (math32.Pi / 180)
}

// New returns a diagonal matrix with value in the three scale slots.
// Element 15 is always 1.
func New(value float32) Mat4 {
	return Mat4{
		value, 0, 0, 0,
		0, value, 0, 0,
		0, 0, value, 0,
		0, 0, 0, 1,
	}
}

// Identity returns an identity matrix.
func Identity() Mat4 {
	return New(1)
}

// TranslationMatrix returns an identity matrix translated by v.
func TranslationMatrix(v Vec3) Mat4 {
	m := Identity()
	m.Translate(v)
	return m
}

// RotationMatrix returns a rotation of degrees around axis.
func RotationMatrix(degrees float32, axis Axis) Mat4 {
	m := Identity()
	m.Rotate(degrees, axis)
	return m
}

// Scale multiplies the three diagonal scale entries by factor.
// The homogeneous element is left alone.
func (m *Mat4) Scale(factor float32) {
	m[0] *= factor
	m[5] *= factor
	m[10] *= factor
}

// Translate adds v into the translation column.
func (m *Mat4) Translate(v Vec3) {
	m[3] += v.X
	m[7] += v.Y
	m[11] += v.Z
}

// Rotate overwrites the 2x2 block orthogonal to axis with a rotation of
// degrees. The row and column of the axis itself are untouched, so any
// scale already on the overwritten block is replaced; compose with Mul
// when both are needed.
func (m *Mat4) Rotate(degrees float32, axis Axis) {
	rad := Radians(degrees)
	s := math32.Sin(rad)
	c := math32.Cos(rad)

	switch axis {
	case AxisX:
		m[5], m[6] = c, -s
		m[9], m[10] = s, c
	case AxisY:
		m[0], m[2] = c, s
		m[8], m[10] = -s, c
	case AxisZ:
		m[0], m[1] = c, -s
		m[4], m[5] = s, c
	}
}

// Perspective overwrites m with a perspective projection.
// fovY is in radians, aspect is width/height. The last row is (0, 0, -1, 0)
// so clip-space w becomes -z. Degenerate input (near == far, aspect == 0,
// fovY of 0 or Pi) yields Inf/NaN entries.
func (m *Mat4) Perspective(fovY, aspect, near, far float32) {
	f := 1 / math32.Tan(fovY/2)
	depth := far - near

	*m = Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -(far + near) / depth, -2 * far * near / depth,
		0, 0, -1, 0,
	}
}

// Transpose swaps m across its main diagonal in place.
func (m *Mat4) Transpose() {
	m[1], m[4] = m[4], m[1]
	m[2], m[8] = m[8], m[2]
	m[3], m[12] = m[12], m[3]
	m[6], m[9] = m[9], m[6]
	m[7], m[13] = m[13], m[7]
	m[11], m[14] = m[14], m[11]
}

// Transposed returns a transposed copy of m.
func (m Mat4) Transposed() Mat4 {
	m.Transpose()
	return m
}

// MulVec4 returns m * v. Component i is row i dotted with v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3]*v.W,
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7]*v.W,
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11]*v.W,
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]*v.W,
	}
}

// Mul returns m * other. Applied to a vector, other acts first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row*4+col] =
				m[row*4+0]*other[0*4+col] +
					m[row*4+1]*other[1*4+col] +
					m[row*4+2]*other[2*4+col] +
					m[row*4+3]*other[3*4+col]
		}
	}
	return result
}

// LookAt returns a view matrix looking from eye to center with up direction.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)

	return Mat4{
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	}
}

// Ptr returns a pointer to the first element for uniform uploads.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
