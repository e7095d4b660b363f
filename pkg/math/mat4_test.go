package math

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	for _, v := range []float32{0, 1, 2.5, -3} {
		m := New(v)
		if m[0] != v || m[5] != v || m[10] != v {
			t.Errorf("New(%v) diagonal: got (%v, %v, %v)", v, m[0], m[5], m[10])
		}
		// Element 15 is always 1
		if m[15] != 1 {
			t.Errorf("New(%v)[15] = %v, want 1", v, m[15])
		}
		for _, i := range []int{1, 2, 3, 4, 6, 7, 8, 9, 11, 12, 13, 14} {
			if m[i] != 0 {
				t.Errorf("New(%v)[%d] = %v, want 0", v, i, m[i])
			}
		}
	}
}

func TestIdentityLaw(t *testing.T) {
	points := []Vec4{
		{0, 0, 0, 1},
		{1, 2, 3, 1},
		{-7.25, 1e6, 3e-7, 0},
		{0.1, 0.2, 0.3, 0.4},
	}
	m := New(1)
	for _, p := range points {
		if got := m.MulVec4(p); got != p {
			t.Errorf("New(1).MulVec4(%v) = %v", p, got)
		}
	}
}

func TestScaleLaw(t *testing.T) {
	m := New(1)
	m.Scale(3)

	v := Vec4{1, -2, 4, 1}
	got := m.MulVec4(v)
	want := Vec4{3, -6, 12, 1}
	if got != want {
		t.Errorf("scaled MulVec4 = %v, want %v", got, want)
	}
	if m[15] != 1 {
		t.Errorf("Scale touched the homogeneous element: %v", m[15])
	}
}

func TestScaleCompounds(t *testing.T) {
	m := New(2)
	m.Scale(0.5)
	m.Scale(4)
	if m[0] != 4 || m[5] != 4 || m[10] != 4 {
		t.Errorf("compound scale diagonal: got (%v, %v, %v), want 4", m[0], m[5], m[10])
	}
}

func TestTranslateLaw(t *testing.T) {
	m := New(1)
	m.Translate(Vec3{5, 10, 15})

	// Translation sits in the last column (indices 3, 7, 11)
	if m[3] != 5 || m[7] != 10 || m[11] != 15 {
		t.Errorf("Translate: got (%v, %v, %v), want (5, 10, 15)", m[3], m[7], m[11])
	}

	got := m.MulVec4(Vec4{0, 0, 0, 1})
	want := Vec4{5, 10, 15, 1}
	if got != want {
		t.Errorf("translated origin = %v, want %v", got, want)
	}

	// Directions ignore translation
	dir := m.MulVec4(Vec4{1, 0, 0, 0})
	if dir != (Vec4{1, 0, 0, 0}) {
		t.Errorf("translated direction = %v, want (1, 0, 0, 0)", dir)
	}
}

func TestTranslateAccumulates(t *testing.T) {
	m := New(1)
	m.Translate(Vec3{1, 2, 3})
	m.Translate(Vec3{1, 2, 3})
	if m[3] != 2 || m[7] != 4 || m[11] != 6 {
		t.Errorf("Translate twice: got (%v, %v, %v), want (2, 4, 6)", m[3], m[7], m[11])
	}
}

func TestRotate90(t *testing.T) {
	tests := []struct {
		name string
		axis Axis
		in   Vec4
		want Vec4
	}{
		{"Z maps X to Y", AxisZ, Vec4{1, 0, 0, 1}, Vec4{0, 1, 0, 1}},
		{"Z maps Y to -X", AxisZ, Vec4{0, 1, 0, 1}, Vec4{-1, 0, 0, 1}},
		{"X maps Y to Z", AxisX, Vec4{0, 1, 0, 1}, Vec4{0, 0, 1, 1}},
		{"Y maps Z to X", AxisY, Vec4{0, 0, 1, 1}, Vec4{1, 0, 0, 1}},
		{"Y maps X to -Z", AxisY, Vec4{1, 0, 0, 1}, Vec4{0, 0, -1, 1}},
		{"axis is fixed", AxisZ, Vec4{0, 0, 1, 1}, Vec4{0, 0, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(1)
			m.Rotate(90, tt.axis)
			got := m.MulVec4(tt.in)
			if !vec4Near(got, tt.want, 1e-4) {
				t.Errorf("Rotate(90, %v) * %v = %v, want %v", tt.axis, tt.in, got, tt.want)
			}
		})
	}
}

func TestRotateLeavesAxisUntouched(t *testing.T) {
	m := Mat4{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	before := m
	m.Rotate(30, AxisZ)

	// Only the upper-left 2x2 block changes for Z
	for _, i := range []int{2, 3, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15} {
		if m[i] != before[i] {
			t.Errorf("Rotate(Z) changed index %d: %v -> %v", i, before[i], m[i])
		}
	}
}

func TestRotateFullPrecisionPi(t *testing.T) {
	// A truncated pi (3.1415) leaves ~1.6e-4 of residual sine at 180 degrees.
	m := New(1)
	m.Rotate(180, AxisZ)
	if abs(m[1]) > 1e-6 || abs(m[4]) > 1e-6 {
		t.Errorf("Rotate(180) sine terms = (%v, %v), want ~0", m[1], m[4])
	}
	if abs(m[0]+1) > 1e-6 || abs(m[5]+1) > 1e-6 {
		t.Errorf("Rotate(180) cosine terms = (%v, %v), want -1", m[0], m[5])
	}
}

func TestTransposeInvolution(t *testing.T) {
	m := Mat4{
		1.5, -2, 3e10, 4,
		5, float32(math.Inf(1)), 7, 8.125,
		9, 10, -11, 1e-20,
		13, 14, 15, 16,
	}
	orig := m
	m.Transpose()
	if m == orig {
		t.Fatal("Transpose did not change a non-symmetric matrix")
	}
	if m[1] != orig[4] || m[14] != orig[11] || m[3] != orig[12] {
		t.Errorf("Transpose swapped wrong elements: %v", m)
	}
	m.Transpose()
	if m != orig {
		t.Errorf("Transpose twice = %v, want %v", m, orig)
	}
}

func TestPerspectiveSymmetry(t *testing.T) {
	var m Mat4
	m.Perspective(Radians(90), 1, 0.1, 100)

	if m[0] != m[5] {
		t.Errorf("horizontal scale %v != vertical scale %v", m[0], m[5])
	}
	if abs(m[5]-1) > 1e-6 {
		t.Errorf("1/tan(45deg) = %v, want 1", m[5])
	}
	if m[14] != -1 || m[15] != 0 {
		t.Errorf("homogeneous divide pair = (%v, %v), want (-1, 0)", m[14], m[15])
	}
}

func TestPerspectiveDepth(t *testing.T) {
	var m Mat4
	m.Perspective(Radians(60), 16.0/9.0, 0.1, 100)

	if abs(m[0]-m[5]*9/16) > 1e-5 {
		t.Errorf("horizontal scale should be vertical/aspect: %v vs %v", m[0], m[5])
	}

	// Points on the near and far planes map to NDC z of -1 and +1
	for _, tc := range []struct {
		z, ndc float32
	}{{-0.1, -1}, {-100, 1}} {
		clip := m.MulVec4(Vec4{0, 0, tc.z, 1})
		if clip.W != -tc.z {
			t.Errorf("w for z=%v = %v, want %v", tc.z, clip.W, -tc.z)
		}
		if got := clip.Z / clip.W; abs(got-tc.ndc) > 1e-4 {
			t.Errorf("ndc z for z=%v = %v, want %v", tc.z, got, tc.ndc)
		}
	}
}

func TestPerspectiveDegenerate(t *testing.T) {
	var m Mat4
	m.Perspective(Radians(90), 1, 1, 1)
	if !isNonFinite(m[10]) || !isNonFinite(m[11]) {
		t.Errorf("near == far should give non-finite depth terms, got (%v, %v)", m[10], m[11])
	}

	m.Perspective(Radians(90), 0, 0.1, 100)
	if !isNonFinite(m[0]) {
		t.Errorf("aspect 0 should give non-finite horizontal scale, got %v", m[0])
	}
}

func TestMul(t *testing.T) {
	tr := TranslationMatrix(Vec3{10, 0, 0})
	rot := RotationMatrix(90, AxisZ)

	// Rotate first, then translate
	m := tr.Mul(rot)
	got := m.MulVec4(Vec4{1, 0, 0, 1})
	if !vec4Near(got, Vec4{10, 1, 0, 1}, 1e-4) {
		t.Errorf("(T*R) * (1,0,0,1) = %v, want (10, 1, 0, 1)", got)
	}

	// Translate first, then rotate
	m = rot.Mul(tr)
	got = m.MulVec4(Vec4{1, 0, 0, 1})
	if !vec4Near(got, Vec4{0, 11, 0, 1}, 1e-4) {
		t.Errorf("(R*T) * (1,0,0,1) = %v, want (0, 11, 0, 1)", got)
	}
}

func TestMulIdentity(t *testing.T) {
	m := TranslationMatrix(Vec3{1, 2, 3})
	m.Scale(2)
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M * I = %v, want %v", got, m)
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("I * M = %v, want %v", got, m)
	}
}

func TestTransposed(t *testing.T) {
	m := TranslationMatrix(Vec3{4, 5, 6})
	tm := m.Transposed()
	// Column-major upload layout keeps translation at 12/13/14
	if tm[12] != 4 || tm[13] != 5 || tm[14] != 6 {
		t.Errorf("Transposed translation = (%v, %v, %v)", tm[12], tm[13], tm[14])
	}
	if m[3] != 4 {
		t.Error("Transposed modified its receiver")
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
	// The eye maps to the view-space origin
	got := m.MulVec4(eye.Vec4(1))
	if !vec4Near(got, Vec4{0, 0, 0, 1}, 1e-5) {
		t.Errorf("LookAt eye = %v, want origin", got)
	}
	// The target sits in front of the camera on -Z
	got = m.MulVec4(Vec4{0, 0, 0, 1})
	if !vec4Near(got, Vec4{0, 0, -5, 1}, 1e-5) {
		t.Errorf("LookAt center = %v, want (0, 0, -5, 1)", got)
	}
}

func TestAxisString(t *testing.T) {
	if AxisX.String() != "X" || AxisY.String() != "Y" || AxisZ.String() != "Z" {
		t.Error("unexpected axis names")
	}
}

func vec4Near(a, b Vec4, eps float32) bool {
	return abs(a.X-b.X) <= eps && abs(a.Y-b.Y) <= eps &&
		abs(a.Z-b.Z) <= eps && abs(a.W-b.W) <= eps
}

func isNonFinite(x float32) bool {
	f := float64(x)
	return math.IsInf(f, 0) || math.IsNaN(f)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
