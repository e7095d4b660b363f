package math

// Vec4 is a homogeneous coordinate. W=1 denotes a point, W=0 a direction.
type Vec4 struct {
	X, Y, Z, W float32
}

// Vec3 drops the W component.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}
