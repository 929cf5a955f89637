package mathutil

import "math"

// Vec3 is a 3-component vector (value type, stack-allocated).
type Vec3 [3]float64

// Vec3FromFloat32 widens a float32 triple.
func Vec3FromFloat32(v [3]float32) Vec3 {
	return Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Div divides every component by s.
func (v Vec3) Div(s float64) Vec3 {
	return Vec3{v[0] / s, v[1] / s, v[2] / s}
}

func (v Vec3) Neg() Vec3 {
	return v.Scale(-1)
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// ApproxEqual reports whether every component differs by at most tol.
func (a Vec3) ApproxEqual(b Vec3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
