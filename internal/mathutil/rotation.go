package mathutil

import "math"

// RotX returns the rotation about +x by a radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

// RotZ returns the rotation about +z by a radians.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}

// AxisAngle returns the Rodrigues rotation about axis by a radians.
// A zero axis yields the identity.
func AxisAngle(axis Vec3, a float64) Mat3 {
	l := axis.Len()
	if l < 1e-12 {
		return Mat3Identity()
	}
	x, y, z := axis[0]/l, axis[1]/l, axis[2]/l
	c, s := math.Cos(a), math.Sin(a)
	k := 1 - c
	return Mat3{
		c + x*x*k, x*y*k - z*s, x*z*k + y*s,
		y*x*k + z*s, c + y*y*k, y*z*k - x*s,
		z*x*k - y*s, z*y*k + x*s, c + z*z*k,
	}
}

// OrthonormalError returns max |RᵀR − I| over all elements.
func OrthonormalError(r Mat3) float64 {
	p := Mat3Mul(r.Transpose(), r)
	id := Mat3Identity()
	worst := 0.0
	for i := range p {
		if d := math.Abs(p[i] - id[i]); d > worst {
			worst = d
		}
	}
	return worst
}
