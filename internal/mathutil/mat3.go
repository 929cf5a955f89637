package mathutil

// Mat3 is a 3×3 matrix stored row-major: [r0c0, r0c1, r0c2, r1c0, ...].
// Value type, every operation returns a new matrix.
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func Mat3Diag(x, y, z float64) Mat3 {
	return Mat3{x, 0, 0, 0, y, 0, 0, 0, z}
}

// Mat3FromFloat32 widens a row-major float32 matrix as read from disk.
func Mat3FromFloat32(v [9]float32) Mat3 {
	var m Mat3
	for i, f := range v {
		m[i] = float64(f)
	}
	return m
}

// Mat3FromRows stacks three row vectors.
func Mat3FromRows(r0, r1, r2 Vec3) Mat3 {
	return Mat3{
		r0[0], r0[1], r0[2],
		r1[0], r1[1], r1[2],
		r2[0], r2[1], r2[2],
	}
}

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = a[r*3+0]*b[0*3+c] + a[r*3+1]*b[1*3+c] + a[r*3+2]*b[2*3+c]
		}
	}
	return m
}

// MulVec3 returns M × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Row returns row r as a vector.
func (m Mat3) Row(r int) Vec3 {
	return Vec3{m[r*3], m[r*3+1], m[r*3+2]}
}

func (m Mat3) At(r, c int) float64 {
	return m[r*3+c]
}

func (m Mat3) Scale(s float64) Mat3 {
	var out Mat3
	for i, v := range m {
		out[i] = v * s
	}
	return out
}

func (m Mat3) Neg() Mat3 {
	return m.Scale(-1)
}

func (m Mat3) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// ApproxEqual reports whether every element differs by at most tol.
func (m Mat3) ApproxEqual(o Mat3, tol float64) bool {
	for i := range m {
		d := m[i] - o[i]
		if d > tol || d < -tol {
			return false
		}
	}
	return true
}
