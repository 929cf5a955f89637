package mathutil

// Fixed camera-frame changes between the LINEMOD dataset, OpenCV and the
// Brachmann pose format. Both have determinant +1.
var (
	// LinemodToCV flips y and z: LINEMOD cameras look down -z with y up.
	LinemodToCV = Mat3Diag(1, -1, -1)

	// CVToBrachmann permutes OpenCV axes into the Brachmann convention:
	// x' = -y, y' = -z, z' = x.
	CVToBrachmann = Mat3{
		0, -1, 0,
		0, 0, -1,
		1, 0, 0,
	}
)

// Unit scale factors used along the conversion chain.
const (
	MMPerCM = 10.0
	CMPerM  = 100.0
	MMPerM  = 1000.0
)
