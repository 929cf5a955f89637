// Package convert maps LINEMOD poses and object extents into the Brachmann
// pose format.
//
// The chain is LINEMOD camera frame -> OpenCV camera frame -> Brachmann frame,
// with translations going mm -> cm -> m along the way. Every step is a pure
// function so each can be checked on its own.
package convert

import (
	"linemod-brachmann/internal/mathutil"
)

// Result holds the fields written to a Brachmann info file. All lengths are metres.
type Result struct {
	Rotation    mathutil.Mat3
	Translation mathutil.Vec3 // camera to bounding-box centre
	Extent      mathutil.Vec3
	Flipped     bool // rotation/translation were negated to keep det(R) > 0
}

// CenterInView rotates the object-local box centre (mm) into the current
// camera view and returns it in centimetres.
func CenterInView(r mathutil.Mat3, centerMM mathutil.Vec3) mathutil.Vec3 {
	return r.MulVec3(centerMM).Div(mathutil.MMPerCM)
}

// ToCenterDistance re-expresses a camera-to-origin translation as
// camera-to-box-centre. Both arguments are in centimetres.
func ToCenterDistance(tCM, centerCM mathutil.Vec3) mathutil.Vec3 {
	return tCM.Add(centerCM)
}

// LinemodToOpenCV applies the fixed LINEMOD -> OpenCV frame change to a pose.
// A negative determinant means the pose was reconstructed behind the camera;
// both R and t are then negated and flipped is true.
func LinemodToOpenCV(r mathutil.Mat3, t mathutil.Vec3) (mathutil.Mat3, mathutil.Vec3, bool) {
	r1 := mathutil.Mat3Mul(mathutil.LinemodToCV, r)
	t1 := mathutil.LinemodToCV.MulVec3(t)
	if r1.Det() < 0 {
		return r1.Neg(), t1.Neg(), true
	}
	return r1, t1, false
}

// OpenCVToBrachmann maps the rotation rows into the Brachmann frame:
// (T·Rᵀ)ᵀ = R·Tᵀ. The translation stays in the OpenCV frame; existing
// Brachmann data was written that way.
func OpenCVToBrachmann(r mathutil.Mat3) mathutil.Mat3 {
	return mathutil.Mat3Mul(mathutil.CVToBrachmann, r.Transpose()).Transpose()
}

// ExtentToBrachmann maps an object-local extent (mm) into the Brachmann frame
// and converts it to metres. It never goes through the LINEMOD -> OpenCV step,
// so components keep the sign of the axis permutation.
func ExtentToBrachmann(extentMM mathutil.Vec3) mathutil.Vec3 {
	return mathutil.CVToBrachmann.MulVec3(extentMM).Div(mathutil.MMPerM)
}

// Pose converts one LINEMOD frame. r is the LINEMOD rotation, tCM the
// translation in centimetres, extentMM and centerMM the object bounding box.
func Pose(r mathutil.Mat3, tCM, extentMM, centerMM mathutil.Vec3) Result {
	// centre must be taken in the unconverted view
	t := ToCenterDistance(tCM, CenterInView(r, centerMM))

	r1, t1, flipped := LinemodToOpenCV(r, t)

	return Result{
		Rotation:    OpenCVToBrachmann(r1),
		Translation: t1.Div(mathutil.CMPerM),
		Extent:      ExtentToBrachmann(extentMM),
		Flipped:     flipped,
	}
}
