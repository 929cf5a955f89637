package convert

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"linemod-brachmann/internal/mathutil"
)

func det(m mathutil.Mat3) float64 {
	return mat.Det(mat.NewDense(3, 3, m[:]))
}

func randomRotation(rng *rand.Rand) mathutil.Mat3 {
	axis := mathutil.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	return mathutil.AxisAngle(axis, rng.Float64()*2*math.Pi)
}

func randomVec(rng *rand.Rand, scale float64) mathutil.Vec3 {
	return mathutil.Vec3{
		(rng.Float64()*2 - 1) * scale,
		(rng.Float64()*2 - 1) * scale,
		(rng.Float64()*2 - 1) * scale,
	}
}

func TestPoseIdentity(t *testing.T) {
	res := Pose(mathutil.Mat3Identity(), mathutil.Vec3{}, mathutil.Vec3{2, 2, 2}, mathutil.Vec3{})

	want := mathutil.Mat3{
		0, 0, 1,
		1, 0, 0,
		0, 1, 0,
	}
	assert.Equal(t, want, res.Rotation)
	assert.Equal(t, mathutil.Vec3{}, res.Translation)
	assert.Equal(t, mathutil.Vec3{-0.002, -0.002, 0.002}, res.Extent)
	assert.False(t, res.Flipped)
	assert.InDelta(t, 1.0, det(res.Rotation), 1e-12)
	assert.Less(t, mathutil.OrthonormalError(res.Rotation), 1e-12)
}

func TestPoseTranslationUnits(t *testing.T) {
	// object 80 cm in front of a LINEMOD camera (looking down -z), box centre at origin
	res := Pose(mathutil.Mat3Identity(), mathutil.Vec3{1, 2, -80}, mathutil.Vec3{10, 10, 10}, mathutil.Vec3{})
	assert.True(t, res.Translation.ApproxEqual(mathutil.Vec3{0.01, -0.02, 0.8}, 1e-12), "got %v", res.Translation)
}

func TestCenterInView(t *testing.T) {
	r := mathutil.RotZ(math.Pi / 2)
	got := CenterInView(r, mathutil.Vec3{10, 0, 30})
	assert.True(t, got.ApproxEqual(mathutil.Vec3{0, 1, 3}, 1e-12), "got %v", got)

	got = ToCenterDistance(mathutil.Vec3{1, 1, -50}, got)
	assert.True(t, got.ApproxEqual(mathutil.Vec3{1, 2, -47}, 1e-12), "got %v", got)
}

func TestPoseIsPure(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := randomRotation(rng)
	tr := randomVec(rng, 100)
	ext := mathutil.Vec3{120, 80, 95}
	ctr := randomVec(rng, 10)

	first := Pose(r, tr, ext, ctr)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Pose(r, tr, ext, ctr))
	}
}

func TestPoseDeterminantCorrection(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	mirror := mathutil.Mat3Diag(1, 1, -1)

	for i := 0; i < 200; i++ {
		r := mathutil.Mat3Mul(randomRotation(rng), mirror)
		tr := randomVec(rng, 100)
		ctr := randomVec(rng, 20)
		require.Less(t, det(mathutil.Mat3Mul(mathutil.LinemodToCV, r)), 0.0)

		res := Pose(r, tr, mathutil.Vec3{1, 1, 1}, ctr)
		require.True(t, res.Flipped)
		assert.Greater(t, det(res.Rotation), 0.0)

		candidate := OpenCVToBrachmann(mathutil.Mat3Mul(mathutil.LinemodToCV, r))
		assert.True(t, res.Rotation.ApproxEqual(candidate.Neg(), 1e-12))

		tCenter := ToCenterDistance(tr, CenterInView(r, ctr))
		wantT := mathutil.LinemodToCV.MulVec3(tCenter).Neg().Div(mathutil.CMPerM)
		assert.True(t, res.Translation.ApproxEqual(wantT, 1e-12))
	}
}

func TestPoseNoFlipForProperRotations(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		res := Pose(randomRotation(rng), randomVec(rng, 100), mathutil.Vec3{1, 1, 1}, randomVec(rng, 20))
		assert.False(t, res.Flipped)
		assert.Greater(t, det(res.Rotation), 0.0)
	}
}

// Undo the conversion and check the camera-space box centre and the input
// rotation are recovered.
func TestPoseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		r := randomRotation(rng)
		if i%2 == 1 {
			r = r.Neg()
		}
		tr := randomVec(rng, 120)
		ctr := randomVec(rng, 30)

		res := Pose(r, tr, mathutil.Vec3{1, 1, 1}, ctr)

		sign := 1.0
		if res.Flipped {
			sign = -1
		}
		back := mathutil.LinemodToCV.Transpose()

		tCM := back.MulVec3(res.Translation.Scale(sign * mathutil.CMPerM))
		want := tr.Add(r.MulVec3(ctr).Div(mathutil.MMPerCM))
		assert.True(t, tCM.ApproxEqual(want, 1e-4), "frame %d: got %v want %v", i, tCM, want)

		r1 := mathutil.Mat3Mul(res.Rotation, mathutil.CVToBrachmann).Scale(sign)
		assert.True(t, mathutil.Mat3Mul(back, r1).ApproxEqual(r, 1e-9), "frame %d", i)
	}
}

func TestExtentToBrachmann(t *testing.T) {
	got := ExtentToBrachmann(mathutil.Vec3{100, 200, 300})
	assert.True(t, got.ApproxEqual(mathutil.Vec3{-0.2, -0.3, 0.1}, 1e-15), "got %v", got)
}
