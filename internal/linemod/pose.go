package linemod

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"linemod-brachmann/internal/mathutil"
)

// Pose is a rotation plus translation in the LINEMOD camera frame.
// Translation is in centimetres.
type Pose struct {
	R mathutil.Mat3
	T mathutil.Vec3
}

// ReadPose reads frame i of an object: data/rot<i>.rot (3×3, row-major) and
// data/tra<i>.tra (3-vector, cm). Each file starts with one descriptor line.
func ReadPose(objDir string, i int) (Pose, error) {
	rot, err := readFloats(RotPath(objDir, i), 9)
	if err != nil {
		return Pose{}, err
	}
	tra, err := readFloats(TraPath(objDir, i), 3)
	if err != nil {
		return Pose{}, err
	}

	return Pose{
		R: mathutil.Mat3FromFloat32([9]float32(rot)),
		T: mathutil.Vec3FromFloat32([3]float32(tra)),
	}, nil
}

// readFloats skips the first line and parses exactly n whitespace-separated
// float32 values from the remainder.
func readFloats(path string, n int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("linemod: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("linemod: read %s: %w", path, err)
		}
		return nil, formatErr(path, "empty file")
	}

	vals := make([]float32, 0, n)
	for sc.Scan() {
		for _, tok := range strings.Fields(sc.Text()) {
			x, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return nil, formatErr(path, "token %d: %v", len(vals), err)
			}
			vals = append(vals, float32(x))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("linemod: read %s: %w", path, err)
	}
	if len(vals) != n {
		return nil, formatErr(path, "want %d values, got %d", n, len(vals))
	}
	return vals, nil
}
