package linemod

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"linemod-brachmann/internal/mathutil"
)

// ReadTransform reads an object's transform.dat: a count line followed by
// twelve "<index> <value>" lines forming a row-major 3×4 [R|t] with t in metres.
// The returned translation is in centimetres to match ReadPose.
func ReadTransform(path string) (mathutil.Mat3, mathutil.Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return mathutil.Mat3{}, mathutil.Vec3{}, fmt.Errorf("linemod: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return mathutil.Mat3{}, mathutil.Vec3{}, fmt.Errorf("linemod: read %s: %w", path, err)
		}
		return mathutil.Mat3{}, mathutil.Vec3{}, formatErr(path, "empty file")
	}
	if n := strings.TrimSpace(sc.Text()); n != "12" {
		return mathutil.Mat3{}, mathutil.Vec3{}, formatErr(path, "entry count %q, want 12", n)
	}

	var vals []float32
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return mathutil.Mat3{}, mathutil.Vec3{}, formatErr(path, "line %d has %d fields", len(vals)+2, len(fields))
		}
		x, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			return mathutil.Mat3{}, mathutil.Vec3{}, formatErr(path, "entry %d: %v", len(vals), err)
		}
		vals = append(vals, float32(x))
	}
	if err := sc.Err(); err != nil {
		return mathutil.Mat3{}, mathutil.Vec3{}, fmt.Errorf("linemod: read %s: %w", path, err)
	}
	if len(vals) != 12 {
		return mathutil.Mat3{}, mathutil.Vec3{}, formatErr(path, "want 12 entries, got %d", len(vals))
	}

	var r mathutil.Mat3
	var t mathutil.Vec3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row*3+col] = float64(vals[row*4+col])
		}
		t[row] = float64(vals[row*4+3]) * mathutil.CMPerM
	}
	return r, t, nil
}
