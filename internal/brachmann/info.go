package brachmann

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"linemod-brachmann/internal/mathutil"
)

// ImageWidth and ImageHeight are always written to the info file, whatever the
// size of the actual frames.
const (
	ImageWidth  = 640
	ImageHeight = 480
)

// Info is the content of one info_<i>.txt file. Lengths are metres.
type Info struct {
	Name     string
	Rotation mathutil.Mat3
	Center   mathutil.Vec3 // camera to bounding-box centre
	Extent   mathutil.Vec3
}

// WriteInfo writes info to path, replacing any existing file.
func WriteInfo(path string, info Info) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("brachmann: create %s: %w", path, err)
	}
	if err := EncodeInfo(f, info); err != nil {
		f.Close()
		return fmt.Errorf("brachmann: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("brachmann: close %s: %w", path, err)
	}
	return nil
}

// EncodeInfo writes the info text template.
func EncodeInfo(w io.Writer, info Info) error {
	r := info.Rotation
	_, err := fmt.Fprintf(w, "image size\n%d %d\n%s\nrotation:\n%s\n%s\n%s\ncenter:\n%s\nextent:\n%s\n",
		ImageWidth, ImageHeight,
		info.Name,
		formatVec(r.Row(0)), formatVec(r.Row(1)), formatVec(r.Row(2)),
		formatVec(info.Center),
		formatVec(info.Extent),
	)
	return err
}

// ReadInfo parses an info file written by WriteInfo.
func ReadInfo(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("brachmann: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := DecodeInfo(f)
	if err != nil {
		return Info{}, fmt.Errorf("brachmann: parse %s: %w", path, err)
	}
	return info, nil
}

// DecodeInfo parses the info text template.
func DecodeInfo(r io.Reader) (Info, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return Info{}, err
	}
	if len(lines) < 11 {
		return Info{}, fmt.Errorf("want 11 lines, got %d", len(lines))
	}

	expect := map[int]string{0: "image size", 3: "rotation:", 7: "center:", 9: "extent:"}
	for i, want := range expect {
		if lines[i] != want {
			return Info{}, fmt.Errorf("line %d: want %q, got %q", i+1, want, lines[i])
		}
	}

	info := Info{Name: lines[2]}
	var rows [3]mathutil.Vec3
	for k := 0; k < 3; k++ {
		v, err := parseVec(lines[4+k])
		if err != nil {
			return Info{}, fmt.Errorf("rotation row %d: %w", k, err)
		}
		rows[k] = v
	}
	info.Rotation = mathutil.Mat3FromRows(rows[0], rows[1], rows[2])

	var err error
	if info.Center, err = parseVec(lines[8]); err != nil {
		return Info{}, fmt.Errorf("center: %w", err)
	}
	if info.Extent, err = parseVec(lines[10]); err != nil {
		return Info{}, fmt.Errorf("extent: %w", err)
	}
	return info, nil
}

// formatFloat prints the shortest decimal that round-trips, always with a
// decimal point or exponent so readers treat it as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}

func formatVec(v mathutil.Vec3) string {
	return formatFloat(v[0]) + " " + formatFloat(v[1]) + " " + formatFloat(v[2])
}

func parseVec(line string) (mathutil.Vec3, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("want 3 values, got %d", len(fields))
	}
	var v mathutil.Vec3
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return mathutil.Vec3{}, err
		}
		v[i] = x
	}
	return v, nil
}
