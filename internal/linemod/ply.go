package linemod

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type plyHeader struct {
	vertices int
	faces    int
}

// ReadMesh parses the minimal ASCII PLY subset of the dataset: a header with
// "element vertex N", optionally "element face M", then N vertex lines (x y z
// are the first three tokens) and M face lines ("3 i j k"). Faces are only
// parsed when withFaces is set. Short files are a format error.
func ReadMesh(path string, withFaces bool) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("linemod: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	hdr, err := readPLYHeader(sc, path)
	if err != nil {
		return nil, err
	}

	mesh := &Mesh{Vertices: make([][3]float32, 0, hdr.vertices)}
	for i := 0; i < hdr.vertices; i++ {
		if !sc.Scan() {
			return nil, truncated(sc, path, "vertex", i, hdr.vertices)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			return nil, formatErr(path, "vertex %d has %d fields", i, len(fields))
		}
		var v [3]float32
		for k := 0; k < 3; k++ {
			x, err := strconv.ParseFloat(fields[k], 32)
			if err != nil {
				return nil, formatErr(path, "vertex %d: %v", i, err)
			}
			v[k] = float32(x)
		}
		mesh.Vertices = append(mesh.Vertices, v)
	}

	if !withFaces {
		return mesh, nil
	}

	mesh.Indices = make([][3]uint32, 0, hdr.faces)
	for i := 0; i < hdr.faces; i++ {
		if !sc.Scan() {
			return nil, truncated(sc, path, "face", i, hdr.faces)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			return nil, formatErr(path, "face %d has %d fields", i, len(fields))
		}
		var tri [3]uint32
		for k := 0; k < 3; k++ {
			idx, err := strconv.ParseInt(fields[k+1], 10, 32)
			if err != nil {
				return nil, formatErr(path, "face %d: %v", i, err)
			}
			if idx < 0 || int(idx) >= hdr.vertices {
				return nil, formatErr(path, "face %d: index %d out of range [0,%d)", i, idx, hdr.vertices)
			}
			tri[k] = uint32(idx)
		}
		mesh.Indices = append(mesh.Indices, tri)
	}

	return mesh, nil
}

func readPLYHeader(sc *bufio.Scanner, path string) (plyHeader, error) {
	var hdr plyHeader

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "ply" {
		return hdr, formatErr(path, "missing ply magic")
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "end_header":
			return hdr, nil
		case strings.HasPrefix(line, "element vertex"):
			n, err := elementCount(line)
			if err != nil {
				return hdr, formatErr(path, "%q: %v", line, err)
			}
			hdr.vertices = n
		case strings.HasPrefix(line, "element face"):
			n, err := elementCount(line)
			if err != nil {
				return hdr, formatErr(path, "%q: %v", line, err)
			}
			hdr.faces = n
		}
	}
	if err := sc.Err(); err != nil {
		return hdr, fmt.Errorf("linemod: read %s: %w", path, err)
	}
	return hdr, formatErr(path, "missing end_header")
}

func elementCount(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, fmt.Errorf("want 3 fields, got %d", len(fields))
	}
	n, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

func truncated(sc *bufio.Scanner, path, what string, got, want int) error {
	if err := sc.Err(); err != nil {
		return fmt.Errorf("linemod: read %s: %w", path, err)
	}
	return formatErr(path, "got %d of %d %s lines", got, want, what)
}
