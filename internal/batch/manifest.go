package batch

import (
	"encoding/json"
	"os"
)

// Manifest describes one completed conversion run.
type Manifest struct {
	RunID   string          `json:"run_id"`
	Render  bool            `json:"render"`
	Objects []ManifestEntry `json:"objects"`
}

// ManifestEntry represents one converted object.
type ManifestEntry struct {
	Name     string     `json:"name"`
	Frames   int        `json:"frames"`
	Vertices int        `json:"vertices"`
	Faces    int        `json:"faces"`
	ExtentMM [3]float64 `json:"extent_mm"`
	CenterMM [3]float64 `json:"center_mm"`
}

// NewManifest builds the manifest of a run from its results.
func NewManifest(runID string, render bool, results []Result) Manifest {
	m := Manifest{RunID: runID, Render: render, Objects: make([]ManifestEntry, len(results))}
	for i, r := range results {
		m.Objects[i] = ManifestEntry{
			Name:     r.Name,
			Frames:   r.Frames,
			Vertices: r.Vertices,
			Faces:    r.Faces,
			ExtentMM: [3]float64(r.Bounds.Extent),
			CenterMM: [3]float64(r.Bounds.Center),
		}
	}
	return m
}

// WriteManifest writes manifest.json.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
