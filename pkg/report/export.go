package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON encodes a report as indented JSON and writes it to w. The
// output can be re-read with [ReadJSON], so a resolution run can be
// stored and rendered later without touching the repository again.
func WriteJSON(rep Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a report to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(rep Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(rep, f)
}
