package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadJSON decodes a report from r. It accepts anything written by
// [WriteJSON] and does not close r.
func ReadJSON(r io.Reader) (Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return Report{}, fmt.Errorf("decode: %w", err)
	}
	return rep, nil
}

// ImportJSON reads a report from a JSON file at path.
// This is a convenience wrapper around [ReadJSON] for file-based input.
func ImportJSON(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
