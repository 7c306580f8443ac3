// iojson are utilities for reading and writing JSON IO from a
// command line interface perspective
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteLine writes obj as a single line of JSON (JSON lines format).
func WriteLine(w io.Writer, obj any) error {
	return json.NewEncoder(w).Encode(obj)
}

// WriteIndent writes obj as indented JSON followed by a newline.
func WriteIndent(w io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
