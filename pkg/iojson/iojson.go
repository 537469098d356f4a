// Package iojson provides JSON line IO helpers for CLI commands.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteLine encodes v as a single JSON line on w.
func WriteLine(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
