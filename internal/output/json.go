package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/reviewd/internal/review"
)

// JSONWriter outputs the full review result as JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, out *review.Output) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
