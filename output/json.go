package output

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/odylint/odylint/api"
)

// JSON streams a JSON array of diagnostics to w.
func JSON(w io.Writer, diagnostics chan *api.Diagnostic) error {
	if _, err := fmt.Fprintln(w, "["); err != nil {
		return err
	}
	separator := ""
	for diagnostic := range diagnostics {
		d, err := json.Marshal(diagnostic)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s  %s", separator, d); err != nil {
			return err
		}
		separator = ",\n"
	}
	_, err := fmt.Fprintf(w, "\n]\n")
	return err
}
