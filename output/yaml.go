package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/odylint/odylint/api"
)

// YAML streams diagnostics to w as a YAML sequence.
func YAML(w io.Writer, diagnostics chan *api.Diagnostic) error {
	count := 0
	for diagnostic := range diagnostics {
		count++
		// A one element sequence per diagnostic concatenates into a single sequence.
		data, err := yaml.Marshal([]*api.Diagnostic{diagnostic})
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	if count == 0 {
		_, err := fmt.Fprintln(w, "[]")
		return err
	}
	return nil
}
