package output

import (
	"fmt"
	"io"
	"text/template"

	"github.com/odylint/odylint/api"
)

// Text writes each diagnostic on its own line, formatted with tmpl if it is not nil.
func Text(w io.Writer, tmpl *template.Template, diagnostics chan *api.Diagnostic) error {
	for diagnostic := range diagnostics {
		line, err := diagnostic.Format(tmpl)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
