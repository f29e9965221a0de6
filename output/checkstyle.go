package output

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/odylint/odylint/api"
)

type checkstyleOutput struct {
	XMLName xml.Name          `xml:"checkstyle"`
	Version string            `xml:"version,attr"`
	Files   []*checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string             `xml:"name,attr"`
	Errors []*checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Column   int    `xml:"column,attr,omitempty"`
	Line     int    `xml:"line,attr"`
	Message  string `xml:"message,attr"`
	Severity string `xml:"severity,attr"`
	Source   string `xml:"source,attr"`
}

// Checkstyle writes diagnostics in checkstyle XML format, grouped by file in the order files were
// first seen.
func Checkstyle(w io.Writer, diagnostics chan *api.Diagnostic) error {
	out := checkstyleOutput{
		Version: "5.0",
	}
	files := map[string]*checkstyleFile{}
	for diagnostic := range diagnostics {
		path := diagnostic.Location()
		file, ok := files[path]
		if !ok {
			file = &checkstyleFile{Name: path}
			files[path] = file
			out.Files = append(out.Files, file)
		}
		message := diagnostic.Message
		if diagnostic.Code != "" {
			message = diagnostic.Code + ": " + message
		}
		file.Errors = append(file.Errors, &checkstyleError{
			Column:   diagnostic.Col,
			Line:     diagnostic.Line,
			Message:  message,
			Severity: string(diagnostic.Severity),
			Source:   diagnostic.Adapter,
		})
	}
	if _, err := fmt.Fprint(w, xml.Header); err != nil {
		return err
	}
	if err := xml.NewEncoder(w).Encode(&out); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
