package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/odylint/odylint/api"
)

type adapterInfo struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	InstallHint string       `yaml:"install_hint,omitempty"`
	Selector    string       `yaml:"selector"`
	Command     []string     `yaml:"command,flow"`
	Pattern     string       `yaml:"pattern"`
	Stream      api.Stream   `yaml:"stream"`
	Multiline   bool         `yaml:"multiline,omitempty"`
	Severity    api.Severity `yaml:"severity"`
	Defaults    api.Settings `yaml:"defaults,omitempty"`
}

// AdaptersYAML describes adapters as a YAML sequence.
func AdaptersYAML(w io.Writer, adapters []*api.Adapter) error {
	infos := []adapterInfo{}
	for _, adapter := range adapters {
		pattern := ""
		if adapter.Pattern != nil {
			pattern = adapter.Pattern.String()
		}
		infos = append(infos, adapterInfo{
			Name:        adapter.Name,
			Description: adapter.Description,
			InstallHint: adapter.InstallHint,
			Selector:    string(adapter.Selector),
			Command:     adapter.Command,
			Pattern:     pattern,
			Stream:      adapter.Options.Stream,
			Multiline:   adapter.Options.Multiline,
			Severity:    adapter.Severity(),
			Defaults:    adapter.Defaults,
		})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(infos); err != nil {
		return err
	}
	return enc.Close()
}

// AdaptersText writes one line per adapter with its name, selector and description.
func AdaptersText(w io.Writer, adapters []*api.Adapter) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, adapter := range adapters {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", adapter.Name, adapter.Selector, strings.TrimSpace(adapter.Description))
	}
	return tw.Flush()
}
