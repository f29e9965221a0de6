package linters

import (
	"regexp"

	"github.com/odylint/odylint/api"
)

func init() {
	MustRegister(YamlLint())
}

// YamlLint lints YAML documents with yamllint in its parsable format.
func YamlLint() *api.Adapter {
	return &api.Adapter{
		Name:        "YamlLint",
		Description: "YAML linter.",
		InstallHint: "pip3 install yamllint",
		Command:     []string{"yamllint", "--format", "parsable", "${file_on_disk}"},
		Selector:    "source.yaml",
		Defaults: api.Settings{
			"args": []string{"-c", "~/.config/yamllint/config/.yamllint.yaml"},
		},
		Pattern:     regexp.MustCompile(`^.+?:(?P<line>\d+):(?P<col>\d+): \[((?P<warning>warning)|(?P<error>error))\] (?P<message>.+)`),
		WordPattern: regexp.MustCompile(`^(".*?"|[-\w]+)`),
		Options: api.ParseOptions{
			Stream:         api.StreamStdout,
			LineBase:       1,
			ColBase:        1,
			TempFileSuffix: "-",
		},
	}
}
