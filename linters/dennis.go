package linters

import (
	"regexp"

	"github.com/odylint/odylint/api"
)

func init() {
	MustRegister(Dennis())
}

// Dennis lints gettext translation files with dennis (pip install dennis).
func Dennis() *api.Adapter {
	return &api.Adapter{
		Name:        "Dennis",
		Description: "Translation string linter for gettext .po files.",
		InstallHint: "pip3 install dennis",
		Command:     []string{"dennis-cmd", "lint", "--reporter", "line", "${args}", "${temp_file}"},
		Selector:    "source.po",
		Defaults: api.Settings{
			// W302: translated string is identical to source string.
			"args": []string{"--excluderules", "W302"},
		},
		Pattern: regexp.MustCompile(`^.*:(?P<line>\d+):(\d+):(?P<code>(?:(?P<error>[E])|(?P<warning>[W]))\d+):(?P<message>.+)$`),
		Options: api.ParseOptions{
			Stream:         api.StreamStdout,
			LineBase:       1,
			ColBase:        1,
			TempFileSuffix: "dennis-linter",
		},
	}
}
