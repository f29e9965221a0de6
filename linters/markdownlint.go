package linters

import (
	"regexp"

	"github.com/odylint/odylint/api"
)

func init() {
	MustRegister(MarkdownLint())
}

// MarkdownLint lints Markdown with markdownlint-cli, which reports on stderr.
func MarkdownLint() *api.Adapter {
	return &api.Adapter{
		Name:        "MDLint",
		Description: "Markdown linter.",
		InstallHint: "npm install -g markdownlint-cli",
		Command:     []string{"markdownlint", "${args}", "${file}"},
		NodePackage: true,
		Selector: "text.html.markdown, text.html.markdown.multimarkdown, " +
			"text.html.markdown.extended, text.html.markdown.gfm",
		Defaults: api.Settings{
			"args": []string{"--config", "~/.markdownlintrc"},
		},
		Pattern: regexp.MustCompile(`.+?(?:[:](?P<line>\d+))(?:[:](?P<col>\d+))?\s+(?P<error>MD\d+)?[/]?(?P<message>.+)`),
		Options: api.ParseOptions{
			Stream:         api.StreamStderr,
			LineBase:       1,
			ColBase:        1,
			TempFileSuffix: "-",
		},
	}
}
