package linters

import (
	"regexp"

	"github.com/odylint/odylint/api"
)

func init() {
	MustRegister(CppCheck())
}

// CppCheck runs the cppcheck static analyzer. It needs a cppcheck recent enough to support the
// {column} field in --template.
func CppCheck() *api.Adapter {
	return &api.Adapter{
		Name:        "CppCheck",
		Description: "C/C++ static analyzer.",
		InstallHint: "install cppcheck from your distribution, or build it from source for --template {column} support",
		Command: []string{
			"cppcheck",
			"--template={file}:{line}:{column}:{severity}:{id}:{message}",
			"--inline-suppr",
			"--quiet",
			"${args}",
			"${file}",
		},
		Selector: "source.c, source.c++",
		Defaults: api.Settings{
			// eg. ["c99", "c89"]
			"--std=,+":   []string{},
			"--enable=,": "style,warning",
		},
		Pattern: regexp.MustCompile(`^(?P<filename>(:\\|[^:])+):(?P<line>\d+):((?P<col>\d+):)` +
			`((?P<error>error)|(?P<warning>warning|style|performance|portability|information)):` +
			`(?P<code>\w+):(?P<message>.+)`),
		Options: api.ParseOptions{
			Stream:         api.StreamStderr,
			LineBase:       1,
			ColBase:        1,
			TempFileSuffix: "-",
		},
	}
}
