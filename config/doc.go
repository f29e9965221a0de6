// Package config reads the odylint TOML configuration file.
//
// Here's an example configuration file:
//
//	output = "json"
//	deadline = "30s"
//	disabled = ["Dennis"]
//
//	[linter.YamlLint]
//	args = "-d relaxed"
//
//	[linter.CppCheck]
//	"--std=,+" = ["c99"]
//
//	[define.ShellCheck]
//	command = "shellcheck --format gcc ${args} ${file}"
//	selector = "source.shell"
//	pattern = "FILE:LINE:COL:MESSAGE"
//	severity = "warning"
//
// Top-level keys configure odylint itself, [linter.<adapter>] sections override the default
// settings of individual adapters and [define.<adapter>] defines extra adapters.
package config
