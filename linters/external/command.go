package external

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/shlex"

	"github.com/odylint/odylint/api"
)

var (
	placeholderRe = regexp.MustCompile(`\$\{(\w+)\}`)
	// <flag>[=|:][<separator>][+]
	flagKeyRe = regexp.MustCompile(`^(?P<flag>--?[@\w][\w\-]*)(?:(?P<joiner>[=:])(?P<sep>[^+])?(?P<multiple>\+)?)?$`)
)

const argsPlaceholder = "${args}"

// ResolveCommand substitutes the placeholders in the adapter command with values from ctx and
// returns the argument vector to execute.
//
// If the command has no ${args} token, the arguments built from the settings are inserted directly
// after the program name.
func ResolveCommand(adapter *api.Adapter, ctx api.LintContext) ([]string, error) {
	if len(adapter.Command) == 0 {
		return nil, &api.InvalidAdapterError{Adapter: adapter.Name, Reason: "missing command"}
	}
	if adapter.TempFileRequired(ctx) && ctx.TempFile == "" {
		return nil, &api.MissingContextError{Adapter: adapter.Name, Placeholder: "temp_file"}
	}
	settings := ctx.Settings
	if settings == nil {
		settings = adapter.Defaults
	}
	args, err := BuildArgs(settings)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", adapter.Name, err)
	}
	hasArgs := adapter.HasPlaceholder("args")

	out := make([]string, 0, len(adapter.Command)+len(args))
	for i, token := range adapter.Command {
		if token == argsPlaceholder {
			out = append(out, args...)
			continue
		}
		resolved, err := interpolate(adapter, token, ctx, settings, args)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
		if i == 0 && !hasArgs {
			out = append(out, args...)
		}
	}
	return out, nil
}

func interpolate(adapter *api.Adapter, token string, ctx api.LintContext, settings api.Settings, args []string) (string, error) {
	var missing string
	out := placeholderRe.ReplaceAllStringFunc(token, func(match string) string {
		name := match[2 : len(match)-1]
		value, ok := placeholderValue(name, ctx, settings, args)
		if !ok && missing == "" {
			missing = name
		}
		return value
	})
	if missing != "" {
		return "", &api.MissingContextError{Adapter: adapter.Name, Placeholder: missing}
	}
	return out, nil
}

func placeholderValue(name string, ctx api.LintContext, settings api.Settings, args []string) (string, bool) {
	switch name {
	case "file":
		return ctx.File, ctx.File != ""
	case "temp_file":
		return ctx.TempFile, ctx.TempFile != ""
	case "file_on_disk":
		if ctx.File != "" && !ctx.Modified {
			return ctx.File, true
		}
		return ctx.TempFile, ctx.TempFile != ""
	case "file_path":
		return filepath.Dir(ctx.File), ctx.File != ""
	case "file_name":
		return filepath.Base(ctx.File), ctx.File != ""
	case "args":
		return strings.Join(args, " "), true
	}
	if value, ok := settings.String(name); ok {
		return expandUser(value), true
	}
	return os.LookupEnv(name)
}

// BuildArgs builds the argument list from settings.
//
// The "args" setting comes first, a string is split with shell quoting rules. Flag keys follow in
// sorted order.
func BuildArgs(settings api.Settings) ([]string, error) {
	args := []string{}
	switch value := settings["args"].(type) {
	case string:
		split, err := shlex.Split(value)
		if err != nil {
			return nil, fmt.Errorf("invalid args %q: %w", value, err)
		}
		args = append(args, split...)
	default:
		args = append(args, api.ToStrings(value)...)
	}
	for i, arg := range args {
		args[i] = expandUser(arg)
	}

	keys := []string{}
	for key := range settings {
		if strings.HasPrefix(key, "-") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		flags, err := expandFlag(key, settings[key])
		if err != nil {
			return nil, err
		}
		args = append(args, flags...)
	}
	return args, nil
}

// nolint: gocyclo
func expandFlag(key string, value interface{}) ([]string, error) {
	match := flagKeyRe.FindStringSubmatch(key)
	if match == nil {
		return nil, fmt.Errorf("invalid flag setting %q", key)
	}
	flag, joiner, sep, multiple := match[1], match[2], match[3], match[4] != ""

	switch value := value.(type) {
	case nil:
		return nil, nil
	case bool:
		if value {
			return []string{flag}, nil
		}
		return nil, nil
	}

	values := api.ToStrings(value)
	for i, v := range values {
		values[i] = expandUser(v)
	}
	if len(values) == 0 {
		return nil, nil
	}
	join := func(v string) []string {
		if joiner == "=" {
			return []string{flag + "=" + v}
		}
		return []string{flag, v}
	}
	if multiple {
		out := []string{}
		for _, v := range values {
			out = append(out, join(v)...)
		}
		return out, nil
	}
	if sep == "" {
		sep = ","
	}
	return join(strings.Join(values, sep)), nil
}

func expandUser(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
