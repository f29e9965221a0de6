package config

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/shlex"

	"github.com/odylint/odylint/api"
)

// DefaultDiagnosticFormat used to print a diagnostic.
func DefaultDiagnosticFormat() *Template {
	return &Template{template.Must(template.New("output").Parse(api.DefaultFormat))}
}

type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	*d = Duration(duration)
	return err
}

var predefinedPatterns = map[string]string{
	"FILE:LINE:COL:MESSAGE": `^(?P<filename>.*?):(?P<line>\d+):(?P<col>\d+):\s*(?P<message>.*)$`,
	"FILE:LINE:MESSAGE":     `^(?P<filename>.*?):(?P<line>\d+):\s*(?P<message>.*)$`,
}

type Regexp struct {
	*regexp.Regexp
}

func (r *Regexp) UnmarshalText(data []byte) (err error) {
	text := string(data)
	if replace, ok := predefinedPatterns[text]; ok {
		text = replace
	}
	r.Regexp, err = regexp.Compile(text)
	return
}

type OutputFormat int

const (
	OutputText OutputFormat = iota
	OutputCheckstyle
	OutputJSON
	OutputYAML
)

// OutputFormats accepted by UnmarshalText.
var OutputFormats = []string{"text", "checkstyle", "json", "yaml"}

func (o *OutputFormat) UnmarshalText(text []byte) error {
	for i, name := range OutputFormats {
		if name == string(text) {
			*o = OutputFormat(i)
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q", string(text))
}

type Template struct {
	*template.Template
}

func (t *Template) UnmarshalText(text []byte) (err error) {
	t.Template, err = template.New("output").Parse(string(text))
	return err
}

// Command is an adapter command, either a list of tokens or a string split with shell quoting rules.
type Command []string

func (c *Command) UnmarshalTOML(value interface{}) error {
	switch value := value.(type) {
	case string:
		args, err := shlex.Split(value)
		if err != nil {
			return fmt.Errorf("invalid command %q: %w", value, err)
		}
		*c = args
	case []interface{}:
		*c = api.ToStrings(value)
	default:
		return fmt.Errorf("invalid command %v", value)
	}
	return nil
}

// AdapterDefinition defines an extra adapter.
type AdapterDefinition struct {
	// Name of the adapter, defaults to the section name.
	Name        string `toml:"name"`
	Description string `toml:"description"`
	// Where to install the linter from.
	InstallHint string `toml:"install_hint"`
	// Command to run the linter. May reference the ${file}, ${temp_file}, ${file_on_disk},
	// ${file_path}, ${file_name} and ${args} placeholders and any setting.
	Command Command `toml:"command"`
	// Scopes the adapter applies to.
	Selector string `toml:"selector"`
	// Regex used to match diagnostics in the linter's output.
	Pattern Regexp `toml:"pattern"`
	// Regex matching the word at a diagnostic's column.
	WordPattern Regexp `toml:"word_pattern"`
	// Output stream to read: stdout (default), stderr or both.
	Stream api.Stream `toml:"stream"`
	// Apply the pattern to the whole output rather than line by line.
	Multiline bool `toml:"multiline"`
	// Number of the first line and column in the linter's output. Both default to 1.
	LineBase *int `toml:"line_base"`
	ColBase  *int `toml:"col_base"`
	// Look for the program in node_modules/.bin of the linted file's directory and its parents
	// before PATH.
	NodePackage bool `toml:"node_package"`
	// Suffix of the temp file holding unsaved content. Empty or "-" keeps the file's extension.
	TempFileSuffix string `toml:"tempfile_suffix"`
	// Severity of diagnostics that do not contain one. Defaults to error.
	Severity api.Severity `toml:"severity"`
	// Default settings of the adapter.
	Defaults map[string]interface{} `toml:"defaults"`
}

// Adapter builds the adapter described by the definition.
func (d *AdapterDefinition) Adapter(name string) (*api.Adapter, error) {
	if d.Name != "" {
		name = d.Name
	}
	adapter := &api.Adapter{
		Name:            name,
		Description:     d.Description,
		InstallHint:     d.InstallHint,
		Command:         append([]string{}, d.Command...),
		Selector:        api.Selector(d.Selector),
		Defaults:        api.Settings(d.Defaults).Copy(),
		Pattern:         d.Pattern.Regexp,
		WordPattern:     d.WordPattern.Regexp,
		DefaultSeverity: d.Severity,
		NodePackage:     d.NodePackage,
		Options: api.ParseOptions{
			Stream:         d.Stream,
			Multiline:      d.Multiline,
			LineBase:       intOr(d.LineBase, 1),
			ColBase:        intOr(d.ColBase, 1),
			TempFileSuffix: d.TempFileSuffix,
		},
	}
	if err := adapter.Validate(); err != nil {
		return nil, err
	}
	return adapter, nil
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

// Config for odylint.
//
// This can be loaded from a TOML file with --config.
type Config struct { // nolint: maligned
	// Formatting string for text output.
	Format *Template `toml:"format"`
	// Maximum number of linters to run in parallel.
	Concurrency int `toml:"concurrency"`
	// Total deadline before terminating linting.
	Deadline Duration `toml:"deadline"`
	// Regex matching diagnostics to exclude from output.
	Exclude []Regexp `toml:"exclude"`
	// Regex matching diagnostics to include in output. If set, all others are dropped.
	Include []Regexp `toml:"include"`
	// Sort order (defaults to no sorting): path, line, column, severity, message, linter
	Sort []string `toml:"sort"`
	// Only show errors.
	Errors bool `toml:"errors"`
	// Minimum severity of diagnostics to show: warning or error. Empty shows all.
	Severity api.Severity `toml:"severity"`
	// Type of output to generate: text (default), checkstyle, json, yaml
	Output OutputFormat `toml:"output"`
	// Aggregate identical diagnostics from multiple adapters into one.
	Aggregate bool `toml:"aggregate"`

	// Adapters to run. The default is to run all adapters.
	Enabled []string `toml:"enabled"`
	// Adapters not to run.
	Disabled []string `toml:"disabled"`

	// Per-adapter settings overrides, in sections of the form [linter.<adapter>].
	Linters map[string]toml.Primitive `toml:"linter"`

	// Define an extra adapter.
	//
	// Settings overrides for the adapter go in the corresponding [linter.<adapter>] section.
	Define map[string]AdapterDefinition `toml:"define"`

	md toml.MetaData
}

// Default configuration.
func Default() *Config {
	return &Config{
		Format:      DefaultDiagnosticFormat(),
		Concurrency: runtime.NumCPU(),
		Sort:        []string{"none"},
		Deadline:    Duration(time.Second * 30),
	}
}

// IsEnabled returns true if the named adapter should run.
func (c *Config) IsEnabled(name string) bool {
	for _, disabled := range c.Disabled {
		if disabled == name {
			return false
		}
	}
	if len(c.Enabled) == 0 {
		return true
	}
	for _, enabled := range c.Enabled {
		if enabled == name {
			return true
		}
	}
	return false
}

// MinimumSeverity of the diagnostics to show.
func (c *Config) MinimumSeverity() api.Severity {
	if c.Errors {
		return api.Error
	}
	return c.Severity
}

// Overrides returns the [linter.<adapter>] settings of an adapter, or nil if there are none.
func (c *Config) Overrides(adapter string) (api.Settings, error) {
	primitive, ok := c.Linters[adapter]
	if !ok {
		return nil, nil
	}
	settings := api.Settings{}
	if err := c.md.PrimitiveDecode(primitive, &settings); err != nil {
		return nil, fmt.Errorf("[linter.%s]: %w", adapter, err)
	}
	return settings, nil
}

// Settings returns the effective settings of adapter, its defaults merged with the overrides from
// the configuration.
func (c *Config) Settings(adapter *api.Adapter) (api.Settings, error) {
	overrides, err := c.Overrides(adapter.Name)
	if err != nil {
		return nil, err
	}
	return MergeSettings(adapter.Defaults, overrides), nil
}

// Adapters builds the adapters defined in [define.<adapter>] sections.
func (c *Config) Adapters() ([]*api.Adapter, error) {
	out := []*api.Adapter{}
	for _, name := range sortedKeys(c.Define) {
		definition := c.Define[name]
		adapter, err := definition.Adapter(name)
		if err != nil {
			return nil, fmt.Errorf("[define.%s]: %w", name, err)
		}
		out = append(out, adapter)
	}
	return out, nil
}

// Read configuration from a reader.
func Read(r io.Reader) (*Config, error) {
	config := Default()
	md, err := toml.NewDecoder(r).Decode(config)
	if err != nil {
		return nil, err
	}
	if len(md.Undecoded()) > 0 {
		keys := []string{}
		// Ignore linter keys, they are decoded lazily by Overrides.
		for _, key := range md.Undecoded() {
			if !strings.HasPrefix(key.String(), "linter.") {
				keys = append(keys, key.String())
			}
		}
		if len(keys) > 0 {
			return nil, fmt.Errorf("unknown keys %s", strings.Join(keys, ","))
		}
	}
	switch config.Severity {
	case "", api.Warning, api.Error:
	default:
		return nil, fmt.Errorf("invalid severity %q", config.Severity)
	}
	config.md = md
	return config, nil
}

// ReadString reads configuration from a string.
func ReadString(s string) (*Config, error) {
	return Read(strings.NewReader(s))
}

// ReadFile reads configuration from a filename.
func ReadFile(filename string) (*Config, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	config, err := Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}
