package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alessio/shellescape"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/odylint/odylint/api"
	"github.com/odylint/odylint/config"
	"github.com/odylint/odylint/engine"
	"github.com/odylint/odylint/linters"
	"github.com/odylint/odylint/linters/external"
	"github.com/odylint/odylint/output"
	"github.com/odylint/odylint/pipeline"
	. "github.com/odylint/odylint/util" // nolint: golint
)

const defaultConfigFile = ".odylint.toml"

type cli struct {
	app        *kingpin.Application
	debug      *bool
	configFile *string

	lint          *kingpin.CmdClause
	files         *[]string
	stdinFilename *string
	concurrency   *int
	exclude       *[]string
	include       *[]string
	sort          *[]string
	deadline      *time.Duration
	errors        *bool
	severity      *string
	json          *bool
	checkstyle    *bool
	output        *string
	aggregate     *bool
	enable        *[]string
	disable       *[]string
	format        *string

	list     *kingpin.CmdClause
	listYAML *bool

	resolve         *kingpin.CmdClause
	resolveAdapter  *string
	resolveFile     *string
	resolveTempFile *string
	resolveModified *bool

	parse        *kingpin.CmdClause
	parseAdapter *string
	parseFile    *string

	word        *kingpin.CmdClause
	wordAdapter *string
	wordCol     *int
}

func newCLI() *cli {
	c := &cli{app: kingpin.New("odylint", `Run external linters and normalise their output into diagnostics.

Configuration is read from `+defaultConfigFile+` in the working directory if it exists, or from
the file given with --config. Command line flags override the configuration.`)}
	c.debug = c.app.Flag("debug", "Display debug messages.").Short('d').Bool()
	c.configFile = c.app.Flag("config", "Load configuration from a TOML file.").PlaceHolder("FILE").String()

	c.lint = c.app.Command("lint", "Lint files and directories.").Default()
	c.files = c.lint.Arg("path", "Files or directories to lint. Directories are walked for files with a known scope.").Strings()
	c.stdinFilename = c.lint.Flag("stdin-filename", "Lint the content of stdin as the unsaved content of this file.").PlaceHolder("FILE").String()
	c.concurrency = c.lint.Flag("concurrency", "Number of concurrent linters to run.").Short('j').Int()
	c.exclude = c.lint.Flag("exclude", "Exclude diagnostics matching these regular expressions.").Short('e').PlaceHolder("REGEXP").Strings()
	c.include = c.lint.Flag("include", "Only show diagnostics matching these regular expressions.").Short('I').PlaceHolder("REGEXP").Strings()
	c.sort = c.lint.Flag("sort", fmt.Sprintf("Sort output by any of %s.", strings.Join(api.SortKeys, ", "))).Enums(api.SortKeys...)
	c.deadline = c.lint.Flag("deadline", "Cancel linters if they have not completed within this duration.").Duration()
	c.errors = c.lint.Flag("errors", "Only show errors.").Bool()
	c.severity = c.lint.Flag("severity", "Minimum severity of diagnostics to show.").Enum(string(api.Warning), string(api.Error))
	c.json = c.lint.Flag("json", "Shorthand for --output=json.").Bool()
	c.checkstyle = c.lint.Flag("checkstyle", "Shorthand for --output=checkstyle.").Bool()
	c.output = c.lint.Flag("output", "Output format.").Enum(config.OutputFormats...)
	c.aggregate = c.lint.Flag("aggregate", "Aggregate diagnostics reported by several linters.").Bool()
	c.enable = c.lint.Flag("enable", "Only run these adapters.").Short('E').PlaceHolder("ADAPTER").Strings()
	c.disable = c.lint.Flag("disable", "Do not run these adapters.").Short('D').PlaceHolder("ADAPTER").Strings()
	c.format = c.lint.Flag("format", "Template used to format text output.").String()

	c.list = c.app.Command("list", "List available adapters.")
	c.listYAML = c.list.Flag("yaml", "Describe adapters in YAML.").Bool()

	c.resolve = c.app.Command("resolve", "Print the command an adapter would run for a file.")
	c.resolveAdapter = c.resolve.Arg("adapter", "Adapter name.").Required().String()
	c.resolveFile = c.resolve.Arg("file", "File to lint.").Required().String()
	c.resolveTempFile = c.resolve.Flag("temp-file", "Temp file holding the unsaved content of the file.").PlaceHolder("FILE").String()
	c.resolveModified = c.resolve.Flag("modified", "The file has unsaved changes.").Bool()

	c.parse = c.app.Command("parse", "Parse linter output read from stdin.")
	c.parseAdapter = c.parse.Arg("adapter", "Adapter name.").Required().String()
	c.parseFile = c.parse.Flag("file", "Path of the linted file.").PlaceHolder("FILE").String()

	c.word = c.app.Command("word", "Print the word an adapter highlights in a line read from stdin.")
	c.wordAdapter = c.word.Arg("adapter", "Adapter name.").Required().String()
	c.wordCol = c.word.Arg("col", "1-based column of the diagnostic.").Required().Int()
	return c
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	status := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(status)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := newCLI()
	c.app.UsageWriter(stdout)
	c.app.ErrorWriter(stderr)
	SetOutput(stderr)
	command, err := c.app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "odylint: error: %s\n", err)
		return 2
	}
	Debugging(*c.debug)
	defer Debugging(false)

	conf, err := c.loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "odylint: error: %s\n", err)
		return 2
	}
	lintEngine, err := engine.New(conf, linters.Default())
	if err != nil {
		fmt.Fprintf(stderr, "odylint: error: %s\n", err)
		return 2
	}

	switch command {
	case c.list.FullCommand():
		err = c.runList(lintEngine, stdout)
	case c.resolve.FullCommand():
		err = c.runResolve(lintEngine, conf, stdout)
	case c.parse.FullCommand():
		return c.runParse(lintEngine, conf, stdin, stdout, stderr)
	case c.word.FullCommand():
		err = c.runWord(lintEngine, stdin, stdout)
	default:
		return c.runLint(ctx, lintEngine, conf, stdin, stdout, stderr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "odylint: error: %s\n", err)
		return 2
	}
	return 0
}

// loadConfig reads the configuration file and applies command line overrides.
func (c *cli) loadConfig() (*config.Config, error) {
	conf := config.Default()
	filename := *c.configFile
	if filename == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			filename = defaultConfigFile
		}
	}
	if filename != "" {
		Debug("loading configuration from %s", filename)
		var err error
		if conf, err = config.ReadFile(filename); err != nil {
			return nil, err
		}
	}

	if *c.concurrency > 0 {
		conf.Concurrency = *c.concurrency
	}
	for _, pattern := range *c.exclude {
		r := config.Regexp{}
		if err := r.UnmarshalText([]byte(pattern)); err != nil {
			return nil, fmt.Errorf("--exclude: %w", err)
		}
		conf.Exclude = append(conf.Exclude, r)
	}
	for _, pattern := range *c.include {
		r := config.Regexp{}
		if err := r.UnmarshalText([]byte(pattern)); err != nil {
			return nil, fmt.Errorf("--include: %w", err)
		}
		conf.Include = append(conf.Include, r)
	}
	if len(*c.sort) > 0 {
		conf.Sort = *c.sort
	}
	if *c.deadline > 0 {
		conf.Deadline = config.Duration(*c.deadline)
	}
	conf.Errors = conf.Errors || *c.errors
	if *c.severity != "" {
		conf.Severity = api.Severity(*c.severity)
	}
	conf.Aggregate = conf.Aggregate || *c.aggregate
	switch {
	case *c.output != "":
		if err := conf.Output.UnmarshalText([]byte(*c.output)); err != nil {
			return nil, err
		}
	case *c.json:
		conf.Output = config.OutputJSON
	case *c.checkstyle:
		conf.Output = config.OutputCheckstyle
	}
	if len(*c.enable) > 0 {
		conf.Enabled = *c.enable
	}
	conf.Disabled = append(conf.Disabled, *c.disable...)
	if *c.format != "" {
		if err := conf.Format.UnmarshalText([]byte(*c.format)); err != nil {
			return nil, fmt.Errorf("--format: %w", err)
		}
	}
	return conf, nil
}

func (c *cli) runLint(ctx context.Context, lintEngine *engine.Engine, conf *config.Config, stdin io.Reader, stdout, stderr io.Writer) int {
	start := time.Now()
	targets, err := c.targets(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "odylint: error: %s\n", err)
		return 2
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(conf.Deadline))
	defer cancel()

	diagnostics, errs := lintEngine.Lint(ctx, targets)
	status, err := writeDiagnostics(stdout, conf, diagnostics)
	if err != nil {
		Warning("%s", err)
		status |= 2
	}
	for err := range errs {
		Warning("%s", err)
		status |= 2
	}
	Debug("total elapsed time %s", time.Since(start))
	return status
}

// targets to lint. Directories are walked for files with a known scope, skipping hidden
// directories.
func (c *cli) targets(stdin io.Reader) ([]engine.Target, error) {
	if *c.stdinFilename != "" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		return []engine.Target{{Path: *c.stdinFilename, Content: content}}, nil
	}
	paths := *c.files
	if len(paths) == 0 {
		paths = []string{"."}
	}
	targets := []engine.Target{}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			targets = append(targets, engine.Target{Path: path})
			continue
		}
		err = filepath.WalkDir(path, func(path string, entry os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				if path != "." && strings.HasPrefix(entry.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if linters.ScopeForFile(path) != "" {
				targets = append(targets, engine.Target{Path: path})
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return targets, nil
}

// writeDiagnostics runs diagnostics through the output pipeline and returns the exit status they
// imply.
func writeDiagnostics(w io.Writer, conf *config.Config, diagnostics chan *api.Diagnostic) (int, error) {
	diagnostics = pipeline.Levelled(diagnostics, conf.MinimumSeverity())
	if conf.Aggregate {
		diagnostics = pipeline.Aggregate(diagnostics)
	}
	order := conf.Sort
	if conf.Output == config.OutputCheckstyle {
		order = []string{"path"}
	}
	diagnostics = pipeline.Sort(diagnostics, order)
	statusCh, diagnostics := pipeline.Status(diagnostics)

	var err error
	switch conf.Output {
	case config.OutputJSON:
		err = output.JSON(w, diagnostics)
	case config.OutputCheckstyle:
		err = output.Checkstyle(w, diagnostics)
	case config.OutputYAML:
		err = output.YAML(w, diagnostics)
	default:
		err = output.Text(w, conf.Format.Template, diagnostics)
	}
	// Drain so that Status can complete if the writer failed.
	for range diagnostics {
	}
	return <-statusCh, err
}

func (c *cli) runList(lintEngine *engine.Engine, w io.Writer) error {
	adapters := lintEngine.Registry().All()
	if *c.listYAML {
		return output.AdaptersYAML(w, adapters)
	}
	return output.AdaptersText(w, adapters)
}

func (c *cli) runResolve(lintEngine *engine.Engine, conf *config.Config, w io.Writer) error {
	adapter, err := lintEngine.Registry().Get(*c.resolveAdapter)
	if err != nil {
		return err
	}
	settings, err := conf.Settings(adapter)
	if err != nil {
		return err
	}
	args, err := external.ResolveCommand(adapter, api.LintContext{
		File:     *c.resolveFile,
		TempFile: *c.resolveTempFile,
		Modified: *c.resolveModified,
		Settings: settings,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, shellescape.QuoteCommand(args))
	return err
}

func (c *cli) runParse(lintEngine *engine.Engine, conf *config.Config, stdin io.Reader, stdout, stderr io.Writer) int {
	adapter, err := lintEngine.Registry().Get(*c.parseAdapter)
	if err != nil {
		fmt.Fprintf(stderr, "odylint: error: %s\n", err)
		return 2
	}
	text, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "odylint: error: %s\n", err)
		return 2
	}
	diagnostics := make(chan *api.Diagnostic, 1)
	go func() {
		defer close(diagnostics)
		for diagnostic := range external.ParseOutput(adapter, string(text)) {
			diagnostic.Path = *c.parseFile
			diagnostics <- &diagnostic
		}
	}()
	status, err := writeDiagnostics(stdout, conf, diagnostics)
	if err != nil {
		fmt.Fprintf(stderr, "odylint: error: %s\n", err)
		return 2
	}
	return status
}

func (c *cli) runWord(lintEngine *engine.Engine, stdin io.Reader, w io.Writer) error {
	adapter, err := lintEngine.Registry().Get(*c.wordAdapter)
	if err != nil {
		return err
	}
	text, err := io.ReadAll(stdin)
	if err != nil {
		return err
	}
	line, _, _ := strings.Cut(string(text), "\n")
	span, ok := external.WordAt(adapter, strings.TrimSuffix(line, "\r"), *c.wordCol)
	if !ok {
		return fmt.Errorf("%s: no word at column %d", adapter.Name, *c.wordCol)
	}
	_, err = fmt.Fprintf(w, "%d:%d:%s\n", span.Col, span.EndCol, span.Text)
	return err
}
