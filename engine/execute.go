package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/odylint/odylint/api"
	"github.com/odylint/odylint/linters/external"
	. "github.com/odylint/odylint/util" // nolint: golint
)

// Execute resolves the adapter command for lintCtx, runs it and returns the output the adapter
// reads diagnostics from.
//
// A non-zero exit status is not an error: most linters exit non-zero when they report problems.
func Execute(ctx context.Context, adapter *api.Adapter, lintCtx api.LintContext) (string, error) {
	args, err := external.ResolveCommand(adapter, lintCtx)
	if err != nil {
		return "", err
	}
	exe, err := lookupProgram(adapter, args[0], lintCtx.File)
	if err != nil {
		return "", fmt.Errorf("%s is not installed (%s): %w", args[0], adapter.InstallHint, err)
	}
	start := time.Now()
	Debug("executing %s", strings.Join(args, " "))
	stdout, stderr := bytes.NewBuffer(nil), bytes.NewBuffer(nil)
	cmd := exec.CommandContext(ctx, exe, args[1:]...) // nolint: gas
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	err = cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("deadline exceeded by %s on %s (try increasing --deadline)", adapter.Name, lintCtx.File)
	} else if ctx.Err() != nil {
		return "", fmt.Errorf("%s on %s cancelled: %w", adapter.Name, lintCtx.File, ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		Debug("warning: %s returned %s: %s", args[0], err, stderr.String())
	} else if err != nil {
		return "", fmt.Errorf("failed to execute %s: %w", args[0], err)
	}
	Debug("%s took %s", adapter.Name, time.Since(start))
	return external.SelectOutput(adapter, stdout.String(), stderr.String()), nil
}

// lookupProgram finds the executable for program. Adapters of Node packages first look in the
// node_modules/.bin directory of file and each of its parents.
func lookupProgram(adapter *api.Adapter, program, file string) (string, error) {
	if adapter.NodePackage && file != "" && !strings.ContainsRune(program, filepath.Separator) {
		if dir, err := filepath.Abs(filepath.Dir(file)); err == nil {
			for {
				candidate := filepath.Join(dir, "node_modules", ".bin", program)
				if info, err := os.Stat(candidate); err == nil && !info.IsDir() && info.Mode()&0111 != 0 {
					Debug("using %s", candidate)
					return candidate, nil
				}
				parent := filepath.Dir(dir)
				if parent == dir {
					break
				}
				dir = parent
			}
		}
	}
	return exec.LookPath(program)
}

// materializeTempFile copies the content of file into a new temp file named after the adapter's
// temp file suffix. The returned function removes it.
func materializeTempFile(adapter *api.Adapter, file string, content io.Reader) (string, func(), error) {
	suffix := adapter.Options.TempFileSuffix
	if suffix == "-" || suffix == "" {
		suffix = filepath.Ext(file)
	} else if !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	tmp, err := os.CreateTemp("", "odylint-*"+suffix)
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }
	if _, err = io.Copy(tmp, content); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", nil, err
	}
	if err = tmp.Close(); err != nil {
		cleanup()
		return "", nil, err
	}
	return tmp.Name(), cleanup, nil
}
