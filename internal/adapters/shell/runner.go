package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"nuttxconf/internal/domain"
	"nuttxconf/internal/ports"
)

// waitDelay bounds how long Wait blocks on children that keep the output
// pipes open after the shell was killed
const waitDelay = 500 * time.Millisecond

// Runner implements ports.ProcessRunner by running commands through the
// system shell
type Runner struct {
	shell string
}

// NewRunner creates a runner on /bin/sh, or cmd on windows
func NewRunner() *Runner {
	return &Runner{shell: defaultShell()}
}

func defaultShell() string {
	if runtime.GOOS == "windows" {
		return "cmd"
	}
	return "/bin/sh"
}

// Run executes req synchronously. A non-zero exit is reported through
// ExitCode; an error means the process could not be started or waited on.
func (r *Runner) Run(ctx context.Context, req ports.ProcessRequest) (*ports.ProcessResult, error) {
	line := CommandLine(req.Command, req.Args...)

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, r.shell, "/c", line)
	} else {
		cmd = exec.CommandContext(ctx, r.shell, "-c", line)
	}
	cmd.Dir = req.Dir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := &ports.ProcessResult{}
	if err := cmd.Start(); err != nil {
		return res, fmt.Errorf("failed to start %s: %w", req.Command, err)
	}
	res.PID = cmd.Process.Pid

	err := cmd.Wait()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	res.ExitCode = cmd.ProcessState.ExitCode()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			return res, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("%s interrupted: %w", req.Command, ctxErr)
		}
		return res, fmt.Errorf("%s failed: %w", req.Command, err)
	}

	return res, nil
}

// CommandLine appends args to command, quoting each one. The command
// itself is shell text and is passed through unchanged.
func CommandLine(command string, args ...string) string {
	words := make([]string, 0, len(args)+1)
	words = append(words, command)
	for _, a := range args {
		words = append(words, domain.QuoteShellWord(a))
	}
	return strings.Join(words, " ")
}
