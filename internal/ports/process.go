package ports

import "context"

// ProcessRequest describes a command run through the shell
type ProcessRequest struct {
	Command string   // Shell text run as written, e.g. a script path or "bash x.sh"
	Args    []string // Arguments quoted and appended after Command
	Dir     string   // Working directory
}

// ProcessResult is what a finished process left behind.
// PID is zero when the process never started.
type ProcessResult struct {
	PID      int
	ExitCode int
	Stdout   string
	Stderr   string
}

// ProcessRunner runs a command synchronously and reports its outcome.
// A non-zero exit is not an error; only failures to spawn or wait are.
type ProcessRunner interface {
	Run(ctx context.Context, req ProcessRequest) (*ProcessResult, error)
}

// DirectorySearcher finds directories under root whose path matches
// */<board>/configs/<conf>. Matches are returned relative to root, "./"-prefixed.
type DirectorySearcher interface {
	FindConfigDirs(ctx context.Context, root, board, conf string) ([]string, error)
}
