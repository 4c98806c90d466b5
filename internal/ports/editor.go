package ports

import (
	"context"
	"os/exec"
)

// DocumentOpener defines the interface for showing a resolved defconfig to the user
type DocumentOpener interface {
	// OpenFile opens the specified file and blocks until the opener is done with it
	OpenFile(ctx context.Context, path string) error
}

// EditorOpener is a DocumentOpener backed by a terminal editor process
type EditorOpener interface {
	DocumentOpener

	// Command returns an exec.Cmd for opening a file in the editor
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
