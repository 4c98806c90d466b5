package desktop

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Opener implements ports.DocumentOpener by handing a file:// URI to the
// desktop's default application
type Opener struct {
	goos string
}

// NewOpener creates a new desktop opener for the running OS
func NewOpener() *Opener {
	return &Opener{goos: runtime.GOOS}
}

// OpenFile opens a file with the desktop's handler for it
func (o *Opener) OpenFile(ctx context.Context, path string) error {
	uri, err := BuildURI(path)
	if err != nil {
		return err
	}
	cmd, err := o.command(ctx, uri)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// BuildURI constructs the file:// URI for a given file path
func BuildURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

func (o *Opener) command(ctx context.Context, uri string) (*exec.Cmd, error) {
	switch o.goos {
	case "darwin":
		return exec.CommandContext(ctx, "open", uri), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.CommandContext(ctx, "xdg-open", uri), nil
	case "windows":
		return exec.CommandContext(ctx, "cmd", "/c", "start", "", uri), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
