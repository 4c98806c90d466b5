package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Opener implements ports.EditorOpener
type Opener struct {
	editor func() string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Option configures the Opener
type Option func(*Opener)

// WithEditor overrides $EDITOR and $VISUAL. The value may carry
// arguments, e.g. "code --wait".
func WithEditor(editor string) Option {
	return WithEditorFunc(func() string { return editor })
}

// WithEditorFunc reads the override on every open, so a settings reload
// takes effect without rebuilding the opener
func WithEditorFunc(editor func() string) Option {
	return func(o *Opener) {
		o.editor = editor
	}
}

// WithStreams sets the terminal the editor is attached to
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(o *Opener) {
		o.stdin, o.stdout, o.stderr = stdin, stdout, stderr
	}
}

// NewOpener creates a new editor opener
func NewOpener(opts ...Option) *Opener {
	o := &Opener{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OpenFile opens a file in the user's preferred editor and waits for it to exit
func (o *Opener) OpenFile(ctx context.Context, path string) error {
	name, args, err := o.argv(path)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, name, args...)
	o.attach(cmd)
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	name, args, err := o.argv(path)
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(name, args...)
	o.attach(cmd)
	return cmd, nil
}

func (o *Opener) attach(cmd *exec.Cmd) {
	cmd.Stdin = o.stdin
	cmd.Stdout = o.stdout
	cmd.Stderr = o.stderr
}

func (o *Opener) argv(path string) (string, []string, error) {
	fields := strings.Fields(o.findEditor())
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}
	return fields[0], append(fields[1:], path), nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if o.editor != nil {
		if editor := o.editor(); editor != "" {
			return editor
		}
	}

	// Check $EDITOR first
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// Check $VISUAL
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano", "code"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
