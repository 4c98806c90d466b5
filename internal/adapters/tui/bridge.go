package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrUIClosed is returned when the program exits while a request is pending
var ErrUIClosed = errors.New("terminal UI closed")

type sender interface {
	Send(msg tea.Msg)
}

// Bridge lets a configure run, executing off the UI goroutine, drive the
// UI. It implements ports.Prompter, ports.StatusReporter and
// ports.DocumentOpener by turning every call into a message for the App.
type Bridge struct {
	mu     sync.Mutex
	p      sender
	closed chan struct{}
	once   sync.Once
}

// NewBridge creates a bridge; Attach must be called before any run starts
func NewBridge() *Bridge {
	return &Bridge{closed: make(chan struct{})}
}

// Attach connects the bridge to the running program
func (b *Bridge) Attach(p sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.p = p
}

// Close releases every caller still waiting on the UI
func (b *Bridge) Close() {
	b.once.Do(func() { close(b.closed) })
}

func (b *Bridge) send(msg tea.Msg) bool {
	b.mu.Lock()
	p := b.p
	b.mu.Unlock()
	if p == nil {
		return false
	}
	select {
	case <-b.closed:
		return false
	default:
	}
	p.Send(msg)
	return true
}

type choiceReply struct {
	choice string
	ok     bool
}

type chooseRequestMsg struct {
	title string
	items []string
	reply chan choiceReply
}

type loadingMsg struct{ message string }

type loadingDoneMsg struct{}

type statusLineMsg struct{ line string }

type openFileMsg struct {
	path string
	done chan error
}

// Choose shows the picker and waits for the user
func (b *Bridge) Choose(ctx context.Context, title string, items []string) (string, bool, error) {
	reply := make(chan choiceReply, 1)
	if !b.send(chooseRequestMsg{title: title, items: items, reply: reply}) {
		return "", false, ErrUIClosed
	}
	select {
	case r := <-reply:
		return r.choice, r.ok, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	case <-b.closed:
		return "", false, ErrUIClosed
	}
}

// ShowLoading implements ports.StatusReporter
func (b *Bridge) ShowLoading(message string) {
	b.send(loadingMsg{message: message})
}

// HideLoading implements ports.StatusReporter. A failure reaches the UI
// with the run result, so err is not forwarded.
func (b *Bridge) HideLoading(error) {
	b.send(loadingDoneMsg{})
}

// Writeln implements ports.StatusReporter
func (b *Bridge) Writeln(line string) {
	b.send(statusLineMsg{line: line})
}

// OpenFile suspends the UI, opens path in the editor and waits for it to close
func (b *Bridge) OpenFile(ctx context.Context, path string) error {
	done := make(chan error, 1)
	if !b.send(openFileMsg{path: path, done: done}) {
		return ErrUIClosed
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-b.closed:
		return ErrUIClosed
	}
}
