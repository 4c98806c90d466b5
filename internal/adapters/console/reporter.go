package console

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"nuttxconf/internal/adapters/tui/styles"
)

var (
	loadingStyle = lipgloss.NewStyle().Foreground(styles.Primary)
	doneStyle    = styles.MutedText
	failedStyle  = lipgloss.NewStyle().Foreground(styles.Error)
	lineStyle    = lipgloss.NewStyle()
)

// Reporter implements ports.StatusReporter on a plain output stream
type Reporter struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	started time.Time
	now     func() time.Time
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w, now: time.Now}
}

// ShowLoading prints the loading message
func (r *Reporter) ShowLoading(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.message = message
	r.started = r.now()
	fmt.Fprintln(r.w, loadingStyle.Render("⏳ "+message))
}

// HideLoading reports how long the loading step took, or that it failed.
// Calls without a pending ShowLoading are ignored.
func (r *Reporter) HideLoading(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.message == "" {
		return
	}
	elapsed := r.now().Sub(r.started).Round(time.Millisecond)
	if err != nil {
		fmt.Fprintln(r.w, failedStyle.Render(fmt.Sprintf("   failed after %s", elapsed)))
	} else {
		fmt.Fprintln(r.w, doneStyle.Render(fmt.Sprintf("   done in %s", elapsed)))
	}
	r.message = ""
}

// Writeln prints a status line
func (r *Reporter) Writeln(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, lineStyle.Render(line))
}
