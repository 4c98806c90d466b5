package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	r.HideLoading(nil)
	assert.Empty(t, buf.String(), "hide without show prints nothing")

	r.ShowLoading("Listing configurations...")
	clock = clock.Add(1500 * time.Millisecond)
	r.HideLoading(nil)
	r.HideLoading(nil)
	r.Writeln("Configuring for /nuttx/boards/sim/sim/sim/configs/nsh/defconfig")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Listing configurations...")
	assert.Contains(t, lines[1], "done in 1.5s")
	assert.Contains(t, lines[2], "Configuring for /nuttx/boards/sim/sim/sim/configs/nsh/defconfig")
}

func TestReporter_FailedListing(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	r.ShowLoading("Listing configurations...")
	clock = clock.Add(300 * time.Millisecond)
	r.HideLoading(errors.New("listing unavailable"))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "failed after 300ms")
	assert.NotContains(t, buf.String(), "done in")
}
