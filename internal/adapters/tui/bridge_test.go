package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type chanSender chan tea.Msg

func (c chanSender) Send(msg tea.Msg) { c <- msg }

func TestBridge_ChooseWaitsForReply(t *testing.T) {
	defer goleak.VerifyNone(t)

	msgs := make(chanSender, 1)
	b := NewBridge()
	b.Attach(msgs)

	go func() {
		req := (<-msgs).(chooseRequestMsg)
		req.reply <- choiceReply{choice: req.items[1], ok: true}
	}()

	choice, ok, err := b.Choose(context.Background(), "Choose configuration", []string{"sim:nsh", "sim:ostest"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sim:ostest", choice)
}

func TestBridge_ChooseCancelled(t *testing.T) {
	msgs := make(chanSender, 1)
	b := NewBridge()
	b.Attach(msgs)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, ok, err := b.Choose(ctx, "Choose configuration", []string{"sim:nsh"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBridge_CloseReleasesWaiters(t *testing.T) {
	msgs := make(chanSender, 2)
	b := NewBridge()
	b.Attach(msgs)

	errs := make(chan error, 2)
	go func() {
		_, _, err := b.Choose(context.Background(), "", []string{"sim:nsh"})
		errs <- err
	}()
	go func() {
		errs <- b.OpenFile(context.Background(), "/nuttx/defconfig")
	}()

	<-msgs
	<-msgs
	b.Close()
	b.Close()

	for i := 0; i < 2; i++ {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, ErrUIClosed)
		case <-time.After(time.Second):
			t.Fatal("waiter was not released")
		}
	}

	// Nothing is sent once closed
	b.Writeln("ignored")
	assert.Len(t, msgs, 0)
}

func TestBridge_Unattached(t *testing.T) {
	b := NewBridge()

	_, _, err := b.Choose(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrUIClosed)
	assert.ErrorIs(t, b.OpenFile(context.Background(), "/x"), ErrUIClosed)

	// Status calls are dropped silently
	b.ShowLoading("Listing configurations...")
	b.HideLoading(nil)
	b.Writeln("line")
}

func TestBridge_StatusMessages(t *testing.T) {
	msgs := make(chanSender, 3)
	b := NewBridge()
	b.Attach(msgs)

	b.ShowLoading("Listing custom configurations...")
	b.HideLoading(errors.New("listing unavailable"))
	b.Writeln("Configuring for /nuttx/defconfig")

	assert.Equal(t, loadingMsg{message: "Listing custom configurations..."}, <-msgs)
	assert.Equal(t, loadingDoneMsg{}, <-msgs)
	assert.Equal(t, statusLineMsg{line: "Configuring for /nuttx/defconfig"}, <-msgs)
}

func TestBridge_OpenFileReturnsEditorError(t *testing.T) {
	msgs := make(chanSender, 1)
	b := NewBridge()
	b.Attach(msgs)

	go func() {
		req := (<-msgs).(openFileMsg)
		req.done <- errors.New("editor crashed")
	}()

	err := b.OpenFile(context.Background(), "/nuttx/defconfig")
	assert.EqualError(t, err, "editor crashed")
}
