package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var boards = []string{
	"sim:nsh",
	"nucleo-f4x1re:nsh",
	"nucleo-f4x1re:usbnsh",
	"esp32-devkitc:wifi",
	"sim:ostest",
}

func TestFilterItems(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "empty query keeps listing order", query: "", want: []int{0, 1, 2, 3, 4}},
		{name: "board substring", query: "nucleo", want: []int{1, 2}},
		{name: "case-insensitive", query: "ESP32", want: []int{3}},
		{name: "every term must match", query: "sim nsh", want: []int{0}},
		{name: "matches across the colon", query: "re:usb", want: []int{2}},
		{name: "no match", query: "stm32h7", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterItems(boards, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterItems() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("FilterItems()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func typeText(m *PickerModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestPicker_SelectAfterFiltering(t *testing.T) {
	m := NewPickerModel()
	m.Open("Choose configuration", boards)

	typeText(m, "usb")
	if got, ok := m.Selected(); !ok || got != "nucleo-f4x1re:usbnsh" {
		t.Fatalf("Selected() = %q, %v", got, ok)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	msg, ok := cmd().(ChoiceMadeMsg)
	if !ok {
		t.Fatalf("expected ChoiceMadeMsg, got %T", cmd())
	}
	if msg.Choice != "nucleo-f4x1re:usbnsh" {
		t.Errorf("Choice = %q", msg.Choice)
	}
}

func TestPicker_NavigateAndCancel(t *testing.T) {
	m := NewPickerModel()
	m.Open("Choose configuration", boards)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got, _ := m.Selected(); got != "nucleo-f4x1re:nsh" {
		t.Errorf("Selected() = %q, want nucleo-f4x1re:nsh", got)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(ChoiceCancelledMsg); !ok {
		t.Errorf("expected ChoiceCancelledMsg, got %T", cmd())
	}
}

func TestPicker_EnterWithNoMatchDoesNothing(t *testing.T) {
	m := NewPickerModel()
	m.Open("Choose configuration", boards)
	typeText(m, "zzz")

	if _, ok := m.Selected(); ok {
		t.Error("expected no selection")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command")
	}
	if !strings.Contains(m.View(), "No configuration matches the filter") {
		t.Error("expected empty filter message")
	}
}

func TestPicker_SetRecentMovesCursor(t *testing.T) {
	m := NewPickerModel()
	m.Open("Choose configuration", boards)
	m.SetRecent(map[string]int64{"sim:nsh": 100, "esp32-devkitc:wifi": 200})

	if got, _ := m.Selected(); got != "esp32-devkitc:wifi" {
		t.Errorf("Selected() = %q, want most recent", got)
	}
	if !strings.Contains(m.View(), "★") {
		t.Error("expected recent marker in view")
	}
}

func TestPicker_SetRecentKeepsUserCursor(t *testing.T) {
	m := NewPickerModel()
	m.Open("Choose configuration", boards)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.SetRecent(map[string]int64{"sim:ostest": 1})

	if got, _ := m.Selected(); got != "nucleo-f4x1re:nsh" {
		t.Errorf("Selected() = %q, cursor should stay where the user put it", got)
	}
}

func TestPicker_BlankLinesCanBePicked(t *testing.T) {
	m := NewPickerModel()
	m.Open("Choose configuration", []string{"", "sim:nsh"})

	if got, ok := m.Selected(); !ok || got != "" {
		t.Errorf("Selected() = %q, %v, want blank entry", got, ok)
	}
	if !strings.Contains(m.View(), "(blank line)") {
		t.Error("expected blank placeholder in view")
	}
}

func TestPicker_Paging(t *testing.T) {
	items := make([]string, 23)
	for i := range items {
		items[i] = "board:conf" + string(rune('a'+i))
	}

	m := NewPickerModel()
	m.Open("Choose configuration", items)
	m.SetSize(80, pickerChrome+10)

	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	if got, _ := m.Selected(); got != "board:confk" {
		t.Errorf("after pgdown Selected() = %q, want board:confk", got)
	}
	if !strings.Contains(m.View(), "page 2/3") {
		t.Error("expected page indicator")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if got, _ := m.Selected(); got != "board:confa" {
		t.Errorf("after pgup Selected() = %q, want board:confa", got)
	}
}

func TestRenderCandidate(t *testing.T) {
	if got := RenderCandidate("   ", nil); !strings.Contains(got, "(blank line)") {
		t.Errorf("blank candidate rendered as %q", got)
	}
	if got := RenderCandidate("sim:nsh", []string{"ns"}); !strings.Contains(got, "sim") || !strings.Contains(got, "ns") {
		t.Errorf("candidate rendered as %q", got)
	}
	if got := RenderCandidate("no-colon", nil); !strings.Contains(got, "no-colon") {
		t.Errorf("malformed candidate rendered as %q", got)
	}
}
