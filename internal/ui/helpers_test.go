package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"clinicdash/internal/roster"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var errBoom = errors.New("boom")

// fakeSource is an in-memory Source that counts calls.
type fakeSource struct {
	kind       roster.Kind
	entities   []roster.Entity
	listErr    error
	expansions map[string]roster.Expansion
	expandErr  error
	block      bool // Expand waits for ctx cancellation

	mu          sync.Mutex
	listCalls   int
	expandCalls map[string]int
}

func newFakeSource(kind roster.Kind, entities ...roster.Entity) *fakeSource {
	return &fakeSource{
		kind:        kind,
		entities:    entities,
		expansions:  map[string]roster.Expansion{},
		expandCalls: map[string]int{},
	}
}

func (f *fakeSource) Kind() roster.Kind { return f.kind }

func (f *fakeSource) List(ctx context.Context) ([]roster.Entity, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entities, nil
}

func (f *fakeSource) Expand(ctx context.Context, id string) (roster.Expansion, error) {
	f.mu.Lock()
	f.expandCalls[id]++
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return roster.Expansion{}, ctx.Err()
	}
	if f.expandErr != nil {
		return roster.Expansion{}, f.expandErr
	}
	return f.expansions[id], nil
}

func (f *fakeSource) expands(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expandCalls[id]
}

// runCmd executes cmd synchronously and returns the messages it produced,
// flattening batches. Spinner ticks and cursor blinks are dropped.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch m := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if isSpinnerTick(msg) || isCursorBlink(msg) {
		return nil
	}
	return []tea.Msg{msg}
}

// feed runs cmd and delivers every resulting message to v.
func feed(v View, cmd tea.Cmd) {
	for _, msg := range runCmd(cmd) {
		_, next := v.Update(msg)
		feed(v, next)
	}
}

// keyMsg creates a tea.KeyMsg for testing. Bubble Tea uses KeyType and Runes.
// KeySpace.String() returns " ", KeyEsc returns "esc", etc.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func doctorsFixture() []roster.Entity {
	return []roster.Entity{
		{ID: "1", Name: "Dr. A"},
		{ID: "2", Name: "Dr. B"},
		{ID: "3", Name: "Dr. C"},
	}
}

func isSpinnerTick(msg tea.Msg) bool {
	_, ok := msg.(spinner.TickMsg)
	return ok
}

// isCursorBlink reports text input cursor messages. Feeding them back would
// start the blink loop, which never settles.
func isCursorBlink(msg tea.Msg) bool {
	return strings.HasPrefix(fmt.Sprintf("%T", msg), "cursor.")
}
