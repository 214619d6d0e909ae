package ui

import (
	"context"

	"clinicdash/internal/roster"
	"clinicdash/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ItemState is the expansion state of one list entry.
type ItemState int

const (
	StateCollapsed ItemState = iota
	StatePending
	StateLoaded
)

func (s ItemState) String() string {
	switch s {
	case StateCollapsed:
		return "collapsed"
	case StatePending:
		return "pending"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// deleteMarker trails the selected entry; d removes it.
const deleteMarker = "x"

// ItemView is one entry of a list. Activating it fetches its expansion
// (doctor detail or patient doctors) and renders the result below the name.
// There is no way back to collapsed short of removing the entry.
type ItemView struct {
	Entity    roster.Entity
	State     ItemState
	Expansion roster.Expansion // last successful result
	Err       error            // last fetch error; nil after a success

	src      Source
	opts     Options
	hasData  bool
	token    uint64
	cancel   context.CancelFunc
	spinner  spinner.Model
	selected bool
	width    int
}

// Ensure ItemView implements View.
var _ View = (*ItemView)(nil)

// NewItemView creates a collapsed entry.
func NewItemView(e roster.Entity, src Source, opts Options) *ItemView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))
	return &ItemView{Entity: e, src: src, opts: opts, spinner: s}
}

// Init implements View.
func (i *ItemView) Init() tea.Cmd {
	return nil
}

// Activate starts an expansion fetch tagged with token. Any fetch already in
// flight is cancelled and its result will be dropped. With MemoizeDetails a
// loaded entry keeps its result and no request is made.
func (i *ItemView) Activate(token uint64) tea.Cmd {
	if i.opts.MemoizeDetails && i.State == StateLoaded {
		return nil
	}
	i.Cancel()
	ctx, cancel := context.WithCancel(context.Background())
	i.cancel = cancel
	i.token = token
	i.State = StatePending

	fetch := expandCmd(ctx, i.src, i.Entity.ID, token)
	if i.opts.ShowLoading {
		return tea.Batch(fetch, i.spinner.Tick)
	}
	return fetch
}

// Cancel aborts the in-flight fetch, if any.
func (i *ItemView) Cancel() {
	if i.cancel != nil {
		i.cancel()
		i.cancel = nil
	}
}

// Update implements View.
func (i *ItemView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ExpandLoadedMsg:
		i.apply(msg)
		return i, nil
	case spinner.TickMsg:
		if i.State != StatePending || !i.opts.ShowLoading {
			return i, nil
		}
		var cmd tea.Cmd
		i.spinner, cmd = i.spinner.Update(msg)
		return i, cmd
	}
	return i, nil
}

// apply stores a fetch result unless it belongs to a superseded activation.
func (i *ItemView) apply(msg ExpandLoadedMsg) bool {
	if i.State != StatePending || msg.Token != i.token || msg.ID != i.Entity.ID {
		return false
	}
	if i.cancel != nil {
		i.cancel()
		i.cancel = nil
	}
	if msg.Err != nil {
		i.Err = msg.Err
		if i.hasData {
			i.State = StateLoaded
		} else {
			i.State = StateCollapsed
		}
		return true
	}
	i.Err = nil
	i.Expansion = msg.Expansion
	i.hasData = true
	i.State = StateLoaded
	return true
}

// View implements View.
func (i *ItemView) View() string {
	marker := "  "
	nameStyle := Styles.Normal
	reserve := 4
	if i.selected {
		marker = "● "
		nameStyle = Styles.Selected
		reserve += len(deleteMarker) + 1
	}
	name := i.Entity.Name
	if limit := i.width - reserve; limit > 0 {
		name = textutil.Truncate(name, limit)
	}
	line := marker + nameStyle.Render(name)
	if i.selected {
		line += " " + Styles.Muted.Render(deleteMarker)
	}
	if i.State == StatePending && i.opts.ShowLoading {
		line += " " + i.spinner.View()
	}

	out := line
	if i.hasData {
		if body := RenderExpansion(i.Expansion); body != "" {
			out += "\n" + body
		}
	}
	if i.Err != nil && i.opts.ShowErrors {
		out += "\n" + Styles.Detail.Render(Styles.Error.Render(i.Err.Error()))
	}
	return out
}
