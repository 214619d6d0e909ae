package ui

import (
	"strings"

	"clinicdash/internal/roster"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// sideBySideMinWidth is the terminal width from which the two lists are
// laid out next to each other instead of stacked.
const sideBySideMinWidth = 80

// AppModel is the root model: a header and the doctors and patients lists.
// It owns no entity state; each CollectionView owns its own.
type AppModel struct {
	Doctors    *CollectionView
	Patients   *CollectionView
	Focus      *FocusManager
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	Greeting   string

	width  int
	height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel wires the two lists to their sources.
func NewAppModel(doctors, patients Source, opts Options) *AppModel {
	a := &AppModel{
		Doctors:  NewCollectionView(doctors, opts),
		Patients: NewCollectionView(patients, opts),
		Greeting: opts.Greeting,
	}
	a.Focus = &FocusManager{
		Order: []roster.Kind{roster.KindDoctors, roster.KindPatients},
		OnChange: func(_, to roster.Kind) {
			a.Doctors.Focused = to == roster.KindDoctors
			a.Patients.Focused = to == roster.KindPatients
		},
	}
	a.Focus.Current = roster.KindDoctors
	a.Doctors.Focused = true

	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", tea.Quit, "Quit")
	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDesc("a", showAddModal, "Add entry")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC a", showAddModal, "Add entry")
	reg.BindWithDesc("SPC d", func() tea.Msg { return DeleteSelectedMsg{} }, "Delete selected")
	a.KeyHandler = NewKeyHandler(reg)
	return a
}

func showAddModal() tea.Msg { return ShowAddModalMsg{} }

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// List returns the list for kind.
func (a *AppModel) List(kind roster.Kind) *CollectionView {
	if kind == roster.KindPatients {
		return a.Patients
	}
	return a.Doctors
}

// FocusedList returns the list that receives navigation keys.
func (a *AppModel) FocusedList() *CollectionView {
	return a.List(a.Focus.Current)
}

// Init implements tea.Model. Each list issues its collection fetch.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(a.Doctors.Init(), a.Patients.Init())
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case CollectionLoadedMsg:
		_, cmd := a.List(msg.Kind).Update(msg)
		return a, cmd
	case ExpandLoadedMsg:
		_, cmd := a.List(msg.Kind).Update(msg)
		return a, cmd
	case RemoveItemMsg:
		_, cmd := a.List(msg.Kind).Update(msg)
		return a, cmd

	case spinner.TickMsg:
		_, c1 := a.Doctors.Update(msg)
		_, c2 := a.Patients.Update(msg)
		return a, tea.Batch(c1, c2)

	case ShowAddModalMsg:
		modal := NewAddEntityModal(a.Focus.Current)
		a.Overlays.Push(modal)
		return a, modal.Init()
	case AddEntityMsg:
		a.List(msg.Kind).Add(msg.Name)
		a.Overlays.Pop()
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case DeleteSelectedMsg:
		l := a.FocusedList()
		if item := l.SelectedItem(); item != nil {
			return a, removeItemCmd(l.Kind, item.Entity.ID, l.Selected)
		}
		return a, nil

	case tea.KeyMsg:
		// Open modals take all key input.
		if cmd, ok := a.Overlays.UpdateTop(msg); ok {
			return a, cmd
		}
		if a.KeyHandler != nil {
			if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
				return a, cmd
			}
		}
		if key.Matches(msg, listKeys.Switch) {
			if msg.String() == "shift+tab" {
				a.Focus.Prev()
			} else {
				a.Focus.Next()
			}
			return a, nil
		}
		_, cmd := a.FocusedList().Update(msg)
		return a, cmd
	}

	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		return a, cmd
	}
	return a, nil
}

func (a *AppModel) resize(width, height int) {
	a.width, a.height = width, height
	inner := width - 4 // border + padding
	if width >= sideBySideMinWidth {
		inner = width/2 - 4
	}
	a.Doctors.SetWidth(inner)
	a.Patients.SetWidth(inner)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	b.WriteString(a.header())
	b.WriteString("\n")

	if top, ok := a.Overlays.Peek(); ok {
		b.WriteString(top.View())
		return b.String()
	}

	b.WriteString(a.body())
	b.WriteString("\n")
	if leader := RenderKeybindHelp(a.KeyHandler); leader != "" {
		b.WriteString(leader)
	} else {
		b.WriteString(RenderFooter(a.width))
	}
	return b.String()
}

func (a *AppModel) header() string {
	out := Styles.Header.Render("clinicdash")
	if a.Greeting != "" {
		out += "\n" + Styles.Title.Render("Hello, "+a.Greeting)
	}
	return out
}

func (a *AppModel) body() string {
	panel := func(l *CollectionView, w int) string {
		style := Styles.Panel
		if l.Focused {
			style = Styles.Focused
		}
		if w > 0 {
			style = style.Width(w)
		}
		return style.Render(l.View())
	}

	if a.width >= sideBySideMinWidth {
		w := a.width/2 - 2
		return lipgloss.JoinHorizontal(lipgloss.Top, panel(a.Doctors, w), panel(a.Patients, w))
	}
	w := 0
	if a.width > 0 {
		w = a.width - 2
	}
	return lipgloss.JoinVertical(lipgloss.Left, panel(a.Doctors, w), panel(a.Patients, w))
}
