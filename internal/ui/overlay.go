package ui

import tea "github.com/charmbracelet/bubbletea"

// OverlayStack holds modal views; the topmost receives all key input.
type OverlayStack struct {
	Stack []View
}

// Push adds a modal on top.
func (s *OverlayStack) Push(v View) {
	s.Stack = append(s.Stack, v)
}

// Pop removes and returns the top modal.
func (s *OverlayStack) Pop() (View, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// Peek returns the top modal without removing it.
func (s *OverlayStack) Peek() (View, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of open modals.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// UpdateTop passes msg to the top modal and stores the updated view.
// Caller must run the returned cmd.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := len(s.Stack) - 1
	v, cmd := s.Stack[top].Update(msg)
	s.Stack[top] = v
	return cmd, true
}
