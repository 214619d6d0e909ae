package ui

import "clinicdash/internal/roster"

// CollectionLoadedMsg carries the result of a list's initial fetch.
type CollectionLoadedMsg struct {
	Kind     roster.Kind
	Token    uint64
	Entities []roster.Entity
	Err      error
}

// ExpandLoadedMsg carries the result of one entry's expansion fetch.
type ExpandLoadedMsg struct {
	Kind      roster.Kind
	ID        string
	Token     uint64
	Expansion roster.Expansion
	Err       error
}

// RemoveItemMsg asks the owning list to drop an entry from its local state.
type RemoveItemMsg struct {
	Kind  roster.Kind
	ID    string
	Index int // position of the entry when sent
}

// ShowAddModalMsg opens the add-entry modal for the focused list (SPC a).
type ShowAddModalMsg struct{}

// DeleteSelectedMsg removes the focused list's selected entry (SPC d).
type DeleteSelectedMsg struct{}

// AddEntityMsg is sent by the add-entry modal on submit.
type AddEntityMsg struct {
	Kind roster.Kind
	Name string
}

// DismissModalMsg is sent when the user cancels a modal (Esc).
type DismissModalMsg struct{}
