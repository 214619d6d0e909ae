package ui

import (
	"context"

	"clinicdash/internal/roster"

	tea "github.com/charmbracelet/bubbletea"
)

// loadCollectionCmd fetches a list's full collection. Runs once per list.
func loadCollectionCmd(src Source, token uint64) tea.Cmd {
	kind := src.Kind()
	return func() tea.Msg {
		entities, err := src.List(context.Background())
		return CollectionLoadedMsg{Kind: kind, Token: token, Entities: entities, Err: err}
	}
}

// expandCmd fetches one entry's expansion. ctx is cancelled when the entry is
// removed or re-activated, which aborts the in-flight request.
func expandCmd(ctx context.Context, src Source, id string, token uint64) tea.Cmd {
	kind := src.Kind()
	return func() tea.Msg {
		exp, err := src.Expand(ctx, id)
		if err != nil {
			exp = roster.Expansion{}
		}
		return ExpandLoadedMsg{Kind: kind, ID: id, Token: token, Expansion: exp, Err: err}
	}
}

// removeItemCmd is the delete affordance of an entry.
func removeItemCmd(kind roster.Kind, id string, index int) tea.Cmd {
	return func() tea.Msg {
		return RemoveItemMsg{Kind: kind, ID: id, Index: index}
	}
}
