// Package ui is the Bubble Tea front end of clinicdash.
//
// Components, leaves first:
//   - RenderDetail / RenderRelations: stateless rendering of an expanded entry
//   - ItemView: one list entry; fetches its expansion on activation
//   - CollectionView: one list; fetches its collection once on Init and owns
//     the local add/remove state
//   - AppModel: header plus the doctors and patients lists, focus, keybinds
//     and the add-entry modal
//
// All network work runs in tea.Cmds. Results come back as messages tagged
// with the owning list kind, entity id and a request token; receivers drop
// results whose token is no longer current.
package ui
