package ui

import (
	"fmt"
	"strings"

	"clinicdash/internal/roster"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// CollectionView is one list (doctors or patients). It fetches its collection
// once on Init, then owns it: Add and Remove change local state only and
// nothing is written back to the server.
type CollectionView struct {
	Kind       roster.Kind
	Collection roster.Collection
	Selected   int
	Loaded     bool  // initial fetch succeeded
	Err        error // initial fetch error; the list stays empty
	Focused    bool

	src       Source
	opts      Options
	logger    zerolog.Logger
	items     []*ItemView // parallel to Collection
	tokens    uint64
	loadToken uint64
	loading   bool
	spinner   spinner.Model
	width     int
}

// Ensure CollectionView implements View.
var _ View = (*CollectionView)(nil)

// NewCollectionView creates an empty list backed by src.
func NewCollectionView(src Source, opts Options) *CollectionView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))
	return &CollectionView{
		Kind:    src.Kind(),
		src:     src,
		opts:    opts,
		logger:  opts.logger().With().Str("list", src.Kind().String()).Logger(),
		spinner: s,
	}
}

func (c *CollectionView) nextToken() uint64 {
	c.tokens++
	return c.tokens
}

// Init implements View. It issues the one and only collection fetch.
func (c *CollectionView) Init() tea.Cmd {
	c.loadToken = c.nextToken()
	c.loading = true
	fetch := loadCollectionCmd(c.src, c.loadToken)
	if c.opts.ShowLoading {
		return tea.Batch(fetch, c.spinner.Tick)
	}
	return fetch
}

// Len returns the number of entries, which is also the number of rendered items.
func (c *CollectionView) Len() int {
	return c.Collection.Len()
}

// Item returns the entry view for id, or nil.
func (c *CollectionView) Item(id string) *ItemView {
	idx := c.Collection.Index(id)
	if idx < 0 {
		return nil
	}
	return c.items[idx]
}

// SelectedItem returns the entry under the cursor, or nil for an empty list.
func (c *CollectionView) SelectedItem() *ItemView {
	if c.Selected < 0 || c.Selected >= len(c.items) {
		return nil
	}
	return c.items[c.Selected]
}

// Add appends a locally created entry with a generated id and returns it.
// The name is stored as given; every call grows the list by one.
func (c *CollectionView) Add(name string) roster.Entity {
	e := roster.Entity{ID: roster.NewID(), Name: name}
	c.Collection = c.Collection.Append(e)
	c.items = append(c.items, c.newItem(e))
	c.logger.Debug().Str("id", e.ID).Msg("entry added")
	return e
}

// Remove drops the first entry with id and cancels its pending fetch.
// Returns false when id is not present.
func (c *CollectionView) Remove(id string) bool {
	return c.removeAt(c.Collection.Index(id))
}

// removeAt drops the entry at idx and cancels its pending fetch.
func (c *CollectionView) removeAt(idx int) bool {
	next, ok := c.Collection.RemoveAt(idx)
	if !ok {
		return false
	}
	id := c.items[idx].Entity.ID
	c.items[idx].Cancel()

	items := make([]*ItemView, 0, len(c.items)-1)
	items = append(items, c.items[:idx]...)
	items = append(items, c.items[idx+1:]...)
	c.items = items
	c.Collection = next

	if c.Selected >= len(c.items) {
		c.Selected = len(c.items) - 1
	}
	if c.Selected < 0 {
		c.Selected = 0
	}
	c.syncItems()
	c.logger.Debug().Str("id", id).Msg("entry removed")
	return true
}

// Activate starts the expansion fetch of the entry with id.
func (c *CollectionView) Activate(id string) tea.Cmd {
	item := c.Item(id)
	if item == nil {
		return nil
	}
	return item.Activate(c.nextToken())
}

// pendingItem finds the entry a fetch result belongs to. Tokens are unique
// per list, so entries sharing an id are told apart.
func (c *CollectionView) pendingItem(msg ExpandLoadedMsg) *ItemView {
	for _, item := range c.items {
		if item.Entity.ID == msg.ID && item.token == msg.Token {
			return item
		}
	}
	return nil
}

// removeEntry handles the delete affordance. The position is used when it
// still holds the entry; otherwise the first entry with the id goes.
func (c *CollectionView) removeEntry(msg RemoveItemMsg) bool {
	if msg.Index >= 0 && msg.Index < len(c.items) && c.items[msg.Index].Entity.ID == msg.ID {
		return c.removeAt(msg.Index)
	}
	return c.Remove(msg.ID)
}

// SetWidth sets the inner width used to truncate names.
func (c *CollectionView) SetWidth(w int) {
	c.width = w
	c.syncItems()
}

func (c *CollectionView) newItem(e roster.Entity) *ItemView {
	item := NewItemView(e, c.src, c.opts)
	item.width = c.width
	return item
}

// replace swaps in a freshly fetched collection. Entries of the old one are
// discarded along with their in-flight fetches.
func (c *CollectionView) replace(entities []roster.Entity) {
	for _, item := range c.items {
		item.Cancel()
	}
	c.Collection = c.Collection.Replace(entities)
	c.items = make([]*ItemView, c.Collection.Len())
	for i := range c.items {
		c.items[i] = c.newItem(c.Collection.At(i))
	}
	c.Selected = 0
	c.syncItems()
}

func (c *CollectionView) syncItems() {
	for i, item := range c.items {
		item.selected = c.Focused && i == c.Selected
		item.width = c.width
	}
}

// Update implements View.
func (c *CollectionView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case CollectionLoadedMsg:
		if msg.Kind != c.Kind || msg.Token != c.loadToken || !c.loading {
			return c, nil
		}
		c.loading = false
		if msg.Err != nil {
			c.Err = msg.Err
			c.logger.Warn().Err(msg.Err).Msg("collection fetch failed")
			return c, nil
		}
		c.Err = nil
		c.Loaded = true
		c.replace(msg.Entities)
		c.logger.Info().Int("count", c.Len()).Msg("collection loaded")
		return c, nil

	case ExpandLoadedMsg:
		if msg.Kind != c.Kind {
			return c, nil
		}
		item := c.pendingItem(msg)
		if item == nil {
			c.logger.Debug().Str("id", msg.ID).Msg("dropping expansion for removed entry")
			return c, nil
		}
		if item.apply(msg) && msg.Err != nil {
			c.logger.Warn().Err(msg.Err).Str("id", msg.ID).Msg("expand fetch failed")
		}
		return c, nil

	case RemoveItemMsg:
		if msg.Kind == c.Kind {
			c.removeEntry(msg)
		}
		return c, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if c.loading && c.opts.ShowLoading {
			var cmd tea.Cmd
			c.spinner, cmd = c.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		for _, item := range c.items {
			_, cmd := item.Update(msg)
			cmds = append(cmds, cmd)
		}
		return c, tea.Batch(cmds...)

	case tea.KeyMsg:
		return c, c.handleKey(msg)
	}
	return c, nil
}

func (c *CollectionView) handleKey(msg tea.KeyMsg) tea.Cmd {
	n := len(c.items)
	switch {
	case key.Matches(msg, listKeys.Down):
		if c.Selected < n-1 {
			c.Selected++
		}
	case key.Matches(msg, listKeys.Up):
		if c.Selected > 0 {
			c.Selected--
		}
	case key.Matches(msg, listKeys.Top):
		c.Selected = 0
	case key.Matches(msg, listKeys.Bottom):
		if n > 0 {
			c.Selected = n - 1
		}
	case key.Matches(msg, listKeys.Open):
		if item := c.SelectedItem(); item != nil {
			return item.Activate(c.nextToken())
		}
	case key.Matches(msg, listKeys.Delete):
		if item := c.SelectedItem(); item != nil {
			return removeItemCmd(c.Kind, item.Entity.ID, c.Selected)
		}
	}
	c.syncItems()
	return nil
}

// View implements View.
func (c *CollectionView) View() string {
	c.syncItems()

	var b strings.Builder
	title := Styles.Title.Render(c.Kind.Title()) + " " + Styles.Muted.Render(fmt.Sprintf("(%d)", c.Len()))
	if c.loading && c.opts.ShowLoading {
		title += " " + c.spinner.View()
	}
	b.WriteString(title)

	for _, item := range c.items {
		b.WriteString("\n")
		b.WriteString(item.View())
	}
	if c.Err != nil && c.opts.ShowErrors {
		b.WriteString("\n" + Styles.Error.Render(c.Err.Error()))
	}
	return b.String()
}
