package roster

// Collection is an ordered, immutable sequence of entities.
// Every mutating operation returns a new Collection and leaves the receiver untouched.
// Insertion order is arrival order for fetched entities and creation order for added ones.
type Collection struct {
	items []Entity
}

// NewCollection copies entities into a new Collection.
func NewCollection(entities []Entity) Collection {
	return Collection{items: cloneEntities(entities)}
}

// Len returns the number of entities.
func (c Collection) Len() int {
	return len(c.items)
}

// At returns the entity at index i. Panics if i is out of range, like a slice.
func (c Collection) At(i int) Entity {
	return c.items[i]
}

// Items returns a copy of the entities.
func (c Collection) Items() []Entity {
	return cloneEntities(c.items)
}

// Index returns the position of the first entity with the given id, or -1.
func (c Collection) Index(id string) int {
	for i, e := range c.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Replace returns a Collection holding exactly entities.
func (c Collection) Replace(entities []Entity) Collection {
	return NewCollection(entities)
}

// Append returns a Collection with e added at the end.
func (c Collection) Append(e Entity) Collection {
	next := make([]Entity, len(c.items), len(c.items)+1)
	copy(next, c.items)
	return Collection{items: append(next, e)}
}

// Remove returns a Collection without the first entity matching id.
// The bool is false (and the Collection unchanged) when id is absent.
func (c Collection) Remove(id string) (Collection, bool) {
	return c.RemoveAt(c.Index(id))
}

// RemoveAt returns a Collection without the entity at index i.
// The bool is false (and the Collection unchanged) when i is out of range.
func (c Collection) RemoveAt(i int) (Collection, bool) {
	if i < 0 || i >= len(c.items) {
		return c, false
	}
	next := make([]Entity, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	return Collection{items: next}, true
}

func cloneEntities(in []Entity) []Entity {
	if len(in) == 0 {
		return nil
	}
	out := make([]Entity, len(in))
	copy(out, in)
	return out
}
