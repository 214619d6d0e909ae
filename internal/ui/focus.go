package ui

import "clinicdash/internal/roster"

// FocusManager tracks which list has keyboard focus and rotates it.
type FocusManager struct {
	Current  roster.Kind
	Order    []roster.Kind
	OnChange func(from, to roster.Kind)
}

// Next moves focus to the next list in order and returns it.
func (f *FocusManager) Next() roster.Kind {
	return f.step(1)
}

// Prev moves focus to the previous list in order and returns it.
func (f *FocusManager) Prev() roster.Kind {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) roster.Kind {
	if len(f.Order) == 0 {
		return f.Current
	}
	idx := 0
	for i, k := range f.Order {
		if k == f.Current {
			idx = i
			break
		}
	}
	n := len(f.Order)
	return f.set(f.Order[((idx+delta)%n+n)%n])
}

// SetFocus focuses the given list. Returns false if it is not in Order.
func (f *FocusManager) SetFocus(k roster.Kind) bool {
	for _, o := range f.Order {
		if o == k {
			f.set(k)
			return true
		}
	}
	return false
}

func (f *FocusManager) set(k roster.Kind) roster.Kind {
	from := f.Current
	f.Current = k
	if f.OnChange != nil && from != k {
		f.OnChange(from, k)
	}
	return k
}
