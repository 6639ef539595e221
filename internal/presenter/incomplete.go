package presenter

import (
	"fmt"

	"github.com/cdoyle/lister-tui/internal/diff"
	"github.com/cdoyle/lister-tui/internal/list"
)

// IncompleteItemsPresenter presents the incomplete items of a list for
// glance surfaces. The presented set is sticky: an item shown while
// incomplete stays visible after it is completed, until an external edit
// drops it from the list entirely. The authoritative list keeps tracking
// the full item set independently of what is displayed.
//
// This presenter records no undo inverses; glance surfaces are read-mostly
// and their completions are meant to stick.
type IncompleteItemsPresenter struct {
	l         *list.List
	presented []*list.Item
	delegate  Delegate
	loaded    bool
}

// NewIncompleteItemsPresenter creates a presenter over an empty list.
func NewIncompleteItemsPresenter() *IncompleteItemsPresenter {
	return &IncompleteItemsPresenter{
		l:        list.New(),
		delegate: NopDelegate{},
	}
}

// SetDelegate registers the delegate, replacing any previous one.
func (p *IncompleteItemsPresenter) SetDelegate(d Delegate) {
	if d == nil {
		d = NopDelegate{}
	}
	p.delegate = d
}

// PresentedItems returns the displayed items in order.
func (p *IncompleteItemsPresenter) PresentedItems() []*list.Item {
	items := make([]*list.Item, len(p.presented))
	copy(items, p.presented)
	return items
}

// ArchiveableList returns a snapshot of the authoritative full list, not
// just the displayed subset.
func (p *IncompleteItemsPresenter) ArchiveableList() *list.List {
	return p.l.Copy()
}

// Color returns the list's current color.
func (p *IncompleteItemsPresenter) Color() list.Color {
	return p.l.Color
}

// Replace adopts a freshly-loaded list. The first call filters to the
// incomplete items and emits FullRefresh. Later calls diff the presented
// items against the new list: presented items that vanished entirely are
// removed, new incomplete items are inserted at the head in arrival order,
// and toggles or text edits to presented items become in-place updates —
// all inside one bracket. When nothing changed and the color is the same
// the call is a complete no-op, with no empty bracket.
//
// After applying, presented item instances are substituted back into the
// adopted list by identity, so the UI never churns over equal-but-distinct
// instances and later in-place completions reach the archiveable list.
func (p *IncompleteItemsPresenter) Replace(newList *list.List) {
	if !p.loaded {
		p.loaded = true
		p.l = newList
		p.presented = nil
		for _, it := range p.l.Items {
			if !it.Complete {
				p.presented = append(p.presented, it)
			}
		}
		p.delegate.FullRefresh()
		return
	}

	removed := diff.Removed(p.presented, newList.Items)
	inserted := diff.Inserted(p.presented, newList.Items, func(it *list.Item) bool {
		return !it.Complete
	})
	toggled := diff.Toggled(p.presented, newList.Items)
	textChanged := diff.TextChanged(p.presented, newList.Items)
	updated := diff.UnionByID(toggled, textChanged)
	colorChanged := p.l.Color != newList.Color

	if len(removed) == 0 && len(inserted) == 0 && len(updated) == 0 && !colorChanged {
		return
	}

	p.bracket(true, func() {
		for _, it := range removed {
			idx := p.indexOf(it)
			p.presented = append(p.presented[:idx], p.presented[idx+1:]...)
			p.delegate.ItemRemoved(it, idx)
		}

		// New incomplete items land at the head, each subsequent one after
		// the prior, preserving arrival order at the front.
		insertIdx := 0
		for _, it := range inserted {
			rest := append([]*list.Item{it}, p.presented[insertIdx:]...)
			p.presented = append(p.presented[:insertIdx], rest...)
			p.delegate.ItemInserted(it, insertIdx)
			insertIdx++
		}

		for _, after := range updated {
			idx := p.indexOf(after)
			cur := p.presented[idx]
			cur.Text = after.Text
			cur.Complete = after.Complete
			p.delegate.ItemUpdated(cur, idx)
		}

		// Adopt the new list, substituting the instances already on screen
		// back in by identity. Updated instances carry the new content at
		// this point, so the swap keeps presented and archived state
		// aliased without the delegate seeing distinct-but-equal copies.
		presentedByID := make(map[string]*list.Item, len(p.presented))
		for _, it := range p.presented {
			presentedByID[it.ID] = it
		}
		for i, it := range newList.Items {
			if cur, ok := presentedByID[it.ID]; ok {
				newList.Items[i] = cur
			}
		}
		p.l = newList

		if colorChanged {
			p.delegate.ColorChanged(newList.Color)
		}
	})
}

// Toggle flips an item's completion in place. The item is neither moved
// nor dropped from the presented set. Panics if the item is not presented.
func (p *IncompleteItemsPresenter) Toggle(item *list.Item) {
	idx := p.indexOf(item)
	if idx < 0 {
		panic(fmt.Sprintf("presenter: toggle: item %q is not presented", item.ID))
	}
	cur := p.presented[idx]
	p.bracket(false, func() {
		cur.Complete = !cur.Complete
		p.delegate.ItemUpdated(cur, idx)
	})
}

// SetAllComplete sets every presented item's completion flag to state,
// in place, without reordering.
func (p *IncompleteItemsPresenter) SetAllComplete(state bool) {
	var affected []int
	for i, it := range p.presented {
		if it.Complete != state {
			affected = append(affected, i)
		}
	}
	if len(affected) == 0 {
		return
	}
	p.bracket(false, func() {
		for _, idx := range affected {
			it := p.presented[idx]
			it.Complete = state
			p.delegate.ItemUpdated(it, idx)
		}
	})
}

func (p *IncompleteItemsPresenter) bracket(initial bool, fn func()) {
	p.delegate.WillChange(initial)
	fn()
	p.delegate.DidChange(initial)
}

func (p *IncompleteItemsPresenter) indexOf(item *list.Item) int {
	for i, it := range p.presented {
		if it.Equal(item) {
			return i
		}
	}
	return -1
}
