package presenter

import (
	"fmt"

	"github.com/cdoyle/lister-tui/internal/diff"
	"github.com/cdoyle/lister-tui/internal/list"
)

// AllItemsPresenter presents every item of a list, kept ordered so that all
// incomplete items precede all complete items. It is the presenter behind
// the interactive editing surface: every direct operation notifies the
// delegate inside one WillChange/DidChange bracket and pushes its inverse
// onto the undo stack.
//
// A presenter instance must be driven from a single goroutine. Operations
// are synchronous and complete before returning; replacement lists arriving
// from background loads must be marshalled onto the owning goroutine before
// calling Replace.
//
// Operating on an item that is not presented, or moving to an index outside
// the item's completion partition, is a programmer error and panics.
type AllItemsPresenter struct {
	l        *list.List
	delegate Delegate
	undo     *UndoStack
	loaded   bool
}

// NewAllItemsPresenter creates a presenter over an empty list, recording
// inverse operations on the given undo stack.
func NewAllItemsPresenter(undo *UndoStack) *AllItemsPresenter {
	if undo == nil {
		undo = NewUndoStack()
	}
	return &AllItemsPresenter{
		l:        list.New(),
		delegate: NopDelegate{},
		undo:     undo,
	}
}

// SetDelegate registers the delegate, replacing any previous one. A nil
// delegate silences notifications.
func (p *AllItemsPresenter) SetDelegate(d Delegate) {
	if d == nil {
		d = NopDelegate{}
	}
	p.delegate = d
}

// Undo returns the undo stack the presenter records inverses on.
func (p *AllItemsPresenter) Undo() *UndoStack {
	return p.undo
}

// PresentedItems returns the items in presented order.
func (p *AllItemsPresenter) PresentedItems() []*list.Item {
	items := make([]*list.Item, len(p.l.Items))
	copy(items, p.l.Items)
	return items
}

// ArchiveableList returns a snapshot of the authoritative list, including
// any in-flight unsaved edits. This is the serialization source of truth.
func (p *AllItemsPresenter) ArchiveableList() *list.List {
	return p.l.Copy()
}

// Color returns the list's current color.
func (p *AllItemsPresenter) Color() list.Color {
	return p.l.Color
}

// Loaded reports whether the presenter has received its first Replace.
func (p *AllItemsPresenter) Loaded() bool {
	return p.loaded
}

// Replace adopts a freshly-loaded list. The first call assigns directly,
// reorders incomplete-first and emits a single FullRefresh. Later calls
// diff the old items against the new ones and replay the change through
// the same operations used for direct edits when it is precise enough to
// track: any number of removals or text edits, or exactly one insertion or
// toggle. A mixed change, or more than one simultaneous insert/toggle, has
// no unique positional resolution, so the presenter adopts the new list
// wholesale and emits FullRefresh instead. Every non-initial path clears
// the undo stack: the replacement did not originate from a user edit and
// must not be undoable piecemeal.
func (p *AllItemsPresenter) Replace(newList *list.List) {
	if !p.loaded {
		p.loaded = true
		p.l = newList
		p.l.Items = reorderIncompleteFirst(p.l.Items)
		p.delegate.FullRefresh()
		return
	}

	old := p.l.Items
	removed := diff.Removed(old, newList.Items)
	inserted := diff.Inserted(old, newList.Items, nil)
	toggled := diff.Toggled(old, newList.Items)
	textChanged := diff.TextChanged(old, newList.Items)

	switch diff.Classify(removed, inserted, toggled, textChanged) {
	case diff.ChangeNone:
		if p.l.Color == newList.Color {
			return
		}
		p.undo.Clear()
		p.bracket(true, func() {
			p.l.Color = newList.Color
			p.delegate.ColorChanged(newList.Color)
		})

	case diff.ChangeRemoved:
		p.undo.Clear()
		p.bracket(true, func() {
			for _, it := range removed {
				p.removeAt(p.l.IndexOf(it))
			}
			p.adoptColor(newList.Color)
		})

	case diff.ChangeTextChanged:
		p.undo.Clear()
		p.bracket(true, func() {
			for _, it := range textChanged {
				idx := p.l.IndexOf(it)
				cur := p.l.Items[idx]
				cur.Text = it.Text
				p.delegate.ItemUpdated(cur, idx)
			}
			p.adoptColor(newList.Color)
		})

	case diff.ChangeInserted:
		if len(inserted) > 1 {
			p.fullReload(newList)
			return
		}
		p.undo.Clear()
		p.bracket(true, func() {
			it := inserted[0]
			p.insertAt(it, p.insertionIndex(it))
			p.adoptColor(newList.Color)
		})

	case diff.ChangeToggled:
		if len(toggled) > 1 {
			p.fullReload(newList)
			return
		}
		p.undo.Clear()
		p.bracket(true, func() {
			cur := p.l.Items[p.l.IndexOf(toggled[0])]
			p.applyToggle(cur, p.l.IndexOf(cur), p.toggleTarget(cur))
			p.adoptColor(newList.Color)
		})

	default: // mixed
		p.fullReload(newList)
	}
}

// Insert adds an item at the head if incomplete, or at the tail if
// complete. Panics if the item is already presented.
func (p *AllItemsPresenter) Insert(item *list.Item) {
	if p.l.IndexOf(item) >= 0 {
		panic(fmt.Sprintf("presenter: insert: item %q is already presented", item.ID))
	}
	p.bracket(false, func() {
		p.insertAt(item, p.insertionIndex(item))
	})
	p.undo.Push("Insert", func() { p.Remove(item) })
}

// InsertAll adds items as repeated Insert calls inside a single bracket.
// One inverse removes the whole batch.
func (p *AllItemsPresenter) InsertAll(items []*list.Item) {
	if len(items) == 0 {
		return
	}
	for _, it := range items {
		if p.l.IndexOf(it) >= 0 {
			panic(fmt.Sprintf("presenter: insert: item %q is already presented", it.ID))
		}
	}
	batch := make([]*list.Item, len(items))
	copy(batch, items)
	p.bracket(false, func() {
		for _, it := range batch {
			p.insertAt(it, p.insertionIndex(it))
		}
	})
	p.undo.Push("Insert Items", func() { p.RemoveAll(batch) })
}

// Remove deletes the item at its current index. Panics if absent.
func (p *AllItemsPresenter) Remove(item *list.Item) {
	idx := p.mustIndex(item, "remove")
	removed := p.l.Items[idx]
	p.bracket(false, func() {
		p.removeAt(idx)
	})
	p.undo.Push("Remove", func() { p.undoRemove(removed, idx) })
}

// undoRemove re-inserts an item at the index it was removed from.
func (p *AllItemsPresenter) undoRemove(item *list.Item, index int) {
	p.bracket(false, func() {
		p.insertAt(item, index)
	})
	p.undo.Push("Remove", func() { p.Remove(item) })
}

// RemoveAll deletes a batch of distinct presented items inside a single
// bracket. Removal runs in descending-index order so remaining indices stay
// valid mid-loop; the inverse re-inserts every item at its recorded index.
func (p *AllItemsPresenter) RemoveAll(items []*list.Item) {
	if len(items) == 0 {
		return
	}
	type removal struct {
		item  *list.Item
		index int
	}
	seen := make(map[string]bool, len(items))
	removals := make([]removal, len(items))
	for i, it := range items {
		if seen[it.ID] {
			panic(fmt.Sprintf("presenter: remove: item %q appears twice in batch", it.ID))
		}
		seen[it.ID] = true
		idx := p.mustIndex(it, "remove")
		removals[i] = removal{item: p.l.Items[idx], index: idx}
	}

	// Descending order of index, preserving recorded positions.
	order := make([]removal, len(removals))
	copy(order, removals)
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if order[j].index > order[i].index {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	p.bracket(false, func() {
		for _, r := range order {
			p.removeAt(r.index)
		}
	})

	batch := make([]*list.Item, len(items))
	copy(batch, items)
	p.undo.Push("Remove Items", func() {
		p.bracket(false, func() {
			// Ascending index order restores the original layout.
			for i := 0; i < len(order); i++ {
				r := order[len(order)-1-i]
				p.insertAt(r.item, r.index)
			}
		})
		p.undo.Push("Remove Items", func() { p.RemoveAll(batch) })
	})
}

// UpdateText changes an item's text in place. A no-op when unchanged.
// Panics if the item is absent.
func (p *AllItemsPresenter) UpdateText(item *list.Item, text string) {
	idx := p.mustIndex(item, "update")
	cur := p.l.Items[idx]
	if cur.Text == text {
		return
	}
	old := cur.Text
	p.bracket(false, func() {
		cur.Text = text
		p.delegate.ItemUpdated(cur, idx)
	})
	p.undo.Push("Edit", func() { p.UpdateText(cur, old) })
}

// CanMove reports whether the item can move to the given index: the index
// must lie inside the contiguous partition matching the item's completion
// state. False if the item is not presented.
func (p *AllItemsPresenter) CanMove(item *list.Item, to int) bool {
	idx := p.l.IndexOf(item)
	if idx < 0 {
		return false
	}
	b := p.firstCompleteIndex()
	if p.l.Items[idx].Complete {
		return to >= b && to < len(p.l.Items)
	}
	return to >= 0 && to < b
}

// Move relocates an item within its completion partition. Panics unless
// CanMove holds.
func (p *AllItemsPresenter) Move(item *list.Item, to int) {
	if !p.CanMove(item, to) {
		panic(fmt.Sprintf("presenter: move: item %q cannot move to index %d", item.ID, to))
	}
	from := p.l.IndexOf(item)
	cur := p.l.Items[from]
	p.bracket(false, func() {
		p.spliceMove(from, to)
		p.delegate.ItemMoved(cur, from, to)
	})
	p.undo.Push("Move", func() { p.Move(cur, from) })
}

// Toggle flips an item's completion state and moves it to the opposite
// partition's boundary slot in the same logical step: index 0 when
// becoming incomplete, the last index when becoming complete. The inverse
// restores both the flag and the item's previous slot, which plain Toggle
// cannot target.
func (p *AllItemsPresenter) Toggle(item *list.Item) {
	from := p.mustIndex(item, "toggle")
	cur := p.l.Items[from]
	p.bracket(false, func() {
		p.applyToggle(cur, from, p.toggleTarget(cur))
	})
	p.undo.Push("Toggle", func() { p.undoToggleTo(cur, from) })
}

// undoToggleTo flips the item back and returns it to a specific index.
func (p *AllItemsPresenter) undoToggleTo(item *list.Item, to int) {
	from := p.mustIndex(item, "toggle")
	cur := p.l.Items[from]
	p.bracket(false, func() {
		p.applyToggle(cur, from, to)
	})
	p.undo.Push("Toggle", func() { p.Toggle(cur) })
}

// SetAllComplete sets every presented item's completion flag to state,
// without reordering. The inverse re-flips exactly the items affected by
// this call, snapshotted up front, not whatever fails to match at undo
// time.
func (p *AllItemsPresenter) SetAllComplete(state bool) {
	var affected []*list.Item
	for _, it := range p.l.Items {
		if it.Complete != state {
			affected = append(affected, it)
		}
	}
	if len(affected) == 0 {
		return
	}
	p.applyBulkComplete(affected, state)
}

// applyBulkComplete flips a snapshotted set of items to state and pushes
// the symmetric inverse over the same snapshot.
func (p *AllItemsPresenter) applyBulkComplete(snapshot []*list.Item, state bool) {
	p.bracket(false, func() {
		for _, it := range snapshot {
			it.Complete = state
			p.delegate.ItemUpdated(it, p.l.IndexOf(it))
		}
	})
	p.undo.Push("Change All Items", func() { p.applyBulkComplete(snapshot, !state) })
}

// SetColor changes the list color. A no-op when unchanged.
func (p *AllItemsPresenter) SetColor(c list.Color) {
	if p.l.Color == c {
		return
	}
	old := p.l.Color
	p.bracket(false, func() {
		p.l.Color = c
		p.delegate.ColorChanged(c)
	})
	p.undo.Push("Change Color", func() { p.SetColor(old) })
}

// --- internals -----------------------------------------------------------

func (p *AllItemsPresenter) bracket(initial bool, fn func()) {
	p.delegate.WillChange(initial)
	fn()
	p.delegate.DidChange(initial)
}

func (p *AllItemsPresenter) mustIndex(item *list.Item, op string) int {
	idx := p.l.IndexOf(item)
	if idx < 0 {
		panic(fmt.Sprintf("presenter: %s: item %q is not presented", op, item.ID))
	}
	return idx
}

// firstCompleteIndex is the partition boundary: the index of the first
// complete item, or the item count when every item is incomplete.
func (p *AllItemsPresenter) firstCompleteIndex() int {
	for i, it := range p.l.Items {
		if it.Complete {
			return i
		}
	}
	return len(p.l.Items)
}

// insertionIndex is the boundary slot for a newly-presented item: head for
// incomplete, tail for complete.
func (p *AllItemsPresenter) insertionIndex(item *list.Item) int {
	if item.Complete {
		return len(p.l.Items)
	}
	return 0
}

// toggleTarget is the boundary slot the item lands on when its completion
// flips: head when becoming incomplete, last index when becoming complete.
func (p *AllItemsPresenter) toggleTarget(item *list.Item) int {
	if item.Complete {
		return 0
	}
	return len(p.l.Items) - 1
}

// applyToggle moves the item and flips its flag inside the caller's
// bracket; the notification carries both the move and the update.
func (p *AllItemsPresenter) applyToggle(item *list.Item, from, to int) {
	if from != to {
		p.spliceMove(from, to)
		p.delegate.ItemMoved(item, from, to)
	}
	item.Complete = !item.Complete
	p.delegate.ItemUpdated(item, to)
}

// insertAt splices item in at index and notifies.
func (p *AllItemsPresenter) insertAt(item *list.Item, index int) {
	items := p.l.Items
	items = append(items, nil)
	copy(items[index+1:], items[index:])
	items[index] = item
	p.l.Items = items
	p.delegate.ItemInserted(item, index)
}

// removeAt splices the item at index out and notifies.
func (p *AllItemsPresenter) removeAt(index int) {
	item := p.l.Items[index]
	p.l.Items = append(p.l.Items[:index], p.l.Items[index+1:]...)
	p.delegate.ItemRemoved(item, index)
}

// spliceMove relocates the item at from to index to without notifying.
func (p *AllItemsPresenter) spliceMove(from, to int) {
	item := p.l.Items[from]
	p.l.Items = append(p.l.Items[:from], p.l.Items[from+1:]...)
	items := p.l.Items
	items = append(items, nil)
	copy(items[to+1:], items[to:])
	items[to] = item
	p.l.Items = items
}

// adoptColor syncs the color from a replacement list inside the current
// bracket, notifying once when it actually changes.
func (p *AllItemsPresenter) adoptColor(c list.Color) {
	if p.l.Color == c {
		return
	}
	p.l.Color = c
	p.delegate.ColorChanged(c)
}

func (p *AllItemsPresenter) fullReload(newList *list.List) {
	p.undo.Clear()
	p.l = newList
	p.l.Items = reorderIncompleteFirst(p.l.Items)
	p.delegate.FullRefresh()
}

// reorderIncompleteFirst stably partitions items so incomplete ones come
// first.
func reorderIncompleteFirst(items []*list.Item) []*list.Item {
	ordered := make([]*list.Item, 0, len(items))
	for _, it := range items {
		if !it.Complete {
			ordered = append(ordered, it)
		}
	}
	for _, it := range items {
		if it.Complete {
			ordered = append(ordered, it)
		}
	}
	return ordered
}
