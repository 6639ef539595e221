// Package diff computes the structural difference between two snapshots of
// a list's items. Items are matched across snapshots by identity, never by
// content, so an edited item is reported as changed rather than as a
// remove/insert pair.
package diff

import (
	"github.com/cdoyle/lister-tui/internal/list"
)

// Change classifies the aggregate kind of a diff.
type Change int

const (
	// ChangeNone means the two snapshots contain the same items with the
	// same content.
	ChangeNone Change = iota
	// ChangeRemoved means only removals occurred.
	ChangeRemoved
	// ChangeInserted means only insertions occurred.
	ChangeInserted
	// ChangeToggled means only completion flips occurred.
	ChangeToggled
	// ChangeTextChanged means only text edits occurred.
	ChangeTextChanged
	// ChangeMixed means more than one category of change occurred. Callers
	// without positional hints cannot replay a mixed batch precisely and
	// should fall back to a full reload.
	ChangeMixed
)

func (c Change) String() string {
	switch c {
	case ChangeNone:
		return "none"
	case ChangeRemoved:
		return "removed"
	case ChangeInserted:
		return "inserted"
	case ChangeToggled:
		return "toggled"
	case ChangeTextChanged:
		return "text-changed"
	case ChangeMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// indexByID builds an ID -> item map for one snapshot.
func indexByID(items []*list.Item) map[string]*list.Item {
	index := make(map[string]*list.Item, len(items))
	for _, it := range items {
		index[it.ID] = it
	}
	return index
}

// Removed returns the items present in before but absent from after,
// in before order.
func Removed(before, after []*list.Item) []*list.Item {
	afterIndex := indexByID(after)
	var removed []*list.Item
	for _, it := range before {
		if _, ok := afterIndex[it.ID]; !ok {
			removed = append(removed, it)
		}
	}
	return removed
}

// Inserted returns the items present in after but absent from before, in
// after order, filtered by keep. A nil keep accepts every item.
func Inserted(before, after []*list.Item, keep func(*list.Item) bool) []*list.Item {
	beforeIndex := indexByID(before)
	var inserted []*list.Item
	for _, it := range after {
		if _, ok := beforeIndex[it.ID]; ok {
			continue
		}
		if keep != nil && !keep(it) {
			continue
		}
		inserted = append(inserted, it)
	}
	return inserted
}

// Toggled returns the items present in both snapshots whose completion
// state differs. The returned items are the after snapshot's instances.
func Toggled(before, after []*list.Item) []*list.Item {
	beforeIndex := indexByID(before)
	var toggled []*list.Item
	for _, it := range after {
		if old, ok := beforeIndex[it.ID]; ok && old.Complete != it.Complete {
			toggled = append(toggled, it)
		}
	}
	return toggled
}

// TextChanged returns the items present in both snapshots whose text
// differs. The returned items are the after snapshot's instances. An item
// with both a completion flip and a text edit appears in Toggled and here;
// callers must union the two before applying updates.
func TextChanged(before, after []*list.Item) []*list.Item {
	beforeIndex := indexByID(before)
	var changed []*list.Item
	for _, it := range after {
		if old, ok := beforeIndex[it.ID]; ok && old.Text != it.Text {
			changed = append(changed, it)
		}
	}
	return changed
}

// Classify maps the four category sets onto a single Change by exact
// one-hot non-emptiness. Any combination of two or more non-empty
// categories is ChangeMixed; all empty is ChangeNone. Classify is
// size-agnostic: cardinality limits on replayable batches are the
// presenter's policy, not the diff's.
func Classify(removed, inserted, toggled, textChanged []*list.Item) Change {
	nonEmpty := 0
	result := ChangeNone
	if len(removed) > 0 {
		nonEmpty++
		result = ChangeRemoved
	}
	if len(inserted) > 0 {
		nonEmpty++
		result = ChangeInserted
	}
	if len(toggled) > 0 {
		nonEmpty++
		result = ChangeToggled
	}
	if len(textChanged) > 0 {
		nonEmpty++
		result = ChangeTextChanged
	}
	if nonEmpty > 1 {
		return ChangeMixed
	}
	return result
}

// UnionByID merges item slices, keeping the first instance seen for each
// identity and preserving encounter order. Used to de-duplicate items that
// show up as both toggled and text-changed.
func UnionByID(groups ...[]*list.Item) []*list.Item {
	seen := make(map[string]bool)
	var union []*list.Item
	for _, group := range groups {
		for _, it := range group {
			if seen[it.ID] {
				continue
			}
			seen[it.ID] = true
			union = append(union, it)
		}
	}
	return union
}
