package list

import (
	"github.com/google/uuid"
)

// Item is a single entry in a list: a line of text plus a completion flag.
// Every item carries an opaque identity token that is minted at creation
// time and never derived from content. Two items are the same item iff
// their IDs match; text and completion state play no part in equality, so
// diffing can match items across snapshots even after they were edited.
type Item struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Complete bool   `json:"complete"`
}

// NewItem creates an incomplete item with the given text and a fresh identity.
func NewItem(text string) *Item {
	return &Item{
		ID:   uuid.NewString(),
		Text: text,
	}
}

// Equal reports whether other is the same logical item, by identity only.
func (it *Item) Equal(other *Item) bool {
	if it == nil || other == nil {
		return it == other
	}
	return it.ID == other.ID
}

// Copy returns a new Item with the same identity and content. Used when a
// snapshot needs its own instance without forking the item's identity.
func (it *Item) Copy() *Item {
	c := *it
	return &c
}

// RefreshID mints a new identity for the item. The result is a new logical
// item: indistinguishable in content, unequal to every prior copy. Used
// when duplicating an item so the duplicate does not alias the original.
func (it *Item) RefreshID() {
	it.ID = uuid.NewString()
}
