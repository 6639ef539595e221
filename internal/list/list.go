package list

import (
	"encoding/json"
	"fmt"
)

// List is the document aggregate: a color plus an ordered sequence of
// items. It is the serialization source of truth for a single document.
type List struct {
	Color Color   `json:"color"`
	Items []*Item `json:"items"`
}

// New creates an empty gray list.
func New() *List {
	return &List{Color: ColorGray}
}

// NewList creates a list from a color and items. Items are deep-copied so
// the caller's slice can be mutated freely afterwards; identities are
// preserved by the copy.
func NewList(color Color, items []*Item) *List {
	l := &List{Color: color, Items: make([]*Item, len(items))}
	for i, it := range items {
		l.Items[i] = it.Copy()
	}
	return l
}

// Equal reports whether both lists have the same color and the same items
// in the same order, items compared by identity.
func (l *List) Equal(other *List) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.Color != other.Color || len(l.Items) != len(other.Items) {
		return false
	}
	for i, it := range l.Items {
		if !it.Equal(other.Items[i]) {
			return false
		}
	}
	return true
}

// IndexOf returns the position of item in the list by identity, or -1.
func (l *List) IndexOf(item *Item) int {
	for i, it := range l.Items {
		if it.Equal(item) {
			return i
		}
	}
	return -1
}

// Copy returns a deep copy of the list. Item identities are preserved.
func (l *List) Copy() *List {
	return NewList(l.Color, l.Items)
}

// MarshalDocument encodes the list in the on-disk document format.
func MarshalDocument(l *List) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode list document: %w", err)
	}
	return append(data, '\n'), nil
}

// UnmarshalDocument decodes a list document, validating the color and
// rejecting items without an identity. A nil items array decodes to an
// empty list rather than an error so empty documents round-trip.
func UnmarshalDocument(data []byte) (*List, error) {
	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse list document: %w", err)
	}
	if !l.Color.Valid() {
		return nil, fmt.Errorf("list document has invalid color %d", int(l.Color))
	}
	for i, it := range l.Items {
		if it == nil || it.ID == "" {
			return nil, fmt.Errorf("list document item %d has no identity", i)
		}
	}
	if l.Items == nil {
		l.Items = []*Item{}
	}
	return &l, nil
}
