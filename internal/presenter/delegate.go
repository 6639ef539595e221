// Package presenter owns the presentation engines that project a list for
// display. A presenter holds the authoritative list, mutates it in response
// to explicit operations or whole-list replacement, and reports every
// structural change to a registered Delegate as discrete notifications.
package presenter

import (
	"github.com/cdoyle/lister-tui/internal/list"
)

// Delegate receives change notifications from a presenter. Every
// notification except FullRefresh occurs strictly between one matched
// WillChange/DidChange pair; brackets never nest. The initial flag is true
// only for changes originating from a whole-list Replace, false for direct
// user operations.
//
// All methods are required. Embed NopDelegate to ignore events you don't
// care about.
type Delegate interface {
	// FullRefresh means the presented items changed wholesale; re-read
	// everything from the presenter. Delivered unbracketed.
	FullRefresh()

	WillChange(initial bool)
	DidChange(initial bool)

	ItemInserted(item *list.Item, index int)
	ItemRemoved(item *list.Item, index int)
	ItemUpdated(item *list.Item, index int)
	ItemMoved(item *list.Item, from, to int)
	ColorChanged(color list.Color)
}

// NopDelegate implements Delegate with no-ops.
type NopDelegate struct{}

func (NopDelegate) FullRefresh()                       {}
func (NopDelegate) WillChange(bool)                    {}
func (NopDelegate) DidChange(bool)                     {}
func (NopDelegate) ItemInserted(*list.Item, int)       {}
func (NopDelegate) ItemRemoved(*list.Item, int)        {}
func (NopDelegate) ItemUpdated(*list.Item, int)        {}
func (NopDelegate) ItemMoved(*list.Item, int, int)     {}
func (NopDelegate) ColorChanged(list.Color)            {}

var _ Delegate = NopDelegate{}
