// Package ui provides the layout components a message is built from.
package ui

import (
	"github.com/itchan-dev/chatkit/shared/domain"
)

// Item is one component placed in a LayoutView, directly or inside a Container or Section.
type Item interface {
	Type() domain.ComponentType
	// Width is the layout weight used when packing items into rows of RowWidth.
	Width() int
	Row() *int
	SetRow(row *int) error
	IsV2() bool
	View() *LayoutView
	ToComponentDict() map[string]any
	Validate() error

	base() *baseItem
}

// holder is an item that owns nested items.
type holder interface {
	Item
	items() []Item
}

// baseItem carries the row hint and ownership bookkeeping shared by all items.
// An item belongs to at most one parent: a view (top level) or a holder.
type baseItem struct {
	row    *int
	view   *LayoutView
	parent holder
}

// Row returns the requested row, or nil for automatic placement.
func (b *baseItem) Row() *int {
	return copyRow(b.row)
}

// SetRow changes the row hint. On an item placed at the top level of a view the item
// is moved right away, and the hint is left unchanged when the new row is out of range
// or lacks the width. Nested items are not placed by rows, so their hint is only stored.
func (b *baseItem) SetRow(row *int) error {
	if b.view != nil && b.parent == nil {
		if err := b.view.move(b, row); err != nil {
			return err
		}
	}
	b.row = copyRow(row)
	return nil
}

func (b *baseItem) View() *LayoutView {
	return b.view
}

func (b *baseItem) IsV2() bool {
	return true
}

func (b *baseItem) base() *baseItem {
	return b
}

func (b *baseItem) attached() bool {
	return b.view != nil || b.parent != nil
}

func copyRow(row *int) *int {
	if row == nil {
		return nil
	}
	r := *row
	return &r
}

// setItemView points item and everything nested in it at v.
func setItemView(item Item, v *LayoutView) {
	item.base().view = v
	if h, ok := item.(holder); ok {
		for _, child := range h.items() {
			setItemView(child, v)
		}
	}
}

// adopt makes h the parent of item. Items that already belong somewhere are refused.
func adopt(h holder, item Item) error {
	if item.base().attached() {
		return ErrAlreadyAttached
	}
	item.base().parent = h
	setItemView(item, h.View())
	return nil
}

// release undoes adopt.
func release(item Item) {
	item.base().parent = nil
	setItemView(item, nil)
}
