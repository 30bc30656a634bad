package ui

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/itchan-dev/chatkit/shared/api"
	"github.com/itchan-dev/chatkit/shared/logger"
	"github.com/itchan-dev/chatkit/shared/validation"
)

const (
	// MaxViewChildren is the limit on top-level items in one view.
	MaxViewChildren = 40
	// RowWidth is the total item width a single row can hold.
	RowWidth = 5
	rowCount = validation.MaxRow + 1
)

// LayoutView is an ordered set of items sent with one message.
type LayoutView struct {
	id       string
	children []Item
	weights  [rowCount]int
	placed   map[*baseItem]placement
}

type placement struct {
	row   int
	width int
}

func NewLayoutView(items ...Item) (*LayoutView, error) {
	v := &LayoutView{
		id:     strings.ReplaceAll(uuid.NewString(), "-", ""),
		placed: make(map[*baseItem]placement),
	}
	for _, item := range items {
		if err := v.Add(item); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// LayoutViewFromComponents decodes a JSON component array into a view.
func LayoutViewFromComponents(raw []byte) (*LayoutView, error) {
	components, err := api.DecodeComponents(raw)
	if err != nil {
		return nil, err
	}
	v, err := NewLayoutView()
	if err != nil {
		return nil, err
	}
	for i, c := range components {
		item, err := ComponentToItem(c)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		if err := v.Add(item); err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
	}
	return v, nil
}

// ID is a random 32 character hex identifier.
func (v *LayoutView) ID() string {
	return v.id
}

// Add places item in its requested row, or the first row with room when it has none.
// Items that already belong to a view, container or section are refused.
func (v *LayoutView) Add(item Item) error {
	if len(v.children) >= MaxViewChildren {
		return fmt.Errorf("%w: limit is %d", ErrViewFull, MaxViewChildren)
	}
	if item.base().attached() {
		return ErrAlreadyAttached
	}

	width := item.Width()
	row, err := v.findRow(item.Row(), width)
	if err != nil {
		return err
	}

	v.weights[row] += width
	v.placed[item.base()] = placement{row: row, width: width}
	v.children = append(v.children, item)
	setItemView(item, v)
	logger.Log.Debug("item added to view", "view", v.id, "type", item.Type().String(), "row", row)
	return nil
}

func (v *LayoutView) findRow(hint *int, width int) (int, error) {
	if hint != nil {
		if err := validation.Row(hint); err != nil {
			return 0, err
		}
		if v.weights[*hint]+width > RowWidth {
			return 0, fmt.Errorf("%w: row %d has %d of %d width left", ErrRowFull, *hint, RowWidth-v.weights[*hint], RowWidth)
		}
		return *hint, nil
	}
	for row, used := range v.weights {
		if used+width <= RowWidth {
			return row, nil
		}
	}
	return 0, fmt.Errorf("%w: no row can fit an item of width %d", ErrRowFull, width)
}

// move re-places a top-level item after its row hint changed. On error the old
// placement is kept.
func (v *LayoutView) move(b *baseItem, hint *int) error {
	p, ok := v.placed[b]
	if !ok {
		return nil
	}
	v.weights[p.row] -= p.width
	row, err := v.findRow(hint, p.width)
	if err != nil {
		v.weights[p.row] += p.width
		return err
	}
	v.weights[row] += p.width
	v.placed[b] = placement{row: row, width: p.width}
	return nil
}

// Remove detaches item from the view. Removing an item that is not in the view is a no-op.
func (v *LayoutView) Remove(item Item) {
	p, ok := v.placed[item.base()]
	if !ok {
		return
	}
	v.weights[p.row] -= p.width
	delete(v.placed, item.base())
	v.children = slices.DeleteFunc(v.children, func(i Item) bool { return i == item })
	setItemView(item, nil)
}

// Clear removes every item.
func (v *LayoutView) Clear() {
	for _, item := range v.Children() {
		v.Remove(item)
	}
}

// Children returns the items in insertion order.
func (v *LayoutView) Children() []Item {
	out := make([]Item, len(v.children))
	copy(out, v.children)
	return out
}

func (v *LayoutView) Len() int {
	return len(v.children)
}

// Rows groups the items by the row they were placed in. Empty rows are skipped.
func (v *LayoutView) Rows() [][]Item {
	var grouped [rowCount][]Item
	for _, item := range v.children {
		row := v.placed[item.base()].row
		grouped[row] = append(grouped[row], item)
	}
	var rows [][]Item
	for _, items := range grouped {
		if len(items) > 0 {
			rows = append(rows, items)
		}
	}
	return rows
}

// ToComponents serializes the items in insertion order. Row hints are not sent.
func (v *LayoutView) ToComponents() []map[string]any {
	out := make([]map[string]any, 0, len(v.children))
	for _, item := range v.children {
		out = append(out, item.ToComponentDict())
	}
	return out
}

func (v *LayoutView) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToComponents())
}

// Validate validates every item, stopping at the first failure.
func (v *LayoutView) Validate() error {
	for i, item := range v.children {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("view item %d: %w", i, err)
		}
	}
	return nil
}
