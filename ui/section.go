package ui

import (
	"fmt"
	"slices"

	"github.com/itchan-dev/chatkit/shared/api"
	"github.com/itchan-dev/chatkit/shared/domain"
	sharederrors "github.com/itchan-dev/chatkit/shared/errors"
	"github.com/itchan-dev/chatkit/shared/validation"
)

// Section shows up to api.MaxSectionChildren text displays with a thumbnail accessory
// on the right.
type Section struct {
	baseItem
	id        *domain.ComponentId
	children  []Item
	accessory Item
}

var _ Item = (*Section)(nil)

// NewSection builds a section. accessory may be nil and set later, but Validate
// requires one.
func NewSection(accessory Item, children []Item, opts ...Option) (*Section, error) {
	o := applyOptions(opts)
	s := &Section{
		baseItem: baseItem{row: o.row},
		id:       o.id,
	}
	if accessory != nil {
		if err := s.SetAccessory(accessory); err != nil {
			return nil, err
		}
	}
	for _, child := range children {
		if err := s.Add(child); err != nil {
			s.detachAll()
			return nil, err
		}
	}
	return s, nil
}

// SectionFromComponent rebuilds a section, its text displays and its accessory.
func SectionFromComponent(c *api.SectionComponent) (*Section, error) {
	var opts []Option
	if c.Id != nil {
		opts = append(opts, WithID(*c.Id))
	}

	var accessory Item
	if c.Accessory != nil {
		item, err := ComponentToItem(c.Accessory)
		if err != nil {
			return nil, fmt.Errorf("section accessory: %w", err)
		}
		accessory = item
	}

	children := make([]Item, 0, len(c.Components))
	for i, child := range c.Components {
		item, err := ComponentToItem(child)
		if err != nil {
			return nil, fmt.Errorf("section child %d: %w", i, err)
		}
		children = append(children, item)
	}
	return NewSection(accessory, children, opts...)
}

func (s *Section) Type() domain.ComponentType {
	return domain.ComponentTypeSection
}

func (s *Section) Width() int {
	return 5
}

// Add appends a text display.
func (s *Section) Add(item Item) error {
	if _, ok := item.(*TextDisplay); !ok {
		return fmt.Errorf("%w: got %s", ErrNotTextDisplay, item.Type())
	}
	if len(s.children) >= api.MaxSectionChildren {
		return fmt.Errorf("%w: limit is %d", ErrTooManyChildren, api.MaxSectionChildren)
	}
	if err := adopt(s, item); err != nil {
		return err
	}
	s.children = append(s.children, item)
	return nil
}

// AddText appends a new text display holding content.
func (s *Section) AddText(content string, opts ...Option) (*TextDisplay, error) {
	td := NewTextDisplay(content, opts...)
	if err := s.Add(td); err != nil {
		return nil, err
	}
	return td, nil
}

// Remove detaches a text display. Removing an item that is not a child is a no-op.
func (s *Section) Remove(item Item) {
	if item.base().parent != holder(s) || item == s.accessory {
		return
	}
	release(item)
	s.children = slices.DeleteFunc(s.children, func(i Item) bool { return i == item })
}

// Children returns a copy of the text displays.
func (s *Section) Children() []Item {
	out := make([]Item, len(s.children))
	copy(out, s.children)
	return out
}

func (s *Section) Accessory() Item {
	return s.accessory
}

// SetAccessory replaces the accessory, detaching the previous one. nil removes it.
func (s *Section) SetAccessory(accessory Item) error {
	if accessory != nil {
		if _, ok := accessory.(*Thumbnail); !ok {
			return fmt.Errorf("%w: got %s", ErrInvalidAccessory, accessory.Type())
		}
		if accessory == s.accessory {
			return nil
		}
		if err := adopt(s, accessory); err != nil {
			return err
		}
	}
	if s.accessory != nil {
		release(s.accessory)
	}
	s.accessory = accessory
	return nil
}

func (s *Section) ToComponentDict() map[string]any {
	children := make([]api.Component, 0, len(s.children))
	for _, child := range s.children {
		children = append(children, dictComponent{child})
	}
	c := &api.SectionComponent{
		Type:       domain.ComponentTypeSection,
		Id:         s.id,
		Components: children,
	}
	if s.accessory != nil {
		c.Accessory = dictComponent{s.accessory}
	}
	return c.ToDict()
}

func (s *Section) Validate() error {
	if err := validation.Row(s.row); err != nil {
		return fmt.Errorf("section component: %w", err)
	}
	if n := len(s.children); n == 0 || n > api.MaxSectionChildren {
		return fmt.Errorf("section component: %w", &sharederrors.ValidationError{
			Field:   "components",
			Message: fmt.Sprintf("must hold 1 to %d text displays", api.MaxSectionChildren),
		})
	}
	if s.accessory == nil {
		return fmt.Errorf("section component: %w", &sharederrors.ValidationError{
			Field:   "accessory",
			Message: "is required",
		})
	}
	for i, child := range s.children {
		if err := child.Validate(); err != nil {
			return fmt.Errorf("section child %d: %w", i, err)
		}
	}
	if err := s.accessory.Validate(); err != nil {
		return fmt.Errorf("section accessory: %w", err)
	}
	return nil
}

// detachAll releases the children and the accessory so a failed build leaves them reusable.
func (s *Section) detachAll() {
	for _, item := range s.items() {
		release(item)
	}
	s.children = nil
	s.accessory = nil
}

func (s *Section) items() []Item {
	out := s.Children()
	if s.accessory != nil {
		out = append(out, s.accessory)
	}
	return out
}
