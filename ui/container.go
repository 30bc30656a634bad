package ui

import (
	"fmt"
	"slices"

	"github.com/itchan-dev/chatkit/shared/api"
	"github.com/itchan-dev/chatkit/shared/domain"
	"github.com/itchan-dev/chatkit/shared/validation"
)

// Container groups up to api.MaxContainerChildren items behind an optional accent colour.
type Container struct {
	baseItem
	id          *domain.ComponentId
	accentColor *int
	spoiler     bool
	children    []Item
}

var _ Item = (*Container)(nil)

func NewContainer(children []Item, opts ...Option) (*Container, error) {
	o := applyOptions(opts)
	c := &Container{
		baseItem:    baseItem{row: o.row},
		id:          o.id,
		accentColor: o.accentColor,
		spoiler:     o.spoiler,
	}
	for _, child := range children {
		if err := c.Add(child); err != nil {
			c.detachAll()
			return nil, err
		}
	}
	return c, nil
}

// ContainerFromComponent rebuilds a container and its children from a received payload.
func ContainerFromComponent(c *api.ContainerComponent) (*Container, error) {
	opts := []Option{WithSpoiler(c.Spoiler)}
	if c.Id != nil {
		opts = append(opts, WithID(*c.Id))
	}
	if c.AccentColor != nil {
		opts = append(opts, WithAccentColor(*c.AccentColor))
	}

	children := make([]Item, 0, len(c.Children))
	for i, child := range c.Children {
		item, err := ComponentToItem(child)
		if err != nil {
			return nil, fmt.Errorf("container child %d: %w", i, err)
		}
		children = append(children, item)
	}
	return NewContainer(children, opts...)
}

func (c *Container) Type() domain.ComponentType {
	return domain.ComponentTypeContainer
}

func (c *Container) Width() int {
	return 5
}

// Add appends a child. Containers cannot be nested, and an item already in a view or
// another parent is refused with ErrAlreadyAttached.
func (c *Container) Add(item Item) error {
	if len(c.children) >= api.MaxContainerChildren {
		return fmt.Errorf("%w: limit is %d", ErrTooManyChildren, api.MaxContainerChildren)
	}
	if _, ok := item.(*Container); ok {
		return ErrNestedContainer
	}
	if err := adopt(c, item); err != nil {
		return err
	}
	c.children = append(c.children, item)
	return nil
}

// Remove detaches a child. Removing an item that is not a child is a no-op.
func (c *Container) Remove(item Item) {
	if item.base().parent != holder(c) {
		return
	}
	release(item)
	c.children = slices.DeleteFunc(c.children, func(i Item) bool { return i == item })
}

// Children returns a copy of the child list.
func (c *Container) Children() []Item {
	out := make([]Item, len(c.children))
	copy(out, c.children)
	return out
}

func (c *Container) AccentColor() *int {
	return c.accentColor
}

// SetAccentColor sets the 0xRRGGBB accent colour; nil removes it.
func (c *Container) SetAccentColor(rgb *int) {
	c.accentColor = rgb
}

func (c *Container) Spoiler() bool {
	return c.spoiler
}

func (c *Container) SetSpoiler(spoiler bool) {
	c.spoiler = spoiler
}

func (c *Container) ToComponentDict() map[string]any {
	return c.component().ToDict()
}

func (c *Container) component() *api.ContainerComponent {
	children := make([]api.Component, 0, len(c.children))
	for _, child := range c.children {
		children = append(children, dictComponent{child})
	}
	return &api.ContainerComponent{
		Type:        domain.ComponentTypeContainer,
		Id:          c.id,
		AccentColor: c.accentColor,
		Spoiler:     c.spoiler,
		Children:    children,
	}
}

func (c *Container) Validate() error {
	if err := validation.Row(c.row); err != nil {
		return fmt.Errorf("container component: %w", err)
	}
	if len(c.children) > api.MaxContainerChildren {
		return fmt.Errorf("container component: %w", ErrTooManyChildren)
	}
	if err := validation.Struct(c.component()); err != nil {
		return fmt.Errorf("container component: %w", err)
	}
	for i, child := range c.children {
		if err := child.Validate(); err != nil {
			return fmt.Errorf("container child %d: %w", i, err)
		}
	}
	return nil
}

// detachAll releases every child so a failed build leaves them reusable.
func (c *Container) detachAll() {
	for _, child := range c.children {
		release(child)
	}
	c.children = nil
}

func (c *Container) items() []Item {
	return c.children
}

// dictComponent adapts an Item to api.Component for nesting.
type dictComponent struct {
	item Item
}

func (d dictComponent) ComponentType() domain.ComponentType {
	return d.item.Type()
}

func (d dictComponent) ToDict() map[string]any {
	return d.item.ToComponentDict()
}
