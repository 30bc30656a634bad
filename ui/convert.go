package ui

import (
	"fmt"

	"github.com/itchan-dev/chatkit/shared/api"
)

// ComponentToItem turns a decoded payload into its Item.
func ComponentToItem(c api.Component) (Item, error) {
	switch v := c.(type) {
	case *api.FileComponent:
		return FileFromComponent(v), nil
	case *api.ThumbnailComponent:
		return ThumbnailFromComponent(v), nil
	case *api.TextDisplayComponent:
		return TextDisplayFromComponent(v), nil
	case *api.ContainerComponent:
		container, err := ContainerFromComponent(v)
		if err != nil {
			return nil, err
		}
		return container, nil
	case *api.SectionComponent:
		section, err := SectionFromComponent(v)
		if err != nil {
			return nil, err
		}
		return section, nil
	}
	return nil, fmt.Errorf("%w: %s", api.ErrUnknownComponentType, c.ComponentType())
}
