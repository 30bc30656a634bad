package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/itchan-dev/chatkit/shared/domain"
	sharederrors "github.com/itchan-dev/chatkit/shared/errors"
	"github.com/itchan-dev/chatkit/shared/validation"
)

// ErrUnknownComponentType is returned for discriminants this package has no payload type for
var ErrUnknownComponentType = errors.New("unknown component type")

// ErrTypeMismatch is returned when a payload's "type" disagrees with the decoded payload type
var ErrTypeMismatch = errors.New("component type mismatch")

// DecodeComponent parses one component payload, dispatching on its "type" discriminant.
func DecodeComponent(raw []byte) (Component, error) {
	var head struct {
		Type domain.ComponentType `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("failed to parse component JSON: %w", err)
	}

	var c Component
	switch head.Type {
	case domain.ComponentTypeFile:
		c = &FileComponent{}
	case domain.ComponentTypeThumbnail:
		c = &ThumbnailComponent{}
	case domain.ComponentTypeTextDisplay:
		c = &TextDisplayComponent{}
	case domain.ComponentTypeContainer:
		c = &ContainerComponent{}
	case domain.ComponentTypeSection:
		c = &SectionComponent{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponentType, head.Type)
	}

	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("failed to parse %s component: %w", head.Type, err)
	}
	return c, nil
}

// DecodeComponents parses a JSON array of component payloads.
func DecodeComponents(raw []byte) ([]Component, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse components array: %w", err)
	}
	components := make([]Component, 0, len(items))
	for i, item := range items {
		c, err := DecodeComponent(item)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		components = append(components, c)
	}
	return components, nil
}

// Validate checks the payload's struct tags and, for containers and sections, every child.
func Validate(c Component) error {
	if err := checkType(c); err != nil {
		return err
	}
	if err := validation.Struct(c); err != nil {
		return err
	}
	if section, ok := c.(*SectionComponent); ok {
		if err := validateSection(section); err != nil {
			return err
		}
	}
	if container, ok := c.(*ContainerComponent); ok {
		if len(container.Children) > MaxContainerChildren {
			return &sharederrors.ValidationError{
				Field:   "components",
				Message: fmt.Sprintf("must be at most %d", MaxContainerChildren),
			}
		}
		for i, child := range container.Children {
			if err := Validate(child); err != nil {
				return fmt.Errorf("container child %d: %w", i, err)
			}
		}
	}
	return nil
}

func validateSection(s *SectionComponent) error {
	if n := len(s.Components); n == 0 || n > MaxSectionChildren {
		return &sharederrors.ValidationError{
			Field:   "components",
			Message: fmt.Sprintf("must hold 1 to %d text displays", MaxSectionChildren),
		}
	}
	for i, child := range s.Components {
		if child.ComponentType() != domain.ComponentTypeTextDisplay {
			return &sharederrors.ValidationError{
				Field:   fmt.Sprintf("components[%d]", i),
				Message: "must be a text display, got " + child.ComponentType().String(),
			}
		}
		if err := Validate(child); err != nil {
			return fmt.Errorf("section child %d: %w", i, err)
		}
	}
	if s.Accessory == nil {
		return &sharederrors.ValidationError{Field: "accessory", Message: "is required"}
	}
	if s.Accessory.ComponentType() != domain.ComponentTypeThumbnail {
		return &sharederrors.ValidationError{
			Field:   "accessory",
			Message: "must be a thumbnail, got " + s.Accessory.ComponentType().String(),
		}
	}
	if err := Validate(s.Accessory); err != nil {
		return fmt.Errorf("section accessory: %w", err)
	}
	return nil
}

// checkType tolerates a zero Type field so hand-built payloads validate.
func checkType(c Component) error {
	var declared domain.ComponentType
	switch v := c.(type) {
	case *FileComponent:
		declared = v.Type
	case *ThumbnailComponent:
		declared = v.Type
	case *TextDisplayComponent:
		declared = v.Type
	case *ContainerComponent:
		declared = v.Type
	case *SectionComponent:
		declared = v.Type
	}
	if declared != 0 && declared != c.ComponentType() {
		return fmt.Errorf("%w: payload says %s, expected %s", ErrTypeMismatch, declared, c.ComponentType())
	}
	return nil
}
