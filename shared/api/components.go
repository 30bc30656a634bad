package api

import (
	"encoding/json"
	"fmt"

	"github.com/itchan-dev/chatkit/shared/domain"
)

// Component is a decoded layout component payload.
type Component interface {
	ComponentType() domain.ComponentType
	ToDict() map[string]any
}

// Interface satisfaction checks
var (
	_ Component = (*FileComponent)(nil)
	_ Component = (*ThumbnailComponent)(nil)
	_ Component = (*TextDisplayComponent)(nil)
	_ Component = (*ContainerComponent)(nil)
	_ Component = (*SectionComponent)(nil)
)

func withId(base map[string]any, id *domain.ComponentId) map[string]any {
	if id != nil {
		base["id"] = *id
	}
	return base
}

// FileComponent is the wire payload of a file component.
type FileComponent struct {
	Type    domain.ComponentType      `json:"type"`
	Id      *domain.ComponentId       `json:"id,omitempty"`
	Media   *domain.UnfurledMediaItem `json:"file" validate:"required"`
	Spoiler bool                      `json:"spoiler"`
	// Name and Size are filled by the platform on received components.
	Name string `json:"name,omitempty"`
	Size int64  `json:"size,omitempty"`
}

// NewFileComponent builds an outgoing payload without validating it.
func NewFileComponent(media *domain.UnfurledMediaItem, spoiler bool) *FileComponent {
	return &FileComponent{
		Type:    domain.ComponentTypeFile,
		Media:   media,
		Spoiler: spoiler,
	}
}

func (c *FileComponent) ComponentType() domain.ComponentType {
	return domain.ComponentTypeFile
}

func (c *FileComponent) ToDict() map[string]any {
	base := map[string]any{
		"type":    int(domain.ComponentTypeFile),
		"spoiler": c.Spoiler,
	}
	if c.Media != nil {
		base["file"] = c.Media.ToDict()
	}
	return withId(base, c.Id)
}

// ThumbnailComponent is the wire payload of a thumbnail shown as a section accessory.
type ThumbnailComponent struct {
	Type        domain.ComponentType      `json:"type"`
	Id          *domain.ComponentId       `json:"id,omitempty"`
	Media       *domain.UnfurledMediaItem `json:"media" validate:"required"`
	Description *string                   `json:"description,omitempty" validate:"omitempty,max=1024"`
	Spoiler     bool                      `json:"spoiler"`
}

func (c *ThumbnailComponent) ComponentType() domain.ComponentType {
	return domain.ComponentTypeThumbnail
}

func (c *ThumbnailComponent) ToDict() map[string]any {
	base := map[string]any{
		"type":    int(domain.ComponentTypeThumbnail),
		"spoiler": c.Spoiler,
	}
	if c.Media != nil {
		base["media"] = c.Media.ToDict()
	}
	if c.Description != nil {
		base["description"] = *c.Description
	}
	return withId(base, c.Id)
}

// TextDisplayComponent is the wire payload of a markdown text block.
type TextDisplayComponent struct {
	Type    domain.ComponentType `json:"type"`
	Id      *domain.ComponentId  `json:"id,omitempty"`
	Content string               `json:"content" validate:"required,max=4000"`
}

func (c *TextDisplayComponent) ComponentType() domain.ComponentType {
	return domain.ComponentTypeTextDisplay
}

func (c *TextDisplayComponent) ToDict() map[string]any {
	return withId(map[string]any{
		"type":    int(domain.ComponentTypeTextDisplay),
		"content": c.Content,
	}, c.Id)
}

// MaxContainerChildren is the platform limit on components nested in one container.
const MaxContainerChildren = 10

// ContainerComponent groups child components behind an optional accent colour.
type ContainerComponent struct {
	Type        domain.ComponentType `json:"type"`
	Id          *domain.ComponentId  `json:"id,omitempty"`
	AccentColor *int                 `json:"accent_color,omitempty" validate:"omitempty,min=0,max=16777215"`
	Spoiler     bool                 `json:"spoiler"`
	Children    []Component          `json:"-"`
}

func (c *ContainerComponent) ComponentType() domain.ComponentType {
	return domain.ComponentTypeContainer
}

func (c *ContainerComponent) ToDict() map[string]any {
	children := make([]map[string]any, 0, len(c.Children))
	for _, child := range c.Children {
		children = append(children, child.ToDict())
	}
	base := map[string]any{
		"type":       int(domain.ComponentTypeContainer),
		"spoiler":    c.Spoiler,
		"components": children,
	}
	if c.AccentColor != nil {
		base["accent_color"] = *c.AccentColor
	} else {
		base["accent_color"] = nil
	}
	return withId(base, c.Id)
}

func (c *ContainerComponent) UnmarshalJSON(data []byte) error {
	var aux struct {
		Type        domain.ComponentType `json:"type"`
		Id          *domain.ComponentId  `json:"id"`
		AccentColor *int                 `json:"accent_color"`
		Spoiler     bool                 `json:"spoiler"`
		Components  []json.RawMessage    `json:"components"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	children := make([]Component, 0, len(aux.Components))
	for i, raw := range aux.Components {
		child, err := DecodeComponent(raw)
		if err != nil {
			return fmt.Errorf("container child %d: %w", i, err)
		}
		children = append(children, child)
	}

	*c = ContainerComponent{
		Type:        aux.Type,
		Id:          aux.Id,
		AccentColor: aux.AccentColor,
		Spoiler:     aux.Spoiler,
		Children:    children,
	}
	return nil
}

func (c *ContainerComponent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToDict())
}

// MaxSectionChildren is the platform limit on text displays in one section.
const MaxSectionChildren = 3

// SectionComponent shows up to three text displays next to an accessory.
type SectionComponent struct {
	Type       domain.ComponentType `json:"type"`
	Id         *domain.ComponentId  `json:"id,omitempty"`
	Components []Component          `json:"-"`
	Accessory  Component            `json:"-"`
}

func (c *SectionComponent) ComponentType() domain.ComponentType {
	return domain.ComponentTypeSection
}

func (c *SectionComponent) ToDict() map[string]any {
	children := make([]map[string]any, 0, len(c.Components))
	for _, child := range c.Components {
		children = append(children, child.ToDict())
	}
	base := map[string]any{
		"type":       int(domain.ComponentTypeSection),
		"components": children,
	}
	if c.Accessory != nil {
		base["accessory"] = c.Accessory.ToDict()
	}
	return withId(base, c.Id)
}

func (c *SectionComponent) UnmarshalJSON(data []byte) error {
	var aux struct {
		Type       domain.ComponentType `json:"type"`
		Id         *domain.ComponentId  `json:"id"`
		Components []json.RawMessage    `json:"components"`
		Accessory  json.RawMessage      `json:"accessory"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	children := make([]Component, 0, len(aux.Components))
	for i, raw := range aux.Components {
		child, err := DecodeComponent(raw)
		if err != nil {
			return fmt.Errorf("section child %d: %w", i, err)
		}
		children = append(children, child)
	}

	var accessory Component
	if len(aux.Accessory) > 0 && string(aux.Accessory) != "null" {
		a, err := DecodeComponent(aux.Accessory)
		if err != nil {
			return fmt.Errorf("section accessory: %w", err)
		}
		accessory = a
	}

	*c = SectionComponent{
		Type:       aux.Type,
		Id:         aux.Id,
		Components: children,
		Accessory:  accessory,
	}
	return nil
}

func (c *SectionComponent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToDict())
}
