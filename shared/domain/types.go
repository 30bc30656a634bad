package domain

import "fmt"

type (
	Snowflake   = int64
	ComponentId = int
	Filename    = string
	MediaURL    = string
)

// ComponentType is the discriminant carried in the "type" field of every component payload.
type ComponentType int

const (
	ComponentTypeActionRow         ComponentType = 1
	ComponentTypeButton            ComponentType = 2
	ComponentTypeStringSelect      ComponentType = 3
	ComponentTypeTextInput         ComponentType = 4
	ComponentTypeUserSelect        ComponentType = 5
	ComponentTypeRoleSelect        ComponentType = 6
	ComponentTypeMentionableSelect ComponentType = 7
	ComponentTypeChannelSelect     ComponentType = 8
	ComponentTypeSection           ComponentType = 9
	ComponentTypeTextDisplay       ComponentType = 10
	ComponentTypeThumbnail         ComponentType = 11
	ComponentTypeMediaGallery      ComponentType = 12
	ComponentTypeFile              ComponentType = 13
	ComponentTypeSeparator         ComponentType = 14
	ComponentTypeContainer         ComponentType = 17
)

var componentTypeNames = map[ComponentType]string{
	ComponentTypeActionRow:         "action_row",
	ComponentTypeButton:            "button",
	ComponentTypeStringSelect:      "string_select",
	ComponentTypeTextInput:         "text_input",
	ComponentTypeUserSelect:        "user_select",
	ComponentTypeRoleSelect:        "role_select",
	ComponentTypeMentionableSelect: "mentionable_select",
	ComponentTypeChannelSelect:     "channel_select",
	ComponentTypeSection:           "section",
	ComponentTypeTextDisplay:       "text_display",
	ComponentTypeThumbnail:         "thumbnail",
	ComponentTypeMediaGallery:      "media_gallery",
	ComponentTypeFile:              "file",
	ComponentTypeSeparator:         "separator",
	ComponentTypeContainer:         "container",
}

func (t ComponentType) String() string {
	if name, ok := componentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// Valid reports whether t belongs to the closed set of known component types.
func (t ComponentType) Valid() bool {
	_, ok := componentTypeNames[t]
	return ok
}

// IsV2 reports whether t may only appear in layout (v2) messages.
func (t ComponentType) IsV2() bool {
	switch t {
	case ComponentTypeSection, ComponentTypeTextDisplay, ComponentTypeThumbnail,
		ComponentTypeMediaGallery, ComponentTypeFile, ComponentTypeSeparator, ComponentTypeContainer:
		return true
	}
	return false
}

// MediaLoadingState is the platform's cache state of an unfurled media item.
type MediaLoadingState int

const (
	MediaLoadingStateUnknown       MediaLoadingState = 0
	MediaLoadingStateLoading       MediaLoadingState = 1
	MediaLoadingStateLoadedSuccess MediaLoadingState = 2
	MediaLoadingStateNotFound      MediaLoadingState = 3
)

func (s MediaLoadingState) String() string {
	switch s {
	case MediaLoadingStateLoading:
		return "loading"
	case MediaLoadingStateLoadedSuccess:
		return "loaded_success"
	case MediaLoadingStateNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// AttachmentFlags is the bit set sent in an attachment's "flags" field.
type AttachmentFlags int

const (
	AttachmentFlagClip      AttachmentFlags = 1 << 0
	AttachmentFlagThumbnail AttachmentFlags = 1 << 1
	AttachmentFlagRemix     AttachmentFlags = 1 << 2
	AttachmentFlagSpoiler   AttachmentFlags = 1 << 3
	AttachmentFlagExplicit  AttachmentFlags = 1 << 4
	AttachmentFlagAnimated  AttachmentFlags = 1 << 5
)

func (f AttachmentFlags) Has(flag AttachmentFlags) bool {
	return f&flag == flag
}
