package domain

import "strings"

// SpoilerPrefix marks an uploaded file name as a spoiler.
const SpoilerPrefix = "SPOILER_"

// AttachmentBase holds the fields shared by message attachments and unfurled attachments.
type AttachmentBase struct {
	URL         MediaURL        `json:"url"`
	ProxyURL    string          `json:"proxy_url"`
	Description string          `json:"description,omitempty"`
	Spoiler     bool            `json:"spoiler,omitempty"`
	Height      *int            `json:"height,omitempty"`
	Width       *int            `json:"width,omitempty"`
	ContentType string          `json:"content_type,omitempty"`
	Flags       AttachmentFlags `json:"flags,omitempty"`
}

func (a *AttachmentBase) String() string {
	return a.URL
}

// ToDict mirrors the platform payload, leaving out unset dimensions and description.
func (a *AttachmentBase) ToDict() map[string]any {
	base := map[string]any{
		"url":       a.URL,
		"proxy_url": a.ProxyURL,
		"spoiler":   a.Spoiler,
	}
	if a.Width != nil && *a.Width != 0 {
		base["width"] = *a.Width
	}
	if a.Height != nil && *a.Height != 0 {
		base["height"] = *a.Height
	}
	if a.Description != "" {
		base["description"] = a.Description
	}
	return base
}

// Attachment is a file attached to a received message.
type Attachment struct {
	AttachmentBase
	Id        Snowflake `json:"id,string"`
	Filename  Filename  `json:"filename"`
	Size      int64     `json:"size"`
	Ephemeral bool      `json:"ephemeral,omitempty"`
	Duration  *float64  `json:"duration_secs,omitempty"` // set only for voice messages
	Waveform  string    `json:"waveform,omitempty"`
	Title     string    `json:"title,omitempty"`
}

// IsSpoiler uses both the payload flag and the legacy file name prefix.
func (a *Attachment) IsSpoiler() bool {
	return a.Spoiler || a.Flags.Has(AttachmentFlagSpoiler) || strings.HasPrefix(a.Filename, SpoilerPrefix)
}

func (a *Attachment) IsVoiceMessage() bool {
	return a.Duration != nil && strings.Contains(a.URL, "voice-message")
}

func (a *Attachment) ToDict() map[string]any {
	result := a.AttachmentBase.ToDict()
	result["id"] = a.Id
	result["filename"] = a.Filename
	result["size"] = a.Size
	return result
}

// UnfurledAttachment is an attachment resolved inside a received component.
type UnfurledAttachment struct {
	AttachmentBase
	LoadingState MediaLoadingState `json:"loading_state,omitempty"`
}

// ToObjectDict is the minimal reference form used when echoing the attachment back.
func (a *UnfurledAttachment) ToObjectDict() map[string]any {
	return map[string]any{"url": a.URL}
}

// MediaItem converts the attachment into a media reference carrying its metadata.
func (a *UnfurledAttachment) MediaItem() *UnfurledMediaItem {
	return &UnfurledMediaItem{
		URL:          a.URL,
		ProxyURL:     a.ProxyURL,
		Height:       a.Height,
		Width:        a.Width,
		ContentType:  a.ContentType,
		LoadingState: a.LoadingState,
	}
}
