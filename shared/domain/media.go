package domain

import "strings"

// AttachmentScheme prefixes media references to files uploaded alongside the message.
const AttachmentScheme = "attachment://"

// UnfurledMediaItem is a structured media reference. Only URL is sent when serializing;
// the remaining fields are filled by the platform on received components.
type UnfurledMediaItem struct {
	URL          MediaURL          `json:"url" validate:"required,media_url"`
	ProxyURL     string            `json:"proxy_url,omitempty"`
	Height       *int              `json:"height,omitempty"`
	Width        *int              `json:"width,omitempty"`
	ContentType  string            `json:"content_type,omitempty"`
	LoadingState MediaLoadingState `json:"loading_state,omitempty"`
	AttachmentId Snowflake         `json:"attachment_id,omitempty,string"`
}

func NewUnfurledMediaItem(url MediaURL) *UnfurledMediaItem {
	return &UnfurledMediaItem{URL: url}
}

// ToDict returns the outgoing wire form of the reference.
func (m *UnfurledMediaItem) ToDict() map[string]any {
	return map[string]any{"url": m.URL}
}

// IsAttachment reports whether the reference points at a file uploaded with the message.
func (m *UnfurledMediaItem) IsAttachment() bool {
	return strings.HasPrefix(m.URL, AttachmentScheme)
}

// AttachmentName returns the file name of an attachment:// reference, or "" otherwise.
func (m *UnfurledMediaItem) AttachmentName() Filename {
	if !m.IsAttachment() {
		return ""
	}
	return strings.TrimPrefix(m.URL, AttachmentScheme)
}

func (m *UnfurledMediaItem) Clone() *UnfurledMediaItem {
	if m == nil {
		return nil
	}
	c := *m
	if m.Height != nil {
		h := *m.Height
		c.Height = &h
	}
	if m.Width != nil {
		w := *m.Width
		c.Width = &w
	}
	return &c
}
