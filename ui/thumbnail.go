package ui

import (
	"fmt"

	"github.com/itchan-dev/chatkit/shared/api"
	"github.com/itchan-dev/chatkit/shared/domain"
	"github.com/itchan-dev/chatkit/shared/validation"
)

// Thumbnail is a small image, usually shown as a section accessory.
// Its media may be an http(s) url or an attachment://<name>.<ext> upload.
type Thumbnail struct {
	baseItem
	underlying *api.ThumbnailComponent
}

var _ Item = (*Thumbnail)(nil)

func NewThumbnail[M MediaRef](media M, opts ...Option) *Thumbnail {
	o := applyOptions(opts)
	return &Thumbnail{
		baseItem: baseItem{row: o.row},
		underlying: &api.ThumbnailComponent{
			Type:        domain.ComponentTypeThumbnail,
			Id:          o.id,
			Media:       toMediaItem(media),
			Description: o.description,
			Spoiler:     o.spoiler,
		},
	}
}

func ThumbnailFromComponent(c *api.ThumbnailComponent) *Thumbnail {
	opts := []Option{WithSpoiler(c.Spoiler)}
	if c.Description != nil {
		opts = append(opts, WithDescription(*c.Description))
	}
	if c.Id != nil {
		opts = append(opts, WithID(*c.Id))
	}
	return NewThumbnail(c.Media.Clone(), opts...)
}

func (t *Thumbnail) Type() domain.ComponentType {
	return domain.ComponentTypeThumbnail
}

func (t *Thumbnail) Width() int {
	return 1
}

func (t *Thumbnail) Media() *domain.UnfurledMediaItem {
	return t.underlying.Media
}

func (t *Thumbnail) URL() domain.MediaURL {
	if t.underlying.Media == nil {
		return ""
	}
	return t.underlying.Media.URL
}

func (t *Thumbnail) SetURL(url domain.MediaURL) {
	t.underlying.Media = domain.NewUnfurledMediaItem(url)
}

// Description returns "" when no description is set.
func (t *Thumbnail) Description() string {
	if t.underlying.Description == nil {
		return ""
	}
	return *t.underlying.Description
}

// SetDescription sets the alt text; an empty string clears it.
func (t *Thumbnail) SetDescription(description string) {
	if description == "" {
		t.underlying.Description = nil
		return
	}
	t.underlying.Description = &description
}

func (t *Thumbnail) Spoiler() bool {
	return t.underlying.Spoiler
}

func (t *Thumbnail) SetSpoiler(spoiler bool) {
	t.underlying.Spoiler = spoiler
}

func (t *Thumbnail) ToComponentDict() map[string]any {
	return t.underlying.ToDict()
}

func (t *Thumbnail) Validate() error {
	if err := validation.Row(t.row); err != nil {
		return fmt.Errorf("thumbnail component: %w", err)
	}
	if err := api.Validate(t.underlying); err != nil {
		return fmt.Errorf("thumbnail component: %w", err)
	}
	return nil
}
