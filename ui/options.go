package ui

import (
	"fmt"

	"github.com/itchan-dev/chatkit/shared/domain"
)

type options struct {
	spoiler     bool
	row         *int
	id          *domain.ComponentId
	description *string
	accentColor *int
}

// Option configures an item at construction. Options that do not apply to an item are ignored.
type Option func(*options)

func WithSpoiler(spoiler bool) Option {
	return func(o *options) {
		o.spoiler = spoiler
	}
}

// WithRow pins the item to a row (0-9). Without it the item is placed automatically.
func WithRow(row int) Option {
	return func(o *options) {
		o.row = &row
	}
}

func WithID(id domain.ComponentId) Option {
	return func(o *options) {
		o.id = &id
	}
}

func WithDescription(description string) Option {
	return func(o *options) {
		o.description = &description
	}
}

func WithAccentColor(rgb int) Option {
	return func(o *options) {
		o.accentColor = &rgb
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MediaRef is what media-bearing items accept: a plain url or a structured reference.
type MediaRef interface {
	string | *domain.UnfurledMediaItem | domain.UnfurledMediaItem
}

// toMediaItem normalizes media into a structured reference. Pointers are kept as is,
// values are copied.
func toMediaItem[M MediaRef](media M) *domain.UnfurledMediaItem {
	m, _ := normalizeMedia(media)
	return m
}

func normalizeMedia(media any) (*domain.UnfurledMediaItem, error) {
	switch m := media.(type) {
	case string:
		return domain.NewUnfurledMediaItem(m), nil
	case *domain.UnfurledMediaItem:
		return m, nil
	case domain.UnfurledMediaItem:
		return &m, nil
	}
	return nil, fmt.Errorf("%w: got %T", ErrInvalidMedia, media)
}
