package ui

import (
	"fmt"
	"sync"

	"github.com/itchan-dev/chatkit/shared/api"
	"github.com/itchan-dev/chatkit/shared/domain"
	"github.com/itchan-dev/chatkit/shared/markdown"
	"github.com/itchan-dev/chatkit/shared/validation"
)

var (
	previewOnce     sync.Once
	previewRenderer *markdown.Renderer
)

// TextDisplay is a block of markdown text.
type TextDisplay struct {
	baseItem
	underlying *api.TextDisplayComponent
}

var _ Item = (*TextDisplay)(nil)

func NewTextDisplay(content string, opts ...Option) *TextDisplay {
	o := applyOptions(opts)
	return &TextDisplay{
		baseItem: baseItem{row: o.row},
		underlying: &api.TextDisplayComponent{
			Type:    domain.ComponentTypeTextDisplay,
			Id:      o.id,
			Content: content,
		},
	}
}

func TextDisplayFromComponent(c *api.TextDisplayComponent) *TextDisplay {
	var opts []Option
	if c.Id != nil {
		opts = append(opts, WithID(*c.Id))
	}
	return NewTextDisplay(c.Content, opts...)
}

func (t *TextDisplay) Type() domain.ComponentType {
	return domain.ComponentTypeTextDisplay
}

func (t *TextDisplay) Width() int {
	return 5
}

func (t *TextDisplay) Content() string {
	return t.underlying.Content
}

func (t *TextDisplay) SetContent(content string) {
	t.underlying.Content = content
}

func (t *TextDisplay) ToComponentDict() map[string]any {
	return t.underlying.ToDict()
}

// PreviewHTML renders the content roughly the way clients display it.
func (t *TextDisplay) PreviewHTML() (string, error) {
	previewOnce.Do(func() {
		previewRenderer = markdown.New()
	})
	return previewRenderer.Render(t.underlying.Content)
}

func (t *TextDisplay) Validate() error {
	if err := validation.Row(t.row); err != nil {
		return fmt.Errorf("text display component: %w", err)
	}
	if err := api.Validate(t.underlying); err != nil {
		return fmt.Errorf("text display component: %w", err)
	}
	return nil
}
