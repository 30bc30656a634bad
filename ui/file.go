package ui

import (
	"fmt"

	"github.com/itchan-dev/chatkit/shared/api"
	"github.com/itchan-dev/chatkit/shared/domain"
	"github.com/itchan-dev/chatkit/shared/validation"
)

// File is a UI file component.
//
// Its media is either a file uploaded with the message, referenced as
// attachment://<file-name>.<extension>, or an absolute http(s) url. The row hint
// (0-9) controls placement inside the parent LayoutView and is never sent to the
// platform.
type File struct {
	baseItem
	underlying *api.FileComponent
}

var _ Item = (*File)(nil)

// NewFile builds a file component. Plain strings are normalized into a media
// reference. Nothing is validated here; see Validate or NewValidatedFile.
func NewFile[M MediaRef](media M, opts ...Option) *File {
	o := applyOptions(opts)
	f := &File{
		baseItem:   baseItem{row: o.row},
		underlying: api.NewFileComponent(toMediaItem(media), o.spoiler),
	}
	f.underlying.Id = o.id
	return f
}

// NewValidatedFile is NewFile followed by Validate.
func NewValidatedFile[M MediaRef](media M, opts ...Option) (*File, error) {
	f := NewFile(media, opts...)
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// NewFileFromUpload references a local upload. The upload's spoiler flag is
// applied first so an explicit WithSpoiler still wins.
func NewFileFromUpload(u *domain.Upload, opts ...Option) *File {
	return NewFile(u.AttachmentURL(), append([]Option{WithSpoiler(u.Spoiler)}, opts...)...)
}

// FileFromComponent rebuilds a File from a received payload. The row hint is
// not part of the wire format and stays unset.
func FileFromComponent(c *api.FileComponent) *File {
	var opts []Option
	opts = append(opts, WithSpoiler(c.Spoiler))
	if c.Id != nil {
		opts = append(opts, WithID(*c.Id))
	}
	return NewFile(c.Media.Clone(), opts...)
}

func (f *File) Type() domain.ComponentType {
	return f.underlying.ComponentType()
}

func (f *File) Width() int {
	return 5
}

// Media returns the structured media reference.
func (f *File) Media() *domain.UnfurledMediaItem {
	return f.underlying.Media
}

// SetMedia replaces the media reference. media is a url string, a
// domain.UnfurledMediaItem or a pointer to one; anything else returns ErrInvalidMedia
// and leaves the file unchanged.
func (f *File) SetMedia(media any) error {
	m, err := normalizeMedia(media)
	if err != nil {
		return err
	}
	f.underlying.Media = m
	return nil
}

// URL returns the media reference's url.
func (f *File) URL() domain.MediaURL {
	if f.underlying.Media == nil {
		return ""
	}
	return f.underlying.Media.URL
}

// SetURL replaces the media reference, dropping any metadata the old one carried.
func (f *File) SetURL(url domain.MediaURL) {
	f.underlying.Media = domain.NewUnfurledMediaItem(url)
}

func (f *File) Spoiler() bool {
	return f.underlying.Spoiler
}

func (f *File) SetSpoiler(spoiler bool) {
	f.underlying.Spoiler = spoiler
}

func (f *File) ID() *domain.ComponentId {
	return f.underlying.Id
}

func (f *File) ToComponentDict() map[string]any {
	return f.underlying.ToDict()
}

// Validate checks the row hint and that the media is an attachment://<name>.<ext>
// reference or an http(s) url.
func (f *File) Validate() error {
	if err := validation.Row(f.row); err != nil {
		return fmt.Errorf("file component: %w", err)
	}
	if err := api.Validate(f.underlying); err != nil {
		return fmt.Errorf("file component: %w", err)
	}
	return nil
}

func (f *File) String() string {
	return fmt.Sprintf("<File url=%q spoiler=%t>", f.URL(), f.Spoiler())
}
