package domain

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Upload is a local file sent together with a message and referenced
// from components as attachment://<filename>.
type Upload struct {
	Filename    Filename
	Description string
	Spoiler     bool
	ContentType string
	SizeBytes   int64
	ImageWidth  *int
	ImageHeight *int
	Data        io.Reader
}

// NewUploadFromReader buffers r and sniffs its content type and, for images, its dimensions.
func NewUploadFromReader(filename Filename, r io.Reader) (*Upload, error) {
	if filename == "" {
		return nil, fmt.Errorf("upload filename is empty")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", filename, err)
	}

	u := &Upload{
		Filename:    filename,
		ContentType: DetectContentType(filename, data),
		SizeBytes:   int64(len(data)),
		Data:        bytes.NewReader(data),
	}
	u.ImageWidth, u.ImageHeight = ExtractImageDimensions(data, u.ContentType)
	return u, nil
}

// UploadName is the name the file is sent under, with the spoiler prefix applied.
func (u *Upload) UploadName() Filename {
	if u.Spoiler && !strings.HasPrefix(u.Filename, SpoilerPrefix) {
		return SpoilerPrefix + u.Filename
	}
	return u.Filename
}

// AttachmentURL is the media reference a component uses to point at this upload.
func (u *Upload) AttachmentURL() MediaURL {
	return AttachmentScheme + u.UploadName()
}

func (u *Upload) IsImage() bool {
	return strings.HasPrefix(u.ContentType, "image/")
}

// DetectContentType prefers the extension and falls back to content sniffing.
func DetectContentType(filename Filename, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		// drop parameters such as "; charset=utf-8"
		mediaType, _, err := mime.ParseMediaType(byExt)
		if err == nil {
			return mediaType
		}
		return byExt
	}
	sniffed := http.DetectContentType(data)
	mediaType, _, err := mime.ParseMediaType(sniffed)
	if err != nil {
		return "application/octet-stream"
	}
	return mediaType
}

// ExtractImageDimensions returns nil dimensions for non-images or undecodable data.
func ExtractImageDimensions(data []byte, contentType string) (*int, *int) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil
	}
	width, height := cfg.Width, cfg.Height
	return &width, &height
}
