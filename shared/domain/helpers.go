package domain

import "fmt"

// for debug
func (m *UnfurledMediaItem) String() string {
	s := fmt.Sprintf("[url:%s", m.URL)
	if m.ContentType != "" {
		s += fmt.Sprintf(", content_type:%s", m.ContentType)
	}
	if m.Width != nil && m.Height != nil {
		s += fmt.Sprintf(", size:%dx%d", *m.Width, *m.Height)
	}
	if m.LoadingState != MediaLoadingStateUnknown {
		s += fmt.Sprintf(", state:%s", m.LoadingState)
	}
	return s + "]"
}

func (u *Upload) String() string {
	return fmt.Sprintf("[file:%s, type:%s, bytes:%d, spoiler:%t]", u.UploadName(), u.ContentType, u.SizeBytes, u.Spoiler)
}
