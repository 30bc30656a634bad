package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/itchan-dev/chatkit/shared/domain"
)

const (
	MinRow = 0
	MaxRow = 9
)

// attachmentNameRegex matches "<name>.<ext>" with no path separators.
var attachmentNameRegex = regexp.MustCompile(`^[^/\\]+\.[A-Za-z0-9]+$`)

// MediaURL accepts attachment://<name>.<ext> references and absolute http(s) URLs.
func MediaURL(raw domain.MediaURL) error {
	if raw == "" {
		return fmt.Errorf("%w: empty", ErrInvalidMediaURL)
	}
	if strings.HasPrefix(raw, domain.AttachmentScheme) {
		return AttachmentURL(raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidMediaURL, raw)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s (must be attachment://<name>.<ext> or http(s))", ErrInvalidMediaURL, raw)
	}
	return nil
}

// AttachmentURL accepts only local attachment://<name>.<ext> references.
func AttachmentURL(raw domain.MediaURL) error {
	name, ok := strings.CutPrefix(raw, domain.AttachmentScheme)
	if !ok || !attachmentNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %s (must match attachment://<name>.<ext>)", ErrInvalidMediaURL, raw)
	}
	return nil
}

// Row checks an optional layout row hint. nil means automatic placement.
func Row(row *int) error {
	if row == nil {
		return nil
	}
	if *row < MinRow || *row > MaxRow {
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidRow, *row, MinRow, MaxRow)
	}
	return nil
}
