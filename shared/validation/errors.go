package validation

import "errors"

// ErrInvalidMediaURL is returned when a media reference is neither an attachment:// file nor an http(s) URL
var ErrInvalidMediaURL = errors.New("invalid media url")

// ErrInvalidRow is returned when a layout row hint is outside [MinRow, MaxRow]
var ErrInvalidRow = errors.New("invalid row")
