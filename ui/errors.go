package ui

import (
	"errors"

	"github.com/itchan-dev/chatkit/shared/validation"
)

var (
	// ErrTooManyChildren is returned when a container would hold more than api.MaxContainerChildren items
	ErrTooManyChildren = errors.New("too many container children")
	// ErrNestedContainer is returned when adding a container to a container
	ErrNestedContainer = errors.New("containers cannot be nested")
	// ErrViewFull is returned when a view already holds MaxViewChildren items
	ErrViewFull = errors.New("view is full")
	// ErrRowFull is returned when an item does not fit the width left in a row
	ErrRowFull = errors.New("row is full")
	// ErrAlreadyAttached is returned when adding an item that already belongs to a view, container or section
	ErrAlreadyAttached = errors.New("item already belongs to a view or parent item")
	// ErrNotTextDisplay is returned when a section child is not a text display
	ErrNotTextDisplay = errors.New("section children must be text displays")
	// ErrInvalidAccessory is returned when a section accessory is not a thumbnail
	ErrInvalidAccessory = errors.New("section accessory must be a thumbnail")
	// ErrInvalidMedia is returned when a media value is neither a url nor a media reference
	ErrInvalidMedia = errors.New("media must be a url or an unfurled media item")
	// ErrInvalidRow is returned for row hints outside 0-9
	ErrInvalidRow = validation.ErrInvalidRow
)
