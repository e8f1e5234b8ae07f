package domain

import "errors"

var (
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidSegment = errors.New("invalid_segment")
	ErrDuplicateID    = errors.New("duplicate_id")
)
