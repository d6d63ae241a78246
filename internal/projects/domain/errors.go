package domain

import "errors"

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrNotOwner          = errors.New("project belongs to another user")
	ErrInvalidQuality    = errors.New("invalid render quality")
	ErrInvalidTransition = errors.New("invalid render status transition")
)
