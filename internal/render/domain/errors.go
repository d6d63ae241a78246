package domain

import "errors"

var (
	ErrJobNotFound       = errors.New("render job not found")
	ErrEngineUnavailable = errors.New("render engine unavailable")
)
