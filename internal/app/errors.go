package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoClient  = errors.New("no analysis client configured")
	ErrReadVideo = errors.New("read video failed")
	ErrNoResult  = errors.New("no result available")
)
