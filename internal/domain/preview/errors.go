package preview

import "errors"

// Sentinel kinds for preview lifecycle errors.
var (
	ErrCreate  = errors.New("preview create failed")
	ErrRelease = errors.New("preview release failed")
)
