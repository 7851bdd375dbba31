package articles

import "errors"

var ErrNotFound = errors.New("article not found")
