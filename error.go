package linkdex

import "errors"

// ErrKeyNotFound returned by Get when the key is in neither the
// accelerator nor the authoritative index
var ErrKeyNotFound = errors.New("linkdex: key not found")
