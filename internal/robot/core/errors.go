package core

import (
	"errors"
	"fmt"
)

// ErrNotInitialized signals that a subsystem handle was used before the
// one-time startup sequence completed. This is a sequencing defect: fail
// loudly instead of driving hardware through a nil port.
var ErrNotInitialized = errors.New("subsystem accessed before initialization")

// NotInitialized wraps ErrNotInitialized with the subsystem name.
func NotInitialized(subsystem string) error {
	return fmt.Errorf("%s: %w", subsystem, ErrNotInitialized)
}
