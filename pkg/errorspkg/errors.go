// Package errorspkg provides common app errors.
package errorspkg

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
)

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ErrTransient indicates a store failure that is worth retrying on a
// later tick (timeouts, dropped connections).
var ErrTransient = errors.New("transient store failure")

// AsTransient maps driver-level timeout and connection failures to
// ErrTransient and leaves everything else untouched.
func AsTransient(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return ErrTransient
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrTransient
	}

	return err
}
