package mysql

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/centinela-news/feed-sync/internal/domain"
)

// wrapErr tags a query failure with the error kind callers use to
// decide between keeping optimistic state and rolling it back.
// Connectivity failures are network errors; everything else the
// server actively rejected.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := fmt.Errorf("%s: %w", op, err)
	if isConnectivityErr(err) {
		return domain.WrapNetworkError(wrapped)
	}
	return domain.WrapRemoteError(wrapped)
}

func isConnectivityErr(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysqldriver.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.EPIPE,
			syscall.ETIMEDOUT, syscall.EHOSTUNREACH, syscall.ENETUNREACH:
			return true
		}
	}

	return false
}
