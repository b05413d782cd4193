package db

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsConnectionError reports whether err means the database became
// unreachable, as opposed to the server rejecting a statement.
//
// SQLSTATE classes 08 (connection exception), 53 (insufficient resources)
// and 57 (operator intervention) count as connection errors, as do network
// failures and a closed connection.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, class := range []string{"08", "53", "57"} {
			if strings.HasPrefix(pgErr.Code, class) {
				return true
			}
		}
		return false
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	if isNetworkError(err) {
		return true
	}

	return hasConnectionMessage(err)
}

// isNetworkError checks for network-level errors.
func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return true
		}
		for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ENETUNREACH, syscall.EHOSTUNREACH} {
			if errors.Is(opErr.Err, errno) {
				return true
			}
		}
	}

	return false
}

// connectionPatterns are message fragments of connection loss not carried
// by a typed error.
var connectionPatterns = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"connection failure",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"server closed the connection",
	"unexpected eof",
	"conn closed",
}

func hasConnectionMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, pattern := range connectionPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
