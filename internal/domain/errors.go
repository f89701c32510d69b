package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

var (
	// ErrValidation is returned for malformed profile or probe input.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyName is returned when a profile has no name.
	ErrEmptyName = fmt.Errorf("%w: connection name is required", ErrValidation)

	// ErrEmptyServers is returned when no bootstrap server was given.
	ErrEmptyServers = fmt.Errorf("%w: at least one bootstrap server is required", ErrValidation)

	// ErrInvalidServer is returned for a bootstrap server entry that would not
	// survive the comma-joined storage format unchanged.
	ErrInvalidServer = fmt.Errorf("%w: bootstrap server must be a single host:port without commas or surrounding spaces", ErrValidation)

	// ErrMalformedCredentials is returned when only one of the SASL username and password is set.
	ErrMalformedCredentials = fmt.Errorf("%w: sasl username and password must both be set or both be empty", ErrValidation)

	// ErrNotFound is returned when a profile name is absent from the store.
	ErrNotFound = errors.New("profile not found")

	// ErrConnect matches every *ConnectError.
	ErrConnect = errors.New("connection failed")

	// ErrAuthRejected is wrapped by connectors when the broker refused the credentials.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrInit matches every *InitError.
	ErrInit = errors.New("view initialization failed")

	// ErrNoSession is returned when a broker operation needs an active session and there is none.
	ErrNoSession = errors.New("no active session")
)

// ConnectReason classifies a connectivity failure for display.
type ConnectReason string

const (
	ReasonTimeout      ConnectReason = "timeout"
	ReasonAuthRejected ConnectReason = "auth_rejected"
	ReasonDNS          ConnectReason = "dns"
	ReasonRefused      ConnectReason = "refused"
	ReasonUnreachable  ConnectReason = "unreachable"
)

// ConnectError reports a network or authentication failure while probing or
// activating a connection.
type ConnectError struct {
	Servers []string
	Reason  ConnectReason
	Err     error
}

// NewConnectError wraps err and classifies it.
func NewConnectError(servers []string, err error) *ConnectError {
	return &ConnectError{Servers: servers, Reason: classify(err), Err: err}
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect to %s: %s: %v", strings.Join(e.Servers, ","), e.Diagnostic(), e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

func (e *ConnectError) Is(target error) bool { return target == ErrConnect }

// Diagnostic is a short human-readable description of the failure class.
func (e *ConnectError) Diagnostic() string {
	switch e.Reason {
	case ReasonTimeout:
		return "timed out"
	case ReasonAuthRejected:
		return "authentication rejected"
	case ReasonDNS:
		return "host name lookup failed"
	case ReasonRefused:
		return "connection refused"
	default:
		return "broker unreachable"
	}
}

func classify(err error) ConnectReason {
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, ErrAuthRejected):
		return ReasonAuthRejected
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	case errors.As(err, &dnsErr):
		return ReasonDNS
	case errors.Is(err, syscall.ECONNREFUSED):
		return ReasonRefused
	default:
		return ReasonUnreachable
	}
}

// InitError reports that a view failed to load its data after a cache miss.
type InitError struct {
	Slot int
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init view %d: %v", e.Slot, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

func (e *InitError) Is(target error) bool { return target == ErrInit }
