package query

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned for any operation attempted on a
	// disconnected session. No I/O happens before this check.
	ErrNotConnected = errors.New("query: not connected")

	// ErrInvalidArguments is returned when a facade call is missing a
	// required identifying argument.
	ErrInvalidArguments = errors.New("query: invalid arguments")
)

// ConnectionError reports that the query channel could not be opened at all.
// A reachable endpoint answering with the wrong greeting is not a
// ConnectionError; Dial reports that case through the connected flag.
type ConnectionError struct {
	Host string
	Port int
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("query: connecting to %s:%d: %v", e.Host, e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
