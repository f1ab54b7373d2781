package wire

import (
	"errors"
	"fmt"
)

// ErrProtocol matches any reply line that does not fit the grammar.
var ErrProtocol = errors.New("wire: malformed reply")

// ProtocolError carries the offending line alongside what went wrong with it.
type ProtocolError struct {
	Line   string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("wire: malformed reply (%s): %q", e.Reason, e.Line)
}

func (e *ProtocolError) Unwrap() error {
	return ErrProtocol
}
