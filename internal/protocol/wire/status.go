package wire

import (
	"strconv"
	"strings"
)

// statusHeader prefixes every terminal status line. The header length is
// fixed by the protocol; DecodeStatus strips exactly this token.
const statusHeader = "error "

// Status is the terminal line of every transaction.
type Status struct {
	Code    int
	Message string
	Extra   map[string]string
}

// OK reports whether the server accepted the command.
func (s Status) OK() bool {
	return s.Code == 0
}

// IsStatusLine reports whether a reply line is the status line rather than a
// data payload. The transaction layer branches on this before parsing.
func IsStatusLine(line string) bool {
	return strings.HasPrefix(line, "error")
}

// DecodeStatus parses a status line. The remainder after the header follows
// the ordinary record grammar; id maps to Code, msg to Message, and anything
// else lands in Extra.
func DecodeStatus(line string) (Status, error) {
	if !strings.HasPrefix(line, statusHeader) {
		return Status{}, &ProtocolError{Line: line, Reason: "missing status header"}
	}

	records := DecodeRecords(line[len(statusHeader):])
	if len(records) != 1 {
		return Status{}, &ProtocolError{Line: line, Reason: "status line is not a single record"}
	}
	rec := records[0]

	id, ok := rec.Get("id")
	if !ok {
		return Status{}, &ProtocolError{Line: line, Reason: "status line missing id"}
	}
	code, err := strconv.Atoi(id)
	if err != nil {
		return Status{}, &ProtocolError{Line: line, Reason: "status id is not an integer"}
	}

	st := Status{Code: code}
	st.Message, _ = rec.Get("msg")
	for k, v := range rec {
		if k == "id" || k == "msg" || !v.Set {
			continue
		}
		if st.Extra == nil {
			st.Extra = map[string]string{}
		}
		st.Extra[k] = v.Text
	}
	return st, nil
}
