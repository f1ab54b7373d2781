package wire

import (
	"strings"

	"github.com/danmuck/ts3query/internal/protocol/escape"
)

// Value is one record value. A bare key on the wire (no `=`) decodes to a
// Value with Set=false; `key=` decodes to an empty string with Set=true.
type Value struct {
	Text string
	Set  bool
}

// Record is one flat key/value group from a response line. Key order is not
// preserved; duplicate keys keep the last occurrence.
type Record map[string]Value

// Get returns the value text for key plus whether the key carried a value.
func (r Record) Get(key string) (string, bool) {
	v, ok := r[key]
	if !ok || !v.Set {
		return "", false
	}
	return v.Text, true
}

// Has reports whether the key appeared at all, valued or bare.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// DecodeRecords parses a data line into its records. A pipe splits the line
// into several records of the same shape; an empty or all-space line yields
// zero records, and a single record comes back as a one-element slice.
func DecodeRecords(line string) []Record {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	parts := strings.Split(line, "|")
	records := make([]Record, 0, len(parts))
	for _, part := range parts {
		records = append(records, decodeRecord(part))
	}
	return records
}

func decodeRecord(part string) Record {
	rec := Record{}
	for _, chunk := range strings.Split(strings.TrimSpace(part), " ") {
		if chunk == "" {
			continue
		}
		// Only the first = delimits; the value may itself contain =.
		key, val, found := strings.Cut(chunk, "=")
		if !found {
			rec[key] = Value{}
			continue
		}
		rec[key] = Value{Text: escape.Unescape(val), Set: true}
	}
	return rec
}
