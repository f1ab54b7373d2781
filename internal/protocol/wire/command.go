// Package wire implements the ServerQuery line grammar: command serialization
// on the way out, record and status parsing on the way back.
//
// One request is one line. One reply is an optional data line followed by a
// status line. Lines never contain raw newlines; the escape layer guarantees
// that before the grammar is assembled.
package wire

import (
	"strconv"
	"strings"

	"github.com/danmuck/ts3query/internal/protocol/escape"
)

// Param is one key with one or more values. A multi-valued param serializes
// as a pipe-joined group (`key=a|key=b`), the grammar's inline record list.
type Param struct {
	Key    string
	Values []string
}

// Command is one outbound request. Params keep caller order; a Command is
// built fresh per call and never mutated after Encode.
type Command struct {
	Name    string
	Params  []Param
	Options []string
}

// NewCommand starts a command with the given name.
func NewCommand(name string) *Command {
	return &Command{Name: name}
}

// String appends a single string-valued parameter.
func (c *Command) String(key, value string) *Command {
	c.Params = append(c.Params, Param{Key: key, Values: []string{value}})
	return c
}

// Int appends an integer parameter in decimal form.
func (c *Command) Int(key string, value int) *Command {
	return c.String(key, strconv.Itoa(value))
}

// List appends a multi-valued parameter.
func (c *Command) List(key string, values ...string) *Command {
	c.Params = append(c.Params, Param{Key: key, Values: values})
	return c
}

// Option appends a flag option, serialized as -name.
func (c *Command) Option(name string) *Command {
	c.Options = append(c.Options, name)
	return c
}

// Encode serializes the command into one wire line. Values are escaped here;
// keys, the command name and option names are structural and pass through
// untouched. No line terminator is appended, that is the transport's job.
func (c *Command) Encode() string {
	tokens := []string{c.Name}
	for _, p := range c.Params {
		group := make([]string, 0, len(p.Values))
		for _, v := range p.Values {
			group = append(group, p.Key+"="+escape.Escape(v))
		}
		tokens = append(tokens, strings.Join(group, "|"))
	}
	for _, opt := range c.Options {
		tokens = append(tokens, "-"+opt)
	}
	return strings.Join(tokens, " ")
}
