// Package query owns the ServerQuery transaction layer and the session
// facade on top of it.
//
// Ownership boundary:
// - one persistent TCP text channel per Conn
// - serialized command/response transactions
// - named convenience operations (Session)
//
// Reconnect and retry policy stay with the caller.
package query

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/ts3query/internal/observability"
	"github.com/danmuck/ts3query/internal/protocol/wire"
)

// Terminator is the literal two-byte line terminator. The protocol sends LF
// before CR; treat the token as opaque rather than assuming CR-LF order.
const Terminator = "\n\r"

// bannerSuffix ends the greeting line of a real ServerQuery endpoint.
const bannerSuffix = "TS3"

// Conn is one persistent query connection. A mutex serializes callers: the
// greeting handshake and each full write/read transaction run as one atomic
// unit, so concurrent commands never interleave on the wire. That also makes
// the connection a strict bottleneck; a stalled server queues every caller
// behind the read timeout.
type Conn struct {
	mu        sync.Mutex
	conn      net.Conn
	r         *bufio.Reader
	timeout   time.Duration
	connected bool
	log       zerolog.Logger
}

// Dial opens the channel to host:port and reads the greeting line. The
// returned Conn is usable only when Connected reports true: a greeting that
// does not end with the protocol banner leaves the Conn disconnected but is
// not an error. Only a channel that cannot be opened at all yields a
// *ConnectionError.
func Dial(host string, port int, timeout time.Duration, log zerolog.Logger) (*Conn, error) {
	dialer := net.Dialer{Timeout: timeout}
	nc, err := dialer.Dial("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		observability.RecordConnect("dial_error")
		return nil, &ConnectionError{Host: host, Port: port, Err: err}
	}

	c := &Conn{
		conn:    nc,
		r:       bufio.NewReader(nc),
		timeout: timeout,
		log:     log,
	}

	c.mu.Lock()
	greeting, err := c.readLine()
	c.mu.Unlock()
	if err != nil {
		// A silent or truncated greeting counts the same as a bad
		// banner: connected stays false, no error.
		c.log.Warn().Err(err).Msg("greeting read failed")
		observability.RecordConnect("greeting_error")
		return c, nil
	}
	if !strings.HasSuffix(greeting, bannerSuffix) {
		c.log.Warn().Str("greeting", greeting).Msg("greeting banner mismatch")
		observability.RecordConnect("banner_mismatch")
		return c, nil
	}

	c.connected = true
	c.log.Debug().Str("host", host).Int("port", port).Msg("connected")
	observability.RecordConnect("ok")
	return c, nil
}

// Connected reports whether the greeting handshake succeeded and Disconnect
// has not been called.
func (c *Conn) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// SendCommand runs one full transaction: write the encoded line, read the
// optional data line, read the status line, assemble the response. A
// mid-transaction I/O failure leaves the connection in an unknown state; the
// caller must reconnect before issuing further commands.
func (c *Conn) SendCommand(cmd *wire.Command) (*wire.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil, ErrNotConnected
	}

	start := time.Now()
	line := cmd.Encode()
	c.log.Debug().Str("command", cmd.Name).Msg("send command")

	if c.timeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	}
	if _, err := c.conn.Write([]byte(line + Terminator)); err != nil {
		return nil, fmt.Errorf("write %s: %w", cmd.Name, err)
	}

	first, err := c.readLine()
	if err != nil {
		return nil, fmt.Errorf("read %s reply: %w", cmd.Name, err)
	}

	dataLine := ""
	statusLine := first
	if !wire.IsStatusLine(first) {
		dataLine = first
		statusLine, err = c.readLine()
		if err != nil {
			return nil, fmt.Errorf("read %s status: %w", cmd.Name, err)
		}
	}

	resp, err := wire.ParseResponse(statusLine, dataLine)
	if err != nil {
		return nil, err
	}

	observability.RecordCommand(cmd.Name, resp.Status.Code, time.Since(start))
	if !resp.OK() {
		c.log.Debug().
			Str("command", cmd.Name).
			Int("code", resp.Status.Code).
			Str("msg", resp.Status.Message).
			Msg("command rejected")
	}
	return resp, nil
}

// Disconnect sends quit without waiting for its reply and closes the
// channel. The quit write is the only fire-and-forget I/O in this package.
func (c *Conn) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotConnected
	}
	if c.timeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
	}
	_, _ = c.conn.Write([]byte("quit" + Terminator))
	err := c.conn.Close()
	c.connected = false
	c.log.Debug().Msg("disconnected")
	return err
}

// readLine consumes bytes until the literal terminator token, bounded by the
// read timeout. Callers must hold c.mu.
func (c *Conn) readLine() (string, error) {
	if c.timeout > 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	}
	var buf []byte
	for {
		b, err := c.r.ReadByte()
		if err != nil {
			return string(buf), err
		}
		buf = append(buf, b)
		if bytes.HasSuffix(buf, []byte(Terminator)) {
			return string(buf[:len(buf)-len(Terminator)]), nil
		}
	}
}
