package query

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/danmuck/ts3query/internal/config"
	"github.com/danmuck/ts3query/internal/logging"
	"github.com/danmuck/ts3query/internal/protocol/wire"
)

// KickReason selects where a kicked client lands.
type KickReason int

const (
	ReasonKickChannel KickReason = 4
	ReasonKickServer  KickReason = 5
)

// kickMessageLimit is the server-enforced cap on reasonmsg; longer messages
// are truncated before transmission.
const kickMessageLimit = 40

// Session is the convenience layer over one Conn. Every method issues a
// single transaction (ClientKick adds one lookup when targeting by database
// id) and folds the status line into a boolean where the raw response adds
// nothing.
type Session struct {
	conn *Conn
	log  zerolog.Logger
}

// NewSession wraps an established Conn.
func NewSession(conn *Conn, log zerolog.Logger) *Session {
	return &Session{conn: conn, log: log}
}

// Open dials cfg's endpoint and, when the config provides them, logs in and
// selects the configured virtual server. A failed login or selection closes
// the connection and reports the step that failed.
func Open(cfg config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := Dial(cfg.Host, cfg.Port, cfg.Timeout, logging.New("query.conn"))
	if err != nil {
		return nil, err
	}
	s := NewSession(conn, logging.New("query.session"))
	if !conn.Connected() {
		return s, nil
	}

	if cfg.LoginName != "" {
		ok, err := s.Login(cfg.LoginName, cfg.LoginPassword)
		if err != nil {
			_ = conn.Disconnect()
			return nil, fmt.Errorf("login: %w", err)
		}
		if !ok {
			_ = conn.Disconnect()
			return nil, fmt.Errorf("login rejected for %s", cfg.LoginName)
		}
	}
	if cfg.ServerID > 0 {
		ok, err := s.Use(cfg.ServerID)
		if err != nil {
			_ = conn.Disconnect()
			return nil, fmt.Errorf("use server %d: %w", cfg.ServerID, err)
		}
		if !ok {
			_ = conn.Disconnect()
			return nil, fmt.Errorf("server %d rejected", cfg.ServerID)
		}
	}
	return s, nil
}

// Connected reports the underlying connection state.
func (s *Session) Connected() bool {
	return s.conn.Connected()
}

// Disconnect closes the underlying connection.
func (s *Session) Disconnect() error {
	return s.conn.Disconnect()
}

// SendCommand exposes the raw transaction layer for commands the facade does
// not name.
func (s *Session) SendCommand(cmd *wire.Command) (*wire.Response, error) {
	return s.conn.SendCommand(cmd)
}

// Login authenticates the query session.
func (s *Session) Login(name, password string) (bool, error) {
	resp, err := s.conn.SendCommand(wire.NewCommand("login").
		String("client_login_name", name).
		String("client_login_password", password))
	if err != nil {
		return false, err
	}
	return resp.OK(), nil
}

// Use selects a virtual server instance for the session.
func (s *Session) Use(serverID int) (bool, error) {
	if serverID <= 0 {
		return false, fmt.Errorf("%w: server id required", ErrInvalidArguments)
	}
	resp, err := s.conn.SendCommand(wire.NewCommand("use").Int("sid", serverID))
	if err != nil {
		return false, err
	}
	return resp.OK(), nil
}

// ServerList returns the raw response for the instance list; callers walk
// the records themselves.
func (s *Session) ServerList() (*wire.Response, error) {
	return s.conn.SendCommand(wire.NewCommand("serverlist"))
}

// GlobalMessage broadcasts to every client on the selected server.
func (s *Session) GlobalMessage(msg string) (bool, error) {
	resp, err := s.conn.SendCommand(wire.NewCommand("gm").String("msg", msg))
	if err != nil {
		return false, err
	}
	return resp.OK(), nil
}

// ClientList fetches the connected clients re-indexed by session id. A
// rejected command degrades to an empty map instead of an error; that trades
// error fidelity for lookup convenience, and callers that need the status
// can issue clientlist through SendCommand instead.
func (s *Session) ClientList() (map[string]wire.Record, error) {
	resp, err := s.conn.SendCommand(wire.NewCommand("clientlist"))
	if err != nil {
		return nil, err
	}

	clients := map[string]wire.Record{}
	if !resp.OK() {
		s.log.Debug().Int("code", resp.Status.Code).Msg("clientlist rejected, returning empty set")
		return clients, nil
	}
	for _, rec := range resp.Records {
		clid, ok := rec.Get("clid")
		if !ok {
			continue
		}
		clients[clid] = rec
	}
	return clients, nil
}

// KickRequest names a kick target by session id or database id. Exactly one
// of the two must be set; zero means unset.
type KickRequest struct {
	SessionID  int
	DatabaseID int
	Reason     KickReason
	Message    string
}

// ClientKick removes a client from the channel or server. Targeting by
// database id costs an extra clientlist lookup; an unknown database id
// returns false without an error.
func (s *Session) ClientKick(req KickRequest) (bool, error) {
	var clid string
	switch {
	case req.DatabaseID > 0:
		resp, err := s.conn.SendCommand(wire.NewCommand("clientlist"))
		if err != nil {
			return false, err
		}
		want := strconv.Itoa(req.DatabaseID)
		for _, rec := range resp.Records {
			if dbid, _ := rec.Get("client_database_id"); dbid == want {
				clid, _ = rec.Get("clid")
				break
			}
		}
		if clid == "" {
			s.log.Debug().Int("cldbid", req.DatabaseID).Msg("clientkick target not online")
			return false, nil
		}
	case req.SessionID > 0:
		clid = strconv.Itoa(req.SessionID)
	default:
		return false, fmt.Errorf("%w: clientkick needs a session or database id", ErrInvalidArguments)
	}

	reason := req.Reason
	if reason == 0 {
		reason = ReasonKickServer
	}
	msg := req.Message
	if len(msg) > kickMessageLimit {
		msg = msg[:kickMessageLimit]
	}

	resp, err := s.conn.SendCommand(wire.NewCommand("clientkick").
		String("clid", clid).
		Int("reasonid", int(reason)).
		String("reasonmsg", msg))
	if err != nil {
		return false, err
	}
	return resp.OK(), nil
}

// ClientPoke flashes a message at one client.
func (s *Session) ClientPoke(sessionID int, msg string) (bool, error) {
	if sessionID <= 0 {
		return false, fmt.Errorf("%w: clientpoke needs a session id", ErrInvalidArguments)
	}
	resp, err := s.conn.SendCommand(wire.NewCommand("clientpoke").
		Int("clid", sessionID).
		String("msg", msg))
	if err != nil {
		return false, err
	}
	return resp.OK(), nil
}
