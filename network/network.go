// Package network binds websocket connections to the arena: upgrade,
// read pump with limits and keepalive, decode and dispatch into the
// arena inbox.
package network

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"sumo/arena"
	"sumo/protocol"
)

const (
	readLimit     = 1 << 20 // 1MB
	readTimeout   = 60 * time.Second
	writeTimeout  = 10 * time.Second
	pingInterval  = 25 * time.Second
	// Control messages are rare; input frames arrive at tick rate and
	// get their own, looser budget.
	msgRate        = 20
	msgBurst       = 60
	inputMsgRate   = 90
	inputMsgBurst  = 120
)

type Server struct {
	arena    *arena.Arena
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewServer(a *arena.Arena, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		arena: a,
		log:   log,
		upgrader: websocket.Upgrader{
			// For dev, allow all origins. Lock this down in prod.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS upgrades the request and runs the connection until it drops.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	id := uuid.NewString()
	c := &client{conn: conn}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	done := make(chan struct{})
	go s.pingLoop(c, done)

	s.arena.Inbox <- arena.Connect{ID: id, Conn: c}
	s.readPump(id, c)

	close(done)
	s.arena.Inbox <- arena.Disconnect{ID: id}
	_ = c.Close()
}

func (s *Server) pingLoop(c *client, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readPump decodes inbound frames and posts arena commands. Malformed
// frames are logged and dropped without closing the connection.
func (s *Server) readPump(id string, c *client) {
	limiter := rate.NewLimiter(msgRate, msgBurst)
	inputLimiter := rate.NewLimiter(inputMsgRate, inputMsgBurst)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			s.log.Info("client read ended", "id", id, "err", err)
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))

		typ, err := protocol.DecodeType(data)
		if err != nil {
			s.log.Warn("malformed message dropped", "id", id, "err", err)
			continue
		}

		lim := limiter
		if typ == protocol.MsgPlayerInput {
			lim = inputLimiter
		}
		if !lim.Allow() {
			s.log.Warn("rate limit exceeded, dropping message", "id", id, "msgType", typ)
			continue
		}

		s.dispatch(id, c, typ, data)
	}
}

// dispatch turns a decoded frame into an arena command. Unknown tags are
// rejected with an explicit error reply rather than ignored.
func (s *Server) dispatch(id string, c *client, typ string, data []byte) {
	switch typ {
	case protocol.MsgJoinGame:
		m, err := protocol.DecodePayload[protocol.JoinGame](data)
		if err != nil {
			s.replyError(c, "malformed joinGame payload")
			return
		}
		s.arena.Inbox <- arena.Join{ID: id, Address: m.Address, Color: m.Color, Bet: m.Bet}
	case protocol.MsgStartGame:
		s.arena.Inbox <- arena.Start{ID: id}
	case protocol.MsgPlayerInput:
		m, err := protocol.DecodePayload[protocol.PlayerInput](data)
		if err != nil {
			return
		}
		s.arena.Inbox <- arena.Input{ID: id, Keys: m.Keys}
	case protocol.MsgRegisterPlayer:
		m, err := protocol.DecodePayload[protocol.RegisterPlayer](data)
		if err != nil {
			s.replyError(c, "malformed registerPlayer payload")
			return
		}
		s.arena.Inbox <- arena.Register{ID: id, Address: m.Address, Bet: m.Bet}
	case protocol.MsgCheckChainState:
		m, err := protocol.DecodePayload[protocol.CheckChainState](data)
		if err != nil {
			s.replyError(c, "malformed checkBlockchainState payload")
			return
		}
		s.arena.Inbox <- arena.CheckChain{ID: id, Address: m.Address}
	case protocol.MsgRequestState:
		s.arena.Inbox <- arena.StateRequest{ID: id}
	case protocol.MsgHeartbeat:
		m, err := protocol.DecodePayload[protocol.Heartbeat](data)
		if err != nil {
			return
		}
		s.arena.Inbox <- arena.Heartbeat{ID: id, Timestamp: m.Timestamp}
	default:
		s.log.Warn("unknown message type", "id", id, "msgType", typ)
		s.replyError(c, "unknown message type: "+typ)
	}
}

func (s *Server) replyError(c *client, msg string) {
	b, err := protocol.Encode(protocol.Error{Type: protocol.MsgError, Message: msg})
	if err != nil {
		return
	}
	_ = c.Send(b)
}

// client wraps a websocket connection with a write mutex so the arena
// goroutine and the ping loop never write concurrently.
type client struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
}

func (c *client) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *client) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

func (c *client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}
