// internal/api/handler/websocket.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"login-form-server/internal/domain/form"
	"login-form-server/internal/domain/session"
)

const (
	maxMessageSize = 4096
	writeWait      = 5 * time.Second
)

// Server to client message types.
const (
	MessageState = "state"
	MessageLogin = "login"
	MessageError = "error"
)

type ServerMessage struct {
	Type    string           `json:"type"`
	State   *form.Snapshot   `json:"state,omitempty"`
	Session *session.Session `json:"session,omitempty"`
	Message string           `json:"message,omitempty"`
}

type Validator interface {
	Validate(interface{}) error
}

type FormHandlerOption func(*FormHandler)

func WithFormOptions(opts ...form.Option) FormHandlerOption {
	return func(h *FormHandler) {
		h.formOpts = append(h.formOpts, opts...)
	}
}

// WithAllowedOrigins restricts WebSocket upgrades to the given origins.
// With none, any origin is accepted.
func WithAllowedOrigins(origins []string) FormHandlerOption {
	return func(h *FormHandler) {
		if len(origins) == 0 {
			return
		}
		allowed := make(map[string]struct{}, len(origins))
		for _, o := range origins {
			allowed[o] = struct{}{}
		}
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			_, ok := allowed[u.Scheme+"://"+u.Host]
			return ok
		}
	}
}

// FormHandler runs one login form per WebSocket connection. The form is
// mounted on connect and torn down on disconnect or CloseConnections.
type FormHandler struct {
	service   *session.Service
	validator Validator
	logger    *zap.Logger
	upgrader  websocket.Upgrader
	formOpts  []form.Option

	// closing is cancelled by CloseConnections; live connections watch it.
	closing context.Context
	close   context.CancelFunc
	mu      sync.Mutex
	closed  bool
	conns   sync.WaitGroup
}

func NewFormHandler(s *session.Service, v Validator, logger *zap.Logger, opts ...FormHandlerOption) *FormHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	closing, cancel := context.WithCancel(context.Background())
	h := &FormHandler{
		closing:   closing,
		close:     cancel,
		service:   s,
		validator: v,
		logger:    logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// conn serializes writes; the read loop and the form goroutine both send.
type conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *conn) send(msg ServerMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(msg)
}

// shutdown sends a close frame and closes the socket, which ends the
// read loop of the connection.
func (c *conn) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = c.ws.Close()
}

// CloseConnections closes every live connection, unmounting its form,
// and refuses new ones. It does not wait; see Wait.
func (h *FormHandler) CloseConnections() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	h.close()
}

// track registers a connection unless the handler is closing.
func (h *FormHandler) track() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns.Add(1)
	return true
}

// Wait blocks until every connection has unmounted its form or ctx is done.
func (h *FormHandler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.conns.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func stateMessage(s form.Snapshot) ServerMessage {
	return ServerMessage{Type: MessageState, State: &s}
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: MessageError, Message: err.Error()}
}

func (h *FormHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	if !h.track() {
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer h.conns.Done()

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()
	ws.SetReadLimit(maxMessageSize)

	clientID := ClientIDFromContext(r.Context())
	logger := h.logger.With(zap.String("client_id", clientID))
	c := &conn{ws: ws}

	unmounted := make(chan struct{})
	defer close(unmounted)
	go func() {
		select {
		case <-h.closing.Done():
			c.shutdown()
		case <-unmounted:
		}
	}()

	opts := append([]form.Option{
		form.WithLogger(logger),
		form.WithOnChange(func(s form.Snapshot) {
			if err := c.send(stateMessage(s)); err != nil {
				logger.Debug("send state", zap.Error(err))
			}
		}),
	}, h.formOpts...)
	f := form.New(h.onLogin(r.Context(), clientID, c, logger), opts...)
	defer f.Close()

	logger.Debug("form mounted")
	if err := c.send(stateMessage(f.Snapshot())); err != nil {
		return
	}

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", zap.Error(err))
			}
			logger.Debug("form unmounted")
			return
		}

		var msg form.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := c.send(ServerMessage{Type: MessageError, Message: "invalid message payload"}); err != nil {
				logger.Debug("send error", zap.Error(err))
				return
			}
			continue
		}
		if err := h.validator.Validate(&msg); err != nil {
			if err := c.send(errorMessage(err)); err != nil {
				logger.Debug("send error", zap.Error(err))
				return
			}
			continue
		}
		f.Apply(msg)
	}
}

// onLogin hands submitted values to the session service and reports the
// outcome on the connection.
func (h *FormHandler) onLogin(ctx context.Context, clientID string, c *conn, logger *zap.Logger) form.LoginFunc {
	return func(email, password string) {
		sess, err := h.service.Login(ctx, &session.LoginRequest{
			ClientID: clientID,
			Email:    email,
			Password: password,
		})
		if err != nil {
			logger.Warn("login rejected", zap.Error(err))
			if err := c.send(errorMessage(err)); err != nil {
				logger.Debug("send error", zap.Error(err))
			}
			return
		}
		if err := c.send(ServerMessage{Type: MessageLogin, Session: &sess}); err != nil {
			logger.Debug("send login", zap.Error(err))
		}
	}
}
