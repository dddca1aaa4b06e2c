// internal/api/handler/session.go
package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"login-form-server/internal/domain/session"
	"login-form-server/pkg/errors"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

type SessionHandler struct {
	service *session.Service
	logger  *zap.Logger
}

func NewSessionHandler(s *session.Service, logger *zap.Logger) *SessionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionHandler{
		service: s,
		logger:  logger,
	}
}

type pageData struct {
	Session session.Session
	View    session.View
}

// Page restores the session flag once and renders the matching view.
func (h *SessionHandler) Page(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Restore(r.Context(), ClientIDFromContext(r.Context()))
	if err != nil {
		h.logger.Error("restore session", zap.Error(err))
		http.Error(w, "session storage unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, pageData{Session: sess, View: sess.View()}); err != nil {
		h.logger.Error("render page", zap.Error(err))
	}
}

func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Restore(r.Context(), ClientIDFromContext(r.Context()))
	if err != nil {
		status, e := statusFor(err)
		WriteError(w, r, h.logger, e, status)
		return
	}
	WriteJSON(w, r, sess, http.StatusOK)
}

// Login is the programmatic submit path. The service re-checks the
// credentials with the form rules.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req session.LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		WriteError(w, r, h.logger, errors.NewBadRequestError("invalid request payload"), http.StatusBadRequest)
		return
	}
	req.ClientID = ClientIDFromContext(r.Context())

	sess, err := h.service.Login(r.Context(), &req)
	if err != nil {
		status, e := statusFor(err)
		WriteError(w, r, h.logger, e, status)
		return
	}
	WriteJSON(w, r, sess, http.StatusOK)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Logout(r.Context(), ClientIDFromContext(r.Context()))
	if err != nil {
		status, e := statusFor(err)
		WriteError(w, r, h.logger, e, status)
		return
	}
	WriteJSON(w, r, sess, http.StatusOK)
}

func (h *SessionHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ping(r.Context()); err != nil {
		status, e := statusFor(err)
		WriteError(w, r, h.logger, e, status)
		return
	}
	WriteJSON(w, r, map[string]string{"status": "ok"}, http.StatusOK)
}
