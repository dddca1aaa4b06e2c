// internal/domain/session/service.go
package session

import (
	"context"

	"go.uber.org/zap"

	"login-form-server/pkg/errors"
)

type Service struct {
	store     Store
	validator Validator
	logger    *zap.Logger
}

func NewService(store Store, v Validator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		validator: v,
		logger:    logger,
	}
}

// Restore reads the stored flag for clientID. Any non-empty value
// counts as logged in.
func (s *Service) Restore(ctx context.Context, clientID string) (Session, error) {
	value, ok, err := s.store.GetItem(ctx, clientID, FlagKey)
	if err != nil {
		return Session{ClientID: clientID}, errors.NewStorageError("get", err)
	}
	return Session{ClientID: clientID, LoggedIn: ok && value != ""}, nil
}

// Login marks the client as logged in. The credentials are checked with
// the same rules as the form fields, since callers can reach Login
// without going through a form. Nothing else is verified.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (Session, error) {
	if err := s.validator.Validate(req); err != nil {
		return Session{ClientID: req.ClientID}, errors.NewValidationError(err.Error())
	}

	if err := s.store.SetItem(ctx, req.ClientID, FlagKey, flagValue); err != nil {
		return Session{ClientID: req.ClientID}, errors.NewStorageError("set", err)
	}

	s.logger.Info("client logged in", zap.String("client_id", req.ClientID))
	return Session{ClientID: req.ClientID, LoggedIn: true}, nil
}

func (s *Service) Logout(ctx context.Context, clientID string) (Session, error) {
	if err := s.store.RemoveItem(ctx, clientID, FlagKey); err != nil {
		return Session{ClientID: clientID, LoggedIn: true}, errors.NewStorageError("remove", err)
	}

	s.logger.Info("client logged out", zap.String("client_id", clientID))
	return Session{ClientID: clientID}, nil
}

func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return errors.NewStorageError("ping", err)
	}
	return nil
}
