package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delivery_ledger/internal/redis"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionStore is the subset of the redis client the session service uses.
type SessionStore interface {
	SetSession(ctx context.Context, session *redis.FilterSession, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.FilterSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SetTempData(ctx context.Context, key string, value []byte, ttl time.Duration) error
	GetTempData(ctx context.Context, key string) ([]byte, error)
	DeleteTempData(ctx context.Context, key string) error
}

type SessionService interface {
	SaveFilters(ctx context.Context, session *redis.FilterSession) (*redis.FilterSession, error)
	GetFilters(ctx context.Context, id string) (*redis.FilterSession, error)
	DeleteFilters(ctx context.Context, id string) error
	StoreExport(ctx context.Context, data []byte) (string, error)
	LoadExport(ctx context.Context, key string) ([]byte, error)
	DiscardExport(ctx context.Context, key string) error
}

type sessionService struct {
	store      SessionStore
	sessionTTL time.Duration
	exportTTL  time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

func NewSessionService(store SessionStore, sessionTTL, exportTTL time.Duration, logger *zap.Logger) SessionService {
	return &sessionService{
		store:      store,
		sessionTTL: sessionTTL,
		exportTTL:  exportTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// SaveFilters creates a session when ID is empty and refreshes its TTL
// otherwise.
func (s *sessionService) SaveFilters(ctx context.Context, session *redis.FilterSession) (*redis.FilterSession, error) {
	now := s.now()
	if session.ID == "" {
		session.ID = uuid.NewString()
		session.CreatedAt = now
	} else if existing, err := s.store.GetSession(ctx, session.ID); err == nil {
		session.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, redis.ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	} else {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	if err := s.store.SetSession(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

func (s *sessionService) GetFilters(ctx context.Context, id string) (*redis.FilterSession, error) {
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, redis.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) DeleteFilters(ctx context.Context, id string) error {
	return s.store.DeleteSession(ctx, id)
}

func (s *sessionService) StoreExport(ctx context.Context, data []byte) (string, error) {
	key := uuid.NewString()
	if err := s.store.SetTempData(ctx, exportKey(key), data, s.exportTTL); err != nil {
		return "", fmt.Errorf("failed to store export: %w", err)
	}
	s.logger.Info("export stored", zap.String("key", key), zap.Int("bytes", len(data)), zap.Duration("ttl", s.exportTTL))
	return key, nil
}

func (s *sessionService) LoadExport(ctx context.Context, key string) ([]byte, error) {
	data, err := s.store.GetTempData(ctx, exportKey(key))
	if err != nil {
		if errors.Is(err, redis.ErrTempDataNotFound) {
			return nil, ErrExportNotFound
		}
		return nil, err
	}
	return data, nil
}

// DiscardExport drops a stored export before its TTL runs out. Unknown keys
// are not an error.
func (s *sessionService) DiscardExport(ctx context.Context, key string) error {
	if err := s.store.DeleteTempData(ctx, exportKey(key)); err != nil {
		return fmt.Errorf("failed to discard export: %w", err)
	}
	s.logger.Info("export discarded", zap.String("key", key))
	return nil
}

func exportKey(key string) string {
	return "export:" + key
}
