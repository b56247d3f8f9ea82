package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/veridoc/portal/internal/logging"
	"github.com/veridoc/portal/internal/portal/api"
	"github.com/veridoc/portal/internal/portal/models"
)

// Service is the single writer of auth state. All mutations happen under
// one mutex so the token and user can never disagree: whenever the token is
// cleared, the user is cleared in the same transition.
type Service struct {
	api   api.Client
	store TokenStore
	log   logging.Logger

	mu      sync.Mutex
	user    *models.User
	token   string
	loading bool
}

// NewService builds a Service in the loading state; call Init to settle it.
func NewService(client api.Client, store TokenStore, log logging.Logger) *Service {
	if log == nil {
		log = logging.Noop()
	}
	return &Service{api: client, store: store, log: log, loading: true}
}

// Token returns the current bearer token ("" when unauthenticated).
// It satisfies api.TokenProvider.
func (s *Service) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Snapshot returns a copy of the current session state.
func (s *Service) Snapshot() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	var user *models.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return models.Session{
		User:          user,
		Token:         s.token,
		Authenticated: s.user != nil,
		Loading:       s.loading,
	}
}

// Init restores a persisted session, if any. A persisted token triggers a
// profile fetch; on any failure the token and user are cleared together
// (expired/invalid token). Init always leaves loading=false, success or not.
func (s *Service) Init(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "token store unreadable", "error", err)
		return
	}
	if token == "" {
		return
	}
	if tokenExpired(token, time.Now()) {
		s.log.Info(ctx, "persisted token expired, clearing")
		if err := s.store.Clear(ctx); err != nil {
			s.log.Warn(ctx, "token store clear failed", "error", err)
		}
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.log.Info(ctx, "profile fetch failed, clearing session", "error", err)
		s.Invalidate(ctx)
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Login authenticates against the backend. On success the token is stored
// durably and the user becomes current; on failure prior state is untouched.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.adopt(ctx, user, token)
	return user, nil
}

// Register creates a regular account; same contract as Login.
func (s *Service) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	user, token, err := s.api.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	s.adopt(ctx, user, token)
	return user, nil
}

// RegisterAdmin creates an administrator account; same contract as Login.
func (s *Service) RegisterAdmin(ctx context.Context, email, password, name string) (*models.User, error) {
	user, token, err := s.api.RegisterAdmin(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	s.adopt(ctx, user, token)
	return user, nil
}

func (s *Service) adopt(ctx context.Context, user *models.User, token string) {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.loading = false
	s.mu.Unlock()

	if err := s.store.Save(ctx, token); err != nil {
		// The in-memory session stays usable; only persistence is degraded.
		s.log.Warn(ctx, "token persist failed", "error", err)
	}
}

// Logout clears token and user atomically. No backend call is required.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear token store: %w", err)
	}
	return nil
}

// Invalidate drops the session after the backend rejected the token
// (expired or revoked). Identical to Logout but keeps the error contract
// out of page controllers.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.Logout(ctx); err != nil {
		s.log.Warn(ctx, "session invalidation cleanup failed", "error", err)
	}
}
