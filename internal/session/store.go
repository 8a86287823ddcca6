// Package session owns the current-user identity for the running portal
// process. The store is an explicit object constructed at startup and torn
// down with the process, never a package-level singleton.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/VigyanSetu/WS-Frontend/internal/api"
	"github.com/VigyanSetu/WS-Frontend/internal/models"
)

// State is an immutable snapshot of session resolution. Consumers must
// treat IsLoading=true as "render nothing yet".
type State struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
}

// Backend is the slice of the API client the store needs.
type Backend interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	AdminLogin(ctx context.Context, creds api.AdminCredentials) (*api.AuthResponse, error)
	Register(ctx context.Context, input api.RegisterInput) (*api.AuthResponse, error)
	Me(ctx context.Context) (*models.User, error)
	Refresh(ctx context.Context) error
	UpdateMe(ctx context.Context, input api.ProfileUpdate) (*models.User, error)
}

// Storage is the durable slot for the token and the user snapshot.
type Storage interface {
	api.TokenSource
	SaveUser(user models.User) error
	CachedUser() (models.User, bool)
	ClearUser() error
}

// Store holds the session and runs the periodic background refresh. All
// mutation goes through login, logout, register, refresh, and
// profile-update; nothing else touches the fields.
type Store struct {
	backend Backend
	storage Storage

	// refreshMu serializes refresh attempts so two near-simultaneous
	// refreshes cannot race each other into a logout when one succeeds.
	refreshMu sync.Mutex

	mu      sync.Mutex
	user    *models.User
	authed  bool
	loading bool

	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a store in the loading state. Call Start to resolve it. The
// last persisted user snapshot, if any, is shown optimistically until the
// stored token resolves; resolution replaces or clears it.
func New(backend Backend, storage Storage, refreshInterval time.Duration) *Store {
	s := &Store{
		backend:  backend,
		storage:  storage,
		loading:  true,
		interval: refreshInterval,
	}
	if user, ok := storage.CachedUser(); ok {
		s.user = &user
	}
	return s
}

// Start resolves the persisted session (stored token -> current user) and
// kicks off the background refresh loop. IsLoading turns false only after
// resolution completes, success or failure.
func (s *Store) Start(ctx context.Context) {
	s.resolve(ctx)

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.refreshLoop(loopCtx)
}

// Stop terminates the background refresh loop.
func (s *Store) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

func (s *Store) resolve(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if s.storage.Token() == "" {
		// No token means any optimistic user snapshot is stale.
		s.Logout()
		return
	}

	user, err := s.backend.Me(ctx)
	if err != nil {
		log.Printf("[session] stored token did not resolve: %v", err)
		s.Logout()
		return
	}

	s.establish("", *user)
}

func (s *Store) refreshLoop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.storage.Token() == "" {
				continue
			}
			if err := s.Refresh(ctx); err != nil {
				log.Printf("[session] background refresh failed, logging out: %v", err)
				s.Logout()
			}
		}
	}
}

// establish records a live session. token may be empty when the token is
// already persisted (startup resolve, refresh).
func (s *Store) establish(token string, user models.User) {
	if token != "" {
		if err := s.storage.SetToken(token); err != nil {
			log.Printf("[session] persist token: %v", err)
		}
	}
	if err := s.storage.SaveUser(user); err != nil {
		log.Printf("[session] persist user: %v", err)
	}

	s.mu.Lock()
	s.user = &user
	s.authed = true
	s.mu.Unlock()
}

// Login exchanges credentials for a token and user via the backend.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.backend.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	s.establish(resp.Token, resp.User)
	return &resp.User, nil
}

// AdminLogin authenticates against the legacy admin endpoint. The role the
// backend returns is authoritative; a demoted admin stays demoted here.
func (s *Store) AdminLogin(ctx context.Context, username, password string) (*models.User, error) {
	resp, err := s.backend.AdminLogin(ctx, api.AdminCredentials{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	s.establish(resp.Token, resp.User)
	return &resp.User, nil
}

// Register creates an account and auto-authenticates.
func (s *Store) Register(ctx context.Context, input api.RegisterInput) (*models.User, error) {
	resp, err := s.backend.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	s.establish(resp.Token, resp.User)
	return &resp.User, nil
}

// Logout clears the token and the in-memory user. Idempotent.
func (s *Store) Logout() {
	if err := s.storage.ClearToken(); err != nil {
		log.Printf("[session] clear token: %v", err)
	}
	if err := s.storage.ClearUser(); err != nil {
		log.Printf("[session] clear user: %v", err)
	}

	s.mu.Lock()
	s.user = nil
	s.authed = false
	s.mu.Unlock()
}

// UpdateProfile updates the backend profile and the cached user.
func (s *Store) UpdateProfile(ctx context.Context, input api.ProfileUpdate) (*models.User, error) {
	user, err := s.backend.UpdateMe(ctx, input)
	if err != nil {
		return nil, err
	}
	s.establish("", *user)
	return user, nil
}

// Refresh silently exchanges the current token for a new one. Attempts are
// serialized: a refresh that arrives while another is in flight waits and
// then runs against the freshly stored token, so back-to-back refreshes
// cannot strand the store unauthenticated when one of them succeeds.
func (s *Store) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	return s.backend.Refresh(ctx)
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *models.User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return State{
		User:            user,
		IsAuthenticated: s.authed,
		IsLoading:       s.loading,
	}
}
