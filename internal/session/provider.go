// Package session resolves the current authenticated identity and
// notifies dependent stores when it changes. The provider is a cache of
// the remote auth provider's state; it never rejects a transition.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/centinela-news/feed-sync/internal/domain"
	"github.com/centinela-news/feed-sync/internal/localstore"
)

// State is the provider's lifecycle state.
type State int

const (
	// StateLoading means the initial bootstrap has not resolved yet.
	StateLoading State = iota
	// StateAnonymous means no identity is established.
	StateAnonymous
	// StateAuthenticated means a user identity is established.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is a snapshot of the provider's state handed to subscribers.
type Session struct {
	State  State
	UserID string
}

// Authenticated reports whether the snapshot carries an identity.
func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated && s.UserID != ""
}

// IdentityResolver validates an access token and returns the identity it
// carries.
type IdentityResolver interface {
	Resolve(ctx context.Context, accessToken string) (userID string, err error)
}

// Provider owns the session state machine.
type Provider struct {
	resolver IdentityResolver
	store    *localstore.Store

	mu      sync.Mutex
	current Session
	subs    map[int]func(Session)
	nextSub int
}

// NewProvider creates a provider in the loading state. Call Bootstrap to
// resolve the persisted session.
func NewProvider(resolver IdentityResolver, store *localstore.Store) *Provider {
	return &Provider{
		resolver: resolver,
		store:    store,
		current:  Session{State: StateLoading},
		subs:     make(map[int]func(Session)),
	}
}

// Bootstrap resolves the initial session from the persisted access token.
// Any failure resolves to anonymous; bootstrap never returns an error
// because an unreachable auth provider must not block startup.
func (p *Provider) Bootstrap(ctx context.Context) {
	logger := domain.LoggerFromContext(ctx)

	token, ok, err := p.store.Get(localstore.KeyAccessToken)
	if err != nil {
		logger.WarnContext(ctx, "reading persisted access token", "error", err)
	}
	if !ok || token == "" {
		p.transition(Session{State: StateAnonymous})
		return
	}

	userID, err := p.resolver.Resolve(ctx, token)
	if err != nil {
		logger.WarnContext(ctx, "persisted session no longer valid", "error", err)
		if err := p.store.Remove(localstore.KeyAccessToken); err != nil {
			logger.WarnContext(ctx, "removing stale access token", "error", err)
		}
		p.transition(Session{State: StateAnonymous})
		return
	}

	p.transition(Session{State: StateAuthenticated, UserID: userID})
}

// SetToken validates and adopts a new access token (login). On success
// the token is persisted and subscribers are notified.
func (p *Provider) SetToken(ctx context.Context, token string) error {
	userID, err := p.resolver.Resolve(ctx, token)
	if err != nil {
		return err
	}

	if err := p.store.Set(localstore.KeyAccessToken, token); err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "persisting access token", "error", err)
	}

	p.transition(Session{State: StateAuthenticated, UserID: userID})
	return nil
}

// SignOut drops the current identity and erases the persisted token.
func (p *Provider) SignOut(ctx context.Context) {
	if err := p.store.Remove(localstore.KeyAccessToken); err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "removing access token", "error", err)
	}
	p.transition(Session{State: StateAnonymous})
}

// Current returns the latest session snapshot.
func (p *Provider) Current() Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// UserID returns the authenticated identity, or the empty string.
func (p *Provider) UserID() string {
	return p.Current().UserID
}

// Subscribe registers a callback invoked synchronously on every state
// transition, including the bootstrap resolution. Returns an unsubscribe
// function.
func (p *Provider) Subscribe(fn func(Session)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// AnonymousSessionID returns the device's anonymous session identifier,
// creating and persisting one on first use.
func (p *Provider) AnonymousSessionID() string {
	id, ok, err := p.store.Get(localstore.KeySessionID)
	if err == nil && ok && id != "" {
		return id
	}

	id = "session_" + uuid.NewString()
	// Best effort: an unpersisted session ID only costs continuity of
	// anonymous view tracking.
	_ = p.store.Set(localstore.KeySessionID, id)
	return id
}

func (p *Provider) transition(next Session) {
	p.mu.Lock()
	p.current = next
	subs := make([]func(Session), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}
