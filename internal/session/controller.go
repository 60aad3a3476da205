// Package session owns the Anonymous/Authenticated/Guest state machine
// and the token persistence that lets a sign-in survive restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"loctodo/internal/backend"
	"loctodo/internal/model"
)

var (
	ErrAlreadyRegistered  = errors.New("account already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrConnection         = errors.New("could not reach the server")
)

// AuthClient is the slice of the backend client the controller drives.
type AuthClient interface {
	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) (*backend.AuthSession, error)
	SignOut(ctx context.Context) error
	ValidateSession(ctx context.Context, stored backend.AuthSession) (*backend.AuthSession, error)
}

// AuthNotifier is implemented by auth clients that emit session lifecycle
// events of their own, such as a sign-out that happens inside the client.
type AuthNotifier interface {
	OnAuthChange(fn func(backend.AuthChange))
}

// TokenStore persists the provider session locally.
type TokenStore interface {
	Save(session backend.AuthSession) error
	Load() (*backend.AuthSession, error)
	Clear() error
}

type Controller struct {
	auth   AuthClient
	tokens TokenStore

	mu       sync.Mutex
	session  model.Session
	watchers []func(model.Session)
}

func NewController(auth AuthClient, tokens TokenStore) *Controller {
	c := &Controller{
		auth:    auth,
		tokens:  tokens,
		session: model.AnonymousSession(),
	}
	if notifier, ok := auth.(AuthNotifier); ok {
		notifier.OnAuthChange(c.onProviderChange)
	}
	return c
}

// onProviderChange mirrors provider-level session events into the state
// machine. Transitions the controller itself drives arrive here too and
// collapse in transition(); the case that matters is an event that did
// not come through this controller, which still has to land the session
// in the right state with the stored token kept in sync.
func (c *Controller) onProviderChange(change backend.AuthChange) {
	switch change.Event {
	case backend.AuthSignedIn:
		if change.Session == nil {
			return
		}
		c.transition(model.Session{
			State:  model.SessionAuthenticated,
			UserID: change.Session.UserID,
			Email:  change.Session.Email,
		})
	case backend.AuthSignedOut:
		if !c.Session().Authenticated() {
			return
		}
		_ = c.tokens.Clear()
		c.transition(model.AnonymousSession())
	}
}

// Session returns the current session.
func (c *Controller) Session() model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Subscribe registers a callback for session transitions. Callbacks run
// synchronously on the mutating goroutine.
func (c *Controller) Subscribe(fn func(model.Session)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watchers = append(c.watchers, fn)
}

// SignUp registers a new account. Success does not sign the user in; the
// session stays Anonymous and the caller prompts for a sign-in.
func (c *Controller) SignUp(ctx context.Context, email, password string) error {
	return classify(c.auth.SignUp(ctx, email, password))
}

// SignIn authenticates and persists the session token. Re-authenticating
// as the already-signed-in user is a no-op.
func (c *Controller) SignIn(ctx context.Context, email, password string) error {
	auth, err := c.auth.SignIn(ctx, email, password)
	if err != nil {
		return classify(err)
	}
	if saveErr := c.tokens.Save(*auth); saveErr != nil {
		// The sign-in itself succeeded; only restart persistence is lost.
		err = fmt.Errorf("persist session: %w", saveErr)
	}
	c.transition(model.Session{
		State:  model.SessionAuthenticated,
		UserID: auth.UserID,
		Email:  auth.Email,
	})
	return err
}

// EnterGuest switches to the memory-only guest mode.
func (c *Controller) EnterGuest() {
	c.transition(model.GuestSession())
}

// SignOut returns to Anonymous. For an authenticated session the remote
// revocation is best-effort: the local session and stored token are
// cleared even when the provider call fails, and that failure is
// returned for display.
func (c *Controller) SignOut(ctx context.Context) error {
	wasAuthenticated := c.Session().Authenticated()

	var err error
	if wasAuthenticated {
		if remoteErr := c.auth.SignOut(ctx); remoteErr != nil {
			err = classify(remoteErr)
		}
	}
	if clearErr := c.tokens.Clear(); clearErr != nil && err == nil {
		err = fmt.Errorf("clear stored session: %w", clearErr)
	}
	c.transition(model.AnonymousSession())
	return err
}

// Restore resumes a previous sign-in from the token store. A missing or
// rejected token leaves the session Anonymous without error; the user
// simply signs in again.
func (c *Controller) Restore(ctx context.Context) error {
	stored, err := c.tokens.Load()
	if err != nil {
		return fmt.Errorf("load stored session: %w", err)
	}
	if stored == nil {
		return nil
	}

	auth, err := c.auth.ValidateSession(ctx, *stored)
	if err != nil {
		_ = c.tokens.Clear()
		return nil
	}
	c.transition(model.Session{
		State:  model.SessionAuthenticated,
		UserID: auth.UserID,
		Email:  auth.Email,
	})
	return nil
}

func (c *Controller) transition(next model.Session) {
	c.mu.Lock()
	if c.session == next {
		c.mu.Unlock()
		return
	}
	c.session = next
	watchers := make([]func(model.Session), len(c.watchers))
	copy(watchers, c.watchers)
	c.mu.Unlock()

	for _, fn := range watchers {
		fn(next)
	}
}

// classify maps provider errors to sentinels the UI can branch on. The
// provider reports conditions as message text, so matching is by
// substring; transport failures have no APIError and become ErrConnection.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	switch {
	case strings.Contains(apiErr.Message, "User already registered"):
		return ErrAlreadyRegistered
	case strings.Contains(apiErr.Message, "Invalid login credentials"):
		return ErrInvalidCredentials
	default:
		return err
	}
}
