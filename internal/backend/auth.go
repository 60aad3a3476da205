package backend

import (
	"context"
	"net/http"
	"time"
)

type AuthChangeEvent string

const (
	AuthSignedIn  AuthChangeEvent = "signed_in"
	AuthSignedOut AuthChangeEvent = "signed_out"
)

type AuthChange struct {
	Event   AuthChangeEvent
	Session *AuthSession
}

// AuthSession is the provider-issued session token plus the identity it
// belongs to.
type AuthSession struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	ExpiresAt    time.Time
}

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         authUser `json:"user"`
}

// SignUp registers a new account. The provider does not sign the user in;
// success means "you can now sign in".
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/v1/signup", nil, nil, body, nil)
}

// SignIn performs the password grant and makes the returned session the
// client's current session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthSession, error) {
	query := map[string][]string{"grant_type": {"password"}}
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token", query, nil, body, &resp); err != nil {
		return nil, err
	}
	session := &AuthSession{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		UserID:       resp.User.ID,
		Email:        resp.User.Email,
		ExpiresAt:    time.Now().UTC().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
	c.setSession(session)
	c.notify(AuthChange{Event: AuthSignedIn, Session: session})
	return session, nil
}

// SignOut revokes the current session remotely and clears it locally. The
// local clear happens even when the remote call fails.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	hasSession := c.session != nil
	c.mu.Unlock()

	var err error
	if hasSession {
		err = c.do(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, nil, nil)
	}
	c.setSession(nil)
	c.notify(AuthChange{Event: AuthSignedOut})
	return err
}

// CurrentSession returns the active session, or nil.
func (c *Client) CurrentSession() *AuthSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	copied := *c.session
	return &copied
}

// ValidateSession checks a stored session against the provider and, when it
// is still accepted, adopts it as the current session.
func (c *Client) ValidateSession(ctx context.Context, stored AuthSession) (*AuthSession, error) {
	c.setSession(&stored)
	var user authUser
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", nil, nil, nil, &user); err != nil {
		c.setSession(nil)
		return nil, err
	}
	stored.UserID = user.ID
	stored.Email = user.Email
	c.setSession(&stored)
	c.notify(AuthChange{Event: AuthSignedIn, Session: &stored})
	return &stored, nil
}

// OnAuthChange registers a callback for session lifecycle events. Callbacks
// run for the lifetime of the client.
func (c *Client) OnAuthChange(fn func(AuthChange)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watchers = append(c.watchers, fn)
}

func (c *Client) setSession(session *AuthSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
}

func (c *Client) notify(change AuthChange) {
	c.mu.Lock()
	watchers := make([]func(AuthChange), len(c.watchers))
	copy(watchers, c.watchers)
	c.mu.Unlock()
	for _, fn := range watchers {
		fn(change)
	}
}
