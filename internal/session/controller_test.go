package session

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"loctodo/internal/backend"
	"loctodo/internal/model"
)

type fakeAuth struct {
	signUpErr   error
	signInErr   error
	signOutErr  error
	validateErr error
	session     backend.AuthSession
	signOuts    int
}

func (f *fakeAuth) SignUp(context.Context, string, string) error {
	return f.signUpErr
}

func (f *fakeAuth) SignIn(context.Context, string, string) (*backend.AuthSession, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	s := f.session
	return &s, nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.signOuts++
	return f.signOutErr
}

func (f *fakeAuth) ValidateSession(_ context.Context, stored backend.AuthSession) (*backend.AuthSession, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return &stored, nil
}

type memTokens struct {
	session *backend.AuthSession
	saveErr error
}

func (m *memTokens) Save(s backend.AuthSession) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.session = &s
	return nil
}

func (m *memTokens) Load() (*backend.AuthSession, error) {
	return m.session, nil
}

func (m *memTokens) Clear() error {
	m.session = nil
	return nil
}

// notifyingAuth also implements AuthNotifier, so tests can fire
// provider-level session events at the controller.
type notifyingAuth struct {
	fakeAuth
	watcher func(backend.AuthChange)
}

func (n *notifyingAuth) OnAuthChange(fn func(backend.AuthChange)) { n.watcher = fn }

func apiError(status int, msg string) *backend.APIError {
	return &backend.APIError{StatusCode: status, Message: msg}
}

func TestSignInTransitionsAndPersists(t *testing.T) {
	auth := &fakeAuth{session: backend.AuthSession{AccessToken: "t", UserID: "user-1", Email: "a@b.co"}}
	tokens := &memTokens{}
	ctrl := NewController(auth, tokens)

	var transitions []model.Session
	ctrl.Subscribe(func(s model.Session) { transitions = append(transitions, s) })

	if err := ctrl.SignIn(context.Background(), "a@b.co", "pw"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	got := ctrl.Session()
	if !got.Authenticated() || got.UserID != "user-1" || got.Email != "a@b.co" {
		t.Fatalf("unexpected session: %#v", got)
	}
	if tokens.session == nil || tokens.session.AccessToken != "t" {
		t.Fatalf("expected persisted token, got: %#v", tokens.session)
	}
	if len(transitions) != 1 {
		t.Fatalf("expected one transition, got: %#v", transitions)
	}
}

func TestSignInSameUserIsIdempotent(t *testing.T) {
	auth := &fakeAuth{session: backend.AuthSession{UserID: "user-1", Email: "a@b.co"}}
	ctrl := NewController(auth, &memTokens{})

	var transitions int
	ctrl.Subscribe(func(model.Session) { transitions++ })

	for i := 0; i < 2; i++ {
		if err := ctrl.SignIn(context.Background(), "a@b.co", "pw"); err != nil {
			t.Fatalf("sign in %d: %v", i, err)
		}
	}
	if transitions != 1 {
		t.Fatalf("expected a single transition, got %d", transitions)
	}
}

func TestSignUpClassifiesAndStaysAnonymous(t *testing.T) {
	auth := &fakeAuth{signUpErr: apiError(http.StatusUnprocessableEntity, "User already registered")}
	ctrl := NewController(auth, &memTokens{})

	if err := ctrl.SignUp(context.Background(), "a@b.co", "pw"); !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got: %v", err)
	}

	auth.signUpErr = nil
	if err := ctrl.SignUp(context.Background(), "a@b.co", "pw"); err != nil {
		t.Fatalf("sign up: %v", err)
	}
	if got := ctrl.Session(); got.State != model.SessionAnonymous {
		t.Fatalf("sign-up must not sign in, got: %#v", got)
	}
}

func TestSignInClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"invalid credentials", apiError(http.StatusBadRequest, "Invalid login credentials"), ErrInvalidCredentials},
		{"transport failure", errors.New("dial tcp: connection refused"), ErrConnection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := NewController(&fakeAuth{signInErr: tc.err}, &memTokens{})
			if err := ctrl.SignIn(context.Background(), "a@b.co", "pw"); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got: %v", tc.want, err)
			}
			if got := ctrl.Session(); got.State != model.SessionAnonymous {
				t.Fatalf("failed sign-in must stay anonymous, got: %#v", got)
			}
		})
	}
}

func TestSignOutClearsLocallyDespiteRemoteFailure(t *testing.T) {
	auth := &fakeAuth{
		session:    backend.AuthSession{UserID: "user-1"},
		signOutErr: errors.New("network down"),
	}
	tokens := &memTokens{}
	ctrl := NewController(auth, tokens)

	if err := ctrl.SignIn(context.Background(), "a@b.co", "pw"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	err := ctrl.SignOut(context.Background())
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected connection error surfaced, got: %v", err)
	}
	if got := ctrl.Session(); got.State != model.SessionAnonymous {
		t.Fatalf("expected anonymous after sign-out, got: %#v", got)
	}
	if tokens.session != nil {
		t.Fatal("expected stored token cleared")
	}
}

func TestGuestSignOutSkipsRemoteCall(t *testing.T) {
	auth := &fakeAuth{}
	ctrl := NewController(auth, &memTokens{})

	ctrl.EnterGuest()
	if got := ctrl.Session(); !got.Guest() {
		t.Fatalf("expected guest session, got: %#v", got)
	}
	if err := ctrl.SignOut(context.Background()); err != nil {
		t.Fatalf("guest sign-out: %v", err)
	}
	if auth.signOuts != 0 {
		t.Fatalf("guest sign-out must not call the provider, got %d calls", auth.signOuts)
	}
	if got := ctrl.Session(); got.State != model.SessionAnonymous {
		t.Fatalf("expected anonymous, got: %#v", got)
	}
}

func TestProviderSignInEventAdoptsSession(t *testing.T) {
	auth := &notifyingAuth{}
	ctrl := NewController(auth, &memTokens{})
	if auth.watcher == nil {
		t.Fatal("expected controller to subscribe to provider events")
	}

	var transitions []model.Session
	ctrl.Subscribe(func(s model.Session) { transitions = append(transitions, s) })

	auth.watcher(backend.AuthChange{
		Event:   backend.AuthSignedIn,
		Session: &backend.AuthSession{UserID: "user-1", Email: "a@b.co"},
	})
	got := ctrl.Session()
	if !got.Authenticated() || got.UserID != "user-1" || got.Email != "a@b.co" {
		t.Fatalf("unexpected session after provider sign-in: %#v", got)
	}
	if len(transitions) != 1 {
		t.Fatalf("expected one transition, got: %#v", transitions)
	}
}

func TestProviderSignOutEventClearsSession(t *testing.T) {
	auth := &notifyingAuth{fakeAuth: fakeAuth{
		session: backend.AuthSession{AccessToken: "t", UserID: "user-1", Email: "a@b.co"},
	}}
	tokens := &memTokens{}
	ctrl := NewController(auth, tokens)

	if err := ctrl.SignIn(context.Background(), "a@b.co", "pw"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	auth.watcher(backend.AuthChange{Event: backend.AuthSignedOut})
	if got := ctrl.Session(); got.State != model.SessionAnonymous {
		t.Fatalf("expected anonymous after provider sign-out, got: %#v", got)
	}
	if tokens.session != nil {
		t.Fatal("expected stored token cleared on provider sign-out")
	}
}

func TestProviderSignOutEventLeavesGuestAlone(t *testing.T) {
	auth := &notifyingAuth{}
	ctrl := NewController(auth, &memTokens{})

	ctrl.EnterGuest()
	auth.watcher(backend.AuthChange{Event: backend.AuthSignedOut})
	if got := ctrl.Session(); !got.Guest() {
		t.Fatalf("guest session must survive a provider sign-out, got: %#v", got)
	}
}

func TestRestoreAdoptsStoredSession(t *testing.T) {
	tokens := &memTokens{session: &backend.AuthSession{UserID: "user-1", Email: "a@b.co"}}
	ctrl := NewController(&fakeAuth{}, tokens)

	if err := ctrl.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := ctrl.Session(); !got.Authenticated() || got.UserID != "user-1" {
		t.Fatalf("unexpected session after restore: %#v", got)
	}
}

func TestRestoreRejectedTokenStaysAnonymous(t *testing.T) {
	tokens := &memTokens{session: &backend.AuthSession{UserID: "user-1"}}
	ctrl := NewController(&fakeAuth{validateErr: apiError(http.StatusUnauthorized, "JWT expired")}, tokens)

	if err := ctrl.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := ctrl.Session(); got.State != model.SessionAnonymous {
		t.Fatalf("expected anonymous, got: %#v", got)
	}
	if tokens.session != nil {
		t.Fatal("expected rejected token cleared from store")
	}
}

func TestRestoreWithEmptyStoreIsNoOp(t *testing.T) {
	ctrl := NewController(&fakeAuth{}, &memTokens{})
	if err := ctrl.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := ctrl.Session(); got.State != model.SessionAnonymous {
		t.Fatalf("expected anonymous, got: %#v", got)
	}
}
