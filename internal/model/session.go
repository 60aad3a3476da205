package model

type SessionState string

const (
	SessionAnonymous     SessionState = "Anonymous"
	SessionAuthenticated SessionState = "Authenticated"
	SessionGuest         SessionState = "Guest"
)

func (s SessionState) IsValid() bool {
	switch s {
	case SessionAnonymous, SessionAuthenticated, SessionGuest:
		return true
	default:
		return false
	}
}

// Session is the client's view of who, if anyone, is signed in. Guest
// sessions have no identity and no remote persistence.
type Session struct {
	State  SessionState
	UserID string
	Email  string
}

func AnonymousSession() Session {
	return Session{State: SessionAnonymous}
}

func GuestSession() Session {
	return Session{State: SessionGuest}
}

func (s Session) Authenticated() bool {
	return s.State == SessionAuthenticated
}

func (s Session) Guest() bool {
	return s.State == SessionGuest
}
