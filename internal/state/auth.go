package state

import "github.com/starford/folio/internal/models"

// AuthState is the session's sign-in state.
type AuthState struct {
	User          *models.User `json:"user"`
	Token         string       `json:"-"`
	Authenticated bool         `json:"isAuthenticated"`
	Loading       bool         `json:"loading"`
}

// InitialAuth starts signed out but remembers a stored token. The token is
// not trusted until a user is confirmed, so Authenticated stays false.
func InitialAuth(token string) AuthState {
	return AuthState{Token: token}
}

type (
	SetAuthLoading bool
	LoginSuccess   struct {
		User  models.User
		Token string
	}
	Logout  struct{}
	SetUser struct{ User models.User }
)

func (SetAuthLoading) Type() string { return "auth/setLoading" }
func (LoginSuccess) Type() string   { return "auth/loginSuccess" }
func (Logout) Type() string         { return "auth/logout" }
func (SetUser) Type() string        { return "auth/setUser" }

// ReduceAuth is the auth reducer. Persisting the token is the caller's job.
func ReduceAuth(s AuthState, a Action) AuthState {
	switch a := a.(type) {
	case SetAuthLoading:
		s.Loading = bool(a)
	case LoginSuccess:
		u := a.User
		s.User = &u
		s.Token = a.Token
		s.Authenticated = true
		s.Loading = false
	case Logout:
		s = AuthState{}
	case SetUser:
		u := a.User
		s.User = &u
		s.Authenticated = true
	}
	return s
}
