package auth

import "strings"

// TokenKey is the session key the auth token is stored under.
const TokenKey = "token"

// Service owns the session's auth token.
type Service struct {
	store TokenStore
}

// NewService returns a Service over store.
func NewService(store TokenStore) *Service {
	return &Service{store: store}
}

// Token returns the stored token, or "" when signed out.
func (s *Service) Token() (string, error) {
	tok, err := s.store.Get(TokenKey)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tok), nil
}

// SetToken stores tok; an empty tok signs out.
func (s *Service) SetToken(tok string) error {
	if tok == "" {
		return s.Clear()
	}
	return s.store.Set(TokenKey, tok)
}

// Clear removes the token.
func (s *Service) Clear() error {
	return s.store.Delete(TokenKey)
}
