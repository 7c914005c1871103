package service

import (
	"context"
	"crypto/subtle"
	"net/http"

	apperrors "tg-checkin-backend/internal/common/errors"
)

type Credentials struct {
	Username     string
	Password     string
	ClientID     string
	ClientSecret string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	// Login checks the admin credentials and returns the signed session cookie value.
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, r *http.Request) error
	IssueTokens(clientID, clientSecret string) (*TokenPair, error)
	RefreshAccessToken() (string, error)
}

type authService struct {
	creds    Credentials
	tokens   *TokenManager
	sessions *SessionStore
}

func NewAuthService(creds Credentials, tokens *TokenManager, sessions *SessionStore) AuthService {
	return &authService{creds: creds, tokens: tokens, sessions: sessions}
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperrors.NewValidationError("body", "Missing required fields.")
	}
	// unset admin credentials never match
	if s.creds.Username == "" || !equal(username, s.creds.Username) || !equal(password, s.creds.Password) {
		return "", apperrors.NewBadRequestError("Invalid credential.")
	}

	cookie, err := s.sessions.Create(ctx, username)
	if err != nil {
		return "", apperrors.NewCacheError("create session", err)
	}
	return cookie, nil
}

func (s *authService) Logout(ctx context.Context, r *http.Request) error {
	if err := s.sessions.Destroy(ctx, r); err != nil {
		return apperrors.NewCacheError("destroy session", err)
	}
	return nil
}

func (s *authService) IssueTokens(clientID, clientSecret string) (*TokenPair, error) {
	if clientID == "" || clientSecret == "" {
		return nil, apperrors.NewValidationError("body", "Missing required field.")
	}
	if s.creds.ClientID == "" || !equal(clientID, s.creds.ClientID) || !equal(clientSecret, s.creds.ClientSecret) {
		return nil, apperrors.NewBadRequestError("Invalid credentials.")
	}

	access, err := s.tokens.AccessToken()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, apperrors.MsgSomethingWrong)
	}
	refresh, err := s.tokens.RefreshToken()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, apperrors.MsgSomethingWrong)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) RefreshAccessToken() (string, error) {
	access, err := s.tokens.AccessToken()
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, apperrors.MsgSomethingWrong)
	}
	return access, nil
}
