package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	claimAppType = "mini-app"
	claimCompany = "hwdb"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	AppType   string `json:"appType"`
	Company   string `json:"company"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

// TokenManager signs and checks HS256 bearer tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 5 * 365 * 24 * time.Hour
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (m *TokenManager) AccessToken() (string, error) {
	return m.sign(TokenTypeAccess, m.accessTTL)
}

func (m *TokenManager) RefreshToken() (string, error) {
	return m.sign(TokenTypeRefresh, m.refreshTTL)
}

func (m *TokenManager) sign(tokenType string, ttl time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("jwt secret is empty")
	}

	now := m.now().UTC()
	claims := Claims{
		AppType:   claimAppType,
		Company:   claimCompany,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (m *TokenManager) parse(raw, tokenType string) (*Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || token == nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.AppType != claimAppType || claims.Company != claimCompany || claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *TokenManager) VerifyAccessToken(raw string) error {
	_, err := m.parse(raw, TokenTypeAccess)
	return err
}

func (m *TokenManager) VerifyRefreshToken(raw string) error {
	_, err := m.parse(raw, TokenTypeRefresh)
	return err
}
