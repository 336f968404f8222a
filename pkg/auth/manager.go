package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultTokenTTL is used when the configured TTL is zero.
	DefaultTokenTTL = 24 * time.Hour

	// confirmAudience scopes verification tokens so a token signed for another purpose
	// with the same key is never accepted here.
	confirmAudience = "email-confirm"
)

var (
	ErrTokenMalformed     = errors.New("token is malformed")
	ErrTokenBadSignature  = errors.New("token signature is invalid")
	ErrTokenExpired       = errors.New("token is expired")
	ErrTokenMissingFields = errors.New("token is missing username or nonce")
)

// TokenManager issues and validates single-use email confirmation tokens.
type TokenManager interface {
	Issue(username string) (*IssuedToken, error)
	Validate(token string, maxAge time.Duration) (*Claims, error)
	TTL() time.Duration
}

type IssuedToken struct {
	Value    string
	Nonce    string
	IssuedAt time.Time
}

// Claims is what a verification token proves: username owns the mailbox the nonce was sent to.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (c *Claims) Nonce() string {
	return c.ID
}

type Config struct {
	SigningKey string
	TokenTTL   time.Duration
}

type Manager struct {
	signingKey []byte
	tokenTTL   time.Duration
	now        func() time.Time
}

func NewManager(cfg Config) (*Manager, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("empty signing key")
	}

	if cfg.TokenTTL < 0 {
		return nil, errors.New("negative token ttl")
	}

	ttl := cfg.TokenTTL
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}

	return &Manager{
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   ttl,
		now:        time.Now,
	}, nil
}

func (m *Manager) TTL() time.Duration {
	return m.tokenTTL
}

// Issue signs a token for username with a fresh random nonce. Two calls never share a nonce.
func (m *Manager) Issue(username string) (*IssuedToken, error) {
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("empty username")
	}

	nonce, err := newNonce()
	if err != nil {
		return nil, err
	}

	issuedAt := m.now().UTC().Truncate(time.Second)
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			Audience:  jwt.ClaimStrings{confirmAudience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.tokenTTL)),
		},
	}

	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return nil, fmt.Errorf("sign token failed: %w", err)
	}

	return &IssuedToken{Value: value, Nonce: nonce, IssuedAt: issuedAt}, nil
}

// Validate checks structure, signature and age. maxAge <= 0 means the manager TTL.
// The returned error is one of the ErrToken* values.
func (m *Manager) Validate(token string, maxAge time.Duration) (*Claims, error) {
	if maxAge <= 0 {
		maxAge = m.tokenTTL
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(confirmAudience),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if claims.IssuedAt == nil {
		return nil, ErrTokenMalformed
	}
	if m.now().Sub(claims.IssuedAt.Time) > maxAge {
		return nil, ErrTokenExpired
	}

	if claims.Username == "" || claims.ID == "" {
		return nil, ErrTokenMissingFields
	}

	return &claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenUsedBeforeIssued),
		errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenBadSignature
	default:
		return ErrTokenMalformed
	}
}

func newNonce() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate nonce failed: %w", err)
	}

	return strings.ReplaceAll(id.String(), "-", ""), nil
}
