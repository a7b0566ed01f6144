package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token failure kinds. Malformed and bad-signature tokens are rejected
// outright; expired tokens prompt the client to re-authenticate.
var (
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
)

// TokenService issues and validates HS256 bearer tokens. The subject is
// the user's login identifier (the email).
type TokenService struct {
	secret            []byte
	expiration        time.Duration
	refreshExpiration time.Duration
}

func NewTokenService(secret string, expiration, refreshExpiration time.Duration) *TokenService {
	return &TokenService{
		secret:            []byte(secret),
		expiration:        expiration,
		refreshExpiration: refreshExpiration,
	}
}

// Issue signs an access token for subject. Extra claims are embedded as
// given; registered claims win on key collision.
func (s *TokenService) Issue(subject string, extra map[string]any) (string, error) {
	return s.sign(subject, extra, s.expiration)
}

// IssueRefresh signs a longer-lived refresh token for subject.
func (s *TokenService) IssueRefresh(subject string) (string, error) {
	return s.sign(subject, nil, s.refreshExpiration)
}

func (s *TokenService) sign(subject string, extra map[string]any, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = now.Unix()
	claims["nbf"] = now.Unix()
	claims["exp"] = now.Add(ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ExtractSubject decodes the embedded subject. Failures are distinct:
// ErrTokenMalformed, ErrTokenSignature, ErrTokenExpired.
func (s *TokenService) ExtractSubject(tokenString string) (string, error) {
	token, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrTokenMalformed
	}
	return subject, nil
}

// Verify reports whether the token has a valid signature, is unexpired
// and carries exactly expectedSubject. Subject-based verification keeps
// a token issued for one user from authenticating as another.
func (s *TokenService) Verify(tokenString, expectedSubject string) bool {
	subject, err := s.ExtractSubject(tokenString)
	if err != nil {
		return false
	}
	return subject == expectedSubject
}

// IsExpired reports whether the token's expiry instant is in the past.
// Malformed or tampered tokens also report true: they never grant access.
func (s *TokenService) IsExpired(tokenString string) bool {
	_, err := s.parse(tokenString)
	return err != nil
}

func (s *TokenService) parse(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())

	switch {
	case err == nil && token.Valid:
		return token, nil
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenSignature):
		return nil, ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenExpired
	default:
		return nil, ErrTokenMalformed
	}
}
