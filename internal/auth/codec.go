package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the token lifetime used when none is configured.
const DefaultSessionTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidToken covers signature mismatch, malformed tokens and
	// expired sessions. Callers treat it as "not logged in".
	ErrInvalidToken = errors.New("invalid or expired session token")
)

// Session is the decoded identity attached to a request. It is ephemeral:
// derived from a token on every request and never persisted.
type Session struct {
	UserID    uint
	Email     string
	Name      string
	Role      string
	ExpiresAt time.Time
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// Role values embedded in session tokens.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// SessionClaims is the JWT payload for a session token. Subject holds the
// user id.
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Codec encodes and decodes signed session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a codec signing with secret. ttl <= 0 falls back to
// DefaultSessionTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime, which doubles as the session
// cookie max age.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode signs a session token for the given identity with an absolute
// expiry set now + TTL.
func (c *Codec) Encode(userID uint, email, name, role string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Email: email,
		Name:  name,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies the signature and expiry of a token and returns the
// session. This is the authoritative path; every protected handler goes
// through it before touching data.
func (c *Codec) Decode(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims.session()
}

// DecodeUnverified parses a token WITHOUT checking its signature; only the
// structure and the embedded expiry are examined. It exists so the edge
// guard can classify requests cheaply. It gives no cryptographic guarantee
// and must never gate data access on its own.
func (c *Codec) DecodeUnverified(tokenString string) (*Session, error) {
	claims := &SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return nil, ErrInvalidToken
	}
	return claims.session()
}

func (cl *SessionClaims) session() (*Session, error) {
	id, err := strconv.ParseUint(cl.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	var expires time.Time
	if cl.ExpiresAt != nil {
		expires = cl.ExpiresAt.Time
	}
	return &Session{
		UserID:    uint(id),
		Email:     cl.Email,
		Name:      cl.Name,
		Role:      cl.Role,
		ExpiresAt: expires,
	}, nil
}
