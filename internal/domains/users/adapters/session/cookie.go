// Package session issues and verifies the signed dashboard session cookie. The
// cookie carries only the user identity; privileges are resolved per request.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/users/domain"
)

const (
	DefaultCookieName = "dashboard_session"
	// MinPasswordLength is the shortest accepted signing secret.
	MinPasswordLength = 32
	issuer            = "order-dashboard"
)

var ErrInvalidSession = errors.New("invalid session cookie")

type userClaim struct {
	ID string `json:"id"`
}

type sessionClaims struct {
	User userClaim `json:"user"`
	jwt.RegisteredClaims
}

// Codec encodes and decodes HS256-signed session cookies.
type Codec struct {
	name   string
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

type Option func(*Codec)

// WithTTL bounds session lifetime. Zero keeps sessions valid until the secret
// rotates.
func WithTTL(ttl time.Duration) Option {
	return func(c *Codec) { c.ttl = ttl }
}

// WithSecure marks issued cookies Secure.
func WithSecure(secure bool) Option {
	return func(c *Codec) { c.secure = secure }
}

func withClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

func NewCodec(name, password string, opts ...Option) (*Codec, error) {
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("session password must be at least %d characters", MinPasswordLength)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultCookieName
	}
	c := &Codec{name: name, secret: []byte(password), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Name returns the cookie name.
func (c *Codec) Name() string { return c.name }

// Encode signs a session for userID.
func (c *Codec) Encode(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", domain.ErrEmptyUserID
	}
	now := c.now()
	claims := sessionClaims{
		User: userClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies value and returns its identity.
func (c *Codec) Decode(value string) (*domain.SessionIdentity, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if strings.TrimSpace(claims.User.ID) == "" {
		return nil, ErrInvalidSession
	}
	return &domain.SessionIdentity{UserID: claims.User.ID}, nil
}

// Read extracts the identity from r. A missing cookie yields nil, nil.
func (c *Codec) Read(r *http.Request) (*domain.SessionIdentity, error) {
	cookie, err := r.Cookie(c.name)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c.Decode(cookie.Value)
}

// Cookie wraps a signed value in an HTTP-only cookie.
func (c *Codec) Cookie(value string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if c.ttl > 0 {
		cookie.MaxAge = int(c.ttl.Seconds())
	}
	return cookie
}
