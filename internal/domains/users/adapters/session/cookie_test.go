package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testPassword = "0123456789abcdef0123456789abcdef"

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec("", testPassword)
	require.NoError(t, err)
	require.Equal(t, DefaultCookieName, codec.Name())

	value, err := codec.Encode("admin")
	require.NoError(t, err)

	identity, err := codec.Decode(value)
	require.NoError(t, err)
	require.Equal(t, "admin", identity.UserID)
}

func TestNewCodec_RejectsShortPassword(t *testing.T) {
	_, err := NewCodec("s", "short")
	require.Error(t, err)
}

func TestCodec_RejectsForeignSignature(t *testing.T) {
	issuerCodec, err := NewCodec("s", strings.Repeat("x", 32))
	require.NoError(t, err)
	value, err := issuerCodec.Encode("admin")
	require.NoError(t, err)

	codec, err := NewCodec("s", testPassword)
	require.NoError(t, err)
	_, err = codec.Decode(value)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestCodec_RejectsOtherAlgorithms(t *testing.T) {
	codec, err := NewCodec("s", testPassword)
	require.NoError(t, err)
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, sessionClaims{
		User:             userClaim{ID: "admin"},
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer},
	})
	value, err := token.SignedString([]byte(testPassword))
	require.NoError(t, err)

	_, err = codec.Decode(value)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestCodec_ExpiresWithTTL(t *testing.T) {
	now := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	codec, err := NewCodec("s", testPassword, WithTTL(time.Hour), withClock(func() time.Time { return now }))
	require.NoError(t, err)
	value, err := codec.Encode("admin")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = codec.Decode(value)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestCodec_ReadMissingCookieIsNoIdentity(t *testing.T) {
	codec, err := NewCodec("s", testPassword)
	require.NoError(t, err)

	identity, err := codec.Read(httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.NoError(t, err)
	require.Nil(t, identity)
}

func TestCodec_ReadFromRequest(t *testing.T) {
	codec, err := NewCodec("s", testPassword, WithSecure(true))
	require.NoError(t, err)
	value, err := codec.Encode("u1")
	require.NoError(t, err)
	cookie := codec.Cookie(value)
	require.True(t, cookie.Secure)
	require.True(t, cookie.HttpOnly)
	require.Zero(t, cookie.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.AddCookie(cookie)
	identity, err := codec.Read(req)
	require.NoError(t, err)
	require.Equal(t, "u1", identity.UserID)
}
