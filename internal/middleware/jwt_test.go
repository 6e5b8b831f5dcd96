package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/himanshu1091/store-rating-api/internal/model"
	"github.com/himanshu1091/store-rating-api/internal/utils"
)

const testSecret = "unit-test-secret"

// invoke runs JWTAuth over a request with the given Authorization header
// and reports the identity the downstream handler observed.
func invoke(t *testing.T, authHeader string) (*httptest.ResponseRecorder, Identity, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got Identity
	var seen bool
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		got, seen = CurrentIdentity(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, got, seen
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _, seen := invoke(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, seen)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	rec, _, seen := invoke(t, "Token abc.def.ghi")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, seen)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewSessionToken("other-secret", 7, model.RoleUser, 24)
	require.NoError(t, err)
	rec, _, seen := invoke(t, "Bearer "+tok.Token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, seen)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	// Mint a token whose exp already passed, signed with the right secret.
	claims := jwt.MapClaims{
		"sub":  float64(7),
		"role": "user",
		"exp":  time.Now().Add(-time.Hour).Unix(),
		"iat":  time.Now().Add(-25 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec, _, seen := invoke(t, "Bearer "+signed)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, seen)
}

func TestJWTAuthUnknownRoleClaim(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":  float64(7),
		"role": "superadmin",
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec, _, seen := invoke(t, "Bearer "+signed)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, seen)
}

func TestJWTAuthValidTokenAttachesIdentity(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, 42, model.RoleOwner, 24)
	require.NoError(t, err)

	rec, id, seen := invoke(t, "Bearer "+tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, seen)
	require.Equal(t, Identity{UserID: 42, Role: model.RoleOwner}, id)
}
