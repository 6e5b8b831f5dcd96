package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/himanshu1091/store-rating-api/internal/handler"
	"github.com/himanshu1091/store-rating-api/internal/model"
	"github.com/himanshu1091/store-rating-api/internal/repository"
	"github.com/himanshu1091/store-rating-api/internal/utils"
	"github.com/himanshu1091/store-rating-api/internal/validate"
)

const testSecret = "router-test-secret"

// newServer wires rating routes against a sqlmock-backed repository, the
// same shape main() builds.
func newServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	e := echo.New()
	e.Validator = validate.New()
	h := handler.NewRatingHandler(repository.NewRatingRepo(db))
	RegisterRatings(e, h, testSecret, nil)
	return e, mock
}

func do(e *echo.Echo, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRosterRouteWithoutTokenIs401(t *testing.T) {
	e, _ := newServer(t)
	rec := do(e, http.MethodGet, "/api/ratings/store/3/details", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRosterRouteWithExpiredTokenIs401(t *testing.T) {
	e, _ := newServer(t)
	claims := jwt.MapClaims{
		"sub":  float64(7),
		"role": "owner",
		"exp":  time.Now().Add(-time.Minute).Unix(),
		"iat":  time.Now().Add(-25 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/api/ratings/store/3/details", expired)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRosterRouteWithUserRoleIs403NamingRoles(t *testing.T) {
	e, _ := newServer(t)
	tok, err := utils.NewSessionToken(testSecret, 7, model.RoleUser, 24)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/api/ratings/store/3/details", tok.Token)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "only [owner, admin] allowed")
}

func TestRosterRouteWithOwnerRoleSucceeds(t *testing.T) {
	e, mock := newServer(t)
	mock.ExpectQuery("SELECT r.user_id, u.name, r.rating").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "rating"}).
			AddRow(7, "Ana", 2))

	tok, err := utils.NewSessionToken(testSecret, 9, model.RoleOwner, 24)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/api/ratings/store/3/details", tok.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"Ana"`)
}

func TestPublicAverageRouteNeedsNoToken(t *testing.T) {
	e, mock := newServer(t)
	mock.ExpectQuery("SELECT AVG\\(rating\\) FROM ratings").
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(nil))

	rec := do(e, http.MethodGet, "/api/ratings/average/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"averageRating":null}`, rec.Body.String())
}
