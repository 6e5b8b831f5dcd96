package handler

import (
	"context"
	"net/http"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/himanshu1091/store-rating-api/internal/middleware"
	"github.com/himanshu1091/store-rating-api/internal/model"
	"github.com/himanshu1091/store-rating-api/internal/queue"
	"github.com/himanshu1091/store-rating-api/internal/repository"
)

// eventSink replaces the RabbitMQ publisher in tests.
type eventSink struct {
	mu     sync.Mutex
	events []queue.RatingSubmittedEvent
	done   chan struct{}
}

func newEventSink() *eventSink { return &eventSink{done: make(chan struct{}, 8)} }

func (s *eventSink) publish(_ context.Context, ev queue.RatingSubmittedEvent) error {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func asUser(c echo.Context, id uint64, role model.Role) {
	middleware.SetIdentity(c, middleware.Identity{UserID: id, Role: role})
}

func TestSubmitRejectsOutOfRangeBeforePersistence(t *testing.T) {
	db, mock := newMockDB(t)
	h := NewRatingHandler(repository.NewRatingRepo(db))
	h.PublishEvent = newEventSink().publish

	for _, body := range []string{
		`{"storeId":3,"rating":0}`,
		`{"storeId":3,"rating":6}`,
		`{"storeId":3,"rating":-1}`,
		`{"rating":4}`,
	} {
		c, rec := newJSONContext(t, http.MethodPost, "/api/ratings/submit", body)
		asUser(c, 7, model.RoleUser)
		require.NoError(t, h.Submit(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
	// Nothing reached the database.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitWithoutIdentityIsUnauthorized(t *testing.T) {
	db, _ := newMockDB(t)
	h := NewRatingHandler(repository.NewRatingRepo(db))

	c, rec := newJSONContext(t, http.MethodPost, "/api/ratings/submit", `{"storeId":3,"rating":4}`)
	require.NoError(t, h.Submit(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmitUpsertsAndPublishesEvent(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ratings")).
		WithArgs(uint64(7), uint64(3), uint8(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	sink := newEventSink()
	h := NewRatingHandler(repository.NewRatingRepo(db))
	h.PublishEvent = sink.publish

	c, rec := newJSONContext(t, http.MethodPost, "/api/ratings/submit", `{"storeId":3,"rating":4}`)
	asUser(c, 7, model.RoleUser)
	require.NoError(t, h.Submit(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())

	<-sink.done
	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.events, 1)
	require.Equal(t, uint64(7), sink.events[0].UserID)
	require.Equal(t, uint64(3), sink.events[0].StoreID)
	require.Equal(t, uint8(4), sink.events[0].Rating)
}

func TestAverageNullWhenNoRatings(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT AVG(rating) FROM ratings WHERE store_id=?")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(nil))

	h := NewRatingHandler(repository.NewRatingRepo(db))
	c, rec := newJSONContext(t, http.MethodGet, "/", "")
	c.SetPath("/api/ratings/average/:storeId")
	c.SetParamNames("storeId")
	c.SetParamValues("3")
	require.NoError(t, h.Average(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"averageRating":null}`, rec.Body.String())
}

func TestAverageRoundsToTwoDecimals(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT AVG(rating) FROM ratings WHERE store_id=?")).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(3.66667))

	h := NewRatingHandler(repository.NewRatingRepo(db))
	c, rec := newJSONContext(t, http.MethodGet, "/", "")
	c.SetPath("/api/ratings/average/:storeId")
	c.SetParamNames("storeId")
	c.SetParamValues("3")
	require.NoError(t, h.Average(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"averageRating":3.67}`, rec.Body.String())
}

func TestRosterReturnsRaterIdentities(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT r.user_id, u.name, r.rating").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "name", "rating"}).
			AddRow(7, "Ana", 2))

	h := NewRatingHandler(repository.NewRatingRepo(db))
	c, rec := newJSONContext(t, http.MethodGet, "/", "")
	c.SetPath("/api/ratings/store/:id/details")
	c.SetParamNames("id")
	c.SetParamValues("3")
	asUser(c, 9, model.RoleOwner)
	require.NoError(t, h.Roster(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"user_id":7,"user_name":"Ana","rating":2}]`, rec.Body.String())
}

func TestOwnerAverageNoDataSentinel(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT AVG\\(t.store_avg\\), COUNT\\(\\*\\) FROM").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"avg", "count"}).AddRow(nil, 0))

	h := NewRatingHandler(repository.NewRatingRepo(db))
	c, rec := newJSONContext(t, http.MethodGet, "/api/ratings/owner/average", "")
	asUser(c, 9, model.RoleOwner)
	require.NoError(t, h.OwnerAverage(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"averageRating":null,"ratedStores":0}`, rec.Body.String())
}
