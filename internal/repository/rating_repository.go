package repository

import (
	"context"
	"database/sql"

	"github.com/himanshu1091/store-rating-api/internal/model"
)

// RatingRepo provides persistence and aggregation for store ratings. The
// ratings table carries a unique key on (user_id, store_id) so a user holds
// at most one rating per store; the database enforces that invariant, not
// application code.
type RatingRepo struct{ DB *sql.DB }

func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{DB: db} }

// Upsert records a rating as a single atomic statement. Two concurrent
// submissions by the same user for the same store cannot produce a
// duplicate row or a lost update: the unique key plus ON DUPLICATE KEY
// UPDATE resolve the race inside MySQL.
func (r *RatingRepo) Upsert(ctx context.Context, userID, storeID uint64, rating uint8) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO ratings (user_id, store_id, rating) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE rating = VALUES(rating)`,
		userID, storeID, rating)
	return err
}

// AverageForStore computes the arithmetic mean of all ratings for a store.
// A store with zero ratings yields nil, never 0: the caller must be able to
// distinguish "no ratings yet" from "rated zero".
func (r *RatingRepo) AverageForStore(ctx context.Context, storeID uint64) (*float64, error) {
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx,
		"SELECT AVG(rating) FROM ratings WHERE store_id=?", storeID).Scan(&avg)
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	v := avg.Float64
	return &v, nil
}

// ListByStore returns the raw rating rows for a store in storage order.
func (r *RatingRepo) ListByStore(ctx context.Context, storeID uint64) ([]model.Rating, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,store_id,rating,created_at,updated_at FROM ratings WHERE store_id=?",
		storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRatings(rows)
}

// ListByUser returns every rating a user has submitted.
func (r *RatingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Rating, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,store_id,rating,created_at,updated_at FROM ratings WHERE user_id=?",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRatings(rows)
}

// ForUserAndStore fetches one user's rating of one store. sql.ErrNoRows is
// passed through so handlers can render an empty body instead of an error.
func (r *RatingRepo) ForUserAndStore(ctx context.Context, userID, storeID uint64) (model.Rating, error) {
	var m model.Rating
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,store_id,rating,created_at,updated_at FROM ratings WHERE user_id=? AND store_id=? LIMIT 1",
		userID, storeID).Scan(&m.ID, &m.UserID, &m.StoreID, &m.Rating, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// RosterForStore joins each rating of a store with the rater's display
// name. No ORDER BY: the roster keeps storage order and consumers that
// need determinism sort on their side.
func (r *RatingRepo) RosterForStore(ctx context.Context, storeID uint64) ([]model.RosterEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.user_id, u.name, r.rating
		 FROM ratings r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.store_id = ?`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roster := make([]model.RosterEntry, 0)
	for rows.Next() {
		var e model.RosterEntry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.Rating); err != nil {
			return nil, err
		}
		roster = append(roster, e)
	}
	return roster, rows.Err()
}

// OwnerAverage computes the mean of the per-store average ratings across
// all stores of one owner, plus the number of stores that have at least one
// rating. This is a mean of means: a store with a single 5-star rating
// weighs the same as a store with a hundred ratings averaging 3. The
// average is nil when none of the owner's stores has been rated.
func (r *RatingRepo) OwnerAverage(ctx context.Context, ownerID uint64) (*float64, int, error) {
	var avg sql.NullFloat64
	var rated int
	err := r.DB.QueryRowContext(ctx,
		`SELECT AVG(t.store_avg), COUNT(*) FROM (
		   SELECT AVG(r.rating) AS store_avg
		   FROM ratings r
		   JOIN stores s ON s.id = r.store_id
		   WHERE s.owner_id = ?
		   GROUP BY s.id
		 ) t`, ownerID).Scan(&avg, &rated)
	if err != nil {
		return nil, 0, err
	}
	if !avg.Valid {
		return nil, 0, nil
	}
	v := avg.Float64
	return &v, rated, nil
}

func scanRatings(rows *sql.Rows) ([]model.Rating, error) {
	ratings := make([]model.Rating, 0)
	for rows.Next() {
		var m model.Rating
		if err := rows.Scan(&m.ID, &m.UserID, &m.StoreID, &m.Rating, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, m)
	}
	return ratings, rows.Err()
}
