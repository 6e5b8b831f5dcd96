package repository

import (
	"context"
	"database/sql"

	"github.com/himanshu1091/store-rating-api/internal/model"
)

// StoreRepo provides persistence for store records. Stores are created by
// admins (for any owner) or by owners (for themselves) and are immutable
// afterwards; there is no update or delete path.
type StoreRepo struct{ DB *sql.DB }

func NewStoreRepo(db *sql.DB) *StoreRepo { return &StoreRepo{DB: db} }

// Create inserts a store row and populates the generated ID on the model.
func (r *StoreRepo) Create(ctx context.Context, s *model.Store) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO stores (name, address, owner_id) VALUES (?,?,?)",
		s.Name, s.Address, s.OwnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches a single store or ErrStoreNotFound.
func (r *StoreRepo) GetByID(ctx context.Context, id uint64) (model.Store, error) {
	var s model.Store
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,address,owner_id,created_at FROM stores WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Name, &s.Address, &s.OwnerID, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return s, ErrStoreNotFound
	}
	return s, err
}

// ListAll returns every store for the public directory.
func (r *StoreRepo) ListAll(ctx context.Context) ([]model.Store, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,address,owner_id,created_at FROM stores")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStores(rows)
}

// ListByOwner returns the stores belonging to one owner.
func (r *StoreRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Store, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,address,owner_id,created_at FROM stores WHERE owner_id=?",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStores(rows)
}

func scanStores(rows *sql.Rows) ([]model.Store, error) {
	stores := make([]model.Store, 0)
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.OwnerID, &s.CreatedAt); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}
