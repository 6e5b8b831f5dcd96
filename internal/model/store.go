package model

import "time"

// Store represents a row in the `stores` table.  Every store belongs to
// exactly one owner at creation time and is immutable afterwards.
//
// Fields:
//  ID        – primary key identifier of the store.
//  Name      – store display name.
//  Address   – postal address of the store.
//  OwnerID   – foreign key to the owning user.
//  CreatedAt – timestamp of creation.
type Store struct {
	ID        uint64    `json:"id"`         // stores.id
	Name      string    `json:"name"`       // stores.name
	Address   string    `json:"address"`    // stores.address
	OwnerID   uint64    `json:"owner_id"`   // stores.owner_id
	CreatedAt time.Time `json:"created_at"` // stores.created_at
}
