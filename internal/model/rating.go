package model

import "time"

// Rating represents a row in the `ratings` table.  The pair
// (user_id, store_id) carries a unique key so each user holds at most one
// rating per store; resubmissions overwrite the previous value in place.
//
// Fields:
//  ID        – primary key identifier of the rating row.
//  UserID    – the rater.
//  StoreID   – the rated store.
//  Rating    – integer score between 1 and 5 inclusive.
//  CreatedAt – timestamp of first submission.
//  UpdatedAt – timestamp of the latest overwrite.
type Rating struct {
	ID        uint64    `json:"id"`         // ratings.id
	UserID    uint64    `json:"user_id"`    // ratings.user_id
	StoreID   uint64    `json:"store_id"`   // ratings.store_id
	Rating    uint8     `json:"rating"`     // ratings.rating
	CreatedAt time.Time `json:"created_at"` // ratings.created_at
	UpdatedAt time.Time `json:"updated_at"` // ratings.updated_at
}

// RosterEntry is one line of the per-store rating roster shown to owners
// and admins: who rated the store and with which score.  Entries keep
// storage order; consumers that need a defined order must sort themselves.
type RosterEntry struct {
	UserID   uint64 `json:"user_id"`   // ratings.user_id
	UserName string `json:"user_name"` // users.name joined in
	Rating   uint8  `json:"rating"`    // ratings.rating
}
