// Package queue defines message payloads exchanged over the message broker.
package queue

// RatingSubmittedEvent is published after a rating upsert succeeds. It
// carries enough information for downstream consumers to log, notify, or
// feed analytics without querying the primary database. Because submission
// is an upsert, consumers cannot tell a first rating from an overwrite; the
// event reflects the latest value only.
type RatingSubmittedEvent struct {
    UserID      uint64 `json:"user_id"`
    StoreID     uint64 `json:"store_id"`
    Rating      uint8  `json:"rating"`
    SubmittedAt string `json:"submitted_at"`
}
