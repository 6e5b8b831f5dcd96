// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error strings. Handlers translate each
// sentinel into the matching HTTP status.
package repository

import "errors"

// ErrEmailExists is returned when an insert into the users table hits the
// unique key on the email column. Handlers should translate this into an
// HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a lookup or update targets a user id
// that does not exist. Handlers should translate this into an HTTP 404
// response.
var ErrUserNotFound = errors.New("user not found")

// ErrStoreNotFound is returned when a store lookup by id matches no row.
// Handlers should translate this into an HTTP 404 response.
var ErrStoreNotFound = errors.New("store not found")
