// Package repository implements the record-store collaborators over MySQL.
// Sentinel errors let the service and handler layers react to specific
// failure cases without depending on database/sql details.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row.  Handlers translate
// it into 404 for public fetches; the auth service folds it into its own
// credential errors so lookups never leak account existence.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert collides with the unique index
// on business_email.  The index, not the pre-insert check, is what makes
// registration safe against concurrent duplicates.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidSort is returned when a directory search names a sort column
// outside the whitelist.
var ErrInvalidSort = errors.New("invalid sort field")
