// Package repository implements per-entity data access over GORM and the
// unit of work that groups the repositories of one request.
package repository

import "errors"

// ErrNotFound is returned when a lookup, update, or delete matches no row.
var ErrNotFound = errors.New("record not found")
