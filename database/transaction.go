package database

import (
	"fmt"

	"gorm.io/gorm"
)

// WithTransaction executes fn inside a single database transaction. Every
// read and write fn performs must go through the tx handle it receives.
//
// If fn returns nil the transaction is committed and all writes become
// visible at once. If fn returns an error, or panics, the transaction is
// rolled back and no writes persist; the original error is returned wrapped
// with transaction context. The underlying session is released on every exit
// path either way.
//
// Nesting is not supported: each top-level operation opens exactly one unit.
func WithTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if err := db.Transaction(fn); err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
