package repositories

import (
	"database/sql"
	"time"

	"qadash/database"
)

// BaseRepository provides common SQL type conversion methods and database
// access that can be embedded in all repositories.
type BaseRepository struct {
	db *database.Database
}

// NewBaseRepository creates a new BaseRepository with database access
func NewBaseRepository(db *database.Database) *BaseRepository {
	return &BaseRepository{db: db}
}

// Read returns the pooled read connection for SELECT operations.
func (b *BaseRepository) Read() *sql.DB {
	return b.db.ReadDB()
}

// Write returns the serialized write connection for INSERT/UPDATE/DELETE.
func (b *BaseRepository) Write() *sql.DB {
	return b.db.WriteDB()
}

// WithTx executes a function within a write transaction
func (b *BaseRepository) WithTx(fn func(*sql.Tx) error) error {
	return b.db.WithTx(fn)
}

// FromNullString safely converts sql.NullString to string.
// Returns empty string if the SQL value is NULL.
func (b *BaseRepository) FromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// FromNullInt64 safely converts sql.NullInt64 to int64.
// Returns 0 if the SQL value is NULL.
func (b *BaseRepository) FromNullInt64(ni sql.NullInt64) int64 {
	if !ni.Valid {
		return 0
	}
	return ni.Int64
}

// FromNullInt64ToPointer safely converts sql.NullInt64 to *int64.
// Returns nil if the SQL value is NULL.
func (b *BaseRepository) FromNullInt64ToPointer(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	return &ni.Int64
}

// FromNullTime safely converts sql.NullTime to *time.Time.
// Returns nil if the SQL value is NULL.
func (b *BaseRepository) FromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

// ToNullString converts a string to sql.NullString.
// Empty string becomes NULL for database storage.
func (b *BaseRepository) ToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// ToNullInt64 converts a *int64 to sql.NullInt64.
// Nil pointer becomes NULL for database storage.
func (b *BaseRepository) ToNullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

// ToNullTime converts a *time.Time to sql.NullTime.
// Nil pointer becomes NULL for database storage.
func (b *BaseRepository) ToNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
