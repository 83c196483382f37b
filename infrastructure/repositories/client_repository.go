package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"qadash/database"
	"qadash/domain/contracts"
	"qadash/domain/qa"
)

// SQLClientRepository implements ClientRepository over SQLite.
type SQLClientRepository struct {
	*BaseRepository
}

// NewSQLClientRepository creates a client repository.
func NewSQLClientRepository(db *database.Database) *SQLClientRepository {
	return &SQLClientRepository{BaseRepository: NewBaseRepository(db)}
}

const clientColumns = "id, slug, name, COALESCE(logo_url, ''), created_at"

func (r *SQLClientRepository) scanClient(row *sql.Row) (*qa.Client, error) {
	var c qa.Client
	err := row.Scan(&c.ID, &c.Slug, &c.Name, &c.LogoURL, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}
	return &c, nil
}

// GetByID retrieves a client by its ID.
func (r *SQLClientRepository) GetByID(ctx context.Context, clientID int64) (*qa.Client, error) {
	row := r.Read().QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE id = ?", clientID)
	return r.scanClient(row)
}

// GetBySlug retrieves a client by its route slug.
func (r *SQLClientRepository) GetBySlug(ctx context.Context, slug string) (*qa.Client, error) {
	row := r.Read().QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE slug = ?", slug)
	return r.scanClient(row)
}

// ListAll retrieves all clients.
func (r *SQLClientRepository) ListAll(ctx context.Context) ([]*qa.Client, error) {
	rows, err := r.Read().QueryContext(ctx,
		"SELECT "+clientColumns+" FROM clients ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var result []*qa.Client
	for rows.Next() {
		var c qa.Client
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.LogoURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}

// SQLUserRepository implements UserRepository over SQLite.
type SQLUserRepository struct {
	*BaseRepository
}

// NewSQLUserRepository creates a user repository.
func NewSQLUserRepository(db *database.Database) *SQLUserRepository {
	return &SQLUserRepository{BaseRepository: NewBaseRepository(db)}
}

const userQuery = `
	SELECT u.id, u.client_id, c.slug, u.email, u.password_hash, u.name, u.role, u.created_at
	FROM users u
	JOIN clients c ON c.id = u.client_id
`

func (r *SQLUserRepository) scanUser(row *sql.Row) (*qa.User, error) {
	var u qa.User
	err := row.Scan(&u.ID, &u.ClientID, &u.ClientSlug, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

// GetByEmail retrieves a user with their client slug resolved.
func (r *SQLUserRepository) GetByEmail(ctx context.Context, email string) (*qa.User, error) {
	row := r.Read().QueryRowContext(ctx, userQuery+" WHERE u.email = ?", email)
	return r.scanUser(row)
}

// GetByID retrieves a user with their client slug resolved.
func (r *SQLUserRepository) GetByID(ctx context.Context, userID int64) (*qa.User, error) {
	row := r.Read().QueryRowContext(ctx, userQuery+" WHERE u.id = ?", userID)
	return r.scanUser(row)
}
