package qa

import "time"

// Client is a tenant workspace. The slug is embedded in routes and scopes
// every query made on behalf of a signed-in user.
type Client struct {
	ID        int64
	Slug      string
	Name      string
	LogoURL   string
	CreatedAt time.Time
}

// User is a dashboard account belonging to exactly one client.
type User struct {
	ID           int64
	ClientID     int64
	ClientSlug   string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
}
