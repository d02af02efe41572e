package models

// ExternalUser is a read-only record from the external user directory. It
// is never persisted.
type ExternalUser struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
