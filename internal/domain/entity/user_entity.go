package entity

import "time"

// User is the aggregate root for accounts.
// Password holds the bcrypt hash; it must never leave the API boundary.
type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRef is the minimal public projection of an account, used for social
// edges and comment authors.
type UserRef struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}
