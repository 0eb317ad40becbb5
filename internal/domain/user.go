package domain

import "context"

// User is the persisted account row. The password column holds the value as
// received; see DESIGN.md before pointing this at a real deployment.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;size:191;not null" json:"username"`
	Password string `gorm:"size:191;not null" json:"-"`
}

func (User) TableName() string { return "users" }

// PublicUser is the listing projection; the password never crosses this type.
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}

type UserRepository interface {
	// Create inserts the row; a username collision surfaces ErrDuplicateUser.
	Create(ctx context.Context, u *User) error
	// FindByUsername returns (nil, nil) when no row matches.
	FindByUsername(ctx context.Context, username string) (*User, error)
	// List returns every row ordered by id ascending.
	List(ctx context.Context) ([]User, error)
}
