package domain

import (
	"strings"

	"github.com/google/uuid"
)

// User is the signed-in shopper. Authentication is simulated: any
// credentials are accepted, but each email is its own account with its own
// cart.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

const (
	demoName   = "Demo User"
	demoEmail  = "demo@example.com"
	demoAvatar = "https://randomuser.me/api/portraits/men/32.jpg"
)

// UserID derives a stable account id from an email address. Case and
// surrounding whitespace are ignored.
func UserID(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+normalized)).String()
}

// NewUser returns the account for email. An empty name falls back to the
// demo display name.
func NewUser(name, email string) User {
	name = strings.TrimSpace(name)
	if name == "" {
		name = demoName
	}
	email = strings.TrimSpace(email)
	return User{
		ID:     UserID(email),
		Name:   name,
		Email:  email,
		Avatar: demoAvatar,
	}
}

// DemoUser returns the demo account.
func DemoUser() User {
	return NewUser(demoName, demoEmail)
}

// SessionID returns the cart session key owned by the user.
func (u User) SessionID() string {
	return "user:" + u.ID
}
