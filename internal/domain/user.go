package domain

import (
	"regexp"
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is one record of the users collection. Email is stored normalized
// (trimmed, lower-cased) and is unique across the collection. Password holds
// a bcrypt hash; it is stripped before the record is exposed as a session
// identity or persisted under the session key.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email"`
	Password  string     `json:"password,omitempty"`
	Role      Role       `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Redacted returns a copy safe to hand out as the session identity.
func (u User) Redacted() User {
	u.Password = ""
	return u
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	Role     *Role
}

// NormalizeEmail applies the canonical form used for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePassword trims surrounding whitespace before hashing or comparing.
func NormalizePassword(password string) string {
	return strings.TrimSpace(password)
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail checks the local@domain.tld shape of an already-normalized email.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
