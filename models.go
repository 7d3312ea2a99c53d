package auth

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the user model. Token holds the only live session for the user,
// nil means the user is logged out.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Username      string     `bun:"username,notnull,unique" json:"username"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Token         *string    `bun:"token,unique" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// LoggedIn reports whether the user holds a live token
func (u *User) LoggedIn() bool {
	return u != nil && u.Token != nil && *u.Token != ""
}

// AccountResponse is the payload returned by account creation and login
type AccountResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// NewAccountResponse builds the response for a user holding a token
func NewAccountResponse(u *User) AccountResponse {
	res := AccountResponse{
		ID:       u.ID,
		Username: u.Username,
	}
	if u.Token != nil {
		res.Token = *u.Token
	}
	return res
}
