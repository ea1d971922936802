package composables

import (
	"context"
	"errors"

	"github.com/skillbase-io/skillbase/pkg/constants"
)

var ErrNoUserFound = errors.New("no user found in context")

// Role is the already-resolved authorization outcome attached to the
// request. Policy evaluation happens upstream; services only consume it.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleHRAdmin  Role = "hr_admin"
)

// User identifies the caller of the current request.
type User struct {
	ID   string
	Name string
	Role Role
}

func (u *User) IsPrivileged() bool {
	return u.Role == RoleHRAdmin
}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, constants.UserKey, u)
}

func UseUser(ctx context.Context) (*User, error) {
	u, ok := ctx.Value(constants.UserKey).(*User)
	if !ok || u == nil {
		return nil, ErrNoUserFound
	}
	return u, nil
}
