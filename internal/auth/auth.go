// Package auth carries the authenticated caller through a request context.
// The JWT parsing itself lives in the server's middleware; handlers only ask
// whether a user is present.
package auth

import "context"

type ctxkey string

const userkey ctxkey = "autheduser"

// User identifies an authenticated API caller.
type User struct {
	UID      int
	Username string
}

// StoreUserInContext returns a child context carrying the caller identity.
func StoreUserInContext(ctx context.Context, uid int, username string) context.Context {
	return context.WithValue(ctx, userkey, &User{UID: uid, Username: username})
}

// UserFromContext returns the caller identity, or nil for anonymous requests.
func UserFromContext(ctx context.Context) *User {
	u, ok := ctx.Value(userkey).(*User)
	if !ok {
		return nil
	}
	return u
}
