package auth

import (
	"context"
	"testing"

	"github.com/matryer/is"
)

func TestUserRoundTrip(t *testing.T) {
	is := is.New(t)
	ctx := StoreUserInContext(context.Background(), 42, "cesar")
	u := UserFromContext(ctx)
	is.True(u != nil)
	is.Equal(u.UID, 42)
	is.Equal(u.Username, "cesar")
}

func TestUserFromContextAnonymous(t *testing.T) {
	is := is.New(t)
	is.Equal(UserFromContext(context.Background()), nil)
}
