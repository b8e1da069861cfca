package auth

import "context"

type ctxKey string

const userKey ctxKey = "userClaims"

// Claims is the authenticated identity carried on a request context.
type Claims struct {
	UserID uint
	Role   string
	JWTID  string
}

func (c Claims) HasRole(role string) bool {
	return c.Role == role
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, userKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(userKey).(Claims); ok {
		return v
	}
	return Claims{}
}

// UserID returns the authenticated user id, or zero when unauthenticated.
func UserID(ctx context.Context) uint {
	return FromContext(ctx).UserID
}
