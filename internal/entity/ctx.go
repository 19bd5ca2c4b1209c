package entity

import (
	"context"
	"errors"
)

type CtxKeyUser struct{}

func UserFromContext(ctx context.Context) (User, error) {
	user, ok := ctx.Value(CtxKeyUser{}).(User)
	if !ok {
		return User{}, errors.New("data type casting")
	}

	return user, nil
}

func SetUserToContext(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, CtxKeyUser{}, user)
}

type CtxKeyIP struct{}

func IPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(CtxKeyIP{}).(string)
	return ip
}
