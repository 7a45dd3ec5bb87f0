package user

import "context"

type Repository interface {
	UpsertUser(ctx context.Context, user *User) error
}
