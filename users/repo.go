package users

import "context"

// Update carries a partial admin-user update; nil fields are left unchanged.
type Update struct {
	Username     *string
	Email        *string
	PasswordHash *string
	IsActive     *bool
}

type Repo interface {
	Create(ctx context.Context, user *AdminUser) error
	Update(ctx context.Context, id string, update Update) (*AdminUser, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*AdminUser, error)
	GetByUsername(ctx context.Context, username string) (*AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	List(ctx context.Context) ([]*AdminUser, error)
}
