package usersvc

import (
	"context"

	"libraryfront/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.User, error)
	Detail(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, u *model.User) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type Service interface {
	List(ctx context.Context) ([]model.User, error)
	Detail(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, u *model.User) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.User, error) { return s.r.List(ctx) }
func (s *service) Detail(ctx context.Context, id string) (*model.User, error) {
	return s.r.Detail(ctx, id)
}
func (s *service) Update(ctx context.Context, id string, u *model.User) (*model.User, error) {
	u.ID = id
	return s.r.Update(ctx, id, u)
}
func (s *service) Delete(ctx context.Context, id string) error { return s.r.Delete(ctx, id) }
