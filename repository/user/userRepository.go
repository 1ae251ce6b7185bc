package userrepo

import (
	"context"
	"net/url"

	"libraryfront/model"
	"libraryfront/repository/libraryapi"
)

type Repo interface {
	List(ctx context.Context) ([]model.User, error)
	Detail(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Update(ctx context.Context, id string, u *model.User) (*model.User, error)
	Delete(ctx context.Context, id string) error
	Login(ctx context.Context, id string) (*model.User, error)
}

type repo struct{ c *libraryapi.Client }

func New(c *libraryapi.Client) Repo { return &repo{c} }

func userPath(id string) string { return "/users/" + url.PathEscape(id) + "/" }

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	var page model.Page[model.User]
	if err := r.c.Get(ctx, "/users/", &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (r *repo) Detail(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	if err := r.c.Get(ctx, userPath(id), u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	out := &model.User{}
	if err := r.c.Post(ctx, "/users/", u, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) Update(ctx context.Context, id string, u *model.User) (*model.User, error) {
	out := &model.User{}
	if err := r.c.Put(ctx, userPath(id), u, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	return r.c.Delete(ctx, userPath(id))
}

func (r *repo) Login(ctx context.Context, id string) (*model.User, error) {
	out := &model.User{}
	if err := r.c.Post(ctx, "/users/login/", map[string]string{"id": id}, out); err != nil {
		return nil, err
	}
	return out, nil
}
