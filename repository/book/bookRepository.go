package bookrepo

import (
	"context"
	"fmt"

	"libraryfront/model"
	"libraryfront/repository/libraryapi"
)

type Book = model.Book

type Repo interface {
	List(ctx context.Context) ([]Book, error)
	Detail(ctx context.Context, id int64) (*Book, error)
	Create(ctx context.Context, b *Book) (*Book, error)
	Update(ctx context.Context, id int64, b *Book) (*Book, error)
	Delete(ctx context.Context, id int64) error
	AddReview(ctx context.Context, id int64, r model.Review) (*model.Review, error)
}

type repo struct{ c *libraryapi.Client }

func New(c *libraryapi.Client) Repo { return &repo{c} }

func bookPath(id int64) string { return fmt.Sprintf("/books/%d/", id) }

func (r *repo) List(ctx context.Context) ([]Book, error) {
	var page model.Page[Book]
	if err := r.c.Get(ctx, "/books/", &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (r *repo) Detail(ctx context.Context, id int64) (*Book, error) {
	var b Book
	if err := r.c.Get(ctx, bookPath(id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, b *Book) (*Book, error) {
	var out Book
	if err := r.c.Post(ctx, "/books/", b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Update(ctx context.Context, id int64, b *Book) (*Book, error) {
	var out Book
	if err := r.c.Put(ctx, bookPath(id), b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.c.Delete(ctx, bookPath(id))
}

func (r *repo) AddReview(ctx context.Context, id int64, rv model.Review) (*model.Review, error) {
	var out model.Review
	if err := r.c.Post(ctx, bookPath(id)+"add_review/", rv, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
