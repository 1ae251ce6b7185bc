// repository/rental/repo.go
package rental

import (
	"context"
	"fmt"

	"libraryfront/model"
	"libraryfront/repository/libraryapi"
)

type Repo interface {
	List(ctx context.Context) ([]model.Rental, error)
	Detail(ctx context.Context, id int64) (*model.Rental, error)
	Create(ctx context.Context, r *model.Rental) (*model.Rental, error)
	Update(ctx context.Context, id int64, r *model.Rental) (*model.Rental, error)
	Delete(ctx context.Context, id int64) error

	// Transitions
	ReturnBook(ctx context.Context, id int64) (*model.Rental, error)
	// Extend posts both days and the resulting end date; backends read one or the other.
	Extend(ctx context.Context, id int64, days int, end model.Date) (*model.Rental, error)
}

type repo struct {
	c *libraryapi.Client
}

func New(c *libraryapi.Client) Repo { return &repo{c: c} }

func rentalPath(id int64) string { return fmt.Sprintf("/rentals/%d/", id) }

func (r *repo) List(ctx context.Context) ([]model.Rental, error) {
	var page model.Page[model.Rental]
	if err := r.c.Get(ctx, "/rentals/", &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (r *repo) Detail(ctx context.Context, id int64) (*model.Rental, error) {
	var out model.Rental
	if err := r.c.Get(ctx, rentalPath(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Create(ctx context.Context, in *model.Rental) (*model.Rental, error) {
	var out model.Rental
	if err := r.c.Post(ctx, "/rentals/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Update(ctx context.Context, id int64, in *model.Rental) (*model.Rental, error) {
	var out model.Rental
	if err := r.c.Put(ctx, rentalPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	return r.c.Delete(ctx, rentalPath(id))
}

func (r *repo) ReturnBook(ctx context.Context, id int64) (*model.Rental, error) {
	var out model.Rental
	if err := r.c.Post(ctx, rentalPath(id)+"return_book/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type extendBody struct {
	Days    int         `json:"days"`
	EndDate *model.Date `json:"end_date,omitempty"`
}

func (r *repo) Extend(ctx context.Context, id int64, days int, end model.Date) (*model.Rental, error) {
	body := extendBody{Days: days}
	if !end.IsZero() {
		body.EndDate = &end
	}
	var out model.Rental
	if err := r.c.Post(ctx, rentalPath(id)+"extend_rental/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
