package booksvc

import (
	"context"
	"errors"
	"strings"

	"libraryfront/model"
	repo "libraryfront/repository/book"

	"golang.org/x/sync/errgroup"
)

type Book = repo.Book

var (
	ErrInvalidBook   = errors.New("invalid book payload")
	ErrInvalidReview = errors.New("invalid review")
)

type Repo interface {
	List(ctx context.Context) ([]Book, error)
	Detail(ctx context.Context, id int64) (*Book, error)
	Create(ctx context.Context, b *Book) (*Book, error)
	Update(ctx context.Context, id int64, b *Book) (*Book, error)
	Delete(ctx context.Context, id int64) error
	AddReview(ctx context.Context, id int64, r model.Review) (*model.Review, error)
}

// RentalLister is the slice of the rentals resource the detail view needs.
type RentalLister interface {
	List(ctx context.Context) ([]model.Rental, error)
}

// Filters feeds the catalog filter dropdown.
type Filters struct {
	Categories []string `json:"categories"`
	Languages  []string `json:"languages"`
}

// DetailView is a book together with what the given user may do with it.
type DetailView struct {
	Book       *Book         `json:"book"`
	IsRented   bool          `json:"is_rented"`
	UserRental *model.Rental `json:"user_rental,omitempty"`
	CanRent    bool          `json:"can_rent"`
	CanExtend  bool          `json:"can_extend"`
}

type Service interface {
	List(ctx context.Context, q Query) ([]Book, error)
	Filters(ctx context.Context) (*Filters, error)
	// Detail derives the rent/extend options for userID; "" means nobody is logged in.
	Detail(ctx context.Context, id int64, userID string) (*DetailView, error)
	AddReview(ctx context.Context, id int64, r model.Review) (*model.Review, error)

	Create(ctx context.Context, b *Book) (*Book, error)
	Update(ctx context.Context, id int64, b *Book) (*Book, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	r       Repo
	rentals RentalLister
}

func New(r Repo, rentals RentalLister) Service { return &service{r: r, rentals: rentals} }

func (s *service) List(ctx context.Context, q Query) ([]Book, error) {
	books, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	if q.Empty() {
		return books, nil
	}
	m := newMatcher(q)
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if m.Match(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *service) Filters(ctx context.Context) (*Filters, error) {
	books, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	f := &Filters{Categories: []string{}, Languages: []string{}}
	seenCat := map[string]bool{}
	seenLang := map[string]bool{}
	for _, b := range books {
		if c := model.Val(b.Category); c != "" && !seenCat[c] {
			seenCat[c] = true
			f.Categories = append(f.Categories, c)
		}
		if l := model.Val(b.Language); l != "" && !seenLang[l] {
			seenLang[l] = true
			f.Languages = append(f.Languages, l)
		}
	}
	return f, nil
}

func (s *service) Detail(ctx context.Context, id int64, userID string) (*DetailView, error) {
	var (
		book    *Book
		rentals []model.Rental
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		book, err = s.r.Detail(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		rentals, err = s.rentals.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	v := &DetailView{Book: book}
	for i := range rentals {
		r := rentals[i]
		if r.BookID != id || r.Returned {
			continue
		}
		v.IsRented = true
		if userID != "" && r.UserID == userID && v.UserRental == nil {
			v.UserRental = &r
		}
	}
	v.CanRent = userID != "" && v.UserRental == nil && book.Available
	v.CanExtend = v.UserRental != nil && !v.UserRental.Extended
	return v, nil
}

func (s *service) AddReview(ctx context.Context, id int64, r model.Review) (*model.Review, error) {
	r.User = strings.TrimSpace(r.User)
	r.Comment = strings.TrimSpace(r.Comment)
	if r.User == "" || r.Comment == "" || r.Rating < model.MinRating || r.Rating > model.MaxRating {
		return nil, ErrInvalidReview
	}
	return s.r.AddReview(ctx, id, r)
}

func (s *service) Create(ctx context.Context, b *Book) (*Book, error) {
	if b == nil || strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Author) == "" {
		return nil, ErrInvalidBook
	}
	return s.r.Create(ctx, b)
}

func (s *service) Update(ctx context.Context, id int64, b *Book) (*Book, error) {
	if b == nil || strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Author) == "" {
		return nil, ErrInvalidBook
	}
	b.ID = id
	return s.r.Update(ctx, id, b)
}

func (s *service) Delete(ctx context.Context, id int64) error { return s.r.Delete(ctx, id) }
