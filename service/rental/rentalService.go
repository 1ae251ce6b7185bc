package rental

import (
	"context"
	"errors"
	"math"
	"slices"
	"time"

	"libraryfront/model"
	"libraryfront/repository/libraryapi"

	"golang.org/x/sync/errgroup"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound      ErrCode = "BOOK_NOT_FOUND"
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrNotAvailable      ErrCode = "NOT_AVAILABLE"
	ErrAlreadyRenting    ErrCode = "ALREADY_RENTING"
	ErrNotOwner          ErrCode = "NOT_OWNER"
	ErrAlreadyReturned   ErrCode = "ALREADY_RETURNED"
	ErrAlreadyExtended   ErrCode = "ALREADY_EXTENDED"
	ErrInvalidDays       ErrCode = "INVALID_DAYS"
	ErrInvalidDates      ErrCode = "INVALID_DATES"
	ErrAvailabilityStale ErrCode = "AVAILABILITY_NOT_UPDATED"
)

type codedError struct {
	code ErrCode
	err  error
}

func (e codedError) Error() string {
	if e.err != nil {
		return string(e.code) + ": " + e.err.Error()
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }
func (e codedError) Unwrap() error { return e.err }

func makeErr(c ErrCode) error             { return codedError{code: c} }
func wrapErr(c ErrCode, err error) error { return codedError{code: c, err: err} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Rental lengths offered when renting and when extending.
var (
	RentDays   = []int{7, 14, 21, 30}
	ExtendDays = []int{7, 14}
)

// dto

type Rented struct {
	Rental *model.Rental `json:"rental"`
	Book   *model.Book   `json:"book"`
}

type Returned struct {
	Rental *model.Rental `json:"rental"`
	Book   *model.Book   `json:"book"`
	// BookRefreshed is false when the book could not be re-fetched and Book
	// is a local copy flipped back to available.
	BookRefreshed bool `json:"book_refreshed"`
}

// HistoryRow is a rental joined with its book. Book replaces the foreign key
// in the JSON form; it is nil when the book no longer exists.
type HistoryRow struct {
	model.Rental
	Book          *model.Book `json:"book"`
	DaysRemaining int         `json:"days_remaining"`
	Overdue       bool        `json:"overdue"`
}

type History struct {
	Active   []HistoryRow `json:"active"`
	Returned []HistoryRow `json:"returned"`
	Total    int          `json:"total"`
}

type BookRepo interface {
	List(ctx context.Context) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, id int64, b *model.Book) (*model.Book, error)
}

type Repo interface {
	List(ctx context.Context) ([]model.Rental, error)
	Detail(ctx context.Context, id int64) (*model.Rental, error)
	Create(ctx context.Context, r *model.Rental) (*model.Rental, error)
	Update(ctx context.Context, id int64, r *model.Rental) (*model.Rental, error)
	Delete(ctx context.Context, id int64) error
	ReturnBook(ctx context.Context, id int64) (*model.Rental, error)
	Extend(ctx context.Context, id int64, days int, end model.Date) (*model.Rental, error)
}

type Service interface {
	// Rent creates a rental from today for days and marks the book unavailable.
	Rent(ctx context.Context, userID string, bookID int64, days int) (*Rented, error)

	// Return closes userID's rental and brings back the refreshed book.
	Return(ctx context.Context, userID string, rentalID int64) (*Returned, error)

	// Extend lengthens userID's rental once.
	Extend(ctx context.Context, userID string, rentalID int64, days int) (*model.Rental, error)

	// Active lists userID's open rentals with days remaining.
	Active(ctx context.Context, userID string) ([]HistoryRow, error)

	// History lists all of userID's rentals split into active and returned.
	History(ctx context.Context, userID string) (*History, error)

	Detail(ctx context.Context, rentalID int64) (*model.Rental, error)

	// Reschedule rewrites the dates of userID's open rental.
	Reschedule(ctx context.Context, userID string, rentalID int64, start, end model.Date) (*model.Rental, error)

	// Delete removes userID's rental; an open one gives its book back.
	Delete(ctx context.Context, userID string, rentalID int64) error
}

// ----- Service implementation -----

type service struct {
	r   Repo
	b   BookRepo
	now func() time.Time
}

func New(r Repo, b BookRepo) Service {
	return &service{r: r, b: b, now: time.Now}
}

// NewWithClock is New with a fixed notion of "now", for days-remaining math.
func NewWithClock(r Repo, b BookRepo, now func() time.Time) Service {
	return &service{r: r, b: b, now: now}
}

func (s *service) Rent(ctx context.Context, userID string, bookID int64, days int) (*Rented, error) {
	if !slices.Contains(RentDays, days) {
		return nil, makeErr(ErrInvalidDays)
	}

	var (
		book    *model.Book
		rentals []model.Rental
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		book, err = s.b.Detail(gctx, bookID)
		return err
	})
	g.Go(func() (err error) {
		rentals, err = s.r.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if libraryapi.IsNotFound(err) {
			return nil, wrapErr(ErrBookNotFound, err)
		}
		return nil, err
	}

	if !book.Available {
		return nil, makeErr(ErrNotAvailable)
	}
	for _, r := range rentals {
		if r.HeldBy(userID, bookID) {
			return nil, makeErr(ErrAlreadyRenting)
		}
	}

	today := model.NewDate(s.now())
	created, err := s.r.Create(ctx, &model.Rental{
		BookID:    bookID,
		UserID:    userID,
		StartDate: today,
		EndDate:   today.AddDays(days),
	})
	if err != nil {
		return nil, err
	}

	// No rollback: the rental stays even if the book keeps showing as available.
	upd := *book
	upd.Available = false
	upd.Reviews = nil
	saved, err := s.b.Update(ctx, bookID, &upd)
	if err != nil {
		return &Rented{Rental: created, Book: book}, wrapErr(ErrAvailabilityStale, err)
	}
	return &Rented{Rental: created, Book: saved}, nil
}

func (s *service) mine(ctx context.Context, userID string, rentalID int64) (*model.Rental, error) {
	r, err := s.r.Detail(ctx, rentalID)
	if err != nil {
		if libraryapi.IsNotFound(err) {
			return nil, wrapErr(ErrNotFound, err)
		}
		return nil, err
	}
	if r.UserID != userID {
		return nil, makeErr(ErrNotOwner)
	}
	return r, nil
}

// owned is mine restricted to rentals still out.
func (s *service) owned(ctx context.Context, userID string, rentalID int64) (*model.Rental, error) {
	r, err := s.mine(ctx, userID, rentalID)
	if err != nil {
		return nil, err
	}
	if r.Returned {
		return nil, makeErr(ErrAlreadyReturned)
	}
	return r, nil
}

func (s *service) Return(ctx context.Context, userID string, rentalID int64) (*Returned, error) {
	cur, err := s.owned(ctx, userID, rentalID)
	if err != nil {
		return nil, err
	}

	// Local copy for when the re-fetch below fails.
	local := &model.Book{ID: cur.BookID, Title: cur.BookTitle}
	if b, err := s.b.Detail(ctx, cur.BookID); err == nil {
		local = b
	}

	updated, err := s.r.ReturnBook(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	out := &Returned{Rental: updated, BookRefreshed: true}
	out.Book, err = s.b.Detail(ctx, cur.BookID)
	if err != nil {
		fallback := *local
		fallback.Available = true
		out.BookRefreshed = false
		out.Book = &fallback
	}
	return out, nil
}

func (s *service) Extend(ctx context.Context, userID string, rentalID int64, days int) (*model.Rental, error) {
	if !slices.Contains(ExtendDays, days) {
		return nil, makeErr(ErrInvalidDays)
	}
	cur, err := s.owned(ctx, userID, rentalID)
	if err != nil {
		return nil, err
	}
	if cur.Extended {
		return nil, makeErr(ErrAlreadyExtended)
	}
	var end model.Date
	if !cur.EndDate.IsZero() {
		end = cur.EndDate.AddDays(days)
	}
	return s.r.Extend(ctx, rentalID, days, end)
}

func (s *service) Detail(ctx context.Context, rentalID int64) (*model.Rental, error) {
	r, err := s.r.Detail(ctx, rentalID)
	if err != nil {
		if libraryapi.IsNotFound(err) {
			return nil, wrapErr(ErrNotFound, err)
		}
		return nil, err
	}
	return r, nil
}

func (s *service) Reschedule(ctx context.Context, userID string, rentalID int64, start, end model.Date) (*model.Rental, error) {
	if start.IsZero() || end.IsZero() || end.Before(start.Time) {
		return nil, makeErr(ErrInvalidDates)
	}
	cur, err := s.owned(ctx, userID, rentalID)
	if err != nil {
		return nil, err
	}
	upd := *cur
	upd.StartDate = start
	upd.EndDate = end
	return s.r.Update(ctx, rentalID, &upd)
}

func (s *service) Delete(ctx context.Context, userID string, rentalID int64) error {
	cur, err := s.mine(ctx, userID, rentalID)
	if err != nil {
		return err
	}
	if err := s.r.Delete(ctx, rentalID); err != nil {
		return err
	}
	if cur.Returned {
		return nil
	}

	// Same as Rent: no rollback when the book cannot be flipped back.
	book, err := s.b.Detail(ctx, cur.BookID)
	if err != nil {
		if libraryapi.IsNotFound(err) {
			return nil
		}
		return wrapErr(ErrAvailabilityStale, err)
	}
	upd := *book
	upd.Available = true
	upd.Reviews = nil
	if _, err := s.b.Update(ctx, cur.BookID, &upd); err != nil {
		return wrapErr(ErrAvailabilityStale, err)
	}
	return nil
}

func (s *service) Active(ctx context.Context, userID string) ([]HistoryRow, error) {
	h, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	return h.Active, nil
}

func (s *service) History(ctx context.Context, userID string) (*History, error) {
	var (
		rentals []model.Rental
		books   []model.Book
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rentals, err = s.r.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		books, err = s.b.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	h := &History{Active: []HistoryRow{}, Returned: []HistoryRow{}}
	for _, r := range rentals {
		if r.UserID != userID {
			continue
		}
		row := HistoryRow{Rental: r, Book: findBook(books, r.BookID)}
		if r.Returned {
			h.Returned = append(h.Returned, row)
			continue
		}
		row.DaysRemaining = DaysRemaining(r.EndDate, now)
		row.Overdue = row.DaysRemaining <= 0
		h.Active = append(h.Active, row)
	}
	h.Total = len(h.Active) + len(h.Returned)
	return h, nil
}

func findBook(books []model.Book, id int64) *model.Book {
	for i := range books {
		if books[i].ID == id {
			b := books[i]
			return &b
		}
	}
	return nil
}

// DaysRemaining counts whole days, rounded up, from now until the end date.
func DaysRemaining(end model.Date, now time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}
