package rental_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"libraryfront/model"
	bookrepo "libraryfront/repository/book"
	"libraryfront/repository/libraryapi/libraryapitest"
	rentalrepo "libraryfront/repository/rental"
	rs "libraryfront/service/rental"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)

func clock() time.Time { return now }

func date(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newStub(t *testing.T, rentals []model.Rental) (*libraryapitest.Server, rs.Service) {
	t.Helper()
	books := []model.Book{
		{ID: 1, Title: "Cien años de soledad", Author: "Gabriel García Márquez", Available: true,
			Reviews: []model.Review{{ID: 1, User: "Luis", Rating: 4, Comment: "Bueno"}}},
		{ID: 2, Title: "Dune", Author: "Frank Herbert", Category: model.Str("Science fiction"), Available: false},
		{ID: 3, Title: "Rayuela", Author: "Julio Cortázar", Available: true},
	}
	users := []model.User{{ID: "user123", Name: "Ana"}, {ID: "user456", Name: "Luis"}}
	srv := libraryapitest.New(t, books, rentals, users)
	c := srv.Client()
	return srv, rs.NewWithClock(rentalrepo.New(c), bookrepo.New(c), clock)
}

func TestRent_CreatesRentalThenMarksBookUnavailable(t *testing.T) {
	srv, svc := newStub(t, nil)

	out, err := svc.Rent(context.Background(), "user123", 1, 14)
	require.NoError(t, err)
	require.Equal(t, int64(1), out.Rental.BookID)
	require.Equal(t, "user123", out.Rental.UserID)
	require.Equal(t, "2026-10-16", out.Rental.StartDate.String())
	require.Equal(t, "2026-10-30", out.Rental.EndDate.String())
	require.False(t, out.Rental.Returned)
	require.False(t, out.Rental.Extended)
	require.False(t, out.Book.Available)

	calls := srv.Calls()
	require.ElementsMatch(t, []string{"GET /books/1/", "GET /rentals/"}, calls[:2])
	require.Equal(t, []string{"POST /rentals/", "PUT /books/1/"}, calls[2:])

	b, _ := srv.Book(1)
	require.False(t, b.Available)
	require.Len(t, b.Reviews, 1)
}

func TestRent_AvailabilityUpdateKeepsNullFields(t *testing.T) {
	srv, svc := newStub(t, nil)

	_, err := svc.Rent(context.Background(), "user123", 3, 7)
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(srv.Body(http.MethodPut, "/books/3/")), &sent))
	for _, k := range []string{"isbn10", "isbn13", "cover_image", "synopsis", "category", "language"} {
		v, ok := sent[k]
		require.True(t, ok, k)
		require.Nil(t, v, k)
	}
	require.Equal(t, false, sent["available"])
	require.Equal(t, "Rayuela", sent["title"])

	b, _ := srv.Book(3)
	require.Nil(t, b.Synopsis)
	require.False(t, b.Available)
}

func TestRent_Refusals(t *testing.T) {
	_, svc := newStub(t, []model.Rental{{ID: 50, BookID: 3, UserID: "user123"}})
	ctx := context.Background()

	_, err := svc.Rent(ctx, "user123", 1, 5)
	require.Equal(t, rs.ErrInvalidDays, rs.Code(err))

	_, err = svc.Rent(ctx, "user123", 2, 7)
	require.Equal(t, rs.ErrNotAvailable, rs.Code(err))

	_, err = svc.Rent(ctx, "user123", 3, 7)
	require.Equal(t, rs.ErrAlreadyRenting, rs.Code(err))

	_, err = svc.Rent(ctx, "user123", 99, 7)
	require.Equal(t, rs.ErrBookNotFound, rs.Code(err))
}

func TestRent_AvailabilityUpdateFailureIsNotRolledBack(t *testing.T) {
	srv, svc := newStub(t, nil)
	srv.FailOn(http.MethodPut, "/books/1/", http.StatusInternalServerError)

	out, err := svc.Rent(context.Background(), "user123", 1, 7)
	require.Error(t, err)
	require.Equal(t, rs.ErrAvailabilityStale, rs.Code(err))
	require.NotNil(t, out)
	require.NotZero(t, out.Rental.ID)

	_, ok := srv.Rental(out.Rental.ID)
	require.True(t, ok)
	require.NotContains(t, srv.Calls(), "DELETE /rentals/")
}

func TestRent_FetchFailure(t *testing.T) {
	srv, svc := newStub(t, nil)
	srv.FailOn(http.MethodGet, "/rentals/", http.StatusBadGateway)

	_, err := svc.Rent(context.Background(), "user123", 1, 7)
	require.Error(t, err)
	require.Equal(t, rs.ErrCode(""), rs.Code(err))
	require.NotContains(t, srv.Calls(), "POST /rentals/")
}

func TestReturn_RestoresAvailability(t *testing.T) {
	srv, svc := newStub(t, []model.Rental{{ID: 50, BookID: 2, UserID: "user123", BookTitle: "Dune"}})

	out, err := svc.Return(context.Background(), "user123", 50)
	require.NoError(t, err)
	require.True(t, out.Rental.Returned)
	require.True(t, out.Book.Available)
	require.True(t, out.BookRefreshed)
	require.Equal(t, "Frank Herbert", out.Book.Author)
	require.Equal(t, []string{"GET /rentals/50/", "GET /books/2/", "POST /rentals/50/return_book/", "GET /books/2/"}, srv.Calls())
}

func TestReturn_FallsBackToLocalCopyWhenRefetchFails(t *testing.T) {
	srv, svc := newStub(t, []model.Rental{{ID: 50, BookID: 2, UserID: "user123", BookTitle: "Dune"}})
	srv.FailAfter(http.MethodGet, "/books/2/", 1, http.StatusServiceUnavailable)

	out, err := svc.Return(context.Background(), "user123", 50)
	require.NoError(t, err)
	require.False(t, out.BookRefreshed)
	require.Equal(t, int64(2), out.Book.ID)
	require.Equal(t, "Dune", out.Book.Title)
	require.Equal(t, "Frank Herbert", out.Book.Author)
	require.Equal(t, "Science fiction", model.Val(out.Book.Category))
	require.True(t, out.Book.Available)
}

func TestReturn_FallsBackToRentalTitleWhenBookUnreachable(t *testing.T) {
	srv, svc := newStub(t, []model.Rental{{ID: 50, BookID: 2, UserID: "user123", BookTitle: "Dune"}})
	srv.FailOn(http.MethodGet, "/books/2/", http.StatusServiceUnavailable)

	out, err := svc.Return(context.Background(), "user123", 50)
	require.NoError(t, err)
	require.False(t, out.BookRefreshed)
	require.Equal(t, "Dune", out.Book.Title)
	require.True(t, out.Book.Available)
	require.True(t, out.Rental.Returned)
}

func TestReturn_Refusals(t *testing.T) {
	srv, svc := newStub(t, []model.Rental{
		{ID: 50, BookID: 2, UserID: "user123", Returned: true},
		{ID: 51, BookID: 3, UserID: "user456"},
	})
	ctx := context.Background()

	_, err := svc.Return(ctx, "user123", 50)
	require.Equal(t, rs.ErrAlreadyReturned, rs.Code(err))

	_, err = svc.Return(ctx, "user123", 51)
	require.Equal(t, rs.ErrNotOwner, rs.Code(err))

	_, err = svc.Return(ctx, "user123", 404)
	require.Equal(t, rs.ErrNotFound, rs.Code(err))

	for _, c := range srv.Calls() {
		require.NotContains(t, c, "return_book")
	}
}

func TestExtend_OnceOnly(t *testing.T) {
	srv, svc := newStub(t, []model.Rental{{ID: 50, BookID: 1, UserID: "user123", EndDate: date(t, "2026-10-20")}})
	ctx := context.Background()

	out, err := svc.Extend(ctx, "user123", 50, 7)
	require.NoError(t, err)
	require.True(t, out.Extended)
	require.Equal(t, "2026-10-27", out.EndDate.String())

	_, err = svc.Extend(ctx, "user123", 50, 7)
	require.Equal(t, rs.ErrAlreadyExtended, rs.Code(err))

	_, err = svc.Extend(ctx, "user123", 50, 21)
	require.Equal(t, rs.ErrInvalidDays, rs.Code(err))

	require.Equal(t, []string{"GET /rentals/50/", "POST /rentals/50/extend_rental/", "GET /rentals/50/"}, srv.Calls())
	require.JSONEq(t, `{"days":7,"end_date":"2026-10-27"}`, srv.Body(http.MethodPost, "/rentals/50/extend_rental/"))
}

func TestHistoryAndActive(t *testing.T) {
	_, svc := newStub(t, []model.Rental{
		{ID: 50, BookID: 1, UserID: "user123", EndDate: date(t, "2026-10-20")},
		{ID: 51, BookID: 2, UserID: "user123", EndDate: date(t, "2026-10-16")},
		{ID: 52, BookID: 3, UserID: "user123", EndDate: date(t, "2026-09-01"), Returned: true},
		{ID: 53, BookID: 3, UserID: "user456", EndDate: date(t, "2026-11-01")},
		{ID: 54, BookID: 77, UserID: "user123", EndDate: date(t, "2026-10-17")},
	})
	ctx := context.Background()

	h, err := svc.History(ctx, "user123")
	require.NoError(t, err)
	require.Equal(t, 4, h.Total)
	require.Len(t, h.Active, 3)
	require.Len(t, h.Returned, 1)

	require.Equal(t, int64(50), h.Active[0].ID)
	require.Equal(t, "Cien años de soledad", h.Active[0].Book.Title)
	require.Equal(t, 4, h.Active[0].DaysRemaining)
	require.False(t, h.Active[0].Overdue)

	require.Equal(t, int64(51), h.Active[1].ID)
	require.True(t, h.Active[1].Overdue)

	require.Nil(t, h.Active[2].Book)
	require.Equal(t, 1, h.Active[2].DaysRemaining)

	require.Equal(t, int64(52), h.Returned[0].ID)
	require.Equal(t, "Rayuela", h.Returned[0].Book.Title)

	active, err := svc.Active(ctx, "user123")
	require.NoError(t, err)
	require.Len(t, active, 3)

	raw, err := json.Marshal(active[0])
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	require.Equal(t, "2026-10-20", m["end_date"])
	require.IsType(t, map[string]any{}, m["book"])

	none, err := svc.Active(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDaysRemaining(t *testing.T) {
	require.Equal(t, 4, rs.DaysRemaining(date(t, "2026-10-20"), now))
	require.Equal(t, 1, rs.DaysRemaining(date(t, "2026-10-17"), now))
	require.Equal(t, 0, rs.DaysRemaining(date(t, "2026-10-16"), now))
	require.Equal(t, -1, rs.DaysRemaining(date(t, "2026-10-15"), now))
	require.Equal(t, 1, rs.DaysRemaining(date(t, "2026-10-17"), time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)))
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, rs.ErrCode(""), rs.Code(errors.New("plain")))
	require.Equal(t, rs.ErrCode(""), rs.Code(nil))
}

func TestDetail(t *testing.T) {
	_, svc := newStub(t, []model.Rental{
		{ID: 7, BookID: 2, UserID: "user456", StartDate: date(t, "2026-10-10"), EndDate: date(t, "2026-10-24")},
	})

	r, err := svc.Detail(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "user456", r.UserID)

	_, err = svc.Detail(context.Background(), 99)
	require.Equal(t, rs.ErrNotFound, rs.Code(err))
}

func TestReschedule(t *testing.T) {
	srv, svc := newStub(t, []model.Rental{
		{ID: 50, BookID: 1, UserID: "user123", StartDate: date(t, "2026-10-10"), EndDate: date(t, "2026-10-20")},
		{ID: 51, BookID: 3, UserID: "user123", Returned: true, StartDate: date(t, "2026-09-01"), EndDate: date(t, "2026-09-08")},
	})
	ctx := context.Background()

	out, err := svc.Reschedule(ctx, "user123", 50, date(t, "2026-10-12"), date(t, "2026-10-26"))
	require.NoError(t, err)
	require.Equal(t, "2026-10-26", out.EndDate.String())
	r, _ := srv.Rental(50)
	require.Equal(t, "2026-10-12", r.StartDate.String())
	require.Equal(t, int64(1), r.BookID)

	_, err = svc.Reschedule(ctx, "user123", 50, date(t, "2026-10-26"), date(t, "2026-10-12"))
	require.Equal(t, rs.ErrInvalidDates, rs.Code(err))

	_, err = svc.Reschedule(ctx, "user456", 50, date(t, "2026-10-12"), date(t, "2026-10-26"))
	require.Equal(t, rs.ErrNotOwner, rs.Code(err))

	_, err = svc.Reschedule(ctx, "user123", 51, date(t, "2026-10-12"), date(t, "2026-10-26"))
	require.Equal(t, rs.ErrAlreadyReturned, rs.Code(err))
}

func TestDelete_OpenRentalGivesBookBack(t *testing.T) {
	srv, svc := newStub(t, []model.Rental{
		{ID: 50, BookID: 2, UserID: "user123", EndDate: date(t, "2026-10-20")},
		{ID: 51, BookID: 3, UserID: "user123", Returned: true},
	})
	ctx := context.Background()

	require.Equal(t, rs.ErrNotOwner, rs.Code(svc.Delete(ctx, "user456", 50)))
	require.Equal(t, rs.ErrNotFound, rs.Code(svc.Delete(ctx, "user123", 99)))

	require.NoError(t, svc.Delete(ctx, "user123", 50))
	_, ok := srv.Rental(50)
	require.False(t, ok)
	b, _ := srv.Book(2)
	require.True(t, b.Available)

	require.NoError(t, svc.Delete(ctx, "user123", 51))
	require.NotContains(t, srv.Calls(), "PUT /books/3/")
}

func TestDelete_AvailabilityUpdateFailure(t *testing.T) {
	srv, svc := newStub(t, []model.Rental{{ID: 50, BookID: 2, UserID: "user123"}})
	srv.FailOn(http.MethodPut, "/books/2/", http.StatusInternalServerError)

	err := svc.Delete(context.Background(), "user123", 50)
	require.Equal(t, rs.ErrAvailabilityStale, rs.Code(err))
	_, ok := srv.Rental(50)
	require.False(t, ok)
}
