package rental_test

import (
	"context"
	"net/http"
	"testing"

	"libraryfront/model"
	"libraryfront/repository/libraryapi"
	"libraryfront/repository/libraryapi/libraryapitest"
	rentalrepo "libraryfront/repository/rental"

	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestLifecycle(t *testing.T) {
	books := []model.Book{{ID: 1, Title: "Dune", Available: true}}
	users := []model.User{{ID: "user123", Name: "Ana", Email: "ana@example.com"}}
	srv := libraryapitest.New(t, books, nil, users)
	r := rentalrepo.New(srv.Client())
	ctx := context.Background()

	created, err := r.Create(ctx, &model.Rental{
		BookID:    1,
		UserID:    "user123",
		StartDate: date(t, "2026-10-01"),
		EndDate:   date(t, "2026-10-08"),
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Dune", created.BookTitle)
	require.Equal(t, "Ana", created.UserName)

	ext, err := r.Extend(ctx, created.ID, 7, model.Date{})
	require.NoError(t, err)
	require.True(t, ext.Extended)
	require.Equal(t, "2026-10-15", ext.EndDate.String())

	_, err = r.Extend(ctx, created.ID, 7, model.Date{})
	require.Equal(t, http.StatusBadRequest, libraryapi.StatusOf(err))

	ret, err := r.ReturnBook(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ret.Returned)

	_, err = r.ReturnBook(ctx, created.ID)
	require.Error(t, err)

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	got, err := r.Detail(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, got.Returned)
	require.True(t, got.Extended)

	got.Returned = false
	upd, err := r.Update(ctx, created.ID, got)
	require.NoError(t, err)
	require.False(t, upd.Returned)

	require.NoError(t, r.Delete(ctx, created.ID))
	_, err = r.Detail(ctx, created.ID)
	require.True(t, libraryapi.IsNotFound(err))
}

func TestExtend_SendsDays(t *testing.T) {
	srv := libraryapitest.New(t, nil, []model.Rental{{ID: 5, BookID: 1, UserID: "u", EndDate: date(t, "2026-01-30")}}, nil)
	r := rentalrepo.New(srv.Client())

	out, err := r.Extend(context.Background(), 5, 14, model.Date{})
	require.NoError(t, err)
	require.Equal(t, "2026-02-13", out.EndDate.String())
	require.Equal(t, []string{"POST /rentals/5/extend_rental/"}, srv.Calls())
	require.JSONEq(t, `{"days":14}`, srv.Body(http.MethodPost, "/rentals/5/extend_rental/"))
}

func TestExtend_SendsEndDate(t *testing.T) {
	srv := libraryapitest.New(t, nil, []model.Rental{{ID: 5, BookID: 1, UserID: "u", EndDate: date(t, "2026-01-30")}}, nil)
	r := rentalrepo.New(srv.Client())

	out, err := r.Extend(context.Background(), 5, 7, date(t, "2026-02-06"))
	require.NoError(t, err)
	require.True(t, out.Extended)
	require.Equal(t, "2026-02-06", out.EndDate.String())
	require.JSONEq(t, `{"days":7,"end_date":"2026-02-06"}`, srv.Body(http.MethodPost, "/rentals/5/extend_rental/"))
}
