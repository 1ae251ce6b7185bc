package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"libraryfront/model"

	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var r model.Rental
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"book":2,"user":"u","start_date":"2026-10-16","end_date":null,"returned":false,"extended":false}`), &r))
	require.Equal(t, "2026-10-16", r.StartDate.String())
	require.True(t, r.EndDate.IsZero())

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"start_date":"2026-10-16"`)
	require.Contains(t, string(raw), `"end_date":null`)

	require.Error(t, json.Unmarshal([]byte(`{"start_date":"16/10/2026"}`), &r))
}

func TestDate_ParseAndAdd(t *testing.T) {
	d, err := model.ParseDate("2026-10-16T23:30:00Z")
	require.NoError(t, err)
	require.Equal(t, "2026-10-16", d.String())

	require.Equal(t, "2026-11-15", d.AddDays(30).String())
	require.Equal(t, "2026-10-16", model.NewDate(time.Date(2026, 10, 16, 22, 0, 0, 0, time.UTC)).String())

	_, err = model.ParseDate("tomorrow")
	require.Error(t, err)
}

func TestPage_BothShapes(t *testing.T) {
	var p model.Page[model.Book]
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"title":"Dune","isbn10":null}]`), &p))
	require.Len(t, p.Items, 1)
	require.Equal(t, 1, p.Count)
	require.Nil(t, p.Items[0].ISBN10)

	require.NoError(t, json.Unmarshal([]byte(`{"count":42,"next":"http://x/?page=2","previous":null,"results":[{"id":1},{"id":2}]}`), &p))
	require.Len(t, p.Items, 2)
	require.Equal(t, 42, p.Count)

	require.NoError(t, json.Unmarshal([]byte(`null`), &p))
	require.Empty(t, p.Items)

	require.Error(t, json.Unmarshal([]byte(`{"detail":"nope"}`), &p))
}

func TestRental_HeldBy(t *testing.T) {
	r := model.Rental{BookID: 3, UserID: "user123"}
	require.True(t, r.Active())
	require.True(t, r.HeldBy("user123", 3))
	require.False(t, r.HeldBy("user456", 3))
	require.False(t, r.HeldBy("user123", 4))

	r.Returned = true
	require.False(t, r.HeldBy("user123", 3))
}
