package libraryapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SendsJSONAndDecodes(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/login/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		raw, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{"user_id":"user123","name":"Ana"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/api/", srv.Client())
	require.Equal(t, srv.URL+"/api", c.BaseURL())

	var out struct {
		UserID string `json:"user_id"`
		Name   string `json:"name"`
	}
	ctx := WithRequestID(context.Background(), "req-1")
	require.NoError(t, c.Post(ctx, "/users/login/", map[string]string{"id": "user123"}, &out))
	require.Equal(t, "user123", gotBody["id"])
	require.Equal(t, "user123", out.UserID)
	require.Equal(t, "Ana", out.Name)
}

func TestDo_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"User not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	err := c.Get(context.Background(), "/users/nobody/", &struct{}{})
	require.Error(t, err)
	require.True(t, IsNotFound(err))
	require.Equal(t, http.StatusNotFound, StatusOf(err))

	var ae *APIError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, "User not found", ae.Message)
	require.Contains(t, ae.Error(), "GET /users/nobody/")
}

func TestDo_DetailMessageAndNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Rental already extended"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	require.NoError(t, c.Delete(context.Background(), "/books/1/"))

	err := c.Post(context.Background(), "/rentals/1/extend_rental/", map[string]int{"days": 7}, nil)
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, http.StatusBadRequest, ae.Status)
	require.Equal(t, "Rental already extended", ae.Message)
}

func TestDo_TransportAndDecodeErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	c := New(srv.URL, srv.Client())

	err := c.Get(context.Background(), "/books/", &[]int{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode GET /books/")
	require.Equal(t, 0, StatusOf(err))

	srv.Close()
	err = c.Get(context.Background(), "/books/", &[]int{})
	require.Error(t, err)
	require.False(t, IsNotFound(err))
}
