// Package libraryapitest runs an in-memory stand-in for the library REST
// service, mounted under /api, for tests of code that talks to it.
package libraryapitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"libraryfront/model"
	"libraryfront/repository/libraryapi"
)

type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	books    []model.Book
	rentals  []model.Rental
	users    []model.User
	paginate bool
	fail     map[string]failure
	hits     map[string]int
	bodies   map[string]string
	calls    []string
	nextID   int64
}

type failure struct {
	status int
	after  int
}

// New starts a stub seeded with the given fixtures. It is closed on test cleanup.
func New(t testing.TB, books []model.Book, rentals []model.Rental, users []model.User) *Server {
	t.Helper()
	s := &Server{
		books:   append([]model.Book(nil), books...),
		rentals: append([]model.Rental(nil), rentals...),
		users:   append([]model.User(nil), users...),
		fail:    map[string]failure{},
		hits:    map[string]int{},
		bodies:  map[string]string{},
		nextID:  1000,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /books/{$}", s.listBooks)
	mux.HandleFunc("POST /books/{$}", s.createBook)
	mux.HandleFunc("GET /books/{id}/{$}", s.getBook)
	mux.HandleFunc("PUT /books/{id}/{$}", s.putBook)
	mux.HandleFunc("DELETE /books/{id}/{$}", s.deleteBook)
	mux.HandleFunc("POST /books/{id}/add_review/{$}", s.addReview)

	mux.HandleFunc("GET /rentals/{$}", s.listRentals)
	mux.HandleFunc("POST /rentals/{$}", s.createRental)
	mux.HandleFunc("GET /rentals/{id}/{$}", s.getRental)
	mux.HandleFunc("PUT /rentals/{id}/{$}", s.putRental)
	mux.HandleFunc("DELETE /rentals/{id}/{$}", s.deleteRental)
	mux.HandleFunc("POST /rentals/{id}/return_book/{$}", s.returnBook)
	mux.HandleFunc("POST /rentals/{id}/extend_rental/{$}", s.extendRental)

	mux.HandleFunc("GET /users/{$}", s.listUsers)
	mux.HandleFunc("POST /users/{$}", s.createUser)
	mux.HandleFunc("POST /users/login/{$}", s.login)
	mux.HandleFunc("GET /users/{id}/{$}", s.getUser)
	mux.HandleFunc("PUT /users/{id}/{$}", s.putUser)
	mux.HandleFunc("DELETE /users/{id}/{$}", s.deleteUser)

	s.srv = httptest.NewServer(s.record(http.StripPrefix("/api", mux)))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) URL() string { return s.srv.URL + "/api" }

func (s *Server) Client() *libraryapi.Client {
	return libraryapi.New(s.URL(), s.srv.Client())
}

// Paginate switches list answers to the {count, results} envelope.
func (s *Server) Paginate(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paginate = on
}

// FailOn makes "METHOD /path" (path without the /api prefix) answer status.
func (s *Server) FailOn(method, path string, status int) {
	s.FailAfter(method, path, 0, status)
}

// FailAfter is FailOn once the first n matching requests have been served.
func (s *Server) FailAfter(method, path string, n, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[method+" "+path] = failure{status: status, after: n}
}

// Body returns the last request body received on "METHOD /path".
func (s *Server) Body(method, path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[method+" "+path]
}

// Calls lists every request received as "METHOD /path".
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *Server) Book(id int64) (model.Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.bookIdx(id); i >= 0 {
		return s.books[i], true
	}
	return model.Book{}, false
}

func (s *Server) Rental(id int64) (model.Rental, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.rentalIdx(id); i >= 0 {
		return s.rentals[i], true
	}
	return model.Rental{}, false
}

func (s *Server) Rentals() []model.Rental {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Rental(nil), s.rentals...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
		raw, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(raw))

		s.mu.Lock()
		s.calls = append(s.calls, key)
		s.bodies[key] = string(raw)
		s.hits[key]++
		f, failing := s.fail[key]
		failing = failing && s.hits[key] > f.after
		s.mu.Unlock()
		if failing {
			writeJSON(w, f.status, map[string]string{"error": http.StatusText(f.status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) bookIdx(id int64) int {
	for i := range s.books {
		if s.books[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) rentalIdx(id int64) int {
	for i := range s.rentals {
		if s.rentals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) userIdx(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func list[T any](s *Server, w http.ResponseWriter, items []T) {
	out := append([]T{}, items...)
	if s.paginate {
		writeJSON(w, http.StatusOK, map[string]any{"count": len(out), "next": nil, "previous": nil, "results": out})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// books

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list(s, w, s.books)
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	var b model.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil || b.Title == "" {
		badRequest(w, "title is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.id()
	b.Reviews = nil
	s.books = append(s.books, b)
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) getBook(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.bookIdx(id)
	if i < 0 {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, s.books[i])
}

func (s *Server) putBook(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	var b model.Book
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		badRequest(w, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.bookIdx(id)
	if i < 0 {
		notFound(w)
		return
	}
	b.ID = id
	b.Reviews = s.books[i].Reviews
	s.books[i] = b
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.bookIdx(id)
	if i < 0 {
		notFound(w)
		return
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addReview(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	var rv model.Review
	if err := json.NewDecoder(r.Body).Decode(&rv); err != nil {
		badRequest(w, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.bookIdx(id)
	if i < 0 {
		notFound(w)
		return
	}
	rv.ID = s.id()
	s.books[i].Reviews = append(s.books[i].Reviews, rv)
	writeJSON(w, http.StatusCreated, rv)
}

// rentals

func (s *Server) listRentals(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list(s, w, s.rentals)
}

func (s *Server) createRental(w http.ResponseWriter, r *http.Request) {
	var in model.Rental
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	bi := s.bookIdx(in.BookID)
	if bi < 0 {
		notFound(w)
		return
	}
	in.ID = s.id()
	in.BookTitle = s.books[bi].Title
	if ui := s.userIdx(in.UserID); ui >= 0 {
		in.UserName = s.users[ui].Name
	}
	s.books[bi].Available = false
	s.rentals = append(s.rentals, in)
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) getRental(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.rentalIdx(id)
	if i < 0 {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, s.rentals[i])
}

func (s *Server) putRental(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	var in model.Rental
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		badRequest(w, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.rentalIdx(id)
	if i < 0 {
		notFound(w)
		return
	}
	in.ID = id
	s.rentals[i] = in
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) deleteRental(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.rentalIdx(id)
	if i < 0 {
		notFound(w)
		return
	}
	s.rentals = append(s.rentals[:i], s.rentals[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) returnBook(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.rentalIdx(id)
	if i < 0 {
		notFound(w)
		return
	}
	if s.rentals[i].Returned {
		badRequest(w, "Book already returned")
		return
	}
	s.rentals[i].Returned = true
	if bi := s.bookIdx(s.rentals[i].BookID); bi >= 0 {
		s.books[bi].Available = true
	}
	writeJSON(w, http.StatusOK, s.rentals[i])
}

func (s *Server) extendRental(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	var body struct {
		Days    int        `json:"days"`
		EndDate model.Date `json:"end_date"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.rentalIdx(id)
	if i < 0 {
		notFound(w)
		return
	}
	switch {
	case s.rentals[i].Returned:
		badRequest(w, "Cannot extend a returned rental")
		return
	case s.rentals[i].Extended:
		badRequest(w, "Rental already extended")
		return
	case body.EndDate.IsZero() && body.Days <= 0:
		badRequest(w, "New end date is required")
		return
	}
	if !body.EndDate.IsZero() {
		s.rentals[i].EndDate = body.EndDate
	} else {
		s.rentals[i].EndDate = s.rentals[i].EndDate.AddDays(body.Days)
	}
	s.rentals[i].Extended = true
	writeJSON(w, http.StatusOK, s.rentals[i])
}

// users

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list(s, w, s.users)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil || u.ID == "" {
		badRequest(w, "user_id is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIdx(u.ID) >= 0 {
		badRequest(w, "user with this user id already exists.")
		return
	}
	s.users = append(s.users, u)
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.ID == "" {
		badRequest(w, "User ID is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIdx(body.ID)
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		return
	}
	writeJSON(w, http.StatusOK, s.users[i])
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIdx(r.PathValue("id"))
	if i < 0 {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, s.users[i])
}

func (s *Server) putUser(w http.ResponseWriter, r *http.Request) {
	var u model.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		badRequest(w, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIdx(r.PathValue("id"))
	if i < 0 {
		notFound(w)
		return
	}
	u.ID = s.users[i].ID
	s.users[i] = u
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIdx(r.PathValue("id"))
	if i < 0 {
		notFound(w)
		return
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}
