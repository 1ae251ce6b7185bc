package authsvc

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"libraryfront/model"
	"libraryfront/repository/libraryapi"
	jwtutil "libraryfront/util/jwt"
)

var (
	ErrBadInput     = errors.New("bad input")
	ErrUserNotFound = errors.New("user not found")
	ErrRejected     = errors.New("rejected by library service")
)

type Repo interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Login(ctx context.Context, id string) (*model.User, error)
}

type Service interface {
	Register(ctx context.Context, req model.User) (*model.User, string, error)
	// Login trusts the bare identifier; the library service has no credentials.
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
}

type service struct {
	ur       Repo
	secret   string
	ttlHours int
}

func New(ur Repo, secret string, ttlHours int) Service {
	return &service{ur: ur, secret: secret, ttlHours: ttlHours}
}

func (s *service) Register(ctx context.Context, req model.User) (*model.User, string, error) {
	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.ID == "" || req.Name == "" || req.Email == "" {
		return nil, "", ErrBadInput
	}

	u, err := s.ur.Create(ctx, &req)
	if err != nil {
		if libraryapi.StatusOf(err) == http.StatusBadRequest {
			return nil, "", errors.Join(ErrRejected, err)
		}
		return nil, "", err
	}
	return s.session(u)
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, "", ErrBadInput
	}
	u, err := s.ur.Login(ctx, id)
	if err != nil {
		switch libraryapi.StatusOf(err) {
		case http.StatusNotFound:
			return nil, "", ErrUserNotFound
		case http.StatusBadRequest:
			return nil, "", ErrBadInput
		}
		return nil, "", err
	}
	return s.session(u)
}

func (s *service) session(u *model.User) (*model.User, string, error) {
	token, err := jwtutil.Issue(s.secret, u.ID, u.Name, u.Email, s.ttlHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
