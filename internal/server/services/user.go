// Package services contains server-side business logic. This file implements
// UserService, which checks credentials and issues session tokens.
package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/dmitrijs2005/adminpanel/internal/common"
	"github.com/dmitrijs2005/adminpanel/internal/server/auth"
	"github.com/dmitrijs2005/adminpanel/internal/server/models"
)

// UserFinder looks up the first user matching a predicate.
type UserFinder interface {
	Find(ctx context.Context, pred func(models.User) bool) (models.User, error)
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// UserService provides authentication-related operations:
// - Login: verify credentials and mint a token
// - Authenticate: resolve a bearer token to a user id
type UserService struct {
	users UserFinder
	codec auth.Codec
}

func NewUserService(users UserFinder, codec auth.Codec) *UserService {
	return &UserService{users: users, codec: codec}
}

// Login verifies username and password and returns a fresh token together
// with the public view of the user.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, common.NewError(common.ErrorValidation, "username and password are required")
	}

	// Usernames are not unique, so the match is on both fields.
	user, err := s.users.Find(ctx, func(u models.User) bool {
		return u.Username == username && s.checkPassword(u.Password, password)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewError(common.ErrorUnauthorized, "invalid username or password")
		}
		return nil, common.ErrorInternal
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{Token: token, User: user.Public()}, nil
}

// Authenticate returns the user id carried by token.
func (s *UserService) Authenticate(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, common.NewError(common.ErrorUnauthorized, "unauthorized")
	}
	id, ok := s.codec.Verify(token)
	if !ok {
		return 0, common.NewError(common.ErrorUnauthorized, "invalid or expired token")
	}
	return id, nil
}

func (s *UserService) checkPassword(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
