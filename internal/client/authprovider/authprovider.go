// Package authprovider manages the CLI's login session: it logs in against
// the API, keeps the token and user in the local session store and hands the
// token to the transport.
package authprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/adminpanel/internal/client/client"
	"github.com/dmitrijs2005/adminpanel/internal/client/repositories/session"
)

// User is the public user record returned at login.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// Identity is what the UI shows for the logged-in user.
type Identity struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Provider struct {
	c        client.Doer
	sessions session.Repository
}

func New(c client.Doer, sessions session.Repository) *Provider {
	return &Provider{c: c, sessions: sessions}
}

// Login exchanges credentials for a token and stores the session.
func (p *Provider) Login(ctx context.Context, username, password string) (*User, error) {
	resp, err := p.c.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "auth/login",
		Body:   map[string]string{"username": username, "password": password},
	})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	var lr loginResponse
	if err := resp.Decode(&lr); err != nil {
		return nil, err
	}

	user, err := json.Marshal(lr.User)
	if err != nil {
		return nil, err
	}

	if err := p.sessions.SetMany(ctx, map[string][]byte{
		session.KeyToken: []byte(lr.Token),
		session.KeyUser:  user,
	}); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &lr.User, nil
}

// Logout forgets the stored session. Logging out twice is fine.
func (p *Provider) Logout(ctx context.Context) error {
	return p.sessions.Clear(ctx)
}

// CheckAuth returns client.ErrUnauthorized when no token is stored.
func (p *Provider) CheckAuth(ctx context.Context) error {
	token, err := p.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return client.ErrUnauthorized
	}
	return nil
}

// CheckError inspects an API error. A 401 or 403 ends the session and is
// reported as client.ErrUnauthorized; anything else is not the session's
// concern and yields nil.
func (p *Provider) CheckError(ctx context.Context, apiErr error) error {
	switch client.StatusOf(apiErr) {
	case http.StatusUnauthorized, http.StatusForbidden:
		if err := p.Logout(ctx); err != nil {
			return err
		}
		return client.ErrUnauthorized
	default:
		return nil
	}
}

// GetIdentity returns the stored user as an Identity.
func (p *Provider) GetIdentity(ctx context.Context) (*Identity, error) {
	raw, err := p.sessions.Get(ctx, session.KeyUser)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, client.ErrUnauthorized
	}

	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &Identity{ID: u.ID, FullName: u.Name}, nil
}

// GetPermissions has nothing to report; every logged-in user may do
// everything.
func (p *Provider) GetPermissions(ctx context.Context) (any, error) {
	return nil, nil
}

// Token implements client.TokenSource.
func (p *Provider) Token(ctx context.Context) (string, error) {
	raw, err := p.sessions.Get(ctx, session.KeyToken)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
