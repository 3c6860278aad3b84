package authprovider

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/adminpanel/internal/client/client"
	"github.com/dmitrijs2005/adminpanel/internal/client/repositories/session"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
	"github.com/dmitrijs2005/adminpanel/internal/server/auth"
	"github.com/dmitrijs2005/adminpanel/internal/server/httpapi"
	"github.com/dmitrijs2005/adminpanel/internal/server/query"
	"github.com/dmitrijs2005/adminpanel/internal/server/seed"
	"github.com/dmitrijs2005/adminpanel/internal/server/services"
	"github.com/dmitrijs2005/adminpanel/internal/server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupSessions(t *testing.T) *session.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, client.RunMigrations(ctx, db))
	return session.NewSQLiteRepository(db)
}

func setup(t *testing.T) (*Provider, *client.HTTPClient) {
	t.Helper()
	ds := seed.Default()
	users := store.New(ds.Users)
	codec := auth.NewJWTCodec([]byte("secret"), time.Hour, nil)

	srv := httptest.NewServer(httpapi.NewRouter(httpapi.Deps{
		Auth:   services.NewUserService(users, codec),
		Users:  services.NewResourceService("user", users, query.UserSchema),
		Posts:  services.NewResourceService("post", store.New(ds.Posts), query.PostSchema),
		CORS:   httpapi.DefaultCORSConfig(),
		Logger: logging.Nop(),
	}))
	t.Cleanup(srv.Close)

	c, err := client.NewHTTPClient(srv.URL+"/api", 2*time.Second)
	require.NoError(t, err)

	p := New(c, setupSessions(t))
	c.SetTokenSource(p)
	return p, c
}

// ---- tests ----

func TestLogin_StoresSession(t *testing.T) {
	p, c := setup(t)
	ctx := context.Background()

	require.ErrorIs(t, p.CheckAuth(ctx), client.ErrUnauthorized)

	u, err := p.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, &User{ID: 1, Username: "admin", Email: "admin@example.com", Name: "管理员"}, u)

	require.NoError(t, p.CheckAuth(ctx))

	id, err := p.GetIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Identity{ID: 1, FullName: "管理员"}, id)

	resp, err := c.Do(ctx, client.Request{Method: http.MethodGet, Path: "posts"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestLogin_WrongPassword(t *testing.T) {
	p, _ := setup(t)
	ctx := context.Background()

	_, err := p.Login(ctx, "admin", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid username or password")

	assert.ErrorIs(t, p.CheckAuth(ctx), client.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	p, c := setup(t)
	ctx := context.Background()

	_, err := p.Login(ctx, "user", "user123")
	require.NoError(t, err)

	require.NoError(t, p.Logout(ctx))
	require.NoError(t, p.Logout(ctx))

	assert.ErrorIs(t, p.CheckAuth(ctx), client.ErrUnauthorized)
	_, err = p.GetIdentity(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	_, err = c.Do(ctx, client.Request{Method: http.MethodGet, Path: "posts"})
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestCheckError(t *testing.T) {
	p, _ := setup(t)
	ctx := context.Background()

	_, err := p.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	assert.NoError(t, p.CheckError(ctx, &client.HTTPError{Status: 404, Kind: client.ErrNotFound}))
	assert.NoError(t, p.CheckError(ctx, errors.New("network")))
	require.NoError(t, p.CheckAuth(ctx))

	err = p.CheckError(ctx, &client.HTTPError{Status: 403, Kind: client.ErrUnauthorized})
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.ErrorIs(t, p.CheckAuth(ctx), client.ErrUnauthorized)
}

func TestGetPermissions(t *testing.T) {
	p, _ := setup(t)
	perms, err := p.GetPermissions(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, perms)
}
