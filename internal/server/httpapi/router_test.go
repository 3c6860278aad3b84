package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/adminpanel/internal/logging"
	"github.com/dmitrijs2005/adminpanel/internal/server/auth"
	"github.com/dmitrijs2005/adminpanel/internal/server/config"
	"github.com/dmitrijs2005/adminpanel/internal/server/query"
	"github.com/dmitrijs2005/adminpanel/internal/server/seed"
	"github.com/dmitrijs2005/adminpanel/internal/server/services"
	"github.com/dmitrijs2005/adminpanel/internal/server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ds := seed.Default()
	users := store.New(ds.Users)
	posts := store.New(ds.Posts)
	codec := auth.NewJWTCodec([]byte("test-secret"), time.Hour, nil)

	return NewRouter(Deps{
		Auth:   services.NewUserService(users, codec),
		Users:  services.NewResourceService("user", users, query.UserSchema),
		Posts:  services.NewResourceService("post", posts, query.PostSchema),
		CORS:   DefaultCORSConfig(),
		Logger: logging.Nop(),
	})
}

func do(t *testing.T, h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func login(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, LoginPath, "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// --- login ---

func TestLogin(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, LoginPath, "", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, map[string]any{
		"id": float64(1), "username": "admin", "email": "admin@example.com", "name": "管理员",
	}, body["user"])
}

func TestLogin_Errors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"missing password", http.MethodPost, `{"username":"admin"}`, http.StatusBadRequest},
		{"empty object", http.MethodPost, `{}`, http.StatusBadRequest},
		{"malformed", http.MethodPost, `{"username":`, http.StatusBadRequest},
		{"wrong password", http.MethodPost, `{"username":"admin","password":"nope"}`, http.StatusUnauthorized},
		{"unknown user", http.MethodPost, `{"username":"ghost","password":"x"}`, http.StatusUnauthorized},
		{"get not allowed", http.MethodGet, ``, http.StatusMethodNotAllowed},
		{"preflight", http.MethodOptions, ``, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, LoginPath, "", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}
}

func TestLogin_DuplicateUsername(t *testing.T) {
	h := newTestRouter(t)
	admin := login(t, h, "admin", "admin123")

	rec := do(t, h, http.MethodPost, UsersPath, admin, `{"username":"admin","password":"other","name":"Second"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)["id"]

	rec = do(t, h, http.MethodPost, LoginPath, "", `{"username":"admin","password":"other"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[map[string]any](t, rec)
	assert.Equal(t, created, body["user"].(map[string]any)["id"])

	rec = do(t, h, http.MethodPost, LoginPath, "", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode[map[string]any](t, rec)["user"].(map[string]any)["id"])
}

func TestLogin_CORSMethods(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodOptions, LoginPath, "", "")
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rec.Body.String())
}

// --- auth on resources ---

func TestResource_RequiresToken(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, PostsPath+"?id=1", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decode[map[string]string](t, rec)["message"])

	rec = do(t, h, http.MethodGet, PostsPath, "bogus", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", decode[map[string]string](t, rec)["message"])

	r := httptest.NewRequest(http.MethodGet, PostsPath, nil)
	r.Header.Set("Authorization", "Basic abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResource_PreflightNeedsNoToken(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodOptions, UsersPath, "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestResource_ExpiredToken(t *testing.T) {
	ds := seed.Default()
	users := store.New(ds.Users)
	past := func() time.Time { return time.Now().Add(-48 * time.Hour) }
	issuer := auth.NewOpaqueCodec(24*time.Hour, past)
	tok, err := issuer.Issue(1)
	require.NoError(t, err)

	h := NewRouter(Deps{
		Auth:   services.NewUserService(users, auth.NewOpaqueCodec(24*time.Hour, nil)),
		Users:  services.NewResourceService("user", users, query.UserSchema),
		Posts:  services.NewResourceService("post", store.New(ds.Posts), query.PostSchema),
		CORS:   DefaultCORSConfig(),
		Logger: logging.Nop(),
	})

	rec := do(t, h, http.MethodGet, UsersPath, tok, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// --- reads ---

func TestUsers_ListScenario(t *testing.T) {
	h := newTestRouter(t)
	tok := login(t, h, "admin", "admin123")

	rec := do(t, h, http.MethodGet, UsersPath+"?_sort=id&_order=DESC&_start=0&_end=1", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "users 0-1/2", rec.Header().Get("Content-Range"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Range")

	items := decode[[]map[string]any](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0]["id"])
	assert.NotContains(t, items[0], "password")
}

func TestUsers_GetOneHidesPassword(t *testing.T) {
	h := newTestRouter(t)
	tok := login(t, h, "user", "user123")

	rec := do(t, h, http.MethodGet, UsersPath+"?id=1", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "admin123")
	assert.Empty(t, rec.Header().Get("Content-Range"))
}

func TestPosts_List(t *testing.T) {
	h := newTestRouter(t)
	tok := login(t, h, "admin", "admin123")

	rec := do(t, h, http.MethodGet, PostsPath, tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "posts 0-3/3", rec.Header().Get("Content-Range"))
	assert.Len(t, decode[[]map[string]any](t, rec), 3)

	rec = do(t, h, http.MethodGet, PostsPath+"?userId=2", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "posts 0-1/1", rec.Header().Get("Content-Range"))

	rec = do(t, h, http.MethodGet, PostsPath+"?id=1,3", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)

	rec = do(t, h, http.MethodGet, PostsPath+"?_start=10&_end=20", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPosts_BadQuery(t *testing.T) {
	h := newTestRouter(t)
	tok := login(t, h, "admin", "admin123")

	for _, q := range []string{"?_sort=nope", "?_order=up", "?id=abc"} {
		rec := do(t, h, http.MethodGet, PostsPath+q, tok, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestPosts_GetOneMissing(t *testing.T) {
	h := newTestRouter(t)
	tok := login(t, h, "admin", "admin123")

	rec := do(t, h, http.MethodGet, PostsPath+"?id=999", tok, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "post not found", decode[map[string]string](t, rec)["message"])
}

// --- writes ---

func TestPosts_CreateGetDelete(t *testing.T) {
	h := newTestRouter(t)
	tok := login(t, h, "admin", "admin123")

	rec := do(t, h, http.MethodPost, PostsPath, tok, `{"title":"T","body":"B","userId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]any](t, rec)
	assert.Equal(t, float64(4), created["id"])

	rec = do(t, h, http.MethodGet, PostsPath+"?id=4", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[map[string]any](t, rec))

	rec = do(t, h, http.MethodDelete, PostsPath+"?id=4", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[map[string]any](t, rec))

	rec = do(t, h, http.MethodGet, PostsPath+"?id=4", tok, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, PostsPath, tok, `{"title":"again"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(5), decode[map[string]any](t, rec)["id"])
}

func TestUsers_CreateHidesPassword(t *testing.T) {
	h := newTestRouter(t)
	tok := login(t, h, "admin", "admin123")

	rec := do(t, h, http.MethodPost, UsersPath, tok, `{"username":"new","password":"pw","email":"n@example.com","name":"New"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	login(t, h, "new", "pw")
}

func TestPosts_Update(t *testing.T) {
	h := newTestRouter(t)
	tok := login(t, h, "admin", "admin123")

	rec := do(t, h, http.MethodPut, PostsPath+"?id=1", tok, `{"title":"Edited"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"title":"Edited","body":"This is my first post","userId":1}`, rec.Body.String())

	rec = do(t, h, http.MethodPut, PostsPath+"?id=999", tok, `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, PostsPath+"?id=1", tok, `{"title":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWrites_NeedID(t *testing.T) {
	h := newTestRouter(t)
	tok := login(t, h, "admin", "admin123")

	for _, m := range []string{http.MethodPut, http.MethodDelete} {
		rec := do(t, h, m, PostsPath, tok, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, m)

		rec = do(t, h, m, PostsPath+"?id=x", tok, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, m)
	}
}

func TestPosts_BodyTooLarge(t *testing.T) {
	h := newTestRouter(t)
	tok := login(t, h, "admin", "admin123")

	big := `{"title":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	rec := do(t, h, http.MethodPost, PostsPath, tok, big)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResource_MethodNotAllowed(t *testing.T) {
	h := newTestRouter(t)
	tok := login(t, h, "admin", "admin123")

	rec := do(t, h, http.MethodPatch, PostsPath, tok, `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/comments", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRequestID(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, PostsPath, "", "")
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	r := httptest.NewRequest(http.MethodGet, PostsPath, nil)
	r.Header.Set(RequestIDHeader, "fixed-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, "fixed-id", rec.Header().Get(RequestIDHeader))
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.TokenScheme = config.TokenSchemeOpaque

	h, err := NewFromConfig(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)

	tok := login(t, h, "admin", "admin123")
	rec := do(t, h, http.MethodGet, UsersPath, tok, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "users 0-2/2", rec.Header().Get("Content-Range"))

	cfg.SeedFile = "/does/not/exist.yaml"
	_, err = NewFromConfig(context.Background(), cfg, logging.Nop())
	assert.Error(t, err)

	cfg.SeedFile = ""
	cfg.TokenScheme = "rot13"
	_, err = NewFromConfig(context.Background(), cfg, logging.Nop())
	assert.Error(t, err)
}

func TestWrites_LogUserID(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()

	h, err := NewFromConfig(context.Background(), cfg, logging.NewJSONLogger(&buf, slog.LevelDebug))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"users":2`)
	assert.Contains(t, buf.String(), `"posts":3`)

	tok := login(t, h, "user", "user123")
	buf.Reset()

	rec := do(t, h, http.MethodPost, PostsPath, tok, `{"title":"t"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `"msg":"record created"`)
	assert.Contains(t, out, `"user_id":2`)
}

func TestResource_OutsideChainNeedsToken(t *testing.T) {
	ds := seed.Default()
	users := store.New(ds.Users)
	svc := services.NewUserService(users, auth.NewJWTCodec([]byte("k"), time.Hour, nil))
	h := NewResource("posts", services.NewResourceService("post", store.New(ds.Posts), query.PostSchema), svc, nil, logging.Nop())

	rec := do(t, h, http.MethodOptions, PostsPath, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
