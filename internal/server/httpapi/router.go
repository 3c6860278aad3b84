// Package httpapi exposes the admin REST API over net/http.
//
// Routes:
//
//	/api/auth/login  POST credentials, get a bearer token
//	/api/users       CRUD on users (passwords never leave the server)
//	/api/posts       CRUD on posts
//
// Any other path answers 404 with a JSON body.
package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/adminpanel/internal/logging"
	"github.com/dmitrijs2005/adminpanel/internal/server/auth"
	"github.com/dmitrijs2005/adminpanel/internal/server/config"
	"github.com/dmitrijs2005/adminpanel/internal/server/models"
	"github.com/dmitrijs2005/adminpanel/internal/server/query"
	"github.com/dmitrijs2005/adminpanel/internal/server/seed"
	"github.com/dmitrijs2005/adminpanel/internal/server/services"
	"github.com/dmitrijs2005/adminpanel/internal/server/store"
)

const (
	LoginPath = "/api/auth/login"
	UsersPath = "/api/users"
	PostsPath = "/api/posts"
)

// Deps are the collaborators the router dispatches to.
type Deps struct {
	Auth   *services.UserService
	Users  *services.ResourceService[models.User]
	Posts  *services.ResourceService[models.Post]
	CORS   CORSConfig
	Logger logging.Logger
}

// NewRouter mounts every route. Each route runs behind panic recovery,
// CORS, request logging and the body size limit, in that order.
func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = logging.Nop()
	}

	route := func(cors CORSConfig, h http.Handler) http.Handler {
		return withRecovery(log, withCORS(cors, withRequestLog(log, withBodyLimit(h))))
	}

	users := NewResource("users", d.Users, d.Auth, func(u models.User) any { return u.Public() }, log)
	posts := NewResource("posts", d.Posts, d.Auth, nil, log)

	mux := http.NewServeMux()
	mux.Handle(LoginPath, route(d.CORS.withMethods(http.MethodPost, http.MethodOptions), NewLoginHandler(d.Auth, log)))
	mux.Handle(UsersPath, route(d.CORS, users))
	mux.Handle(PostsPath, route(d.CORS, posts))
	mux.Handle("/", route(d.CORS, http.HandlerFunc(notFound)))
	return mux
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Message: "route not found", Error: "not_found"})
}

// NewFromConfig builds seeded stores, services and the router from cfg.
// Both the standalone server and the serverless functions start here.
func NewFromConfig(ctx context.Context, cfg *config.Config, log logging.Logger) (http.Handler, error) {
	codec, err := auth.NewCodec(cfg)
	if err != nil {
		return nil, err
	}

	ds, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed data: %w", err)
	}

	userStore := store.New(ds.Users)
	postStore := store.New(ds.Posts)

	cors := DefaultCORSConfig()
	if len(cfg.AllowedOrigins) > 0 {
		cors.AllowedOrigins = cfg.AllowedOrigins
	}

	log.Info(ctx, "api ready",
		"token_scheme", cfg.TokenScheme,
		"users", userStore.Count(ctx),
		"posts", postStore.Count(ctx),
	)

	return NewRouter(Deps{
		Auth:   services.NewUserService(userStore, codec),
		Users:  services.NewResourceService("user", userStore, query.UserSchema),
		Posts:  services.NewResourceService("post", postStore, query.PostSchema),
		CORS:   cors,
		Logger: log,
	}), nil
}
