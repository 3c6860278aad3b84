// Package function adapts the API to serverless Go runtimes that invoke a
// plain http.HandlerFunc per route.
//
// The router is built on first use from ADMINPANEL_* environment variables and
// kept for the life of the instance. Its stores are in memory, so data goes
// back to the seeds whenever the platform starts a fresh instance.
package function

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/dmitrijs2005/adminpanel/internal/logging"
	"github.com/dmitrijs2005/adminpanel/internal/server/config"
	"github.com/dmitrijs2005/adminpanel/internal/server/httpapi"
)

var (
	once    sync.Once
	handler http.Handler
	initErr error
)

// Handler returns the shared API handler, building it on first call.
func Handler() (http.Handler, error) {
	once.Do(func() {
		log := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
		handler, initErr = build(context.Background(), log)
		if initErr != nil {
			log.Error(context.Background(), "function init failed", "error", initErr)
		}
	})
	return handler, initErr
}

func build(ctx context.Context, log logging.Logger) (http.Handler, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	return httpapi.NewFromConfig(ctx, cfg, log)
}

// Serve dispatches one invocation to the shared handler.
func Serve(w http.ResponseWriter, r *http.Request) {
	h, err := Handler()
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"internal server error","error":"internal_error"}` + "\n"))
		return
	}
	h.ServeHTTP(w, r)
}
