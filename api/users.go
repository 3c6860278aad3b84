// Package api holds the serverless entry points. Each file is deployed as
// its own function and serves the route matching its path.
package api

import (
	"net/http"

	"github.com/dmitrijs2005/adminpanel/internal/server/function"
)

// Users serves /api/users.
func Users(w http.ResponseWriter, r *http.Request) {
	function.Serve(w, r)
}
