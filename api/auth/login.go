// Package auth holds the serverless login entry point.
package auth

import (
	"net/http"

	"github.com/dmitrijs2005/adminpanel/internal/server/function"
)

// Login serves /api/auth/login.
func Login(w http.ResponseWriter, r *http.Request) {
	function.Serve(w, r)
}
