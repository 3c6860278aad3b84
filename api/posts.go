package api

import (
	"net/http"

	"github.com/dmitrijs2005/adminpanel/internal/server/function"
)

// Posts serves /api/posts.
func Posts(w http.ResponseWriter, r *http.Request) {
	function.Serve(w, r)
}
