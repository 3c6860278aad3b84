package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/adminpanel/internal/common"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
	"github.com/dmitrijs2005/adminpanel/internal/server/services"
)

// LoginService checks credentials and issues a token.
type LoginService interface {
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler serves POST /api/auth/login.
type LoginHandler struct {
	svc LoginService
	log logging.Logger
}

func NewLoginHandler(svc LoginService, log logging.Logger) *LoginHandler {
	return &LoginHandler{svc: svc, log: log}
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := loggerFrom(ctx, h.log)

	if r.Method != http.MethodPost {
		writeError(ctx, w, log, common.NewError(common.ErrorMethodNotAllowed, "method not allowed"))
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(ctx, w, log, common.NewError(common.ErrorValidation, "username and password are required"))
		return
	}

	res, err := h.svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		log.Warn(ctx, "login failed", "username", req.Username, "error", err)
		writeError(ctx, w, log, err)
		return
	}

	log.Info(ctx, "user logged in", "user_id", res.User.ID)
	writeJSON(w, http.StatusOK, res)
}
