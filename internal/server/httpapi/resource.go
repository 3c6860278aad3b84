package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/adminpanel/internal/common"
	"github.com/dmitrijs2005/adminpanel/internal/logging"
	"github.com/dmitrijs2005/adminpanel/internal/server/models"
	"github.com/dmitrijs2005/adminpanel/internal/server/query"
	"github.com/dmitrijs2005/adminpanel/internal/server/services"
)

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (int, error)
}

// Resource serves one collection: list and single reads on GET, create on
// POST, merge on PUT and delete on DELETE. Every verb needs a valid bearer
// token; preflight requests are answered by the CORS middleware.
type Resource[T models.Record[T]] struct {
	name string
	svc  *services.ResourceService[T]
	auth Authenticator
	view func(T) any
	log  logging.Logger
}

// NewResource builds the handler for the collection called name. view
// converts a record to its wire form; nil sends records as they are.
func NewResource[T models.Record[T]](name string, svc *services.ResourceService[T], auth Authenticator, view func(T) any, log logging.Logger) *Resource[T] {
	if view == nil {
		view = func(rec T) any { return rec }
	}
	return &Resource[T]{name: name, svc: svc, auth: auth, view: view, log: log}
}

func (h *Resource[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := loggerFrom(ctx, h.log)

	ctx, err := authenticate(ctx, r, h.auth)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}
	if userID, ok := UserIDFrom(ctx); ok {
		log = log.With("user_id", userID)
	}

	switch r.Method {
	case http.MethodGet:
		h.get(ctx, w, r, log)
	case http.MethodPost:
		h.create(ctx, w, r, log)
	case http.MethodPut:
		h.update(ctx, w, r, log)
	case http.MethodDelete:
		h.delete(ctx, w, r, log)
	default:
		writeError(ctx, w, log, common.NewError(common.ErrorMethodNotAllowed, "method not allowed"))
	}
}

func (h *Resource[T]) get(ctx context.Context, w http.ResponseWriter, r *http.Request, log logging.Logger) {
	d, err := h.svc.Parse(r.URL.Query())
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	if id, ok := d.Single(); ok {
		rec, err := h.svc.Get(ctx, id)
		if err != nil {
			writeError(ctx, w, log, err)
			return
		}
		writeJSON(w, http.StatusOK, h.view(rec))
		return
	}

	page := h.svc.List(ctx, d)
	out := make([]any, 0, len(page.Items))
	for _, rec := range page.Items {
		out = append(out, h.view(rec))
	}

	w.Header().Set(common.ContentRangeHeaderName, page.ContentRange(h.name))
	w.Header().Set("Access-Control-Expose-Headers", common.ContentRangeHeaderName)
	writeJSON(w, http.StatusOK, out)
}

func (h *Resource[T]) create(ctx context.Context, w http.ResponseWriter, r *http.Request, log logging.Logger) {
	body, err := readBody(r)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	rec, err := h.svc.Create(ctx, body)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}
	log.Info(ctx, "record created", "resource", h.name, "id", rec.GetID())
	writeJSON(w, http.StatusCreated, h.view(rec))
}

func (h *Resource[T]) update(ctx context.Context, w http.ResponseWriter, r *http.Request, log logging.Logger) {
	id, err := requireID(r)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	rec, err := h.svc.Update(ctx, id, body)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}
	log.Info(ctx, "record updated", "resource", h.name, "id", id)
	writeJSON(w, http.StatusOK, h.view(rec))
}

func (h *Resource[T]) delete(ctx context.Context, w http.ResponseWriter, r *http.Request, log logging.Logger) {
	id, err := requireID(r)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}

	rec, err := h.svc.Delete(ctx, id)
	if err != nil {
		writeError(ctx, w, log, err)
		return
	}
	log.Info(ctx, "record deleted", "resource", h.name, "id", id)
	writeJSON(w, http.StatusOK, h.view(rec))
}

// authenticate checks the bearer token and stores the user id in the
// returned context.
func authenticate(ctx context.Context, r *http.Request, auth Authenticator) (context.Context, error) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return ctx, common.NewError(common.ErrorUnauthorized, "unauthorized")
	}

	userID, err := auth.Authenticate(ctx, strings.TrimPrefix(header, common.BearerPrefix))
	if err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, userIDKey, userID), nil
}

func requireID(r *http.Request) (int, error) {
	raw := r.URL.Query().Get(query.ParamID)
	if raw == "" {
		return 0, common.NewError(common.ErrorValidation, "id is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.NewError(common.ErrorValidation, "invalid id "+strconv.Quote(raw))
	}
	return id, nil
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, common.NewError(common.ErrorValidation, "request body must be a JSON object")
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, common.NewError(common.ErrorValidation, "request body too large")
		}
		return nil, common.NewError(common.ErrorValidation, "cannot read request body")
	}
	return body, nil
}
