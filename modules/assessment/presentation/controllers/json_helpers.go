package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/skillbase-io/skillbase/pkg/httpapi"
	"github.com/skillbase-io/skillbase/pkg/middleware"
	"github.com/skillbase-io/skillbase/pkg/serrors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	_ = httpapi.WriteJSON(w, status, payload)
}

// writeAPIError maps domain error codes onto HTTP statuses. Unknown errors
// are logged and surfaced as opaque 500s.
func writeAPIError(r *http.Request, w http.ResponseWriter, err error) {
	var base *serrors.BaseError
	if errors.As(err, &base) {
		_ = httpapi.WriteError(w, statusForCode(base.Code), base.Code, base.Message, nil)
		return
	}
	middleware.UseLogger(r.Context()).WithError(err).Error("unhandled API error")
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
}

func statusForCode(code string) int {
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasPrefix(code, "VALIDATION"):
		return http.StatusUnprocessableEntity
	case strings.HasPrefix(code, "DUPLICATE"):
		return http.StatusConflict
	case strings.HasPrefix(code, "WORKFLOW"):
		return http.StatusConflict
	case strings.HasPrefix(code, "AUTHZ"):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, w http.ResponseWriter, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return false
	}
	return true
}

func pathUUID(r *http.Request, w http.ResponseWriter, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
