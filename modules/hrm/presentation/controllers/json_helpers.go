package controllers

import (
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"github.com/skillbase-io/skillbase/pkg/httpapi"
	"github.com/skillbase-io/skillbase/pkg/middleware"
	"github.com/skillbase-io/skillbase/pkg/serrors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	_ = httpapi.WriteJSON(w, status, payload)
}

func writeAPIError(r *http.Request, w http.ResponseWriter, err error) {
	var base *serrors.BaseError
	if errors.As(err, &base) {
		status := http.StatusInternalServerError
		if strings.HasSuffix(base.Code, "_NOT_FOUND") {
			status = http.StatusNotFound
		}
		_ = httpapi.WriteError(w, status, base.Code, base.Message, nil)
		return
	}
	middleware.UseLogger(r.Context()).WithError(err).Error("unhandled API error")
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
}
