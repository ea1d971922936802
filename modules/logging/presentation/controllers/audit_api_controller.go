package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/skillbase-io/skillbase/modules/logging/domain/entities/actionlog"
	"github.com/skillbase-io/skillbase/modules/logging/services"
	"github.com/skillbase-io/skillbase/pkg/application"
	"github.com/skillbase-io/skillbase/pkg/httpapi"
	"github.com/skillbase-io/skillbase/pkg/middleware"
)

type AuditAPIController struct {
	app      application.Application
	basePath string
}

func NewAuditAPIController(app application.Application) application.Controller {
	return &AuditAPIController{
		app:      app,
		basePath: "/api/v1/audit",
	}
}

func (c *AuditAPIController) Key() string {
	return c.basePath
}

func (c *AuditAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/logs", c.List).Methods(http.MethodGet)
}

type actionLogResponse struct {
	ID         uint            `json:"id"`
	Actor      string          `json:"actor"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (c *AuditAPIController) auditService() *services.AuditService {
	return c.app.Service(services.AuditService{}).(*services.AuditService)
}

func (c *AuditAPIController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := &actionlog.FindParams{
		Action:     query.Get("action"),
		EntityType: query.Get("entity_type"),
		EntityID:   query.Get("entity_id"),
	}
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid from timestamp", nil)
			return
		}
		params.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid to timestamp", nil)
			return
		}
		params.To = &to
	}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			params.Limit = limit
		}
	}
	if raw := query.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			params.Offset = offset
		}
	}

	logs, err := c.auditService().List(r.Context(), params)
	if err != nil {
		middleware.UseLogger(r.Context()).WithError(err).Error("failed to list action logs")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
		return
	}
	total, err := c.auditService().Count(r.Context(), params)
	if err != nil {
		middleware.UseLogger(r.Context()).WithError(err).Error("failed to count action logs")
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", nil)
		return
	}

	out := make([]*actionLogResponse, 0, len(logs))
	for _, entry := range logs {
		out = append(out, &actionLogResponse{
			ID:         entry.ID,
			Actor:      entry.Actor,
			Action:     entry.Action,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Payload:    entry.Payload,
			CreatedAt:  entry.CreatedAt,
		})
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"total": total,
		"logs":  out,
	})
}
