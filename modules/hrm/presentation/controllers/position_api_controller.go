package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/skillbase-io/skillbase/modules/hrm/domain/entities/position"
	"github.com/skillbase-io/skillbase/modules/hrm/services"
	"github.com/skillbase-io/skillbase/pkg/application"
	"github.com/skillbase-io/skillbase/pkg/httpapi"
)

type PositionAPIController struct {
	app      application.Application
	basePath string
}

func NewPositionAPIController(app application.Application) application.Controller {
	return &PositionAPIController{
		app:      app,
		basePath: "/api/v1/positions",
	}
}

func (c *PositionAPIController) Key() string {
	return c.basePath
}

func (c *PositionAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

type positionPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type positionResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toPositionResponse(p *position.Position) *positionResponse {
	return &positionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (c *PositionAPIController) positionService() *services.PositionService {
	return c.app.Service(services.PositionService{}).(*services.PositionService)
}

func pathPositionID(r *http.Request, w http.ResponseWriter) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

func (c *PositionAPIController) List(w http.ResponseWriter, r *http.Request) {
	positions, err := c.positionService().GetAll(r.Context())
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	out := make([]*positionResponse, 0, len(positions))
	for _, p := range positions {
		out = append(out, toPositionResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *PositionAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPositionID(r, w)
	if !ok {
		return
	}
	entity, err := c.positionService().GetByID(r.Context(), id)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPositionResponse(entity))
}

func (c *PositionAPIController) Create(w http.ResponseWriter, r *http.Request) {
	payload := &positionPayload{}
	if err := httpapi.DecodeJSON(r.Body, payload); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return
	}
	if payload.Name == "" {
		_ = httpapi.WriteError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "name is required", nil)
		return
	}
	now := time.Now()
	entity := &position.Position{
		Name:        payload.Name,
		Description: payload.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.positionService().Create(r.Context(), entity); err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPositionResponse(entity))
}

func (c *PositionAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPositionID(r, w)
	if !ok {
		return
	}
	payload := &positionPayload{}
	if err := httpapi.DecodeJSON(r.Body, payload); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return
	}
	entity, err := c.positionService().GetByID(r.Context(), id)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	if payload.Name != "" {
		entity.Name = payload.Name
	}
	entity.Description = payload.Description
	entity.UpdatedAt = time.Now()
	if err := c.positionService().Update(r.Context(), entity); err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPositionResponse(entity))
}

func (c *PositionAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathPositionID(r, w)
	if !ok {
		return
	}
	if err := c.positionService().Delete(r.Context(), id); err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
