package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/modules/assessment/services"
	"github.com/skillbase-io/skillbase/pkg/application"
	"github.com/skillbase-io/skillbase/pkg/httpapi"
)

type TemplateAPIController struct {
	app      application.Application
	basePath string
}

func NewTemplateAPIController(app application.Application) application.Controller {
	return &TemplateAPIController{
		app:      app,
		basePath: "/api/v1/templates",
	}
}

func (c *TemplateAPIController) Key() string {
	return c.basePath
}

func (c *TemplateAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/match", c.Match).Methods(http.MethodGet)
	router.HandleFunc("/grade-levels", c.GradeLevels).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

type templateResponse struct {
	ID          uuid.UUID    `json:"id"`
	Domain      string       `json:"domain"`
	PositionID  uint         `json:"position_id"`
	GradeLevels []string     `json:"grade_levels"`
	Ratings     map[uint]int `json:"ratings"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func toTemplateResponse(t *template.Template) *templateResponse {
	return &templateResponse{
		ID:          t.ID,
		Domain:      string(t.Domain),
		PositionID:  t.PositionID,
		GradeLevels: t.GradeLevels,
		Ratings:     t.Ratings,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (c *TemplateAPIController) templateService() *services.TemplateService {
	return c.app.Service(services.TemplateService{}).(*services.TemplateService)
}

func (c *TemplateAPIController) List(w http.ResponseWriter, r *http.Request) {
	params := &template.FindParams{
		Domain: catalog.Domain(r.URL.Query().Get("domain")),
	}
	if raw := r.URL.Query().Get("position_id"); raw != "" {
		positionID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid position_id", nil)
			return
		}
		params.PositionID = uint(positionID)
	}
	templates, err := c.templateService().GetAll(r.Context(), params)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	out := make([]*templateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *TemplateAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, w, "id")
	if !ok {
		return
	}
	entity, err := c.templateService().GetByID(r.Context(), id)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTemplateResponse(entity))
}

func (c *TemplateAPIController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &template.CreateDTO{}
	if !decodeJSON(r, w, dto) {
		return
	}
	entity, err := c.templateService().Create(r.Context(), dto)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTemplateResponse(entity))
}

func (c *TemplateAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, w, "id")
	if !ok {
		return
	}
	dto := &template.UpdateDTO{}
	if !decodeJSON(r, w, dto) {
		return
	}
	entity, err := c.templateService().Update(r.Context(), id, dto)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTemplateResponse(entity))
}

func (c *TemplateAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, w, "id")
	if !ok {
		return
	}
	if err := c.templateService().Delete(r.Context(), id); err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type matchResponse struct {
	Template *templateResponse `json:"template"`
	Employee struct {
		ID         uuid.UUID `json:"id"`
		Name       string    `json:"name"`
		GradeLevel string    `json:"grade_level"`
		PositionID uint      `json:"position_id"`
	} `json:"employee"`
	Skeleton map[uint]int `json:"skeleton"`
}

// Match resolves the template applicable to an employee before an
// assessment is created.
func (c *TemplateAPIController) Match(w http.ResponseWriter, r *http.Request) {
	employeeID, err := uuid.Parse(r.URL.Query().Get("employee_id"))
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid employee_id", nil)
		return
	}
	domain := catalog.Domain(r.URL.Query().Get("domain"))
	if !domain.Valid() {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid domain", nil)
		return
	}
	result, err := c.templateService().MatchEmployee(r.Context(), employeeID, domain)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	out := &matchResponse{
		Template: toTemplateResponse(result.Template),
		Skeleton: result.Skeleton,
	}
	out.Employee.ID = result.Employee.ID
	out.Employee.Name = result.Employee.Name
	out.Employee.GradeLevel = result.Employee.GradeLevel
	out.Employee.PositionID = result.Employee.PositionID
	writeJSON(w, http.StatusOK, out)
}

func (c *TemplateAPIController) GradeLevels(w http.ResponseWriter, r *http.Request) {
	domain := catalog.Domain(r.URL.Query().Get("domain"))
	if !domain.Valid() {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid domain", nil)
		return
	}
	positionID, err := strconv.ParseUint(r.URL.Query().Get("position_id"), 10, 32)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid position_id", nil)
		return
	}
	levels, err := c.templateService().GradeLevelsForPosition(r.Context(), domain, uint(positionID))
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"grade_levels": levels})
}
