package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/skillbase-io/skillbase/modules/hrm/domain/entities/employee"
	"github.com/skillbase-io/skillbase/modules/hrm/services"
	"github.com/skillbase-io/skillbase/pkg/application"
	"github.com/skillbase-io/skillbase/pkg/httpapi"
)

// EmployeeAPIController serves the read-only employee directory.
type EmployeeAPIController struct {
	app      application.Application
	basePath string
}

func NewEmployeeAPIController(app application.Application) application.Controller {
	return &EmployeeAPIController{
		app:      app,
		basePath: "/api/v1/employees",
	}
}

func (c *EmployeeAPIController) Key() string {
	return c.basePath
}

func (c *EmployeeAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
}

type employeeResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	JobTitle      string    `json:"job_title"`
	GradeLevel    string    `json:"grade_level"`
	PositionID    uint      `json:"position_id"`
	PositionGroup string    `json:"position_group"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toEmployeeResponse(e *employee.Employee) *employeeResponse {
	return &employeeResponse{
		ID:            e.ID,
		Name:          e.Name,
		JobTitle:      e.JobTitle,
		GradeLevel:    e.GradeLevel,
		PositionID:    e.PositionID,
		PositionGroup: e.PositionGroup,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (c *EmployeeAPIController) employeeService() *services.EmployeeService {
	return c.app.Service(services.EmployeeService{}).(*services.EmployeeService)
}

func (c *EmployeeAPIController) List(w http.ResponseWriter, r *http.Request) {
	params := &employee.FindParams{
		GradeLevel: r.URL.Query().Get("grade_level"),
	}
	if raw := r.URL.Query().Get("position_id"); raw != "" {
		positionID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid position_id", nil)
			return
		}
		params.PositionID = uint(positionID)
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			params.Limit = limit
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			params.Offset = offset
		}
	}
	employees, err := c.employeeService().GetAll(r.Context(), params)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	out := make([]*employeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *EmployeeAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid id", nil)
		return
	}
	entity, err := c.employeeService().GetByID(r.Context(), id)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeResponse(entity))
}
