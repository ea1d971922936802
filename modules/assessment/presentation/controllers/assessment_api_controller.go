package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/scoring"
	"github.com/skillbase-io/skillbase/modules/assessment/services"
	"github.com/skillbase-io/skillbase/pkg/application"
	"github.com/skillbase-io/skillbase/pkg/httpapi"
)

type AssessmentAPIController struct {
	app      application.Application
	basePath string
}

func NewAssessmentAPIController(app application.Application) application.Controller {
	return &AssessmentAPIController{
		app:      app,
		basePath: "/api/v1/assessments",
	}
}

func (c *AssessmentAPIController) Key() string {
	return c.basePath
}

func (c *AssessmentAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{id}/ratings", c.SaveDraft).Methods(http.MethodPut)
	router.HandleFunc("/{id}/submit", c.Submit).Methods(http.MethodPost)
	router.HandleFunc("/{id}/reopen", c.Reopen).Methods(http.MethodPost)
	router.HandleFunc("/{id}/score", c.Score).Methods(http.MethodGet)
	router.HandleFunc("/{id}/export", c.Export).Methods(http.MethodGet)
}

type ratingResponse struct {
	Actual int    `json:"actual"`
	Notes  string `json:"notes,omitempty"`
	Rated  bool   `json:"rated"`
}

type assessmentResponse struct {
	ID             uuid.UUID               `json:"id"`
	Domain         string                  `json:"domain"`
	EmployeeID     uuid.UUID               `json:"employee_id"`
	TemplateID     uuid.UUID               `json:"template_id"`
	Status         string                  `json:"status"`
	Ratings        map[uint]ratingResponse `json:"ratings"`
	AssessmentDate time.Time               `json:"assessment_date"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

func toAssessmentResponse(a *assessment.Assessment) *assessmentResponse {
	ratings := make(map[uint]ratingResponse, len(a.Ratings))
	for itemID, rating := range a.Ratings {
		ratings[itemID] = ratingResponse{Actual: rating.Actual, Notes: rating.Notes, Rated: rating.Rated}
	}
	return &assessmentResponse{
		ID:             a.ID,
		Domain:         string(a.Domain),
		EmployeeID:     a.EmployeeID,
		TemplateID:     a.TemplateID,
		Status:         string(a.Status),
		Ratings:        ratings,
		AssessmentDate: a.AssessmentDate,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (c *AssessmentAPIController) assessmentService() *services.AssessmentService {
	return c.app.Service(services.AssessmentService{}).(*services.AssessmentService)
}

func (c *AssessmentAPIController) exportService() *services.ExportService {
	return c.app.Service(services.ExportService{}).(*services.ExportService)
}

func (c *AssessmentAPIController) List(w http.ResponseWriter, r *http.Request) {
	params := &assessment.FindParams{
		Domain: catalog.Domain(r.URL.Query().Get("domain")),
		Status: assessment.Status(r.URL.Query().Get("status")),
	}
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		employeeID, err := uuid.Parse(raw)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid employee_id", nil)
			return
		}
		params.EmployeeID = employeeID
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
	assessments, err := c.assessmentService().GetAll(r.Context(), params)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	out := make([]*assessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, toAssessmentResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *AssessmentAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, w, "id")
	if !ok {
		return
	}
	entity, err := c.assessmentService().GetByID(r.Context(), id)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssessmentResponse(entity))
}

func (c *AssessmentAPIController) Create(w http.ResponseWriter, r *http.Request) {
	dto := &assessment.CreateDTO{}
	if !decodeJSON(r, w, dto) {
		return
	}
	entity, err := c.assessmentService().Create(r.Context(), dto)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssessmentResponse(entity))
}

func (c *AssessmentAPIController) SaveDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, w, "id")
	if !ok {
		return
	}
	dto := &assessment.SaveDraftDTO{}
	if !decodeJSON(r, w, dto) {
		return
	}
	entity, err := c.assessmentService().SaveDraft(r.Context(), id, dto)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssessmentResponse(entity))
}

func (c *AssessmentAPIController) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, w, "id")
	if !ok {
		return
	}
	entity, err := c.assessmentService().Submit(r.Context(), id)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssessmentResponse(entity))
}

func (c *AssessmentAPIController) Reopen(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, w, "id")
	if !ok {
		return
	}
	entity, err := c.assessmentService().Reopen(r.Context(), id)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssessmentResponse(entity))
}

func (c *AssessmentAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, w, "id")
	if !ok {
		return
	}
	if err := c.assessmentService().Delete(r.Context(), id); err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type itemScoreResponse struct {
	ItemID    uint     `json:"item_id"`
	Name      string   `json:"name"`
	GroupPath []string `json:"group_path"`
	Required  int      `json:"required"`
	Actual    int      `json:"actual"`
	Gap       int      `json:"gap"`
	Notes     string   `json:"notes,omitempty"`
	Rated     bool     `json:"rated"`
}

type groupScoreResponse struct {
	Key           string   `json:"key"`
	GroupPath     []string `json:"group_path"`
	RequiredTotal int      `json:"required_total"`
	ActualTotal   int      `json:"actual_total"`
	Percentage    float64  `json:"percentage"`
	Grade         string   `json:"grade"`
}

type scoreResponse struct {
	AssessmentID uuid.UUID            `json:"assessment_id"`
	Domain       string               `json:"domain"`
	EmployeeID   uuid.UUID            `json:"employee_id"`
	Status       string               `json:"status"`
	Items        []itemScoreResponse  `json:"items"`
	Groups       []groupScoreResponse `json:"groups"`
	MainGroups   []groupScoreResponse `json:"main_groups,omitempty"`
	Overall      groupScoreResponse   `json:"overall"`
	Completion   float64              `json:"completion"`
}

func toGroupScoreResponse(score scoring.GroupScore) groupScoreResponse {
	return groupScoreResponse{
		Key:           score.Key,
		GroupPath:     score.GroupPath,
		RequiredTotal: score.RequiredTotal,
		ActualTotal:   score.ActualTotal,
		Percentage:    score.Percentage,
		Grade:         score.Grade.Letter,
	}
}

func (c *AssessmentAPIController) Score(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, w, "id")
	if !ok {
		return
	}
	report, err := c.assessmentService().Score(r.Context(), id)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}

	out := &scoreResponse{
		AssessmentID: report.AssessmentID,
		Domain:       string(report.Domain),
		EmployeeID:   report.EmployeeID,
		Status:       string(report.Status),
		Completion:   report.Completion,
		Overall:      toGroupScoreResponse(report.Overall),
	}
	for _, item := range report.Items {
		out.Items = append(out.Items, itemScoreResponse{
			ItemID:    item.ItemID,
			Name:      item.Name,
			GroupPath: item.GroupPath,
			Required:  item.Required,
			Actual:    item.Actual,
			Gap:       item.Gap,
			Notes:     item.Notes,
			Rated:     item.Rated,
		})
	}
	for _, group := range report.Groups {
		out.Groups = append(out.Groups, toGroupScoreResponse(group))
	}
	for _, group := range report.MainGroups {
		out.MainGroups = append(out.MainGroups, toGroupScoreResponse(group))
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *AssessmentAPIController) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, w, "id")
	if !ok {
		return
	}
	doc, err := c.exportService().ExportScoreReport(r.Context(), id)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Content)
}
