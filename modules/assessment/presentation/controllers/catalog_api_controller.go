package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/scale"
	"github.com/skillbase-io/skillbase/modules/assessment/services"
	"github.com/skillbase-io/skillbase/pkg/application"
	"github.com/skillbase-io/skillbase/pkg/httpapi"
)

// CatalogAPIController serves the read-mostly configuration surface:
// competency catalogs and rating scales per domain.
type CatalogAPIController struct {
	app      application.Application
	basePath string
}

func NewCatalogAPIController(app application.Application) application.Controller {
	return &CatalogAPIController{
		app:      app,
		basePath: "/api/v1/catalog",
	}
}

func (c *CatalogAPIController) Key() string {
	return c.basePath
}

func (c *CatalogAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/{domain}/groups", c.Groups).Methods(http.MethodGet)
	router.HandleFunc("/{domain}/groups/{id}/items", c.GroupItems).Methods(http.MethodGet)
	router.HandleFunc("/{domain}/items", c.Items).Methods(http.MethodGet)
	router.HandleFunc("/{domain}/items/{id}", c.Item).Methods(http.MethodGet)
	router.HandleFunc("/{domain}/scale", c.Scale).Methods(http.MethodGet)
	router.HandleFunc("/{domain}/scale", c.SaveScale).Methods(http.MethodPut)
}

func (c *CatalogAPIController) catalogService() *services.CatalogService {
	return c.app.Service(services.CatalogService{}).(*services.CatalogService)
}

func (c *CatalogAPIController) scaleService() *services.ScaleService {
	return c.app.Service(services.ScaleService{}).(*services.ScaleService)
}

func pathDomain(r *http.Request, w http.ResponseWriter) (catalog.Domain, bool) {
	domain := catalog.Domain(mux.Vars(r)["domain"])
	if !domain.Valid() {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid domain", nil)
		return "", false
	}
	return domain, true
}

type groupResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	MainGroup string `json:"main_group,omitempty"`
}

type itemResponse struct {
	ID      uint   `json:"id"`
	GroupID uint   `json:"group_id"`
	Name    string `json:"name"`
}

func (c *CatalogAPIController) Groups(w http.ResponseWriter, r *http.Request) {
	domain, ok := pathDomain(r, w)
	if !ok {
		return
	}
	groups, err := c.catalogService().GetGroups(r.Context(), domain)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupResponse{ID: g.ID, Name: g.Name, MainGroup: g.MainGroup})
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *CatalogAPIController) Items(w http.ResponseWriter, r *http.Request) {
	domain, ok := pathDomain(r, w)
	if !ok {
		return
	}
	items, err := c.catalogService().GetItems(r.Context(), domain)
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemResponse{ID: item.ID, GroupID: item.GroupID, Name: item.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *CatalogAPIController) GroupItems(w http.ResponseWriter, r *http.Request) {
	domain, ok := pathDomain(r, w)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid group id", nil)
		return
	}
	items, err := c.catalogService().GroupItems(r.Context(), domain, uint(id))
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	out := make([]itemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemResponse{ID: item.ID, GroupID: item.GroupID, Name: item.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (c *CatalogAPIController) Item(w http.ResponseWriter, r *http.Request) {
	domain, ok := pathDomain(r, w)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	item, err := c.catalogService().GetItem(r.Context(), domain, uint(id))
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, itemResponse{ID: item.ID, GroupID: item.GroupID, Name: item.Name})
}

type scalePayload struct {
	Levels []struct {
		Value       int    `json:"value"`
		Description string `json:"description"`
	} `json:"levels"`
	Bands []struct {
		Letter      string `json:"letter"`
		MinPercent  int    `json:"min_percent"`
		MaxPercent  int    `json:"max_percent"`
		Description string `json:"description"`
	} `json:"bands"`
}

func (c *CatalogAPIController) Scale(w http.ResponseWriter, r *http.Request) {
	domain, ok := pathDomain(r, w)
	if !ok {
		return
	}
	sc, err := c.scaleService().GetByDomain(r.Context(), string(domain))
	if err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (c *CatalogAPIController) SaveScale(w http.ResponseWriter, r *http.Request) {
	domain, ok := pathDomain(r, w)
	if !ok {
		return
	}
	payload := &scalePayload{}
	if !decodeJSON(r, w, payload) {
		return
	}
	sc := &scale.Scale{Domain: string(domain)}
	for _, level := range payload.Levels {
		sc.Levels = append(sc.Levels, scale.Level{Value: level.Value, Description: level.Description})
	}
	for _, band := range payload.Bands {
		sc.Bands = append(sc.Bands, scale.GradeBand{
			Letter:      band.Letter,
			MinPercent:  band.MinPercent,
			MaxPercent:  band.MaxPercent,
			Description: band.Description,
		})
	}
	if err := c.scaleService().Save(r.Context(), sc); err != nil {
		writeAPIError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, sc)
}
