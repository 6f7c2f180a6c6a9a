package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stackadvisor-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the catalog service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches catalog routes to the router group. List endpoints
// return the bare array, matching what the form dropdowns consume.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/language", h.listLanguages)
	rg.POST("/language", h.createLanguage)
	rg.GET("/language/:id", h.getLanguage)
	rg.DELETE("/language/:id", h.deleteLanguage)

	rg.GET("/framework", h.listFrameworks)
	rg.POST("/framework", h.createFramework)
	rg.GET("/framework/:id", h.getFramework)
	rg.DELETE("/framework/:id", h.deleteFramework)

	rg.GET("/datastorage", h.listDataStorages)
	rg.POST("/datastorage", h.createDataStorage)
	rg.GET("/datastorage/:id", h.getDataStorage)
	rg.DELETE("/datastorage/:id", h.deleteDataStorage)
}

type createLanguageRequest struct {
	Name           string `json:"name"`
	EntryThreshold string `json:"entryThreshold"`
	ExecutionModel string `json:"executionModel"`
	Popularity     string `json:"popularity"`
	Purpose        string `json:"purpose"`
}

func (h *Handler) listLanguages(c *gin.Context) {
	langs, err := h.Svc.ListLanguages(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list languages", nil)
		return
	}
	respond.OK(c, langs)
}

func (h *Handler) createLanguage(c *gin.Context) {
	var req createLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	lang, err := h.Svc.CreateLanguage(c.Request.Context(), Language{
		Name:           req.Name,
		EntryThreshold: req.EntryThreshold,
		ExecutionModel: req.ExecutionModel,
		Popularity:     req.Popularity,
		Purpose:        req.Purpose,
	})
	if err != nil {
		writeCatalogError(c, err, "failed to create language")
		return
	}
	respond.Created(c, lang)
}

func (h *Handler) getLanguage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	lang, err := h.Svc.GetLanguage(c.Request.Context(), id)
	if err != nil {
		writeCatalogError(c, err, "failed to fetch language")
		return
	}
	respond.OK(c, lang)
}

func (h *Handler) deleteLanguage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteLanguage(c.Request.Context(), id); err != nil {
		writeCatalogError(c, err, "failed to delete language")
		return
	}
	c.Status(http.StatusNoContent)
}

type createFrameworkRequest struct {
	Name          string     `json:"name"`
	LanguageIDs   []int64    `json:"languageIds"`
	IsReactive    bool       `json:"isReactive"`
	IsActual      *bool      `json:"isActual"`
	TasksType     string     `json:"tasksType"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt"`
}

func (h *Handler) listFrameworks(c *gin.Context) {
	fws, err := h.Svc.ListFrameworks(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list frameworks", nil)
		return
	}
	respond.OK(c, fws)
}

func (h *Handler) createFramework(c *gin.Context) {
	var req createFrameworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	isActual := true
	if req.IsActual != nil {
		isActual = *req.IsActual
	}
	fw, err := h.Svc.CreateFramework(c.Request.Context(), Framework{
		Name:          req.Name,
		LanguageIDs:   req.LanguageIDs,
		IsReactive:    req.IsReactive,
		IsActual:      isActual,
		TasksType:     req.TasksType,
		LastUpdatedAt: req.LastUpdatedAt,
	})
	if err != nil {
		writeCatalogError(c, err, "failed to create framework")
		return
	}
	respond.Created(c, fw)
}

func (h *Handler) getFramework(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	fw, err := h.Svc.GetFramework(c.Request.Context(), id)
	if err != nil {
		writeCatalogError(c, err, "failed to fetch framework")
		return
	}
	respond.OK(c, fw)
}

func (h *Handler) deleteFramework(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteFramework(c.Request.Context(), id); err != nil {
		writeCatalogError(c, err, "failed to delete framework")
		return
	}
	c.Status(http.StatusNoContent)
}

type createDataStorageRequest struct {
	Name            string `json:"name"`
	StorageType     string `json:"storageType"`
	StorageLocation string `json:"storageLocation"`
	DatabaseType    string `json:"databaseType"`
}

func (h *Handler) listDataStorages(c *gin.Context) {
	storages, err := h.Svc.ListDataStorages(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list data storages", nil)
		return
	}
	respond.OK(c, storages)
}

func (h *Handler) createDataStorage(c *gin.Context) {
	var req createDataStorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	ds, err := h.Svc.CreateDataStorage(c.Request.Context(), DataStorage{
		Name:            req.Name,
		StorageType:     req.StorageType,
		StorageLocation: req.StorageLocation,
		DatabaseType:    req.DatabaseType,
	})
	if err != nil {
		writeCatalogError(c, err, "failed to create data storage")
		return
	}
	respond.Created(c, ds)
}

func (h *Handler) getDataStorage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ds, err := h.Svc.GetDataStorage(c.Request.Context(), id)
	if err != nil {
		writeCatalogError(c, err, "failed to fetch data storage")
		return
	}
	respond.OK(c, ds)
}

func (h *Handler) deleteDataStorage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteDataStorage(c.Request.Context(), id); err != nil {
		writeCatalogError(c, err, "failed to delete data storage")
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

func writeCatalogError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "catalog entry not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
