// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httpapi exposes the discovery engine and the resource catalog
// over HTTP. Caller identity arrives in X-User-* headers set by the
// authentication gateway; this layer never authenticates.
package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusware/unihub/internal/authz"
	"github.com/campusware/unihub/internal/discovery"
	"github.com/campusware/unihub/internal/importer"
	"github.com/campusware/unihub/internal/store"
	"github.com/campusware/unihub/pkg/types"
)

// Handler carries the API's collaborators.
type Handler struct {
	engine   *discovery.Engine
	store    *store.Store
	importer *importer.Importer
	checker  authz.Checker
	logw     io.Writer
}

// NewHandler builds the API handler. logw receives provider warnings; nil
// discards them.
func NewHandler(engine *discovery.Engine, st *store.Store, imp *importer.Importer, checker authz.Checker, logw io.Writer) *Handler {
	if logw == nil {
		logw = io.Discard
	}
	if checker == nil {
		checker = authz.MembershipChecker{}
	}
	return &Handler{engine: engine, store: st, importer: imp, checker: checker, logw: logw}
}

// caller extracts the gateway-provided identity headers.
func caller(c *gin.Context) authz.Caller {
	return authz.Caller{
		ID:            c.GetHeader("X-User-ID"),
		Role:          c.GetHeader("X-User-Role"),
		DepartmentIDs: splitList(c.GetHeader("X-User-Departments")),
		CourseIDs:     splitList(c.GetHeader("X-User-Courses")),
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// requireCaller rejects requests without a gateway identity.
func requireCaller(c *gin.Context) (authz.Caller, bool) {
	id := caller(c)
	if id.ID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing caller identity"})
		return authz.Caller{}, false
	}
	return id, true
}

// respondError maps the domain error taxonomy to HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, discovery.ErrInvalidRequest),
		errors.Is(err, importer.ErrInvalidCandidate),
		errors.Is(err, store.ErrInvalidResource),
		errors.Is(err, store.ErrInvalidRating):
		status = http.StatusBadRequest
	case errors.Is(err, authz.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// Search handles GET /resources/search.
func (h *Handler) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	req := discovery.Request{
		Query:        q.Query,
		Type:         types.ResourceType(q.Type),
		Level:        q.Level,
		DepartmentID: q.Department,
		CourseID:     q.Course,
		Sources:      splitList(q.Sources),
		Page:         q.Page,
		Limit:        q.Limit,
	}

	result, err := h.engine.Search(c.Request.Context(), req, h.logw)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, searchResponse{Success: true, SearchResult: result})
}

type searchResponse struct {
	Success bool `json:"success"`
	*types.SearchResult
}

// Import handles POST /resources/import.
func (h *Handler) Import(c *gin.Context) {
	id, ok := requireCaller(c)
	if !ok {
		return
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	resource, created, err := h.importer.Import(c.Request.Context(), req.Candidate, importer.Options{
		ImporterID:    id.ID,
		ImporterRole:  id.Role,
		AccessLevel:   types.AccessLevel(req.AccessLevel),
		DepartmentIDs: req.DepartmentIDs,
		CourseIDs:     req.CourseIDs,
		Tags:          req.Tags,
		Level:         req.Level,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"success": true, "created": created, "resource": resource})
}

// Upload handles POST /resources: a direct catalog entry whose file (if
// any) the blob collaborator already stored.
func (h *Handler) Upload(c *gin.Context) {
	id, ok := requireCaller(c)
	if !ok {
		return
	}

	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	access := types.AccessLevel(req.AccessLevel)
	if access == "" {
		access = types.AccessPublic
	}
	resource := &types.Resource{
		Title:         req.Title,
		Description:   req.Description,
		Type:          types.ResourceType(req.Type),
		Format:        req.Format,
		Author:        req.Author,
		Publisher:     req.Publisher,
		Year:          req.Year,
		ISBN:          req.ISBN,
		Tags:          req.Tags,
		DepartmentIDs: req.DepartmentIDs,
		CourseIDs:     req.CourseIDs,
		Level:         req.Level,
		FileURL:       req.FileURL,
		ExternalLink:  req.ExternalLink,
		UploaderID:    id.ID,
		UploaderRole:  id.Role,
		AccessLevel:   access,
	}

	if err := h.store.CreateResource(c.Request.Context(), resource); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "resource": resource})
}

// Get handles GET /resources/:id. Opening a detail counts as a view.
func (h *Handler) Get(c *gin.Context) {
	resource, err := h.store.GetResource(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.checker.Check(caller(c), resource); err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.IncrementViews(c.Request.Context(), resource.ID); err == nil {
		resource.Views++
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "resource": resource})
}

// Rate handles POST /resources/:id/rate.
func (h *Handler) Rate(c *gin.Context) {
	id, ok := requireCaller(c)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	resource, err := h.store.UpsertRating(c.Request.Context(), c.Param("id"), types.Rating{
		RaterID: id.ID,
		Score:   req.Score,
		Review:  req.Review,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "resource": resource})
}

// Download handles POST /resources/:id/download: authz-gated, counts the
// download, and returns the link to fetch.
func (h *Handler) Download(c *gin.Context) {
	resource, err := h.store.GetResource(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.checker.Check(caller(c), resource); err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.IncrementDownloads(c.Request.Context(), resource.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": resource.Link()})
}

// Share handles POST /resources/:id/share.
func (h *Handler) Share(c *gin.Context) {
	if err := h.store.IncrementShares(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
