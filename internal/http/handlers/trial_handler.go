// Trial HTTP handlers.
//
// This file exposes REST endpoints for trial resources and their catalogs:
//   - POST   /trials               (create, full validation)
//   - PUT    /trials/{id}          (edit)
//   - PATCH  /trials/{id}/status   (status transition, optional close date)
//   - GET    /trials/{id}          (fetch with relations)
//   - GET    /trials               (search by term and type label)
//   - GET    /type-trials          (catalog)
//   - GET    /categories?name=     (categories for a type label)
//   - GET    /entry-types          (catalog)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
)

// TrialService defines trial lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type TrialService interface {
	// Create validates and persists a new trial.
	Create(ctx context.Context, t *domain.Trial) error
	// Edit overwrites an existing trial, re-applying the category rule.
	Edit(ctx context.Context, t *domain.Trial) error
	// UpdateStatus transitions a trial's status; archiving sets a close date.
	UpdateStatus(ctx context.Context, trialID string, status domain.Status, closeDate *time.Time) error
	// Get returns one trial with relations.
	Get(ctx context.Context, id string) (*domain.Trial, error)
	// Search returns trials matching a term and an optional type label.
	Search(ctx context.Context, term, typeLabel string) ([]domain.Trial, error)
	// CategoriesByTypeName lists the categories for a user-facing type label.
	CategoriesByTypeName(ctx context.Context, label string) ([]domain.Category, error)
	// Types lists every trial type.
	Types(ctx context.Context) ([]domain.TypeTrial, error)
	// EntryTypes lists every entry type.
	EntryTypes(ctx context.Context) ([]domain.EntryType, error)
}

// TrialRequest is the JSON payload for creating or editing a trial.
type TrialRequest struct {
	ID          string     `json:"id" binding:"required"`
	Number      string     `json:"number" binding:"required"`
	TypeTrialID string     `json:"typeTrialId" binding:"required"`
	CategoryID  *string    `json:"categoryId"`
	PlaintiffID string     `json:"plaintiffId" binding:"required"`
	DefendantID string     `json:"defendantId" binding:"required"`
	EntryTypeID string     `json:"entryTypeId" binding:"required"`
	ArrivalDate time.Time  `json:"arrivalDate" binding:"required"`
	CloseDate   *time.Time `json:"closeDate"`
	Status      string     `json:"status" binding:"required"`
}

// UpdateTrialStatusRequest is the JSON payload for a status transition.
// CloseDate is only honored when the new status is ARCHIVADO; when omitted
// the service defaults it to now.
type UpdateTrialStatusRequest struct {
	Status    string     `json:"status" binding:"required"`
	CloseDate *time.Time `json:"closeDate"`
}

func (req *TrialRequest) toDomain() *domain.Trial {
	return &domain.Trial{
		ID:          strings.TrimSpace(req.ID),
		Number:      strings.TrimSpace(req.Number),
		TypeTrialID: req.TypeTrialID,
		CategoryID:  req.CategoryID,
		PlaintiffID: req.PlaintiffID,
		DefendantID: req.DefendantID,
		EntryTypeID: req.EntryTypeID,
		ArrivalDate: req.ArrivalDate,
		CloseDate:   req.CloseDate,
		Status:      domain.Status(req.Status),
	}
}

// CreateTrial handles POST /trials.
func (h *Handlers) CreateTrial(c *gin.Context) {
	var req TrialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	t := req.toDomain()
	if err := h.trialSvc.Create(c.Request.Context(), t); err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, t)
}

// EditTrial handles PUT /trials/:id.
func (h *Handlers) EditTrial(c *gin.Context) {
	var req TrialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	t := req.toDomain()
	t.ID = c.Param("id")
	if err := h.trialSvc.Edit(c.Request.Context(), t); err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, t)
}

// UpdateTrialStatus handles PATCH /trials/:id/status.
func (h *Handlers) UpdateTrialStatus(c *gin.Context) {
	var req UpdateTrialStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	err := h.trialSvc.UpdateStatus(c.Request.Context(), c.Param("id"), domain.Status(req.Status), req.CloseDate)
	if err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// GetTrial handles GET /trials/:id.
func (h *Handlers) GetTrial(c *gin.Context) {
	t, err := h.trialSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, t)
}

// SearchTrials handles GET /trials?term=&type=.
func (h *Handlers) SearchTrials(c *gin.Context) {
	trials, err := h.trialSvc.Search(c.Request.Context(), c.Query("term"), c.Query("type"))
	if err != nil {
		failService(c, err)
		return
	}
	if n := searchLimit(c); len(trials) > n {
		trials = trials[:n]
	}
	ok(c, http.StatusOK, trials)
}

// ListTrialTypes handles GET /type-trials.
func (h *Handlers) ListTrialTypes(c *gin.Context) {
	types, err := h.trialSvc.Types(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, types)
}

// ListCategories handles GET /categories?name=.
func (h *Handlers) ListCategories(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name query parameter is required")
		return
	}
	cats, err := h.trialSvc.CategoriesByTypeName(c.Request.Context(), name)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, cats)
}

// ListEntryTypes handles GET /entry-types.
func (h *Handlers) ListEntryTypes(c *gin.Context) {
	entryTypes, err := h.trialSvc.EntryTypes(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, entryTypes)
}
