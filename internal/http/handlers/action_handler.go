// Action HTTP handlers.
//
// This file exposes REST endpoints for procedural actions and their catalog:
//   - POST   /actions                      (create, optional status cascade)
//   - PUT    /actions/{id}                 (edit)
//   - DELETE /actions/{id}                 (delete)
//   - GET    /actions                      (search)
//   - GET    /trials/{id}/actions          (actions of one trial)
//   - GET    /description-actions          (vocabulary, family-scoped)
//   - POST   /description-actions          (catalog create)
//   - PUT    /description-actions/{id}     (catalog edit)
//   - DELETE /description-actions/{id}     (catalog delete)
//   - GET    /type-actions                 (catalog)
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
	"github.com/jlozanoc/go-juzgado-backend/internal/services"
)

// ActionService defines action and catalog operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ActionService interface {
	// Add records an action and optionally cascades a trial status change.
	Add(ctx context.Context, a *domain.Action, status domain.Status, closeDate *time.Time) (*services.ActionOutcome, error)
	// Edit overwrites an existing action.
	Edit(ctx context.Context, a *domain.Action) error
	// Delete removes an action.
	Delete(ctx context.Context, id string) error
	// ByTrial lists the actions recorded against one trial.
	ByTrial(ctx context.Context, trialID string) ([]domain.Action, error)
	// Search returns actions matching a term and optional trial filter.
	Search(ctx context.Context, term, trialID string) ([]domain.Action, error)
	// ListApplicableDescriptions returns the vocabulary for a trial type.
	ListApplicableDescriptions(ctx context.Context, typeTrialID *string) ([]domain.DescriptionAction, error)
	// TypeActions lists every action type.
	TypeActions(ctx context.Context) ([]domain.TypeAction, error)
	// CreateDescription adds a catalog entry.
	CreateDescription(ctx context.Context, description, typeActionID string, typeTrialID *string) (*domain.DescriptionAction, error)
	// EditDescription updates a catalog entry.
	EditDescription(ctx context.Context, id, description, typeActionID string, typeTrialID *string) (*domain.DescriptionAction, error)
	// DeleteDescription removes a catalog entry unless actions reference it.
	DeleteDescription(ctx context.Context, id string) error
}

// ActionRequest is the JSON payload for creating or editing an action. On
// create, Status optionally transitions the owning trial in the same request;
// CloseDate only applies when that status is ARCHIVADO.
type ActionRequest struct {
	ID                  string     `json:"id" binding:"required"`
	DescriptionActionID string     `json:"descriptionActionId" binding:"required"`
	Date                time.Time  `json:"date" binding:"required"`
	TrialID             *string    `json:"trialId"`
	Status              string     `json:"status"`
	CloseDate           *time.Time `json:"closeDate"`
}

// ActionResponse reports the created action plus the outcome of the optional
// status cascade. StatusError is set when the action was recorded but the
// trial transition failed; clients must surface it rather than assume both
// writes happened.
type ActionResponse struct {
	Action        *domain.Action `json:"action"`
	StatusApplied bool           `json:"statusApplied"`
	StatusError   string         `json:"statusError,omitempty"`
}

// DescriptionActionRequest is the JSON payload for catalog entries.
type DescriptionActionRequest struct {
	Description  string  `json:"description" binding:"required"`
	TypeActionID string  `json:"typeActionId" binding:"required"`
	TypeTrialID  *string `json:"typeTrialId"`
}

// AddAction handles POST /actions.
func (h *Handlers) AddAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	a := &domain.Action{
		ID:                  strings.TrimSpace(req.ID),
		DescriptionActionID: req.DescriptionActionID,
		Date:                req.Date,
		TrialID:             req.TrialID,
	}
	outcome, err := h.actionSvc.Add(c.Request.Context(), a, domain.Status(req.Status), req.CloseDate)
	if err != nil {
		failService(c, err)
		return
	}

	resp := ActionResponse{Action: outcome.Action, StatusApplied: outcome.StatusApplied}
	if outcome.StatusErr != nil {
		resp.StatusError = outcome.StatusErr.Error()
	}
	ok(c, http.StatusCreated, resp)
}

// EditAction handles PUT /actions/:id.
func (h *Handlers) EditAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	a := &domain.Action{
		ID:                  c.Param("id"),
		DescriptionActionID: req.DescriptionActionID,
		Date:                req.Date,
		TrialID:             req.TrialID,
	}
	if err := h.actionSvc.Edit(c.Request.Context(), a); err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// DeleteAction handles DELETE /actions/:id.
func (h *Handlers) DeleteAction(c *gin.Context) {
	if err := h.actionSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// SearchActions handles GET /actions?term=&trialId=.
func (h *Handlers) SearchActions(c *gin.Context) {
	actions, err := h.actionSvc.Search(c.Request.Context(), c.Query("term"), c.Query("trialId"))
	if err != nil {
		failService(c, err)
		return
	}
	if n := searchLimit(c); len(actions) > n {
		actions = actions[:n]
	}
	ok(c, http.StatusOK, actions)
}

// ListTrialActions handles GET /trials/:id/actions.
func (h *Handlers) ListTrialActions(c *gin.Context) {
	actions, err := h.actionSvc.ByTrial(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, actions)
}

// ListDescriptionActions handles GET /description-actions?typeTrialId=.
// Without the parameter the full catalog is returned; with it, the vocabulary
// applicable to that trial type (general entries plus the type's family).
func (h *Handlers) ListDescriptionActions(c *gin.Context) {
	var scope *string
	if v, present := c.GetQuery("typeTrialId"); present {
		v = strings.TrimSpace(v)
		scope = &v
	}
	das, err := h.actionSvc.ListApplicableDescriptions(c.Request.Context(), scope)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, das)
}

// CreateDescriptionAction handles POST /description-actions.
func (h *Handlers) CreateDescriptionAction(c *gin.Context) {
	var req DescriptionActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	da, err := h.actionSvc.CreateDescription(c.Request.Context(), req.Description, req.TypeActionID, req.TypeTrialID)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, da)
}

// EditDescriptionAction handles PUT /description-actions/:id.
func (h *Handlers) EditDescriptionAction(c *gin.Context) {
	var req DescriptionActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	da, err := h.actionSvc.EditDescription(c.Request.Context(), c.Param("id"), req.Description, req.TypeActionID, req.TypeTrialID)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, da)
}

// DeleteDescriptionAction handles DELETE /description-actions/:id.
func (h *Handlers) DeleteDescriptionAction(c *gin.Context) {
	if err := h.actionSvc.DeleteDescription(c.Request.Context(), c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}

// ListTypeActions handles GET /type-actions.
func (h *Handlers) ListTypeActions(c *gin.Context) {
	typeActions, err := h.actionSvc.TypeActions(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, typeActions)
}
