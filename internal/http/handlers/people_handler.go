package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
)

// PeopleService defines the person operations consumed by HTTP handlers.
type PeopleService interface {
	// Create registers a person, rejecting duplicate documents.
	Create(ctx context.Context, name, documentType, document string) (*domain.Person, error)
	// Edit updates a person's identifying fields.
	Edit(ctx context.Context, id, name, documentType, document string) (*domain.Person, error)
	// Get fetches one person by id.
	Get(ctx context.Context, id string) (*domain.Person, error)
	// Search lists people matching a term, or all people for a blank term.
	Search(ctx context.Context, term string) ([]domain.Person, error)
}

// PersonRequest is the JSON payload for creating or editing a person.
type PersonRequest struct {
	Name         string `json:"name" binding:"required"`
	DocumentType string `json:"documentType" binding:"required"`
	Document     string `json:"document" binding:"required"`
}

// CreatePerson handles POST /people.
func (h *Handlers) CreatePerson(c *gin.Context) {
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p, err := h.peopleSvc.Create(c.Request.Context(), req.Name, req.DocumentType, req.Document)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// EditPerson handles PUT /people/:id.
func (h *Handlers) EditPerson(c *gin.Context) {
	var req PersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	p, err := h.peopleSvc.Edit(c.Request.Context(), c.Param("id"), req.Name, req.DocumentType, req.Document)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// GetPerson handles GET /people/:id.
func (h *Handlers) GetPerson(c *gin.Context) {
	p, err := h.peopleSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// SearchPeople handles GET /people?term=. A blank term lists everyone,
// ordered by name.
func (h *Handlers) SearchPeople(c *gin.Context) {
	people, err := h.peopleSvc.Search(c.Request.Context(), c.Query("term"))
	if err != nil {
		failService(c, err)
		return
	}
	if n := searchLimit(c); len(people) > n {
		people = people[:n]
	}
	ok(c, http.StatusOK, people)
}
