// Package services – PeopleService
//
// Plain CRUD over people with one rule: the document number is unique across
// all people. The unique index backs the rule; the service pre-checks it to
// return a stable business error instead of a driver-specific one.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
	"github.com/jlozanoc/go-juzgado-backend/internal/repo"
)

// PeopleService implements the use-cases around people records.
type PeopleService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewPeopleService constructs a PeopleService backed by the given database.
func NewPeopleService(db *gorm.DB) *PeopleService {
	return &PeopleService{DB: db}
}

// Create registers a new person. Fails with ErrDuplicateDocument when the
// document number is already held by someone else.
func (s *PeopleService) Create(ctx context.Context, name, documentType, document string) (*domain.Person, error) {
	document = strings.TrimSpace(document)

	if _, err := repo.FindPersonByDocument(ctx, s.DB, document); err == nil {
		return nil, ErrDuplicateDocument
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	p := &domain.Person{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		DocumentType: strings.TrimSpace(documentType),
		Document:     document,
	}
	if err := repo.CreatePerson(ctx, s.DB, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Edit updates a person. The document uniqueness check is re-applied only
// when the document actually changed.
func (s *PeopleService) Edit(ctx context.Context, id, name, documentType, document string) (*domain.Person, error) {
	document = strings.TrimSpace(document)

	current, err := repo.GetPerson(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	if document != current.Document {
		if _, err := repo.FindPersonByDocument(ctx, s.DB, document); err == nil {
			return nil, ErrDuplicateDocument
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
	}

	p := &domain.Person{
		ID:           id,
		Name:         strings.TrimSpace(name),
		DocumentType: strings.TrimSpace(documentType),
		Document:     document,
	}
	if err := repo.UpdatePerson(ctx, s.DB, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a person by id, or ErrPersonNotFound.
func (s *PeopleService) Get(ctx context.Context, id string) (*domain.Person, error) {
	p, err := repo.GetPerson(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPersonNotFound
	}
	return p, err
}

// Search returns people matching a free-text term, or everyone when the term
// is blank.
func (s *PeopleService) Search(ctx context.Context, term string) ([]domain.Person, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return repo.ListPeople(ctx, s.DB)
	}
	return repo.SearchPeople(ctx, s.DB, term)
}
