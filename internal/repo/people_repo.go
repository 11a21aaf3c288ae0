// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Person
// model. Document uniqueness is backed by a DB unique index; the service
// layer pre-checks it to return a stable business error.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
)

// GetPerson fetches a person by id, or ErrNotFound if missing.
func GetPerson(ctx context.Context, db *gorm.DB, id string) (*domain.Person, error) {
	var p domain.Person
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPersonByDocument fetches a person by their unique document number, or
// ErrNotFound if missing.
func FindPersonByDocument(ctx context.Context, db *gorm.DB, document string) (*domain.Person, error) {
	var p domain.Person
	if err := db.WithContext(ctx).Where("document = ?", document).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePerson inserts a new person row.
func CreatePerson(ctx context.Context, db *gorm.DB, p *domain.Person) error {
	return db.WithContext(ctx).Create(p).Error
}

// UpdatePerson overwrites the mutable columns of an existing person.
// Returns ErrNotFound when no row matches id.
func UpdatePerson(ctx context.Context, db *gorm.DB, p *domain.Person) error {
	res := db.WithContext(ctx).
		Model(&domain.Person{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":          p.Name,
			"document_type": p.DocumentType,
			"document":      p.Document,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPeople returns every person ordered by name.
func ListPeople(ctx context.Context, db *gorm.DB) ([]domain.Person, error) {
	var out []domain.Person
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// SearchPeople returns people whose name, document, or document type contains
// term (case-insensitive), ordered by name.
func SearchPeople(ctx context.Context, db *gorm.DB, term string) ([]domain.Person, error) {
	like := "%" + term + "%"
	var out []domain.Person
	err := db.WithContext(ctx).
		Where("name LIKE ? OR document LIKE ? OR document_type LIKE ?", like, like, like).
		Order("name asc").
		Find(&out).Error
	return out, err
}
