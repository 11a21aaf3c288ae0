package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jlozanoc/go-juzgado-backend/internal/domain"
	"github.com/jlozanoc/go-juzgado-backend/internal/services"
)

// Flexible people service stub; unset funcs return zero values.
type stubPeopleSvc struct {
	create func(context.Context, string, string, string) (*domain.Person, error)
	edit   func(context.Context, string, string, string, string) (*domain.Person, error)
	get    func(context.Context, string) (*domain.Person, error)
	search func(context.Context, string) ([]domain.Person, error)
}

func (s stubPeopleSvc) Create(ctx context.Context, name, documentType, document string) (*domain.Person, error) {
	if s.create != nil {
		return s.create(ctx, name, documentType, document)
	}
	return &domain.Person{Name: name, DocumentType: documentType, Document: document}, nil
}

func (s stubPeopleSvc) Edit(ctx context.Context, id, name, documentType, document string) (*domain.Person, error) {
	if s.edit != nil {
		return s.edit(ctx, id, name, documentType, document)
	}
	return &domain.Person{ID: id, Name: name}, nil
}

func (s stubPeopleSvc) Get(ctx context.Context, id string) (*domain.Person, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &domain.Person{ID: id}, nil
}

func (s stubPeopleSvc) Search(ctx context.Context, term string) ([]domain.Person, error) {
	if s.search != nil {
		return s.search(ctx, term)
	}
	return nil, nil
}

func newPeopleRouter(svc PeopleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(stubTrialSvc{}, stubActionSvc{}, svc, stubStatsSvc{}, AuthSettings{})
	r := gin.New()
	r.POST("/people", h.CreatePerson)
	r.PUT("/people/:id", h.EditPerson)
	r.GET("/people/:id", h.GetPerson)
	r.GET("/people", h.SearchPeople)
	return r
}

func TestCreatePerson(t *testing.T) {
	// Missing fields -> 400
	{
		r := newPeopleRouter(stubPeopleSvc{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/people", bytes.NewBufferString(`{"name":"Ana"}`)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("missing fields -> %d", w.Code)
		}
	}

	// Success -> 201
	{
		r := newPeopleRouter(stubPeopleSvc{})
		w := httptest.NewRecorder()
		body := `{"name":"Ana Pérez","documentType":"Cédula","document":"1234"}`
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/people", bytes.NewBufferString(body)))
		if w.Code != http.StatusCreated {
			t.Fatalf("create -> %d body=%s", w.Code, w.Body.String())
		}
	}

	// Duplicate document -> 409
	{
		r := newPeopleRouter(stubPeopleSvc{create: func(context.Context, string, string, string) (*domain.Person, error) {
			return nil, services.ErrDuplicateDocument
		}})
		w := httptest.NewRecorder()
		body := `{"name":"Ana Pérez","documentType":"Cédula","document":"1234"}`
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/people", bytes.NewBufferString(body)))
		if w.Code != http.StatusConflict {
			t.Fatalf("duplicate -> %d", w.Code)
		}
	}
}

func TestGetPerson_NotFound(t *testing.T) {
	r := newPeopleRouter(stubPeopleSvc{get: func(context.Context, string) (*domain.Person, error) {
		return nil, services.ErrPersonNotFound
	}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/people/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("get missing -> %d", w.Code)
	}
}

func TestSearchPeople_BlankTermAllowed(t *testing.T) {
	var gotTerm string
	called := false
	r := newPeopleRouter(stubPeopleSvc{search: func(_ context.Context, term string) ([]domain.Person, error) {
		called = true
		gotTerm = term
		return []domain.Person{{ID: "p-1"}}, nil
	}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/people", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("search -> %d", w.Code)
	}
	if !called || gotTerm != "" {
		t.Fatalf("called=%v term=%q", called, gotTerm)
	}
}

func TestSearchPeople_LimitClampsResults(t *testing.T) {
	r := newPeopleRouter(stubPeopleSvc{search: func(context.Context, string) ([]domain.Person, error) {
		return []domain.Person{{ID: "p-1"}, {ID: "p-2"}, {ID: "p-3"}}, nil
	}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/people?limit=2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("search -> %d", w.Code)
	}
	var got []domain.Person
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("limit ignored: %d results", len(got))
	}
}
