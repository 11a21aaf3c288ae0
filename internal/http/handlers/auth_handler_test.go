package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jlozanoc/go-juzgado-backend/internal/http/middleware"
)

func newAuthRouter(settings AuthSettings) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(stubTrialSvc{}, stubActionSvc{}, stubPeopleSvc{}, stubStatsSvc{}, settings)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	return r
}

func TestLogin(t *testing.T) {
	settings := AuthSettings{
		JWTSecret:     "test-secret-0123456789abcdef0123",
		TokenTTL:      time.Hour,
		AdminUsername: "admin",
		AdminPassword: "s3cret",
	}

	// Success -> token verifiable with the same secret
	{
		r := newAuthRouter(settings)
		w := httptest.NewRecorder()
		body := `{"username":"admin","password":"s3cret"}`
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body)))
		if w.Code != http.StatusOK {
			t.Fatalf("login -> %d body=%s", w.Code, w.Body.String())
		}
		var resp LoginResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("json: %v", err)
		}
		subject, err := middleware.ParseToken(settings.JWTSecret, resp.Token)
		if err != nil {
			t.Fatalf("parse issued token: %v", err)
		}
		if subject != "admin" {
			t.Fatalf("subject = %q", subject)
		}
	}

	// Wrong password -> 401
	{
		r := newAuthRouter(settings)
		w := httptest.NewRecorder()
		body := `{"username":"admin","password":"wrong"}`
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body)))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("wrong password -> %d", w.Code)
		}
	}

	// Unknown user -> 401
	{
		r := newAuthRouter(settings)
		w := httptest.NewRecorder()
		body := `{"username":"root","password":"s3cret"}`
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body)))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("unknown user -> %d", w.Code)
		}
	}

	// Missing fields -> 400
	{
		r := newAuthRouter(settings)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"username":"admin"}`)))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("missing fields -> %d", w.Code)
		}
	}
}
