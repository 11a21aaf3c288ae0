package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jlozanoc/go-juzgado-backend/internal/http/middleware"
)

// LoginRequest is the JSON payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed bearer token and its subject.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login handles POST /auth/login. Credentials are checked against the single
// administrator identity from configuration; comparisons are constant-time so
// response timing leaks nothing about partial matches.
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.auth.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.auth.AdminPassword)) == 1
	if !userOK || !passOK {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
		return
	}

	token, err := middleware.IssueToken(h.auth.JWTSecret, req.Username, h.auth.TokenTTL)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not issue token")
		return
	}
	ok(c, http.StatusOK, LoginResponse{Token: token, Username: req.Username})
}
