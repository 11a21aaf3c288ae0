package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jlozanoc/go-juzgado-backend/internal/utils"
)

// Bounds for the optional ?limit= query on search endpoints.
const (
	defaultSearchLimit = 100
	maxSearchLimit     = 500
)

// searchLimit reads the optional limit query parameter and clamps it to a
// sane range. Unparseable values fall back to the default.
func searchLimit(c *gin.Context) int {
	n := utils.AtoiDefault(c.Query("limit"), defaultSearchLimit)
	if n < 1 {
		n = 1
	}
	if n > maxSearchLimit {
		n = maxSearchLimit
	}
	return n
}

// AuthSettings carries the credentials and token parameters the login
// endpoint needs. Values come from configuration at startup.
type AuthSettings struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
}

// Handlers bundles the service dependencies behind the HTTP layer. One
// instance is shared by every route; all fields are read-only after New.
type Handlers struct {
	trialSvc  TrialService
	actionSvc ActionService
	peopleSvc PeopleService
	statsSvc  StatisticsService
	auth      AuthSettings
}

// New wires the services into a Handlers value ready for route registration.
func New(trials TrialService, actions ActionService, people PeopleService, stats StatisticsService, auth AuthSettings) *Handlers {
	return &Handlers{
		trialSvc:  trials,
		actionSvc: actions,
		peopleSvc: people,
		statsSvc:  stats,
		auth:      auth,
	}
}
