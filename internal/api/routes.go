// internal/api/routes.go
// Central route registration for the competition query surface and the
// admin mutation endpoints.

package api

import (
	"srcomp/internal/audit"
	"srcomp/internal/auth"
	"srcomp/internal/competition"
	"srcomp/internal/middleware"
	"srcomp/internal/store"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the single admin login endpoint.
func RegisterAuthRoutes(router *gin.RouterGroup, authService *auth.Service) {
	router.POST("/auth/login", HandleLogin(authService))
}

// RegisterCompetitionRoutes registers the public, read-only competition
// query surface.
func RegisterCompetitionRoutes(router *gin.RouterGroup, svc *competition.Service) {
	router.GET("/competition", HandleGetCompetition(svc))
	router.GET("/teams", HandleListTeams(svc))
	router.GET("/teams/:tla", HandleGetTeam(svc))
	router.GET("/arenas", HandleListArenas(svc))
	router.GET("/schedule", HandleGetSchedule(svc))
	router.GET("/schedule/matches/:num", HandleGetMatch(svc))
	router.GET("/knockout", HandleGetKnockout(svc))
	router.GET("/awards", HandleGetAwards(svc))
	router.GET("/warnings", HandleGetWarnings(svc))
}

// RegisterHistoryRoutes registers the durable build-history endpoint.
func RegisterHistoryRoutes(router *gin.RouterGroup, historyStore *store.Store) {
	router.GET("/history", HandleGetHistory(historyStore))
}

// RegisterAdminRoutes registers the admin-only mutation endpoints: these
// are the only routes that change what the compstate directory holds.
func RegisterAdminRoutes(router *gin.RouterGroup, svc *competition.Service, authService *auth.Service, auditLog *audit.Log, requestsPerSecond float64, burst int) {
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin(authService))
	admin.Use(middleware.AdminRateLimiter(requestsPerSecond, burst))
	{
		admin.POST("/delays", HandleAddDelay(svc))
		admin.POST("/reload", HandleReload(svc))
		admin.POST("/awards", HandleOverrideAwards(svc))
		admin.POST("/scoresheets/:kind/:arena/:num", HandleSubmitScoresheet(svc, auditLog))
	}
}
