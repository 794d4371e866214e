// internal/api/handlers.go
// Request handlers for the competition query surface and the admin
// mutation endpoints.

package api

import (
	"net/http"
	"strconv"
	"time"

	"srcomp/internal/auth"
	"srcomp/internal/competition"

	"github.com/gin-gonic/gin"
)

// HandleGetCompetition returns the top-level competition summary.
func HandleGetCompetition(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp, err := svc.Current()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summaryView(comp))
	}
}

// HandleListTeams returns every team with its current league position.
func HandleListTeams(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp, err := svc.Current()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, teamViews(comp))
	}
}

// HandleGetTeam returns a single team by TLA.
func HandleGetTeam(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp, err := svc.Current()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		tla := c.Param("tla")
		for _, t := range teamViews(comp) {
			if t.TLA == tla {
				c.JSON(http.StatusOK, t)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "team not found"})
	}
}

// HandleListArenas returns every arena.
func HandleListArenas(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp, err := svc.Current()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, arenaViews(comp))
	}
}

// HandleGetSchedule returns every scheduled match across all stages.
func HandleGetSchedule(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp, err := svc.Current()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, scheduleViews(comp))
	}
}

// HandleGetMatch returns a single match by its global match number.
func HandleGetMatch(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp, err := svc.Current()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		num, err := strconv.Atoi(c.Param("num"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "match number must be an integer"})
			return
		}
		match, ok := matchByNum(comp, num)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			return
		}
		c.JSON(http.StatusOK, match)
	}
}

// HandleGetKnockout returns the knockout bracket, round by round.
func HandleGetKnockout(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp, err := svc.Current()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, knockoutViews(comp))
	}
}

// HandleGetAwards returns the award winners computed for this competition.
func HandleGetAwards(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp, err := svc.Current()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, awardsView(comp))
	}
}

// HandleGetWarnings returns the non-fatal validation warnings recorded for
// this build of the competition.
func HandleGetWarnings(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp, err := svc.Current()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, warningsView(comp))
	}
}

// loginRequest is the POST /auth/login payload.
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// HandleLogin authenticates the bootstrap admin account and returns a JWT.
func HandleLogin(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		token, err := authService.Login(req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// addDelayRequest is the POST /admin/delays payload.
type addDelayRequest struct {
	At           time.Time `json:"at" binding:"required"`
	DelaySeconds int       `json:"delay_seconds" binding:"required"`
}

// HandleAddDelay records a new delay and reloads the competition.
func HandleAddDelay(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addDelayRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := svc.AddDelay(c.Request.Context(), req.At, time.Duration(req.DelaySeconds)*time.Second); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
	}
}

// HandleReload forces a reload of the competition from the compstate
// directory, picking up any result sheets or config edits made on disk.
func HandleReload(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Reload(c.Request.Context()); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
	}
}

// HandleOverrideAwards writes an award override and reloads the
// competition so it takes effect.
func HandleOverrideAwards(svc *competition.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var overrides map[string][]string
		if err := c.ShouldBindJSON(&overrides); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := svc.OverrideAwards(c.Request.Context(), overrides); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
	}
}
