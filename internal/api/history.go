// internal/api/history.go
// GET /history exposes the durable build history kept in the MySQL store,
// independent of whatever the compstate directory currently holds.

package api

import (
	"net/http"
	"strconv"

	"srcomp/internal/store"

	"github.com/gin-gonic/gin"
)

// HandleGetHistory returns the most recently built competition snapshots.
func HandleGetHistory(historyStore *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 20
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		snapshots, err := historyStore.History(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, snapshots)
	}
}
