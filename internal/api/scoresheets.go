// internal/api/scoresheets.go
// POST /admin/scoresheets/:kind/:arena/:num accepts a raw result sheet
// submission, records it to the audit log, writes it into the compstate
// directory and reloads. The YAML file it writes remains the computation's
// source of truth; the audit entry exists purely so a disputed score can
// always be traced back to exactly what was submitted.

package api

import (
	"net/http"
	"strconv"
	"time"

	"srcomp/internal/audit"
	"srcomp/internal/competition"

	"github.com/gin-gonic/gin"
)

var validSheetKinds = map[string]bool{"league": true, "knockout": true, "tiebreaker": true}

// HandleSubmitScoresheet writes a submitted result sheet to disk, audits
// it, and reloads the competition.
func HandleSubmitScoresheet(svc *competition.Service, auditLog *audit.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind := c.Param("kind")
		if !validSheetKinds[kind] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be league, knockout or tiebreaker"})
			return
		}
		arena := c.Param("arena")
		num, err := strconv.Atoi(c.Param("num"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "match number must be an integer"})
			return
		}

		var sheet map[string]interface{}
		if err := c.ShouldBindJSON(&sheet); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sheet["arena_id"] = arena
		sheet["match_number"] = num

		username, _ := c.Get("admin_username")
		submittedBy, _ := username.(string)

		if auditLog != nil {
			entry := audit.Entry{
				Kind:        kind,
				Arena:       arena,
				MatchNumber: num,
				SubmittedBy: submittedBy,
				SubmittedAt: time.Now(),
				RawSheet:    sheet,
			}
			if err := auditLog.Record(c.Request.Context(), entry); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		if err := svc.SubmitScoresheet(c.Request.Context(), kind, arena, num, sheet); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "reloaded"})
	}
}
