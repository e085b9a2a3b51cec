package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Graph Dashboard Stats ---
//

// GetStats returns row counts for the graph dashboard
// GET /api/stats
func (h *Handlers) GetStats(c *gin.Context) {
	counts, err := h.Store.CountTables(c.Request.Context())
	if err != nil {
		h.respondWithDBError(c, "Failed to fetch stats", err)
		return
	}

	c.JSON(http.StatusOK, counts)
}
