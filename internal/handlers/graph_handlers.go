package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/01moynul/paper-graph-api/internal/database"
	"github.com/01moynul/paper-graph-api/internal/middleware"
	"github.com/01moynul/paper-graph-api/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const jsonContentType = "application/json; charset=utf-8"

//
// --- Graph Handlers ---
//

// GetEdges is the handler for GET /api/edges
func (h *Handlers) GetEdges(c *gin.Context) {
	h.respondWithRows(c, "edges", h.Store.ListEdges)
}

// GetNodes is the handler for GET /api/nodes
func (h *Handlers) GetNodes(c *gin.Context) {
	h.respondWithRows(c, "nodes", h.Store.ListNodes)
}

// GetPapers is the handler for GET /api/papers
func (h *Handlers) GetPapers(c *gin.Context) {
	h.respondWithRows(c, "papers", h.Store.ListPapers)
}

// GetMetadata is the handler for GET /api/metadata
func (h *Handlers) GetMetadata(c *gin.Context) {
	h.respondWithRows(c, "metadata", h.Store.ListMetadata)
}

// respondWithRows runs one fixed query and writes the result set as-is.
// The request body, query string and headers are never read.
func (h *Handlers) respondWithRows(c *gin.Context, resource string, fetch func(context.Context) ([]models.Row, error)) {
	// 1. --- Query Database ---
	rows, err := fetch(c.Request.Context())
	if err != nil {
		h.respondWithDBError(c, "Failed to fetch "+resource, err)
		return
	}

	// 2. --- Encode Before Committing the Status ---
	body, err := json.Marshal(rows)
	if err != nil {
		h.respondWithDBError(c, "Failed to fetch "+resource, err)
		return
	}

	// 3. --- Send Success Response ---
	c.Data(http.StatusOK, jsonContentType, body)
}

// respondWithDBError logs err and answers 500 with the fixed message plus
// the driver's own error text.
func (h *Handlers) respondWithDBError(c *gin.Context, message string, err error) {
	h.Logger.Error("Database error",
		zap.String("path", c.Request.URL.Path),
		zap.String("requestID", middleware.GetRequestID(c)),
		zap.Error(err),
	)

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   message,
		"details": errorDetails(err),
	})
}

func errorDetails(err error) string {
	var qe *database.QueryError
	if errors.As(err, &qe) {
		return qe.Err.Error()
	}
	return err.Error()
}
