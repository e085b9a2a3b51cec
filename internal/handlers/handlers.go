package handlers

import (
	"context"

	"github.com/01moynul/paper-graph-api/internal/models"
	"go.uber.org/zap"
)

// GraphStore is the read side of the database the handlers depend on.
// *database.Store implements it.
type GraphStore interface {
	ListEdges(ctx context.Context) ([]models.Row, error)
	ListNodes(ctx context.Context) ([]models.Row, error)
	ListPapers(ctx context.Context) ([]models.Row, error)
	ListMetadata(ctx context.Context) ([]models.Row, error)
	CountTables(ctx context.Context) (models.TableCounts, error)
	Ping(ctx context.Context) error
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store  GraphStore  // Shared, read-only view of the graph database
	Logger *zap.Logger // Errors go to stderr through this
}
