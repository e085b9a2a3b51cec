// Package database owns the PostgreSQL connection pool and the fixed
// read-only queries served by the API.
package database

import (
	"context"
	"time"

	"github.com/01moynul/paper-graph-api/internal/metrics"
	"github.com/01moynul/paper-graph-api/internal/models"
	"github.com/jackc/pgx/v5"
)

// The SQL served by the API. None of them take arguments.
const (
	EdgesQuery    = `SELECT * FROM edges ORDER BY id DESC`
	NodesQuery    = `SELECT * FROM nodes ORDER BY arxiv_id DESC`
	MetadataQuery = `SELECT * FROM metadata ORDER BY citation_count DESC, arxiv_id DESC`
	CountsQuery   = `SELECT
		(SELECT COUNT(*) FROM nodes),
		(SELECT COUNT(*) FROM edges),
		(SELECT COUNT(*) FROM metadata)`
)

// Querier is implemented by *pgxpool.Pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Store runs the fixed queries against a shared pool.
type Store struct {
	db      Querier
	metrics *metrics.Collector
}

// NewStore wraps db. collector may be nil.
func NewStore(db Querier, collector *metrics.Collector) *Store {
	return &Store{db: db, metrics: collector}
}

// ListEdges returns every edge, newest id first.
func (s *Store) ListEdges(ctx context.Context) ([]models.Row, error) {
	return s.list(ctx, "edges", EdgesQuery)
}

// ListNodes returns every node ordered by arxiv_id descending.
func (s *Store) ListNodes(ctx context.Context) ([]models.Row, error) {
	return s.list(ctx, "nodes", NodesQuery)
}

// ListPapers returns the paper view. Every node in the graph is a paper,
// so this reads the nodes table.
func (s *Store) ListPapers(ctx context.Context) ([]models.Row, error) {
	return s.list(ctx, "papers", NodesQuery)
}

// ListMetadata returns citation metadata, most cited first.
func (s *Store) ListMetadata(ctx context.Context) ([]models.Row, error) {
	return s.list(ctx, "metadata", MetadataQuery)
}

// CountTables counts nodes, edges and metadata in one round trip.
func (s *Store) CountTables(ctx context.Context) (counts models.TableCounts, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveQuery("stats", start, err) }()

	row := s.db.QueryRow(ctx, CountsQuery)
	if err = row.Scan(&counts.Nodes, &counts.Edges, &counts.Metadata); err != nil {
		return models.TableCounts{}, &QueryError{Query: "stats", Err: err}
	}
	return counts, nil
}

// Ping checks that a connection can be acquired and used.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) list(ctx context.Context, name, sql string) (rows []models.Row, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveQuery(name, start, err) }()

	pgRows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, &QueryError{Query: name, Err: err}
	}

	rows, err = CollectRows(pgRows)
	if err != nil {
		return nil, &QueryError{Query: name, Err: err}
	}
	return rows, nil
}
