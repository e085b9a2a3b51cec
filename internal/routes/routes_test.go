package routes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/01moynul/paper-graph-api/internal/database"
	"github.com/01moynul/paper-graph-api/internal/handlers"
	"github.com/01moynul/paper-graph-api/internal/metrics"
	"github.com/01moynul/paper-graph-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubStore answers every query with the same rows or the same error.
type stubStore struct {
	rows []models.Row
	err  error
}

func (s stubStore) list(name string) ([]models.Row, error) {
	if s.err != nil {
		return nil, &database.QueryError{Query: name, Err: s.err}
	}
	return s.rows, nil
}

func (s stubStore) ListEdges(context.Context) ([]models.Row, error)    { return s.list("edges") }
func (s stubStore) ListNodes(context.Context) ([]models.Row, error)    { return s.list("nodes") }
func (s stubStore) ListPapers(context.Context) ([]models.Row, error)   { return s.list("papers") }
func (s stubStore) ListMetadata(context.Context) ([]models.Row, error) { return s.list("metadata") }
func (s stubStore) Ping(context.Context) error                         { return s.err }

func (s stubStore) CountTables(context.Context) (models.TableCounts, error) {
	if s.err != nil {
		return models.TableCounts{}, &database.QueryError{Query: "stats", Err: s.err}
	}
	return models.TableCounts{Nodes: int64(len(s.rows))}, nil
}

func setupRouter(store handlers.GraphStore) *gin.Engine {
	h := &handlers.Handlers{Store: store, Logger: zap.NewNop()}
	return SetupRouter(h, Options{
		AllowedOrigin: "*",
		Metrics:       metrics.NewCollector("test"),
		Logger:        zap.NewNop(),
	})
}

func do(router http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

var dataPaths = []string{"/api/edges", "/api/nodes", "/api/papers", "/api/metadata", "/api/stats"}

func TestRoutePaths(t *testing.T) {
	router := setupRouter(stubStore{rows: []models.Row{}})

	testCases := []struct {
		name           string
		path           string
		method         string
		expectedStatus int
	}{
		{"edges with GET", "/api/edges", http.MethodGet, http.StatusOK},
		{"nodes with GET", "/api/nodes", http.MethodGet, http.StatusOK},
		{"papers with GET", "/api/papers", http.MethodGet, http.StatusOK},
		{"metadata with GET", "/api/metadata", http.MethodGet, http.StatusOK},
		{"stats with GET", "/api/stats", http.MethodGet, http.StatusOK},
		{"health with GET", "/health", http.MethodGet, http.StatusOK},
		{"ready with GET", "/ready", http.MethodGet, http.StatusOK},
		{"metrics with GET", "/metrics", http.MethodGet, http.StatusOK},
		{"nodes with POST", "/api/nodes", http.MethodPost, http.StatusMethodNotAllowed},
		{"edges with DELETE", "/api/edges", http.MethodDelete, http.StatusMethodNotAllowed},
		{"preflight", "/api/papers", http.MethodOptions, http.StatusNoContent},
		{"unknown path", "/api/unknown", http.MethodGet, http.StatusNotFound},
		{"root path", "/", http.MethodGet, http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(router, tc.method, tc.path)
			assert.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestCORSOnEveryResponse(t *testing.T) {
	ok := setupRouter(stubStore{rows: []models.Row{}})
	failing := setupRouter(stubStore{err: errors.New("connection refused")})

	for _, path := range dataPaths {
		for name, router := range map[string]*gin.Engine{"success": ok, "failure": failing} {
			t.Run(name+" "+path, func(t *testing.T) {
				w := do(router, http.MethodGet, path)

				assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
				assert.Equal(t, "GET", w.Header().Get("Access-Control-Allow-Methods"))
			})
		}
	}

	t.Run("not found", func(t *testing.T) {
		w := do(ok, http.MethodGet, "/nope")
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("method not allowed", func(t *testing.T) {
		w := do(ok, http.MethodPut, "/api/nodes")
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestDatabaseUnreachable(t *testing.T) {
	router := setupRouter(stubStore{err: errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")})

	for _, path := range dataPaths {
		t.Run(path, func(t *testing.T) {
			w := do(router, http.MethodGet, path)

			assert.Equal(t, http.StatusInternalServerError, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.Contains(t, body["details"], "connection refused")
		})
	}

	t.Run("health stays up, ready goes down", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health").Code)
		assert.Equal(t, http.StatusServiceUnavailable, do(router, http.MethodGet, "/ready").Code)
	})
}

func TestEmptyTables(t *testing.T) {
	router := setupRouter(stubStore{rows: []models.Row{}})

	for _, path := range []string{"/api/edges", "/api/nodes", "/api/papers", "/api/metadata"} {
		t.Run(path, func(t *testing.T) {
			w := do(router, http.MethodGet, path)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, `[]`, w.Body.String())
		})
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	router := setupRouter(stubStore{rows: []models.Row{}})

	req := httptest.NewRequest(http.MethodGet, "/api/nodes", nil)
	req.Header.Set("X-Request-ID", "trace-me")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "trace-me", w.Header().Get("X-Request-ID"))
}

func TestConcurrentRequests(t *testing.T) {
	router := setupRouter(stubStore{rows: []models.Row{
		models.NewRow([]string{"arxiv_id"}, []any{"2401.1"}),
	}})

	numRequests := 50
	results := make(chan int, numRequests)

	for i := 0; i < numRequests; i++ {
		go func(index int) {
			w := do(router, http.MethodGet, dataPaths[index%len(dataPaths)])
			results <- w.Code
		}(i)
	}

	for i := 0; i < numRequests; i++ {
		assert.Equal(t, http.StatusOK, <-results)
	}
}

func TestRouterWithoutMetrics(t *testing.T) {
	h := &handlers.Handlers{Store: stubStore{rows: []models.Row{}}, Logger: zap.NewNop()}
	router := SetupRouter(h, Options{AllowedOrigin: "*", Logger: zap.NewNop()})

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/nodes").Code)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/metrics").Code)
}
