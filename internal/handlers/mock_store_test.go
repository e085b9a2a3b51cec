package handlers

import (
	"context"
	"net/http/httptest"

	"github.com/01moynul/paper-graph-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockStore is a testify mock of GraphStore.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListEdges(ctx context.Context) ([]models.Row, error) {
	return m.rowsFor(ctx, "ListEdges")
}

func (m *MockStore) ListNodes(ctx context.Context) ([]models.Row, error) {
	return m.rowsFor(ctx, "ListNodes")
}

func (m *MockStore) ListPapers(ctx context.Context) ([]models.Row, error) {
	return m.rowsFor(ctx, "ListPapers")
}

func (m *MockStore) ListMetadata(ctx context.Context) ([]models.Row, error) {
	return m.rowsFor(ctx, "ListMetadata")
}

func (m *MockStore) CountTables(ctx context.Context) (models.TableCounts, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(models.TableCounts)
	return counts, args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// rowsFor records the call under the interface method's name.
func (m *MockStore) rowsFor(ctx context.Context, method string) ([]models.Row, error) {
	args := m.MethodCalled(method, ctx)
	rows, _ := args.Get(0).([]models.Row)
	return rows, args.Error(1)
}

// serve runs one request through a bare router that mounts handler at path.
func serve(handler gin.HandlerFunc, method, path string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET(path, handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func newTestHandlers(store GraphStore) *Handlers {
	return &Handlers{Store: store, Logger: zap.NewNop()}
}
