package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	forecastapp "github.com/preorder/backend/internal/application/forecast"
	inventoryapp "github.com/preorder/backend/internal/application/inventory"
	"github.com/preorder/backend/internal/infrastructure/persistence"
	"github.com/preorder/backend/internal/infrastructure/persistence/models"
	"github.com/preorder/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// apiResponse mirrors dto.Response with data left raw for per-test decoding.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
		Details   []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(persistence.SQLiteDSN(":memory:")), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// newTestServer wires sqlite repositories, services and handlers onto a bare
// engine with the same paths the router uses.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	middleware.SetupValidator()
	db := setupTestDB(t)

	batchService := forecastapp.NewBatchService(
		persistence.NewGormBatchRepository(db),
		persistence.NewGormScenarioRepository(db),
	)
	itemRepo := persistence.NewGormItemRepository(db)
	itemService := inventoryapp.NewItemService(
		itemRepo,
		persistence.NewGormInventoryTransactionRepository(db),
		persistence.NewGormTransactionScope(db),
	)
	bundleService := inventoryapp.NewBundleService(persistence.NewGormBundleRepository(db), itemRepo)

	batches := NewBatchHandler(batchService)
	items := NewItemHandler(itemService)
	bundles := NewBundleHandler(bundleService)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	b := engine.Group("/batches")
	b.POST("/", batches.Create)
	b.GET("/", batches.List)
	b.GET("/:id", batches.GetByID)
	b.DELETE("/:id", batches.Delete)
	b.POST("/:id/scenario", batches.CreateScenario)
	b.GET("/:id/scenarios", batches.ListScenarios)
	b.POST("/:id/series", batches.Series)
	b.POST("/:id/forecast_curve", batches.ForecastCurve)

	inv := engine.Group("/inventory")
	inv.POST("/items", items.Create)
	inv.GET("/items", items.List)
	inv.GET("/items/low-stock", items.LowStock)
	inv.GET("/items/:id", items.GetByID)
	inv.PUT("/items/:id", items.Update)
	inv.DELETE("/items/:id", items.Delete)
	inv.POST("/items/:id/adjust", items.Adjust)
	inv.GET("/items/:id/transactions", items.Transactions)
	inv.POST("/bundles", bundles.Create)
	inv.GET("/bundles", bundles.List)
	inv.GET("/bundles/:id", bundles.GetByID)
	inv.DELETE("/bundles/:id", bundles.Delete)
	inv.GET("/bundles/:id/availability", bundles.Availability)
	inv.GET("/availability", bundles.AllAvailability)

	return &testServer{engine: engine, db: db}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var resp apiResponse
	if w.Code != http.StatusNoContent && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func decodeData[T any](t *testing.T, resp apiResponse) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	return out
}
