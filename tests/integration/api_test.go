package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	forecastapp "github.com/preorder/backend/internal/application/forecast"
	"github.com/preorder/backend/internal/infrastructure/cache"
	"github.com/preorder/backend/internal/infrastructure/config"
	"github.com/preorder/backend/internal/infrastructure/persistence"
	"github.com/preorder/backend/internal/interfaces/http/handler"
	"github.com/preorder/backend/internal/interfaces/http/middleware"
	"github.com/preorder/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T, testDB *TestDB) http.Handler {
	t.Helper()
	inv := newInventoryServices(testDB)
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	return router.NewEngine(router.EngineConfig{
		HTTP:        config.HTTPConfig{MaxBodySize: 1 << 20},
		Tracing:     middleware.TracingConfig{Enabled: false},
		Idempotency: store,
	}, router.Handlers{
		Batch: handler.NewBatchHandler(forecastapp.NewBatchService(
			persistence.NewGormBatchRepository(testDB.DB),
			persistence.NewGormScenarioRepository(testDB.DB),
		)),
		Item:   handler.NewItemHandler(inv.items),
		Bundle: handler.NewBundleHandler(inv.bundles),
		Health: handler.NewHealthHandler(testDB),
	})
}

func call(t *testing.T, h http.Handler, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func TestAPI_Integration(t *testing.T) {
	testDB := NewTestDB(t)
	srv := newTestServer(t, testDB)

	code, _ := call(t, srv, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusOK, code)

	t.Run("forecast flow", func(t *testing.T) {
		code, env := call(t, srv, http.MethodPost, "/batches/", map[string]any{
			"name": "Summer preorder", "unit_cost": "90", "hidden_cost": "30",
			"price": "799", "batch_produced": 200, "bonus_rule_count": 1,
		})
		require.Equal(t, http.StatusCreated, code)
		var batch struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &batch))

		code, env = call(t, srv, http.MethodPost, "/batches/"+batch.ID+"/series", map[string]any{"buy_rate": "0.5"})
		require.Equal(t, http.StatusOK, code)
		var est struct {
			ProducedSets int `json:"produced_sets"`
			SoldSets     int `json:"sold_sets"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &est))
		assert.Equal(t, 200, est.ProducedSets)
		assert.Equal(t, 100, est.SoldSets)
	})

	t.Run("inventory flow", func(t *testing.T) {
		code, env := call(t, srv, http.MethodPost, "/inventory/items", map[string]any{
			"sku": "aixie_standee", "name": "Aixie Standee", "category": "standee", "stock_qty": 3,
		})
		require.Equal(t, http.StatusCreated, code)
		var item struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &item))

		code, env = call(t, srv, http.MethodPost, "/inventory/bundles", map[string]any{
			"code": "aixie_bundle", "name": "Aixie Set",
			"components": []map[string]any{{"item_id": item.ID, "qty_required": 1}},
		})
		require.Equal(t, http.StatusCreated, code)

		code, env = call(t, srv, http.MethodPost, "/inventory/items/"+item.ID+"/adjust", map[string]any{"delta_qty": -4})
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ERR_INSUFFICIENT_STOCK", env.Error.Code)

		code, env = call(t, srv, http.MethodGet, "/inventory/availability", nil)
		require.Equal(t, http.StatusOK, code)
		var avail []struct {
			Code        string `json:"code"`
			MaxSellable int    `json:"max_sellable"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &avail))
		require.Len(t, avail, 1)
		assert.Equal(t, "aixie_bundle", avail[0].Code)
		assert.Equal(t, 3, avail[0].MaxSellable)
	})
}
