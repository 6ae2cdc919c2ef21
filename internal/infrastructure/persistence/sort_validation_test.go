package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/inventory"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortColumns_OrderBy(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		dir      string
		wantCol  string
		wantDesc bool
	}{
		{"defaults to fallback descending", "", "", "created_at", true},
		{"known column ascending", "stock_qty", "asc", "stock_qty", false},
		{"direction is case insensitive", "sku", "  ASC ", "sku", false},
		{"explicit desc", "name", "desc", "name", true},
		{"unknown direction sorts descending", "name", "sideways", "name", true},
		{"field is trimmed", "  category ", "asc", "category", false},
		{"column match is case sensitive", "SKU", "asc", "created_at", false},
		{"unknown column falls back", "password_hash", "asc", "created_at", false},
		{"injected field falls back", "sku; DROP TABLE items;--", "", "created_at", true},
		{"injected direction is ignored", "sku", "ASC; DELETE FROM items", "sku", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := itemSortColumns.orderBy(tt.field, tt.dir, "created_at")
			assert.Equal(t, tt.wantCol, col.Column.Name)
			assert.Equal(t, tt.wantDesc, col.Desc)
		})
	}
}

func TestSortColumns_Whitelists(t *testing.T) {
	for _, col := range []string{"sku", "stock_qty", "low_stock_threshold", "created_at"} {
		assert.True(t, itemSortColumns.allows(col), col)
	}
	assert.False(t, itemSortColumns.allows("item_sku"))

	assert.True(t, transactionSortColumns.allows("delta_qty"))
	assert.False(t, transactionSortColumns.allows("stock_qty"))
}

func TestGormInventoryTransactionRepository_OrderQuoted(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormInventoryTransactionRepository(db)
	itemID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "inventory_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY "delta_qty"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	filter := shared.DefaultFilter()
	filter.OrderBy = "delta_qty"
	filter.OrderDir = "asc"
	txs, total, err := repo.FindByItem(context.Background(), itemID, filter)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, txs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormItemRepository_FindAllOrdering(t *testing.T) {
	db := setupSQLiteTestDB(t)
	repo := NewGormItemRepository(db)
	ctx := context.Background()

	for _, it := range []*inventory.Item{
		newTestItem(t, "corncandy_keychain", "keychain", 12, 0),
		newTestItem(t, "corncandy_badge", "badge", 3, 0),
		newTestItem(t, "corncandy_standee", "standee", 40, 0),
	} {
		require.NoError(t, repo.Save(ctx, it))
	}

	list := func(field, dir string) []string {
		filter := shared.DefaultFilter()
		filter.OrderBy, filter.OrderDir = field, dir
		items, _, err := repo.FindAll(ctx, inventory.ItemFilter{Filter: filter})
		require.NoError(t, err)
		skus := make([]string, len(items))
		for i, it := range items {
			skus[i] = it.SKU
		}
		return skus
	}

	assert.Equal(t, []string{"corncandy_badge", "corncandy_keychain", "corncandy_standee"}, list("stock_qty", "asc"))
	assert.Equal(t, []string{"corncandy_standee", "corncandy_keychain", "corncandy_badge"}, list("sku", "desc"))
	assert.Len(t, list("stock_qty; DROP TABLE items", "asc"), 3)
}
