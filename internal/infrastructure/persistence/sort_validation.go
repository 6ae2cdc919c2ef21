package persistence

import (
	"strings"

	"gorm.io/gorm/clause"
)

// sortColumns whitelists the columns a listing endpoint may order by.
type sortColumns map[string]struct{}

func newSortColumns(cols ...string) sortColumns {
	s := make(sortColumns, len(cols))
	for _, c := range cols {
		s[c] = struct{}{}
	}
	return s
}

var (
	itemSortColumns        = newSortColumns("id", "created_at", "updated_at", "sku", "name", "category", "stock_qty", "low_stock_threshold")
	transactionSortColumns = newSortColumns("id", "created_at", "delta_qty")
)

// allows reports whether col may appear in ORDER BY. Matching is exact and
// case sensitive.
func (s sortColumns) allows(col string) bool {
	_, ok := s[col]
	return ok
}

// orderBy turns caller supplied field and direction into an ORDER BY column.
// Unknown fields fall back to fallback; anything but "asc" sorts descending.
func (s sortColumns) orderBy(field, dir, fallback string) clause.OrderByColumn {
	col := strings.TrimSpace(field)
	if !s.allows(col) {
		col = fallback
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: col},
		Desc:   !strings.EqualFold(strings.TrimSpace(dir), "asc"),
	}
}
