package listquery

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type box struct {
	Code   string
	Status string
	Order  int
}

func boxAccessors() Accessors[box] {
	return Accessors[box]{
		SearchText: func(b box) string { return b.Code },
		Status:     func(b box) string { return b.Status },
		Less: func(a, b box, sortBy string) bool {
			if sortBy == "code" {
				return a.Code < b.Code
			}
			return a.Order < b.Order
		},
	}
}

func TestApply_StatusFilter(t *testing.T) {
	items := []box{
		{Code: "LB-1", Status: "ACTIVE"},
		{Code: "LB-2", Status: "RETIRED"},
		{Code: "LB-3", Status: "ACTIVE"},
	}

	page := Apply(items, Params{Status: "ACTIVE", Page: 1, PageSize: 10}, boxAccessors())
	require.Len(t, page.Items, 2)
	for _, b := range page.Items {
		assert.Equal(t, "ACTIVE", b.Status)
	}
	assert.Equal(t, 2, page.Total)

	// "ALL" và chuỗi rỗng đều tắt bộ lọc trạng thái.
	assert.Equal(t, 3, Apply(items, Params{Status: "ALL", Page: 1, PageSize: 10}, boxAccessors()).Total)
	assert.Equal(t, 3, Apply(items, Params{Page: 1, PageSize: 10}, boxAccessors()).Total)
}

func TestApply_CaseInsensitiveSearch(t *testing.T) {
	items := []box{
		{Code: "LB-12", Status: "ACTIVE"},
		{Code: "LB-34", Status: "ACTIVE"},
	}

	for _, q := range []string{"LB-12", "lb-12", "Lb-12"} {
		page := Apply(items, Params{Query: q, Page: 1, PageSize: 10}, boxAccessors())
		require.Len(t, page.Items, 1, "query %q", q)
		assert.Equal(t, "LB-12", page.Items[0].Code)
	}
}

func TestApply_PaginationCoversWholeList(t *testing.T) {
	const n = 19
	items := make([]box, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, box{Code: fmt.Sprintf("LB-%02d", i), Order: i})
	}

	first := Apply(items, Params{SortBy: "order", Page: 1, PageSize: DefaultPageSize}, boxAccessors())
	assert.Equal(t, n, first.Total)
	assert.Equal(t, 3, first.TotalPages) // ceil(19/8)

	// Ghép lại toàn bộ các trang phải đúng bằng danh sách gốc, đúng thứ tự.
	var collected []box
	for p := 1; p <= first.TotalPages; p++ {
		page := Apply(items, Params{SortBy: "order", Page: p, PageSize: DefaultPageSize}, boxAccessors())
		collected = append(collected, page.Items...)
	}
	assert.Equal(t, items, collected)

	// Trang vượt quá cuối danh sách trả về rỗng, không panic.
	beyond := Apply(items, Params{Page: 99, PageSize: DefaultPageSize}, boxAccessors())
	assert.Empty(t, beyond.Items)
	assert.Equal(t, n, beyond.Total)
}

func TestApply_SortOrder(t *testing.T) {
	items := []box{
		{Code: "LB-2", Order: 2},
		{Code: "LB-1", Order: 1},
		{Code: "LB-3", Order: 3},
	}

	asc := Apply(items, Params{SortBy: "code", Order: "asc", Page: 1, PageSize: 10}, boxAccessors())
	assert.Equal(t, "LB-1", asc.Items[0].Code)
	assert.Equal(t, "LB-3", asc.Items[2].Code)

	desc := Apply(items, Params{SortBy: "code", Order: "desc", Page: 1, PageSize: 10}, boxAccessors())
	assert.Equal(t, "LB-3", desc.Items[0].Code)
	assert.Equal(t, "LB-1", desc.Items[2].Code)
}

func TestParamsFromQuery(t *testing.T) {
	values := map[string]string{
		"q":        "pump",
		"status":   "ACTIVE",
		"sortBy":   "code",
		"order":    "desc",
		"page":     "2",
		"pageSize": "20",
	}
	p := ParamsFromQuery(func(k string) string { return values[k] })
	assert.Equal(t, Params{Query: "pump", Status: "ACTIVE", SortBy: "code", Order: "desc", Page: 2, PageSize: 20}, p)

	// Thiếu hoặc hỏng thì về mặc định.
	defaults := ParamsFromQuery(func(k string) string {
		return map[string]string{"page": "junk", "pageSize": "-3"}[k]
	})
	assert.Equal(t, 1, defaults.Page)
	assert.Equal(t, DefaultPageSize, defaults.PageSize)
}
