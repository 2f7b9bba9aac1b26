// server/internal/listquery/listquery.go

// Package listquery là phép biến đổi danh sách thuần (lọc, sắp xếp, phân trang)
// dùng chung cho mọi endpoint danh sách: (items, params) -> page.
// Không chạm database; handler lọc tiếp bằng bson khi cần.
package listquery

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const DefaultPageSize = 8

type Params struct {
	Query    string // tìm kiếm chuỗi con, không phân biệt hoa thường
	Status   string // "" hoặc "ALL" = không lọc
	SortBy   string
	Order    string // "asc" (mặc định) hoặc "desc"
	Page     int    // bắt đầu từ 1
	PageSize int
}

// ParamsFromQuery đọc Params từ query string của request.
// get thường là c.Query của gin.
func ParamsFromQuery(get func(string) string) Params {
	p := Params{
		Query:    get("q"),
		Status:   get("status"),
		SortBy:   get("sortBy"),
		Order:    get("order"),
		Page:     1,
		PageSize: DefaultPageSize,
	}
	if v, err := strconv.Atoi(get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(get("pageSize")); err == nil && v > 0 {
		p.PageSize = v
	}
	return p
}

// Accessors cho Apply biết cách đọc một phần tử. Accessor nil thì bỏ qua
// bước tương ứng (không lọc / không sắp xếp).
type Accessors[T any] struct {
	SearchText func(T) string
	Status     func(T) string
	Less       func(a, b T, sortBy string) bool
}

type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// Apply lọc theo Query và Status, sắp xếp theo SortBy/Order rồi cắt trang.
// Kết quả ghép lại toàn bộ các trang luôn đúng bằng danh sách đã lọc, đúng thứ tự.
func Apply[T any](items []T, p Params, acc Accessors[T]) Page[T] {
	filtered := make([]T, 0, len(items))
	query := strings.ToLower(strings.TrimSpace(p.Query))
	for _, it := range items {
		if query != "" && acc.SearchText != nil {
			if !strings.Contains(strings.ToLower(acc.SearchText(it)), query) {
				continue
			}
		}
		if p.Status != "" && p.Status != "ALL" && acc.Status != nil {
			if acc.Status(it) != p.Status {
				continue
			}
		}
		filtered = append(filtered, it)
	}

	if p.SortBy != "" && acc.Less != nil {
		desc := strings.EqualFold(p.Order, "desc")
		sort.SliceStable(filtered, func(i, j int) bool {
			if desc {
				return acc.Less(filtered[j], filtered[i], p.SortBy)
			}
			return acc.Less(filtered[i], filtered[j], p.SortBy)
		})
	}

	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(filtered)
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	page := p.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      filtered[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
