package query

import "strings"

type PageFilter struct {
	Page     int
	PageSize int
}

func (f PageFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

func (f PageFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return strings.EqualFold(f.SortOrder, "desc")
}

// ParseSort splits a Django-style ordering token: "-created_at" sorts
// created_at descending, "name" sorts ascending.
func ParseSort(token string) SortFilter {
	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "-") {
		return SortFilter{SortBy: token[1:], SortOrder: "desc"}
	}
	return SortFilter{SortBy: token, SortOrder: "asc"}
}

// OrderClause returns "column ASC|DESC" when SortBy maps through allowed,
// falling back to def otherwise.
func (f SortFilter) OrderClause(allowed map[string]string, def string) string {
	col, ok := allowed[f.SortBy]
	if !ok {
		return def
	}
	if f.IsDescending() {
		return col + " DESC"
	}
	return col + " ASC"
}
