package model

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Pagination defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListQuery holds the shared list parameters.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// Offset returns the row offset of the first item on the page. ok is false
// when the offset does not fit in int64; such a page lies past any stored row.
func (q ListQuery) Offset() (offset int64, ok bool) {
	if q.Page <= 1 || q.Limit < 1 {
		return 0, true
	}
	skipped := int64(q.Page - 1)
	if skipped > math.MaxInt64/int64(q.Limit) {
		return 0, false
	}
	return skipped * int64(q.Limit), true
}

// ProductListQuery extends ListQuery with a category filter.
type ProductListQuery struct {
	ListQuery
	CategoryID *int64
}

// PageMeta describes a bounded slice of a larger result set.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// Page is a list result plus its metadata.
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// NewPage builds a Page, guaranteeing a non-nil item slice.
func NewPage[T any](items []T, q ListQuery, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Meta: PageMeta{
			Page:       q.Page,
			Limit:      q.Limit,
			TotalItems: total,
			TotalPages: TotalPages(total, q.Limit),
		},
	}
}

// TotalPages returns ceil(total / limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Validate reports every out-of-range parameter.
func (q ListQuery) Validate() []FieldError {
	var errs fieldErrors
	if q.Page < 1 {
		errs.add("page", "page must be at least 1")
	}
	switch {
	case q.Limit < 1:
		errs.add("limit", "limit must be at least 1")
	case q.Limit > MaxLimit:
		errs.add("limit", "limit must not exceed "+strconv.Itoa(MaxLimit))
	}
	if !utf8.ValidString(q.Search) || strings.ContainsRune(q.Search, 0) {
		errs.add("search", "search must be valid UTF-8 text without NUL characters")
	}
	return errs.result()
}

// Validate reports every out-of-range parameter, including the category filter.
func (q ProductListQuery) Validate() []FieldError {
	errs := fieldErrors(q.ListQuery.Validate())
	if q.CategoryID != nil && *q.CategoryID < 1 {
		errs.add("categoryId", "categoryId must be a positive integer")
	}
	return errs.result()
}
