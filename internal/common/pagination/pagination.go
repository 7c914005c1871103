package pagination

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"tg-checkin-backend/internal/common/validation"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 2
	MaxPageSize     = 100
)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// Query is a parsed list request.
type Query struct {
	Search       string
	Page         int
	PageSize     int
	SortBy       string
	Ascending    bool
	FilterFields []string
	// FilterDate names the timestamp field the date range applies to.
	FilterDate string
	// From is inclusive, To is exclusive. Both are UTC midnights.
	From *time.Time
	To   *time.Time
}

// ParseQuery reads search, page, pageSize, sortBy, order, filterFields,
// filterDate, startDate and endDate.
func ParseQuery(values url.Values) (Query, error) {
	q := Query{
		Search:     strings.TrimSpace(values.Get("search")),
		SortBy:     strings.TrimSpace(values.Get("sortBy")),
		Ascending:  strings.EqualFold(strings.TrimSpace(values.Get("order")), "asc"),
		FilterDate: strings.TrimSpace(values.Get("filterDate")),
	}

	var err error
	if q.Page, err = validation.ParsePositiveInt(values.Get("page"), DefaultPage); err != nil {
		return Query{}, fmt.Errorf("page: %w", err)
	}
	if q.PageSize, err = validation.ParsePositiveInt(values.Get("pageSize"), DefaultPageSize); err != nil {
		return Query{}, fmt.Errorf("pageSize: %w", err)
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	for _, f := range strings.Split(values.Get("filterFields"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			q.FilterFields = append(q.FilterFields, f)
		}
	}

	if raw := values.Get("startDate"); raw != "" {
		day, err := parseDay(raw)
		if err != nil {
			return Query{}, fmt.Errorf("startDate: %w", err)
		}
		q.From = &day
	}
	if raw := values.Get("endDate"); raw != "" {
		day, err := parseDay(raw)
		if err != nil {
			return Query{}, fmt.Errorf("endDate: %w", err)
		}
		next := day.AddDate(0, 0, 1)
		q.To = &next
	}

	return q, nil
}

func parseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

func (q Query) Skip() int64 {
	return int64(q.Page-1) * int64(q.PageSize)
}

func (q Query) Limit() int64 {
	return int64(q.PageSize)
}

func (q Query) HasDateRange() bool {
	return q.From != nil || q.To != nil
}

// SortDirection is 1 for asc, -1 otherwise.
func (q Query) SortDirection() int {
	if q.Ascending {
		return 1
	}
	return -1
}

func PageCount(total int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 0
	}
	return (total + int64(pageSize) - 1) / int64(pageSize)
}

// Page is the list envelope.
type Page[T any] struct {
	Message   string `json:"message"`
	Data      []T    `json:"data"`
	Page      int    `json:"page"`
	PageCount int64  `json:"pageCount"`
	Total     int64  `json:"total"`
}

func NewPage[T any](items []T, q Query, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Message:   "OK",
		Data:      items,
		Page:      q.Page,
		PageCount: PageCount(total, q.PageSize),
		Total:     total,
	}
}
