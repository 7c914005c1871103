package pagination

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery_Defaults(t *testing.T) {
	q, err := ParseQuery(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 2, q.PageSize)
	assert.Equal(t, int64(0), q.Skip())
	assert.Equal(t, -1, q.SortDirection())
	assert.False(t, q.HasDateRange())
	assert.Empty(t, q.FilterFields)
}

func TestParseQuery_Full(t *testing.T) {
	q, err := ParseQuery(url.Values{
		"search":       {" bob "},
		"page":         {"3"},
		"pageSize":     {"500"},
		"sortBy":       {"createdAt"},
		"order":        {"ASC"},
		"filterFields": {"username, phoneNumber,,"},
		"startDate":    {"2024-03-01"},
		"endDate":      {"2024-03-02T18:30:00Z"},
	})
	require.NoError(t, err)

	assert.Equal(t, "bob", q.Search)
	assert.Equal(t, MaxPageSize, q.PageSize)
	assert.Equal(t, int64(200), q.Skip())
	assert.Equal(t, 1, q.SortDirection())
	assert.Equal(t, []string{"username", "phoneNumber"}, q.FilterFields)
	require.NotNil(t, q.From)
	require.NotNil(t, q.To)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *q.From)
	assert.Equal(t, time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), *q.To)
}

func TestParseQuery_Invalid(t *testing.T) {
	_, err := ParseQuery(url.Values{"page": {"0"}})
	assert.Error(t, err)

	_, err = ParseQuery(url.Values{"startDate": {"yesterday"}})
	assert.Error(t, err)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, int64(0), PageCount(0, 2))
	assert.Equal(t, int64(3), PageCount(5, 2))
	assert.Equal(t, int64(1), PageCount(2, 2))
}

func TestNewPage_EmptyData(t *testing.T) {
	p := NewPage[string](nil, Query{Page: 1, PageSize: 2}, 0)
	assert.NotNil(t, p.Data)
	assert.Equal(t, "OK", p.Message)
}
