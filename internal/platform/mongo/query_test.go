package mongo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"tg-checkin-backend/internal/common/pagination"
)

var fields = []string{"username", "tgId", "phoneNumber"}

func TestSearchFilter_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, SearchFilter(pagination.Query{}, fields))
}

func TestSearchFilter_Or(t *testing.T) {
	f := SearchFilter(pagination.Query{Search: "a.b"}, fields)

	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Equal(t, bson.M{"username": bson.M{"$regex": `a\.b`, "$options": "i"}}, or[0])
}

func TestSearchFilter_AndIgnoresUnknown(t *testing.T) {
	f := SearchFilter(pagination.Query{Search: "x", FilterFields: []string{"tgId", "password"}}, fields)

	and, ok := f["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, and, 1)
	assert.Equal(t, bson.M{"tgId": bson.M{"$regex": "x", "$options": "i"}}, and[0])
}

func TestDateFilter(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	f := DateFilter(bson.M{}, "createdAt", pagination.Query{From: &from, To: &to})
	assert.Equal(t, bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}}, f)

	assert.Equal(t, bson.M{}, DateFilter(bson.M{}, "createdAt", pagination.Query{}))
}

func TestFindOptions(t *testing.T) {
	q := pagination.Query{Page: 2, PageSize: 10, SortBy: "createdAt", Ascending: true}

	opts := FindOptions(q, "createdAt")
	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(10), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: 1}}, opts.Sort)

	opts = FindOptions(q, "username")
	assert.Nil(t, opts.Sort)
}
