package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tg-checkin-backend/internal/common/pagination"
)

func regex(search string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
}

// SearchFilter matches search in any of defaultFields, or in every field of
// q.FilterFields when given. Unknown filter fields are ignored.
func SearchFilter(q pagination.Query, defaultFields []string) bson.M {
	if q.Search == "" {
		return bson.M{}
	}

	allowed := make(map[string]struct{}, len(defaultFields))
	for _, f := range defaultFields {
		allowed[f] = struct{}{}
	}

	var and bson.A
	for _, f := range q.FilterFields {
		if _, ok := allowed[f]; ok {
			and = append(and, bson.M{f: regex(q.Search)})
		}
	}
	if len(and) > 0 {
		return bson.M{"$and": and}
	}

	or := make(bson.A, 0, len(defaultFields))
	for _, f := range defaultFields {
		or = append(or, bson.M{f: regex(q.Search)})
	}
	return bson.M{"$or": or}
}

// DateFilter adds a [From, To) range on field to filter.
func DateFilter(filter bson.M, field string, q pagination.Query) bson.M {
	if !q.HasDateRange() || field == "" {
		return filter
	}
	rng := bson.M{}
	if q.From != nil {
		rng["$gte"] = *q.From
	}
	if q.To != nil {
		rng["$lt"] = *q.To
	}
	filter[field] = rng
	return filter
}

// FindOptions applies skip, limit and an optional sort whitelisted by sortable.
func FindOptions(q pagination.Query, sortable ...string) *options.FindOptions {
	opts := options.Find().SetSkip(q.Skip()).SetLimit(q.Limit())
	if q.SortBy == "" {
		return opts
	}
	for _, f := range sortable {
		if f == q.SortBy {
			return opts.SetSort(bson.D{{Key: q.SortBy, Value: q.SortDirection()}})
		}
	}
	return opts
}
