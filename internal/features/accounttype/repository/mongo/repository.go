package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tg-checkin-backend/internal/common/pagination"
	"tg-checkin-backend/internal/features/accounttype/models"
	"tg-checkin-backend/internal/features/accounttype/repository"
	platformmongo "tg-checkin-backend/internal/platform/mongo"
)

type accountTypeRepository struct {
	coll *mongo.Collection
}

func NewAccountTypeRepository(db *mongo.Database) repository.AccountTypeRepository {
	return &accountTypeRepository{coll: db.Collection(platformmongo.CollectionPassCodes)}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (r *accountTypeRepository) Create(ctx context.Context, t *models.AccountType) error {
	ts := now()
	t.ID = primitive.NilObjectID
	t.CreatedAt = ts
	t.UpdatedAt = ts

	res, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("insert account type: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

func (r *accountTypeRepository) findOne(ctx context.Context, filter bson.M) (*models.AccountType, error) {
	var t models.AccountType
	err := r.coll.FindOne(ctx, filter).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account type: %w", err)
	}
	return &t, nil
}

func (r *accountTypeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AccountType, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *accountTypeRepository) GetByType(ctx context.Context, label string) (*models.AccountType, error) {
	return r.findOne(ctx, bson.M{"type": label})
}

func (r *accountTypeRepository) GetByPassword(ctx context.Context, password string) (*models.AccountType, error) {
	return r.findOne(ctx, bson.M{"password": password})
}

func (r *accountTypeRepository) Update(ctx context.Context, id primitive.ObjectID, label string, password *string) error {
	set := bson.M{"type": label, "updatedAt": now()}
	if password != nil {
		set["password"] = *password
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("update account type: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *accountTypeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete account type: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List searches the label. The date range applies to q.FilterDate when it
// names a timestamp field.
func (r *accountTypeRepository) List(ctx context.Context, q pagination.Query) ([]models.AccountType, int64, error) {
	filter := platformmongo.SearchFilter(q, []string{"type"})
	for _, f := range repository.DateFields {
		if f == q.FilterDate {
			filter = platformmongo.DateFilter(filter, f, q)
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count account types: %w", err)
	}

	cursor, err := r.coll.Find(ctx, filter, platformmongo.FindOptions(q, repository.SortFields...))
	if err != nil {
		return nil, 0, fmt.Errorf("list account types: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.AccountType, 0, q.PageSize)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode account types: %w", err)
	}
	return items, total, nil
}

func (r *accountTypeRepository) All(ctx context.Context) ([]models.AccountType, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list account types: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.AccountType
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode account types: %w", err)
	}
	return items, nil
}

func (r *accountTypeRepository) Labels(ctx context.Context) ([]string, error) {
	cursor, err := r.coll.Find(ctx, bson.M{},
		options.Find().
			SetProjection(bson.M{"type": 1}).
			SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Type string `bson:"type"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}

	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Type != "" {
			labels = append(labels, row.Type)
		}
	}
	return labels, nil
}

func (r *accountTypeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "password", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create indexes on %s: %w", r.coll.Name(), err)
	}
	return nil
}
