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
	"tg-checkin-backend/internal/features/account/models"
	"tg-checkin-backend/internal/features/account/repository"
	platformmongo "tg-checkin-backend/internal/platform/mongo"
)

type accountRepository struct {
	coll   *mongo.Collection
	unique bool
	now    func() time.Time
}

// NewLiveRepository stores one row per tgId.
func NewLiveRepository(db *mongo.Database) repository.AccountRepository {
	return &accountRepository{
		coll:   db.Collection(platformmongo.CollectionAccounts),
		unique: true,
		now:    utcNow,
	}
}

// NewHistoricRepository stores check-in snapshots.
func NewHistoricRepository(db *mongo.Database) repository.AccountRepository {
	return &accountRepository{
		coll: db.Collection(platformmongo.CollectionHistoric),
		now:  utcNow,
	}
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func snapshotFields(s models.Snapshot) bson.M {
	return bson.M{
		"tgId":         s.TgID,
		"username":     s.Username,
		"nickname":     s.Nickname,
		"phoneNumber":  s.PhoneNumber,
		"serverIp":     s.ServerIP,
		"accountBio":   s.AccountBio,
		"accountType":  s.AccountType,
		"isPremium":    s.IsPremium,
		"profileUrl":   s.ProfileURL,
		"profileCount": s.ProfileCount,
	}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	now := r.now()
	account.ID = primitive.NilObjectID
	account.CreatedAt = now
	account.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		account.ID = oid
	}
	return nil
}

func (r *accountRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.Account, error) {
	var account models.Account
	err := r.coll.FindOne(ctx, filter, opts...).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *accountRepository) GetByTgID(ctx context.Context, tgID string) (*models.Account, error) {
	return r.findOne(ctx, bson.M{"tgId": tgID},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *accountRepository) FindIdentical(ctx context.Context, s models.Snapshot) (*models.Account, error) {
	return r.findOne(ctx, snapshotFields(s))
}

func (r *accountRepository) update(ctx context.Context, filter bson.M, s models.Snapshot) error {
	set := snapshotFields(s)
	set["updatedAt"] = r.now()

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *accountRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, s models.Snapshot) error {
	return r.update(ctx, bson.M{"_id": id}, s)
}

func (r *accountRepository) UpdateByTgID(ctx context.Context, tgID string, s models.Snapshot) error {
	return r.update(ctx, bson.M{"tgId": tgID}, s)
}

func (r *accountRepository) UpsertByTgID(ctx context.Context, s models.Snapshot) (*models.Account, error) {
	now := r.now()
	set := snapshotFields(s)
	set["updatedAt"] = now

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var account models.Account
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"tgId": s.TgID},
		bson.M{"$set": set, "$setOnInsert": bson.M{"createdAt": now}},
		opts,
	).Decode(&account)
	if err != nil {
		return nil, fmt.Errorf("upsert account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *accountRepository) List(ctx context.Context, q pagination.Query) ([]models.Account, int64, error) {
	filter := platformmongo.SearchFilter(q, repository.SearchFields)
	filter = platformmongo.DateFilter(filter, "createdAt", q)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	cursor, err := r.coll.Find(ctx, filter, platformmongo.FindOptions(q, repository.SortFields...))
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	accounts := make([]models.Account, 0, q.PageSize)
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, 0, fmt.Errorf("decode accounts: %w", err)
	}
	return accounts, total, nil
}

func (r *accountRepository) EnsureIndexes(ctx context.Context) error {
	var indexes []mongo.IndexModel
	if r.unique {
		indexes = []mongo.IndexModel{
			{Keys: bson.D{{Key: "tgId", Value: 1}}, Options: options.Index().SetUnique(true)},
		}
	} else {
		for _, f := range []string{"tgId", "username", "phoneNumber", "serverIp", "accountType"} {
			indexes = append(indexes, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
		}
	}
	indexes = append(indexes, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}})

	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create indexes on %s: %w", r.coll.Name(), err)
	}
	return nil
}
