package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"tg-checkin-backend/internal/common/pagination"
	"tg-checkin-backend/internal/features/account/models"
	"tg-checkin-backend/internal/features/account/repository"
)

const ns = "tg_checkin.tg_accounts"

func accountDoc(id primitive.ObjectID, tgID, accountType string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "tgId", Value: tgID},
		{Key: "username", Value: "bob"},
		{Key: "nickname", Value: "Bob B"},
		{Key: "phoneNumber", Value: "+1"},
		{Key: "serverIp", Value: models.Blank},
		{Key: "accountBio", Value: "bio"},
		{Key: "accountType", Value: accountType},
		{Key: "isPremium", Value: false},
		{Key: "profileUrl", Value: models.Blank},
		{Key: "profileCount", Value: 0},
	}
}

func TestAccountRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get by tg id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, accountDoc(id, "42", "A")))

		got, err := NewLiveRepository(mt.DB).GetByTgID(ctx, "42")
		require.NoError(mt, err)
		assert.Equal(mt, id, got.ID)
		assert.Equal(mt, "A", got.AccountType)
		assert.Equal(mt, "Bob B", got.Nickname)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewLiveRepository(mt.DB).GetByTgID(ctx, "42")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		acc := &models.Account{Snapshot: models.Snapshot{TgID: "42"}}
		require.NoError(mt, NewHistoricRepository(mt.DB).Create(ctx, acc))
		assert.False(mt, acc.ID.IsZero())
		assert.False(mt, acc.CreatedAt.IsZero())
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := NewLiveRepository(mt.DB).Create(ctx, &models.Account{Snapshot: models.Snapshot{TgID: "42"}})
		assert.ErrorIs(mt, err, repository.ErrAlreadyExists)
	})

	mt.Run("update unmatched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := NewLiveRepository(mt.DB).UpdateByID(ctx, primitive.NewObjectID(), models.Snapshot{TgID: "42"})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := NewHistoricRepository(mt.DB).Delete(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: 3}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				accountDoc(primitive.NewObjectID(), "1", "A"),
				accountDoc(primitive.NewObjectID(), "2", "B"),
			),
		)

		items, total, err := NewHistoricRepository(mt.DB).List(ctx, pagination.Query{Page: 1, PageSize: 2, Search: "bob"})
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), total)
		require.Len(mt, items, 2)
		assert.Equal(mt, "B", items[1].AccountType)
	})
}
