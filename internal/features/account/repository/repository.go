package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tg-checkin-backend/internal/common/pagination"
	"tg-checkin-backend/internal/features/account/models"
)

var (
	ErrNotFound      = errors.New("account not found")
	ErrAlreadyExists = errors.New("account already exists")
)

// SearchFields are matched by a free-text list search.
var SearchFields = []string{"username", "tgId", "phoneNumber", "serverIp", "accountType"}

// SortFields may be passed as sortBy.
var SortFields = []string{"createdAt", "updatedAt", "tgId", "username", "nickname", "phoneNumber", "serverIp", "accountType", "profileCount"}

// AccountRepository stores live or historic rows. The live collection is
// unique on tgId, the historic one is append-oriented.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	// GetByTgID returns the most recent row for tgID.
	GetByTgID(ctx context.Context, tgID string) (*models.Account, error)
	// FindIdentical returns any row whose business fields equal s.
	FindIdentical(ctx context.Context, s models.Snapshot) (*models.Account, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, s models.Snapshot) error
	UpdateByTgID(ctx context.Context, tgID string, s models.Snapshot) error
	// UpsertByTgID sets s on the row for s.TgID, inserting it if absent.
	UpsertByTgID(ctx context.Context, s models.Snapshot) (*models.Account, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q pagination.Query) ([]models.Account, int64, error)
	EnsureIndexes(ctx context.Context) error
}
