package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tg-checkin-backend/internal/common/pagination"
	"tg-checkin-backend/internal/features/accounttype/models"
)

var (
	ErrNotFound      = errors.New("account type not found")
	ErrAlreadyExists = errors.New("account type already exists")
)

// DateFields may be named by filterDate.
var DateFields = []string{"createdAt", "updatedAt"}

var SortFields = []string{"type", "createdAt", "updatedAt"}

type AccountTypeRepository interface {
	Create(ctx context.Context, t *models.AccountType) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.AccountType, error)
	GetByType(ctx context.Context, label string) (*models.AccountType, error)
	GetByPassword(ctx context.Context, password string) (*models.AccountType, error)
	// Update sets the label and, when password is non-nil, the pass code.
	Update(ctx context.Context, id primitive.ObjectID, label string, password *string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q pagination.Query) ([]models.AccountType, int64, error)
	// Labels returns every label in insertion order.
	Labels(ctx context.Context) ([]string, error)
	All(ctx context.Context) ([]models.AccountType, error)
	EnsureIndexes(ctx context.Context) error
}
