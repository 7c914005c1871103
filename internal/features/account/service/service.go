package service

import (
	"context"
	"errors"

	apperrors "tg-checkin-backend/internal/common/errors"
	"tg-checkin-backend/internal/common/pagination"
	"tg-checkin-backend/internal/common/validation"
	"tg-checkin-backend/internal/features/account/models"
	"tg-checkin-backend/internal/features/account/repository"
)

const (
	MsgCreated = "创建成功"
	MsgUpdated = "更新成功"
	MsgDeleted = "删除成功"
	MsgFound   = "成功"
)

// AccountService manages one account collection for the admin API.
type AccountService interface {
	Create(ctx context.Context, req models.AccountRequest) (*models.Account, error)
	Update(ctx context.Context, id string, req models.AccountRequest) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*models.Account, error)
	List(ctx context.Context, q pagination.Query) ([]models.Account, int64, error)
}

type conflictRule int

const (
	// conflictOnTgID rejects a second row for the same tgId.
	conflictOnTgID conflictRule = iota
	// conflictOnSnapshot rejects an exact duplicate.
	conflictOnSnapshot
)

type accountService struct {
	name     string
	repo     repository.AccountRepository
	conflict conflictRule
}

func NewLiveService(repo repository.AccountRepository) AccountService {
	return &accountService{name: "account", repo: repo, conflict: conflictOnTgID}
}

func NewHistoricService(repo repository.AccountRepository) AccountService {
	return &accountService{name: "historic account", repo: repo, conflict: conflictOnSnapshot}
}

func (s *accountService) Create(ctx context.Context, req models.AccountRequest) (*models.Account, error) {
	snapshot := req.Apply(models.Snapshot{}).WithDefaults()

	switch s.conflict {
	case conflictOnTgID:
		_, err := s.repo.GetByTgID(ctx, snapshot.TgID)
		if err == nil {
			return nil, apperrors.NewConflictError(s.name, apperrors.MsgAlreadyExists)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewDatabaseError("get "+s.name, err)
		}
	case conflictOnSnapshot:
		_, err := s.repo.FindIdentical(ctx, snapshot)
		if err == nil {
			return nil, apperrors.NewConflictError(s.name, apperrors.MsgAlreadyExists)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewDatabaseError("find "+s.name, err)
		}
	}

	account := &models.Account{Snapshot: snapshot}
	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, apperrors.NewConflictError(s.name, apperrors.MsgAlreadyExists)
		}
		return nil, apperrors.NewDatabaseError("create "+s.name, err)
	}
	return account, nil
}

func (s *accountService) Update(ctx context.Context, id string, req models.AccountRequest) error {
	existing, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	snapshot := req.Apply(existing.Snapshot)

	if _, err := s.repo.FindIdentical(ctx, snapshot); err == nil {
		return apperrors.NewBadRequestError(apperrors.MsgRecordExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewDatabaseError("find "+s.name, err)
	}

	if err := s.repo.UpdateByID(ctx, existing.ID, snapshot); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return apperrors.NewNotFoundError(s.name, id)
		case errors.Is(err, repository.ErrAlreadyExists):
			return apperrors.NewConflictError(s.name, apperrors.MsgAlreadyExists)
		}
		return apperrors.NewDatabaseError("update "+s.name, err)
	}
	return nil
}

func (s *accountService) Delete(ctx context.Context, id string) error {
	oid, err := validation.ValidateObjectID(id)
	if err != nil {
		return apperrors.NewValidationError("id", apperrors.MsgInvalidID)
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError(s.name, id)
		}
		return apperrors.NewDatabaseError("delete "+s.name, err)
	}
	return nil
}

func (s *accountService) Get(ctx context.Context, id string) (*models.Account, error) {
	return s.get(ctx, id)
}

func (s *accountService) get(ctx context.Context, id string) (*models.Account, error) {
	oid, err := validation.ValidateObjectID(id)
	if err != nil {
		return nil, apperrors.NewValidationError("id", apperrors.MsgInvalidID)
	}
	account, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(s.name, id)
		}
		return nil, apperrors.NewDatabaseError("get "+s.name, err)
	}
	return account, nil
}

func (s *accountService) List(ctx context.Context, q pagination.Query) ([]models.Account, int64, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("list "+s.name, err)
	}
	return items, total, nil
}
