package service

import (
	"context"
	"errors"
	"strings"

	apperrors "tg-checkin-backend/internal/common/errors"
	"tg-checkin-backend/internal/common/pagination"
	"tg-checkin-backend/internal/common/validation"
	"tg-checkin-backend/internal/features/accounttype/models"
	"tg-checkin-backend/internal/features/accounttype/repository"
)

const (
	MsgCreated = "创建成功"
	MsgUpdated = "更新成功"
	MsgDeleted = "删除成功"
	MsgFound   = "成功"

	msgLabelTooShort = "账号类型太短"
)

type AccountTypeService interface {
	Create(ctx context.Context, req models.CreateRequest) (*models.AccountType, error)
	Update(ctx context.Context, id string, req models.UpdateRequest) error
	Get(ctx context.Context, id string) (*models.AccountType, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q pagination.Query) ([]models.AccountType, int64, error)
	// VerifyPassword returns nil without error when no entry has the code.
	VerifyPassword(ctx context.Context, passCode string) (*models.AccountType, error)
	All(ctx context.Context) ([]models.AccountType, error)
}

type accountTypeService struct {
	repo    repository.AccountTypeRepository
	catalog CatalogService
}

func NewAccountTypeService(repo repository.AccountTypeRepository, catalog CatalogService) AccountTypeService {
	return &accountTypeService{repo: repo, catalog: catalog}
}

func checkLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if err := validation.ValidateLabel(label); err != nil {
		if len(label) > validation.MaxLabelLength {
			return "", apperrors.NewValidationError("type", err.Error())
		}
		return "", apperrors.NewValidationError("type", msgLabelTooShort)
	}
	return label, nil
}

func (s *accountTypeService) Create(ctx context.Context, req models.CreateRequest) (*models.AccountType, error) {
	label, err := checkLabel(req.Type)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByType(ctx, label); err == nil {
		return nil, apperrors.NewConflictError("account type", apperrors.MsgAlreadyExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewDatabaseError("get account type", err)
	}

	t := &models.AccountType{Type: label, Password: req.Password}
	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, apperrors.NewConflictError("account type", apperrors.MsgAlreadyExists)
		}
		return nil, apperrors.NewDatabaseError("create account type", err)
	}

	s.catalog.Written(ctx)
	return t, nil
}

// Update prefers the path id and falls back to the id in the body.
func (s *accountTypeService) Update(ctx context.Context, id string, req models.UpdateRequest) error {
	if strings.TrimSpace(id) == "" {
		id = req.ID
	}
	existing, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	label, err := checkLabel(req.Type)
	if err != nil {
		return err
	}

	if other, err := s.repo.GetByType(ctx, label); err == nil && other.ID != existing.ID {
		return apperrors.NewBadRequestError(apperrors.MsgRecordExists)
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewDatabaseError("get account type", err)
	}

	if err := s.repo.Update(ctx, existing.ID, label, req.Password); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return apperrors.NewNotFoundError("account type", id)
		case errors.Is(err, repository.ErrAlreadyExists):
			return apperrors.NewBadRequestError(apperrors.MsgRecordExists)
		}
		return apperrors.NewDatabaseError("update account type", err)
	}

	s.catalog.Written(ctx)
	return nil
}

func (s *accountTypeService) Get(ctx context.Context, id string) (*models.AccountType, error) {
	return s.get(ctx, id)
}

func (s *accountTypeService) get(ctx context.Context, id string) (*models.AccountType, error) {
	oid, err := validation.ValidateObjectID(id)
	if err != nil {
		return nil, apperrors.NewValidationError("id", apperrors.MsgInvalidID)
	}
	t, err := s.repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account type", id)
		}
		return nil, apperrors.NewDatabaseError("get account type", err)
	}
	return t, nil
}

func (s *accountTypeService) Delete(ctx context.Context, id string) error {
	oid, err := validation.ValidateObjectID(id)
	if err != nil {
		return apperrors.NewValidationError("id", apperrors.MsgInvalidID)
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError("account type", id)
		}
		return apperrors.NewDatabaseError("delete account type", err)
	}

	s.catalog.Written(ctx)
	return nil
}

func (s *accountTypeService) List(ctx context.Context, q pagination.Query) ([]models.AccountType, int64, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, apperrors.NewDatabaseError("list account types", err)
	}
	return items, total, nil
}

func (s *accountTypeService) VerifyPassword(ctx context.Context, passCode string) (*models.AccountType, error) {
	t, err := s.repo.GetByPassword(ctx, passCode)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("verify pass code", err)
	}
	return t, nil
}

func (s *accountTypeService) All(ctx context.Context) ([]models.AccountType, error) {
	items, err := s.repo.All(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list pass codes", err)
	}
	if items == nil {
		items = []models.AccountType{}
	}
	return items, nil
}
