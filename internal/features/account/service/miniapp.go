package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"

	apperrors "tg-checkin-backend/internal/common/errors"
	"tg-checkin-backend/internal/features/account/models"
	"tg-checkin-backend/internal/features/account/repository"
	"tg-checkin-backend/internal/features/checkin/pending"
)

// ContactLookup reads the contact shared with the bot. In a private chat the
// chat id is the user id, so the mini-app looks it up by tgId.
type ContactLookup interface {
	Contact(ctx context.Context, chatID int64) (*pending.Contact, error)
}

type MiniAppService interface {
	// CheckIn upserts the live row and records a snapshot unless an identical one exists.
	CheckIn(ctx context.Context, req models.MiniAppRequest) (*models.Account, error)
	// Latest returns the newest snapshot for tgID, nil when there is none.
	Latest(ctx context.Context, tgID string) (*models.Account, error)
}

type miniAppService struct {
	live     repository.AccountRepository
	historic repository.AccountRepository
	contacts ContactLookup
}

func NewMiniAppService(live, historic repository.AccountRepository, contacts ContactLookup) MiniAppService {
	return &miniAppService{live: live, historic: historic, contacts: contacts}
}

func (s *miniAppService) CheckIn(ctx context.Context, req models.MiniAppRequest) (*models.Account, error) {
	chatID, err := strconv.ParseInt(req.TgID, 10, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("tgId", "Missing fields or malformed data.")
	}

	contact, err := s.contacts.Contact(ctx, chatID)
	if err != nil {
		return nil, apperrors.NewCacheError("get contact", err)
	}
	if contact == nil {
		return nil, apperrors.NewCacheExpiredError(pending.ContactKey(chatID))
	}

	snapshot := req.Snapshot(contact.PhoneNumber, contact.AccountBio)

	account, err := s.live.UpsertByTgID(ctx, snapshot)
	if err != nil {
		return nil, apperrors.NewDatabaseError("upsert account", err)
	}

	_, err = s.historic.FindIdentical(ctx, snapshot)
	switch {
	case err == nil:
		log.Debug().Str("tg_id", req.TgID).Msg("identical snapshot exists, skipping historic insert")
	case errors.Is(err, repository.ErrNotFound):
		if err := s.historic.Create(ctx, &models.Account{Snapshot: snapshot}); err != nil {
			return nil, apperrors.NewDatabaseError("create historic account", err)
		}
	default:
		return nil, apperrors.NewDatabaseError("find historic account", err)
	}

	return account, nil
}

func (s *miniAppService) Latest(ctx context.Context, tgID string) (*models.Account, error) {
	account, err := s.historic.GetByTgID(ctx, tgID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewDatabaseError("get historic account", err)
	}
	return account, nil
}
