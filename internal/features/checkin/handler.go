package checkin

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"tg-checkin-backend/internal/common/logger"
	accountmodels "tg-checkin-backend/internal/features/account/models"
	"tg-checkin-backend/internal/features/account/repository"
	typemodels "tg-checkin-backend/internal/features/accounttype/models"
	"tg-checkin-backend/internal/features/checkin/pending"
	"tg-checkin-backend/internal/platform/telegram"
)

type Catalog interface {
	GetCatalog(ctx context.Context) (typemodels.Catalog, error)
}

type Deps struct {
	Bot      telegram.Bot
	Live     repository.AccountRepository
	Historic repository.AccountRepository
	Catalog  Catalog
	Pending  *pending.Store
	// Locker serializes callbacks per user. Nil disables the lock.
	Locker Locker
}

type Options struct {
	LockTTL time.Duration
}

// Orchestrator handles bot updates for the check-in conversation.
type Orchestrator struct {
	bot      telegram.Bot
	live     repository.AccountRepository
	historic repository.AccountRepository
	catalog  Catalog
	pending  *pending.Store
	lock     userLock
}

func NewOrchestrator(d Deps, opts Options) *Orchestrator {
	if opts.LockTTL <= 0 {
		opts.LockTTL = 20 * time.Second
	}
	return &Orchestrator{
		bot:      d.Bot,
		live:     d.Live,
		historic: d.Historic,
		catalog:  d.Catalog,
		pending:  d.Pending,
		lock:     userLock{locker: d.Locker, ttl: opts.LockTTL},
	}
}

// Handle dispatches one update. Errors and panics are logged, never returned.
func (o *Orchestrator) Handle(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Int("update_id", update.UpdateID).
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("Bot handler panic")
		}
	}()

	switch {
	case update.Message != nil:
		o.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		o.handleCallback(ctx, update.CallbackQuery)
	}
}

func (o *Orchestrator) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}

	switch {
	case msg.Contact != nil:
		o.handleContact(ctx, msg, userID)
	case msg.IsCommand() && msg.Command() == "start":
		o.sendStart(msg.Chat.ID, userID)
	case msg.IsCommand() && msg.Command() == "update":
		o.sendContactPrompt(msg.Chat.ID, userID, "update")
	default:
		l := logger.Event("message", msg.Chat.ID, userID)
		l.Debug().Msg("Ignoring message")
	}
}

func (o *Orchestrator) sendStart(chatID, userID int64) {
	l := logger.Event("start", chatID, userID)

	reply := tgbotapi.NewMessage(chatID, txtStart)
	reply.ParseMode = tgbotapi.ModeMarkdownV2
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnCheckIn, cbPlainCheckIn),
		),
	)
	if _, err := o.bot.Send(reply); err != nil {
		l.Error().Err(err).Msg("Failed to send start prompt")
	}
}

func (o *Orchestrator) sendContactPrompt(chatID, userID int64, event string) {
	l := logger.Event(event, chatID, userID)

	reply := tgbotapi.NewMessage(chatID, txtShareContact)
	reply.ParseMode = tgbotapi.ModeMarkdownV2
	reply.ReplyMarkup = telegram.ContactKeyboard(btnShareContact)
	if _, err := o.bot.Send(reply); err != nil {
		l.Error().Err(err).Msg("Failed to send contact prompt")
	}
}

func (o *Orchestrator) bio(l *zerolog.Logger, userID int64) string {
	bio, err := telegram.Bio(o.bot, userID)
	if err != nil {
		l.Warn().Err(err).Msg("Failed to fetch bio")
		return ""
	}
	return bio
}

// handleContact caches the shared phone and sends the type picker.
func (o *Orchestrator) handleContact(ctx context.Context, msg *tgbotapi.Message, userID int64) {
	chatID := msg.Chat.ID
	l := logger.Event("contact", chatID, userID)

	if err := telegram.DeleteMessage(o.bot, chatID, msg.MessageID); err != nil {
		l.Warn().Err(err).Int("message_id", msg.MessageID).Msg("Failed to delete contact message")
	}
	if err := o.pending.Clear(ctx, chatID, userID); err != nil {
		l.Warn().Err(err).Msg("Failed to clear stale pending state")
	}

	bio := o.bio(&l, userID)
	if bio == "" {
		bio = noBio
	}
	contact := pending.Contact{PhoneNumber: msg.Contact.PhoneNumber, AccountBio: bio}
	if err := o.pending.SaveContact(ctx, chatID, contact); err != nil {
		l.Error().Err(err).Msg("Failed to cache contact")
	}

	catalog, err := o.catalog.GetCatalog(ctx)
	if err != nil {
		l.Error().Err(err).Msg("Failed to load account types")
	}

	picker := tgbotapi.NewMessage(userID, txtPickType)
	if !catalog.Empty() {
		picker.ReplyMarkup = telegram.InlineKeyboard(catalog)
	}
	if _, err := o.bot.Send(picker); err != nil {
		l.Error().Err(err).Msg("Failed to send type picker")
		return
	}

	if err := o.pending.SavePicker(ctx, userID, pending.Picker{ChatID: chatID, MessageID: msg.MessageID}); err != nil {
		l.Error().Err(err).Msg("Failed to cache picker")
	}
	l.Info().Str("state", StateAwaitingTypeSelection.String()).Msg("Type picker sent")
}

func (o *Orchestrator) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	profile := profileOf(cq.From)
	var chatID int64
	if cq.Message != nil && cq.Message.Chat != nil {
		chatID = cq.Message.Chat.ID
	} else {
		chatID = profile.UserID
	}
	l := logger.Event("callback", chatID, profile.UserID)

	defer func() {
		if err := telegram.AnswerCallback(o.bot, cq.ID); err != nil {
			l.Warn().Err(err).Msg("Failed to answer callback")
		}
	}()

	picker, err := o.pending.Picker(ctx, profile.UserID)
	if err != nil {
		l.Warn().Err(err).Msg("Failed to read pending picker")
	}
	// the contact is keyed by the chat it was shared in
	contactChat := chatID
	if picker != nil {
		contactChat = picker.ChatID
	}
	contact, err := o.pending.Contact(ctx, contactChat)
	if err != nil {
		l.Warn().Err(err).Msg("Failed to read pending contact")
	}
	state := DeriveState(Lookups{Contact: contact != nil, Picker: picker != nil})
	l = l.With().Str("state", state.String()).Str("data", cq.Data).Logger()

	var run func() error
	if cq.Data == cbPlainCheckIn {
		run = func() error { return o.plainCheckIn(ctx, &l, chatID, profile) }
	} else {
		catalog, err := o.catalog.GetCatalog(ctx)
		if err != nil {
			l.Error().Err(err).Msg("Failed to load account types")
			return
		}
		label, ok := catalog.Match(cq.Data)
		if !ok {
			l.Debug().Msg("Unknown callback data")
			return
		}
		run = func() error { return o.selectType(ctx, &l, chatID, contactChat, label, profile, contact) }
	}

	if err := o.lock.with(ctx, profile.TgID(), run); err != nil {
		if errors.Is(err, errLockBusy) {
			l.Warn().Msg("Dropping callback, check-in already in progress")
			return
		}
		l.Error().Err(err).Msg("Check-in failed")
	}
}

func (o *Orchestrator) liveRow(ctx context.Context, tgID string) (*accountmodels.Account, error) {
	row, err := o.live.GetByTgID(ctx, tgID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get live account: %w", err)
	}
	return row, nil
}

// write applies a decision to the live row and records the snapshot.
func (o *Orchestrator) write(ctx context.Context, d Decision, candidate accountmodels.Snapshot) error {
	switch d {
	case DecisionUnchanged:
		return nil
	case DecisionInsert:
		if err := o.live.Create(ctx, &accountmodels.Account{Snapshot: candidate}); err != nil {
			return fmt.Errorf("insert live account: %w", err)
		}
	case DecisionUpdate:
		if err := o.live.UpdateByTgID(ctx, candidate.TgID, candidate); err != nil {
			return fmt.Errorf("update live account: %w", err)
		}
	}
	if err := o.historic.Create(ctx, &accountmodels.Account{Snapshot: candidate}); err != nil {
		return fmt.Errorf("insert historic account: %w", err)
	}
	return nil
}

func (o *Orchestrator) plainCheckIn(ctx context.Context, l *zerolog.Logger, chatID int64, p Profile) error {
	live, err := o.liveRow(ctx, p.TgID())
	if err != nil {
		return err
	}
	if live == nil {
		o.sendContactPrompt(chatID, p.UserID, "option1")
		return nil
	}

	p.Bio = o.bio(l, p.UserID)
	candidate := PlainCandidate(live.Snapshot, p)
	decision := Decide(live, candidate)
	if err := o.write(ctx, decision, candidate); err != nil {
		return err
	}

	l.Info().
		Str("decision", decision.String()).
		Strs("changed", accountmodels.ChangedFields(live.Snapshot, candidate)).
		Msg("Plain check-in")
	o.reply(l, chatID)
	return nil
}

func (o *Orchestrator) selectType(ctx context.Context, l *zerolog.Logger, chatID, contactChat int64, label string, p Profile, contact *pending.Contact) error {
	live, err := o.liveRow(ctx, p.TgID())
	if err != nil {
		return err
	}

	p.Bio = o.bio(l, p.UserID)
	candidate := SelectionCandidate(label, p, contact, live)
	decision := Decide(live, candidate)
	if err := o.write(ctx, decision, candidate); err != nil {
		return err
	}

	o.finish(ctx, l, contactChat, p.UserID)
	l.Info().Str("decision", decision.String()).Str("account_type", label).Msg("Type selected")
	o.reply(l, chatID)
	return nil
}

// finish removes the picker message and both pending entries.
func (o *Orchestrator) finish(ctx context.Context, l *zerolog.Logger, chatID, userID int64) {
	picker, err := o.pending.Picker(ctx, userID)
	if err != nil {
		l.Warn().Err(err).Msg("Failed to read pending picker")
	}
	if picker != nil {
		if err := telegram.DeleteMessage(o.bot, picker.ChatID, picker.PickerMessageID()); err != nil {
			l.Warn().Err(err).Int("message_id", picker.PickerMessageID()).Msg("Failed to delete picker")
		}
	}
	if err := o.pending.Clear(ctx, chatID, userID); err != nil {
		l.Warn().Err(err).Msg("Failed to clear pending state")
	}
}

func (o *Orchestrator) reply(l *zerolog.Logger, chatID int64) {
	if _, err := o.bot.Send(tgbotapi.NewMessage(chatID, txtCheckedIn)); err != nil {
		l.Error().Err(err).Msg("Failed to send confirmation")
	}
}
