package pending

import (
	"context"
	"errors"
	"strconv"
	"time"

	"tg-checkin-backend/internal/common/cache"
)

const pickerKeyPrefix = "account_type:"

// Contact is cached under the chat id when a user shares their phone.
type Contact struct {
	PhoneNumber string `json:"phoneNumber"`
	AccountBio  string `json:"accountBio"`
}

// Picker locates the type-picker message. MessageID is the contact message
// id, the picker itself is the next message in the chat.
type Picker struct {
	ChatID    int64 `json:"chatId"`
	MessageID int   `json:"messageId"`
}

func (p Picker) PickerMessageID() int {
	return p.MessageID + 1
}

// Cache is satisfied by *cache.CacheService.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

func ContactKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func PickerKey(userID int64) string {
	return pickerKeyPrefix + strconv.FormatInt(userID, 10)
}

type Store struct {
	cache      Cache
	contactTTL time.Duration
	pickerTTL  time.Duration
}

func NewStore(c Cache, contactTTL, pickerTTL time.Duration) *Store {
	return &Store{cache: c, contactTTL: contactTTL, pickerTTL: pickerTTL}
}

func (s *Store) SaveContact(ctx context.Context, chatID int64, c Contact) error {
	return s.cache.Set(ctx, ContactKey(chatID), c, s.contactTTL)
}

// Contact returns nil, nil when nothing is pending.
func (s *Store) Contact(ctx context.Context, chatID int64) (*Contact, error) {
	var c Contact
	if err := s.cache.Get(ctx, ContactKey(chatID), &c); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) SavePicker(ctx context.Context, userID int64, p Picker) error {
	return s.cache.Set(ctx, PickerKey(userID), p, s.pickerTTL)
}

// Picker returns nil, nil when no picker is outstanding.
func (s *Store) Picker(ctx context.Context, userID int64) (*Picker, error) {
	var p Picker
	if err := s.cache.Get(ctx, PickerKey(userID), &p); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Clear drops both entries of a finished check-in.
func (s *Store) Clear(ctx context.Context, chatID, userID int64) error {
	return s.cache.Delete(ctx, ContactKey(chatID), PickerKey(userID))
}
