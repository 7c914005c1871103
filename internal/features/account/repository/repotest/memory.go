// Package repotest provides an in-memory AccountRepository for tests of
// packages built on top of account storage.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tg-checkin-backend/internal/common/pagination"
	"tg-checkin-backend/internal/features/account/models"
	"tg-checkin-backend/internal/features/account/repository"
)

type Memory struct {
	mu     sync.Mutex
	unique bool
	rows   []models.Account
	clock  time.Time

	// Calls counts invocations per method name.
	Calls map[string]int
}

// NewLive enforces tgId uniqueness like the live collection.
func NewLive() *Memory {
	return &Memory{unique: true, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Calls: map[string]int{}}
}

func NewHistoric() *Memory {
	return &Memory{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Calls: map[string]int{}}
}

var _ repository.AccountRepository = (*Memory)(nil)

// tick keeps createdAt strictly increasing so "latest" is deterministic.
func (m *Memory) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// Rows returns a copy of the stored rows in insertion order.
func (m *Memory) Rows() []models.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Account, len(m.rows))
	copy(out, m.rows)
	return out
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// Seed stores rows as-is, assigning ids and timestamps when missing.
func (m *Memory) Seed(snapshots ...models.Snapshot) []models.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	seeded := make([]models.Account, 0, len(snapshots))
	for _, s := range snapshots {
		now := m.tick()
		acc := models.Account{ID: primitive.NewObjectID(), Snapshot: s, CreatedAt: now, UpdatedAt: now}
		m.rows = append(m.rows, acc)
		seeded = append(seeded, acc)
	}
	return seeded
}

func (m *Memory) Create(_ context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["Create"]++

	if m.unique {
		for _, r := range m.rows {
			if r.TgID == account.TgID {
				return repository.ErrAlreadyExists
			}
		}
	}
	now := m.tick()
	account.ID = primitive.NewObjectID()
	account.CreatedAt = now
	account.UpdatedAt = now
	m.rows = append(m.rows, *account)
	return nil
}

func (m *Memory) GetByID(_ context.Context, id primitive.ObjectID) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["GetByID"]++

	for _, r := range m.rows {
		if r.ID == id {
			acc := r
			return &acc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Memory) GetByTgID(_ context.Context, tgID string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["GetByTgID"]++

	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].TgID == tgID {
			acc := m.rows[i]
			return &acc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Memory) FindIdentical(_ context.Context, s models.Snapshot) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["FindIdentical"]++

	for _, r := range m.rows {
		if r.Snapshot.Equal(s) {
			acc := r
			return &acc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Memory) updateWhere(match func(models.Account) bool, s models.Snapshot) error {
	idx := -1
	for i, r := range m.rows {
		if match(r) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return repository.ErrNotFound
	}
	if m.unique {
		for i, r := range m.rows {
			if i != idx && r.TgID == s.TgID {
				return repository.ErrAlreadyExists
			}
		}
	}
	m.rows[idx].Snapshot = s
	m.rows[idx].UpdatedAt = m.tick()
	return nil
}

func (m *Memory) UpdateByID(_ context.Context, id primitive.ObjectID, s models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["UpdateByID"]++
	return m.updateWhere(func(a models.Account) bool { return a.ID == id }, s)
}

func (m *Memory) UpdateByTgID(_ context.Context, tgID string, s models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["UpdateByTgID"]++
	return m.updateWhere(func(a models.Account) bool { return a.TgID == tgID }, s)
}

func (m *Memory) UpsertByTgID(_ context.Context, s models.Snapshot) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["UpsertByTgID"]++

	for i, r := range m.rows {
		if r.TgID == s.TgID {
			m.rows[i].Snapshot = s
			m.rows[i].UpdatedAt = m.tick()
			acc := m.rows[i]
			return &acc, nil
		}
	}
	now := m.tick()
	acc := models.Account{ID: primitive.NewObjectID(), Snapshot: s, CreatedAt: now, UpdatedAt: now}
	m.rows = append(m.rows, acc)
	return &acc, nil
}

func (m *Memory) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["Delete"]++

	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// List supports search over the default fields and createdAt ordering only.
func (m *Memory) List(_ context.Context, q pagination.Query) ([]models.Account, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["List"]++

	needle := strings.ToLower(q.Search)
	var matched []models.Account
	for _, r := range m.rows {
		if needle == "" ||
			strings.Contains(strings.ToLower(r.Username), needle) ||
			strings.Contains(strings.ToLower(r.TgID), needle) ||
			strings.Contains(strings.ToLower(r.PhoneNumber), needle) ||
			strings.Contains(strings.ToLower(r.ServerIP), needle) ||
			strings.Contains(strings.ToLower(r.AccountType), needle) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if q.Ascending {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := int(q.Skip())
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *Memory) EnsureIndexes(context.Context) error {
	return nil
}
