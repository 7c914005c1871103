// Package repotest provides an in-memory AccountTypeRepository for tests.
package repotest

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tg-checkin-backend/internal/common/pagination"
	"tg-checkin-backend/internal/features/accounttype/models"
	"tg-checkin-backend/internal/features/accounttype/repository"
)

type Memory struct {
	mu    sync.Mutex
	rows  []models.AccountType
	clock time.Time

	// Calls counts invocations per method name.
	Calls map[string]int
}

func New(labels ...string) *Memory {
	m := &Memory{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Calls: map[string]int{}}
	for _, l := range labels {
		now := m.tick()
		m.rows = append(m.rows, models.AccountType{ID: primitive.NewObjectID(), Type: l, CreatedAt: now, UpdatedAt: now})
	}
	return m
}

var _ repository.AccountTypeRepository = (*Memory)(nil)

func (m *Memory) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *Memory) Rows() []models.AccountType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AccountType, len(m.rows))
	copy(out, m.rows)
	return out
}

func (m *Memory) Create(_ context.Context, t *models.AccountType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["Create"]++

	for _, r := range m.rows {
		if r.Type == t.Type {
			return repository.ErrAlreadyExists
		}
	}
	now := m.tick()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = now
	m.rows = append(m.rows, *t)
	return nil
}

func (m *Memory) find(match func(models.AccountType) bool) (*models.AccountType, error) {
	for _, r := range m.rows {
		if match(r) {
			t := r
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Memory) GetByID(_ context.Context, id primitive.ObjectID) (*models.AccountType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["GetByID"]++
	return m.find(func(t models.AccountType) bool { return t.ID == id })
}

func (m *Memory) GetByType(_ context.Context, label string) (*models.AccountType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["GetByType"]++
	return m.find(func(t models.AccountType) bool { return t.Type == label })
}

func (m *Memory) GetByPassword(_ context.Context, password string) (*models.AccountType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["GetByPassword"]++
	return m.find(func(t models.AccountType) bool { return t.Password != nil && *t.Password == password })
}

func (m *Memory) Update(_ context.Context, id primitive.ObjectID, label string, password *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["Update"]++

	idx := -1
	for i, r := range m.rows {
		if r.ID == id {
			idx = i
		} else if r.Type == label {
			return repository.ErrAlreadyExists
		}
	}
	if idx < 0 {
		return repository.ErrNotFound
	}
	m.rows[idx].Type = label
	if password != nil {
		p := *password
		m.rows[idx].Password = &p
	}
	m.rows[idx].UpdatedAt = m.tick()
	return nil
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

// List matches search against the label and keeps insertion order.
func (m *Memory) List(_ context.Context, q pagination.Query) ([]models.AccountType, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["List"]++

	needle := strings.ToLower(q.Search)
	var matched []models.AccountType
	for _, r := range m.rows {
		if needle == "" || strings.Contains(strings.ToLower(r.Type), needle) {
			matched = append(matched, r)
		}
	}

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

func (m *Memory) Labels(context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["Labels"]++

	labels := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		labels = append(labels, r.Type)
	}
	return labels, nil
}

func (m *Memory) All(context.Context) ([]models.AccountType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["All"]++

	out := make([]models.AccountType, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *Memory) EnsureIndexes(context.Context) error {
	return nil
}
