package election

import (
	"context"
	"errors"
	"sync"
)

type memoryStore struct {
	mu    sync.Mutex
	items map[string]string
	sets  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{items: map[string]string{}}
}

func (m *memoryStore) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *memoryStore) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	m.sets++
	return nil
}

type mockUserRepo struct {
	users []*User
	perms map[int64][]string
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByTelegramID(_ context.Context, tgID int64) (*User, error) {
	for _, u := range m.users {
		if u.TelegramID != nil && *u.TelegramID == tgID {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) HasPermission(_ context.Context, userID int64, perm string) (bool, error) {
	for _, p := range m.perms[userID] {
		if p == perm {
			return true, nil
		}
	}
	return false, nil
}

type mockGroupRepo struct {
	mu      sync.Mutex
	groups  []*Group
	assigns int
}

func (m *mockGroupRepo) GetByRef(_ context.Context, ref GroupRef) (*Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.groups {
		if g.Ref() == ref {
			c := *g
			return &c, nil
		}
	}
	return nil, nil
}

func (m *mockGroupRepo) AssignRole(_ context.Context, groupID, userID int64, role Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assigns++

	var target *Group
	for _, g := range m.groups {
		if g.ID == groupID {
			target = g
		}
	}
	if target == nil {
		return errors.New("no such group")
	}

	for _, g := range m.groups {
		if role == RoleDelegate && g.DelegateID != nil && *g.DelegateID == userID {
			g.DelegateID = nil
		}
		if role == RoleSubdelegate && g.SubdelegateID != nil && *g.SubdelegateID == userID {
			g.SubdelegateID = nil
		}
	}
	id := userID
	if role == RoleDelegate {
		target.DelegateID = &id
	} else {
		target.SubdelegateID = &id
	}
	return nil
}

func (m *mockGroupRepo) byID(id int64) *Group {
	for _, g := range m.groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func ptr(v int64) *int64 {
	return &v
}
