package users

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository mantém os usuários em um map protegido por RWMutex. É o
// backend do modo local sem dependências e dos testes do handler.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]User
}

// NewMemoryRepository cria um repositório vazio, opcionalmente semeado.
func NewMemoryRepository(seed ...User) *MemoryRepository {
	r := &MemoryRepository{items: make(map[string]User, len(seed))}
	for _, u := range seed {
		r.items[u.ID] = u
	}
	return r
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) Put(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[user.ID] = user
	return nil
}

// Update cria o registro quando ele não existe, como o UpdateItem do DynamoDB.
func (r *MemoryRepository) Update(_ context.Context, id string, patch Patch) error {
	if patch.IsEmpty() {
		return errEmptyPatch
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[id]
	if !ok {
		u = User{ID: id}
	}
	u.Apply(patch)
	r.items[id] = u
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// Scan devolve os usuários ordenados por id para manter a saída estável.
func (r *MemoryRepository) Scan(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
