package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKeyPrefix prefixa a chave de cada hash de usuário.
const DefaultRedisKeyPrefix = "users:"

// RedisRepository guarda cada usuário como um hash em "<prefixo><id>".
type RedisRepository struct {
	client redis.Cmdable
	prefix string
}

// NewRedisRepository cria o repositório; prefixo vazio usa DefaultRedisKeyPrefix.
func NewRedisRepository(client redis.Cmdable, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) key(id string) string {
	return r.prefix + id
}

func (r *RedisRepository) Get(ctx context.Context, id string) (*User, error) {
	return r.load(ctx, r.key(id))
}

func (r *RedisRepository) load(ctx context.Context, key string) (*User, error) {
	cmd := r.client.HGetAll(ctx, key)
	vals, err := cmd.Result()
	if err != nil {
		return nil, fmt.Errorf("redis users: get %s: %w", key, err)
	}
	if len(vals) == 0 {
		return nil, ErrNotFound
	}

	var u User
	if err := cmd.Scan(&u); err != nil {
		return nil, fmt.Errorf("redis users: decode %s: %w", key, err)
	}
	return &u, nil
}

func (r *RedisRepository) Put(ctx context.Context, user User) error {
	if err := r.client.HSet(ctx, r.key(user.ID), userHash(user)).Err(); err != nil {
		return fmt.Errorf("redis users: put %s: %w", user.ID, err)
	}
	return nil
}

// Update grava só os campos tocados. O campo id é gravado junto para que um
// update em chave inexistente produza um registro legível.
func (r *RedisRepository) Update(ctx context.Context, id string, patch Patch) error {
	fields := patchHash(patch)
	if len(fields) == 0 {
		return errEmptyPatch
	}
	fields["id"] = id

	if err := r.client.HSet(ctx, r.key(id), fields).Err(); err != nil {
		return fmt.Errorf("redis users: update %s: %w", id, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis users: delete %s: %w", id, err)
	}
	return nil
}

// Scan percorre o keyspace com SCAN MATCH até o cursor voltar a zero.
func (r *RedisRepository) Scan(ctx context.Context) ([]User, error) {
	out := make([]User, 0)

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		u, err := r.load(ctx, iter.Val())
		if errors.Is(err, ErrNotFound) {
			// removido entre o SCAN e o HGETALL
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis users: scan: %w", err)
	}
	return out, nil
}

func userHash(u User) map[string]interface{} {
	return map[string]interface{}{
		"id":       u.ID,
		"lastname": u.Lastname,
		"dob":      u.DOB,
		"address":  u.Address,
		"gender":   u.Gender,
		"email":    u.Email,
		"phone_no": u.PhoneNo,
	}
}

func patchHash(p Patch) map[string]interface{} {
	fields := make(map[string]interface{})
	for _, f := range p.Touched() {
		v, _ := p.Get(f)
		fields[string(f)] = v
	}
	return fields
}
