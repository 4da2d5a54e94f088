package users

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisRepository_KeyPrefix(t *testing.T) {
	repo := NewRedisRepository(unreachableRedis(t), "")
	assert.Equal(t, "users:abc", repo.key("abc"))

	repo = NewRedisRepository(unreachableRedis(t), "tenant:users:")
	assert.Equal(t, "tenant:users:abc", repo.key("abc"))
}

func TestRedisRepository_ConnectionErrorIsNotNotFound(t *testing.T) {
	repo := NewRedisRepository(unreachableRedis(t), "")

	_, err := repo.Get(context.Background(), "abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = repo.Scan(context.Background())
	assert.Error(t, err)
}

func TestRedisRepository_UpdateEmptyPatch(t *testing.T) {
	repo := NewRedisRepository(unreachableRedis(t), "")
	assert.ErrorIs(t, repo.Update(context.Background(), "abc", Patch{}), errEmptyPatch)
}

func TestUserHash(t *testing.T) {
	h := userHash(User{ID: "abc", Lastname: "Doe", PhoneNo: "5551234567"})

	assert.Equal(t, "abc", h["id"])
	assert.Equal(t, "Doe", h["lastname"])
	assert.Equal(t, "5551234567", h["phone_no"])
	assert.Len(t, h, 7)
}

func TestPatchHash_OnlyTouched(t *testing.T) {
	var p Patch
	p.Set(FieldAddress, "Main St")

	assert.Equal(t, map[string]interface{}{"address": "Main St"}, patchHash(p))
}
