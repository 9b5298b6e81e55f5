package session

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "blogctl:session:"

// RedisBackend keeps the session in a hash. Both fields are written by one HSET.
type RedisBackend struct {
	cli *redis.Client
	key string
}

func NewRedisBackend(cli *redis.Client, scope string) *RedisBackend {
	return &RedisBackend{cli: cli, key: redisKeyPrefix + scope}
}

func (r *RedisBackend) Load(ctx context.Context) (Session, error) {
	fields, err := r.cli.HGetAll(ctx, r.key).Result()
	if err != nil {
		return Session{}, err
	}
	return Session{Token: fields["token"], Username: fields["username"]}, nil
}

func (r *RedisBackend) Save(ctx context.Context, s Session) error {
	return r.cli.HSet(ctx, r.key, "token", s.Token, "username", s.Username).Err()
}

func (r *RedisBackend) Delete(ctx context.Context) error {
	return r.cli.Del(ctx, r.key).Err()
}
