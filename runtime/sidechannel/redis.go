package sidechannel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jymfony/scriba/runtime/reflection"
)

// DefaultRedisPrefix is the default key prefix of the Redis backend.
const DefaultRedisPrefix = "scriba:class:"

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// DefaultRedisConfig returns the default Redis settings.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:   "localhost:6379",
		Prefix: DefaultRedisPrefix,
	}
}

// Redis stores class data as JSON strings under prefix+id.
type Redis struct {
	client *redis.Client
	prefix string
	opts   options
}

var _ Backend = (*Redis)(nil)

// NewRedis wraps an existing client.
func NewRedis(client *redis.Client, prefix string, opts ...Option) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix, opts: buildOptions(opts)}
}

// OpenRedis connects to the configured server and checks it responds.
func OpenRedis(ctx context.Context, cfg RedisConfig, opts ...Option) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	r := NewRedis(client, cfg.Prefix, opts...)

	pingCtx, cancel := context.WithTimeout(ctx, r.opts.timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return r, nil
}

func (r *Redis) key(id reflection.ClassID) string {
	return r.prefix + string(id)
}

// ReflectionData loads the entry for id. Lookup failures are logged and
// reported as absence.
func (r *Redis) ReflectionData(id reflection.ClassID) (*reflection.ClassData, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.timeout)
	defer cancel()

	data, err := r.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrClassNotFound) {
			r.opts.logger.Warn("reflection data lookup failed",
				zap.String("driver", "redis"),
				zap.String("class_id", id.String()),
				zap.Error(err),
			)
		}
		return nil, false
	}
	return data, true
}

// Get loads the entry for id.
func (r *Redis) Get(ctx context.Context, id reflection.ClassID) (*reflection.ClassData, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrClassNotFound, id)
		}
		return nil, err
	}
	return decodeClass(raw)
}

// Put stores the entry for id without expiry.
func (r *Redis) Put(ctx context.Context, id reflection.ClassID, data *reflection.ClassData) error {
	if data == nil {
		return fmt.Errorf("class data cannot be nil")
	}

	raw, err := encodeClass(data)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(id), raw, 0).Err()
}

// Delete removes the entry for id.
func (r *Redis) Delete(ctx context.Context, id reflection.ClassID) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

// ClassIDs scans the key space under the prefix.
func (r *Redis) ClassIDs(ctx context.Context) ([]reflection.ClassID, error) {
	ids := []reflection.ClassID{}

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, reflection.ClassID(strings.TrimPrefix(iter.Val(), r.prefix)))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
