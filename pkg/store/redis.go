package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/template"
)

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // key namespace, defaults to "recipecard"
}

// RedisStore keeps each template as a JSON string under
// <prefix>:template:<id> and tracks ids in the set <prefix>:templates.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect to redis at %s", opts.Addr)
	}
	return NewRedisStoreWithClient(client, opts.Prefix), nil
}

// NewRedisStoreWithClient wraps an existing client. The store takes ownership
// and closes it on Close.
func NewRedisStoreWithClient(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "recipecard"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func templateKey(prefix, id string) string { return prefix + ":template:" + id }
func indexKey(prefix string) string        { return prefix + ":templates" }

// maxTxAttempts bounds how often a watched read-modify-write is retried when
// another client changes the template in between.
const maxTxAttempts = 3

func (s *RedisStore) get(ctx context.Context, id string) (template.Template, error) {
	return s.getWith(ctx, s.client, id)
}

func (s *RedisStore) getWith(ctx context.Context, c redis.Cmdable, id string) (template.Template, error) {
	data, err := c.Get(ctx, templateKey(s.prefix, id)).Bytes()
	if err == redis.Nil {
		return template.Template{}, notFound(id)
	}
	if err != nil {
		return template.Template{}, errors.Wrap(errors.ErrCodeUnavailable, err, "get template %s", id)
	}
	var t template.Template
	if err := json.Unmarshal(data, &t); err != nil {
		return template.Template{}, errors.Wrap(errors.ErrCodeInternal, err, "parse template %s", id)
	}
	return t, nil
}

func (s *RedisStore) Create(ctx context.Context, t template.Template) error {
	if err := template.Validate(t); err != nil {
		return invalid(err)
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}

	ok, err := s.client.SetNX(ctx, templateKey(s.prefix, t.ID), data, 0).Result()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "create template %s", t.ID)
	}
	if !ok {
		return conflict(t.ID)
	}
	if err := s.client.SAdd(ctx, indexKey(s.prefix), t.ID).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "index template %s", t.ID)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (template.Template, error) {
	return s.get(ctx, id)
}

// Update and Delete WATCH the template key so the stored default flag they
// check cannot change before their MULTI/EXEC runs.
func (s *RedisStore) Update(ctx context.Context, t template.Template) error {
	if err := template.Validate(t); err != nil {
		return invalid(err)
	}
	key := templateKey(s.prefix, t.ID)
	return s.watch(ctx, key, "update template "+t.ID, func(tx *redis.Tx) error {
		stored, err := s.getWith(ctx, tx, t.ID)
		if err != nil {
			return err
		}
		data, err := json.Marshal(prepareUpdate(stored, t))
		if err != nil {
			return fmt.Errorf("marshal template: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	})
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	key := templateKey(s.prefix, id)
	return s.watch(ctx, key, "delete template "+id, func(tx *redis.Tx) error {
		t, err := s.getWith(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := checkDelete(t); err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.SRem(ctx, indexKey(s.prefix), id)
			return nil
		})
		return err
	})
}

// watch runs fn in a WATCH on key, retrying when the transaction is aborted
// by a concurrent write. Coded errors from fn are returned as they are.
func (s *RedisStore) watch(ctx context.Context, key, op string, fn func(*redis.Tx) error) error {
	for range maxTxAttempts {
		err := s.client.Watch(ctx, fn, key)
		switch {
		case err == nil:
			return nil
		case err == redis.TxFailedErr:
			continue
		case errors.GetCode(err) != "":
			return err
		default:
			return errors.Wrap(errors.ErrCodeUnavailable, err, "%s", op)
		}
	}
	return errors.New(errors.ErrCodeConflict, "%s: template changed concurrently, try again", op)
}

// List skips ids whose value has disappeared or cannot be parsed.
func (s *RedisStore) List(ctx context.Context) ([]template.Template, error) {
	ids, err := s.client.SMembers(ctx, indexKey(s.prefix)).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "list templates")
	}
	if len(ids) == 0 {
		return []template.Template{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = templateKey(s.prefix, id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "list templates")
	}

	out := make([]template.Template, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var t template.Template
		if err := json.Unmarshal([]byte(str), &t); err != nil {
			continue
		}
		out = append(out, t)
	}
	sortTemplates(out)
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
