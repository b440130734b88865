package store

import (
	"context"
	"time"

	"github.com/matzehuels/recipecard/pkg/config"
	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/observability"
	"github.com/matzehuels/recipecard/pkg/template"
)

// Open creates the backend selected by cfg.Store.Backend, wrapped so every
// call reports to the registered observability.StoreHooks.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Store.Backend {
	case config.BackendMemory:
		s = NewMemoryStore()
	case config.BackendFile:
		s, err = NewFileStore(cfg.Store.Dir)
	case config.BackendRedis:
		s, err = NewRedisStore(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case config.BackendMongo:
		s, err = NewMongoStore(ctx, MongoOptions{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown store backend %q", cfg.Store.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(s, cfg.Store.Backend), nil
}

// Instrument wraps s so each call reports its duration and error to the
// registered store hooks under the given backend name.
func Instrument(s Store, backend string) Store {
	return &instrumented{next: s, backend: backend}
}

type instrumented struct {
	next    Store
	backend string
}

func (i *instrumented) observe(ctx context.Context, op string, start time.Time, err error) {
	observability.Store().OnStoreOp(ctx, i.backend, op, time.Since(start), err)
}

func (i *instrumented) Create(ctx context.Context, t template.Template) (err error) {
	start := time.Now()
	defer func() { i.observe(ctx, "create", start, err) }()
	return i.next.Create(ctx, t)
}

func (i *instrumented) Get(ctx context.Context, id string) (t template.Template, err error) {
	start := time.Now()
	defer func() { i.observe(ctx, "get", start, err) }()
	return i.next.Get(ctx, id)
}

func (i *instrumented) Update(ctx context.Context, t template.Template) (err error) {
	start := time.Now()
	defer func() { i.observe(ctx, "update", start, err) }()
	return i.next.Update(ctx, t)
}

func (i *instrumented) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() {
		if errors.Is(err, errors.ErrCodePermissionDenied) {
			observability.Store().OnDefaultProtected(ctx, i.backend, id)
		}
		i.observe(ctx, "delete", start, err)
	}()
	return i.next.Delete(ctx, id)
}

func (i *instrumented) List(ctx context.Context) (ts []template.Template, err error) {
	start := time.Now()
	defer func() { i.observe(ctx, "list", start, err) }()
	return i.next.List(ctx)
}

func (i *instrumented) Close() error { return i.next.Close() }
