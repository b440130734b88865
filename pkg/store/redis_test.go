package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/template"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "rc")
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	n, err := EnsureDefaults(ctx, s)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(template.Sizes()) {
		t.Fatalf("EnsureDefaults() = %d", n)
	}

	tmpl := template.AddSection(template.New("Weeknight", template.MustSize(template.SizeA5)), template.SectionSteps)
	if err := s.Create(ctx, tmpl); err != nil {
		t.Fatal(err)
	}
	if err := s.Create(ctx, tmpl); !errors.Is(err, errors.ErrCodeConflict) {
		t.Errorf("second Create() = %v, want CONFLICT", err)
	}

	renamed := template.Rename(tmpl, "Sunday")
	renamed.IsDefault = true
	if err := s.Update(ctx, renamed); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, tmpl.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Sunday" || got.IsDefault {
		t.Errorf("Get() after Update = %s default=%v", got.Name, got.IsDefault)
	}

	ts, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ts) != len(template.Sizes())+1 || !ts[0].IsDefault {
		t.Errorf("List() = %d templates, first default=%v", len(ts), ts[0].IsDefault)
	}

	if err := s.Delete(ctx, tmpl.ID); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(templateKey("rc", tmpl.ID)) {
		t.Error("template key left behind")
	}
	if ok, _ := mr.SIsMember(indexKey("rc"), tmpl.ID); ok {
		t.Error("template id left in the index")
	}
	if err := s.Delete(ctx, tmpl.ID); !errors.IsNotFound(err) {
		t.Errorf("Delete() of missing template = %v", err)
	}
	if err := s.Update(ctx, tmpl); !errors.IsNotFound(err) {
		t.Errorf("Update() of missing template = %v", err)
	}
}

func TestRedisStoreDeleteDefault(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	if _, err := EnsureDefaults(ctx, s); err != nil {
		t.Fatal(err)
	}
	id := template.Defaults()[0].ID
	before, _ := mr.Get(templateKey("rc", id))

	if err := s.Delete(ctx, id); !errors.Is(err, errors.ErrCodePermissionDenied) {
		t.Fatalf("Delete(default) = %v, want PERMISSION_DENIED", err)
	}
	after, err := mr.Get(templateKey("rc", id))
	if err != nil || after != before {
		t.Errorf("default template changed by refused delete")
	}
	if ok, _ := mr.SIsMember(indexKey("rc"), id); !ok {
		t.Error("default template dropped from the index")
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	mr.Close()

	if err := s.Delete(ctx, "gone"); !errors.Is(err, errors.ErrCodeUnavailable) {
		t.Errorf("Delete() with redis down = %v, want UNAVAILABLE", err)
	}
	if _, err := s.Get(ctx, "gone"); !errors.Is(err, errors.ErrCodeUnavailable) {
		t.Errorf("Get() with redis down = %v, want UNAVAILABLE", err)
	}
}
