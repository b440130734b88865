package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/recipecard/pkg/config"
)

func TestStoreSpinnerPhases(t *testing.T) {
	var buf bytes.Buffer
	s := newStoreSpinner(context.Background(), &buf, "Connecting to redis at localhost:6379...")
	s.Start()
	s.Update("Seeding default templates...")
	s.Stop()

	out := buf.String()
	for _, want := range []string{"Connecting to redis at localhost:6379...", "Seeding default templates..."} {
		if !strings.Contains(out, want) {
			t.Errorf("spinner output missing %q:\n%q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner did not clear its line: %q", out)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestStoreSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	s := newStoreSpinner(ctx, &buf, "Connecting to mongo...")
	s.Start()
	<-ctx.Done()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() = false after the context ended")
	}
}

func TestStoreSpinnerStopIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newStoreSpinner(context.Background(), &buf, "Connecting...")
	s.Stop() // never started

	s = newStoreSpinner(context.Background(), &buf, "Connecting...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestStoreSpinnerUpdateBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	s := newStoreSpinner(context.Background(), &buf, "Connecting...")
	s.Update("Seeding default templates...")
	if buf.Len() != 0 {
		t.Errorf("Update drew before Start: %q", buf.String())
	}
	s.Start()
	s.Stop()
	if !strings.Contains(buf.String(), "Seeding default templates...") {
		t.Errorf("Start did not draw the updated message: %q", buf.String())
	}
}

func TestStoreTarget(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "redis",
			cfg:  config.Config{Store: config.StoreConfig{Backend: config.BackendRedis}, Redis: config.RedisConfig{Addr: "cache:6379", Password: "hunter2"}},
			want: "redis at cache:6379",
		},
		{
			name: "mongo redacts password",
			cfg:  config.Config{Store: config.StoreConfig{Backend: config.BackendMongo}, Mongo: config.MongoConfig{URI: "mongodb://app:hunter2@db:27017"}},
			want: "mongo at mongodb://app:xxxxx@db:27017",
		},
		{
			name: "file",
			cfg:  config.Config{Store: config.StoreConfig{Backend: config.BackendFile, Dir: "/tmp/tpl"}},
			want: "file store in /tmp/tpl",
		},
		{
			name: "memory",
			cfg:  config.Config{Store: config.StoreConfig{Backend: config.BackendMemory}},
			want: "memory store",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storeTarget(&tt.cfg); got != tt.want {
				t.Errorf("storeTarget() = %q, want %q", got, tt.want)
			}
			if strings.Contains(storeTarget(&tt.cfg), "hunter2") {
				t.Error("storeTarget() leaked a password")
			}
		})
	}
}
