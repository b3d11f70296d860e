package app

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/hero-data-service/internal/config"
	"github.com/samvad-hq/hero-data-service/internal/domain"
)

const seedYAML = `heroes:
  - id: 12
    name: Dr. Nice
  - id: 13
    name: Bombasto
  - id: 14
    name: Black Panther
`

func startServer(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "heroes.yaml")
	if err := os.WriteFile(seedPath, []byte(seedYAML), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	cfg := &config.Config{
		AppName:     "hero-data-service",
		APIBaseURL:  "http://" + ln.Addr().String(),
		APITimeout:  5 * time.Second,
		StorageType: "bbolt",
		BBoltPath:   filepath.Join(dir, "heroes.db"),
		SeedFile:    seedPath,
	}

	srv, err := NewServer(cfg, nil)
	if err != nil {
		ln.Close()
		t.Fatalf("NewServer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Serve: %v", err)
		}
	})
	return cfg
}

func TestClientAgainstMockServer(t *testing.T) {
	cfg := startServer(t)

	client, err := NewClient(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	svc := client.Heroes

	list := svc.ListHeroes(ctx)
	if len(list) != 3 {
		t.Fatalf("expected 3 seeded heroes, got %+v", list)
	}

	found := svc.SearchHeroes(ctx, "panther")
	if len(found) != 1 || found[0].ID != 14 {
		t.Fatalf("unexpected search result %+v", found)
	}

	added := svc.AddHero(ctx, domain.Hero{Name: "Magneta"})
	if added == nil || added.ID != 15 || added.Name != "Magneta" {
		t.Fatalf("unexpected created hero %+v", added)
	}

	if ack := svc.UpdateHero(ctx, domain.Hero{ID: 15, Name: "Magneta II"}); ack == nil || ack.StatusCode != 204 {
		t.Fatalf("unexpected update ack %+v", ack)
	}
	if got := svc.GetHero(ctx, 15); got == nil || got.Name != "Magneta II" {
		t.Fatalf("update not visible: %+v", got)
	}

	deleted := svc.DeleteHero(ctx, domain.ID(15))
	if deleted == nil || deleted.ID != 15 {
		t.Fatalf("unexpected delete result %+v", deleted)
	}
	if got := svc.GetHero(ctx, 15); got != nil {
		t.Fatalf("expected nil after delete, got %+v", got)
	}

	msgs := client.Messages.Messages()
	last := msgs[len(msgs)-1]
	if !strings.HasPrefix(last, "HeroDataService: getHero id=15 failed: ") || !strings.Contains(last, "404") {
		t.Fatalf("unexpected last message %q", last)
	}
}

func TestSeedFileMissingStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		StorageType: "bbolt",
		BBoltPath:   filepath.Join(dir, "heroes.db"),
		SeedFile:    filepath.Join(dir, "missing.yaml"),
	}

	srv, err := NewServer(cfg, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	defer srv.closeStore()

	list, err := srv.store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty store, got %+v", list)
	}
}

func TestNewClientRejectsBadSinksFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sinks.yaml")
	if err := os.WriteFile(path, []byte("sinks:\n  - id: hook\n    type: http\n"), 0o600); err != nil {
		t.Fatalf("write sinks: %v", err)
	}

	_, err := NewClient(context.Background(), &config.Config{APITimeout: time.Second, SinksFile: path}, nil)
	if err == nil || !strings.Contains(err.Error(), "load sinks registry") {
		t.Fatalf("expected sinks registry error, got %v", err)
	}
}
