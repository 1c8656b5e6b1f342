package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"tableflip.dev/ledger/pkg/transaction"
)

func date(s string) time.Time {
	t, _ := time.ParseInLocation(transaction.DateLayout, s, time.Local)
	return t
}

func TestStoreListGetDelete(t *testing.T) {
	p, err := Load(StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()

	rent := transaction.New(date("2024-03-01"), "Landlord", "Rent", decimal.RequireFromString("-900"))
	food := transaction.New(date("2024-03-09"), "Grocer", "Food", decimal.RequireFromString("-12.50"))
	for _, tx := range []*transaction.Transaction{rent, food} {
		if err := p.Store(tx); err != nil {
			t.Fatalf("store: %v", err)
		}
	}

	list := p.List(ctx)
	if len(list) != 2 || list[0].ID != food.ID || list[1].ID != rent.ID {
		t.Fatalf("expected newest first, got %v", list)
	}
	if got := strings.Join(p.Categories(ctx), ","); got != "Food,Rent" {
		t.Fatalf("unexpected categories %q", got)
	}

	food.Amount = decimal.RequireFromString("-13")
	if err := p.Store(food); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := p.Get(food.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Amount.Equal(decimal.NewFromInt(-13)) || got.Payee != "Grocer" {
		t.Fatalf("unexpected record %+v", got)
	}

	if err := p.Delete(rent); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := p.Delete(rent); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := p.Get(rent.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(p.List(ctx)) != 1 {
		t.Fatalf("expected one record left")
	}
}

func TestStoreRejectsInvalid(t *testing.T) {
	p, _ := Load(StaticConfig{Path: t.TempDir()})
	bad := transaction.New(date("2024-03-01"), "", "", decimal.NewFromInt(1))
	if err := p.Store(bad); !errors.Is(err, transaction.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if err := p.Store(&transaction.Transaction{}); !errors.Is(err, transaction.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty record, got %v", err)
	}
}

func TestListSkipsUnreadable(t *testing.T) {
	base := t.TempDir()
	p, _ := Load(StaticConfig{Path: base})
	good := transaction.New(date("2024-03-01"), "Landlord", "Rent", decimal.RequireFromString("-900"))
	if err := p.Store(good); err != nil {
		t.Fatalf("store: %v", err)
	}
	junk := uuid.NewString()
	dir := filepath.Join(base, junk[:2])
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, junk), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if list := p.List(context.Background()); len(list) != 1 || list[0].ID != good.ID {
		t.Fatalf("expected only the readable record, got %v", list)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".ledger.yaml"), []byte("page_size: 40\ndebounce: 150ms\npath: "+dir+"/db\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LEDGER_CONFIG_PATH", dir)

	cfg, err := loadConfig(viper.New())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PageSize() != 40 || cfg.Debounce() != 150*time.Millisecond || cfg.BasePath() != dir+"/db" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	t.Setenv("LEDGER_PAGE_SIZE", "0")
	cfg, err = loadConfig(viper.New())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PageSize() != DefaultPageSize {
		t.Fatalf("invalid page size should fall back to %d, got %d", DefaultPageSize, cfg.PageSize())
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LEDGER_CONFIG_PATH", t.TempDir())
	cfg, err := loadConfig(viper.New())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if strings.HasPrefix(cfg.BasePath(), "~") {
		t.Fatalf("home directory not expanded: %q", cfg.BasePath())
	}
	if cfg.PageSize() != DefaultPageSize || cfg.Debounce() != DefaultDebounce {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}
