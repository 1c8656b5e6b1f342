package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog"

	"tableflip.dev/ledger/pkg/transaction"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("store: transaction not found")

// Persistence defines the persistence contract for transactions.
type Persistence interface {
	List(ctx context.Context) []*transaction.Transaction
	Get(id uuid.UUID) (*transaction.Transaction, error)
	Store(t *transaction.Transaction) error
	Delete(t *transaction.Transaction) error
	Categories(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Option customises Load.
type Option func(*persistence)

// WithLogger sets the logger used for unreadable records and watcher
// problems.
func WithLogger(log zerolog.Logger) Option {
	return func(p *persistence) {
		p.log = log
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	p := &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      zerolog.Logger
}

func (p *persistence) read(key string) (*transaction.Transaction, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	t := &transaction.Transaction{}
	if err := json.Unmarshal(val, t); err != nil {
		return nil, err
	}
	if t.ID == uuid.Nil {
		id, err := uuid.Parse(keyToPathTransform(key).FileName)
		if err != nil {
			return nil, fmt.Errorf("record has no id: %w", err)
		}
		t.ID = id
	}
	return t, nil
}

func (p *persistence) List(ctx context.Context) []*transaction.Transaction {
	all := make([]*transaction.Transaction, 0)
	for key := range p.d.Keys(ctx.Done()) {
		t, err := p.read(key)
		if err != nil {
			p.log.Warn().Err(err).Str("key", key).Msg("skipping unreadable transaction")
			continue
		}
		all = append(all, t)
	}
	transaction.Sort(all)
	return all
}

func (p *persistence) Get(id uuid.UUID) (*transaction.Transaction, error) {
	key := toKey(id)
	if !p.d.Has(key) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t, err := p.read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", id, err)
	}
	return t, nil
}

func (p *persistence) Store(t *transaction.Transaction) error {
	if t != nil && t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", t.ID, err)
	}
	if err := p.d.Write(toKey(t.ID), data); err != nil {
		return fmt.Errorf("store: write %s: %w", t.ID, err)
	}
	return nil
}

func (p *persistence) Delete(t *transaction.Transaction) error {
	if t == nil || t.ID == uuid.Nil {
		return errors.New("store: transaction id required")
	}
	if err := p.d.Erase(toKey(t.ID)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, t.ID)
		}
		return fmt.Errorf("store: erase %s: %w", t.ID, err)
	}
	return nil
}

func (p *persistence) Categories(ctx context.Context) []string {
	return transaction.Categories(p.List(ctx))
}

// Keys are the transaction id; records are sharded into directories by the
// first two characters of the id.
func keyToPathTransform(s string) *diskv.PathKey {
	shard := "00"
	if len(s) >= 2 {
		shard = s[:2]
	}
	return &diskv.PathKey{
		Path:     []string{shard},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}

func toKey(id uuid.UUID) string {
	return strings.ToLower(id.String())
}
