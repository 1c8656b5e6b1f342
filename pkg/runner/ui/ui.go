package ui

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"tableflip.dev/ledger/pkg/store"
	teaui "tableflip.dev/ledger/pkg/tui/app"
)

// UI runs the interactive ledger screen until the user quits.
type UI struct {
	Persistence store.Persistence
	Config      store.Config
	Log         zerolog.Logger
}

func (d *UI) Do(ctx context.Context) error {
	if d.Persistence == nil {
		return errors.New("can not open ui, no persistence")
	}
	opts := teaui.Options{
		PageSize: store.DefaultPageSize,
		Debounce: store.DefaultDebounce,
		Log:      d.Log,
	}
	if d.Config != nil {
		opts.PageSize = d.Config.PageSize()
		opts.Debounce = d.Config.Debounce()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d.Log.Info().Int("page_size", opts.PageSize).Dur("debounce", opts.Debounce).Msg("starting ui")
	return teaui.Run(ctx, d.Persistence, opts)
}
