package binding

import (
	"github.com/rs/zerolog"

	"tableflip.dev/ledger/pkg/observable"
	"tableflip.dev/ledger/pkg/scheduler"
)

// CommandBinding wires a control's activation to a command and mirrors the
// command's eligibility onto the control's enabled state.
type CommandBinding struct {
	name  string
	ctl   Activator
	cmd   observable.Command
	sched scheduler.Scheduler
	log   zerolog.Logger

	state state
	subs  subscriptions
}

var _ Binder = (*CommandBinding)(nil)

// NewCommand binds ctl to cmd.
func NewCommand(ctl Activator, cmd observable.Command, sched scheduler.Scheduler, opts ...Option) (*CommandBinding, error) {
	o := buildOptions(opts)
	name := o.name
	if name == "" {
		name = "command"
	}
	switch {
	case ctl == nil:
		return nil, configErrorf(name, "nil control")
	case cmd == nil:
		return nil, configErrorf(name, "nil command")
	case sched == nil:
		return nil, configErrorf(name, "nil scheduler")
	}
	return &CommandBinding{
		name:  name,
		ctl:   ctl,
		cmd:   cmd,
		sched: sched,
		log:   o.log.With().Str("command", name).Logger(),
	}, nil
}

// Property implements Binder.
func (b *CommandBinding) Property() string {
	return b.name
}

// Apply sets the initial enabled state and subscribes to both the command
// and the control.
func (b *CommandBinding) Apply() {
	if b.state != unapplied {
		return
	}
	b.state = applied
	b.syncEnabled()
	b.subs.add("can-execute-changed", b.cmd.SubscribeCanExecuteChanged(func() {
		scheduler.Invoke(b.sched, func() {
			if b.state == applied {
				b.syncEnabled()
			}
		})
	}))
	b.subs.add("activate", b.ctl.OnActivate(b.activate))
}

// Dispose releases the command subscription and the activation handler.
func (b *CommandBinding) Dispose() {
	if b.state == disposed {
		return
	}
	b.state = disposed
	b.subs.releaseAll(b.log)
}

func (b *CommandBinding) activate() {
	if b.state != applied {
		return
	}
	if !b.cmd.CanExecute() {
		b.log.Debug().Msg("activation ignored, command cannot execute")
		return
	}
	b.cmd.Execute()
}

func (b *CommandBinding) syncEnabled() {
	enabled := b.cmd.CanExecute()
	if b.ctl.Enabled() != enabled {
		b.ctl.SetEnabled(enabled)
	}
}
