package binding

import (
	"errors"
	"testing"

	"tableflip.dev/ledger/pkg/observable"
	"tableflip.dev/ledger/pkg/scheduler"
)

func TestCommandBindingMirrorsCanExecute(t *testing.T) {
	allowed := false
	runs := 0
	cmd := observable.NewCommand(func() { runs++ }, func() bool { return allowed })
	btn := &fakeButton{enabled: true}
	sched := scheduler.NewManual()

	b, err := NewCommand(btn, cmd, sched, WithName("save"))
	if err != nil {
		t.Fatalf("new command binding: %v", err)
	}
	if b.Property() != "save" {
		t.Fatalf("unexpected name %q", b.Property())
	}
	b.Apply()
	if btn.Enabled() {
		t.Fatalf("button should start disabled")
	}

	btn.Press()
	if runs != 0 {
		t.Fatalf("disabled command must not run")
	}

	allowed = true
	cmd.RaiseCanExecuteChanged()
	if !btn.Enabled() {
		t.Fatalf("button should follow can-execute")
	}
	btn.Press()
	if runs != 1 {
		t.Fatalf("expected one execution, got %d", runs)
	}
}

func TestCommandBindingDisposeIsSymmetric(t *testing.T) {
	runs := 0
	cmd := observable.NewCommand(func() { runs++ }, nil)
	btn := &fakeButton{}
	sched := scheduler.NewManual()
	b, err := NewCommand(btn, cmd, sched)
	if err != nil {
		t.Fatalf("new command binding: %v", err)
	}
	b.Apply()
	b.Apply()
	if btn.activate.count() != 1 {
		t.Fatalf("expected one activation handler, got %d", btn.activate.count())
	}

	b.Dispose()
	b.Dispose()
	if btn.activate.count() != 0 {
		t.Fatalf("activation handler should be released on dispose")
	}
	btn.Press()
	if runs != 0 {
		t.Fatalf("disposed binding executed the command")
	}
}

func TestCommandBindingMarshalsCanExecuteChanges(t *testing.T) {
	allowed := false
	cmd := observable.NewCommand(nil, func() bool { return allowed })
	btn := &fakeButton{}
	sched := scheduler.NewManual()
	b, _ := NewCommand(btn, cmd, sched)
	b.Apply()

	sched.OffThread = true
	allowed = true
	cmd.RaiseCanExecuteChanged()
	if btn.Enabled() {
		t.Fatalf("enabled state changed off the UI goroutine")
	}
	sched.Flush()
	if !btn.Enabled() {
		t.Fatalf("expected enabled after flush")
	}
}

func TestCommandBindingConfigErrors(t *testing.T) {
	sched := scheduler.NewManual()
	cmd := observable.NewCommand(nil, nil)
	if _, err := NewCommand(nil, cmd, sched); !errors.Is(err, ErrConfiguration) {
		t.Errorf("nil control: expected configuration error, got %v", err)
	}
	if _, err := NewCommand(&fakeButton{}, nil, sched); !errors.Is(err, ErrConfiguration) {
		t.Errorf("nil command: expected configuration error, got %v", err)
	}
}
