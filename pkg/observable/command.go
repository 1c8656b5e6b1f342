package observable

// Command is an invocable action with an eligibility state.
type Command interface {
	CanExecute() bool
	Execute()
	SubscribeCanExecuteChanged(fn func()) (unsubscribe func())
}

// RelayCommand adapts plain functions to Command.
type RelayCommand struct {
	execute    func()
	canExecute func() bool

	listeners Listeners[func()]
}

var _ Command = (*RelayCommand)(nil)

// NewCommand builds a command. A nil canExecute means always executable.
func NewCommand(execute func(), canExecute func() bool) *RelayCommand {
	return &RelayCommand{execute: execute, canExecute: canExecute}
}

// CanExecute implements Command.
func (c *RelayCommand) CanExecute() bool {
	if c.canExecute == nil {
		return true
	}
	return c.canExecute()
}

// Execute implements Command. It does not consult CanExecute; callers
// (bindings) gate on it.
func (c *RelayCommand) Execute() {
	if c.execute != nil {
		c.execute()
	}
}

// SubscribeCanExecuteChanged implements Command.
func (c *RelayCommand) SubscribeCanExecuteChanged(fn func()) func() {
	return c.listeners.Add(fn)
}

// RaiseCanExecuteChanged notifies subscribers that CanExecute may return a
// different answer.
func (c *RelayCommand) RaiseCanExecuteChanged() {
	for _, fn := range c.listeners.Snapshot() {
		fn()
	}
}
