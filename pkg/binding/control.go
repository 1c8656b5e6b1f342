package binding

// The interfaces below are implemented by the host UI layer. Every method is
// called on the UI goroutine, and controls fire their callbacks on it too.
// Subscription methods return a function that removes the callback.

// Control can be enabled and disabled.
type Control interface {
	Enabled() bool
	SetEnabled(enabled bool)
}

// Display shows a text value.
type Display interface {
	Text() string
	SetText(text string)
}

// TextControl is an editable text field. Selection offsets count runes.
type TextControl interface {
	Control
	Display
	Selection() (start, end int)
	SetSelection(start, end int)
	OnInput(fn func(text string)) (unsubscribe func())
}

// ToggleControl is a check box style control.
type ToggleControl interface {
	Control
	Checked() bool
	SetChecked(checked bool)
	OnToggle(fn func(checked bool)) (unsubscribe func())
}

// ChoiceControl presents a list of options through an Adapter and tracks a
// selected position. Select must not be treated as user input by the host;
// bindings guard against hosts that echo it through OnSelect anyway.
type ChoiceControl interface {
	Control
	Adapter() Adapter
	SetAdapter(adapter Adapter)
	// Refresh re-reads the current adapter after it was patched in place.
	Refresh()
	SelectedIndex() int
	Select(position int)
	OnSelect(fn func(position int)) (unsubscribe func())
}

// Activator is a control that can be activated, e.g. a button.
type Activator interface {
	Control
	OnActivate(fn func()) (unsubscribe func())
}
