// Package observable holds the change-notification contracts the binding
// runtime consumes: property-changed objects, invocable commands, and
// observable sequences.
package observable

// PropertyChanged names the property whose value changed. An empty Name means
// every property should be considered stale.
type PropertyChanged struct {
	Name string
}

// All reports whether the notification covers every property.
func (p PropertyChanged) All() bool {
	return p.Name == ""
}

// Affects reports whether a listener interested in name should refresh.
func (p PropertyChanged) Affects(name string) bool {
	return p.All() || p.Name == name
}

// Object is anything that can tell listeners a named property changed.
type Object interface {
	SubscribePropertyChanged(fn func(PropertyChanged)) (unsubscribe func())
}

// Notifier is an embeddable Object implementation. Listeners may be added
// and removed from any goroutine; they are invoked on the notifying goroutine
// without the internal lock held.
type Notifier struct {
	listeners Listeners[func(PropertyChanged)]
}

var _ Object = (*Notifier)(nil)

// SubscribePropertyChanged implements Object.
func (n *Notifier) SubscribePropertyChanged(fn func(PropertyChanged)) func() {
	return n.listeners.Add(fn)
}

// Notify tells listeners that name changed.
func (n *Notifier) Notify(name string) {
	n.dispatch(PropertyChanged{Name: name})
}

// NotifyAll tells listeners that every property may have changed.
func (n *Notifier) NotifyAll() {
	n.dispatch(PropertyChanged{})
}

// Listeners returns the number of live subscriptions.
func (n *Notifier) Listeners() int {
	return n.listeners.Len()
}

func (n *Notifier) dispatch(evt PropertyChanged) {
	for _, fn := range n.listeners.Snapshot() {
		fn(evt)
	}
}
