package binding

// Adapter is what a choice control renders.
type Adapter interface {
	Len() int
	Label(i int) string
}

// AdapterFactory builds an adapter for a fresh items snapshot. The control is
// passed as the render context.
type AdapterFactory[T any] func(ctl ChoiceControl, items []T) Adapter

// StringAdapter is the default adapter: one display string per item. It is
// patched in place when a live items source changes so the control keeps its
// scroll position.
type StringAdapter struct {
	labels []string
}

var _ Adapter = (*StringAdapter)(nil)

// NewStringAdapter copies labels into a new adapter.
func NewStringAdapter(labels []string) *StringAdapter {
	a := &StringAdapter{}
	a.Reset(labels)
	return a
}

// Len implements Adapter.
func (a *StringAdapter) Len() int {
	return len(a.labels)
}

// Label implements Adapter.
func (a *StringAdapter) Label(i int) string {
	if i < 0 || i >= len(a.labels) {
		return ""
	}
	return a.labels[i]
}

// Labels returns a copy of all labels.
func (a *StringAdapter) Labels() []string {
	return append([]string(nil), a.labels...)
}

// Reset replaces every label.
func (a *StringAdapter) Reset(labels []string) {
	a.labels = append(a.labels[:0:0], labels...)
}

// Insert adds a label at i, clamped to bounds.
func (a *StringAdapter) Insert(i int, label string) {
	if i < 0 {
		i = 0
	}
	if i > len(a.labels) {
		i = len(a.labels)
	}
	a.labels = append(a.labels, "")
	copy(a.labels[i+1:], a.labels[i:])
	a.labels[i] = label
}

// RemoveAt drops the label at i.
func (a *StringAdapter) RemoveAt(i int) {
	if i < 0 || i >= len(a.labels) {
		return
	}
	a.labels = append(a.labels[:i], a.labels[i+1:]...)
}

// SetLabel replaces the label at i.
func (a *StringAdapter) SetLabel(i int, label string) {
	if i < 0 || i >= len(a.labels) {
		return
	}
	a.labels[i] = label
}
