package binding

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"tableflip.dev/ledger/pkg/observable"
	"tableflip.dev/ledger/pkg/scheduler"
)

func categoryAcc() Accessor[*testVM, string] {
	return prop("Category", func(vm *testVM) *string { return &vm.Category })
}

func tagsItems(vm *testVM) observable.Sequence[string] {
	return observable.Slice[string](vm.Tags)
}

func optionsItems(vm *testVM) observable.Sequence[string] {
	return vm.Options
}

func mustSelector(t *testing.T, vm *testVM, ctl ChoiceControl, items func(*testVM) observable.Sequence[string], opts ...Option) *SelectorBinding[*testVM, string] {
	t.Helper()
	b, err := NewSelector(vm, ctl, items, categoryAcc(), scheduler.NewManual(), opts...)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	return b
}

func TestSelectorPopulatesAndSelects(t *testing.T) {
	vm := newTestVM()
	vm.Tags = []string{"Food", "Rent", "Travel"}
	vm.Category = "Rent"
	ctl := newFakeChoice()
	b := mustSelector(t, vm, ctl, tagsItems, WithMode(TwoWay), WithItemsProperty("Tags"))
	b.Apply()

	if got := strings.Join(ctl.labels(), ","); got != "Food,Rent,Travel" {
		t.Fatalf("unexpected labels %q", got)
	}
	if ctl.SelectedIndex() != 1 {
		t.Fatalf("expected Rent selected, got %d", ctl.SelectedIndex())
	}
	if vm.writes["Category"] != 0 {
		t.Fatalf("programmatic selection wrote to the view-model")
	}
}

func TestSelectorProgrammaticSelectionNeverWrites(t *testing.T) {
	vm := newTestVM()
	vm.Tags = []string{"Food", "Rent", "Travel"}
	vm.Category = "Food"
	ctl := newFakeChoice()
	b := mustSelector(t, vm, ctl, tagsItems, WithMode(TwoWay))
	b.Apply()

	vm.Category = "Travel"
	vm.Notify("Category")
	if ctl.SelectedIndex() != 2 {
		t.Fatalf("expected Travel selected, got %d", ctl.SelectedIndex())
	}
	if vm.writes["Category"] != 0 {
		t.Fatalf("echoed selection re-entered the setter %d times", vm.writes["Category"])
	}
}

func TestSelectorInterleavedUpdatesOnlyWriteUserChoices(t *testing.T) {
	vm := newTestVM()
	vm.Tags = []string{"a", "b", "c", "d", "e"}
	ctl := newFakeChoice()
	b := mustSelector(t, vm, ctl, tagsItems, WithMode(TwoWay))
	b.Apply()

	rng := rand.New(rand.NewSource(7))
	userWrites := 0
	for i := 0; i < 200; i++ {
		pos := rng.Intn(len(vm.Tags))
		if rng.Intn(2) == 0 {
			vm.Category = vm.Tags[pos]
			vm.Notify("Category")
		} else {
			ctl.Pick(pos)
			userWrites++
		}
		if vm.writes["Category"] != userWrites {
			t.Fatalf("step %d: expected %d writes, got %d", i, userWrites, vm.writes["Category"])
		}
		if ctl.SelectedIndex() != pos {
			t.Fatalf("step %d: expected position %d, got %d", i, pos, ctl.SelectedIndex())
		}
	}
}

func TestSelectorUserSelectionWritesSnapshotItem(t *testing.T) {
	vm := newTestVM()
	vm.Tags = []string{"Food", "Rent"}
	ctl := newFakeChoice()
	b := mustSelector(t, vm, ctl, tagsItems, WithMode(TwoWay))
	b.Apply()

	// Mutating the live slice must not affect the snapshot the binding uses.
	vm.Tags[1] = "Mutated"
	ctl.Pick(1)
	if vm.Category != "Rent" {
		t.Fatalf("expected snapshot item Rent, got %q", vm.Category)
	}

	writes := vm.writes["Category"]
	ctl.Pick(5)
	ctl.Pick(-1)
	if vm.writes["Category"] != writes {
		t.Fatalf("out of range positions must be ignored")
	}
}

func TestSelectorMissingValueLeavesSelection(t *testing.T) {
	vm := newTestVM()
	vm.Tags = []string{"Food", "Rent"}
	vm.Category = "Rent"
	ctl := newFakeChoice()
	b := mustSelector(t, vm, ctl, tagsItems, WithMode(TwoWay))
	b.Apply()

	vm.Category = "Unknown"
	vm.Notify("Category")
	if ctl.SelectedIndex() != 1 {
		t.Fatalf("missing value should keep the previous selection, got %d", ctl.SelectedIndex())
	}
}

func TestSelectorOneWayIgnoresUserSelection(t *testing.T) {
	vm := newTestVM()
	vm.Tags = []string{"Food", "Rent"}
	vm.Category = "Food"
	ctl := newFakeChoice()
	b := mustSelector(t, vm, ctl, tagsItems)
	b.Apply()

	ctl.Pick(1)
	if vm.Category != "Food" || vm.writes["Category"] != 0 {
		t.Fatalf("one-way selector wrote %q", vm.Category)
	}
}

func TestSelectorSourceModeDoesNotPushSelection(t *testing.T) {
	vm := newTestVM()
	vm.Tags = []string{"Food", "Rent"}
	vm.Category = "Rent"
	ctl := newFakeChoice()
	b := mustSelector(t, vm, ctl, tagsItems, WithMode(Source))
	b.Apply()

	if ctl.SelectedIndex() != -1 {
		t.Fatalf("source selector pushed selection %d", ctl.SelectedIndex())
	}
	if len(ctl.labels()) != 2 {
		t.Fatalf("items must still populate in source mode")
	}
	ctl.Pick(0)
	if vm.Category != "Food" {
		t.Fatalf("expected write from control, got %q", vm.Category)
	}
}

func TestSelectorPatchesDefaultAdapterFromLiveSource(t *testing.T) {
	vm := newTestVM()
	list := observable.NewList("Food", "Rent")
	vm.Options = list
	vm.Category = "Rent"
	ctl := newFakeChoice()
	b := mustSelector(t, vm, ctl, optionsItems, WithMode(TwoWay))
	b.Apply()
	adapter := ctl.Adapter()

	list.Insert(0, "Bills")
	if got := strings.Join(ctl.labels(), ","); got != "Bills,Food,Rent" {
		t.Fatalf("unexpected labels after insert %q", got)
	}
	if ctl.SelectedIndex() != 2 {
		t.Fatalf("selection should follow Rent to 2, got %d", ctl.SelectedIndex())
	}
	list.Replace(1, "Groceries")
	list.RemoveAt(0)
	if got := strings.Join(ctl.labels(), ","); got != "Groceries,Rent" {
		t.Fatalf("unexpected labels after patching %q", got)
	}
	list.Set([]string{"Travel"})
	if got := strings.Join(ctl.labels(), ","); got != "Travel" {
		t.Fatalf("unexpected labels after reset %q", got)
	}

	if ctl.Adapter() != adapter || ctl.setAdapters != 1 {
		t.Fatalf("default adapter should be patched in place, set %d times", ctl.setAdapters)
	}
	if ctl.refreshes != 4 {
		t.Fatalf("expected 4 refreshes, got %d", ctl.refreshes)
	}
	if vm.writes["Category"] != 0 {
		t.Fatalf("source changes wrote to the view-model")
	}
}

func TestSelectorReattachesWhenSourceIsReplaced(t *testing.T) {
	vm := newTestVM()
	first := observable.NewList("a")
	second := observable.NewList("x", "y")
	vm.Options = first
	ctl := newFakeChoice()
	b := mustSelector(t, vm, ctl, optionsItems, WithItemsProperty("Options"))
	b.Apply()

	vm.Options = second
	vm.Notify("Options")
	if got := strings.Join(ctl.labels(), ","); got != "x,y" {
		t.Fatalf("unexpected labels %q", got)
	}

	first.Add("stale")
	if got := strings.Join(ctl.labels(), ","); got != "x,y" {
		t.Fatalf("old source still attached: %q", got)
	}
	second.Add("z")
	if got := strings.Join(ctl.labels(), ","); got != "x,y,z" {
		t.Fatalf("new source not attached: %q", got)
	}

	b.Dispose()
	second.Add("after")
	if got := strings.Join(ctl.labels(), ","); got != "x,y,z" {
		t.Fatalf("disposed selector followed its source: %q", got)
	}
}

func TestSelectorFactoryRebuildsAdapter(t *testing.T) {
	vm := newTestVM()
	list := observable.NewList("Food")
	vm.Options = list
	ctl := newFakeChoice()
	calls := 0
	factory := AdapterFactory[string](func(c ChoiceControl, items []string) Adapter {
		calls++
		if c != ctl {
			t.Errorf("factory should receive the control as render context")
		}
		upper := make([]string, len(items))
		for i, item := range items {
			upper[i] = strings.ToUpper(item)
		}
		return NewStringAdapter(upper)
	})
	b := mustSelector(t, vm, ctl, optionsItems, WithAdapterFactory(factory))
	b.Apply()
	list.Add("Rent")

	if calls != 2 || ctl.setAdapters != 2 {
		t.Fatalf("expected a rebuild per refresh, calls=%d set=%d", calls, ctl.setAdapters)
	}
	if got := strings.Join(ctl.labels(), ","); got != "FOOD,RENT" {
		t.Fatalf("unexpected labels %q", got)
	}
}

func TestSelectorDisplayAndEqualOptions(t *testing.T) {
	vm := newTestVM()
	vm.Tags = []string{"food", "rent"}
	vm.Category = "RENT"
	ctl := newFakeChoice()
	b := mustSelector(t, vm, ctl, tagsItems,
		WithDisplay(func(s string) string { return "#" + s }),
		WithEqual(strings.EqualFold))
	b.Apply()

	if got := strings.Join(ctl.labels(), ","); got != "#food,#rent" {
		t.Fatalf("unexpected labels %q", got)
	}
	if ctl.SelectedIndex() != 1 {
		t.Fatalf("custom equality should match RENT, got %d", ctl.SelectedIndex())
	}
}

func TestSelectorConfigErrors(t *testing.T) {
	vm := newTestVM()
	sched := scheduler.NewManual()
	ro := readOnly("Category", func(vm *testVM) *string { return &vm.Category })
	if _, err := NewSelector(vm, newFakeChoice(), tagsItems, ro, sched, WithMode(TwoWay)); !errors.Is(err, ErrConfiguration) {
		t.Errorf("read-only two-way: expected configuration error, got %v", err)
	}
	if _, err := NewSelector(vm, newFakeChoice(), nil, categoryAcc(), sched); !errors.Is(err, ErrConfiguration) {
		t.Errorf("nil items: expected configuration error, got %v", err)
	}
	if _, err := NewSelector(vm, newFakeChoice(), tagsItems, categoryAcc(), sched, WithDisplay(func(int) string { return "" })); !errors.Is(err, ErrConfiguration) {
		t.Errorf("mismatched display: expected configuration error, got %v", err)
	}
}
