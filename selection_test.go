package vlist

import (
	"strings"
	"testing"
)

// newTestView returns a view with scroll coalescing disabled.
func newTestView(m *Model, width, height int) *View {
	v := New().FrameInterval(0)
	v.Resize(width, height)
	v.SetModel(m)
	return v
}

func gridModel(n int) *Model {
	m := NewModel()
	m.Section("").Columns(3).Add(makeRows(nil, "g", n, 2)...)
	return m
}

func selectedID(v *View) Identity {
	it, _ := v.Selected()
	if it == nil {
		return ""
	}
	return it.ID()
}

func TestSelectionNavigation(t *testing.T) {
	t.Run("down stays in column", func(t *testing.T) {
		v := newTestView(gridModel(9), 30, 100)
		if v.SelectedIndex() != 0 {
			t.Fatalf("expected initial selection 0, got %d", v.SelectedIndex())
		}
		v.SelectDown()
		if v.SelectedIndex() != 3 {
			t.Errorf("expected 3, got %d", v.SelectedIndex())
		}
		v.SelectDown()
		if v.SelectedIndex() != 6 {
			t.Errorf("expected 6, got %d", v.SelectedIndex())
		}
		if v.SelectDown() {
			t.Error("down from the last row should fail")
		}
		if v.SelectedIndex() != 6 {
			t.Errorf("selection should not move, got %d", v.SelectedIndex())
		}
	})

	t.Run("down into a short row picks nearest left", func(t *testing.T) {
		v := newTestView(gridModel(7), 30, 100)
		v.SetSelected(5, ScrollRelative)
		v.SelectDown()
		if v.SelectedIndex() != 6 {
			t.Errorf("expected 6, got %d", v.SelectedIndex())
		}
	})

	t.Run("up stays in column", func(t *testing.T) {
		v := newTestView(gridModel(9), 30, 100)
		v.SetSelected(7, ScrollRelative)
		v.SelectUp()
		if v.SelectedIndex() != 4 {
			t.Errorf("expected 4, got %d", v.SelectedIndex())
		}
		v.SelectUp()
		if v.SelectedIndex() != 1 {
			t.Errorf("expected 1, got %d", v.SelectedIndex())
		}
		if v.SelectUp() {
			t.Error("up from the first row should fail")
		}
	})

	t.Run("left and right wrap between grid cells", func(t *testing.T) {
		v := newTestView(gridModel(6), 30, 100)
		v.SetSelected(2, ScrollRelative)
		v.SelectRight()
		if v.SelectedIndex() != 3 {
			t.Errorf("expected 3, got %d", v.SelectedIndex())
		}
		v.SelectLeft()
		v.SelectLeft()
		if v.SelectedIndex() != 1 {
			t.Errorf("expected 1, got %d", v.SelectedIndex())
		}
	})

	t.Run("left and right are blocked in lists", func(t *testing.T) {
		v := newTestView(listModel(makeRows(nil, "r", 3, 1)...), 30, 100)
		v.SetSelected(1, ScrollRelative)
		if v.SelectRight() || v.SelectLeft() {
			t.Error("horizontal moves between full-width rows should fail")
		}
		if v.SelectedIndex() != 1 {
			t.Errorf("selection moved to %d", v.SelectedIndex())
		}
	})

	t.Run("vertical moves skip headers and dividers", func(t *testing.T) {
		m := NewModel()
		m.Section("A").Header(newHeader("ha")).Add(makeRows(nil, "a", 2, 1)...)
		m.Divider(NewDivider(1, nil))
		m.Section("B").Header(newHeader("hb")).Add(makeRows(nil, "b", 2, 1)...)
		v := newTestView(m, 30, 100)

		if selectedID(v) != "a0" {
			t.Fatalf("expected a0 selected, got %q", selectedID(v))
		}
		v.SelectDown()
		v.SelectDown()
		if selectedID(v) != "b0" {
			t.Errorf("expected b0, got %q", selectedID(v))
		}
		v.SelectUp()
		if selectedID(v) != "a1" {
			t.Errorf("expected a1, got %q", selectedID(v))
		}
	})

	t.Run("select last and set by id", func(t *testing.T) {
		v := newTestView(listModel(makeRows(nil, "r", 5, 1)...), 30, 100)
		v.SelectLast()
		if selectedID(v) != "r4" {
			t.Errorf("expected r4, got %q", selectedID(v))
		}
		if !v.SetSelectedID("r2", ScrollRelative) || v.SelectedIndex() != 2 {
			t.Errorf("expected r2 at 2, got %d", v.SelectedIndex())
		}
		if v.SetSelectedID("missing", ScrollRelative) {
			t.Error("unknown identity should not select")
		}
	})

	t.Run("non-selectable entries are refused", func(t *testing.T) {
		m := NewModel()
		m.Section("A").Header(newHeader("ha")).Add(makeRows(nil, "a", 2, 1)...)
		v := newTestView(m, 30, 100)
		if v.SetSelected(0, ScrollRelative) {
			t.Error("header should not be selectable")
		}
		if v.SetSelected(99, ScrollRelative) {
			t.Error("out of range index should not be selectable")
		}
	})

	t.Run("nothing selectable", func(t *testing.T) {
		row := testRow{id: "x", class: 1, height: 1}
		v := newTestView(listModel(row), 30, 100)
		if it, i := v.Selected(); it != nil || i != -1 {
			t.Errorf("expected no selection, got %v at %d", it, i)
		}
		if v.SelectDown() || v.SelectFirst() {
			t.Error("navigation should fail without selectable entries")
		}
	})
}

func TestSelectionPolicies(t *testing.T) {
	without := func(drop ...string) *Model {
		skip := map[string]bool{}
		for _, d := range drop {
			skip[d] = true
		}
		var items []Item
		for _, it := range makeRows(nil, "r", 10, 1) {
			if !skip[string(it.ID())] {
				items = append(items, it)
			}
		}
		return listModel(items...)
	}

	t.Run("keep selection follows identity silently", func(t *testing.T) {
		v := newTestView(without(), 30, 100).Policy(KeepSelection)
		v.SetSelectedID("r5", ScrollRelative)

		events := 0
		v.OnSelectionChanged(func(next, prev Item) { events++ })
		v.SetModel(without("r0", "r1"))

		if selectedID(v) != "r5" || v.SelectedIndex() != 3 {
			t.Errorf("expected r5 at 3, got %q at %d", selectedID(v), v.SelectedIndex())
		}
		if events != 0 {
			t.Errorf("expected no selection event, got %d", events)
		}
	})

	t.Run("keep selection clamps when identity is gone", func(t *testing.T) {
		v := newTestView(without(), 30, 100).Policy(KeepSelection)
		v.SetSelectedID("r9", ScrollRelative)

		var got Item
		v.OnSelectionChanged(func(next, prev Item) { got = next })
		v.SetModel(without("r8", "r9"))

		if selectedID(v) != "r7" {
			t.Errorf("expected clamp to r7, got %q", selectedID(v))
		}
		if got == nil || got.ID() != "r7" {
			t.Errorf("expected selection event for r7, got %v", got)
		}
	})

	t.Run("keep selection without a selection stays empty", func(t *testing.T) {
		v := newTestView(without(), 30, 100).Policy(KeepSelection)
		v.SetSelected(-1, ScrollRelative)
		v.SetModel(without("r3"))
		if v.SelectedIndex() != -1 {
			t.Errorf("expected no selection, got %d", v.SelectedIndex())
		}
	})

	t.Run("preserve selection picks nearest with lower index on ties", func(t *testing.T) {
		v := newTestView(without(), 30, 100).Policy(PreserveSelection)
		v.SetSelected(2, ScrollRelative)

		items := makeRows(nil, "n", 5, 1)
		items[2] = testRow{id: "blocked", class: 1, height: 1}
		v.SetModel(listModel(items...))

		if v.SelectedIndex() != 1 {
			t.Errorf("expected 1, got %d", v.SelectedIndex())
		}
	})

	t.Run("preserve selection clamps past the end", func(t *testing.T) {
		v := newTestView(without(), 30, 100).Policy(PreserveSelection)
		v.SetSelected(9, ScrollRelative)
		v.SetModel(listModel(makeRows(nil, "n", 4, 1)...))
		if v.SelectedIndex() != 3 {
			t.Errorf("expected 3, got %d", v.SelectedIndex())
		}
	})

	t.Run("select first resets", func(t *testing.T) {
		v := newTestView(without(), 30, 100)
		v.SetSelected(6, ScrollRelative)
		v.SetModel(without("r0"))
		if selectedID(v) != "r1" {
			t.Errorf("expected r1, got %q", selectedID(v))
		}
	})

	t.Run("select none clears and notifies", func(t *testing.T) {
		v := newTestView(without(), 30, 100).Policy(SelectNone)
		v.SetSelected(4, ScrollRelative)

		var next, prev Item
		calls := 0
		v.OnSelectionChanged(func(n, p Item) { next, prev, calls = n, p, calls+1 })
		v.SetModel(without())

		if v.SelectedIndex() != -1 {
			t.Errorf("expected no selection, got %d", v.SelectedIndex())
		}
		if calls != 1 || next != nil || prev == nil || prev.ID() != "r4" {
			t.Errorf("expected one (nil, r4) event, got %d calls next=%v prev=%v", calls, next, prev)
		}
	})
}

func TestSelectionEvents(t *testing.T) {
	t.Run("fires only on identity change", func(t *testing.T) {
		v := newTestView(listModel(makeRows(nil, "r", 5, 1)...), 30, 100)
		var log []Identity
		v.OnSelectionChanged(func(next, prev Item) {
			var p Identity
			if prev != nil {
				p = prev.ID()
			}
			log = append(log, next.ID(), p)
		})

		v.SetSelected(2, ScrollRelative)
		v.SetSelected(2, ScrollRelative)
		v.SelectDown()

		want := []Identity{"r2", "r0", "r3", "r2"}
		if len(log) != len(want) {
			t.Fatalf("expected %v, got %v", want, log)
		}
		for i := range want {
			if log[i] != want[i] {
				t.Errorf("event %d: expected %q, got %q", i, want[i], log[i])
			}
		}
	})

	t.Run("activate and right click", func(t *testing.T) {
		m := NewModel()
		m.Section("A").Header(newHeader("ha")).Add(makeRows(nil, "a", 3, 1)...)
		v := newTestView(m, 30, 100)

		var activated, clicked Identity
		v.OnActivated(func(it Item) { activated = it.ID() }).
			OnRightClicked(func(it Item) { clicked = it.ID() })

		v.SelectDown()
		if !v.Activate() || activated != "a1" {
			t.Errorf("expected a1 activated, got %q", activated)
		}
		if !v.RightClick(3) || clicked != "a2" {
			t.Errorf("expected a2 right-clicked, got %q", clicked)
		}
		if v.RightClick(0) {
			t.Error("right click on a header should be refused")
		}

		v.SetSelected(-1, ScrollRelative)
		if v.Activate() {
			t.Error("activate without selection should fail")
		}
	})
}

func TestSelectionHandlersCallBack(t *testing.T) {
	t.Run("height handler sees the restored selection", func(t *testing.T) {
		v := newTestView(listModel(makeRows(nil, "r", 50, 1)...), 30, 100).Policy(KeepSelection)
		v.SetSelectedID("r40", ScrollRelative)

		calls := 0
		v.OnVirtualHeightChanged(func(int) {
			calls++
			it, i := v.Selected()
			if i >= len(v.Entries()) {
				t.Fatalf("selected index %d outside %d entries", i, len(v.Entries()))
			}
			if it == nil || it.ID() != "r4" {
				t.Errorf("expected r4 selected inside the handler, got %v", it)
			}
			if v.SelectDown() {
				t.Error("down from the last row should fail")
			}
		})
		v.SetModel(listModel(makeRows(nil, "r", 5, 1)...))

		if calls != 1 {
			t.Errorf("expected one height event, got %d", calls)
		}
		if selectedID(v) != "r4" {
			t.Errorf("expected r4, got %q", selectedID(v))
		}
	})

	t.Run("selection handler navigates after a filter", func(t *testing.T) {
		v := newTestView(listModel(makeRows(nil, "r", 20, 1)...), 30, 5)

		var log []Identity
		v.OnSelectionChanged(func(next, prev Item) {
			log = append(log, next.ID())
			v.EachVisible(func(i int, e LayoutEntry, h Handle) {
				if i >= len(v.Entries()) || h == nil {
					t.Errorf("entry %d visible without a handle", i)
				}
			})
			if next.ID() == "r1" {
				v.SelectDown()
			}
		})
		v.SetFilter(func(it Item) bool { return strings.HasPrefix(string(it.ID()), "r1") })

		if selectedID(v) != "r10" {
			t.Errorf("expected r10, got %q", selectedID(v))
		}
		if len(log) != 2 || log[0] != "r1" || log[1] != "r10" {
			t.Errorf("expected [r1 r10], got %v", log)
		}
	})

	t.Run("model handler selects by id", func(t *testing.T) {
		v := newTestView(listModel(makeRows(nil, "r", 5, 1)...), 30, 100)
		v.OnModelChanged(func() { v.SetSelectedID("r3", ScrollRelative) })
		v.SetModel(listModel(makeRows(nil, "r", 8, 1)...))
		if selectedID(v) != "r3" {
			t.Errorf("expected r3, got %q", selectedID(v))
		}
	})
}

func TestSelectionScrolling(t *testing.T) {
	t.Run("relative scrolls just enough", func(t *testing.T) {
		v := newTestView(listModel(makeRows(nil, "r", 100, 1)...), 30, 10)

		v.SetSelected(15, ScrollRelative)
		if v.ScrollOffset() != 6 {
			t.Errorf("expected scroll 6, got %d", v.ScrollOffset())
		}
		if !v.VisibleRange().Contains(15) {
			t.Errorf("selected entry not in window %+v", v.VisibleRange())
		}
		v.SetSelected(10, ScrollRelative)
		if v.ScrollOffset() != 6 {
			t.Errorf("visible entry should not scroll, got %d", v.ScrollOffset())
		}
		v.SetSelected(2, ScrollRelative)
		if v.ScrollOffset() != 2 {
			t.Errorf("expected scroll 2, got %d", v.ScrollOffset())
		}
	})

	t.Run("absolute pins to top", func(t *testing.T) {
		v := newTestView(listModel(makeRows(nil, "r", 100, 1)...), 30, 10)

		v.SetSelected(50, ScrollAbsolute)
		if v.ScrollOffset() != 50 {
			t.Errorf("expected scroll 50, got %d", v.ScrollOffset())
		}
		v.SetSelected(95, ScrollAbsolute)
		if v.ScrollOffset() != 90 {
			t.Errorf("expected clamp to 90, got %d", v.ScrollOffset())
		}
	})

	t.Run("keyboard uses the configured policy", func(t *testing.T) {
		v := newTestView(listModel(makeRows(nil, "r", 100, 1)...), 30, 10).Scroll(ScrollAbsolute)
		v.SelectDown()
		if v.ScrollOffset() != 1 {
			t.Errorf("expected scroll 1, got %d", v.ScrollOffset())
		}
	})

	t.Run("relative reveals section header", func(t *testing.T) {
		m := NewModel()
		m.Section("A").Header(newHeader("ha")).Add(makeRows(nil, "a", 40, 1)...)
		v := newTestView(m, 30, 10)

		v.SelectLast()
		if v.ScrollOffset() != v.MaxScroll() {
			t.Fatalf("expected scroll at bottom, got %d", v.ScrollOffset())
		}
		v.SelectFirst()
		if v.ScrollOffset() != 0 {
			t.Errorf("expected header revealed at 0, got %d", v.ScrollOffset())
		}
	})
}
