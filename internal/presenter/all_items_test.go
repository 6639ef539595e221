package presenter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cdoyle/lister-tui/internal/list"
)

// recorder captures the delegate notification stream as readable event
// strings and enforces the bracket discipline: FullRefresh outside any
// bracket, every other notification inside exactly one, brackets never
// nested.
type recorder struct {
	t      *testing.T
	depth  int
	events []string
}

func (r *recorder) FullRefresh() {
	if r.depth != 0 {
		r.t.Error("FullRefresh delivered inside a bracket")
	}
	r.events = append(r.events, "refresh")
}

func (r *recorder) WillChange(initial bool) {
	if r.depth != 0 {
		r.t.Error("nested WillChange")
	}
	r.depth++
	if initial {
		r.events = append(r.events, "will initial")
	} else {
		r.events = append(r.events, "will")
	}
}

func (r *recorder) DidChange(initial bool) {
	if r.depth != 1 {
		r.t.Error("DidChange without matching WillChange")
	}
	r.depth--
	if initial {
		r.events = append(r.events, "did initial")
	} else {
		r.events = append(r.events, "did")
	}
}

func (r *recorder) inBracket(kind string) {
	if r.depth != 1 {
		r.t.Errorf("%s delivered outside a bracket", kind)
	}
}

func (r *recorder) ItemInserted(item *list.Item, index int) {
	r.inBracket("ItemInserted")
	r.events = append(r.events, fmt.Sprintf("insert %s@%d", item.Text, index))
}

func (r *recorder) ItemRemoved(item *list.Item, index int) {
	r.inBracket("ItemRemoved")
	r.events = append(r.events, fmt.Sprintf("remove %s@%d", item.Text, index))
}

func (r *recorder) ItemUpdated(item *list.Item, index int) {
	r.inBracket("ItemUpdated")
	r.events = append(r.events, fmt.Sprintf("update %s@%d", label(item), index))
}

func (r *recorder) ItemMoved(item *list.Item, from, to int) {
	r.inBracket("ItemMoved")
	r.events = append(r.events, fmt.Sprintf("move %s %d>%d", label(item), from, to))
}

// label renders an item's text with the trailing * completion marker, as
// observed at notification time.
func label(item *list.Item) string {
	if item.Complete {
		return item.Text + "*"
	}
	return item.Text
}

func (r *recorder) ColorChanged(color list.Color) {
	r.inBracket("ColorChanged")
	r.events = append(r.events, "color "+color.String())
}

func (r *recorder) reset() {
	r.events = nil
}

func (r *recorder) want(t *testing.T, events ...string) {
	t.Helper()
	got := strings.Join(r.events, "; ")
	want := strings.Join(events, "; ")
	if got != want {
		t.Errorf("events\n  got:  %s\n  want: %s", got, want)
	}
}

func texts(items []*list.Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Text
		if it.Complete {
			parts[i] += "*"
		}
	}
	return strings.Join(parts, " ")
}

// wantOrder asserts presented order; a trailing * marks a complete item.
func wantOrder(t *testing.T, p *AllItemsPresenter, want string) {
	t.Helper()
	if got := texts(p.PresentedItems()); got != want {
		t.Errorf("presented order = %q, want %q", got, want)
	}
}

func loaded(t *testing.T, items ...*list.Item) (*AllItemsPresenter, *recorder) {
	t.Helper()
	p := NewAllItemsPresenter(NewUndoStack())
	rec := &recorder{t: t}
	p.SetDelegate(rec)
	p.Replace(list.NewList(list.ColorGray, items))
	rec.reset()
	return p, rec
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestAllItemsInitialReplace(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	b.Complete = true
	c := list.NewItem("c")

	p := NewAllItemsPresenter(nil)
	rec := &recorder{t: t}
	p.SetDelegate(rec)
	if p.Loaded() {
		t.Error("presenter should not report loaded before the first Replace")
	}

	p.Replace(list.NewList(list.ColorGray, []*list.Item{b, a, c}))

	rec.want(t, "refresh")
	wantOrder(t, p, "a c b*")
	if !p.Loaded() {
		t.Error("presenter should report loaded after the first Replace")
	}
}

func TestInsertUndoRedo(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	b.Complete = true
	p, rec := loaded(t, a, b)

	c := list.NewItem("c")
	p.Insert(c)
	rec.want(t, "will", "insert c@0", "did")
	wantOrder(t, p, "c a b*")

	if label, ok := p.Undo().PeekLabel(); !ok || label != "Insert" {
		t.Fatalf("PeekLabel = %q, %v; want Insert", label, ok)
	}

	rec.reset()
	label, ok := p.Undo().Undo()
	if !ok || label != "Insert" {
		t.Fatalf("Undo = %q, %v; want Insert", label, ok)
	}
	rec.want(t, "will", "remove c@0", "did")
	wantOrder(t, p, "a b*")

	// Undoing the undo redoes the insertion.
	rec.reset()
	if _, ok := p.Undo().Undo(); !ok {
		t.Fatal("expected a redo entry after undoing an insert")
	}
	rec.want(t, "will", "insert c@0", "did")
	wantOrder(t, p, "c a b*")
}

func TestInsertCompleteGoesToTail(t *testing.T) {
	a := list.NewItem("a")
	p, rec := loaded(t, a)

	done := list.NewItem("done")
	done.Complete = true
	p.Insert(done)
	rec.want(t, "will", "insert done@1", "did")
	wantOrder(t, p, "a done*")
}

func TestInsertAllUndo(t *testing.T) {
	a := list.NewItem("a")
	p, rec := loaded(t, a)

	b := list.NewItem("b")
	c := list.NewItem("c")
	p.InsertAll([]*list.Item{b, c})
	rec.want(t, "will", "insert b@0", "insert c@0", "did")
	wantOrder(t, p, "c b a")

	rec.reset()
	label, ok := p.Undo().Undo()
	if !ok || label != "Insert Items" {
		t.Fatalf("Undo = %q, %v; want Insert Items", label, ok)
	}
	wantOrder(t, p, "a")
}

func TestRemoveUndoRestoresIndex(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	c := list.NewItem("c")
	p, rec := loaded(t, a, b, c)

	p.Remove(b)
	rec.want(t, "will", "remove b@1", "did")
	wantOrder(t, p, "a c")

	rec.reset()
	if _, ok := p.Undo().Undo(); !ok {
		t.Fatal("expected an undo entry")
	}
	rec.want(t, "will", "insert b@1", "did")
	wantOrder(t, p, "a b c")
}

func TestRemoveAllUndo(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	c := list.NewItem("c")
	d := list.NewItem("d")
	p, rec := loaded(t, a, b, c, d)

	p.RemoveAll([]*list.Item{a, c})
	rec.want(t, "will", "remove c@2", "remove a@0", "did")
	wantOrder(t, p, "b d")

	rec.reset()
	label, ok := p.Undo().Undo()
	if !ok || label != "Remove Items" {
		t.Fatalf("Undo = %q, %v; want Remove Items", label, ok)
	}
	rec.want(t, "will", "insert a@0", "insert c@2", "did")
	wantOrder(t, p, "a b c d")

	// And back again.
	rec.reset()
	if _, ok := p.Undo().Undo(); !ok {
		t.Fatal("expected a redo entry")
	}
	wantOrder(t, p, "b d")
}

func TestUpdateTextUndo(t *testing.T) {
	a := list.NewItem("a")
	p, rec := loaded(t, a)

	p.UpdateText(a, "a")
	rec.want(t)
	if p.Undo().Len() != 0 {
		t.Error("unchanged text should not push an undo entry")
	}

	p.UpdateText(a, "a2")
	rec.want(t, "will", "update a2@0", "did")

	rec.reset()
	label, ok := p.Undo().Undo()
	if !ok || label != "Edit" {
		t.Fatalf("Undo = %q, %v; want Edit", label, ok)
	}
	rec.want(t, "will", "update a@0", "did")
	if p.PresentedItems()[0].Text != "a" {
		t.Error("undo should restore the previous text")
	}
}

func TestCanMoveRespectsPartition(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	d := list.NewItem("d")
	d.Complete = true
	e := list.NewItem("e")
	e.Complete = true
	p, _ := loaded(t, a, b, d, e)

	tests := []struct {
		name string
		item *list.Item
		to   int
		want bool
	}{
		{"incomplete within partition", a, 1, true},
		{"incomplete to own slot", a, 0, true},
		{"incomplete into complete zone", a, 2, false},
		{"complete within partition", e, 2, true},
		{"complete into incomplete zone", d, 1, false},
		{"out of range", b, 4, false},
		{"absent item", list.NewItem("x"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CanMove(tt.item, tt.to); got != tt.want {
				t.Errorf("CanMove = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoveUndo(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	c := list.NewItem("c")
	p, rec := loaded(t, a, b, c)

	p.Move(c, 0)
	rec.want(t, "will", "move c 2>0", "did")
	wantOrder(t, p, "c a b")

	rec.reset()
	label, ok := p.Undo().Undo()
	if !ok || label != "Move" {
		t.Fatalf("Undo = %q, %v; want Move", label, ok)
	}
	rec.want(t, "will", "move c 0>2", "did")
	wantOrder(t, p, "a b c")
}

func TestToggleUndoRestoresIndex(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	c := list.NewItem("c")
	c.Complete = true
	p, rec := loaded(t, a, b, c)

	// Completing b moves it to the last index and flips it, in one bracket.
	p.Toggle(b)
	rec.want(t, "will", "move b 1>2", "update b*@2", "did")
	wantOrder(t, p, "a c* b*")

	// Undo restores the exact prior slot, not just the partition head.
	rec.reset()
	label, ok := p.Undo().Undo()
	if !ok || label != "Toggle" {
		t.Fatalf("Undo = %q, %v; want Toggle", label, ok)
	}
	rec.want(t, "will", "move b* 2>1", "update b@1", "did")
	wantOrder(t, p, "a b c*")

	// Undoing the undo completes b again.
	rec.reset()
	if _, ok := p.Undo().Undo(); !ok {
		t.Fatal("expected a redo entry after undoing a toggle")
	}
	wantOrder(t, p, "a c* b*")
}

func TestToggleIncompleteMovesToHead(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	b.Complete = true
	p, rec := loaded(t, a, b)

	p.Toggle(b)
	rec.want(t, "will", "move b* 1>0", "update b@0", "did")
	wantOrder(t, p, "b a")
}

func TestToggleSingleItemDoesNotMove(t *testing.T) {
	a := list.NewItem("a")
	p, rec := loaded(t, a)

	p.Toggle(a)
	rec.want(t, "will", "update a*@0", "did")
	wantOrder(t, p, "a*")
}

func TestSetAllCompleteUndo(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	b.Complete = true
	c := list.NewItem("c")
	p, rec := loaded(t, a, c, b)

	p.SetAllComplete(true)
	rec.want(t, "will", "update a*@0", "update c*@1", "did")
	wantOrder(t, p, "a* c* b*")

	// The inverse re-flips only the items this call affected: b stays
	// complete because it already was.
	rec.reset()
	label, ok := p.Undo().Undo()
	if !ok || label != "Change All Items" {
		t.Fatalf("Undo = %q, %v; want Change All Items", label, ok)
	}
	wantOrder(t, p, "a c b*")

	// No-op when every item already matches.
	rec.reset()
	undoLen := p.Undo().Len()
	p.SetAllComplete(false)
	rec.want(t)
	if p.Undo().Len() != undoLen {
		t.Error("no-op bulk completion should not push an undo entry")
	}
}

func TestSetColorUndo(t *testing.T) {
	p, rec := loaded(t, list.NewItem("a"))

	p.SetColor(list.ColorBlue)
	rec.want(t, "will", "color blue", "did")
	if p.Color() != list.ColorBlue {
		t.Fatalf("Color = %v, want blue", p.Color())
	}

	rec.reset()
	label, ok := p.Undo().Undo()
	if !ok || label != "Change Color" {
		t.Fatalf("Undo = %q, %v; want Change Color", label, ok)
	}
	if p.Color() != list.ColorGray {
		t.Errorf("Color = %v, want gray after undo", p.Color())
	}

	rec.reset()
	p.SetColor(list.ColorGray)
	rec.want(t)
}

func TestReplaceReplaysRemovals(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	c := list.NewItem("c")
	p, rec := loaded(t, a, b, c)
	p.Undo().Push("Insert", func() {})

	next := list.NewList(list.ColorGray, []*list.Item{a, c})
	p.Replace(next)

	rec.want(t, "will initial", "remove b@1", "did initial")
	wantOrder(t, p, "a c")
	if p.Undo().Len() != 0 {
		t.Error("replace should clear the undo stack")
	}
}

func TestReplaceReplaysSingleInsertion(t *testing.T) {
	a := list.NewItem("a")
	p, rec := loaded(t, a)

	b := list.NewItem("b")
	p.Replace(list.NewList(list.ColorGray, []*list.Item{a, b}))

	rec.want(t, "will initial", "insert b@0", "did initial")
	wantOrder(t, p, "b a")
}

func TestReplaceReplaysSingleToggle(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	p, rec := loaded(t, a, b)

	next := list.NewList(list.ColorGray, []*list.Item{a, b})
	next.Items[0].Complete = true
	p.Replace(next)

	rec.want(t, "will initial", "move a 0>1", "update a*@1", "did initial")
	wantOrder(t, p, "b a*")
}

func TestReplaceReplaysTextEdits(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	p, rec := loaded(t, a, b)

	next := list.NewList(list.ColorGray, []*list.Item{a, b})
	next.Items[0].Text = "a2"
	next.Items[1].Text = "b2"
	p.Replace(next)

	rec.want(t, "will initial", "update a2@0", "update b2@1", "did initial")
	wantOrder(t, p, "a2 b2")
}

func TestReplaceFallsBackToFullRefresh(t *testing.T) {
	tests := []struct {
		name string
		next func(a, b *list.Item) *list.List
	}{
		{"two insertions", func(a, b *list.Item) *list.List {
			return list.NewList(list.ColorGray, []*list.Item{a, b, list.NewItem("c"), list.NewItem("d")})
		}},
		{"two toggles", func(a, b *list.Item) *list.List {
			next := list.NewList(list.ColorGray, []*list.Item{a, b})
			next.Items[0].Complete = true
			next.Items[1].Complete = true
			return next
		}},
		{"mixed removal and insertion", func(a, b *list.Item) *list.List {
			return list.NewList(list.ColorGray, []*list.Item{a, list.NewItem("c")})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := list.NewItem("a")
			b := list.NewItem("b")
			p, rec := loaded(t, a, b)
			p.Undo().Push("Insert", func() {})

			p.Replace(tt.next(a, b))

			rec.want(t, "refresh")
			if p.Undo().Len() != 0 {
				t.Error("full refresh should clear the undo stack")
			}
		})
	}
}

func TestReplaceColorOnly(t *testing.T) {
	a := list.NewItem("a")
	p, rec := loaded(t, a)
	p.Undo().Push("Insert", func() {})

	p.Replace(list.NewList(list.ColorOrange, []*list.Item{a}))

	rec.want(t, "will initial", "color orange", "did initial")
	if p.Color() != list.ColorOrange {
		t.Errorf("Color = %v, want orange", p.Color())
	}
	if p.Undo().Len() != 0 {
		t.Error("color adoption from a replace should clear the undo stack")
	}
}

func TestReplaceIdenticalIsNoOp(t *testing.T) {
	a := list.NewItem("a")
	p, rec := loaded(t, a)
	p.Undo().Push("Insert", func() {})

	p.Replace(list.NewList(list.ColorGray, []*list.Item{a}))

	rec.want(t)
	if p.Undo().Len() != 1 {
		t.Error("an identical replace should leave the undo stack alone")
	}
}

func TestReplaceAdoptsColorDuringReplay(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	p, rec := loaded(t, a, b)

	next := list.NewList(list.ColorGreen, []*list.Item{a})
	p.Replace(next)

	rec.want(t, "will initial", "remove b@1", "color green", "did initial")
	if p.Color() != list.ColorGreen {
		t.Errorf("Color = %v, want green", p.Color())
	}
}

func TestArchiveableListIsSnapshot(t *testing.T) {
	a := list.NewItem("a")
	p, _ := loaded(t, a)

	snap := p.ArchiveableList()
	if !snap.Items[0].Equal(a) || snap.Items[0] == a {
		t.Fatal("archiveable list should deep-copy items, preserving identity")
	}

	snap.Items[0].Text = "mutated"
	if p.PresentedItems()[0].Text != "a" {
		t.Error("mutating the snapshot must not touch presented state")
	}
}

func TestPreconditionPanics(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	p, _ := loaded(t, a, b)
	absent := list.NewItem("absent")

	mustPanic(t, "double insert", func() { p.Insert(a) })
	mustPanic(t, "remove absent", func() { p.Remove(absent) })
	mustPanic(t, "toggle absent", func() { p.Toggle(absent) })
	mustPanic(t, "update absent", func() { p.UpdateText(absent, "x") })
	mustPanic(t, "invalid move", func() { p.Move(a, 5) })
	mustPanic(t, "duplicate batch", func() { p.RemoveAll([]*list.Item{a, a}) })
}
