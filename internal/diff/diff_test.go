package diff

import (
	"testing"

	"github.com/cdoyle/lister-tui/internal/list"
)

func ids(items []*list.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a []string, b []*list.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i].ID {
			return false
		}
	}
	return true
}

func TestRemoved(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	c := list.NewItem("c")

	got := Removed([]*list.Item{a, b, c}, []*list.Item{b})
	if !equalIDs([]string{a.ID, c.ID}, got) {
		t.Errorf("Removed = %v, want [a c]", ids(got))
	}
	if got := Removed(nil, []*list.Item{a}); got != nil {
		t.Errorf("Removed from empty before = %v, want nil", ids(got))
	}
}

func TestInserted(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	c := list.NewItem("c")
	c.Complete = true

	got := Inserted([]*list.Item{a}, []*list.Item{b, a, c}, nil)
	if !equalIDs([]string{b.ID, c.ID}, got) {
		t.Errorf("Inserted = %v, want [b c] in after order", ids(got))
	}

	incomplete := func(it *list.Item) bool { return !it.Complete }
	got = Inserted([]*list.Item{a}, []*list.Item{b, a, c}, incomplete)
	if !equalIDs([]string{b.ID}, got) {
		t.Errorf("Inserted with keep = %v, want [b]", ids(got))
	}
}

func TestToggledAndTextChanged(t *testing.T) {
	a := list.NewItem("a")
	b := list.NewItem("b")
	before := []*list.Item{a, b}

	a2 := a.Copy()
	a2.Complete = true
	a2.Text = "a edited"
	b2 := b.Copy()
	after := []*list.Item{a2, b2}

	toggled := Toggled(before, after)
	if !equalIDs([]string{a.ID}, toggled) {
		t.Fatalf("Toggled = %v, want [a]", ids(toggled))
	}
	if toggled[0] != a2 {
		t.Error("Toggled should return the after snapshot's instance")
	}

	changed := TextChanged(before, after)
	if !equalIDs([]string{a.ID}, changed) {
		t.Fatalf("TextChanged = %v, want [a]", ids(changed))
	}

	// An item with both kinds of change appears in both sets; the union
	// keeps a single instance.
	union := UnionByID(toggled, changed)
	if len(union) != 1 || union[0] != a2 {
		t.Errorf("UnionByID = %v, want exactly the one after instance", ids(union))
	}
}

func TestClassify(t *testing.T) {
	one := []*list.Item{list.NewItem("x")}
	two := []*list.Item{list.NewItem("x"), list.NewItem("y")}

	tests := []struct {
		name                                   string
		removed, inserted, toggled, textChange []*list.Item
		want                                   Change
	}{
		{"all empty", nil, nil, nil, nil, ChangeNone},
		{"only removed", one, nil, nil, nil, ChangeRemoved},
		{"only inserted", nil, one, nil, nil, ChangeInserted},
		{"many inserted", nil, two, nil, nil, ChangeInserted},
		{"only toggled", nil, nil, two, nil, ChangeToggled},
		{"only text", nil, nil, nil, one, ChangeTextChanged},
		{"removed and inserted", one, one, nil, nil, ChangeMixed},
		{"toggled and text", nil, nil, one, one, ChangeMixed},
		{"everything", one, one, one, one, ChangeMixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.removed, tt.inserted, tt.toggled, tt.textChange)
			if got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}
