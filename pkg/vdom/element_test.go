package vdom

import (
	"encoding/json"
	"testing"
)

func TestIDGen(t *testing.T) {
	gen := NewIDGen()
	if gen.Peek() != 0 {
		t.Errorf("Peek() = %d, want 0", gen.Peek())
	}
	for want := uint64(0); want < 3; want++ {
		if got := gen.Next(); got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}
	if got := NewIDGenFrom(100).Next(); got != 100 {
		t.Errorf("NewIDGenFrom(100).Next() = %d, want 100", got)
	}
}

func TestFindByIDAndCount(t *testing.T) {
	el := MustMaterialize(Div(P("a"), Div(P("b"), P("c"))), NewIDGen())

	if Count(&el) != 5 {
		t.Errorf("Count() = %d, want 5", Count(&el))
	}
	found := FindByID(&el, 3)
	if found == nil || found.TextContent() != "b" {
		t.Errorf("FindByID(3) = %+v, want paragraph b", found)
	}
	if FindByID(&el, 99) != nil {
		t.Error("FindByID(99) found an element")
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	el := MustMaterialize(Div(Div(P("x")), P("y")), NewIDGen())

	var visited []uint64
	Walk(&el, func(e *Element) bool {
		visited = append(visited, e.ID)
		return e.ID != 1
	})
	if len(visited) != 3 {
		t.Errorf("visited = %v, want [0 1 3]", visited)
	}
}

func TestElementJSON(t *testing.T) {
	el := MustMaterialize(Div(H1("hi"), Input(Name("m"), OnClick("send"))), NewIDGen())

	data, err := json.Marshal(el)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"id":0,"name":"div","children":[` +
		`{"id":1,"name":"h1","text":"hi"},` +
		`{"id":2,"name":"input","attributes":{"name":"m"},"listeners":[{"event":"click","handler":"send"}]}]}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
}
