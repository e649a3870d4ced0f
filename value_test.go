package jsonvalue

import "testing"

func TestValueAccessorsPanicOnMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on Kind mismatch")
		}
	}()
	Int(1).Text()
}

func TestObjectSetKeepsKeysSorted(t *testing.T) {
	o := Object()
	o.Set("c", Int(3))
	o.Set("a", Int(1))
	o.Set("b", Int(2))
	keys := o.Keys()
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestObjectSetReplacesExisting(t *testing.T) {
	o := Object()
	o.Set("a", Int(1))
	o.Set("a", Int(2))
	if o.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", o.Len())
	}
	v, ok := o.Get("a")
	if !ok || v.Int() != 2 {
		t.Fatalf("got (%v, %v), want (2, true)", v, ok)
	}
}

func TestObjectDelete(t *testing.T) {
	o := Object()
	o.Set("a", Int(1))
	o.Set("b", Int(2))
	o.Delete("a")
	if o.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", o.Len())
	}
	if _, ok := o.Get("a"); ok {
		t.Fatal("a should have been deleted")
	}
}

func TestValueTotal(t *testing.T) {
	v := Array(Int(1), Array(Int(2), Int(3)))
	if got := v.Total(); got != 5 {
		t.Fatalf("Total() = %d, want 5", got)
	}
}

func TestGetChildSetChildRemoveChild(t *testing.T) {
	root := Object()
	root.Set("a", Array(Int(1), Int(2), Int(3)))

	c, ok := root.GetChild("a.1")
	if !ok || c.Int() != 2 {
		t.Fatalf("GetChild(a.1) = (%v, %v), want (2, true)", c, ok)
	}

	if err := root.SetChild("a.1", Int(20)); err != nil {
		t.Fatalf("SetChild: %v", err)
	}
	c, _ = root.GetChild("a.1")
	if c.Int() != 20 {
		t.Fatalf("after SetChild, a.1 = %v, want 20", c)
	}

	if err := root.RemoveChild("a.0"); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	arr, _ := root.Get("a")
	if arr.Len() != 2 {
		t.Fatalf("after RemoveChild, len = %d, want 2", arr.Len())
	}
}

func TestAddChildrenObjectRejectsEmptyKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty key")
		}
	}()
	o := Object()
	o.AddChildren(KeyValue{Key: "", Value: Int(1)})
}

func TestAddChildrenArray(t *testing.T) {
	a := Array()
	a.AddChildren(KeyValue{Value: Int(1)}, KeyValue{Value: Int(2)})
	if a.Len() != 2 || a.Index(0).Int() != 1 || a.Index(1).Int() != 2 {
		t.Fatalf("got %v", a)
	}
}

func TestEqual(t *testing.T) {
	a := Object()
	a.Set("x", Int(1))
	a.Set("y", Array(Int(1), Int(2)))

	b := Object()
	b.Set("y", Array(Int(1), Int(2)))
	b.Set("x", Int(1))

	if !Equal(a, b) {
		t.Fatal("expected equal objects regardless of insertion order")
	}

	b.Set("x", Int(2))
	if Equal(a, b) {
		t.Fatal("expected inequal objects")
	}
}

type point struct {
	X int     `json:"x"`
	Y int     `json:"y"`
	Z int     `json:"-"`
	W *string `json:"w,omitempty"`
}

func TestNewJSONGoStruct(t *testing.T) {
	p := point{X: 1, Y: 2, Z: 3}
	v, err := NewJSONGo(p)
	if err != nil {
		t.Fatal(err)
	}
	x, _ := v.Get("x")
	y, _ := v.Get("y")
	if x.Int() != 1 || y.Int() != 2 {
		t.Fatalf("got %v", v)
	}
	if _, ok := v.Get("z"); ok {
		t.Fatal("Z field tagged \"-\" should be skipped")
	}
	w, ok := v.Get("w")
	if !ok || !w.IsNull() {
		t.Fatalf("nil W should encode as null, got (%v, %v)", w, ok)
	}
}

func TestJSON2GoStruct(t *testing.T) {
	v := Object()
	v.Set("x", Int(5))
	v.Set("y", Int(6))
	var p point
	if err := v.JSON2Go(&p); err != nil {
		t.Fatal(err)
	}
	if p.X != 5 || p.Y != 6 {
		t.Fatalf("got %+v", p)
	}
}

func TestNewJSONGoJSON2GoSlice(t *testing.T) {
	v, err := NewJSONGo([]int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	var out []int
	if err := v.JSON2Go(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[0] != 1 || out[2] != 3 {
		t.Fatalf("got %v", out)
	}
}

func TestNewJSONGoMap(t *testing.T) {
	v, err := NewJSONGo(map[string]int{"a": 1, "b": 2})
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != KindObject || v.Len() != 2 {
		t.Fatalf("got %v", v)
	}
}

func TestValueCloneReallocatesStringBuffers(t *testing.T) {
	src, _, status := decodeString([]byte(`hi"`), 0, defaultAllocator)
	if status != StatusSuccess {
		t.Fatalf("decodeString: %v", status)
	}
	other := NewDefaultAllocator()
	clone := src.Clone(other)
	if !Equal(src, clone) {
		t.Fatalf("clone should be structurally equal: %v vs %v", src, clone)
	}
	clone.str[0] = 'X'
	if src.Text() != "hi" {
		t.Fatalf("mutating the clone's buffer affected the source: %q", src.Text())
	}
}

func TestValueCloneArrayAndObject(t *testing.T) {
	s, _, status := decodeString([]byte(`x"`), 0, defaultAllocator)
	if status != StatusSuccess {
		t.Fatalf("decodeString: %v", status)
	}
	o := Object()
	o.Set("s", s)
	v := Array(Int(1), o)

	other := NewDefaultAllocator()
	clone := v.Clone(other)
	if !Equal(v, clone) {
		t.Fatalf("clone should be structurally equal: %v vs %v", v, clone)
	}
	co, _ := clone.Index(1).Get("s")
	co.str[0] = 'Y'
	so, _ := v.Index(1).Get("s")
	if so.Text() != "x" {
		t.Fatalf("cloning through array/object aliased a string buffer: %q", so.Text())
	}
}

func TestValueReleaseIgnoresGCOwnedStrings(t *testing.T) {
	// String() never sets alloc, so Release must not panic or touch
	// anything when there's no pooled buffer to return.
	v := Array(String("gc-owned"), Object())
	v.Release()
}

func TestValueStringCompact(t *testing.T) {
	v := Object()
	v.Set("a", Int(1))
	v.Set("b", Array(Int(2), String("x")))
	if got, want := v.String(), `{"a":1,"b":[2,"x"]}`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
