package grid

import "testing"

func TestGetSetRoundTrip(t *testing.T) {
	g := New[int](4, 4)
	g.Set(2, 3, 42)
	if got := g.Get(2, 3); got != 42 {
		t.Fatalf("Get(2,3) = %d, want 42", got)
	}
}

func TestOutOfBoundsGetReturnsZero(t *testing.T) {
	g := New[int](4, 4)
	if got := g.Get(-1, 0); got != 0 {
		t.Fatalf("Get(-1,0) = %d, want zero value", got)
	}
	if got := g.Get(4, 0); got != 0 {
		t.Fatalf("Get(4,0) = %d, want zero value", got)
	}
}

func TestOutOfBoundsSetIsNoOp(t *testing.T) {
	g := New[int](2, 2)
	g.Set(5, 5, 99)
	g.IterXY(func(x, y int, v int) {
		if v != 0 {
			t.Fatalf("out-of-bounds Set leaked into (%d,%d)", x, y)
		}
	})
}

func TestFillAndClone(t *testing.T) {
	g := New[int](3, 3)
	g.Fill(func(x, y int) int { return x + y })

	clone := g.Clone()
	clone.Set(0, 0, 999)

	if g.Get(0, 0) == 999 {
		t.Fatal("Clone() did not deep-copy; mutating clone affected original")
	}
	if clone.Get(1, 1) != 2 {
		t.Fatalf("clone lost fill data: Get(1,1) = %d, want 2", clone.Get(1, 1))
	}
}

func TestCountMatching(t *testing.T) {
	g := NewFilled[bool](5, 5, func(x, y int) bool { return x == y })
	if got := g.CountMatching(func(v bool) bool { return v }); got != 5 {
		t.Fatalf("CountMatching = %d, want 5", got)
	}
}

func TestIsEdge(t *testing.T) {
	g := New[int](3, 3)
	if !g.IsEdge(0, 1) || !g.IsEdge(2, 1) || !g.IsEdge(1, 0) || !g.IsEdge(1, 2) {
		t.Fatal("border cells should be edges")
	}
	if g.IsEdge(1, 1) {
		t.Fatal("center cell should not be an edge")
	}
}
