package graph

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestAddEdgeRegistersBothEndpoints(t *testing.T) {
	g := New()
	if err := g.AddEdge("A", "B", 3); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if !g.Has("A") || !g.Has("B") {
		t.Fatalf("expected both endpoints registered")
	}
	if g.Order() != 2 {
		t.Fatalf("expected order 2 got %d", g.Order())
	}
	if g.NeighborsOf("B") != nil {
		t.Fatalf("sink vertex should have no outgoing edges")
	}
}

func TestAddEdgeRejectsBadWeights(t *testing.T) {
	g := New()
	if err := g.AddEdge("A", "B", -1); !errors.Is(err, ErrNegativeWeight) {
		t.Fatalf("expected ErrNegativeWeight got %v", err)
	}
	if err := g.AddEdge("A", "B", math.NaN()); !errors.Is(err, ErrBadWeight) {
		t.Fatalf("expected ErrBadWeight for NaN got %v", err)
	}
	if err := g.AddEdge("A", "B", math.Inf(1)); !errors.Is(err, ErrBadWeight) {
		t.Fatalf("expected ErrBadWeight for +Inf got %v", err)
	}
	if g.Order() != 0 {
		t.Fatalf("rejected edges must not register vertices, order=%d", g.Order())
	}
}

func TestAddEdgeRejectsEmptyVertex(t *testing.T) {
	g := New()
	if err := g.AddEdge("", "B", 1); err == nil {
		t.Fatalf("expected error for empty source")
	}
	if err := g.AddEdge("A", "", 1); err == nil {
		t.Fatalf("expected error for empty destination")
	}
}

func TestVerticesSorted(t *testing.T) {
	g := New()
	for _, e := range [][2]string{{"C", "A"}, {"B", "C"}, {"A", "B"}} {
		if err := g.AddEdge(e[0], e[1], 1); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	want := []string{"A", "B", "C"}
	if got := g.Vertices(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestParallelEdgesPreserved(t *testing.T) {
	g := New()
	if err := g.AddEdge("A", "B", 5); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge("A", "B", 2); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	got := g.NeighborsOf("A")
	want := []Edge{{To: "B", Weight: 5}, {To: "B", Weight: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v got %v", want, got)
	}
}

func TestNeighborsOfReturnsCopy(t *testing.T) {
	g := New()
	if err := g.AddEdge("A", "B", 1); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	edges := g.NeighborsOf("A")
	edges[0].Weight = 99
	if g.NeighborsOf("A")[0].Weight != 1 {
		t.Fatalf("mutating the returned slice must not touch the graph")
	}
}
