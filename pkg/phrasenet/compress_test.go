package phrasenet

import (
	"reflect"
	"testing"
)

func TestCompressMergesEquivalentNodes(t *testing.T) {
	// lazy and fast both receive exactly one edge from quick and have no
	// other connections, so they are topologically interchangeable.
	g := Aggregate([]Observation{
		{Source: "quick", Target: "lazy"},
		{Source: "quick", Target: "fast"},
	})

	compressed := Compress(g)

	if len(compressed.Nodes) != 2 {
		t.Fatalf("unexpected node count: got %d, want 2", len(compressed.Nodes))
	}
	super, ok := compressed.Nodes["SUPER_NODE:fast|lazy"]
	if !ok {
		t.Fatalf("expected supernode for fast and lazy, have %v", nodeIDs(compressed))
	}
	if super.Label != "fast|lazy" {
		t.Fatalf("unexpected label: got %q", super.Label)
	}
	if !reflect.DeepEqual(super.Members, []string{"fast", "lazy"}) {
		t.Fatalf("unexpected members: %v", super.Members)
	}
	if super.Frequency != 2 || super.InDegree != 2 || super.OutDegree != 0 {
		t.Fatalf("unexpected supernode totals: %+v", super)
	}

	edge := compressed.Edges[edgeKey{source: "quick", target: "SUPER_NODE:fast|lazy"}]
	if edge == nil || edge.Weight != 2 {
		t.Fatalf("unexpected merged edge: %+v", edge)
	}
}

func TestCompressConservesWeight(t *testing.T) {
	g := Aggregate([]Observation{
		{Source: "quick", Target: "lazy"},
		{Source: "quick", Target: "fast"},
		{Source: "lazy", Target: "dog"},
		{Source: "fast", Target: "dog"},
		{Source: "dog", Target: "fence"},
	})
	before := g.TotalWeight()

	compressed := Compress(g)

	if got := compressed.TotalWeight(); got != before {
		t.Fatalf("total weight changed: got %d, want %d", got, before)
	}
}

func TestCompressDoesNotMergeOnWeightMismatch(t *testing.T) {
	g := Aggregate([]Observation{
		{Source: "quick", Target: "lazy"},
		{Source: "quick", Target: "lazy"},
		{Source: "quick", Target: "fast"},
	})

	compressed := Compress(g)

	if len(compressed.Nodes) != 3 {
		t.Fatalf("expected no merge, have %v", nodeIDs(compressed))
	}
}

func TestCompressDoesNotMergeOnDirectionMismatch(t *testing.T) {
	g := Aggregate([]Observation{
		{Source: "quick", Target: "lazy"},
		{Source: "fast", Target: "quick"},
	})

	compressed := Compress(g)

	if len(compressed.Nodes) != 3 {
		t.Fatalf("expected no merge, have %v", nodeIDs(compressed))
	}
}

func TestCompressIsIdempotent(t *testing.T) {
	g := Aggregate([]Observation{
		{Source: "quick", Target: "lazy"},
		{Source: "quick", Target: "fast"},
		{Source: "quick", Target: "slow"},
		{Source: "brown", Target: "quick"},
	})

	once := Serialize(Compress(g))
	twice := Serialize(Compress(Compress(g)))

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("compression is not idempotent: %+v vs %+v", once, twice)
	}
}

func TestCompressRunsToFixpoint(t *testing.T) {
	// cat and dog merge first; the merged edge then carries weight 2, which
	// makes the supernode equivalent to pet and forces a second pass.
	g := Aggregate([]Observation{
		{Source: "cat", Target: "run"},
		{Source: "dog", Target: "run"},
		{Source: "pet", Target: "run"},
		{Source: "pet", Target: "run"},
	})

	compressed := Compress(g)

	super, ok := compressed.Nodes["SUPER_NODE:cat|dog|pet"]
	if !ok {
		t.Fatalf("expected supernode for cat, dog and pet, have %v", nodeIDs(compressed))
	}
	if !reflect.DeepEqual(super.Members, []string{"cat", "dog", "pet"}) {
		t.Fatalf("unexpected members: %v", super.Members)
	}
	if got := compressed.TotalWeight(); got != 4 {
		t.Fatalf("total weight changed: got %d, want 4", got)
	}
}

func TestCompressKeepsLemmaContainingSeparator(t *testing.T) {
	// A pattern like `(\S+) and (\S+)` can produce a literal lemma
	// "fast|lazy". Merging fast and lazy must not absorb that node.
	g := Aggregate([]Observation{
		{Source: "quick", Target: "fast"},
		{Source: "quick", Target: "lazy"},
		{Source: "fast|lazy", Target: "dog"},
		{Source: "fast|lazy", Target: "dog"},
		{Source: "fast|lazy", Target: "dog"},
	})
	before := g.TotalWeight()

	compressed := Compress(g)

	super, ok := compressed.Nodes["SUPER_NODE:fast|lazy"]
	if !ok {
		t.Fatalf("expected supernode for fast and lazy, have %v", nodeIDs(compressed))
	}
	if !reflect.DeepEqual(super.Members, []string{"fast", "lazy"}) {
		t.Fatalf("unexpected members: %v", super.Members)
	}

	literal, ok := compressed.Nodes["fast|lazy"]
	if !ok {
		t.Fatalf("literal node fast|lazy was lost, have %v", nodeIDs(compressed))
	}
	if len(literal.Members) != 0 {
		t.Fatalf("literal node gained members: %v", literal.Members)
	}
	if literal.Frequency != 3 || literal.OutDegree != 3 {
		t.Fatalf("literal node lost its counts: %+v", literal)
	}

	edge := compressed.Edges[edgeKey{source: "fast|lazy", target: "dog"}]
	if edge == nil || edge.Weight != 3 {
		t.Fatalf("unexpected literal node edge: %+v", edge)
	}
	if got := compressed.TotalWeight(); got != before {
		t.Fatalf("total weight changed: got %d, want %d", got, before)
	}
}

func nodeIDs(g *Graph) []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	return ids
}
