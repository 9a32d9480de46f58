package phrasenet

// LinkingType selects the strategy used to derive word-pair observations
// from the input text.
type LinkingType string

const (
	LinkingOrthographic LinkingType = "orthographic"
	LinkingSyntactic    LinkingType = "syntactic"
)

// Observation is a single raw linking event between two lemmas, produced by
// a linker and consumed by the aggregator. The relation label is only set
// for syntactic observations.
type Observation struct {
	Source   string
	Target   string
	Relation string
}

// Node is a vertex of the phrase net, identified by its case-folded lemma.
// Frequency counts every observation touching the node; InDegree and
// OutDegree are the summed weights of incoming and outgoing observations.
// Members is non-empty only for supernodes and lists the original lemmas
// collapsed into the node.
type Node struct {
	ID        string
	Label     string
	Frequency int
	InDegree  int
	OutDegree int
	Members   []string
}

// Edge is a directed weighted connection between two nodes. Weight counts
// the observations collapsed into the edge.
type Edge struct {
	Source   string
	Target   string
	Weight   int
	Relation string
}

type edgeKey struct {
	source string
	target string
}

// Graph is a weighted directed graph over lemmas. There is at most one edge
// per ordered node pair; every edge endpoint exists in Nodes.
type Graph struct {
	Nodes map[string]*Node
	Edges map[edgeKey]*Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: make(map[edgeKey]*Edge),
	}
}

// TotalWeight returns the sum of all edge weights.
func (g *Graph) TotalWeight() int {
	total := 0
	for _, edge := range g.Edges {
		total += edge.Weight
	}
	return total
}

func (g *Graph) ensureNode(id string) *Node {
	node, ok := g.Nodes[id]
	if !ok {
		node = &Node{ID: id, Label: id}
		g.Nodes[id] = node
	}
	return node
}
