package phrasenet

import "sort"

// NodeOutput is the external shape of one node.
type NodeOutput struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Frequency int      `json:"frequency"`
	InDegree  int      `json:"inDegree"`
	OutDegree int      `json:"outDegree"`
	Members   []string `json:"members,omitempty"`
}

// EdgeOutput is the external shape of one edge.
type EdgeOutput struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Weight   int    `json:"weight"`
	Relation string `json:"relation,omitempty"`
}

// Result is the externally visible outcome of an analysis.
type Result struct {
	Nodes     []NodeOutput `json:"nodes"`
	Edges     []EdgeOutput `json:"edges"`
	NodeCount int          `json:"node_count"`
	EdgeCount int          `json:"edge_count"`
}

// Serialize emits the graph in the external response shape without losing
// information. Nodes are ordered by frequency descending then id, edges by
// source then target, so the same graph always serializes identically.
func Serialize(g *Graph) *Result {
	nodes := make([]NodeOutput, 0, len(g.Nodes))
	for _, node := range g.Nodes {
		nodes = append(nodes, NodeOutput{
			ID:        node.ID,
			Label:     node.Label,
			Frequency: node.Frequency,
			InDegree:  node.InDegree,
			OutDegree: node.OutDegree,
			Members:   node.Members,
		})
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Frequency != nodes[j].Frequency {
			return nodes[i].Frequency > nodes[j].Frequency
		}
		return nodes[i].ID < nodes[j].ID
	})

	edges := make([]EdgeOutput, 0, len(g.Edges))
	for _, edge := range g.Edges {
		edges = append(edges, EdgeOutput{
			Source:   edge.Source,
			Target:   edge.Target,
			Weight:   edge.Weight,
			Relation: edge.Relation,
		})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	return &Result{
		Nodes:     nodes,
		Edges:     edges,
		NodeCount: len(nodes),
		EdgeCount: len(edges),
	}
}
