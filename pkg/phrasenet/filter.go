package phrasenet

import "sort"

// FilterTop bounds the graph to at most maxNodes nodes. Nodes are ranked by
// frequency descending, ties broken by lemma ascending, and the top maxNodes
// survive. Edges with a dropped endpoint are removed; a surviving node that
// loses all of its edges stays in the graph.
func FilterTop(g *Graph, maxNodes int) (*Graph, error) {
	if maxNodes <= 0 {
		return nil, &ConfigError{Param: "max_nodes", Reason: "must be greater than zero"}
	}
	if len(g.Nodes) <= maxNodes {
		return g, nil
	}

	ranked := make([]*Node, 0, len(g.Nodes))
	for _, node := range g.Nodes {
		ranked = append(ranked, node)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Frequency != ranked[j].Frequency {
			return ranked[i].Frequency > ranked[j].Frequency
		}
		return ranked[i].ID < ranked[j].ID
	})

	kept := NewGraph()
	for _, node := range ranked[:maxNodes] {
		kept.Nodes[node.ID] = node
	}
	for key, edge := range g.Edges {
		if _, ok := kept.Nodes[key.source]; !ok {
			continue
		}
		if _, ok := kept.Nodes[key.target]; !ok {
			continue
		}
		kept.Edges[key] = edge
	}
	return kept, nil
}
