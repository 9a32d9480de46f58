package phrasenet

// Aggregate folds observations into a weighted directed graph. The fold is
// commutative: permuting the observation sequence yields an identical graph.
//
// Self-referential observations are discarded, so a node's frequency is
// always the sum of its weighted in and out degrees.
func Aggregate(observations []Observation) *Graph {
	g := NewGraph()
	for _, obs := range observations {
		g.addObservation(obs)
	}
	return g
}

func (g *Graph) addObservation(obs Observation) {
	if obs.Source == "" || obs.Target == "" || obs.Source == obs.Target {
		return
	}

	source := g.ensureNode(obs.Source)
	target := g.ensureNode(obs.Target)

	key := edgeKey{source: obs.Source, target: obs.Target}
	edge, ok := g.Edges[key]
	if !ok {
		edge = &Edge{Source: obs.Source, Target: obs.Target}
		g.Edges[key] = edge
	}
	edge.Weight++
	edge.Relation = mergeRelation(edge.Relation, obs.Relation)

	source.OutDegree++
	source.Frequency++
	target.InDegree++
	target.Frequency++
}

// mergeRelation keeps the lexicographically smallest non-empty label, which
// stays stable under reordering of the observations.
func mergeRelation(current, incoming string) string {
	if incoming == "" {
		return current
	}
	if current == "" || incoming < current {
		return incoming
	}
	return current
}
