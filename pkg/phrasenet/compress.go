package phrasenet

import (
	"sort"
	"strconv"
	"strings"
)

// superNodePrefix namespaces supernode ids away from lemma ids.
const superNodePrefix = "SUPER_NODE:"

// Compress merges topologically equivalent nodes into supernodes. Two nodes
// are equivalent when their incoming edges agree on sources and weights and
// their outgoing edges agree on targets and weights. Passes repeat until no
// further class of size two or more exists, so applying Compress to its own
// output changes nothing.
func Compress(g *Graph) *Graph {
	for {
		next, merged := compressOnce(g)
		if !merged {
			return next
		}
		g = next
	}
}

func compressOnce(g *Graph) (*Graph, bool) {
	classes := make(map[string][]string)
	for id := range g.Nodes {
		sig := signature(g, id)
		classes[sig] = append(classes[sig], id)
	}

	remap := make(map[string]string)
	supernodes := make(map[string]*Node)
	merged := false
	for _, ids := range classes {
		if len(ids) < 2 {
			continue
		}
		merged = true

		members := memberLemmas(g, ids)
		label := strings.Join(members, "|")
		// Every lemma id is case folded to lowercase, so the uppercase
		// prefix can never collide with a real node whose lemma happens
		// to contain the separator.
		superID := superNodePrefix + label
		supernode := &Node{ID: superID, Label: label, Members: members}
		for _, id := range ids {
			node := g.Nodes[id]
			supernode.Frequency += node.Frequency
			supernode.InDegree += node.InDegree
			supernode.OutDegree += node.OutDegree
			remap[id] = superID
		}
		supernodes[superID] = supernode
	}
	if !merged {
		return g, false
	}

	out := NewGraph()
	for id, node := range g.Nodes {
		if _, collapsed := remap[id]; collapsed {
			continue
		}
		out.Nodes[id] = node
	}
	for id, node := range supernodes {
		out.Nodes[id] = node
	}

	for key, edge := range g.Edges {
		source, target := key.source, key.target
		if mapped, ok := remap[source]; ok {
			source = mapped
		}
		if mapped, ok := remap[target]; ok {
			target = mapped
		}
		mergedKey := edgeKey{source: source, target: target}
		if existing, ok := out.Edges[mergedKey]; ok {
			existing.Weight += edge.Weight
			existing.Relation = mergeRelation(existing.Relation, edge.Relation)
		} else {
			out.Edges[mergedKey] = &Edge{
				Source:   source,
				Target:   target,
				Weight:   edge.Weight,
				Relation: edge.Relation,
			}
		}
	}
	return out, true
}

// signature canonicalizes a node's adjacency as the sorted (neighbor, weight)
// tuples of its outgoing and incoming edges. The node itself is excluded,
// since equivalence between two distinct nodes can never hinge on self-edges.
func signature(g *Graph, id string) string {
	outgoing := make([]string, 0)
	incoming := make([]string, 0)
	for key, edge := range g.Edges {
		if key.source == id && key.target != id {
			outgoing = append(outgoing, key.target+"\x00"+strconv.Itoa(edge.Weight))
		}
		if key.target == id && key.source != id {
			incoming = append(incoming, key.source+"\x00"+strconv.Itoa(edge.Weight))
		}
	}
	sort.Strings(outgoing)
	sort.Strings(incoming)
	return strings.Join(outgoing, "\x01") + "\x02" + strings.Join(incoming, "\x01")
}

// memberLemmas expands a class into the sorted original lemmas it covers,
// flattening members of nodes that are already supernodes.
func memberLemmas(g *Graph, ids []string) []string {
	seen := make(map[string]struct{})
	members := make([]string, 0, len(ids))
	for _, id := range ids {
		node := g.Nodes[id]
		lemmas := node.Members
		if len(lemmas) == 0 {
			lemmas = []string{node.ID}
		}
		for _, lemma := range lemmas {
			if _, ok := seen[lemma]; ok {
				continue
			}
			seen[lemma] = struct{}{}
			members = append(members, lemma)
		}
	}
	sort.Strings(members)
	return members
}
