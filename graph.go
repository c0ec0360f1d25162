package feluda

import "sort"

// Graph is a normalized dependency graph. Nodes are dependencies keyed by
// their identity; edges express "depends-on" relationships where the source
// lockfile provides them. A key appears in the graph at most once.
type Graph struct {
	nodes map[string]Dependency
	edges map[string][]string
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]Dependency),
		edges: make(map[string][]string),
	}
}

// AddNode adds a dependency to the graph. It returns false if a dependency
// with the same key is already present; the first occurrence wins, except
// that a direct occurrence upgrades an earlier transitive one.
func (g *Graph) AddNode(dep Dependency) bool {
	key := dep.Key()
	if existing, ok := g.nodes[key]; ok {
		if dep.Direct && !existing.Direct {
			existing.Direct = true
			g.nodes[key] = existing
		}
		return false
	}
	g.nodes[key] = dep
	return true
}

// AddEdge records that from depends on to. Both keys may be added before
// their nodes; edges to absent nodes are ignored by consumers.
func (g *Graph) AddEdge(from, to string) {
	g.edges[from] = append(g.edges[from], to)
}

// Merge adds all nodes and edges of other into g.
func (g *Graph) Merge(other *Graph) {
	if other == nil {
		return
	}
	for _, dep := range other.nodes {
		g.AddNode(dep)
	}
	for from, tos := range other.edges {
		g.edges[from] = append(g.edges[from], tos...)
	}
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns all dependencies sorted by name, then version, then
// ecosystem. The order is deterministic across runs.
func (g *Graph) Nodes() []Dependency {
	deps := make([]Dependency, 0, len(g.nodes))
	for _, dep := range g.nodes {
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool {
		if deps[i].Name != deps[j].Name {
			return deps[i].Name < deps[j].Name
		}
		if deps[i].Version != deps[j].Version {
			return deps[i].Version < deps[j].Version
		}
		return deps[i].Ecosystem < deps[j].Ecosystem
	})
	return deps
}

// DependenciesOf returns the keys of the direct dependencies of the given
// key, sorted. The result is empty when the lockfile provided no edges.
func (g *Graph) DependenciesOf(key string) []string {
	tos := g.edges[key]
	out := make([]string, 0, len(tos))
	seen := make(map[string]struct{}, len(tos))
	for _, to := range tos {
		if _, ok := seen[to]; ok {
			continue
		}
		seen[to] = struct{}{}
		if _, ok := g.nodes[to]; ok {
			out = append(out, to)
		}
	}
	sort.Strings(out)
	return out
}
