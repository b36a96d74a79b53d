package dag

import (
	"fmt"
	"sort"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
	g.order = append(g.order, id)
}

// HasNode reports whether the graph contains id.
func (g *Graph) HasNode(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all node IDs in insertion order.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return append([]string(nil), g.order...)
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist or if the edge would create a self-reference.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s: %w", fromID, fromID, ErrCycle)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode

	return nil
}

// HasEdge reports whether toID already depends directly on fromID.
func (g *Graph) HasEdge(fromID, toID string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	to, ok := g.nodes[toID]
	if !ok {
		return false
	}
	_, ok = to.deps[fromID]
	return ok
}

// Dependencies returns the sorted IDs of the nodes the given node depends on.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.deps), nil
}

// Dependents returns the sorted IDs of the nodes that depend on the given node.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.dependents), nil
}

// Path returns a chain of IDs from fromID to toID following dependent edges,
// or nil when toID is not reachable. A node reaches itself.
func (g *Graph) Path(fromID, toID string) []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	start, ok := g.nodes[fromID]
	if !ok {
		return nil
	}
	if _, ok := g.nodes[toID]; !ok {
		return nil
	}

	visited := make(map[string]bool)
	var walk func(n *node, trail []string) []string
	walk = func(n *node, trail []string) []string {
		trail = append(trail, n.id)
		if n.id == toID {
			return trail
		}
		visited[n.id] = true
		for _, id := range sortedKeys(n.dependents) {
			if visited[id] {
				continue
			}
			if found := walk(n.dependents[id], trail); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(start, nil)
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, indicating the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Use classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("%w involving node '%s'", ErrCycle, n.id)
		}

		temporary[n.id] = true
		for _, id := range sortedKeys(n.dependents) {
			if err := visit(n.dependents[id]); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}

	return nil
}

// TopologicalOrder returns ids ordered so that every node follows all of its
// dependencies. Among nodes that are ready at the same time, the one earlier
// in ids comes first. Every dependency of a listed node must itself be listed.
func (g *Graph) TopologicalOrder(ids []string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, ok := g.nodes[id]; !ok {
			return nil, fmt.Errorf("node not found: %s", id)
		}
		if _, dup := rank[id]; dup {
			return nil, fmt.Errorf("node listed twice: %s", id)
		}
		rank[id] = i
	}

	pending := make(map[string]int, len(ids))
	for _, id := range ids {
		for depID := range g.nodes[id].deps {
			if _, ok := rank[depID]; !ok {
				return nil, fmt.Errorf("node '%s' depends on '%s', which is not part of the requested set", id, depID)
			}
		}
		pending[id] = len(g.nodes[id].deps)
	}

	var ready []string
	for _, id := range ids {
		if pending[id] == 0 {
			ready = append(ready, id)
		}
	}

	result := make([]string, 0, len(ids))
	for len(ready) > 0 {
		sort.SliceStable(ready, func(i, j int) bool { return rank[ready[i]] < rank[ready[j]] })
		current := ready[0]
		ready = ready[1:]
		result = append(result, current)

		for depID := range g.nodes[current].dependents {
			if _, ok := rank[depID]; !ok {
				continue
			}
			pending[depID]--
			if pending[depID] == 0 {
				ready = append(ready, depID)
			}
		}
	}

	if len(result) != len(ids) {
		for _, id := range ids {
			if pending[id] > 0 {
				return nil, fmt.Errorf("%w involving node '%s'", ErrCycle, id)
			}
		}
	}
	return result, nil
}

func sortedKeys(m map[string]*node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
