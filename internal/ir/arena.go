package ir

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena owns every Node allocated for one compilation context. The whole
// IR drops in a single arena reset, which here is simply letting the
// Arena value become unreachable.
type Arena struct {
	nodes []Node
}

// NewArena creates an empty arena; slot 0 is reserved for NoNodeID.
func NewArena() *Arena {
	return &Arena{nodes: make([]Node, 1, 256)}
}

// New allocates a node and returns its handle.
func (a *Arena) New(n Node) NodeID {
	id, err := safecast.Conv[uint32](len(a.nodes))
	if err != nil {
		panic(fmt.Errorf("ir arena overflow: %w", err))
	}
	a.nodes = append(a.nodes, n)
	return NodeID(id)
}

// Get returns a mutable pointer to the node, or nil for an invalid id.
func (a *Arena) Get(id NodeID) *Node {
	if !id.IsValid() || int(id) >= len(a.nodes) {
		return nil
	}
	return &a.nodes[id]
}

// Len reports how many nodes are allocated, sentinel excluded.
func (a *Arena) Len() int { return len(a.nodes) - 1 }
