// Package liveness implements the post-pass instruction indexer and
// variable-liveness analyzer: after an entry function's body is fully
// built, every instruction gets a strictly increasing program-order
// index, and every variable gets first_write/last_read indices, with
// loop bodies extending a referenced variable's liveness across the
// whole loop.
package liveness

import "github.com/hlslc/frontend/internal/ir"

// firstIndex is the first index handed out; 0 means "unused" and 1 is
// reserved for the function-entry event.
const firstIndex uint32 = 2

// Index assigns a strictly increasing index to every instruction reachable
// from body, descending into if-branches and loop bodies, and annotates
// every loop node with next_index: the index assigned to the first
// instruction after the loop.
func Index(arena *ir.Arena, body ir.InstrList) {
	counter := firstIndex
	indexList(arena, body, &counter)
}

func indexList(arena *ir.Arena, list ir.InstrList, counter *uint32) {
	for _, id := range list {
		node := arena.Get(id)
		if node == nil {
			continue
		}
		node.Index = *counter
		*counter++

		switch node.Kind {
		case ir.KindIf:
			data := node.Data.(ir.IfData)
			indexList(arena, data.Then, counter)
			indexList(arena, data.Else, counter)

		case ir.KindLoop:
			data := node.Data.(ir.LoopData)
			indexList(arena, data.Body, counter)
			data.NextIndex = *counter
			node.Data = data
		}
	}
}
