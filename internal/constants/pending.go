package constants

import "github.com/simonzhangsm/capnproto/internal/decl"

// UnfinishedValue is a compound default value whose compilation was
// deferred because it referenced a constant without a bootstrap schema yet
// available.
type UnfinishedValue struct {
	Type   decl.Type
	Value  decl.Value
	Assign func(decl.Value)
}

// PendingQueue drains UnfinishedValues by index, not by snapshot, because
// draining one value can append more (a value may itself reference another
// unfinished constant).
type PendingQueue struct {
	items []UnfinishedValue
}

// Add queues v for the second pass; assign is called with the eventual
// compiled result.
func (q *PendingQueue) Add(t decl.Type, v decl.Value, assign func(decl.Value)) {
	q.items = append(q.items, UnfinishedValue{Type: t, Value: v, Assign: assign})
}

// Len reports how many items are currently queued, including ones appended
// during a Drain in progress.
func (q *PendingQueue) Len() int { return len(q.items) }

// Drain compiles every queued value with compile, re-reading q.Len() on
// every iteration so values appended mid-drain (by compile calling Add
// again) are also processed in this same pass.
func (q *PendingQueue) Drain(compile func(decl.Type, decl.Value) decl.Value) {
	for i := 0; i < len(q.items); i++ {
		item := q.items[i]
		item.Assign(compile(item.Type, item.Value))
	}
	q.items = q.items[:0]
}
