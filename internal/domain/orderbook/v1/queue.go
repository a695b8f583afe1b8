package orderbookv1

import (
	"container/heap"
	"fmt"
	"sort"
)

// Queue is a price-time priority queue over resting orders for one side of
// the book. Bids rank by highest limit price first, asks by lowest; ties
// break by lowest arrival sequence. Market orders carry a zero limit price
// and rank accordingly; the queue does not special-case them.
//
// An order's key must never change while it is a member: quantity mutations
// happen outside the queue, via PopBest, Fill, Reinsert.
type Queue struct {
	h sideHeap
}

// NewQueue creates an empty queue for the given side.
func NewQueue(side Side) *Queue {
	q := &Queue{h: sideHeap{side: side}}
	heap.Init(&q.h)
	return q
}

// Side returns the side this queue holds.
func (q *Queue) Side() Side {
	return q.h.side
}

// Len returns the number of resting orders.
func (q *Queue) Len() int {
	return len(q.h.orders)
}

// PeekBest returns the best order without removing it, or nil when empty.
func (q *Queue) PeekBest() *Order {
	if len(q.h.orders) == 0 {
		return nil
	}
	return q.h.orders[0]
}

// PopBest removes and returns the best order. Popping an empty queue is a
// contract violation; the clearing loop guards with its own empty check.
func (q *Queue) PopBest() (*Order, error) {
	if len(q.h.orders) == 0 {
		return nil, fmt.Errorf("pop on empty %s queue", q.h.side)
	}
	return heap.Pop(&q.h).(*Order), nil
}

// Insert adds an order to the queue.
func (q *Queue) Insert(order *Order) {
	heap.Push(&q.h, order)
}

// Reinsert re-establishes ordering for an order whose quantity was reduced
// after a partial fill.
func (q *Queue) Reinsert(order *Order) {
	heap.Push(&q.h, order)
}

// DrainByArrival empties the queue and returns the orders sorted by arrival
// sequence. Used only at session end.
func (q *Queue) DrainByArrival() []*Order {
	drained := q.h.orders
	q.h.orders = nil
	sort.Sort(Orders(drained))
	return drained
}

// Snapshot returns a copy of the resting orders in price-time priority
// order. The queue itself is untouched.
func (q *Queue) Snapshot() []*Order {
	orders := make([]*Order, len(q.h.orders))
	copy(orders, q.h.orders)
	view := sideHeap{side: q.h.side, orders: orders}
	sort.Sort(&view)
	return view.orders
}

// sideHeap implements heap.Interface with a side-dependent comparator.
type sideHeap struct {
	side   Side
	orders []*Order
}

func (h *sideHeap) Len() int { return len(h.orders) }

func (h *sideHeap) Less(i, j int) bool {
	a, b := h.orders[i], h.orders[j]
	if cmp := a.LimitPrice.Cmp(b.LimitPrice); cmp != 0 {
		if h.side == SideBuy {
			return cmp > 0 // higher bid first
		}
		return cmp < 0 // lower ask first
	}
	return a.Sequence < b.Sequence // earlier arrival wins
}

func (h *sideHeap) Swap(i, j int) {
	h.orders[i], h.orders[j] = h.orders[j], h.orders[i]
}

func (h *sideHeap) Push(x any) {
	h.orders = append(h.orders, x.(*Order))
}

func (h *sideHeap) Pop() any {
	old := h.orders
	n := len(old)
	order := old[n-1]
	old[n-1] = nil
	h.orders = old[:n-1]
	return order
}
