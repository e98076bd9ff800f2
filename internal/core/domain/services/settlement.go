package services

import (
	"cmp"
	"math"
	"slices"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

const (
	// ratingCeiling is the average delivery time, in seconds, that scores zero.
	ratingCeiling = 3600.0
	// ratingScale is the score of an instant delivery.
	ratingScale = 5.0
	// batchPay is multiplied by the pay coefficient of the vehicle class.
	batchPay = 500
)

// Settlement is a domain service that derives a courier's rating and earnings
// from delivered orders and completed batches. Nothing it computes is persisted.
type Settlement struct{}

// NewSettlement creates a new Settlement instance.
func NewSettlement() Settlement {
	return Settlement{}
}

// Rating scores the courier's delivery speed from 0 to 5.
//
// Delivered orders are taken in completion order. The first delivery of a
// batch is measured from the assign time, every following one from the
// previous delivery. Durations are averaged per region and the fastest region
// counts. The second result is false when there are no delivered orders.
func (s Settlement) Rating(orders []*order.Order) (float64, bool) {
	delivered := deliveredInCompletionOrder(orders)
	if len(delivered) == 0 {
		return 0, false
	}

	type stat struct {
		total float64
		count int
	}
	byRegion := make(map[int64]*stat)

	var prev *order.Order
	for _, o := range delivered {
		h := o.Holding()
		from := h.AssignedAt
		if prev != nil && prev.Holding().AssignmentID.IsEqual(h.AssignmentID) {
			from = *prev.CompletedAt()
		}

		st, ok := byRegion[o.Region()]
		if !ok {
			st = &stat{}
			byRegion[o.Region()] = st
		}
		st.total += o.CompletedAt().Sub(from).Seconds()
		st.count++
		prev = o
	}

	best := ratingCeiling
	for _, st := range byRegion {
		best = math.Min(best, st.total/float64(st.count))
	}

	return math.Round((ratingCeiling-best)/ratingCeiling*ratingScale*100) / 100, true
}

// Earnings sums the pay of every completed batch, truncated to an integer.
//
// A batch pays 500 times the average pay coefficient of its delivered orders,
// using the vehicle class recorded on each order. A batch with no known orders
// falls back to its own vehicle class. The second result is false when there
// are no completed batches.
func (s Settlement) Earnings(batches []*assignment.Assignment, orders []*order.Order) (int64, bool) {
	byBatch := make(map[kernel.UUID][]*order.Order)
	for _, o := range orders {
		if !o.IsDelivered() {
			continue
		}
		id := o.Holding().AssignmentID
		byBatch[id] = append(byBatch[id], o)
	}

	var (
		total     float64
		completed int
	)
	for _, b := range batches {
		if !b.IsComplete() {
			continue
		}
		completed++

		members := byBatch[b.ID()]
		if len(members) == 0 {
			total += float64(batchPay * b.VehicleType().PayCoefficient())
			continue
		}

		var sum int
		for _, o := range members {
			sum += o.Holding().VehicleType.PayCoefficient()
		}
		total += batchPay * float64(sum) / float64(len(members))
	}

	if completed == 0 {
		return 0, false
	}
	return int64(total), true
}

func deliveredInCompletionOrder(orders []*order.Order) []*order.Order {
	delivered := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsDelivered() {
			delivered = append(delivered, o)
		}
	}

	slices.SortFunc(delivered, func(a, b *order.Order) int {
		return cmp.Or(a.CompletedAt().Compare(*b.CompletedAt()), cmp.Compare(a.ID(), b.ID()))
	})
	return delivered
}
