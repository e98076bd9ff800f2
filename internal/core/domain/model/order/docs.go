// Package order provides the Order aggregate root and its lifecycle.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Holding: The claim of a courier on an order within one batch
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders have a positive id, a weight in [0.01, 50], a positive region and delivery windows
//   - Order status follows Available -> Held -> Delivered, and Held -> Available on eviction
//   - An order that is no longer Available cannot be claimed (Conflict)
//   - Only the holding courier can complete an order, strictly after its assign time
package order
