// Package services provides domain services that orchestrate business operations
// across the courier, order and assignment aggregates. They are pure and
// synchronous: callers load the aggregates, run a service and persist the result.
//
// The package includes:
//   - BatchDispatcher: builds a courier's batch from the shared order pool
//   - Reconciler: re-validates an open batch after a courier profile change
//   - Settlement: computes a courier's rating and earnings from delivered work
package services
