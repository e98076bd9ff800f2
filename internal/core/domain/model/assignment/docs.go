// Package assignment provides the Assignment aggregate: a batch of orders
// committed to one courier's current delivery run.
//
// Key business rules:
//   - A batch belongs to exactly one courier and records the vehicle class at creation
//   - Orders are added only while the batch is being built; once sealed the
//     membership can only shrink (eviction or release)
//   - The assign time is refreshed on every membership change
//   - A batch completes when it has members and all of them are delivered;
//     an emptied batch stays open
package assignment
