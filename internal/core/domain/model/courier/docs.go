// Package courier provides the Courier aggregate root and the capacity ledger
// that tracks how much weight a courier can still take into its current batch.
//
// The package includes:
//   - Courier: The aggregate root holding the courier profile and remaining capacity
//   - MaxCapacity, CanCarry, Debit: Pure capacity arithmetic over kernel.Weight
//
// Key business rules:
//   - Couriers have an externally assigned positive id, a vehicle class,
//     a non-empty set of regions and non-empty working hours
//   - The maximum carry weight comes from the vehicle class (foot 10, bike 15, car 50)
//   - Remaining capacity is only debited by Take and only restored by ResetCapacity
//     or a vehicle class change; it never goes negative
package courier
