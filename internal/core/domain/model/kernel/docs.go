// Package kernel provides the value objects shared by the courier, order and
// assignment aggregates.
//
// The package includes:
//   - UUID: identifier of an assignment (batch), backed by github.com/google/uuid
//   - Weight: an order weight or a remaining carry capacity with four-decimal precision
//   - VehicleType: the courier vehicle class with its maximum carry weight and pay coefficient
//   - Period and Periods: time-of-day ranges parsed from "HH:MM-HH:MM" strings and the
//     overlap test between working hours and delivery windows
//
// All value objects are immutable and safe for concurrent use.
package kernel
