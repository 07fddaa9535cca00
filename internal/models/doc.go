// Package models defines the core domain models for RideSplit.
//
// # Engine Models
//
// The cost-allocation engine works on these types:
//   - Participant: a person sharing the ride, identified by a caller-owned ID
//   - Stop: a point on a trip's route, with who boards and who alights there
//   - Leg: the stretch between two consecutive stops and who rode it
//   - RideCalculation: the cost split of one trip direction
//   - FullRideCalculation: outbound and return merged into one ledger
//   - Settlement: a single payment instruction produced by balance netting
//
// # Host Models
//
// The service layer additionally uses:
//   - Trip: one authored trip direction (stops, gap distances, cost, payer)
//   - Ride: a saved set of participants and trips
//
// # Design Principles
//
// 1. **Stable identity**: participants are joined by ID everywhere, names are display-only
// 2. **Computed, not stored**: calculations and settlements are projections recomputed from a Ride
// 3. **Explicit absence**: optional trip directions use Optional instead of nil pointers
// 4. **Deterministic order**: every emitted list follows the participant or stop order
package models
