// Package kernel contains the shared value objects of the dispatch domain:
// UUID identifiers for orders and payment artifacts, ActorID for the external
// messaging identity of couriers, requesters and admins, and GeoPoint for
// shared locations. All value objects are immutable and validate themselves;
// the zero value of each is invalid.
package kernel
