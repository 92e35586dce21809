// Package routing orders a set of geocoded waypoints into a short visiting
// tour with pinned start and end points.
//
// The pipeline is: BuildTour (greedy nearest neighbor) → Improve (2-opt with
// fixed endpoints) → Length → BuildLinks (chunked map-navigation URLs).
// Distances are great-circle (haversine) kilometres; road networks and
// asymmetric travel costs are not modelled.
//
// All functions are pure: they perform no I/O and share no state, so
// independent calls may run concurrently without locking.
package routing
