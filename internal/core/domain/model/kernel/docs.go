// Package kernel provides the domain primitives shared by every aggregate of the
// broadcast service.
//
// The package includes:
//   - UUID: a value object for identifiers that rejects the nil UUID
//   - GeoPoint: a validated latitude/longitude pair
//   - Haversine: great-circle distance in kilometers (Earth radius 6371 km)
//   - BoundingBox: the lat/lng rectangle enclosing a circle, used to bound
//     candidate lookups before exact distances are computed
//
// All values are immutable and safe for concurrent use.
package kernel
