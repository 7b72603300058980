package kernel

import (
	"errors"
	"fmt"
	"math"

	"helpdispatch/internal/pkg/errs"
	"helpdispatch/internal/pkg/guard"
)

const (
	// EarthRadiusKm is the mean Earth radius used by Haversine.
	EarthRadiusKm = 6371.0

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ErrGeoPointIsNotConstructed is returned when a zero-value GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is a position on Earth in decimal degrees.
//
// Example:
//
//	job, _ := kernel.NewGeoPoint(12.97, 77.59)
//	helper, _ := kernel.NewGeoPoint(12.99, 77.61)
//	km := job.DistanceTo(helper)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint validates latitude in [-90, 90] and longitude in [-180, 180].
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(lat), p.setLongitude(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate rejects zero-value points.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// IsSet reports whether the point was built by NewGeoPoint.
func (p GeoPoint) IsSet() bool {
	return p.Validate() == nil
}

func (p GeoPoint) Latitude() float64 {
	return p.lat
}

func (p GeoPoint) Longitude() float64 {
	return p.lng
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

// DistanceTo returns the great-circle distance to other in kilometers.
func (p GeoPoint) DistanceTo(other GeoPoint) float64 {
	return Haversine(p.lat, p.lng, other.lat, other.lng)
}

// BoundingBox returns the rectangle that encloses every point within radiusKm.
// Longitude bounds widen towards the poles; near them the box spans all
// longitudes. A box that crosses the antimeridian wraps, leaving MinLng
// greater than MaxLng.
func (p GeoPoint) BoundingBox(radiusKm float64) BoundingBox {
	dLat := radiusKm / EarthRadiusKm * 180 / math.Pi

	minLat := math.Max(p.lat-dLat, MinLatitude)
	maxLat := math.Min(p.lat+dLat, MaxLatitude)

	cosLat := math.Cos(p.lat * math.Pi / 180)
	if cosLat < 1e-6 || minLat == MinLatitude || maxLat == MaxLatitude {
		return BoundingBox{MinLat: minLat, MaxLat: maxLat, MinLng: MinLongitude, MaxLng: MaxLongitude}
	}

	dLng := dLat / cosLat
	if dLng >= 180 {
		return BoundingBox{MinLat: minLat, MaxLat: maxLat, MinLng: MinLongitude, MaxLng: MaxLongitude}
	}

	minLng, maxLng := p.lng-dLng, p.lng+dLng
	if minLng < MinLongitude {
		minLng += 360
	}
	if maxLng > MaxLongitude {
		maxLng -= 360
	}

	return BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLng: minLng,
		MaxLng: maxLng,
	}
}

// BoundingBox is an inclusive lat/lng rectangle. When it crosses the
// antimeridian MinLng > MaxLng and the longitude range is
// [MinLng, 180] plus [-180, MaxLng].
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// CrossesAntimeridian reports whether the longitude range wraps past ±180.
func (b BoundingBox) CrossesAntimeridian() bool {
	return b.MinLng > b.MaxLng
}

// Contains reports whether the coordinates fall inside the box.
func (b BoundingBox) Contains(lat, lng float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	if b.CrossesAntimeridian() {
		return lng >= b.MinLng || lng <= b.MaxLng
	}
	return lng >= b.MinLng && lng <= b.MaxLng
}

// Haversine computes the great-circle distance in kilometers between two
// coordinates given in degrees. It is symmetric and zero for identical points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	if lat1 == lat2 && lng1 == lng2 {
		return 0
	}

	const rad = math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func (p *GeoPoint) setLatitude(lat float64) error {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLongitude(lng float64) error {
	if math.IsNaN(lng) || lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, MinLongitude, MaxLongitude)
	}

	p.lng = lng
	return nil
}
