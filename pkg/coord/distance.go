//nolint:gomnd
package coord

import (
	"fmt"
	"math"

	"github.com/tidwall/geodesic"
)

// EarthRadius is the WGS84 equatorial radius used as the sphere radius of the haversine
// distance. It overestimates distances by up to ~0.3% against the ellipsoid.
const EarthRadius = 6378137.0

// Haversine returns the great circle distance in meters between two lat/lon pairs.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	toRadian := math.Pi / 180

	dphi := (lat2 - lat1) * toRadian
	dlambda := (lon2 - lon1) * toRadian

	a := math.Sin(dphi/2)*math.Sin(dphi/2) + math.Cos(lat1*toRadian)*math.Cos(lat2*toRadian)*math.Sin(dlambda/2)*math.Sin(dlambda/2)

	return 2 * EarthRadius * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Bearing is the initial great circle bearing from the first point to the second, [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	toRadian := math.Pi / 180

	y := math.Sin((lon2-lon1)*toRadian) * math.Cos(lat2*toRadian)
	x := math.Cos(lat1*toRadian)*math.Sin(lat2*toRadian) - math.Sin(lat1*toRadian)*math.Cos(lat2*toRadian)*math.Cos((lon2-lon1)*toRadian)

	return normalizeAzimuth(math.Atan2(y, x) * 180 / math.Pi)
}

// GreatCircleDistance is the haversine distance between two points of the same datum.
func GreatCircleDistance(p1, p2 GeodeticPoint) (float64, error) {
	if err := checkPair(p1, p2); err != nil {
		return 0, err
	}

	return Haversine(p1.Lat, p1.Lon, p2.Lat, p2.Lon), nil
}

// GeodesicInverse solves the inverse geodesic problem (Karney) on the ellipsoid of the points'
// datum. Azimuths are in [0, 360), FinalAzimuth is the forward azimuth at p2. Coincident points
// give zero. The distance is the same in both directions.
func GeodesicInverse(p1, p2 GeodeticPoint) (DistanceResult, error) {
	if err := checkPair(p1, p2); err != nil {
		return DistanceResult{}, err
	}

	if p1.Lat == p2.Lat && p1.Lon == p2.Lon {
		return DistanceResult{}, nil
	}

	var s12, azi1, azi2 float64

	e := p1.Datum.Ellipsoid()
	geodesic.NewEllipsoid(e.A, e.F).Inverse(p1.Lat, p1.Lon, p2.Lat, p2.Lon, &s12, &azi1, &azi2)

	return DistanceResult{
		Distance:       s12,
		InitialAzimuth: normalizeAzimuth(azi1),
		FinalAzimuth:   normalizeAzimuth(azi2),
	}, nil
}

func checkPair(p1, p2 GeodeticPoint) error {
	if err := p1.Validate(); err != nil {
		return err
	}

	if err := p2.Validate(); err != nil {
		return err
	}

	if p1.Datum != p2.Datum {
		return fmt.Errorf("%w: points in %s and %s", ErrDatum, p1.Datum, p2.Datum)
	}

	return nil
}
