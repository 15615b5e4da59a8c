//nolint:gomnd
package coord

import (
	"fmt"
	"math"
)

const (
	zoneWidth = 6.0

	// GOST 51794-2001 uses this rounded value of degrees per radian in the series.
	degPerRad = 57.29577951

	// legacyDegToRad is the truncated factor of the historic implementation, ~1.9 m of northing at 40N.
	legacyDegToRad = 0.0174533

	// Projection band the series are accepted for. The round trip stays under 1e-7 deg
	// up to 49N over a full zone and under 3e-7 deg up to 85N.
	MinBandLatitude = 0.0
	MaxBandLatitude = 84.0

	// series round-off allowed over the band edge when inverting
	bandTolerance = 1e-6

	MaxZone = 60

	// half zone width plus the usual 30' overlap to the neighbour zones
	maxZoneOverlap = 3.5
)

// GaussKruger converts SK42 ellipsoidal coordinates to the 6-degree Gauss-Kruger grid and back
// using the truncated series of GOST 51794-2001. It holds no mutable state.
type GaussKruger struct {
	// Legacy reproduces the historic forward series: truncated degree factor and
	// the mis-nested l^4 easting term.
	Legacy bool
}

func NewGaussKruger() *GaussKruger {
	return &GaussKruger{}
}

// Zone returns the 6-degree zone number of the longitude.
func Zone(lon float64) int {
	return int(math.Floor((lon + zoneWidth) / zoneWidth))
}

// CentralMeridian of the zone, degrees.
func CentralMeridian(zone int) float64 {
	return float64(6*zone - 3)
}

// FalseEasting of the zone: zone number in millions plus 500 km.
func FalseEasting(zone int) float64 {
	return float64(zone)*1e6 + 500_000
}

// Forward projects SK42 lat/lon (degrees) to planar X/Y (meters).
func (g *GaussKruger) Forward(lat, lon float64) (PlanarPoint, error) {
	return g.ForwardZone(lat, lon, Zone(lon))
}

// ForwardZone projects into the given zone, used for points a little over the zone border.
func (g *GaussKruger) ForwardZone(lat, lon float64, n int) (PlanarPoint, error) {
	if err := checkLatLon(lat, lon); err != nil {
		return PlanarPoint{}, err
	}

	if lat < MinBandLatitude || lat > MaxBandLatitude {
		return PlanarPoint{}, fmt.Errorf("%w: %v not in [%v, %v]", ErrOutsideBand, lat, MinBandLatitude, MaxBandLatitude)
	}

	if n < 1 || n > MaxZone {
		return PlanarPoint{}, fmt.Errorf("%w: %d for longitude %v", ErrZone, n, lon)
	}

	if math.Abs(lon-CentralMeridian(n)) > maxZoneOverlap {
		return PlanarPoint{}, fmt.Errorf("%w: longitude %v is too far from zone %d", ErrZone, lon, n)
	}

	rad := math.Pi / 180
	if g.Legacy {
		rad = legacyDegToRad
	}

	b := lat * rad
	l := (lon - CentralMeridian(n)) / degPerRad
	l2 := l * l

	s2 := math.Pow(math.Sin(b), 2)
	s4 := s2 * s2
	s6 := s4 * s2

	x := 6367558.4968*b - math.Sin(2*b)*(16002.8900+66.9607*s2+0.3515*s4-
		l2*(1594561.25+5336.535*s2+26.790*s4+0.149*s6+
			l2*(672483.4-811219.9*s2+5420.0*s4-10.6*s6+
				l2*(278194-830174*s2+572434*s4-16010*s6+
					l2*(109500-574700*s2+863700*s4-398600*s6)))))

	var ys float64
	if g.Legacy {
		ys = 6378245 + 21346.1415*s2 + 107.1590*s4 + 0.5977*s6 +
			l2*(1070204.16-2136826.66*s2+17.98*s4-11.99*s6) +
			l2*(270806-1523417*s2+1327645*s4-21701*s6+
				l2*(79690-866190*s2+1730360*s4-945460*s6))
	} else {
		ys = 6378245 + 21346.1415*s2 + 107.1590*s4 + 0.5977*s6 +
			l2*(1070204.16-2136826.66*s2+17.98*s4-11.99*s6+
				l2*(270806-1523417*s2+1327645*s4-21701*s6+
					l2*(79690-866190*s2+1730360*s4-945460*s6)))
	}

	y := (5+10*float64(n))*1e5 + l*math.Cos(b)*ys

	return PlanarPoint{X: x, Y: y, Zone: n}, nil
}

// ForwardPoint projects a SK42 point.
func (g *GaussKruger) ForwardPoint(p GeodeticPoint) (PlanarPoint, error) {
	if p.Datum != SK42 {
		return PlanarPoint{}, fmt.Errorf("%w: grid is defined on SK42, got %s", ErrDatum, p.Datum)
	}

	return g.Forward(p.Lat, p.Lon)
}

// Inverse converts planar X/Y (meters) to SK42 lat/lon.
func (g *GaussKruger) Inverse(x, y float64) (GeodeticPoint, error) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return GeodeticPoint{}, fmt.Errorf("%w: x=%v y=%v", ErrZone, x, y)
	}

	n := math.Floor(y * 0.000001)
	if n < 1 || n > MaxZone {
		return GeodeticPoint{}, fmt.Errorf("%w: %v from y=%v", ErrZone, n, y)
	}

	if x < 0 {
		return GeodeticPoint{}, fmt.Errorf("%w: negative northing %v", ErrOutsideBand, x)
	}

	b := x / 6367558.4968
	sb2 := math.Pow(math.Sin(b), 2)
	B0 := b + math.Sin(2*b)*(0.00252588685-0.00001491860*sb2+0.00000011904*sb2*sb2)
	z0 := (y - (10*n+5)*100000) / (6378245.0 * math.Cos(B0))
	z2 := z0 * z0

	s2 := math.Pow(math.Sin(B0), 2)
	s4 := s2 * s2
	s6 := s4 * s2

	B := B0 - z2*math.Sin(2*B0)*(0.251684631-0.003369263*s2+0.000011276*s4-
		z2*(0.10500614-0.04559916*s2+0.00228901*s4-0.00002987*s6-
			z2*(0.042858-0.025318*s2+0.014346*s4-0.001264*s6-
				z2*(0.01672-0.00630*s2+0.01188*s4-0.00328*s6))))

	L := 6*(n-0.5)/degPerRad + z0*(1-0.0033467108*s2-0.0000056002*s4-0.0000000187*s6-
		z2*(0.16778975+0.16273586*s2-0.00052490*s4-0.00000846*s6-
			z2*(0.0420025+0.1487407*s2-0.0059420*s4-0.0000150*s6-
				z2*(0.01225+0.09477*s2-0.03282*s4-0.00034*s6-
					z2*(0.0038+0.0524*s2-0.0482*s4-0.0032*s6)))))

	p := GeodeticPoint{Lat: B * 180 / math.Pi, Lon: L * 180 / math.Pi, Datum: SK42}

	if p.Lat > MaxBandLatitude+bandTolerance {
		return GeodeticPoint{}, fmt.Errorf("%w: x=%v gives %v", ErrOutsideBand, x, p.Lat)
	}

	if err := p.Validate(); err != nil {
		return GeodeticPoint{}, err
	}

	return p, nil
}

// InversePoint is Inverse for a PlanarPoint.
func (g *GaussKruger) InversePoint(p PlanarPoint) (GeodeticPoint, error) {
	return g.Inverse(p.X, p.Y)
}
