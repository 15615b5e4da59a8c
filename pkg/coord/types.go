package coord

import (
	"fmt"
	"math"
	"strings"
)

type Datum int

const (
	WGS84 Datum = iota
	SK42
)

func (d Datum) String() string {
	switch d {
	case WGS84:
		return "WGS84"
	case SK42:
		return "SK42"
	default:
		return fmt.Sprintf("datum(%d)", int(d))
	}
}

func (d Datum) Valid() bool {
	return d == WGS84 || d == SK42
}

// Other returns the second datum of the pair.
func (d Datum) Other() Datum {
	if d == SK42 {
		return WGS84
	}

	return SK42
}

func (d Datum) Ellipsoid() Ellipsoid {
	if d == SK42 {
		return Krasovsky
	}

	return WGS84Ellipsoid
}

func (d Datum) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(d.String())), nil
}

func (d *Datum) UnmarshalText(b []byte) error {
	v, err := ParseDatum(string(b))
	if err != nil {
		return err
	}

	*d = v

	return nil
}

// ParseDatum accepts datum names and the EPSG codes of the geographic systems.
func ParseDatum(s string) (Datum, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wgs84", "wgs-84", "wgs", "4326", "epsg:4326":
		return WGS84, nil
	case "sk42", "sk-42", "sk", "pulkovo", "4284", "epsg:4284":
		return SK42, nil
	}

	return WGS84, fmt.Errorf("%w: %q", ErrDatum, s)
}

// GeodeticPoint is an ellipsoidal position in degrees, height in meters.
type GeodeticPoint struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Height float64 `json:"h"`
	Datum  Datum   `json:"datum"`
}

func NewGeodeticPoint(lat, lon, h float64, datum Datum) (GeodeticPoint, error) {
	p := GeodeticPoint{Lat: lat, Lon: lon, Height: h, Datum: datum}

	return p, p.Validate()
}

func (p GeodeticPoint) Validate() error {
	if !p.Datum.Valid() {
		return fmt.Errorf("%w: %s", ErrDatum, p.Datum)
	}

	return checkLatLon(p.Lat, p.Lon)
}

func (p GeodeticPoint) String() string {
	return fmt.Sprintf("%.7f, %.7f (%s)", p.Lat, p.Lon, p.Datum)
}

// PlanarPoint is a Gauss-Kruger grid position: X northing, Y easting with the zone number
// in the leading digits.
type PlanarPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zone int     `json:"zone"`
}

func NewPlanarPoint(x, y float64) PlanarPoint {
	return PlanarPoint{X: x, Y: y, Zone: int(math.Floor(y / 1_000_000))}
}

func (p PlanarPoint) String() string {
	return fmt.Sprintf("x=%.2f y=%.2f (zone %d)", p.X, p.Y, p.Zone)
}

type DistanceResult struct {
	Distance       float64 `json:"distance"`
	InitialAzimuth float64 `json:"azimuth1"`
	FinalAzimuth   float64 `json:"azimuth2"`
}

// BackAzimuth is the azimuth from the second point back to the first one.
func (r DistanceResult) BackAzimuth() float64 {
	return normalizeAzimuth(r.FinalAzimuth + 180)
}

func checkLatLon(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: %v", ErrLatitude, lat)
	}

	if math.IsNaN(lon) || lon <= -180 || lon > 180 {
		return fmt.Errorf("%w: %v", ErrLongitude, lon)
	}

	return nil
}

func normalizeAzimuth(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}

	return a
}
