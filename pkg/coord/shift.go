//nolint:gomnd
package coord

import (
	"fmt"
	"math"
)

// arc-seconds in a radian
const ro = 206264.8062

type Direction int

const (
	// ToLocal is WGS84 -> SK42.
	ToLocal Direction = iota
	// ToGlobal is SK42 -> WGS84.
	ToGlobal
)

func (d Direction) String() string {
	if d == ToLocal {
		return "to_local"
	}

	return "to_global"
}

// Target is the datum of the shifted point.
func (d Direction) Target() Datum {
	if d == ToLocal {
		return SK42
	}

	return WGS84
}

// DirectionFrom returns the direction that moves a point away from the datum.
func DirectionFrom(from Datum) (Direction, error) {
	switch from {
	case SK42:
		return ToGlobal, nil
	case WGS84:
		return ToLocal, nil
	default:
		return ToLocal, fmt.Errorf("%w: %s", ErrDatum, from)
	}
}

// Shifter applies the seven parameter shift of a Profile as latitude/longitude corrections
// (GOST 51794-2001, eq. 22-23). Outside the profile region the error grows without bound,
// strict shifters refuse such points.
type Shifter struct {
	profile Profile
	strict  bool

	// mean ellipsoid and the differences WGS84 - local
	a   float64
	e2  float64
	da  float64
	de2 float64
}

func NewShifter(p Profile, strict bool) *Shifter {
	e2l := p.Local.E2()
	e2g := p.Global.E2()

	return &Shifter{
		profile: p,
		strict:  strict,
		a:       (p.Local.A + p.Global.A) / 2,
		e2:      (e2l + e2g) / 2,
		da:      p.Global.A - p.Local.A,
		de2:     e2g - e2l,
	}
}

func (s *Shifter) Profile() Profile {
	return s.profile
}

func (s *Shifter) Strict() bool {
	return s.strict
}

// Shift moves lat/lon (degrees) with ellipsoidal height h (meters) in the direction.
func (s *Shifter) Shift(lat, lon, h float64, dir Direction) (float64, float64, error) {
	if err := checkLatLon(lat, lon); err != nil {
		return 0, 0, err
	}

	if dir != ToLocal && dir != ToGlobal {
		return 0, 0, fmt.Errorf("%w: unknown direction %d", ErrDatum, dir)
	}

	if s.strict && !s.profile.Region.Contains(lat, lon) {
		return 0, 0, fmt.Errorf("%w: %.6f, %.6f not in %s (profile %s)", ErrOutsideRegion, lat, lon, s.profile.Region, s.profile.Name)
	}

	db, dl := s.Corrections(lat, lon, h)

	if dir == ToLocal {
		return lat - db/3600, lon - dl/3600, nil
	}

	return lat + db/3600, lon + dl/3600, nil
}

// ToOtherDatum shifts the point to the other datum of the pair. Height is carried unchanged.
func (s *Shifter) ToOtherDatum(p GeodeticPoint) (GeodeticPoint, error) {
	dir, err := DirectionFrom(p.Datum)
	if err != nil {
		return GeodeticPoint{}, err
	}

	lat, lon, err := s.Shift(p.Lat, p.Lon, p.Height, dir)
	if err != nil {
		return GeodeticPoint{}, err
	}

	return GeodeticPoint{Lat: lat, Lon: lon, Height: p.Height, Datum: dir.Target()}, nil
}

// Corrections returns dB and dL in arc-seconds at the point.
func (s *Shifter) Corrections(lat, lon, h float64) (float64, float64) {
	return s.dB(lat, lon, h), s.dL(lat, lon, h)
}

func (s *Shifter) dB(Bd, Ld, H float64) float64 {
	p := s.profile.Params
	ms := p.Ms * 1e-6

	b := Bd * math.Pi / 180
	l := Ld * math.Pi / 180

	sinB, cosB := math.Sin(b), math.Cos(b)
	sinL, cosL := math.Sin(l), math.Cos(l)

	w := 1 - s.e2*sinB*sinB
	m := s.a * (1 - s.e2) / math.Pow(w, 1.5)
	n := s.a / math.Sqrt(w)

	return ro/(m+H)*(n/s.a*s.e2*sinB*cosB*s.da+(n*n/s.a/s.a+1)*n*sinB*cosB*s.de2/2-(p.Dx*cosL+p.Dy*sinL)*sinB+p.Dz*cosB) -
		p.Wx*sinL*(1+s.e2*math.Cos(2*b)) + p.Wy*cosL*(1+s.e2*math.Cos(2*b)) - ro*ms*s.e2*sinB*cosB
}

func (s *Shifter) dL(Bd, Ld, H float64) float64 {
	p := s.profile.Params

	b := Bd * math.Pi / 180
	l := Ld * math.Pi / 180

	sinB, cosB := math.Sin(b), math.Cos(b)
	sinL, cosL := math.Sin(l), math.Cos(l)

	n := s.a / math.Sqrt(1-s.e2*sinB*sinB)

	return ro/((n+H)*cosB)*(-p.Dx*sinL+p.Dy*cosL) + math.Tan(b)*(1-s.e2)*(p.Wx*cosL+p.Wy*sinL) - p.Wz
}
