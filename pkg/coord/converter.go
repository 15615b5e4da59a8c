package coord

import (
	"fmt"
)

// Converter chains the datum shift and the projection: WGS84 lat/lon <-> SK42 lat/lon <-> SK42 X/Y.
// The grid is only defined on SK42, so WGS84 points are always shifted before projecting.
type Converter struct {
	proj  *GaussKruger
	shift *Shifter
}

func NewConverter(proj *GaussKruger, shift *Shifter) *Converter {
	return &Converter{proj: proj, shift: shift}
}

// DefaultConverter uses the exact series and the default profile in strict mode.
func DefaultConverter() *Converter {
	return NewConverter(NewGaussKruger(), NewShifter(MustProfile(DefaultProfile), true))
}

func (c *Converter) Projection() *GaussKruger {
	return c.proj
}

func (c *Converter) Shifter() *Shifter {
	return c.shift
}

// WgsToPlanar converts WGS84 lat/lon with ellipsoidal height h to SK42 X/Y.
func (c *Converter) WgsToPlanar(lat, lon, h float64) (PlanarPoint, error) {
	lat1, lon1, err := c.shift.Shift(lat, lon, h, ToLocal)
	if err != nil {
		return PlanarPoint{}, err
	}

	return c.proj.Forward(lat1, lon1)
}

// PlanarToWgs converts SK42 X/Y to WGS84, h is the ellipsoidal height used by the shift.
func (c *Converter) PlanarToWgs(x, y, h float64) (GeodeticPoint, error) {
	p, err := c.proj.Inverse(x, y)
	if err != nil {
		return GeodeticPoint{}, err
	}

	p.Height = h

	return c.shift.ToOtherDatum(p)
}

// ToPlanar projects a point of either datum.
func (c *Converter) ToPlanar(p GeodeticPoint) (PlanarPoint, error) {
	switch p.Datum {
	case SK42:
		return c.proj.ForwardPoint(p)
	case WGS84:
		return c.WgsToPlanar(p.Lat, p.Lon, p.Height)
	default:
		return PlanarPoint{}, fmt.Errorf("%w: %s", ErrDatum, p.Datum)
	}
}

// ToGeodetic returns the planar point as lat/lon in the requested datum.
func (c *Converter) ToGeodetic(p PlanarPoint, datum Datum, h float64) (GeodeticPoint, error) {
	switch datum {
	case SK42:
		gp, err := c.proj.InversePoint(p)
		gp.Height = h

		return gp, err
	case WGS84:
		return c.PlanarToWgs(p.X, p.Y, h)
	default:
		return GeodeticPoint{}, fmt.Errorf("%w: %s", ErrDatum, datum)
	}
}

// Convert moves the point to the target datum, returning it unchanged when it is already there.
func (c *Converter) Convert(p GeodeticPoint, target Datum) (GeodeticPoint, error) {
	if err := p.Validate(); err != nil {
		return GeodeticPoint{}, err
	}

	if !target.Valid() {
		return GeodeticPoint{}, fmt.Errorf("%w: %s", ErrDatum, target)
	}

	if p.Datum == target {
		return p, nil
	}

	return c.shift.ToOtherDatum(p)
}
