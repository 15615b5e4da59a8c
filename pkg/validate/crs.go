package validate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kdudkov/cortran/pkg/coord"
)

// CRS is an EPSG code of one of the supported systems.
type CRS int

const (
	WGS84 CRS = 4326
	SK42  CRS = 4284

	// Pulkovo 1942 / Gauss-Kruger zone N is 28400 + N
	gridBase    CRS = 28400
	gridMinZone     = 2
	gridMaxZone     = 32
)

// Grid returns the Gauss-Kruger CRS of the zone.
func Grid(zone int) CRS {
	return gridBase + CRS(zone)
}

// GridFor returns the Gauss-Kruger CRS of the zone containing the longitude.
func GridFor(lon float64) CRS {
	return Grid(coord.Zone(lon))
}

func ParseCRS(s string) (CRS, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "epsg:")

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid crs %q", s)
	}

	c := CRS(n)
	if !c.Valid() {
		return 0, fmt.Errorf("unsupported crs %d", n)
	}

	return c, nil
}

func (c CRS) Valid() bool {
	return c == WGS84 || c == SK42 || c.IsGrid()
}

func (c CRS) IsGrid() bool {
	z := c.Zone()

	return z >= gridMinZone && z <= gridMaxZone
}

// Zone of a grid CRS, 0 for geographic ones.
func (c CRS) Zone() int {
	if c > gridBase && c < gridBase+100 {
		return int(c - gridBase)
	}

	return 0
}

// Datum of the CRS.
func (c CRS) Datum() coord.Datum {
	if c == WGS84 {
		return coord.WGS84
	}

	return coord.SK42
}

func (c CRS) String() string {
	return "EPSG:" + strconv.Itoa(int(c))
}

// Oracle transforms a coordinate pair between two systems. Geographic pairs are lat, lon
// in degrees, grid pairs are x (northing), y (easting) in meters.
type Oracle interface {
	Name() string
	Transform(ctx context.Context, a, b float64, src, dst CRS) (float64, float64, error)
}
