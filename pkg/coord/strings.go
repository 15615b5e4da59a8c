package coord

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	r1 = regexp.MustCompile(`[xX]=?(?P<x>\d{5,}(?:\.\d+)?)[;,\s]*[yY]=?(?P<y>\d{5,}(?:\.\d+)?)`)
	r2 = regexp.MustCompile(`(?P<x>-?\d+\.\d+)[;,\s]*(?P<y>-?\d+\.\d+)`)
	r3 = regexp.MustCompile(`(?P<x>\d+\.\d+)([nNsS])[;,\s]*(?P<y>\d+\.\d+)([eEwW])`)
)

// Parse reads a point written as "x5709130 y6648746" (SK42 grid), "40.2 44.5" or "40.2N 44.5E"
// and returns it in WGS84. h is the ellipsoidal height used to shift grid points.
func (c *Converter) Parse(s string, h float64) (GeodeticPoint, error) {
	s = strings.Trim(s, " \t\n\r.,")

	if res := r1.FindStringSubmatch(s); res != nil {
		x, err := strconv.ParseFloat(res[1], 64)
		if err != nil {
			return GeodeticPoint{}, fmt.Errorf("%w: %s", ErrParse, err.Error())
		}

		y, err := strconv.ParseFloat(res[2], 64)
		if err != nil {
			return GeodeticPoint{}, fmt.Errorf("%w: %s", ErrParse, err.Error())
		}

		return c.PlanarToWgs(x, y, h)
	}

	// r3 first, r2 would match its numbers without the hemisphere letters
	if res := r3.FindStringSubmatch(s); res != nil {
		lat, err := strconv.ParseFloat(res[1], 64)
		if err != nil {
			return GeodeticPoint{}, fmt.Errorf("%w: %s", ErrParse, err.Error())
		}

		if res[2] == "S" || res[2] == "s" {
			lat = -lat
		}

		lon, err := strconv.ParseFloat(res[3], 64)
		if err != nil {
			return GeodeticPoint{}, fmt.Errorf("%w: %s", ErrParse, err.Error())
		}

		if res[4] == "W" || res[4] == "w" {
			lon = -lon
		}

		return NewGeodeticPoint(lat, lon, h, WGS84)
	}

	if res := r2.FindStringSubmatch(s); res != nil {
		lat, err := strconv.ParseFloat(res[1], 64)
		if err != nil {
			return GeodeticPoint{}, fmt.Errorf("%w: %s", ErrParse, err.Error())
		}

		lon, err := strconv.ParseFloat(res[2], 64)
		if err != nil {
			return GeodeticPoint{}, fmt.Errorf("%w: %s", ErrParse, err.Error())
		}

		return NewGeodeticPoint(lat, lon, h, WGS84)
	}

	return GeodeticPoint{}, fmt.Errorf("%w: %q", ErrParse, s)
}
