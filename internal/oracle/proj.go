package oracle

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ctessum/geom/proj"

	"github.com/kdudkov/cortran/internal/cache"
	"github.com/kdudkov/cortran/pkg/coord"
	"github.com/kdudkov/cortran/pkg/validate"
)

const transformTTL = time.Hour

// Proj is an offline oracle on the proj4 port, the SK42 systems carry +towgs84 of the profile.
type Proj struct {
	towgs84 string
	cache   *cache.Cache[proj.Transformer]
}

func NewProj(p coord.Profile) *Proj {
	o := &Proj{towgs84: p.Params.ToWGS84()}
	o.cache = cache.NewWithTTL[proj.Transformer](transformTTL, o.load)

	return o
}

func (o *Proj) Name() string {
	return KindProj
}

// Definition returns the proj4 string of the system.
func (o *Proj) Definition(c validate.CRS) (string, error) {
	switch {
	case c == validate.WGS84:
		return "+proj=longlat +datum=WGS84 +no_defs", nil
	case c == validate.SK42:
		return fmt.Sprintf("+proj=longlat +ellps=krass +towgs84=%s +no_defs", o.towgs84), nil
	case c.IsGrid():
		z := c.Zone()

		return fmt.Sprintf("+proj=tmerc +lat_0=0 +lon_0=%g +k=1 +x_0=%.0f +y_0=0 +ellps=krass +towgs84=%s +units=m +no_defs",
			coord.CentralMeridian(z), coord.FalseEasting(z), o.towgs84), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, c)
	}
}

func (o *Proj) Transform(_ context.Context, a, b float64, src, dst validate.CRS) (float64, float64, error) {
	if src == dst {
		return a, b, nil
	}

	tr, err := o.cache.Load(key(src, dst))
	if err != nil {
		return 0, 0, err
	}

	// proj axis order is lon, lat and easting, northing
	x, y, err := tr(b, a)
	if err != nil {
		return 0, 0, err
	}

	return y, x, nil
}

func key(src, dst validate.CRS) string {
	return strconv.Itoa(int(src)) + ">" + strconv.Itoa(int(dst))
}

func (o *Proj) load(k string) (proj.Transformer, error) {
	s1, s2, ok := strings.Cut(k, ">")
	if !ok {
		return nil, fmt.Errorf("invalid key %s", k)
	}

	src, err := validate.ParseCRS(s1)
	if err != nil {
		return nil, err
	}

	dst, err := validate.ParseCRS(s2)
	if err != nil {
		return nil, err
	}

	from, err := o.sr(src)
	if err != nil {
		return nil, err
	}

	to, err := o.sr(dst)
	if err != nil {
		return nil, err
	}

	return from.NewTransform(to)
}

func (o *Proj) sr(c validate.CRS) (*proj.SR, error) {
	def, err := o.Definition(c)
	if err != nil {
		return nil, err
	}

	return proj.Parse(def)
}
