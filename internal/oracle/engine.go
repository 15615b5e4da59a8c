package oracle

import (
	"context"
	"fmt"

	"github.com/kdudkov/cortran/pkg/coord"
	"github.com/kdudkov/cortran/pkg/validate"
)

// Engine answers with our own projection and datum shift, heights are taken as 0.
type Engine struct {
	conv *coord.Converter
}

func NewEngine(conv *coord.Converter) *Engine {
	return &Engine{conv: conv}
}

func (e *Engine) Name() string {
	return KindEngine
}

func (e *Engine) Transform(_ context.Context, a, b float64, src, dst validate.CRS) (float64, float64, error) {
	if !src.Valid() || !dst.Valid() {
		return 0, 0, fmt.Errorf("%w: %s -> %s", ErrUnsupported, src, dst)
	}

	if src == dst {
		return a, b, nil
	}

	// everything goes through SK42 lat/lon
	var p coord.GeodeticPoint

	switch {
	case src.IsGrid():
		if z := coord.NewPlanarPoint(a, b).Zone; z != src.Zone() {
			return 0, 0, fmt.Errorf("%w: y=%v is not in zone %d", coord.ErrZone, b, src.Zone())
		}

		var err error
		if p, err = e.conv.Projection().Inverse(a, b); err != nil {
			return 0, 0, err
		}
	default:
		var err error
		if p, err = e.conv.Convert(coord.GeodeticPoint{Lat: a, Lon: b, Datum: src.Datum()}, coord.SK42); err != nil {
			return 0, 0, err
		}
	}

	switch {
	case dst.IsGrid():
		xy, err := e.conv.Projection().ForwardZone(p.Lat, p.Lon, dst.Zone())
		if err != nil {
			return 0, 0, err
		}

		return xy.X, xy.Y, nil
	default:
		res, err := e.conv.Convert(p, dst.Datum())
		if err != nil {
			return 0, 0, err
		}

		return res.Lat, res.Lon, nil
	}
}
