package validate

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/kdudkov/cortran/pkg/coord"
)

const DefaultHeight = 1000.0

// Residual is the result of one reference point.
type Residual struct {
	N     int     `json:"n"`
	Point string  `json:"point"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	DX    float64 `json:"dx"` // m
	DY    float64 `json:"dy"` // m
	Error string  `json:"error,omitempty"`
}

func (r Residual) Failed() bool {
	return r.Error != ""
}

// Distance is the planar length of the residual, m.
func (r Residual) Distance() float64 {
	return math.Hypot(r.DX, r.DY)
}

type Report struct {
	Oracle    string     `json:"oracle"`
	Profile   string     `json:"profile"`
	Height    float64    `json:"height"`
	Started   time.Time  `json:"started"`
	Finished  time.Time  `json:"finished"`
	Residuals []Residual `json:"residuals"`
	// mean signed residuals, cm
	MeanDX float64 `json:"mean_dx_cm"`
	MeanDY float64 `json:"mean_dy_cm"`
	// largest residual length, cm
	Max    float64 `json:"max_cm"`
	MaxAt  string  `json:"max_at,omitempty"`
	Failed int     `json:"failed"`
}

func (r *Report) Ok() int {
	return len(r.Residuals) - r.Failed
}

func (r *Report) String() string {
	return fmt.Sprintf("%s/%s: %d points, %d failed, X error %.1f cm, Y error %.1f cm, max %.1f cm",
		r.Oracle, r.Profile, len(r.Residuals), r.Failed, r.MeanDX, r.MeanDY, r.Max)
}

// Validator round trips reference points: WGS84 -> grid by the oracle, grid -> SK42 by the
// projection, SK42 -> WGS84 by the shift at the configured height and once more to the grid
// by the oracle. The difference of the two grid positions is the drift of the calibration.
type Validator struct {
	conv   *coord.Converter
	oracle Oracle
	height float64
	logger *slog.Logger
}

func New(conv *coord.Converter, oracle Oracle, height float64) *Validator {
	return &Validator{
		conv:   conv,
		oracle: oracle,
		height: height,
		logger: slog.Default().With("logger", "validator", "oracle", oracle.Name()),
	}
}

// Run validates the points. Oracle failures mark the point as failed, a cancelled ctx stops the run.
// progress, if not nil, is called after each point.
func (v *Validator) Run(ctx context.Context, points []ReferencePoint, progress func(Residual)) (*Report, error) {
	rep := &Report{
		Oracle:    v.oracle.Name(),
		Profile:   v.conv.Shifter().Profile().Name,
		Height:    v.height,
		Started:   time.Now(),
		Residuals: make([]Residual, 0, len(points)),
	}

	var sx, sy float64

	for i, p := range points {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r, err := v.check(ctx, p)
		r.N = i + 1

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			v.logger.Warn("point failed", "point", p.Name, "error", err.Error())
			r.Error = err.Error()
			rep.Failed++
		} else {
			v.logger.Debug(fmt.Sprintf("%s %.3f %.3f", p.Name, r.DX, r.DY))

			sx += r.DX
			sy += r.DY

			if d := r.Distance() * 100; d > rep.Max {
				rep.Max = d
				rep.MaxAt = p.Name
			}
		}

		rep.Residuals = append(rep.Residuals, r)

		if progress != nil {
			progress(r)
		}
	}

	if n := rep.Ok(); n > 0 {
		rep.MeanDX = sx / float64(n) * 100
		rep.MeanDY = sy / float64(n) * 100
	}

	rep.Finished = time.Now()
	v.logger.Info(rep.String())

	return rep, nil
}

func (v *Validator) check(ctx context.Context, p ReferencePoint) (Residual, error) {
	r := Residual{Point: p.Name, Lat: p.Lat, Lon: p.Lon}

	if err := p.Validate(); err != nil {
		return r, err
	}

	grid := GridFor(p.Lon)
	if !grid.IsGrid() {
		return r, fmt.Errorf("%w: no grid for longitude %v", coord.ErrZone, p.Lon)
	}

	x1, y1, err := v.oracle.Transform(ctx, p.Lat, p.Lon, WGS84, grid)
	if err != nil {
		return r, fmt.Errorf("oracle: %w", err)
	}

	r.X1, r.Y1 = x1, y1

	w, err := v.conv.PlanarToWgs(x1, y1, v.height)
	if err != nil {
		return r, err
	}

	// the shifted point may fall into the neighbour zone, keep the first one
	x2, y2, err := v.oracle.Transform(ctx, w.Lat, w.Lon, WGS84, grid)
	if err != nil {
		return r, fmt.Errorf("oracle: %w", err)
	}

	r.X2, r.Y2 = x2, y2
	r.DX = x1 - x2
	r.DY = y1 - y2

	return r, nil
}
