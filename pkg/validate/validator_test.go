package validate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdudkov/cortran/pkg/coord"
)

// gridOracle projects with the converter, failing for the listed latitudes.
type gridOracle struct {
	conv  *coord.Converter
	fail  map[float64]bool
	calls int
}

func (o *gridOracle) Name() string {
	return "test"
}

func (o *gridOracle) Transform(_ context.Context, a, b float64, src, dst CRS) (float64, float64, error) {
	o.calls++

	if src != WGS84 || !dst.IsGrid() {
		return 0, 0, errors.New("unsupported")
	}

	if o.fail[a] {
		return 0, 0, errors.New("service unavailable")
	}

	xy, err := o.conv.WgsToPlanar(a, b, 0)
	if err != nil {
		return 0, 0, err
	}

	return xy.X, xy.Y, nil
}

func TestValidateDefaultPoints(t *testing.T) {
	conv := coord.DefaultConverter()
	v := New(conv, &gridOracle{conv: conv}, DefaultHeight)

	var got []Residual

	rep, err := v.Run(context.Background(), DefaultPoints(), func(r Residual) {
		got = append(got, r)
	})
	require.NoError(t, err)

	assert.Len(t, rep.Residuals, 62)
	assert.Len(t, got, 62)
	assert.Equal(t, 0, rep.Failed)
	assert.Equal(t, 62, rep.Ok())
	assert.Equal(t, coord.ProfileArmenia, rep.Profile)
	assert.Equal(t, "test", rep.Oracle)

	assert.InDelta(t, -0.27, rep.MeanDX, 0.05)
	assert.InDelta(t, -1.99, rep.MeanDY, 0.05)
	assert.InDelta(t, 2.12, rep.Max, 0.05)
	assert.NotEmpty(t, rep.MaxAt)

	assert.Equal(t, 1, got[0].N)
	assert.Equal(t, "p1", got[0].Point)
	assert.Equal(t, 8, coord.NewPlanarPoint(got[0].X1, got[0].Y1).Zone)
	assert.False(t, rep.Finished.Before(rep.Started))
}

func TestValidateNoHeight(t *testing.T) {
	conv := coord.DefaultConverter()

	rep, err := New(conv, &gridOracle{conv: conv}, 0).Run(context.Background(), DefaultPoints(), nil)
	require.NoError(t, err)

	assert.Less(t, rep.Max, 0.5)
}

func TestValidateFailures(t *testing.T) {
	conv := coord.DefaultConverter()
	o := &gridOracle{conv: conv, fail: map[float64]bool{41.000630: true}}

	rep, err := New(conv, o, DefaultHeight).Run(context.Background(), DefaultPoints()[:16], nil)
	require.NoError(t, err)

	assert.Len(t, rep.Residuals, 16)
	assert.Equal(t, 2, rep.Failed)
	assert.True(t, rep.Residuals[8].Failed())
	assert.True(t, strings.Contains(rep.Residuals[8].Error, "service unavailable"))
	assert.False(t, rep.Residuals[9].Failed())
	assert.Contains(t, rep.String(), "2 failed")

	// points outside of the profile region fail on the shift
	rep, err = New(conv, o, DefaultHeight).Run(context.Background(), []ReferencePoint{{Name: "moscow", Lat: 55.75, Lon: 37.62}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, 0.0, rep.MeanDX)
}

func TestValidateCancel(t *testing.T) {
	conv := coord.DefaultConverter()
	o := &gridOracle{conv: conv}

	ctx, cancel := context.WithCancel(context.Background())

	n := 0
	_, err := New(conv, o, DefaultHeight).Run(ctx, DefaultPoints(), func(Residual) {
		n++
		if n == 3 {
			cancel()
		}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, n)
}

func TestCRS(t *testing.T) {
	assert.Equal(t, CRS(28408), GridFor(44.5))
	assert.Equal(t, 8, Grid(8).Zone())
	assert.True(t, Grid(8).IsGrid())
	assert.False(t, WGS84.IsGrid())
	assert.Equal(t, coord.SK42, Grid(8).Datum())
	assert.Equal(t, coord.WGS84, WGS84.Datum())
	assert.Equal(t, "EPSG:4284", SK42.String())

	c, err := ParseCRS("epsg:28407")
	require.NoError(t, err)
	assert.Equal(t, Grid(7), c)

	_, err = ParseCRS("3857")
	assert.Error(t, err)

	_, err = ParseCRS("wgs")
	assert.Error(t, err)
}
