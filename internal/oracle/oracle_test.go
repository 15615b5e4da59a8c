package oracle

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdudkov/cortran/pkg/coord"
	"github.com/kdudkov/cortran/pkg/validate"
)

func TestEngine(t *testing.T) {
	e := NewEngine(coord.DefaultConverter())
	ctx := context.Background()

	x, y, err := e.Transform(ctx, 40, 45, validate.WGS84, validate.Grid(8))
	require.NoError(t, err)
	assert.InDelta(t, 4429619.76, x, 0.01)
	assert.InDelta(t, 8500104.82, y, 0.01)

	lat, lon, err := e.Transform(ctx, x, y, validate.Grid(8), validate.WGS84)
	require.NoError(t, err)
	assert.InDelta(t, 40, lat, 1e-7)
	assert.InDelta(t, 45, lon, 1e-7)

	lat, lon, err = e.Transform(ctx, 40.2095414, 44.5136365, validate.SK42, validate.WGS84)
	require.NoError(t, err)
	assert.InDelta(t, 40.2094272, lat, 1e-7)
	assert.InDelta(t, 44.5123968, lon, 1e-7)

	// over the zone border
	loose := NewEngine(coord.NewConverter(coord.NewGaussKruger(), coord.NewShifter(coord.MustProfile(coord.ProfileArmenia), false)))
	x7, y7, err := loose.Transform(ctx, 40, 41.8, validate.WGS84, validate.Grid(8))
	require.NoError(t, err)
	assert.Equal(t, 8, coord.NewPlanarPoint(x7, y7).Zone)

	_, _, err = e.Transform(ctx, 40, 41.8, validate.WGS84, validate.Grid(8))
	assert.ErrorIs(t, err, coord.ErrOutsideRegion)

	_, _, err = e.Transform(ctx, x, y, validate.Grid(7), validate.WGS84)
	assert.ErrorIs(t, err, coord.ErrZone)

	_, _, err = e.Transform(ctx, 40, 45, validate.CRS(3857), validate.WGS84)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestProjAgainstEngine(t *testing.T) {
	conv := coord.DefaultConverter()
	e := NewEngine(conv)
	p := NewProj(conv.Shifter().Profile())
	ctx := context.Background()

	for _, pt := range validate.DefaultPoints() {
		grid := validate.GridFor(pt.Lon)

		x1, y1, err := e.Transform(ctx, pt.Lat, pt.Lon, validate.WGS84, grid)
		require.NoError(t, err)

		x2, y2, err := p.Transform(ctx, pt.Lat, pt.Lon, validate.WGS84, grid)
		require.NoError(t, err)

		assert.InDelta(t, x1, x2, 0.5, pt.Name)
		assert.InDelta(t, y1, y2, 0.5, pt.Name)
	}

	lat, lon, err := p.Transform(ctx, 40.2095414, 44.5136365, validate.SK42, validate.WGS84)
	require.NoError(t, err)
	assert.InDelta(t, 40.2094272, lat, 1e-6)
	assert.InDelta(t, 44.5123968, lon, 1e-6)

	assert.Equal(t, 2, p.cache.Len())
}

func TestProjDefinition(t *testing.T) {
	p := NewProj(coord.MustProfile(coord.ProfileArmenia))

	def, err := p.Definition(validate.Grid(8))
	require.NoError(t, err)
	assert.Equal(t, "+proj=tmerc +lat_0=0 +lon_0=45 +k=1 +x_0=8500000 +y_0=0 +ellps=krass +towgs84=25,-141,-78.5,0,0.35,0.736,0 +units=m +no_defs", def)

	_, err = p.Definition(validate.CRS(3857))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestEpsgIO(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)

			return
		}

		assert.Equal(t, "/srs/transform/45.732452,39.87047.json", r.URL.Path)
		assert.Equal(t, "4326", r.URL.Query().Get("s_srs"))
		assert.Equal(t, "28408", r.URL.Query().Get("t_srs"))
		assert.Equal(t, "default", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"status": "ok", "number_result": 1, "results": [{"x": 8562721.45, "y": "4414317.21", "z": 0}]}`)
	}))
	defer srv.Close()

	o := NewEpsgIO(srv.URL+"/", time.Second, 3)
	o.backoff = time.Millisecond

	x, y, err := o.Transform(context.Background(), 39.87047, 45.732452, validate.WGS84, validate.Grid(8))
	require.NoError(t, err)

	assert.Equal(t, 4414317.21, x)
	assert.Equal(t, 8562721.45, y)
	assert.Equal(t, int32(2), calls.Load())
}

func TestEpsgIOEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"status": "error", "results": []}`)
	}))
	defer srv.Close()

	_, _, err := NewEpsgIO(srv.URL, time.Second, 1).Transform(context.Background(), 40, 45, validate.WGS84, validate.SK42)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestNew(t *testing.T) {
	conv := coord.DefaultConverter()

	for _, k := range Kinds() {
		o, err := New(Options{Kind: k, Timeout: time.Second, Attempts: 1}, conv)
		require.NoError(t, err)
		assert.Equal(t, k, o.Name())
	}

	_, err := New(Options{Kind: "pyproj"}, conv)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestValidatorWithProj(t *testing.T) {
	conv := coord.DefaultConverter()

	rep, err := validate.New(conv, NewProj(conv.Shifter().Profile()), validate.DefaultHeight).
		Run(context.Background(), validate.DefaultPoints(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, rep.Failed)
	assert.Equal(t, KindProj, rep.Oracle)
	assert.Less(t, rep.Max, 10.0)
}
