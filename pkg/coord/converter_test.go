package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testData struct {
	lat, lon float64
	x, y     float64
}

func gostConverter() *Converter {
	return NewConverter(NewGaussKruger(), NewShifter(MustProfile(ProfileGost), true))
}

func TestConvert(t *testing.T) {
	data := []testData{
		{57.712277, 33.643766, 6399533, 6538495},
		{50.0, 36.200553, 5544706, 7299419},
	}

	c := gostConverter()

	for _, d := range data {
		xy, err := c.WgsToPlanar(d.lat, d.lon, 0)
		require.NoError(t, err)

		assert.InDelta(t, d.x, xy.X, 1)
		assert.InDelta(t, d.y, xy.Y, 1)

		p, err := c.PlanarToWgs(d.x, d.y, 0)
		require.NoError(t, err)

		assert.Equal(t, WGS84, p.Datum)
		assert.InDelta(t, d.lat, p.Lat, 0.000005)
		assert.InDelta(t, d.lon, p.Lon, 0.000005)
	}
}

func TestConvertArmenia(t *testing.T) {
	c := DefaultConverter()

	xy, err := c.WgsToPlanar(40, 45, 1000)
	require.NoError(t, err)

	assert.InDelta(t, 4429619.76, xy.X, 0.01)
	assert.InDelta(t, 8500104.80, xy.Y, 0.01)
	assert.Equal(t, 8, xy.Zone)

	p, err := c.ToGeodetic(xy, WGS84, 1000)
	require.NoError(t, err)

	assert.InDelta(t, 40, p.Lat, 5e-8)
	assert.InDelta(t, 45, p.Lon, 5e-8)
	assert.Equal(t, 1000.0, p.Height)

	sk, err := c.ToGeodetic(xy, SK42, 0)
	require.NoError(t, err)
	assert.Equal(t, SK42, sk.Datum)

	xy2, err := c.ToPlanar(sk)
	require.NoError(t, err)
	assert.InDelta(t, xy.X, xy2.X, 0.001)
	assert.InDelta(t, xy.Y, xy2.Y, 0.001)

	xy3, err := c.ToPlanar(GeodeticPoint{Lat: 40, Lon: 45, Height: 1000, Datum: WGS84})
	require.NoError(t, err)
	assert.Equal(t, xy, xy3)
}

func TestConvertDatum(t *testing.T) {
	c := DefaultConverter()

	p := GeodeticPoint{Lat: 40.2095414, Lon: 44.5136365, Datum: SK42}

	same, err := c.Convert(p, SK42)
	require.NoError(t, err)
	assert.Equal(t, p, same)

	w, err := c.Convert(p, WGS84)
	require.NoError(t, err)
	assert.InDelta(t, 40.2094272, w.Lat, 1e-7)
	assert.InDelta(t, 44.5123968, w.Lon, 1e-7)

	_, err = c.Convert(GeodeticPoint{Lat: 100}, SK42)
	assert.ErrorIs(t, err, ErrLatitude)
}

func TestStringConvert(t *testing.T) {
	data := []struct {
		s        string
		lat, lon float64
	}{
		{"x5709130 y6648746", 51.492209773241264, 35.14007432073565},
		{"x5709130y6648746", 51.492209773241264, 35.14007432073565},
		{"X=5709130, y6648746", 51.492209773241264, 35.14007432073565},
		{"X=5709130,y6648746", 51.492209773241264, 35.14007432073565},
		{"51.49 35.14", 51.49, 35.14},
		{"51.49,  -35.14", 51.49, -35.14},
		{"51.49N  35.14E", 51.49, 35.14},
		{"51.49N,  35.14w", 51.49, -35.14},
		{"33.85S 151.21E", -33.85, 151.21},
	}

	c := gostConverter()

	for _, d := range data {
		t.Run(d.s, func(t *testing.T) {
			p, err := c.Parse(d.s, 0)
			require.NoError(t, err)

			assert.Equal(t, WGS84, p.Datum)
			assert.InDelta(t, d.lat, p.Lat, 1e-9)
			assert.InDelta(t, d.lon, p.Lon, 1e-9)
		})
	}
}

func TestStringConvertErrors(t *testing.T) {
	c := DefaultConverter()

	_, err := c.Parse("hello", 0)
	assert.ErrorIs(t, err, ErrParse)

	_, err = c.Parse("95.1 44.2", 0)
	assert.ErrorIs(t, err, ErrLatitude)

	// gost grid point is outside of the armenian region
	_, err = c.Parse("x5709130 y6648746", 0)
	assert.ErrorIs(t, err, ErrOutsideRegion)

	p, err := c.Parse("x4452988 y8458594", 0)
	require.NoError(t, err)
	assert.InDelta(t, 40.2094272, p.Lat, 1e-7)
	assert.InDelta(t, 44.5123968, p.Lon, 1e-7)
}
