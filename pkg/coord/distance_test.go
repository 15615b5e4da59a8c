package coord

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	london = GeodeticPoint{Lat: 51.5073219, Lon: -0.1276474}
	vienna = GeodeticPoint{Lat: 48.2083537, Lon: 16.3725042}
	yerevn = GeodeticPoint{Lat: 40.1872, Lon: 44.5152}
	gyumri = GeodeticPoint{Lat: 40.7929, Lon: 43.8465}
	sydney = GeodeticPoint{Lat: -33.8548157, Lon: 151.2164539}
)

func TestLondonVienna(t *testing.T) {
	d, err := GreatCircleDistance(london, vienna)
	require.NoError(t, err)
	assert.InDelta(t, 1236684.96, d, 0.01)

	r, err := GeodesicInverse(london, vienna)
	require.NoError(t, err)
	assert.InDelta(t, 1238804.78, r.Distance, 0.01)
	assert.InDelta(t, 100.743, r.InitialAzimuth, 0.001)
	assert.InDelta(t, 113.398, r.FinalAzimuth, 0.001)
	assert.InDelta(t, 293.398, r.BackAzimuth(), 0.001)

	assert.Less(t, math.Abs(d-r.Distance)/r.Distance, 0.005)

	assert.InDelta(t, 100.788, Bearing(london.Lat, london.Lon, vienna.Lat, vienna.Lon), 0.001)
}

func TestYerevanGyumri(t *testing.T) {
	r, err := GeodesicInverse(yerevn, gyumri)
	require.NoError(t, err)

	assert.InDelta(t, 87964.556, r.Distance, 0.01)
	assert.InDelta(t, 320.089, r.InitialAzimuth, 0.001)
	assert.InDelta(t, 88040.678, Haversine(yerevn.Lat, yerevn.Lon, gyumri.Lat, gyumri.Lon), 0.001)
}

func TestDistanceSymmetry(t *testing.T) {
	points := []GeodeticPoint{london, vienna, yerevn, gyumri, sydney, {Lat: 0, Lon: 0}, {Lat: 0.5, Lon: 179.7}}

	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		points = append(points, GeodeticPoint{Lat: r.Float64()*180 - 90, Lon: r.Float64()*359.99 - 179.99})
	}

	for i, p1 := range points {
		for _, p2 := range points[i:] {
			d1, err := GreatCircleDistance(p1, p2)
			require.NoError(t, err)
			d2, err := GreatCircleDistance(p2, p1)
			require.NoError(t, err)
			assert.Equal(t, d1, d2, "haversine %v %v", p1, p2)

			r1, err := GeodesicInverse(p1, p2)
			require.NoError(t, err)
			r2, err := GeodesicInverse(p2, p1)
			require.NoError(t, err)
			assert.Equal(t, r1.Distance, r2.Distance, "geodesic %v %v", p1, p2)
		}
	}
}

func TestDistanceSamePoint(t *testing.T) {
	for _, p := range []GeodeticPoint{london, sydney, {Lat: 90, Lon: 0}, {Lat: 0, Lon: 180}} {
		d, err := GreatCircleDistance(p, p)
		require.NoError(t, err)
		assert.Equal(t, 0.0, d)

		r, err := GeodesicInverse(p, p)
		require.NoError(t, err)
		assert.Equal(t, DistanceResult{}, r)
	}
}

func TestDistanceAntipodal(t *testing.T) {
	tests := [][2]GeodeticPoint{
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 180}},
		{{Lat: 0, Lon: 0}, {Lat: 0.5, Lon: 179.7}},
		{{Lat: 40, Lon: 45}, {Lat: -40, Lon: -135}},
	}

	for _, tt := range tests {
		r, err := GeodesicInverse(tt[0], tt[1])
		require.NoError(t, err)

		assert.False(t, math.IsNaN(r.Distance))
		assert.Greater(t, r.Distance, 19_900_000.0)
		assert.Less(t, r.Distance, 20_010_000.0)
		assert.GreaterOrEqual(t, r.InitialAzimuth, 0.0)
		assert.Less(t, r.InitialAzimuth, 360.0)

		d, err := GreatCircleDistance(tt[0], tt[1])
		require.NoError(t, err)
		assert.False(t, math.IsNaN(d))
	}
}

func TestDistanceErrors(t *testing.T) {
	_, err := GreatCircleDistance(london, GeodeticPoint{Lat: 40, Lon: 44, Datum: SK42})
	assert.ErrorIs(t, err, ErrDatum)

	_, err = GeodesicInverse(london, GeodeticPoint{Lat: -91, Lon: 44})
	assert.ErrorIs(t, err, ErrLatitude)
}
