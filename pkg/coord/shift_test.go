package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftToGlobal(t *testing.T) {
	s := NewShifter(MustProfile(ProfileArmenia), true)

	lat, lon, err := s.Shift(40.2095414, 44.5136365, 0, ToGlobal)
	require.NoError(t, err)

	assert.InDelta(t, 40.2094272, lat, 1e-7)
	assert.InDelta(t, 44.5123968, lon, 1e-7)
}

func TestShiftProfiles(t *testing.T) {
	tests := []struct {
		profile  string
		lat, lon float64
	}{
		{ProfileArmenia, 40.2094271841266, 44.51239680077705},
		{ProfileCaucasus, 40.209426667018434, 44.51240407848155},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			s := NewShifter(MustProfile(tt.profile), true)

			lat, lon, err := s.Shift(40.2095414, 44.5136365, 0, ToGlobal)
			require.NoError(t, err)

			assert.InDelta(t, tt.lat, lat, 1e-9)
			assert.InDelta(t, tt.lon, lon, 1e-9)
		})
	}
}

func TestShiftRoundTrip(t *testing.T) {
	s := NewShifter(MustProfile(ProfileArmenia), true)

	for lat := 38.25; lat < 42; lat += 0.25 {
		for lon := 42.75; lon < 48; lon += 0.25 {
			for _, h := range []float64{0, 1000, 3000} {
				p := GeodeticPoint{Lat: lat, Lon: lon, Height: h, Datum: WGS84}

				sk, err := s.ToOtherDatum(p)
				require.NoError(t, err)
				assert.Equal(t, SK42, sk.Datum)
				assert.Equal(t, h, sk.Height)

				back, err := s.ToOtherDatum(sk)
				require.NoError(t, err)
				assert.Equal(t, WGS84, back.Datum)

				// a few millimeters
				assert.InDelta(t, lat, back.Lat, 5e-8)
				assert.InDelta(t, lon, back.Lon, 5e-8)
			}
		}
	}
}

func TestShiftRegion(t *testing.T) {
	strict := NewShifter(MustProfile(ProfileArmenia), true)

	_, _, err := strict.Shift(57.712277, 33.643766, 0, ToLocal)
	assert.ErrorIs(t, err, ErrOutsideRegion)
	assert.True(t, IsInputError(err))

	loose := NewShifter(MustProfile(ProfileArmenia), false)
	_, _, err = loose.Shift(57.712277, 33.643766, 0, ToLocal)
	assert.NoError(t, err)

	_, _, err = strict.Shift(95, 44, 0, ToLocal)
	assert.ErrorIs(t, err, ErrLatitude)
}

func TestShiftDirection(t *testing.T) {
	s := NewShifter(MustProfile(ProfileGost), true)

	db, dl := s.Corrections(50, 36.2, 0)

	lat1, lon1, err := s.Shift(50, 36.2, 0, ToLocal)
	require.NoError(t, err)
	lat2, lon2, err := s.Shift(50, 36.2, 0, ToGlobal)
	require.NoError(t, err)

	assert.InDelta(t, 50-db/3600, lat1, 1e-12)
	assert.InDelta(t, 36.2-dl/3600, lon1, 1e-12)
	assert.InDelta(t, 100.0, lat1+lat2, 1e-12)
	assert.InDelta(t, 72.4, lon1+lon2, 1e-12)

	assert.Equal(t, SK42, ToLocal.Target())
	assert.Equal(t, WGS84, ToGlobal.Target())

	dir, err := DirectionFrom(SK42)
	require.NoError(t, err)
	assert.Equal(t, ToGlobal, dir)

	dir, err = DirectionFrom(WGS84)
	require.NoError(t, err)
	assert.Equal(t, ToLocal, dir)
}

func TestShiftUnknownDatum(t *testing.T) {
	s := NewShifter(MustProfile(ProfileArmenia), true)

	_, err := DirectionFrom(Datum(7))
	assert.ErrorIs(t, err, ErrDatum)

	_, err = s.ToOtherDatum(GeodeticPoint{Lat: 40.2, Lon: 44.5, Datum: Datum(7)})
	assert.ErrorIs(t, err, ErrDatum)
	assert.True(t, IsInputError(err))

	_, _, err = s.Shift(40.2, 44.5, 0, Direction(5))
	assert.ErrorIs(t, err, ErrDatum)

	_, err = DefaultConverter().Convert(GeodeticPoint{Lat: 40.2, Lon: 44.5}, Datum(7))
	assert.ErrorIs(t, err, ErrDatum)

	_, err = GeodesicInverse(GeodeticPoint{Lat: 40.2, Lon: 44.5, Datum: Datum(7)}, GeodeticPoint{Lat: 40, Lon: 44, Datum: Datum(7)})
	assert.ErrorIs(t, err, ErrDatum)
}

func TestProfiles(t *testing.T) {
	p, err := LookupProfile("")
	require.NoError(t, err)
	assert.Equal(t, ProfileArmenia, p.Name)
	assert.False(t, p.Superseded)

	p, err = LookupProfile("Caucasus-General")
	require.NoError(t, err)
	assert.True(t, p.Superseded)

	_, err = LookupProfile("moon")
	assert.ErrorIs(t, err, ErrUnknownProfile)

	names := make([]string, 0)
	for _, p := range Profiles() {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{ProfileArmenia, ProfileCaucasus, ProfileGost}, names)

	assert.Equal(t, "23.92,-141.27,-80.9,0,0.35,0.82,-0.12", MustProfile(ProfileGost).Params.ToWGS84())
}
