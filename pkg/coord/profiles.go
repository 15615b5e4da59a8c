package coord

import (
	"fmt"
	"sort"
	"strings"
)

const (
	ProfileArmenia  = "armenia"
	ProfileCaucasus = "caucasus-general"
	ProfileGost     = "gost-51794"

	DefaultProfile = ProfileArmenia
)

// ShiftParams are the seven transformation elements SK42 -> WGS84 in the GOST 51794 convention.
type ShiftParams struct {
	Dx float64 `json:"dx" yaml:"dx"` // m
	Dy float64 `json:"dy" yaml:"dy"`
	Dz float64 `json:"dz" yaml:"dz"`

	Wx float64 `json:"wx" yaml:"wx"` // arc-seconds
	Wy float64 `json:"wy" yaml:"wy"`
	Wz float64 `json:"wz" yaml:"wz"`

	// Scale correction, ppm.
	Ms float64 `json:"ms" yaml:"ms"`
}

// ToWGS84 returns the parameters as a proj4 +towgs84 value (position vector rotations).
func (p ShiftParams) ToWGS84() string {
	return fmt.Sprintf("%g,%g,%g,%g,%g,%g,%g", p.Dx, p.Dy, p.Dz, neg(p.Wx), neg(p.Wy), neg(p.Wz), p.Ms)
}

func neg(v float64) float64 {
	if v == 0 {
		return 0
	}

	return -v
}

type Region struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

func (r Region) Contains(lat, lon float64) bool {
	return lat >= r.MinLat && lat <= r.MaxLat && lon >= r.MinLon && lon <= r.MaxLon
}

func (r Region) String() string {
	return fmt.Sprintf("%g..%gN %g..%gE", r.MinLat, r.MaxLat, r.MinLon, r.MaxLon)
}

// Profile is a named, region-tuned parameter set for the SK42 <-> WGS84 shift.
type Profile struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      ShiftParams `json:"params"`
	Local       Ellipsoid   `json:"-"`
	Global      Ellipsoid   `json:"-"`
	Region      Region      `json:"region"`
	// Superseded marks a calibration that was overridden by another profile and kept for comparison.
	Superseded bool `json:"superseded"`
}

var profiles = map[string]Profile{
	ProfileArmenia: {
		Name:        ProfileArmenia,
		Description: "EPSG:15865 Pulkovo 1942 to WGS 84, best for Armenia (+-2m near the Georgian border)",
		Params:      ShiftParams{Dx: 25, Dy: -141, Dz: -78.5, Wx: 0, Wy: -0.35, Wz: -0.736, Ms: 0},
		Local:       Krasovsky,
		Global:      WGS84Ellipsoid,
		Region:      Region{MinLat: 38, MaxLat: 42, MinLon: 42.5, MaxLon: 48},
	},
	ProfileCaucasus: {
		Name:        ProfileCaucasus,
		Description: "manual calibration for the Caucasus area (dx 25+-2, dy -141+-2, dz -80+-3 m)",
		Params:      ShiftParams{Dx: 24, Dy: -143.9, Dz: -80.9, Wx: 0, Wy: -0.35, Wz: -0.82, Ms: -0.12},
		Local:       Krasovsky,
		Global:      WGS84Ellipsoid,
		Region:      Region{MinLat: 38, MaxLat: 44.5, MinLon: 36.5, MaxLon: 50.5},
		Superseded:  true,
	},
	ProfileGost: {
		Name:        ProfileGost,
		Description: "GOST 51794-2001 national parameters",
		Params:      ShiftParams{Dx: 23.92, Dy: -141.27, Dz: -80.9, Wx: 0, Wy: -0.35, Wz: -0.82, Ms: -0.12},
		Local:       Krasovsky,
		Global:      WGS84Ellipsoid,
		Region:      Region{MinLat: 35, MaxLat: 82, MinLon: 19, MaxLon: 180},
	},
}

func LookupProfile(name string) (Profile, error) {
	if name == "" {
		name = DefaultProfile
	}

	if p, ok := profiles[strings.ToLower(name)]; ok {
		return p, nil
	}

	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// MustProfile is LookupProfile for the built-in names.
func MustProfile(name string) Profile {
	p, err := LookupProfile(name)
	if err != nil {
		panic(err)
	}

	return p
}

func Profiles() []Profile {
	res := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		res = append(res, p)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})

	return res
}
