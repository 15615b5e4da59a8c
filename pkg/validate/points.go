package validate

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kdudkov/cortran/pkg/coord"
)

// ReferencePoint is a surveyed WGS84 position.
type ReferencePoint struct {
	Name string  `yaml:"name" json:"name"`
	Lat  float64 `yaml:"lat" json:"lat"`
	Lon  float64 `yaml:"lon" json:"lon"`
}

type pointsFile struct {
	Points []ReferencePoint `yaml:"points"`
}

func (p ReferencePoint) Validate() error {
	return coord.GeodeticPoint{Lat: p.Lat, Lon: p.Lon}.Validate()
}

// Armenia with a ~0.5 degree grid.
var defaultPoints = named([][2]float64{
	{41.167283, 43.001862}, {41.167283, 43.501740}, {41.167283, 44.001617}, {41.167283, 44.502869},
	{41.168317, 45.001373}, {41.168317, 45.502625}, {41.166249, 46.001129}, {41.166249, 46.501007},
	{41.000630, 43.005981}, {41.000500, 43.500023}, {41.000630, 44.000244}, {41.004775, 44.502869},
	{41.004775, 45.002747}, {41.002703, 45.505371}, {41.006848, 46.005249}, {41.000889, 46.501007},
	{40.672306, 43.005981}, {40.668140, 43.505859}, {40.672306, 44.005737}, {40.672306, 44.511108},
	{40.672306, 45.010986}, {40.672306, 45.505371}, {40.672306, 46.010742}, {40.672306, 46.510620},
	{40.338170, 43.000488}, {40.338170, 43.505859}, {40.342357, 44.011230}, {40.342357, 44.505615},
	{40.346544, 45.010986}, {40.350731, 45.505371}, {40.342357, 46.005249}, {40.346544, 46.499634},
	{39.998164, 43.005981}, {40.006580, 43.505859}, {40.002372, 44.011230}, {40.006580, 44.505615},
	{40.002372, 45.010986}, {40.010787, 45.505371}, {40.006580, 46.005249}, {40.010787, 46.510620},
	{39.669142, 44.011230}, {39.664914, 44.516602}, {39.673370, 45.010986}, {39.664914, 45.510864},
	{39.673370, 45.999756}, {39.673370, 46.499634}, {39.677598, 47.010498}, {39.673370, 47.510376},
	{39.334297, 44.505615}, {39.342794, 45.010986}, {39.338546, 45.505371}, {39.342794, 46.016235},
	{39.351290, 46.505127}, {39.347043, 47.010498}, {39.338546, 47.510376},
	{39.006379, 45.505371}, {39.010648, 46.010742}, {39.001043, 46.501694}, {38.997841, 47.002258},
	{38.666212, 46.005249}, {38.668356, 46.507874}, {38.668356, 47.007751},
}, "p")

// Northern row along the Georgian border, excluded from the default run because the regional
// parameters are off by up to 2 m there.
var disabledPoints = named([][2]float64{
	{41.335576, 43.005981}, {41.339700, 43.505859}, {41.339700, 44.005737}, {41.339700, 44.505615},
	{41.331451, 45.005493}, {41.339700, 45.505371}, {41.339700, 45.999756}, {41.335576, 46.505127},
}, "n")

// DefaultPoints returns a copy of the built-in reference points.
func DefaultPoints() []ReferencePoint {
	return clonePoints(defaultPoints)
}

// DisabledPoints returns a copy of the built-in points left out of the default run.
func DisabledPoints() []ReferencePoint {
	return clonePoints(disabledPoints)
}

func clonePoints(points []ReferencePoint) []ReferencePoint {
	res := make([]ReferencePoint, len(points))
	copy(res, points)

	return res
}

func named(ll [][2]float64, prefix string) []ReferencePoint {
	res := make([]ReferencePoint, len(ll))

	for i, p := range ll {
		res[i] = ReferencePoint{Name: fmt.Sprintf("%s%d", prefix, i+1), Lat: p[0], Lon: p[1]}
	}

	return res
}

// LoadPoints reads a yaml list of points. Unnamed points get their position number as name.
func LoadPoints(r io.Reader) ([]ReferencePoint, error) {
	var f pointsFile

	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}

		return nil, err
	}

	for i := range f.Points {
		if f.Points[i].Name == "" {
			f.Points[i].Name = fmt.Sprintf("p%d", i+1)
		}

		if err := f.Points[i].Validate(); err != nil {
			return nil, fmt.Errorf("point %s: %w", f.Points[i].Name, err)
		}
	}

	return f.Points, nil
}

func LoadPointsFile(name string) ([]ReferencePoint, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return LoadPoints(f)
}

func SavePoints(w io.Writer, points []ReferencePoint) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(pointsFile{Points: points}); err != nil {
		return err
	}

	return enc.Close()
}
