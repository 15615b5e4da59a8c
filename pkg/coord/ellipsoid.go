package coord

type Ellipsoid struct {
	Name string
	A    float64 // semi-major axis, m
	F    float64 // flattening
}

var (
	Krasovsky      = Ellipsoid{Name: "Krasovsky 1940", A: 6378245, F: 1 / 298.3}
	WGS84Ellipsoid = Ellipsoid{Name: "WGS 84", A: 6378137, F: 1 / 298.257223563}
)

// E2 is the first eccentricity squared.
func (e Ellipsoid) E2() float64 {
	return 2*e.F - e.F*e.F
}
