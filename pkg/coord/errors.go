package coord

import "errors"

var (
	ErrLatitude       = errors.New("latitude out of range")
	ErrLongitude      = errors.New("longitude out of range")
	ErrOutsideBand    = errors.New("latitude outside of the projection band")
	ErrZone           = errors.New("invalid Gauss-Kruger zone")
	ErrOutsideRegion  = errors.New("point is outside of the calibrated region")
	ErrDatum          = errors.New("invalid datum")
	ErrUnknownProfile = errors.New("unknown shift profile")
	ErrParse          = errors.New("can't parse coordinates")
)

// IsInputError reports whether err was caused by caller supplied values.
func IsInputError(err error) bool {
	for _, e := range []error{ErrLatitude, ErrLongitude, ErrOutsideBand, ErrZone, ErrOutsideRegion, ErrDatum, ErrUnknownProfile, ErrParse} {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
