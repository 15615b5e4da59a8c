package oracle

import (
	"errors"
	"fmt"
	"time"

	"github.com/kdudkov/cortran/pkg/coord"
	"github.com/kdudkov/cortran/pkg/validate"
)

const (
	KindEngine = "engine"
	KindProj   = "proj"
	KindEpsgIO = "epsgio"
)

var (
	ErrUnsupported = errors.New("unsupported transformation")
	ErrNoResult    = errors.New("empty transformation result")
	ErrUnknownKind = errors.New("unknown oracle")
)

type Options struct {
	Kind     string
	URL      string
	Timeout  time.Duration
	Attempts int
}

// New returns the oracle of the kind. Engine and Proj oracles use the converter's profile.
func New(opts Options, conv *coord.Converter) (validate.Oracle, error) {
	switch opts.Kind {
	case "", KindEngine:
		return NewEngine(conv), nil
	case KindProj:
		return NewProj(conv.Shifter().Profile()), nil
	case KindEpsgIO:
		return NewEpsgIO(opts.URL, opts.Timeout, opts.Attempts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
}

func Kinds() []string {
	return []string{KindEngine, KindProj, KindEpsgIO}
}
