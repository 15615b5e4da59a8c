package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kdudkov/cortran/pkg/request"
	"github.com/kdudkov/cortran/pkg/validate"
)

const DefaultEpsgURL = "https://epsg.io"

// number is a float that may come quoted
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	f, err := strconv.ParseFloat(strings.Trim(string(b), `"`), 64)
	if err != nil {
		return err
	}

	*n = number(f)

	return nil
}

type epsgResult struct {
	X number `json:"x"`
	Y number `json:"y"`
}

type epsgResponse struct {
	Status  string       `json:"status"`
	Results []epsgResult `json:"results"`
}

// EpsgIO asks the epsg.io transformation service.
type EpsgIO struct {
	client   *http.Client
	url      string
	attempts int
	backoff  time.Duration
	logger   *slog.Logger
}

func NewEpsgIO(url string, timeout time.Duration, attempts int) *EpsgIO {
	if url == "" {
		url = DefaultEpsgURL
	}

	return &EpsgIO{
		client:   &http.Client{Timeout: timeout},
		url:      strings.TrimRight(url, "/"),
		attempts: attempts,
		backoff:  time.Millisecond * 200,
		logger:   slog.Default().With("logger", "epsgio"),
	}
}

func (e *EpsgIO) Name() string {
	return KindEpsgIO
}

func (e *EpsgIO) Transform(ctx context.Context, a, b float64, src, dst validate.CRS) (float64, float64, error) {
	if src == dst {
		return a, b, nil
	}

	// the service wants lon,lat or easting,northing
	url := fmt.Sprintf("%s/srs/transform/%s,%s.json", e.url, ftoa(b), ftoa(a))

	var res epsgResponse

	err := request.New(e.client, e.logger).
		URL(url).
		Args(map[string]string{
			"key":   "default",
			"s_srs": strconv.Itoa(int(src)),
			"t_srs": strconv.Itoa(int(dst)),
		}).
		Headers(map[string]string{"Accept": "application/json"}).
		Retry(e.attempts, e.backoff).
		GetJSON(ctx, &res)
	if err != nil {
		return 0, 0, err
	}

	if len(res.Results) == 0 {
		return 0, 0, fmt.Errorf("%w: status %q", ErrNoResult, res.Status)
	}

	return float64(res.Results[0].Y), float64(res.Results[0].X), nil
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
