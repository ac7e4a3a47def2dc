// Package geo resolves client IPs to approximate locations through ip-api.com.
package geo

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"himart/config"
	"himart/internal/domain/entity"
	"himart/internal/domain/service"
	"himart/internal/errors"

	"github.com/paulmach/orb"
	"github.com/sony/gobreaker/v2"
)

const (
	defaultEndpoint = "http://ip-api.com/json"
	defaultTimeout  = time.Second
	statusSuccess   = "success"
)

type ipAPIResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Country    string  `json:"country"`
	RegionName string  `json:"regionName"`
	City       string  `json:"city"`
	Timezone   string  `json:"timezone"`
	ISP        string  `json:"isp"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

// breakerSettings trips after half of at least five lookups fail and probes again after 30s.
func breakerSettings(logger *slog.Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "ip-api",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}

			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}
}

// Locator queries ip-api.com behind a circuit breaker with a hard per-lookup timeout.
type Locator struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*entity.GeoLocation]
}

type disabledLocator struct{}

func (disabledLocator) Locate(context.Context, string) (*entity.GeoLocation, error) {
	loc := entity.UnknownLocation()

	return &loc, nil
}

// NewLocator returns the ip-api locator, or a locator that always answers "Unknown" when disabled.
func NewLocator(cfg *config.Config, logger *slog.Logger) service.GeoLocator {
	if cfg.Geo == nil || !cfg.Geo.Enabled {
		logger.Info("Geolocation disabled, sessions will record an unknown location")

		return disabledLocator{}
	}

	return newLocator(cfg.Geo.Endpoint, cfg.Geo.Timeout, logger)
}

func newLocator(endpoint string, timeout time.Duration, logger *slog.Logger) *Locator {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Locator{
		endpoint:   strings.TrimRight(endpoint, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker[*entity.GeoLocation](breakerSettings(logger)),
	}
}

// Locate resolves ip. Loopback and private addresses resolve to "Unknown" without a network call.
func (l *Locator) Locate(ctx context.Context, ip string) (*entity.GeoLocation, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil || addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() {
		loc := entity.UnknownLocation()

		return &loc, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	loc, err := l.breaker.Execute(func() (*entity.GeoLocation, error) {
		return l.fetch(ctx, addr.String())
	})
	if err != nil {
		return nil, errors.Wrap(err, "geolocation lookup failed")
	}

	return loc, nil
}

func (l *Locator) fetch(ctx context.Context, ip string) (*entity.GeoLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint+"/"+ip, http.NoBody)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("ip-api returned status %d", resp.StatusCode)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to decode ip-api response")
	}

	if body.Status != statusSuccess {
		return nil, errors.Errorf("ip-api lookup failed: %s", body.Message)
	}

	return &entity.GeoLocation{
		Status:      body.Status,
		Country:     body.Country,
		Region:      body.RegionName,
		City:        body.City,
		Timezone:    body.Timezone,
		ISP:         body.ISP,
		Coordinates: orb.Point{body.Lon, body.Lat},
	}, nil
}
