package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// Address is the reverse-geocoding result, reduced to the components the
// order form cares about.
type Address struct {
	Locality string `json:"locality"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"countryName"`
}

// String joins the non-empty components into a single address line.
func (a Address) String() string {
	var parts []string
	for _, p := range []string{a.Locality, a.City, a.Postcode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Geocoder wraps the reverse-geocoding API. Every call is best-effort by
// contract: callers leave the address field blank on failure and carry on,
// a missing result never blocks order submission.
type Geocoder struct {
	baseURL string
	httpc   *http.Client
	log     *zap.SugaredLogger
}

// NewGeocoder returns a geocoder for the given endpoint URL.
func NewGeocoder(baseURL string, log *zap.SugaredLogger) *Geocoder {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Geocoder{
		baseURL: baseURL,
		httpc:   &http.Client{},
		log:     log,
	}
}

// ReverseGeocode resolves coordinates to address components.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (Address, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%g", lat))
	q.Set("lon", fmt.Sprintf("%g", lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Address{}, &ServiceError{Msg: "Could not fetch address", Err: err}
	}

	resp, err := g.httpc.Do(req)
	if err != nil {
		g.log.Warnw("reverse geocode failed", "lat", lat, "lon", lon, "error", err)
		return Address{}, &ServiceError{Msg: "Could not fetch address", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.log.Warnw("reverse geocode bad status", "status", resp.Status)
		return Address{}, &ServiceError{Msg: "Could not fetch address", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var addr Address
	if err := json.NewDecoder(resp.Body).Decode(&addr); err != nil {
		return Address{}, &ServiceError{Msg: "Could not fetch address", Err: err}
	}
	g.log.Debugw("reverse geocode ok", "address", addr.String())
	return addr, nil
}
