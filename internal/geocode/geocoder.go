// Package geocode wraps a Nominatim-style HTTP geocoding endpoint for
// forward search and reverse lookup. Debouncing of interactive search
// input is handled by the UI layer, not here.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// MaxResults caps forward-search responses.
const MaxResults = 5

var ErrEmptyQuery = errors.New("geocode: empty query")

// Place is one geocoding result.
type Place struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Config struct {
	// BaseURL is the endpoint root, e.g. https://nominatim.openstreetmap.org.
	BaseURL string
	// HTTPClient is optional; a 10s-timeout client is used when nil.
	HTTPClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("geocode: base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
	}, nil
}

// nominatimPlace carries lat/lon as strings, the way the endpoint emits
// them.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (p nominatimPlace) toPlace() (Place, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("geocode: bad latitude %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("geocode: bad longitude %q: %w", p.Lon, err)
	}
	return Place{Latitude: lat, Longitude: lon, DisplayName: p.DisplayName}, nil
}

// Search resolves a free-text query to at most MaxResults places.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(MaxResults))

	var raw []nominatimPlace
	if err := c.get(ctx, "/search", params, &raw); err != nil {
		return nil, err
	}
	if len(raw) > MaxResults {
		raw = raw[:MaxResults]
	}
	places := make([]Place, 0, len(raw))
	for _, r := range raw {
		place, err := r.toPlace()
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	return places, nil
}

// Reverse resolves coordinates to a display name.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (Place, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")

	var raw nominatimPlace
	if err := c.get(ctx, "/reverse", params, &raw); err != nil {
		return Place{}, err
	}
	return raw.toPlace()
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("geocode: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("geocode: %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("geocode: decode response: %w", err)
	}
	return nil
}
