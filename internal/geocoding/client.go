package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Point is a geocoded location.
type Point struct {
	Longitude float64
	Latitude  float64
}

// Geocoder resolves a free-text location to a point, or nil when nothing
// matches.
type Geocoder interface {
	Forward(ctx context.Context, query string) (*Point, error)
}

// MapboxClient is a Geocoder backed by the Mapbox forward geocoding API.
type MapboxClient struct {
	Token   string
	BaseURL string // override for tests; defaults to the Mapbox API
	Client  *http.Client
}

type geocodeResponse struct {
	Features []struct {
		Center [2]float64 `json:"center"` // [longitude, latitude]
	} `json:"features"`
}

// Forward resolves the query to its best match (limit 1).
func (c *MapboxClient) Forward(ctx context.Context, query string) (*Point, error) {
	if c.Token == "" {
		return nil, fmt.Errorf("geocoding: MAPBOX_TOKEN is not set")
	}
	base := c.BaseURL
	if base == "" {
		base = "https://api.mapbox.com"
	}
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s&limit=1",
		strings.TrimRight(base, "/"), url.PathEscape(query), url.QueryEscape(c.Token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocoding: status %d: %s", resp.StatusCode, string(b))
	}

	var out geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Features) == 0 {
		return nil, nil
	}
	return &Point{
		Longitude: out.Features[0].Center[0],
		Latitude:  out.Features[0].Center[1],
	}, nil
}
