// Package geocode resolves coordinates to a street address through a
// Nominatim compatible reverse geocoding API.
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
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "CleanMyHouse-TimeTracking/1.0"
)

var errNoAddress = errors.New("no address for coordinates")

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// Reverse returns the display name of the address at lat/lng.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("geocoder error %d: %s", resp.StatusCode, string(body))
	}

	var result reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if result.DisplayName == "" {
		return "", errNoAddress
	}
	return result.DisplayName, nil
}

// Describe is Reverse with a fallback to the raw coordinates, so a punch is
// never rejected because the geocoder is down.
func (c *Client) Describe(ctx context.Context, lat, lng float64) string {
	address, err := c.Reverse(ctx, lat, lng)
	if err != nil {
		log.Warn().Err(err).Float64("lat", lat).Float64("lng", lng).Msg("reverse geocoding failed")
		return Coordinates(lat, lng)
	}
	return address
}

// Coordinates formats lat/lng with six decimals, e.g. "-23.550520, -46.633308".
func Coordinates(lat, lng float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lng)
}
