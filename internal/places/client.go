// Package places is a thin client for the Places Text Search API. It
// resolves one free-text query to the first matching result's
// coordinates, photo, and place ID.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/adhingra/safarnama/backend/internal/domain"
)

// Result is the subset of a text-search hit the enrichment service needs.
type Result struct {
	Lat      float64
	Lng      float64
	PhotoURL *string
	PlaceID  *string
}

// Client issues text searches against a Places-compatible endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a Client for the given base URL (e.g.
// "https://maps.googleapis.com/maps/api/place").
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// searchResponse mirrors the fields of the textsearch JSON we consume.
type searchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
}

// TextSearch looks up query and returns the first hit. Returns
// domain.ErrNotFound when the search matches nothing, and a wrapped
// domain.ErrUpstream for transport or API-status failures. Callers treat
// both the same way: emit the unresolved sentinel for that item.
func (c *Client) TextSearch(ctx context.Context, query string) (Result, error) {
	u, err := url.Parse(c.baseURL + "/textsearch/json")
	if err != nil {
		return Result{}, fmt.Errorf("places.Client.TextSearch: %w", err)
	}
	q := u.Query()
	q.Set("query", query)
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("places.Client.TextSearch: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("places.Client.TextSearch: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("places.Client.TextSearch: %w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("places.Client.TextSearch: decode: %w", err)
	}

	if body.Status != "OK" || len(body.Results) == 0 {
		return Result{}, fmt.Errorf("places.Client.TextSearch: no match (status %s): %w", body.Status, domain.ErrNotFound)
	}

	first := body.Results[0]
	res := Result{
		Lat: first.Geometry.Location.Lat,
		Lng: first.Geometry.Location.Lng,
	}
	if first.PlaceID != "" {
		id := first.PlaceID
		res.PlaceID = &id
	}
	if len(first.Photos) > 0 && first.Photos[0].PhotoReference != "" {
		photo := fmt.Sprintf("%s/photo?maxwidth=400&photo_reference=%s&key=%s",
			c.baseURL, first.Photos[0].PhotoReference, c.apiKey)
		res.PhotoURL = &photo
	}
	return res, nil
}
