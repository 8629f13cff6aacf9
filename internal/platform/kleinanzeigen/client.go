// Package kleinanzeigen is a thin client for the kleinanzeigen-agent.de ad
// search API, used to fetch comparable listings.
package kleinanzeigen

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"adwizard/internal/apperr"
)

const ApiBaseUrl = "https://api.kleinanzeigen-agent.de/ads/v1"

// AdMetadata carries the free-text detail blob of a search result. Condition
// is embedded in DetailsText behind a "Zustand:" marker.
type AdMetadata struct {
	DetailsText string `json:"details_text"`
}

// SearchAd is one result of the search endpoint. Price comes back either as a
// number or a string depending on the listing, so it stays untyped.
type SearchAd struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       any        `json:"price"`
	Metadata    AdMetadata `json:"metadata"`
}

type SearchResponse struct {
	Data struct {
		Ads []SearchAd `json:"ads"`
	} `json:"data"`
}

type ClientOpts struct {
	BaseURL string
	APIKey  string
}

type Client struct {
	httpClient *resty.Client
	apiKey     string
}

func NewClient(opts ClientOpts) *Client {
	c := Client{apiKey: opts.APIKey}
	baseURL := ApiBaseUrl
	if opts.BaseURL != "" {
		baseURL = opts.BaseURL
	}
	c.httpClient = resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")

	return &c
}

func (c *Client) req(ctx context.Context, query string, limit int) *resty.Request {
	return c.httpClient.
		NewRequest().
		SetContext(ctx).
		SetHeader("ads_key", c.apiKey).
		SetQueryParams(map[string]string{
			"query": query,
			"limit": strconv.Itoa(limit),
		})
}

// SearchRaw returns the search response body verbatim.
func (c *Client) SearchRaw(ctx context.Context, query string, limit int) (json.RawMessage, error) {
	res, err := handleError(c.req(ctx, query, limit).Get("/kleinanzeigen/search"))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(res.Body()), nil
}

// Search returns the decoded ads of the search response.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchAd, error) {
	result := &SearchResponse{}
	_, err := handleError(c.req(ctx, query, limit).SetResult(result).Get("/kleinanzeigen/search"))
	if err != nil {
		return nil, err
	}
	return result.Data.Ads, nil
}

// handleError turns transport failures and >399 responses into ErrUpstream.
// Without this, failing responses would have nil error.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}
	if res.IsError() {
		return res, fmt.Errorf("%w: %s %s (status: %d): %s",
			apperr.ErrUpstream, res.Request.Method, res.Request.URL, res.StatusCode(), res.String())
	}
	return res, nil
}
