package identify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"adwizard/internal/apperr"
)

// HTTPFetcher downloads uploaded images so they can be passed inline to the
// vision model.
type HTTPFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: resty.New().SetTimeout(30 * time.Second)}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	res, err := f.client.NewRequest().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("%w: fetch image %s: %v", apperr.ErrUpstream, url, err)
	}
	if res.IsError() {
		return nil, "", fmt.Errorf("%w: fetch image %s (status: %d)", apperr.ErrUpstream, url, res.StatusCode())
	}

	mimeType := res.Header().Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(res.Body())
	}
	return res.Body(), mimeType, nil
}
