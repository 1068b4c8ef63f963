package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/wordbook/api/internal/dictionary"
	"github.com/wordbook/api/internal/metrics"
)

// DictionaryClient talks to a Free Dictionary API compatible endpoint
// (GET <base>/<word> returning an array of entries, 404 for unknown words).
type DictionaryClient struct {
	http *resty.Client
}

func NewDictionaryClient(baseURL string, timeout time.Duration) *DictionaryClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(1).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &DictionaryClient{http: c}
}

// Lookup implements dictionary.Provider. Unknown words yield (nil, nil); any
// other non-200 response or transport failure wraps dictionary.ErrProvider.
func (c *DictionaryClient) Lookup(ctx context.Context, word string) ([]dictionary.RawEntry, error) {
	start := time.Now()

	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("word", word).
		Get("/{word}")
	if err != nil {
		metrics.RecordProviderCall(metrics.StatusError, time.Since(start))
		return nil, fmt.Errorf("%w: %v", dictionary.ErrProvider, err)
	}

	switch res.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		metrics.RecordProviderCall(metrics.StatusNotFound, time.Since(start))
		return nil, nil
	default:
		metrics.RecordProviderCall(metrics.StatusError, time.Since(start))
		return nil, fmt.Errorf("%w: status %d: %s", dictionary.ErrProvider, res.StatusCode(), truncate(res.Body(), 200))
	}

	var entries []dictionary.RawEntry
	if err := json.Unmarshal(res.Body(), &entries); err != nil {
		metrics.RecordProviderCall(metrics.StatusError, time.Since(start))
		return nil, fmt.Errorf("%w: decode response: %v", dictionary.ErrProvider, err)
	}

	metrics.RecordProviderCall(metrics.StatusSuccess, time.Since(start))
	if len(entries) == 0 {
		return nil, nil
	}
	return entries, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
