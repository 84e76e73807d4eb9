// Package iofetch implements the HTTP client for the upstream cocktail
// catalog. The client is rate limited and retries transient failures
// with a fixed-delay budget.
package iofetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/barcraft/bardb/pkg/catalog"
	"github.com/barcraft/bardb/pkg/config"
	"github.com/barcraft/bardb/pkg/records"
	"github.com/barcraft/bardb/pkg/retry"
	"golang.org/x/time/rate"
)

// Client fetches drink and ingredient records from the upstream
// catalog JSON API.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	retry   retry.Policy
	baseURL string
	letters []string
}

// New creates a catalog client from the fetch settings and the catalog
// description.
func New(cfg *config.FetchConfig, cat *catalog.CatalogConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		retry: retry.Policy{
			Attempts: cfg.Attempts,
			Delay:    time.Duration(cfg.DelaySec) * time.Second,
		},
		baseURL: cat.BaseURL,
		letters: cat.Letters,
	}
}

// Letters returns the first letters the catalog is crawled by.
func (c *Client) Letters() []string {
	return c.letters
}

// DrinksByLetter fetches all drinks whose name starts with the given
// letter. A null result set upstream means zero records, not an error.
func (c *Client) DrinksByLetter(
	ctx context.Context, letter string,
) ([]records.Raw, error) {
	var body struct {
		Drinks []records.Raw `json:"drinks"`
	}
	q := url.Values{"f": {letter}}
	if err := c.get(ctx, "search.php", q, &body); err != nil {
		return nil, err
	}
	return body.Drinks, nil
}

// DrinksByName fetches drinks matching a full name search. Used to pick
// up altered versions of already fetched drinks.
func (c *Client) DrinksByName(
	ctx context.Context, name string,
) ([]records.Raw, error) {
	var body struct {
		Drinks []records.Raw `json:"drinks"`
	}
	q := url.Values{"s": {name}}
	if err := c.get(ctx, "search.php", q, &body); err != nil {
		return nil, err
	}
	return body.Drinks, nil
}

// IngredientByName fetches the detail records of one ingredient name.
func (c *Client) IngredientByName(
	ctx context.Context, name string,
) ([]records.Raw, error) {
	var body struct {
		Ingredients []records.Raw `json:"ingredients"`
	}
	q := url.Values{"i": {name}}
	if err := c.get(ctx, "search.php", q, &body); err != nil {
		return nil, err
	}
	return body.Ingredients, nil
}

func (c *Client) get(
	ctx context.Context, path string, query url.Values, v any,
) error {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, path, query.Encode())

	op := fmt.Sprintf("GET %s", u)
	return c.retry.Do(ctx, op, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(
			ctx, http.MethodGet, u, nil)
		if err != nil {
			return RequestError(u, err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return RequestError(u, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return RequestError(u, fmt.Errorf(
				"unexpected status %s", resp.Status))
		}

		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return DecodeError(u, err)
		}
		return nil
	})
}
