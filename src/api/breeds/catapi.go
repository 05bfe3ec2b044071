// Package breeds answers whether a cat breed is recognised, backed by
// TheCatAPI breed search.
package breeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stake-plus/spycat-agency/src/logging"
	"github.com/stake-plus/spycat-agency/src/webclient"
)

const DefaultBaseURL = "https://api.thecatapi.com/v1"

// Lookup outcomes, used as metric labels.
const (
	OutcomeKnown       = "known"
	OutcomeUnknown     = "unknown"
	OutcomeError       = "error"
	OutcomeRateLimited = "rate_limited"
	OutcomeCacheHit    = "cache_hit"
)

// Observer receives one outcome per lookup. May be nil.
type Observer func(outcome string)

type CatAPI struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
	observe Observer
}

type CatAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  zerolog.Logger
	Observe Observer
}

func NewCatAPI(cfg CatAPIConfig) *CatAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &CatAPI{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  webclient.NewDefault(cfg.Timeout),
		log:     cfg.Logger,
		observe: cfg.Observe,
	}
}

type breedRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// AltNames is a comma separated list, often empty.
	AltNames string `json:"alt_names"`
}

func (r breedRecord) names() []string {
	return append([]string{r.Name}, strings.Split(r.AltNames, ",")...)
}

// IsKnownBreed fails closed: every transport, status or decoding problem is
// reported as an unknown breed.
func (c *CatAPI) IsKnownBreed(ctx context.Context, breed string) bool {
	known, err := c.Search(ctx, breed)
	return verdict(c.log, c.observe, breed, known, err)
}

func verdict(l zerolog.Logger, observe Observer, breed string, known bool, err error) bool {
	outcome := OutcomeUnknown
	switch {
	case err != nil && logging.IsRateLimit(err):
		outcome = OutcomeRateLimited
		l.Warn().Err(err).Str("breed", breed).Msg("breed lookup throttled")
		known = false
	case err != nil:
		outcome = OutcomeError
		l.Warn().Err(err).Str("breed", breed).Msg("breed lookup failed")
		known = false
	case known:
		outcome = OutcomeKnown
	}
	if observe != nil {
		observe(outcome)
	}
	return known
}

// Search queries the breed search endpoint. The error is non-nil only when
// no definite answer could be obtained.
func (c *CatAPI) Search(ctx context.Context, breed string) (bool, error) {
	breed = strings.TrimSpace(breed)
	if breed == "" {
		return false, nil
	}

	u := fmt.Sprintf("%s/breeds/search?q=%s", c.baseURL, url.QueryEscape(breed))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("catapi: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, fmt.Errorf("catapi: status %d", resp.StatusCode)
	}

	var records []breedRecord
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&records); err != nil {
		return false, fmt.Errorf("catapi: decode: %w", err)
	}
	return matches(records, breed), nil
}

// matches requires a case-insensitive match on a record's name or one of its
// alternate names. The search endpoint does prefix matching, so a bare prefix
// such as "Sia" is rejected. When no record carries any name, any hit counts.
func matches(records []breedRecord, breed string) bool {
	if len(records) == 0 {
		return false
	}
	named := false
	for _, r := range records {
		for _, n := range r.names() {
			if n = strings.TrimSpace(n); n == "" {
				continue
			}
			named = true
			if strings.EqualFold(n, breed) {
				return true
			}
		}
	}
	return !named
}
