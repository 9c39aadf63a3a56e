// Package koreaexim calls the Korea Eximbank daily exchange-rate API (AP01).
package koreaexim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/daybell/fx_backend/internal/apperrors"
)

const (
	defaultBaseURL = "https://oapi.koreaexim.go.kr"
	exchangePath   = "/site/program/financial/exchangeJSON"
	dataTypeAP01   = "AP01" // 현재환율
)

// RateObservation is one element of the AP01 response array.
// All numeric fields arrive as locale-formatted strings and may be null,
// empty or "-" when the bank publishes no value.
type RateObservation struct {
	Result       int     `json:"result"` // 1: success, 2: no data for date, 3: other error
	CurUnit      *string `json:"cur_unit"`
	CurNm        *string `json:"cur_nm"`
	TTB          *string `json:"ttb"`
	TTS          *string `json:"tts"`
	DealBasR     *string `json:"deal_bas_r"`
	Bkpr         *string `json:"bkpr"`
	YyEfeeR      *string `json:"yy_efee_r"`
	TenDdEfeeR   *string `json:"ten_dd_efee_r"`
	KftcBkpr     *string `json:"kftc_bkpr"`
	KftcDealBasR *string `json:"kftc_deal_bas_r"`
}

// Options parameterise the client.
type Options struct {
	BaseURL string
	AuthKey string
	Timeout time.Duration
}

// Client fetches daily exchange rates.
type Client struct {
	opts    Options
	client  *http.Client
	baseURL string
}

// NewClient constructs a Korea Eximbank client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		opts:    opts,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// FetchDaily retrieves the exchange-rate table for searchDate (YYYYMMDD) and
// validates the upstream result code. The returned slice is non-empty and its
// first element carries result code 1.
func (c *Client) FetchDaily(ctx context.Context, searchDate string) ([]RateObservation, error) {
	if c.opts.AuthKey == "" {
		return nil, fmt.Errorf("%w: KOREA_EXIM_API_KEY is not configured", apperrors.ErrConfiguration)
	}

	params := url.Values{}
	params.Set("authkey", c.opts.AuthKey)
	params.Set("data", dataTypeAP01)
	params.Set("searchdate", searchDate)
	endpoint := c.baseURL + exchangePath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var observations []RateObservation
	if err := json.Unmarshal(body, &observations); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array: %v", apperrors.ErrMalformedUpstream, err)
	}
	if len(observations) == 0 {
		return nil, fmt.Errorf("%w: empty response array", apperrors.ErrMalformedUpstream)
	}

	// The API signals logical errors through the result code of the first
	// element rather than the HTTP status.
	if code := observations[0].Result; code != 1 {
		switch code {
		case 2:
			return nil, fmt.Errorf("%w: no exchange rate data published for date %s", apperrors.ErrUpstreamLogical, searchDate)
		case 3:
			return nil, fmt.Errorf("%w: authentication key rejected or upstream server error", apperrors.ErrUpstreamLogical)
		default:
			return nil, fmt.Errorf("%w: result=%d", apperrors.ErrUpstreamLogical, code)
		}
	}

	return observations, nil
}
