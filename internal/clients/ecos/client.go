// Package ecos calls the Bank of Korea ECOS StatisticSearch API.
package ecos

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/daybell/fx_backend/internal/apperrors"
)

const (
	defaultBaseURL = "https://ecos.bok.or.kr"

	// noDataResult is the informational result code ECOS returns when the
	// requested range holds no observations. It is not an error.
	noDataResult = "정보-200"
)

// StatRow is one observation of a statistical series.
type StatRow struct {
	StatCode  string `json:"STAT_CODE"`
	StatName  string `json:"STAT_NAME"`
	ItemCode1 string `json:"ITEM_CODE1"`
	ItemName1 string `json:"ITEM_NAME1"`
	ItemCode2 string `json:"ITEM_CODE2,omitempty"`
	ItemName2 string `json:"ITEM_NAME2,omitempty"`
	ItemCode3 string `json:"ITEM_CODE3,omitempty"`
	ItemName3 string `json:"ITEM_NAME3,omitempty"`
	ItemCode4 string `json:"ITEM_CODE4,omitempty"`
	ItemName4 string `json:"ITEM_NAME4,omitempty"`
	UnitName  string `json:"UNIT_NAME"`
	Wgt       string `json:"WGT,omitempty"`
	Time      string `json:"TIME"`       // period label, zero-padded and lexicographically sortable
	DataValue string `json:"DATA_VALUE"` // numeric string, possibly blank
}

// rowList tolerates the API returning a single object instead of an array
// when the result holds exactly one row.
type rowList []StatRow

func (r *rowList) UnmarshalJSON(data []byte) error {
	var many []StatRow
	if err := json.Unmarshal(data, &many); err == nil {
		*r = many
		return nil
	}
	var one StatRow
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*r = rowList{one}
	return nil
}

// statResponse mirrors the documented StatisticSearch envelope. The API also
// emits bodies with RESULT/CODE/MESSAGE at the top level and no container;
// those are interpreted as empty results, so only the container is decoded.
type statResponse struct {
	StatisticSearch *struct {
		ListTotalCount *int    `json:"list_total_count"`
		Row            rowList `json:"row"`
		Result         string  `json:"RESULT"`
		Code           string  `json:"CODE"`
		Message        string  `json:"MESSAGE"`
	} `json:"StatisticSearch"`
}

// Options parameterise the client.
type Options struct {
	BaseURL string
	AuthKey string
	Timeout time.Duration
}

// Client fetches statistical series observations.
type Client struct {
	opts    Options
	client  *http.Client
	baseURL string
}

// NewClient constructs an ECOS client.
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

// FetchSeries retrieves up to the first ten observations of a series between
// startDate and endDate (both YYYYMMDD for daily cycles). A nil slice with a
// nil error means the range holds no data, which ECOS reports both through
// the 정보-200 result code and through responses without a row field.
func (c *Client) FetchSeries(ctx context.Context, statCode, itemCode, cycle, startDate, endDate string) ([]StatRow, error) {
	if c.opts.AuthKey == "" {
		return nil, fmt.Errorf("%w: ECOS_API_KEY is not configured", apperrors.ErrConfiguration)
	}

	// Path layout: /{key}/json/kr/{start}/{end}/{statCode}/{cycle}/{startDate}/{endDate}/{itemCode}/?/?/?
	endpoint := fmt.Sprintf("%s/api/StatisticSearch/%s/json/kr/1/10/%s/%s/%s/%s/%s/?/?/?",
		c.baseURL, c.opts.AuthKey, statCode, cycle, startDate, endDate, itemCode)

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

	var parsed statResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedUpstream, err)
	}

	// A response without the StatisticSearch container is treated as "no
	// data for the range", not as an error, even when it carries a top-level
	// RESULT object.
	if parsed.StatisticSearch == nil {
		return nil, nil
	}

	search := parsed.StatisticSearch
	if search.Result != "" && search.Result != noDataResult {
		msg := search.Message
		if msg == "" {
			msg = search.Result
		}
		if msg == "" {
			msg = search.Code
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUpstreamLogical, msg)
	}

	if search.Result == noDataResult ||
		len(search.Row) == 0 ||
		(search.ListTotalCount != nil && *search.ListTotalCount == 0) {
		return nil, nil
	}

	return []StatRow(search.Row), nil
}
