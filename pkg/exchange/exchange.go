// Package exchange converts currency amounts using the Frankfurter API. It is
// a thin adapter: one GET per conversion, a bounded timeout, and every fault
// mapped to a classified error.
package exchange

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/helioslabs/prodinfo/pkg/toolerr"
	"github.com/helioslabs/prodinfo/pkg/tools/toolbox"
)

const defaultBaseURL = "https://api.frankfurter.app/latest"

// requestTimeout bounds every upstream call so a slow API cannot block the
// dispatcher.
const requestTimeout = 10 * time.Second

// Quote is the result of one conversion. Date is the upstream-reported quote
// date, passed through verbatim.
type Quote struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Rate      float64 `json:"rate"`
	Converted float64 `json:"converted"`
	Date      string  `json:"date"`
}

// Client calls the currency rate endpoint.
type Client struct {
	base string
	hc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the rate endpoint. Used by tests and deployments
// behind a proxy.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.base = u
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// New creates a Client against the Frankfurter API.
func New(opts ...Option) *Client {
	c := &Client{
		base: defaultBaseURL,
		hc:   &http.Client{Timeout: requestTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// rateResponse is the subset of the upstream body the adapter reads.
type rateResponse struct {
	Rates map[string]float64 `json:"rates"`
	Date  string             `json:"date"`
}

// Convert looks up the rate from one currency to another and applies it to
// amount. Currency codes are upper-cased before use. Converted amounts are
// rounded to 4 fractional digits, half away from zero.
func (c *Client) Convert(ctx context.Context, from, to string, amount float64) (Quote, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base, nil)
	if err != nil {
		return Quote{}, toolerr.Wrapf(toolerr.KindUpstreamUnavailable, err, "API request failed: %v", err)
	}

	q := req.URL.Query()
	q.Set("from", from)
	q.Set("to", to)
	req.URL.RawQuery = q.Encode()

	resp, err := c.hc.Do(req)
	if err != nil {
		return Quote{}, toolerr.Wrapf(toolerr.KindUpstreamUnavailable, err, "API request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Quote{}, toolerr.Newf(toolerr.KindUpstreamUnavailable, "API request failed: unexpected status %s", resp.Status)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, toolerr.Wrapf(toolerr.KindUpstreamUnavailable, err, "API request failed: %v", err)
	}

	rate, ok := body.Rates[to]
	if !ok {
		return Quote{}, toolerr.Newf(toolerr.KindUpstreamDataMissing, "Invalid currency code or unsupported conversion.")
	}

	return Quote{
		From:      from,
		To:        to,
		Amount:    amount,
		Rate:      rate,
		Converted: round4(rate * amount),
		Date:      body.Date,
	}, nil
}

// round4 rounds to 4 fractional digits, half away from zero (math.Round).
func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}

// Tool returns the get_exchange_rate tool backed by this client.
func (c *Client) Tool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "get_exchange_rate",
		Description: "Convert an amount from one currency to another using current exchange rates.",
		Params: []toolbox.Param{
			{Name: "source_currency", Type: toolbox.TypeString, Description: "Currency code to convert from (e.g. USD)", Required: true},
			{Name: "destination_currency", Type: toolbox.TypeString, Description: "Currency code to convert to (e.g. EUR)", Required: true},
			{Name: "amount", Type: toolbox.TypeNumber, Description: "Amount to convert", Default: 1.0},
		},
		Handler: func(ctx context.Context, args toolbox.Args) (any, error) {
			quote, err := c.Convert(ctx,
				args.String("source_currency"),
				args.String("destination_currency"),
				args.Float("amount"),
			)
			if err != nil {
				return nil, err
			}

			return quote, nil
		},
	}
}
