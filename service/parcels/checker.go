// Package parcels queries the warehouse vendor for parcel arrival status.
package parcels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/maxexpress/maxbot/core/logger"
	"github.com/maxexpress/maxbot/core/netutil"
)

// codeReady is the vendor's status code for a parcel present at the warehouse.
const codeReady = "0000"

const maxBodySize = 1 << 16

// Checker calls the vendor's track lookup endpoint.
type Checker struct {
	baseURL string
	client  *http.Client
}

// NewChecker builds a checker for the vendor base URL. The HTTP client
// retries transient transport failures.
func NewChecker(baseURL string, timeout time.Duration) *Checker {
	return &Checker{
		baseURL: baseURL,
		client:  netutil.NewRetryClient(timeout),
	}
}

type vendorReply struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// IsReady reports whether the parcel with the given track code has arrived
// at the vendor warehouse. All failures are recoverable: the caller may
// retry later with the same code.
func (c *Checker) IsReady(ctx context.Context, trackCode string) (bool, error) {
	started := time.Now()

	reqURL := c.baseURL + "?no=" + url.QueryEscape(trackCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("parcels: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("parcels: vendor request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return false, fmt.Errorf("parcels: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("parcels: vendor status %d", resp.StatusCode)
	}

	var reply vendorReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return false, fmt.Errorf("parcels: decode reply: %w", err)
	}

	ready := reply.Code == codeReady
	logger.Debug(ctx, "service.parcels", "vendor.lookup",
		slog.String("track_code", trackCode),
		slog.String("vendor_code", reply.Code),
		slog.Bool("ready", ready),
		slog.Duration("took", logger.Took(started)),
	)
	return ready, nil
}
