// Package datadump fetches institution data dumps: a JSON document whose
// "records" array holds the harvested items.
package datadump

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"metaharvest/internal/config"
	"metaharvest/internal/logger"
	"metaharvest/internal/record"
)

// ErrMissingRecords is returned when a dump has no "records" array.
var ErrMissingRecords = errors.New("data dump has no records array")

type Client struct {
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg config.Config, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.DatadumpTimeoutMs) * time.Millisecond},
		log:        logger.OrNop(log),
	}
}

// GetDatadump downloads the dump at url and returns its records. There is
// a single attempt and no retry.
func (c *Client) GetDatadump(ctx context.Context, url string) ([]*record.Record, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("missing data dump url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch data dump")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read data dump")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("data dump error: status=%d body=%s", resp.StatusCode, truncate(string(body), 200))
	}

	records, err := DecodeRecords(body)
	if err != nil {
		return nil, err
	}
	c.log.Info("data dump fetched",
		zap.String("url", url),
		zap.Int("records", len(records)),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return records, nil
}

// LoadFile reads a dump saved to disk.
func LoadFile(path string) ([]*record.Record, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(body)
}

// DecodeRecords returns the "records" array of a dump, in document order.
func DecodeRecords(body []byte) ([]*record.Record, error) {
	doc, err := record.ParseObject(body)
	if err != nil {
		return nil, errors.Wrap(err, "decode data dump")
	}
	raw, ok := doc.Get("records")
	if !ok {
		return nil, ErrMissingRecords
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, errors.Wrap(ErrMissingRecords, "records is not an array")
	}

	out := make([]*record.Record, 0, len(items))
	for i, item := range items {
		rec, ok := item.(*record.Record)
		if !ok {
			return nil, errors.Errorf("records[%d] is not an object", i)
		}
		out = append(out, rec)
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
