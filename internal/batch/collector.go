// Package batch drives the EJScreen client over an ordered list of area
// identifiers, tolerating per-area failures and bounding the request rate.
package batch

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/anacostia-study/ejscreen-cli/internal/ejscreen"
)

// ErrEmptyBatch marks a non-empty batch that produced zero successful
// fetches. Callers must not treat it as a valid empty dataset.
var ErrEmptyBatch = eris.New("batch: no records were successfully fetched")

// Result is the assembled output of one batch run. Records preserves the
// input order of the identifiers that succeeded; Failed retains the ones
// that did not, for diagnostics only.
type Result struct {
	Records []*ejscreen.Record
	Failed  []string
}

// Collector fetches records sequentially with a fixed inter-request delay.
type Collector struct {
	client  *ejscreen.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewCollector creates a Collector. delay is the minimum spacing between
// consecutive requests; the first request is never delayed and no wait
// occurs after the last. A zero or negative delay disables rate limiting.
func NewCollector(client *ejscreen.Client, delay time.Duration) *Collector {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Collector{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		log:     zap.L().With(zap.String("component", "batch.collector")),
	}
}

// FetchAll fetches every identifier in order as a block group. A failed
// fetch is logged and skipped; the batch never aborts on one bad area. The
// delay applies between requests regardless of outcome — a persistent
// server error still consumes the full interval before the next attempt.
//
// Zero successes over a non-empty input return ErrEmptyBatch. Context
// cancellation aborts the remainder of the batch.
func (c *Collector) FetchAll(ctx context.Context, areaIDs []string) (*Result, error) {
	res := &Result{}
	total := len(areaIDs)

	c.log.Info("fetching block groups", zap.Int("count", total))

	for i, id := range areaIDs {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "batch: rate limiter wait")
		}

		rec, err := c.client.Fetch(ctx, id, ejscreen.AreaBlockGroup, "")
		if err != nil {
			c.log.Warn("skipping area after failed fetch",
				zap.String("area_id", id),
				zap.Int("position", i+1),
				zap.Int("total", total),
				zap.Error(err),
			)
			res.Failed = append(res.Failed, id)
			continue
		}

		res.Records = append(res.Records, rec)
	}

	if total > 0 && len(res.Records) == 0 {
		return nil, ErrEmptyBatch
	}

	c.log.Info("batch complete",
		zap.Int("fetched", len(res.Records)),
		zap.Int("failed", len(res.Failed)),
	)

	return res, nil
}

// FetchOne fetches a single named geography outside the batch loop, on the
// same underlying contract as FetchAll.
func (c *Collector) FetchOne(ctx context.Context, areaID string, areaType ejscreen.AreaType, name string) (*ejscreen.Record, error) {
	return c.client.Fetch(ctx, areaID, areaType, name)
}
