package batch

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/c9s/mtcli/pkg/types"
)

var log = logrus.WithField("component", "batch")

// DefaultPageInterval is the minimal interval between two page requests
const DefaultPageInterval = 200 * time.Millisecond

// KLinePageLimiter is implemented by the sources that cap the number of klines per request
type KLinePageLimiter interface {
	KLinePageLimit() int
}

// KLineBatchQuery pages backwards through a kline querier until enough klines are collected.
type KLineBatchQuery struct {
	types.KLineQuerier

	// PageLimit overrides the page size, by default the querier's KLinePageLimit is used,
	// or the whole count is requested in one page.
	PageLimit int

	Limiter *rate.Limiter
}

// QueryRecent returns the most recent count klines of the period, oldest first.
//
// When the querier can not serve the period natively (see types.PeriodSupporter),
// the klines of the base period are queried and resampled.
func (q *KLineBatchQuery) QueryRecent(ctx context.Context, symbol string, period types.Period, count int, endTime *time.Time) ([]types.KLine, error) {
	if count <= 0 {
		return nil, nil
	}

	base := period
	if supporter, ok := q.KLineQuerier.(types.PeriodSupporter); ok {
		base = types.BasePeriod(period, supporter.SupportedPeriods())
	}

	factor := int(period / base)
	need := count * factor
	if factor > 1 {
		// the oldest bucket might be partial
		need += factor
	}

	pageLimit := q.PageLimit
	if pageLimit <= 0 {
		if limiter, ok := q.KLineQuerier.(KLinePageLimiter); ok {
			pageLimit = limiter.KLinePageLimit()
		}
	}
	if pageLimit <= 0 {
		pageLimit = need
	}

	limiter := q.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(DefaultPageInterval), 1)
	}

	var all []types.KLine
	var cursor = endTime
	for len(all) < need {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		limit := pageLimit
		if rest := need - len(all); rest < limit {
			limit = rest
		}

		log.Debugf("querying %s %s klines, limit %d, end time %v", symbol, base, limit, cursor)

		klines, err := q.QueryKLines(ctx, symbol, base, types.KLineQueryOptions{
			Limit:   limit,
			EndTime: cursor,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "unable to query %s %s klines", symbol, base)
		}

		klines = olderThan(types.SortKLines(klines), all)
		if len(klines) == 0 {
			break
		}

		all = append(klines, all...)

		if len(klines) < limit {
			// no more history
			break
		}

		before := all[0].StartTime.Add(-time.Millisecond)
		cursor = &before
	}

	if factor > 1 {
		all = types.ResampleKLines(all, period)
	}

	return types.KLineWindow(all).Tail(count), nil
}

// olderThan filters the klines started before the first kline of the collected ones
func olderThan(klines, collected []types.KLine) []types.KLine {
	if len(collected) == 0 {
		return klines
	}

	first := collected[0].StartTime
	var out []types.KLine
	for _, k := range klines {
		if k.StartTime.Before(first) {
			out = append(out, k)
		}
	}
	return out
}
