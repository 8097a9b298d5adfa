package batch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	"github.com/c9s/mtcli/pkg/types"
	"github.com/c9s/mtcli/pkg/types/mocks"
)

// history generates n klines of the period ending before the end time
func history(end time.Time, period types.Period, n int) []types.KLine {
	var klines []types.KLine
	start := end.Add(-time.Duration(n) * period.Duration())
	for i := 0; i < n; i++ {
		st := start.Add(time.Duration(i) * period.Duration())
		klines = append(klines, types.KLine{
			Symbol:    "BTCUSDT",
			StartTime: st,
			EndTime:   st.Add(period.Duration() - time.Millisecond),
			Period:    period,
			Open:      float64(i),
			High:      float64(i) + 1,
			Low:       float64(i) - 1,
			Close:     float64(i),
			Volume:    1,
		})
	}
	return klines
}

// serve answers the query like an exchange does: the latest klines started at or before the end time
func serve(all []types.KLine) func(ctx context.Context, symbol string, period types.Period, options types.KLineQueryOptions) ([]types.KLine, error) {
	return func(ctx context.Context, symbol string, period types.Period, options types.KLineQueryOptions) ([]types.KLine, error) {
		var selected []types.KLine
		for _, k := range all {
			if options.EndTime != nil && k.StartTime.After(*options.EndTime) {
				continue
			}
			selected = append(selected, k)
		}
		return types.KLineWindow(selected).Tail(options.Limit), nil
	}
}

type periodSupportingQuerier struct {
	*mocks.MockKLineQuerier
}

func (q periodSupportingQuerier) SupportedPeriods() []types.Period {
	return []types.Period{types.Period1m, types.Period5m}
}

func (q periodSupportingQuerier) KLinePageLimit() int {
	return 100
}

func TestKLineBatchQuery_QueryRecent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	end := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)
	all := history(end, types.Period5m, 3000)

	querier := mocks.NewMockKLineQuerier(ctrl)
	querier.EXPECT().
		QueryKLines(gomock.Any(), "BTCUSDT", types.Period5m, gomock.Any()).
		DoAndReturn(serve(all)).
		Times(3)

	q := &KLineBatchQuery{
		KLineQuerier: querier,
		PageLimit:    1000,
		Limiter:      rate.NewLimiter(rate.Inf, 1),
	}

	klines, err := q.QueryRecent(context.Background(), "BTCUSDT", types.Period5m, 2500, nil)
	require.NoError(t, err)
	require.Len(t, klines, 2500)
	assert.Equal(t, all[500].StartTime, klines[0].StartTime)
	assert.Equal(t, all[2999].StartTime, klines[2499].StartTime)

	for i := 1; i < len(klines); i++ {
		assert.True(t, klines[i].StartTime.After(klines[i-1].StartTime), "klines must be ordered, index %d", i)
	}
}

func TestKLineBatchQuery_ShortHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	end := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)
	all := history(end, types.Period15m, 50)

	querier := mocks.NewMockKLineQuerier(ctrl)
	querier.EXPECT().
		QueryKLines(gomock.Any(), "BTCUSDT", types.Period15m, gomock.Any()).
		DoAndReturn(serve(all)).
		Times(1)

	q := &KLineBatchQuery{KLineQuerier: querier, PageLimit: 100, Limiter: rate.NewLimiter(rate.Inf, 1)}
	klines, err := q.QueryRecent(context.Background(), "BTCUSDT", types.Period15m, 96, nil)
	require.NoError(t, err)
	assert.Len(t, klines, 50)
}

func TestKLineBatchQuery_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockKLineQuerier(ctrl)
	querier.EXPECT().
		QueryKLines(gomock.Any(), "NOPE", types.Period5m, gomock.Any()).
		Return(nil, nil).
		Times(1)

	q := &KLineBatchQuery{KLineQuerier: querier, Limiter: rate.NewLimiter(rate.Inf, 1)}
	klines, err := q.QueryRecent(context.Background(), "NOPE", types.Period5m, 10, nil)
	assert.NoError(t, err)
	assert.Len(t, klines, 0)
}

func TestKLineBatchQuery_Resample(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	end := time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)
	all := history(end, types.Period5m, 1000)

	querier := mocks.NewMockKLineQuerier(ctrl)
	// 20m is not native, it's resampled from 5m
	querier.EXPECT().
		QueryKLines(gomock.Any(), "BTCUSDT", types.Period5m, gomock.Any()).
		DoAndReturn(serve(all)).
		AnyTimes()

	q := &KLineBatchQuery{
		KLineQuerier: periodSupportingQuerier{MockKLineQuerier: querier},
		Limiter:      rate.NewLimiter(rate.Inf, 1),
	}

	klines, err := q.QueryRecent(context.Background(), "BTCUSDT", types.Period20m, 72, nil)
	require.NoError(t, err)
	require.Len(t, klines, 72)

	last := klines[len(klines)-1]
	assert.Equal(t, types.Period20m, last.Period)
	assert.Equal(t, end.Add(-20*time.Minute), last.StartTime)
	assert.Equal(t, all[999].Close, last.Close)
	assert.Equal(t, all[996].Open, last.Open)
	assert.Equal(t, 4.0, last.Volume)
}

func TestKLineBatchQuery_QueryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	querier := mocks.NewMockKLineQuerier(ctrl)
	querier.EXPECT().
		QueryKLines(gomock.Any(), "BTCUSDT", types.Period1m, gomock.Any()).
		Return(nil, context.DeadlineExceeded)

	q := &KLineBatchQuery{KLineQuerier: querier, Limiter: rate.NewLimiter(rate.Inf, 1)}
	_, err := q.QueryRecent(context.Background(), "BTCUSDT", types.Period1m, 10, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
