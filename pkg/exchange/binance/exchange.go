package binance

import (
	"context"
	"net/http"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/mtcli/pkg/types"
)

// KLinePageLimit is the max number of klines of one /api/v3/klines request
const KLinePageLimit = 1000

const defaultKLineLimit = 500

// -1121 Invalid symbol.
const errCodeInvalidSymbol = -1121

var log = logrus.WithFields(logrus.Fields{
	"exchange": "binance",
})

func init() {
	_ = types.Session(&Exchange{})
	_ = types.PeriodSupporter(&Exchange{})
}

// the periods served by the kline endpoint, the others are resampled
var supportedPeriods = []types.Period{
	types.Period1m,
	types.Period3m,
	types.Period5m,
	types.Period15m,
	types.Period30m,
	types.Period1h,
}

type Exchange struct {
	Client *binance.Client
}

// New creates the binance session, klines are public so the key and the secret can be empty.
func New(key, secret string) *Exchange {
	var client = binance.NewClient(key, secret)
	return &Exchange{
		Client: client,
	}
}

// NewWithBaseURL creates the session against another endpoint, e.g. the testnet or a mock server
func NewWithBaseURL(key, secret, baseURL string, httpClient *http.Client) *Exchange {
	e := New(key, secret)
	if baseURL != "" {
		e.Client.BaseURL = baseURL
	}
	if httpClient != nil {
		e.Client.HTTPClient = httpClient
	}
	return e
}

func (e *Exchange) Name() types.ExchangeName {
	return types.ExchangeBinance
}

func (e *Exchange) SupportedPeriods() []types.Period {
	return supportedPeriods
}

func (e *Exchange) KLinePageLimit() int {
	return KLinePageLimit
}

func (e *Exchange) QueryKLines(ctx context.Context, symbol string, period types.Period, options types.KLineQueryOptions) ([]types.KLine, error) {
	var limit = defaultKLineLimit
	if options.Limit > 0 {
		limit = options.Limit
	}
	if limit > KLinePageLimit {
		limit = KLinePageLimit
	}

	interval := period.Interval().String()

	log.Debugf("querying kline %s %s limit %d end time %v", symbol, interval, limit, options.EndTime)

	req := e.Client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit)

	if options.EndTime != nil {
		req.EndTime(options.EndTime.UnixNano() / int64(time.Millisecond))
	}

	resp, err := req.Do(ctx)
	if err != nil {
		var apiErr *common.APIError
		if errors.As(err, &apiErr) && apiErr.Code == errCodeInvalidSymbol {
			return nil, errors.Wrapf(types.ErrSymbolNotFound, "binance: %s: %s", symbol, apiErr.Message)
		}

		return nil, errors.Wrapf(err, "binance: kline query %s %s failed", symbol, interval)
	}

	var kLines []types.KLine
	for _, k := range resp {
		kline, err := toGlobalKLine(symbol, period, k)
		if err != nil {
			return nil, err
		}

		kLines = append(kLines, kline)
	}

	return types.SortKLines(kLines), nil
}

// Close releases the idle connections of the rest client
func (e *Exchange) Close() error {
	if e.Client != nil && e.Client.HTTPClient != nil {
		e.Client.HTTPClient.CloseIdleConnections()
	}
	return nil
}
