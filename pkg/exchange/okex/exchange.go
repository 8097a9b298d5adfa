package okex

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/c9s/mtcli/pkg/exchange/okex/okexapi"
	"github.com/c9s/mtcli/pkg/types"
)

// Market data: 40 requests per 2 seconds
var queryKLineLimiter = rate.NewLimiter(rate.Every(50*time.Millisecond), 1)

var log = logrus.WithFields(logrus.Fields{
	"exchange": "okex",
})

func init() {
	_ = types.Session(&Exchange{})
	_ = types.PeriodSupporter(&Exchange{})
}

var supportedPeriods = []types.Period{
	types.Period1m,
	types.Period3m,
	types.Period5m,
	types.Period15m,
	types.Period30m,
	types.Period1h,
}

// well-known quote currencies used to split the symbols without a dash
var quoteCurrencies = []string{"USDT", "USDC", "USD", "BTC", "ETH", "EUR"}

type Exchange struct {
	client *okexapi.RestClient
}

func New() *Exchange {
	return &Exchange{client: okexapi.NewClient()}
}

func NewWithClient(client *okexapi.RestClient) *Exchange {
	return &Exchange{client: client}
}

func (e *Exchange) Name() types.ExchangeName {
	return types.ExchangeOKEx
}

func (e *Exchange) SupportedPeriods() []types.Period {
	return supportedPeriods
}

func (e *Exchange) KLinePageLimit() int {
	return okexapi.MaxCandlesLimit
}

func (e *Exchange) QueryKLines(ctx context.Context, symbol string, period types.Period, options types.KLineQueryOptions) ([]types.KLine, error) {
	if err := queryKLineLimiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "query kline rate limiter wait error")
	}

	bar, err := toLocalInterval(period)
	if err != nil {
		return nil, err
	}

	instrumentID := toLocalSymbol(symbol)

	limit := okexapi.MaxCandlesLimit
	if options.Limit > 0 && options.Limit < limit {
		limit = options.Limit
	}

	req := e.client.NewCandlesticksRequest(instrumentID).Bar(bar).Limit(limit)

	// "after" is exclusive while the end time is inclusive
	if options.EndTime != nil {
		req.After(options.EndTime.UnixMilli() + 1)
	}

	log.Debugf("querying candles %s %s limit %d end time %v", instrumentID, bar, limit, options.EndTime)

	candles, err := req.Do(ctx)
	if err != nil {
		if okexapi.IsInstrumentNotFound(err) {
			return nil, errors.Wrapf(types.ErrSymbolNotFound, "okex: %s: %s", instrumentID, err)
		}

		return nil, errors.Wrapf(err, "okex: kline query %s %s failed", instrumentID, bar)
	}

	var klines []types.KLine
	for _, candle := range candles {
		klines = append(klines, kLineToGlobal(candle, period, symbol))
	}

	return types.SortKLines(klines), nil
}

func (e *Exchange) Close() error {
	e.client.Close()
	return nil
}

func toLocalInterval(period types.Period) (string, error) {
	switch period {
	case types.Period1m, types.Period3m, types.Period5m, types.Period15m, types.Period30m:
		return period.Interval().String(), nil
	case types.Period1h:
		return "1H", nil
	}

	return "", errors.Errorf("okex: interval %s is not supported", period)
}

// toLocalSymbol converts BTCUSDT to BTC-USDT
func toLocalSymbol(symbol string) string {
	symbol = strings.ToUpper(symbol)
	if strings.Contains(symbol, "-") {
		return symbol
	}

	for _, quote := range quoteCurrencies {
		if strings.HasSuffix(symbol, quote) && len(symbol) > len(quote) {
			return symbol[:len(symbol)-len(quote)] + "-" + quote
		}
	}

	return symbol
}

func kLineToGlobal(candle okexapi.Candle, period types.Period, symbol string) types.KLine {
	return types.KLine{
		Exchange:  types.ExchangeOKEx,
		Symbol:    symbol,
		Period:    period,
		StartTime: candle.Time,
		EndTime:   candle.Time.Add(period.Duration() - time.Millisecond),
		Open:      candle.Open,
		High:      candle.High,
		Low:       candle.Low,
		Close:     candle.Close,
		Volume:    candle.Volume,
		Closed:    candle.Confirmed,
	}
}
