package binance

import (
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/c9s/mtcli/pkg/types"
)

func parseFloat(field, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid kline %s %q", field, s)
	}
	return f, nil
}

func toGlobalKLine(symbol string, period types.Period, k *binance.Kline) (types.KLine, error) {
	var err, fieldErr error
	kline := types.KLine{
		Exchange:  types.ExchangeBinance,
		Symbol:    symbol,
		Period:    period,
		StartTime: time.Unix(0, k.OpenTime*int64(time.Millisecond)).UTC(),
		EndTime:   time.Unix(0, k.CloseTime*int64(time.Millisecond)).UTC(),
		Closed:    time.Now().After(time.Unix(0, k.CloseTime*int64(time.Millisecond))),
	}

	kline.Open, fieldErr = parseFloat("open", k.Open)
	err = multierr.Append(err, fieldErr)
	kline.High, fieldErr = parseFloat("high", k.High)
	err = multierr.Append(err, fieldErr)
	kline.Low, fieldErr = parseFloat("low", k.Low)
	err = multierr.Append(err, fieldErr)
	kline.Close, fieldErr = parseFloat("close", k.Close)
	err = multierr.Append(err, fieldErr)
	kline.Volume, fieldErr = parseFloat("volume", k.Volume)
	err = multierr.Append(err, fieldErr)

	return kline, err
}
