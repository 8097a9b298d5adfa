package types

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrSymbolNotFound is wrapped by the sessions when the source does not list the symbol
var ErrSymbolNotFound = errors.New("symbol not found")

type ExchangeName string

func (n *ExchangeName) Value() (driver.Value, error) {
	return n.String(), nil
}

func (n *ExchangeName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	name, err := ValidExchangeName(s)
	if err != nil {
		return err
	}

	*n = name
	return nil
}

func (n ExchangeName) String() string {
	return string(n)
}

const (
	ExchangeBinance    = ExchangeName("binance")
	ExchangeOKEx       = ExchangeName("okex")
	ExchangeMetaTrader = ExchangeName("metatrader")
	ExchangeCSV        = ExchangeName("csv")
)

var SupportedExchanges = map[ExchangeName]struct{}{
	ExchangeBinance:    {},
	ExchangeOKEx:       {},
	ExchangeMetaTrader: {},
	ExchangeCSV:        {},
}

func ValidExchangeName(a string) (ExchangeName, error) {
	switch strings.ToLower(a) {
	case "binance", "bn":
		return ExchangeBinance, nil
	case "okex", "okx":
		return ExchangeOKEx, nil
	case "metatrader", "mt5", "mt":
		return ExchangeMetaTrader, nil
	case "csv":
		return ExchangeCSV, nil
	}

	if _, ok := SupportedExchanges[ExchangeName(a)]; ok {
		return ExchangeName(a), nil
	}

	return "", fmt.Errorf("invalid exchange name: %s, valid names are: binance, okex, metatrader, csv", a)
}

// KLineQuerier returns up to options.Limit klines of the symbol, oldest first.
//
//go:generate mockgen -destination=mocks/mock_kline_querier.go -package=mocks . KLineQuerier
type KLineQuerier interface {
	QueryKLines(ctx context.Context, symbol string, period Period, options KLineQueryOptions) ([]KLine, error)
}

// Session is an opened connection to a bar source. The caller owns it and must Close it.
//
//go:generate mockgen -destination=mocks/mock_session.go -package=mocks . Session
type Session interface {
	KLineQuerier

	Name() ExchangeName

	Close() error
}
