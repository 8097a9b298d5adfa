package exchange

import (
	"fmt"
	"strings"

	"github.com/c9s/mtcli/pkg/datasource/csvsource"
	"github.com/c9s/mtcli/pkg/envvar"
	"github.com/c9s/mtcli/pkg/exchange/binance"
	"github.com/c9s/mtcli/pkg/exchange/okex"
	"github.com/c9s/mtcli/pkg/exchange/okex/okexapi"
	"github.com/c9s/mtcli/pkg/types"
)

const (
	ExchangeOptionsKeyAPIKey        = "API_KEY"
	ExchangeOptionsKeyAPISecret     = "API_SECRET"
	ExchangeOptionsKeyAPIPassphrase = "API_PASSPHRASE"
	ExchangeOptionsKeyBaseURL       = "BASE_URL"
	ExchangeOptionsKeyPath          = "PATH"
)

// ExchangeOptions is a map of exchange options used to initialize a session
type ExchangeOptions map[string]string

// ExchangeEnvLoader is a function type to load exchange options from environment variables
type ExchangeEnvLoader func(varPrefix string) (ExchangeOptions, error)

// ExchangeConstructor is a function type to create a session with the given options
type ExchangeConstructor func(ExchangeOptions) (types.Session, error)

type ExchangeFactory struct {
	EnvLoader   ExchangeEnvLoader
	Constructor ExchangeConstructor
}

var exchangeFactories = map[types.ExchangeName]ExchangeFactory{
	types.ExchangeBinance: {
		EnvLoader: DefaultEnvVarLoader,
		Constructor: func(options ExchangeOptions) (types.Session, error) {
			return binance.NewWithBaseURL(
				options[ExchangeOptionsKeyAPIKey],
				options[ExchangeOptionsKeyAPISecret],
				options[ExchangeOptionsKeyBaseURL],
				nil,
			), nil
		},
	},
	types.ExchangeOKEx: {
		EnvLoader: DefaultEnvVarLoader,
		Constructor: func(options ExchangeOptions) (types.Session, error) {
			client := okexapi.NewClient()
			if baseURL := options[ExchangeOptionsKeyBaseURL]; baseURL != "" {
				client.SetBaseURL(baseURL)
			}
			return okex.NewWithClient(client), nil
		},
	},
	types.ExchangeMetaTrader: {
		EnvLoader: DefaultEnvVarLoader,
		Constructor: func(options ExchangeOptions) (types.Session, error) {
			return csvsource.NewSource(types.ExchangeMetaTrader, pathOption(options))
		},
	},
	types.ExchangeCSV: {
		EnvLoader: DefaultEnvVarLoader,
		Constructor: func(options ExchangeOptions) (types.Session, error) {
			return csvsource.NewSource(types.ExchangeCSV, pathOption(options))
		},
	},
}

func pathOption(options ExchangeOptions) string {
	if p := options[ExchangeOptionsKeyPath]; p != "" {
		return p
	}
	return "."
}

func RegisterExchange(name types.ExchangeName, factory ExchangeFactory) {
	exchangeFactories[name] = factory

	types.SupportedExchanges[name] = struct{}{}
}

// New opens the session of the exchange, the caller owns the session and must close it
func New(n types.ExchangeName, options ExchangeOptions) (types.Session, error) {
	factory, existing := exchangeFactories[n]
	if !existing {
		return nil, fmt.Errorf("unsupported exchange: %v", n)
	}

	if factory.Constructor == nil {
		return nil, fmt.Errorf("exchange factory %v does not support constructor", n)
	}

	return factory.Constructor(options)
}

// NewWithEnvVarPrefix allocate and initialize the session with the given environment variable prefix
// When the varPrefix is a empty string, the exchange name will be used as the prefix
func NewWithEnvVarPrefix(n types.ExchangeName, varPrefix string) (types.Session, error) {
	if len(varPrefix) == 0 {
		varPrefix = n.String()
	}

	varPrefix = strings.ToUpper(varPrefix)

	factory, existing := exchangeFactories[n]
	if !existing {
		return nil, fmt.Errorf("unsupported exchange: %v", n)
	}

	if factory.EnvLoader == nil {
		return nil, fmt.Errorf("exchange factory %v does not support environment variable loader", n)
	}

	options, err := factory.EnvLoader(varPrefix)
	if err != nil {
		return nil, err
	}

	return New(n, options)
}

// DefaultEnvVarLoader loads the optional credentials, the base url and the data path.
// Market data is public, so none of the variables is required.
func DefaultEnvVarLoader(varPrefix string) (ExchangeOptions, error) {
	options := ExchangeOptions{}
	for _, key := range []string{
		ExchangeOptionsKeyAPIKey,
		ExchangeOptionsKeyAPISecret,
		ExchangeOptionsKeyAPIPassphrase,
		ExchangeOptionsKeyBaseURL,
		ExchangeOptionsKeyPath,
	} {
		if v, ok := envvar.String(varPrefix + "_" + key); ok {
			options[key] = v
		}
	}

	return options, nil
}
