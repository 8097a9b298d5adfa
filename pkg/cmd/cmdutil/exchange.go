package cmdutil

import (
	"github.com/c9s/mtcli/pkg/exchange"
	"github.com/c9s/mtcli/pkg/types"
)

// NewExchange opens the session with the options of the <EXCHANGE>_* environment variables,
// e.g. METATRADER_PATH or BINANCE_BASE_URL.
func NewExchange(n types.ExchangeName) (types.Session, error) {
	return exchange.NewWithEnvVarPrefix(n, "")
}
