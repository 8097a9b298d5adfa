package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_exchangeName(t *testing.T) {
	assert.Equal(t, "okex", ExchangeOKEx.String())

	for input, want := range map[string]ExchangeName{
		"binance": ExchangeBinance,
		"BN":      ExchangeBinance,
		"okx":     ExchangeOKEx,
		"mt5":     ExchangeMetaTrader,
		"csv":     ExchangeCSV,
	} {
		name, err := ValidExchangeName(input)
		assert.NoError(t, err)
		assert.Equal(t, want, name)
	}

	_, err := ValidExchangeName("dummy")
	assert.Error(t, err)
}

func TestExchangeName_UnmarshalJSON(t *testing.T) {
	var name ExchangeName
	assert.NoError(t, name.UnmarshalJSON([]byte(`"OKX"`)))
	assert.Equal(t, ExchangeOKEx, name)

	assert.Error(t, name.UnmarshalJSON([]byte(`"max"`)))
}
