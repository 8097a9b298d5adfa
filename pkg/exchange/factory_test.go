package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/mtcli/pkg/types"
)

func TestDefaultEnvVarLoader(t *testing.T) {
	t.Setenv("MT_PATH", "/data/exports")
	t.Setenv("MT_API_KEY", "key")

	options, err := DefaultEnvVarLoader("MT")
	require.NoError(t, err)
	assert.Equal(t, "/data/exports", options[ExchangeOptionsKeyPath])
	assert.Equal(t, "key", options[ExchangeOptionsKeyAPIKey])
	_, ok := options[ExchangeOptionsKeyAPISecret]
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	for _, n := range []types.ExchangeName{types.ExchangeBinance, types.ExchangeOKEx} {
		session, err := New(n, nil)
		require.NoError(t, err)
		assert.Equal(t, n, session.Name())
		assert.NoError(t, session.Close())
	}

	_, err := New(types.ExchangeName("ftx"), nil)
	assert.Error(t, err)
}

func TestNewWithEnvVarPrefix(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("METATRADER_PATH", dir)

	session, err := NewWithEnvVarPrefix(types.ExchangeMetaTrader, "")
	require.NoError(t, err)
	defer session.Close()

	assert.Equal(t, types.ExchangeMetaTrader, session.Name())
}
