package envvar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	t.Setenv("MTCLI_TEST_DURATION", "250ms")
	d, ok := Duration("MTCLI_TEST_DURATION")
	assert.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, d)

	t.Setenv("MTCLI_TEST_DURATION", "soon")
	_, ok = Duration("MTCLI_TEST_DURATION")
	assert.False(t, ok)

	_, ok = Duration("MTCLI_TEST_MISSING")
	assert.False(t, ok)
}

func TestInt(t *testing.T) {
	t.Setenv("MTCLI_TEST_INT", "100")
	v, ok := Int("MTCLI_TEST_INT")
	assert.True(t, ok)
	assert.Equal(t, 100, v)

	t.Setenv("MTCLI_TEST_INT", "ten")
	_, ok = Int("MTCLI_TEST_INT")
	assert.False(t, ok)
}

func TestStringAndBool(t *testing.T) {
	t.Setenv("MTCLI_TEST_STRING", "okx")
	s, ok := String("MTCLI_TEST_STRING")
	assert.True(t, ok)
	assert.Equal(t, "okx", s)

	t.Setenv("MTCLI_TEST_STRING", "")
	_, ok = String("MTCLI_TEST_STRING")
	assert.False(t, ok)

	t.Setenv("MTCLI_TEST_BOOL", "true")
	b, ok := Bool("MTCLI_TEST_BOOL")
	assert.True(t, ok)
	assert.True(t, b)
}
