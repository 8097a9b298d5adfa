package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPeriod(t *testing.T) {
	for _, minutes := range []int{1, 2, 3, 4, 5, 6, 10, 12, 15, 20, 30, 60} {
		p, err := ValidPeriod(minutes)
		assert.NoError(t, err)
		assert.Equal(t, minutes, p.Minutes())
	}

	for _, minutes := range []int{0, -5, 7, 8, 45, 90, 1440} {
		_, err := ValidPeriod(minutes)
		assert.True(t, errors.Is(err, ErrInvalidPeriod), "period %d", minutes)
	}
}

func TestSupportedPeriodsString(t *testing.T) {
	assert.Equal(t, "1, 2, 3, 4, 5, 6, 10, 12, 15, 20, 30, 60", SupportedPeriodsString())
}

func TestPeriod_BarsPerDay(t *testing.T) {
	assert.Equal(t, 1440, Period1m.BarsPerDay())
	assert.Equal(t, 288, Period5m.BarsPerDay())
	assert.Equal(t, 120, Period12m.BarsPerDay())
	assert.Equal(t, 24, Period1h.BarsPerDay())
}

func TestBarCount(t *testing.T) {
	n, err := BarCount(5, Period5m)
	assert.NoError(t, err)
	assert.Equal(t, 1440, n)

	n, err = BarCount(2, Period1h)
	assert.NoError(t, err)
	assert.Equal(t, 48, n)

	_, err = BarCount(0, Period5m)
	assert.True(t, errors.Is(err, ErrInvalidDays))
}

func TestPeriod_Interval(t *testing.T) {
	assert.Equal(t, Interval1m, Period1m.Interval())
	assert.Equal(t, Interval("20m"), Period20m.Interval())
	assert.Equal(t, Interval1h, Period1h.Interval())
	assert.Equal(t, "15m", Period15m.String())
}

func TestBasePeriod(t *testing.T) {
	native := []Period{Period1m, Period3m, Period5m, Period15m, Period30m, Period1h}
	assert.Equal(t, Period5m, BasePeriod(Period5m, native))
	assert.Equal(t, Period1m, BasePeriod(Period2m, native))
	assert.Equal(t, Period1m, BasePeriod(Period4m, native))
	assert.Equal(t, Period3m, BasePeriod(Period6m, native))
	assert.Equal(t, Period5m, BasePeriod(Period10m, native))
	assert.Equal(t, Period3m, BasePeriod(Period12m, native))
	assert.Equal(t, Period5m, BasePeriod(Period20m, native))
	assert.Equal(t, Period1h, BasePeriod(Period1h, native))
}
