package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/c9s/mtcli/pkg/types"
)

/*
python:

import pandas as pd
s = pd.Series([10, 11, 12, 11, 10, 9, 10, 11, 12, 13])
fast = s.ewm(span=12, adjust=False).mean()
slow = s.ewm(span=26, adjust=False).mean()
macd = fast - slow
signal = macd.ewm(span=9, adjust=False).mean()
print(macd, signal, macd - signal)
*/
func TestCalculateMACD(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 9, 10, 11, 12, 13}

	wantMACD := []float64{
		0,
		0.0797720797720789,
		0.22113456871291426,
		0.24959652365273755,
		0.18927929149843692,
		0.060093092044231966,
		0.037966091422910964,
		0.09996954003671377,
		0.22718056627218175,
		0.4040304521686622,
	}
	wantSignal := []float64{
		0,
		0.01595441595441578,
		0.05699044650611548,
		0.09551166193543989,
		0.1142651878480393,
		0.10343076868727784,
		0.09033783323440446,
		0.09226417459486633,
		0.11924745293032943,
		0.176204052777996,
	}
	wantHistogram := []float64{
		0,
		0.06381766381766311,
		0.16414412220679878,
		0.15408486171729766,
		0.07501410365039762,
		-0.04333767664304587,
		-0.0523717418114935,
		0.007705365441847439,
		0.10793311334185232,
		0.22782639939066618,
	}

	series := CalculateMACD(closes, DefaultMACDConfig)
	assert.Equal(t, len(closes), series.Length())
	assert.Len(t, series.Signal, len(closes))
	assert.Len(t, series.Histogram, len(closes))

	for i := range closes {
		assert.InDelta(t, wantMACD[i], series.MACD[i], 1e-12, "macd %d", i)
		assert.InDelta(t, wantSignal[i], series.Signal[i], 1e-12, "signal %d", i)
		assert.InDelta(t, wantHistogram[i], series.Histogram[i], 1e-12, "histogram %d", i)
	}
}

func TestCalculateMACD_HistogramInvariant(t *testing.T) {
	var prices []float64
	for i := 0; i < 500; i++ {
		prices = append(prices, 100+float64(i%17)*1.5-float64(i%7)*2.25)
	}

	series := CalculateMACD(prices, DefaultMACDConfig)
	for i := range prices {
		assert.Equal(t, series.MACD[i]-series.Signal[i], series.Histogram[i], "index %d", i)
	}
}

/*
python:

import pandas as pd
s = pd.Series([0,1,2,3,4,5,6,7,8,9,0,1,2,3,4,5,6,7,8,9,0,1,2,3,4,5,6,7,8,9,0,1,2,3,4,5,6,7,8,9,0,1,2,3,4,5,6,7,8,9])
slow = s.ewm(span=26, adjust=False).mean()
fast = s.ewm(span=12, adjust=False).mean()
print(fast - slow)
*/
func TestMACD_Update(t *testing.T) {
	var randomPrices = []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	tests := []struct {
		name   string
		prices []float64
		want   float64
	}{
		{
			name:   "random_case",
			prices: randomPrices,
			want:   0.7967670223776384,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			macd := MACD{MACDConfig: MACDConfig{Window: 9, ShortPeriod: 12, LongPeriod: 26}}

			var updates int
			macd.OnUpdate(func(m, s, h float64) {
				updates++
				assert.Equal(t, m-s, h)
			})

			for _, p := range tt.prices {
				macd.Update(p)
			}

			assert.InDelta(t, tt.want, macd.Last(), 1e-12)
			assert.Equal(t, len(tt.prices), updates)

			// the streaming result must equal the batch calculation
			batch := CalculateMACD(tt.prices, macd.MACDConfig)
			assert.Equal(t, batch, macd.Series())
		})
	}
}

func TestMACD_ZeroConfig(t *testing.T) {
	macd := &MACD{}
	macd.Update(1)
	assert.Equal(t, DefaultMACDConfig, macd.MACDConfig)
	assert.Equal(t, 0.0, macd.Last())
}

func TestMACD_PushK(t *testing.T) {
	macd := NewMACD(MACDConfig{})
	t0 := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	for i, c := range []float64{10, 11, 12} {
		macd.PushK(types.KLine{StartTime: t0.Add(time.Duration(i) * time.Minute), Close: c})
	}

	assert.Equal(t, 3, macd.Length())
	assert.Equal(t, CalculateMACD([]float64{10, 11, 12}, DefaultMACDConfig), macd.Series())
}

func TestCalculateMACD_Empty(t *testing.T) {
	series := CalculateMACD(nil, DefaultMACDConfig)
	assert.Equal(t, 0, series.Length())
	assert.Len(t, series.Signal, 0)
	assert.Len(t, series.Histogram, 0)
}
