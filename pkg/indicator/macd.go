package indicator

import (
	"github.com/c9s/mtcli/pkg/types"
)

/*
macd implements moving average convergence divergence indicator

Moving Average Convergence Divergence (MACD)
- https://www.investopedia.com/terms/m/macd.asp
- https://school.stockcharts.com/doku.php?id=technical_indicators:macd-histogram
*/
type MACDConfig struct {
	// ShortPeriod is the short term period EMA, usually 12
	ShortPeriod int `json:"short" yaml:"fast"`

	// LongPeriod is the long term period EMA, usually 26
	LongPeriod int `json:"long" yaml:"slow"`

	// Window is the signal line EMA window, usually 9
	Window int `json:"window" yaml:"signal"`
}

var DefaultMACDConfig = MACDConfig{
	ShortPeriod: 12,
	LongPeriod:  26,
	Window:      9,
}

// WithDefaults fills the zero fields with the default 12, 26, 9 settings.
func (c MACDConfig) WithDefaults() MACDConfig {
	if c.ShortPeriod <= 0 {
		c.ShortPeriod = DefaultMACDConfig.ShortPeriod
	}

	if c.LongPeriod <= 0 {
		c.LongPeriod = DefaultMACDConfig.LongPeriod
	}

	if c.Window <= 0 {
		c.Window = DefaultMACDConfig.Window
	}

	return c
}

// MACDSeries holds the index-aligned MACD, signal and histogram lines.
type MACDSeries struct {
	MACD      types.Float64Slice `json:"macd"`
	Signal    types.Float64Slice `json:"signal"`
	Histogram types.Float64Slice `json:"histogram"`
}

func (s MACDSeries) Length() int {
	return len(s.MACD)
}

// CalculateMACD computes the three MACD lines over the closes in one pass,
// every returned line has the same length of closes.
func CalculateMACD(closes []float64, config MACDConfig) MACDSeries {
	config = config.WithDefaults()

	fast := EWMASeries(closes, config.ShortPeriod)
	slow := EWMASeries(closes, config.LongPeriod)
	macd := fast.Sub(slow)
	signal := EWMASeries(macd, config.Window)
	histogram := macd.Sub(signal)

	return MACDSeries{
		MACD:      macd,
		Signal:    signal,
		Histogram: histogram,
	}
}

//go:generate callbackgen -type MACD
type MACD struct {
	MACDConfig

	Values    types.Float64Slice `json:"-"`
	Signals   types.Float64Slice `json:"-"`
	Histogram types.Float64Slice `json:"-"`

	fastEWMA, slowEWMA, signalLine *EWMA

	updateCallbacks []func(macd, signal, histogram float64)
}

func NewMACD(config MACDConfig) *MACD {
	return &MACD{MACDConfig: config.WithDefaults()}
}

func (inc *MACD) Update(x float64) {
	if inc.fastEWMA == nil {
		// apply default values
		inc.MACDConfig = inc.MACDConfig.WithDefaults()
		inc.fastEWMA = NewEWMA(inc.ShortPeriod)
		inc.slowEWMA = NewEWMA(inc.LongPeriod)
		inc.signalLine = NewEWMA(inc.Window)
	}

	// update fast and slow ema
	inc.fastEWMA.Update(x)
	inc.slowEWMA.Update(x)

	macd := inc.fastEWMA.Last() - inc.slowEWMA.Last()
	inc.Values.Push(macd)

	// update signal line
	inc.signalLine.Update(macd)
	signal := inc.signalLine.Last()
	inc.Signals.Push(signal)

	// update histogram
	histogram := macd - signal
	inc.Histogram.Push(histogram)

	inc.EmitUpdate(macd, signal, histogram)
}

func (inc *MACD) Last() float64 {
	return inc.Values.Last()
}

func (inc *MACD) Length() int {
	return len(inc.Values)
}

func (inc *MACD) PushK(k types.KLine) {
	inc.Update(k.Close)
}

// Series returns the accumulated lines.
func (inc *MACD) Series() MACDSeries {
	return MACDSeries{
		MACD:      inc.Values,
		Signal:    inc.Signals,
		Histogram: inc.Histogram,
	}
}
