package indicator

import (
	"github.com/c9s/mtcli/pkg/types"
)

// EWMA is the exponential weighted moving average with the multiplier 2 / (window + 1).
//
// There is no warm-up bias correction, the first value equals the first input.
// This matches pandas:
//
//	s.ewm(span=window, adjust=False).mean()
//
// see https://www.investopedia.com/ask/answers/122314/what-exponential-moving-average-ema-formula-and-how-ema-calculated.asp
//
//go:generate callbackgen -type EWMA
type EWMA struct {
	Window int
	Values types.Float64Slice

	updateCallbacks []func(value float64)
}

func NewEWMA(window int) *EWMA {
	return &EWMA{Window: window}
}

// Multiplier returns the smoothing factor of the window, windows <= 0 are treated as 1.
func Multiplier(window int) float64 {
	if window <= 0 {
		window = 1
	}

	return 2.0 / float64(1+window)
}

func (inc *EWMA) Update(value float64) {
	if len(inc.Values) == 0 {
		inc.Values.Push(value)
		inc.EmitUpdate(value)
		return
	}

	var multiplier = Multiplier(inc.Window)
	ema := (1-multiplier)*inc.Last() + multiplier*value
	inc.Values.Push(ema)
	inc.EmitUpdate(ema)
}

func (inc *EWMA) Last() float64 {
	return inc.Values.Last()
}

func (inc *EWMA) Length() int {
	return len(inc.Values)
}

func (inc *EWMA) PushK(k types.KLine) {
	inc.Update(k.Close)
}

// EWMASeries calculates the whole EWMA series of the values in one pass.
// The returned series has the same length of values.
func EWMASeries(values []float64, window int) types.Float64Slice {
	out := make(types.Float64Slice, len(values))
	if len(values) == 0 {
		return out
	}

	var multiplier = Multiplier(window)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = (1-multiplier)*out[i-1] + multiplier*values[i]
	}

	return out
}
