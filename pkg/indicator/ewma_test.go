package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
python:

import pandas as pd
s = pd.Series([10, 11, 12, 11, 10, 9, 10, 11, 12, 13])
print(s.ewm(span=12, adjust=False).mean())
*/
func TestEWMASeries(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 9, 10, 11, 12, 13}
	want := []float64{
		10,
		10.153846153846153,
		10.437869822485206,
		10.524351388256711,
		10.443681943909525,
		10.221577029461905,
		10.187488255698534,
		10.312490062514144,
		10.572106975973506,
		10.94562897966989,
	}

	got := EWMASeries(closes, 12)
	if assert.Len(t, got, len(want)) {
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-12, "index %d", i)
		}
	}
}

func TestEWMASeries_FirstValue(t *testing.T) {
	for _, values := range [][]float64{{42}, {3, 1, 4, 1, 5}, {-1.5, 2.5}} {
		for _, window := range []int{1, 9, 12, 26} {
			assert.Equal(t, values[0], EWMASeries(values, window)[0])
		}
	}
}

func TestEWMASeries_Constant(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = 7.25
	}

	for _, window := range []int{2, 9, 12, 26, 200} {
		for i, v := range EWMASeries(values, window) {
			assert.InDelta(t, 7.25, v, 1e-12, "window %d index %d", window, i)
		}
	}
}

func TestEWMASeries_Empty(t *testing.T) {
	assert.Len(t, EWMASeries(nil, 12), 0)
	assert.Len(t, EWMASeries([]float64{}, 12), 0)
}

func TestEWMASeries_NonPositiveWindow(t *testing.T) {
	values := []float64{1, 5, 3}
	assert.Equal(t, []float64{1, 5, 3}, []float64(EWMASeries(values, 0)))
	assert.Equal(t, 1.0, Multiplier(-3))
}

func TestEWMA_Update(t *testing.T) {
	closes := []float64{10, 11, 12, 11, 10, 9, 10, 11, 12, 13}
	ewma := NewEWMA(12)

	var emitted []float64
	ewma.OnUpdate(func(v float64) {
		emitted = append(emitted, v)
	})

	for _, c := range closes {
		ewma.Update(c)
	}

	batch := EWMASeries(closes, 12)
	assert.Equal(t, len(closes), ewma.Length())
	assert.Equal(t, batch, ewma.Values)
	assert.Equal(t, []float64(batch), emitted)
	assert.Equal(t, batch.Last(), ewma.Last())
}
