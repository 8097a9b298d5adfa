package types

import (
	"fmt"
	"sort"
	"time"
)

type KLineQueryOptions struct {
	// Limit is the max number of klines to return
	Limit int

	// EndTime selects the klines started at or before this time, nil means now
	EndTime *time.Time
}

// KLine is a single bar, the fields follow binance's kline structure
type KLine struct {
	Exchange ExchangeName `json:"exchange" db:"exchange"`

	Symbol string `json:"symbol" db:"symbol"`

	StartTime time.Time `json:"startTime" db:"start_time"`
	EndTime   time.Time `json:"endTime" db:"end_time"`

	Period Period `json:"period" db:"period"`

	Open   float64 `json:"open" db:"open"`
	High   float64 `json:"high" db:"high"`
	Low    float64 `json:"low" db:"low"`
	Close  float64 `json:"close" db:"close"`
	Volume float64 `json:"volume" db:"volume"`

	Closed bool `json:"closed" db:"closed"`
}

// Merge merges the later kline o into k
func (k *KLine) Merge(o *KLine) {
	k.EndTime = o.EndTime
	k.Close = o.Close
	if o.High > k.High {
		k.High = o.High
	}
	if o.Low < k.Low {
		k.Low = o.Low
	}
	k.Volume += o.Volume
	k.Closed = o.Closed
}

func (k KLine) GetClose() float64 {
	return k.Close
}

func (k KLine) String() string {
	return fmt.Sprintf("%s %s %s %s O: %.4f H: %.4f L: %.4f C: %.4f V: %.4f",
		k.Exchange.String(),
		k.StartTime.Format("2006-01-02 15:04"),
		k.Symbol, k.Period, k.Open, k.High, k.Low, k.Close, k.Volume)
}

// KLineWindow is an ordered list of klines, oldest first
type KLineWindow []KLine

func (w KLineWindow) Len() int {
	return len(w)
}

func (w KLineWindow) First() KLine {
	return w[0]
}

func (w KLineWindow) Last() KLine {
	return w[len(w)-1]
}

// Tail returns a copy of the last size klines
func (w KLineWindow) Tail(size int) KLineWindow {
	length := len(w)
	if length <= size {
		win := make(KLineWindow, length)
		copy(win, w)
		return win
	}

	win := make(KLineWindow, size)
	copy(win, w[length-size:])
	return win
}

func (w KLineWindow) Closes() Float64Slice {
	closes := make(Float64Slice, 0, len(w))
	for _, k := range w {
		closes.Push(k.Close)
	}
	return closes
}

// SortKLines sorts the klines by start time and drops the duplicated ones,
// the later kline of a duplicated start time wins.
func SortKLines(klines []KLine) []KLine {
	sort.SliceStable(klines, func(i, j int) bool {
		return klines[i].StartTime.Before(klines[j].StartTime)
	})

	if len(klines) == 0 {
		return klines
	}

	out := klines[:1]
	for _, k := range klines[1:] {
		if k.StartTime.Equal(out[len(out)-1].StartTime) {
			out[len(out)-1] = k
			continue
		}
		out = append(out, k)
	}
	return out
}

// ResampleKLines merges sorted klines into buckets of the given period.
// Buckets are aligned to the period boundary of the start time.
func ResampleKLines(klines []KLine, period Period) []KLine {
	if len(klines) == 0 {
		return nil
	}

	d := period.Duration()

	var out []KLine
	for i := range klines {
		k := klines[i]
		bucket := k.StartTime.Truncate(d)
		if len(out) > 0 && out[len(out)-1].StartTime.Equal(bucket) {
			out[len(out)-1].Merge(&k)
			continue
		}

		k.StartTime = bucket
		k.Period = period
		out = append(out, k)
	}

	for i := range out {
		out[i].EndTime = out[i].StartTime.Add(d - time.Millisecond)
	}

	return out
}
