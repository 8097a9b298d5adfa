package types

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const MinutesPerDay = 1440

var (
	ErrInvalidPeriod = errors.New("invalid period")
	ErrInvalidDays   = errors.New("invalid number of days")
)

// Interval is the exchange notation of a kline interval, e.g. 1m, 15m, 1h
type Interval string

func (i Interval) String() string {
	return string(i)
}

func (i *Interval) UnmarshalJSON(b []byte) (err error) {
	var a string
	err = json.Unmarshal(b, &a)
	if err != nil {
		return err
	}

	*i = Interval(a)
	return
}

var Interval1m = Interval("1m")
var Interval3m = Interval("3m")
var Interval5m = Interval("5m")
var Interval15m = Interval("15m")
var Interval30m = Interval("30m")
var Interval1h = Interval("1h")

// Period is the bar period in minutes.
type Period int

var (
	Period1m  = Period(1)
	Period2m  = Period(2)
	Period3m  = Period(3)
	Period4m  = Period(4)
	Period5m  = Period(5)
	Period6m  = Period(6)
	Period10m = Period(10)
	Period12m = Period(12)
	Period15m = Period(15)
	Period20m = Period(20)
	Period30m = Period(30)
	Period1h  = Period(60)
)

// SupportedPeriods is the allow-list of bar periods. New timeframes are added here.
var SupportedPeriods = map[Period]struct{}{
	Period1m:  {},
	Period2m:  {},
	Period3m:  {},
	Period4m:  {},
	Period5m:  {},
	Period6m:  {},
	Period10m: {},
	Period12m: {},
	Period15m: {},
	Period20m: {},
	Period30m: {},
	Period1h:  {},
}

// ValidPeriod returns the period for the given minutes, or ErrInvalidPeriod
// when it's not in the allow-list.
func ValidPeriod(minutes int) (Period, error) {
	p := Period(minutes)
	if _, ok := SupportedPeriods[p]; !ok {
		return 0, errors.Wrapf(ErrInvalidPeriod, "%d minutes is not supported, use one of %s", minutes, SupportedPeriodsString())
	}

	return p, nil
}

// SortedPeriods returns the supported periods in ascending order.
func SortedPeriods() []Period {
	periods := make([]Period, 0, len(SupportedPeriods))
	for p := range SupportedPeriods {
		periods = append(periods, p)
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[i] < periods[j]
	})
	return periods
}

func SupportedPeriodsString() string {
	var ss []string
	for _, p := range SortedPeriods() {
		ss = append(ss, fmt.Sprintf("%d", p.Minutes()))
	}
	return strings.Join(ss, ", ")
}

func (p Period) Minutes() int {
	return int(p)
}

func (p Period) Duration() time.Duration {
	return time.Duration(p) * time.Minute
}

// BarsPerDay is the number of bars of this period in one day, truncated.
func (p Period) BarsPerDay() int {
	if p <= 0 {
		return 0
	}

	return MinutesPerDay / int(p)
}

// Interval converts the period to the exchange interval notation.
func (p Period) Interval() Interval {
	if p >= 60 && p%60 == 0 {
		return Interval(fmt.Sprintf("%dh", p/60))
	}

	return Interval(fmt.Sprintf("%dm", p))
}

func (p Period) String() string {
	return p.Interval().String()
}

// BarCount returns days * bars-per-day for the period.
func BarCount(days int, p Period) (int, error) {
	if days < 1 {
		return 0, errors.Wrapf(ErrInvalidDays, "%d", days)
	}

	return days * p.BarsPerDay(), nil
}

// BasePeriod finds the largest native period that evenly divides p.
// It returns p itself when p is native, and 1m as the last resort.
func BasePeriod(p Period, native []Period) Period {
	base := Period1m
	for _, n := range native {
		if n == p {
			return p
		}

		if n > base && n < p && p%n == 0 {
			base = n
		}
	}

	return base
}

// PeriodSupporter is implemented by sources that only serve a subset of the periods natively.
type PeriodSupporter interface {
	SupportedPeriods() []Period
}
