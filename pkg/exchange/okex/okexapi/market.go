package okexapi

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// MaxCandlesLimit is the max number of candles of one history-candles request
const MaxCandlesLimit = 100

type Candle struct {
	InstrumentID     string
	Interval         string
	Time             time.Time
	Open             float64
	High             float64
	Low              float64
	Close            float64
	Volume           float64
	VolumeInCurrency float64
	Confirmed        bool
}

type candlesResponse struct {
	APIResponse
	Data [][]string `json:"data"`
}

type CandlesticksRequest struct {
	client *RestClient

	instId string

	limit *int

	bar *string

	after *int64
}

// After selects the candles opened before the given unix milliseconds, exclusive
func (r *CandlesticksRequest) After(after int64) *CandlesticksRequest {
	r.after = &after
	return r
}

func (r *CandlesticksRequest) Limit(limit int) *CandlesticksRequest {
	r.limit = &limit
	return r
}

func (r *CandlesticksRequest) InstrumentID(instId string) *CandlesticksRequest {
	r.instId = instId
	return r
}

func (r *CandlesticksRequest) Bar(bar string) *CandlesticksRequest {
	r.bar = &bar
	return r
}

// Do sends the request, the candles are returned as the api returns them, newest first
func (r *CandlesticksRequest) Do(ctx context.Context) ([]Candle, error) {
	var params = map[string]string{
		"instId": r.instId,
	}

	if r.bar != nil {
		params["bar"] = *r.bar
	}

	if r.after != nil {
		params["after"] = strconv.FormatInt(*r.after, 10)
	}

	if r.limit != nil {
		params["limit"] = strconv.Itoa(*r.limit)
	}

	var apiResponse candlesResponse
	resp, err := r.client.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&apiResponse).
		SetError(&apiResponse).
		Get("/api/v5/market/history-candles")
	if err != nil {
		return nil, errors.Wrap(err, "okex: history-candles request failed")
	}

	if err := checkResponse(resp, &apiResponse.APIResponse); err != nil {
		return nil, err
	}

	var interval = "1m"
	if r.bar != nil {
		interval = *r.bar
	}

	var candles []Candle
	for _, entry := range apiResponse.Data {
		candle, err := parseCandle(r.instId, interval, entry)
		if err != nil {
			return candles, err
		}
		candles = append(candles, candle)
	}

	return candles, nil
}

// parseCandle parses [ts,o,h,l,c,vol,volCcy,volCcyQuote,confirm]
func parseCandle(instId, interval string, entry []string) (Candle, error) {
	if len(entry) < 7 {
		return Candle{}, errors.Errorf("okex: invalid candle data %v", entry)
	}

	timestamp, err := strconv.ParseInt(entry[0], 10, 64)
	if err != nil {
		return Candle{}, errors.Wrapf(err, "okex: invalid candle timestamp %q", entry[0])
	}

	var values [6]float64
	for i := range values {
		values[i], err = strconv.ParseFloat(entry[i+1], 64)
		if err != nil {
			return Candle{}, errors.Wrapf(err, "okex: invalid candle field %d %q", i+1, entry[i+1])
		}
	}

	candle := Candle{
		InstrumentID:     instId,
		Interval:         interval,
		Time:             time.UnixMilli(timestamp).UTC(),
		Open:             values[0],
		High:             values[1],
		Low:              values[2],
		Close:            values[3],
		Volume:           values[4],
		VolumeInCurrency: values[5],
		Confirmed:        true,
	}

	if len(entry) > 8 {
		candle.Confirmed = entry[8] == "1"
	}

	return candle, nil
}

func (c *RestClient) NewCandlesticksRequest(instId string) *CandlesticksRequest {
	return &CandlesticksRequest{client: c, instId: instId}
}
