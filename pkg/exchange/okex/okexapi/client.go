package okexapi

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const defaultHTTPTimeout = time.Second * 15
const RestBaseURL = "https://www.okx.com"

// APIResponse is the envelope of every v5 rest response, code "0" means success
type APIResponse struct {
	Code    string `json:"code"`
	Message string `json:"msg"`
}

// APIError is returned when the envelope code is not "0"
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return "okex api error " + e.Code + ": " + e.Message
}

type RestClient struct {
	client *resty.Client
}

func NewClient() *RestClient {
	client := resty.New().
		SetBaseURL(RestBaseURL).
		SetTimeout(defaultHTTPTimeout).
		SetHeader("Accept", "application/json")

	return &RestClient{client: client}
}

func (c *RestClient) SetBaseURL(baseURL string) *RestClient {
	c.client.SetBaseURL(baseURL)
	return c
}

// SetTransport replaces the underlying round tripper, tests use it to mock the responses
func (c *RestClient) SetTransport(transport http.RoundTripper) *RestClient {
	c.client.SetTransport(transport)
	return c
}

// Close releases the idle connections of the underlying http client
func (c *RestClient) Close() {
	c.client.GetClient().CloseIdleConnections()
}

// ErrCodeInstrumentNotFound is the code of "Instrument ID does not exist"
const ErrCodeInstrumentNotFound = "51001"

// IsInstrumentNotFound reports whether err is an APIError of an unknown instrument
func IsInstrumentNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == ErrCodeInstrumentNotFound
}

// checkResponse prefers the envelope code, the error responses carry it too
func checkResponse(resp *resty.Response, envelope *APIResponse) error {
	if envelope.Code != "" && envelope.Code != "0" {
		return &APIError{Code: envelope.Code, Message: envelope.Message}
	}

	if resp.IsError() {
		return errors.Errorf("okex: unexpected http status %s: %s", resp.Status(), string(resp.Body()))
	}

	if envelope.Code != "0" {
		return &APIError{Code: envelope.Code, Message: envelope.Message}
	}

	return nil
}
