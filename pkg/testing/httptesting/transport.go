package httptesting

import (
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

type RoundTripFunc func(req *http.Request) (*http.Response, error)

// MockTransport routes the requests to the handlers registered by method and path.
// Every handled request is kept in Requests, so tests can assert the query parameters.
type MockTransport struct {
	handlers map[string]map[string]RoundTripFunc

	mu       sync.Mutex
	Requests []*http.Request
}

func (transport *MockTransport) Handle(method, path string, f RoundTripFunc) {
	if transport.handlers == nil {
		transport.handlers = make(map[string]map[string]RoundTripFunc)
	}

	method = strings.ToUpper(method)
	if transport.handlers[method] == nil {
		transport.handlers[method] = make(map[string]RoundTripFunc)
	}

	transport.handlers[method][path] = f
}

func (transport *MockTransport) GET(path string, f RoundTripFunc) {
	transport.Handle(http.MethodGet, path, f)
}

func (transport *MockTransport) POST(path string, f RoundTripFunc) {
	transport.Handle(http.MethodPost, path, f)
}

func (transport *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f, ok := transport.handlers[strings.ToUpper(req.Method)][req.URL.Path]
	if !ok {
		return nil, errors.Errorf("roundtrip mock to %s %s is not defined", req.Method, req.URL.Path)
	}

	transport.mu.Lock()
	transport.Requests = append(transport.Requests, req)
	transport.mu.Unlock()

	resp, err := f(req)
	if resp != nil && resp.Request == nil {
		resp.Request = req
	}
	return resp, err
}

// LastRequest returns the latest handled request, nil if nothing was requested
func (transport *MockTransport) LastRequest() *http.Request {
	transport.mu.Lock()
	defer transport.mu.Unlock()

	if len(transport.Requests) == 0 {
		return nil
	}
	return transport.Requests[len(transport.Requests)-1]
}

func MockWithJsonReply(url string, rawData interface{}) *http.Client {
	tripFunc := func(_ *http.Request) (*http.Response, error) {
		return BuildResponseJson(http.StatusOK, rawData), nil
	}

	transport := &MockTransport{}
	transport.GET(url, tripFunc)
	transport.POST(url, tripFunc)
	return &http.Client{Transport: transport}
}
