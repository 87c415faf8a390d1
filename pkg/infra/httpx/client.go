package httpx

import "net/http"

// Client is the transport used by outbound API clients. *http.Client and
// *FastHTTPClient both satisfy it.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	TransportNetHTTP  = "net/http"
	TransportFastHTTP = "fasthttp"
)
