package storage

import (
	"net"
	"net/http"
	"time"
)

// newTransport bounds the connect, TLS and response-header phases with timeout.
func newTransport(timeout time.Duration) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: time.Second,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
	}
}

// newHTTPClient also caps the whole exchange, body included.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Transport: newTransport(timeout), Timeout: timeout}
}
