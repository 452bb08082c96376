package jira

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// defaultTimeout caps a single request when no timeout is configured.
const defaultTimeout = 15 * time.Second

// newHTTPTransport returns a pooled Transport with optional TLS skipping.
func newHTTPTransport(skipInsecure bool) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,

		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,

		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: skipInsecure, // NOTE: intended for dev only
		},

		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// newHTTPClient builds an http.Client with a pooled transport and a per-request timeout.
func newHTTPClient(timeout time.Duration, skipInsecure bool) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: newHTTPTransport(skipInsecure),
	}
}
