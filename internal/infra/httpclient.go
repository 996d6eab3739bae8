package infra

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/proxy"
)

// NewHTTPClient builds the outbound client shared by adapters. A non-empty
// socksAddr routes every connection through that SOCKS5 proxy.
func NewHTTPClient(timeout time.Duration, socksAddr string) (*http.Client, error) {
	client := &http.Client{Timeout: timeout}
	if socksAddr == "" {
		return client, nil
	}

	dialer, err := proxy.SOCKS5("tcp", socksAddr, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("creating socks5 dialer: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		transport.DialContext = cd.DialContext
	} else {
		transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		}
	}
	client.Transport = transport
	return client, nil
}
