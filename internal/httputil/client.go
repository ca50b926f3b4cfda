// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"crypto/tls"
	"net/http"

	"github.com/macromol/getpdb/pkg/types"
)

// NewClient builds an HTTP client from cfg. When InsecureSkipVerify is
// set, certificate verification is disabled on a dedicated transport;
// the default transport is never mutated.
func NewClient(cfg types.HTTPConfig) *http.Client {
	client := &http.Client{
		Timeout: cfg.Timeout,
	}
	if cfg.InsecureSkipVerify {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		client.Transport = transport
	}
	return client
}
