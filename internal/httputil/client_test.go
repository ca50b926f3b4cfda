// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macromol/getpdb/pkg/types"
)

func TestNewClientTimeout(t *testing.T) {
	client := NewClient(types.HTTPConfig{Timeout: 42 * time.Second})
	assert.Equal(t, 42*time.Second, client.Timeout)
	assert.Nil(t, client.Transport)
}

func TestNewClientInsecureSkipVerify(t *testing.T) {
	// An httptest TLS server uses a self-signed certificate, so the
	// default client must fail and the skip-verify client must succeed.
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	strict := NewClient(types.HTTPConfig{Timeout: 5 * time.Second})
	_, err := strict.Get(ts.URL)
	require.Error(t, err)

	lax := NewClient(types.HTTPConfig{Timeout: 5 * time.Second, InsecureSkipVerify: true})
	resp, err := lax.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewClientDefaultTransportUntouched(t *testing.T) {
	NewClient(types.HTTPConfig{InsecureSkipVerify: true})
	transport := http.DefaultTransport.(*http.Transport)
	if transport.TLSClientConfig != nil && transport.TLSClientConfig.InsecureSkipVerify {
		t.Error("default transport was mutated")
	}
}
